package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
)

// RunReport summarises one session for the headless report and the
// clipboard export.
type RunReport struct {
	Run       int
	Seed      int64
	Level     int
	Score     int
	Best      int
	ElapsedMs float64
	Over      bool
	EndedBy   string
	Completed map[string]int // shape name -> completed sequences
	Counts    map[string]int // "category/key" -> events
}

// NewRunReport collects a report from a session's state and log.
func NewRunReport(run int, seed int64, s *Session) RunReport {
	r := RunReport{
		Run:       run,
		Seed:      seed,
		Level:     s.Level(),
		Score:     s.Score(),
		Best:      s.BestScore(),
		ElapsedMs: s.Elapsed(),
		Over:      s.Over(),
		EndedBy:   s.EndedBy(),
		Completed: map[string]int{},
		Counts:    map[string]int{},
	}
	for _, e := range s.Log().Entries() {
		r.Counts[e.Category+"/"+e.Key]++
		if e.Category == "shape" && e.Key == "completed" {
			r.Completed[e.Shape]++
		}
	}
	return r
}

// CompletedTotal returns the number of completed sequences across shapes.
func (r RunReport) CompletedTotal() int {
	n := 0
	for _, c := range r.Completed {
		n += c
	}
	return n
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String formats the report as a short block.
func (r RunReport) String() string {
	var b strings.Builder
	end := "still running"
	if r.Over {
		end = "ended by " + r.EndedBy
	}
	fmt.Fprintf(&b, "run %d seed=%d level=%d score=%d best=%d time=%.1fs %s\n",
		r.Run, r.Seed, r.Level, r.Score, r.Best, r.ElapsedMs/1000, end)
	if len(r.Completed) > 0 {
		b.WriteString("  completed:")
		for _, k := range sortedKeys(r.Completed) {
			fmt.Fprintf(&b, " %s=%d", k, r.Completed[k])
		}
		b.WriteByte('\n')
	}
	if len(r.Counts) > 0 {
		b.WriteString("  events:")
		for _, k := range sortedKeys(r.Counts) {
			fmt.Fprintf(&b, " %s=%d", k, r.Counts[k])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// AggregateReports formats totals over several runs.
func AggregateReports(reports []RunReport) string {
	if len(reports) == 0 {
		return "no runs\n"
	}
	var b strings.Builder
	endedBy := map[string]int{}
	levels := map[int]int{}
	scoreSum, best, completed := 0, 0, 0
	timeSum := 0.0
	for _, r := range reports {
		scoreSum += r.Score
		if r.Score > best {
			best = r.Score
		}
		completed += r.CompletedTotal()
		timeSum += r.ElapsedMs
		levels[r.Level]++
		if r.Over {
			endedBy[r.EndedBy]++
		}
	}
	n := float64(len(reports))
	fmt.Fprintf(&b, "runs=%d avg_score=%.1f best_score=%d avg_time=%.1fs completed=%d\n",
		len(reports), float64(scoreSum)/n, best, timeSum/n/1000, completed)
	b.WriteString("level reached:")
	for l := minLevel; l <= maxLevel; l++ {
		fmt.Fprintf(&b, " L%d=%d", l, levels[l])
	}
	b.WriteByte('\n')
	if len(endedBy) > 0 {
		b.WriteString("ended by:")
		for _, k := range sortedKeys(endedBy) {
			fmt.Fprintf(&b, " %s=%d", k, endedBy[k])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// shapeTrailLen caps the per-shape block of a session report.
const shapeTrailLen = 8

// SessionReport is the text copied by the in-game report key: a summary, the
// log for the last windowMs of play and the latest entries of the shape on
// screen (or the one that ended the run).
func SessionReport(s *Session, windowMs float64) string {
	var b strings.Builder
	b.WriteString("--- Shape Arcade run report ---\n")
	b.WriteString(s.Log().Summary(s))

	to := s.Elapsed()
	from := to - windowMs
	if from < 0 {
		from = 0
	}
	fmt.Fprintf(&b, "last %.0fs:\n", windowMs/1000)
	b.WriteString(s.Log().FormatRange(from, to))

	name := s.EndedBy()
	if name == "" {
		name = s.currentName()
	}
	trail := s.Log().FilterShape(name)
	if len(trail) > shapeTrailLen {
		trail = trail[len(trail)-shapeTrailLen:]
	}
	fmt.Fprintf(&b, "%s trail:\n", name)
	for _, e := range trail {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

var errClipboardUnsupported = errors.New("clipboard unsupported on this platform")

// CopyToClipboard places text on the system clipboard.
func CopyToClipboard(text string) error {
	if clipboard.Unsupported {
		return errClipboardUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy report: %w", err)
	}
	return nil
}

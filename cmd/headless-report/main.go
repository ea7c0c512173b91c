package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/Garsondee/Shape-Arcade/internal/game"
)

const frameMs = 1000.0 / 60.0

type reportOptions struct {
	runs        int
	maxSeconds  float64
	seedBase    int64
	seedStep    int64
	clickRate   float64
	shapes      []string
	levels      []float64
	maxMistakes int
}

func main() {
	var opts reportOptions
	var shapes string
	var levels string
	var copyReport bool

	flag.IntVar(&opts.runs, "runs", 5, "number of headless runs")
	flag.Float64Var(&opts.maxSeconds, "seconds", 600, "maximum game seconds per run")
	flag.Int64Var(&opts.seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&opts.seedStep, "seed-step", 1, "seed increment between runs")
	flag.Float64Var(&opts.clickRate, "rate", 4, "scripted player clicks per second")
	flag.StringVar(&shapes, "shapes", "", "enabled shapes, comma separated (default: all)")
	flag.StringVar(&levels, "levels", "60,120,180", "seconds per level, comma separated")
	flag.IntVar(&opts.maxMistakes, "max-mistakes", 3, "rhythm mistakes before the heart breaks")
	flag.BoolVar(&copyReport, "copy", false, "copy the report to the clipboard")
	flag.Parse()

	if opts.runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if opts.maxSeconds <= 0 {
		fmt.Println("error: -seconds must be > 0")
		return
	}
	var err error
	if opts.levels, err = game.ParseLevelDurations(levels); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	opts.shapes = game.ParseShapeList(shapes)
	if err := opts.config().Validate(); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	out := buildReport(opts)
	fmt.Print(out)
	if copyReport {
		if err := game.CopyToClipboard(out); err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		fmt.Println("(report copied to clipboard)")
	}
}

func (o reportOptions) config() game.Config {
	cfg := game.DefaultConfig()
	if len(o.levels) > 0 {
		cfg.LevelDurations = o.levels
	}
	cfg.Shapes = o.shapes
	cfg.MaxMistakes = o.maxMistakes
	return cfg
}

func buildReport(o reportOptions) string {
	var b strings.Builder
	b.WriteString("=== Headless Shape Arcade Report ===\n")
	fmt.Fprintf(&b, "runs=%d seconds=%.0f seed_base=%d seed_step=%d rate=%.1f/s shapes=%s\n\n",
		o.runs, o.maxSeconds, o.seedBase, o.seedStep, o.clickRate, shapeLabel(o.shapes))

	reports := make([]game.RunReport, 0, o.runs)
	for i := 0; i < o.runs; i++ {
		seed := o.seedBase + int64(i)*o.seedStep
		r := runOnce(i+1, seed, o)
		reports = append(reports, r)
		b.WriteString(r.String())
		fmt.Fprintf(&b, "  verdict: %s\n\n", verdict(r))
	}
	b.WriteString("--- Aggregate ---\n")
	b.WriteString(game.AggregateReports(reports))
	b.WriteString(deadliestShapes(reports))
	return b.String()
}

func runOnce(run int, seed int64, o reportOptions) game.RunReport {
	sessionOpts := []game.SimOption{
		game.WithSeed(seed),
		game.WithMaxMistakes(o.maxMistakes),
	}
	if len(o.levels) > 0 {
		sessionOpts = append(sessionOpts, game.WithLevelDurations(o.levels...))
	}
	if len(o.shapes) > 0 {
		sessionOpts = append(sessionOpts, game.WithShapes(o.shapes...))
	}
	ts := game.NewTestSession(sessionOpts...)
	ts.Play(game.NewRandomClicker(o.clickRate, seed+7777), o.maxSeconds*1000, frameMs)
	return game.NewRunReport(run, seed, ts.Session)
}

func shapeLabel(shapes []string) string {
	if len(shapes) == 0 {
		return "all"
	}
	return strings.Join(shapes, ",")
}

// verdict classifies a run for a quick scan of the report.
func verdict(r game.RunReport) string {
	switch {
	case !r.Over:
		return "survived the time limit"
	case r.CompletedTotal() == 0:
		return "no sequence completed (" + r.EndedBy + ")"
	case r.Level >= 3:
		return "reached the final level"
	default:
		return fmt.Sprintf("ended on level %d by %s", r.Level, r.EndedBy)
	}
}

// deadliestShapes ranks shapes by how many runs they ended.
func deadliestShapes(reports []game.RunReport) string {
	counts := map[string]int{}
	for _, r := range reports {
		if r.Over {
			counts[r.EndedBy]++
		}
	}
	if len(counts) == 0 {
		return ""
	}
	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	var b strings.Builder
	b.WriteString("deadliest:")
	for _, n := range names {
		fmt.Fprintf(&b, " %s=%d", n, counts[n])
	}
	b.WriteByte('\n')
	return b.String()
}

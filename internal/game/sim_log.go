package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded gameplay event.
type SimLogEntry struct {
	Elapsed  float64 // ms since session start
	Level    int
	Shape    string  // shape name, or "--" for session events
	Category string  // shape, score, level, hazard, rhythm, session
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[  12.345s L1] Heart        rhythm   hit            marker 2/4 +18ms
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[%8.3fs L%d] %-12s %-8s %-14s %s",
		e.Elapsed/1000, e.Level, e.Shape, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a session.
// Unlike EventFeed (UI ring-buffer), SimLog is unbounded and machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
	clock   func() (float64, int)
}

// NewSimLog creates a SimLog. If verbose is true, per-frame entries are also
// recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// bind sets the source of timestamps used by Emit.
func (sl *SimLog) bind(clock func() (elapsed float64, level int)) {
	sl.clock = clock
}

// Add records a new entry.
func (sl *SimLog) Add(elapsed float64, level int, shape, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Elapsed:  elapsed,
		Level:    level,
		Shape:    shape,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(elapsed float64, level int, shape, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(elapsed, level, shape, category, key, value, numVal)
}

// Emit implements EventSink, stamping entries with the bound clock.
func (sl *SimLog) Emit(shape, category, key, value string, numVal float64) {
	var elapsed float64
	level := minLevel
	if sl.clock != nil {
		elapsed, level = sl.clock()
	}
	sl.Add(elapsed, level, shape, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Len returns the number of recorded entries.
func (sl *SimLog) Len() int { return len(sl.entries) }

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterShape returns entries for a specific shape name.
func (sl *SimLog) FilterShape(name string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Shape == name {
			out = append(out, e)
		}
	}
	return out
}

// FilterTimeRange returns entries within [fromMs, toMs] inclusive.
func (sl *SimLog) FilterTimeRange(fromMs, toMs float64) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Elapsed >= fromMs && e.Elapsed <= toMs {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a time range.
func (sl *SimLog) FormatRange(fromMs, toMs float64) string {
	var sb strings.Builder
	for _, e := range sl.FilterTimeRange(fromMs, toMs) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of a session.
func (sl *SimLog) Summary(s *Session) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at %.1fs ---\n", s.Elapsed()/1000)
	fmt.Fprintf(&sb, "Level %d  score %d  best %d\n", s.Level(), s.Score(), s.BestScore())

	completed := map[string]int{}
	for _, e := range sl.Filter("shape", "completed") {
		completed[e.Shape]++
	}
	if len(completed) == 0 {
		sb.WriteString("Completed: none\n")
	} else {
		sb.WriteString("Completed: ")
		for _, name := range ShapeNames() {
			if n := completed[name]; n > 0 {
				fmt.Fprintf(&sb, "%s=%d  ", name, n)
			}
		}
		sb.WriteByte('\n')
	}
	if s.Over() {
		fmt.Fprintf(&sb, "Game over on %s\n", s.EndedBy())
	} else if cur := s.CurrentShape(); cur != nil {
		fmt.Fprintf(&sb, "Current: %s\n", cur.Name())
	}
	return sb.String()
}

package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/Shape-Arcade/internal/game"
)

func TestVerdict(t *testing.T) {
	running := game.RunReport{Over: false}
	if got := verdict(running); got != "survived the time limit" {
		t.Fatalf("unexpected verdict for running session: %q", got)
	}

	early := game.RunReport{Over: true, EndedBy: "Kite", Level: 1}
	if got := verdict(early); !strings.Contains(got, "no sequence completed") || !strings.Contains(got, "Kite") {
		t.Fatalf("unexpected verdict for early failure: %q", got)
	}

	late := game.RunReport{Over: true, EndedBy: "Heart", Level: 2, Completed: map[string]int{"Circle": 1}}
	if got := verdict(late); got != "ended on level 2 by Heart" {
		t.Fatalf("unexpected verdict: %q", got)
	}
}

func TestDeadliestShapes_OrderedByCount(t *testing.T) {
	reports := []game.RunReport{
		{Over: true, EndedBy: "Kite"},
		{Over: true, EndedBy: "Arrow"},
		{Over: true, EndedBy: "Kite"},
		{Over: false},
	}
	got := deadliestShapes(reports)
	if got != "deadliest: Kite=2 Arrow=1\n" {
		t.Fatalf("unexpected ranking: %q", got)
	}
	if deadliestShapes(nil) != "" {
		t.Fatalf("expected empty ranking for no runs")
	}
}

func TestBuildReport_SingleShortRun(t *testing.T) {
	out := buildReport(reportOptions{
		runs:        2,
		maxSeconds:  5,
		seedBase:    3,
		seedStep:    1,
		clickRate:   4,
		shapes:      []string{"Triangle"},
		maxMistakes: 3,
	})
	for _, want := range []string{"run 1 seed=3", "run 2 seed=4", "--- Aggregate ---", "runs=2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

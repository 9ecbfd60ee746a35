package engine

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/anatolykoptev/go_apply/internal/hh"
)

func TestMetrics_SnapshotTracksCycle(t *testing.T) {
	before := GetMetrics()

	v := vac("m1", "Go Developer")
	board := &fakeBoard{
		pages:   [][]hh.Vacancy{{v}},
		details: map[string]*hh.VacancyDetail{"m1": detailFor(v, "go services")},
	}
	eng, _, _ := testEngine(t, board, nil)
	eng.runCycle(context.Background())

	after := GetMetrics()
	// Page 0 yields the vacancy, page 1 comes back empty and ends the cycle.
	for name, delta := range map[string]int64{
		"search_requests": 2,
		"detail_fetches":  1,
		"llm_calls":       1,
		"apply_success":   1,
	} {
		if got := after[name] - before[name]; got != delta {
			t.Errorf("%s advanced by %d, want %d", name, got, delta)
		}
	}
}

func TestFormatMetrics_StableOrder(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(FormatMetrics()), "\n")
	want := []string{
		"search_requests", "detail_fetches",
		"llm_calls", "llm_errors",
		"apply_success", "apply_duplicates", "apply_failures",
		"rejections", "known_skips", "cycles_completed",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), FormatMetrics())
	}
	for i, line := range lines {
		name, value, ok := strings.Cut(line, " ")
		if !ok || name != want[i] {
			t.Errorf("line %d = %q, want counter %q", i, line, want[i])
			continue
		}
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			t.Errorf("line %d value %q is not a number", i, value)
		}
	}
}

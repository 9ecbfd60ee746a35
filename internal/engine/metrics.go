package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// metrics tracks operational counters across the engine.
var metrics struct {
	SearchRequests  atomic.Int64
	DetailFetches   atomic.Int64
	LLMCalls        atomic.Int64
	LLMErrors       atomic.Int64
	ApplySuccess    atomic.Int64
	ApplyDuplicates atomic.Int64
	ApplyFailures   atomic.Int64
	Rejections      atomic.Int64
	KnownSkips      atomic.Int64
	CyclesCompleted atomic.Int64
}

// GetMetrics returns a snapshot of all counters.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"search_requests":  metrics.SearchRequests.Load(),
		"detail_fetches":   metrics.DetailFetches.Load(),
		"llm_calls":        metrics.LLMCalls.Load(),
		"llm_errors":       metrics.LLMErrors.Load(),
		"apply_success":    metrics.ApplySuccess.Load(),
		"apply_duplicates": metrics.ApplyDuplicates.Load(),
		"apply_failures":   metrics.ApplyFailures.Load(),
		"rejections":       metrics.Rejections.Load(),
		"known_skips":      metrics.KnownSkips.Load(),
		"cycles_completed": metrics.CyclesCompleted.Load(),
	}
}

// FormatMetrics renders the counters as stable-ordered text, one
// "name value" pair per line.
func FormatMetrics() string {
	m := GetMetrics()
	keys := []string{
		"search_requests", "detail_fetches",
		"llm_calls", "llm_errors",
		"apply_success", "apply_duplicates", "apply_failures",
		"rejections", "known_skips", "cycles_completed",
	}
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

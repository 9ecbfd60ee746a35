// Package engine implements the automated application loop: paginated
// vacancy search, keyword/stop-word classification, LLM cover-letter
// drafting and at-most-once application submission backed by a durable
// decision store.
package engine

import (
	"strings"
	"time"
)

// Config holds engine wiring and timing, injected from main.
type Config struct {
	DataDir string // decision logs, cover letters, history DB

	ResumeID string // resume used for applications; required to start
	Gender   string // "male", "female" or "" — gender agreement in letters

	// Draft calls the letter-drafting model. Required to start a run.
	Draft DraftFunc

	// Token supplies the current bearer token. An empty return value
	// means authorization is gone and the run must not start a cycle.
	Token func() string

	DetailDelay   time.Duration // min spacing between detail fetches
	ApplyDelay    time.Duration // pause after each apply attempt
	CycleInterval time.Duration // wait between cycles
}

func (c *Config) applyDefaults() {
	if c.DetailDelay <= 0 {
		c.DetailDelay = time.Second
	}
	if c.ApplyDelay <= 0 {
		c.ApplyDelay = 5 * time.Second
	}
	if c.CycleInterval <= 0 {
		c.CycleInterval = time.Hour
	}
}

// CycleConfig are the search and filter parameters for one run.
// Immutable for the run's lifetime; changing them requires a restart.
type CycleConfig struct {
	Query          string
	Keywords       []string // lower-cased required keywords
	StopWords      []string // lower-cased exclusion terms
	MinKeywords    int      // 0 = accept unconditionally once stop-words clear
	Area           string
	SalaryFrom     int
	OnlyWithSalary bool
	PageDepth      int
	PerPage        int
}

func (c *CycleConfig) applyDefaults() {
	if c.PageDepth <= 0 {
		c.PageDepth = 5
	}
	if c.PerPage <= 0 {
		c.PerPage = 50
	}
}

// SplitTerms parses a comma-separated term list into lower-cased,
// trimmed, non-empty entries.
func SplitTerms(s string) []string {
	var out []string
	for _, part := range strings.Split(strings.ToLower(s), ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

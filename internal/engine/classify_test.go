package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseCfg() CycleConfig {
	return CycleConfig{
		Keywords:    []string{"go", "rust"},
		StopWords:   []string{"intern"},
		MinKeywords: 1,
	}
}

func TestClassify_Scenarios(t *testing.T) {
	cfg := baseCfg()

	cases := []struct {
		name   string
		text   string
		accept bool
		reason RejectReason
	}{
		{"keyword match", "senior rust engineer, remote", true, ""},
		{"stopword hit", "rust intern wanted", false, ReasonStopWord},
		{"no keywords", "java developer", false, ReasonInsufficientKeywords},
		{"keyword mid-word counts", "we use golang here", true, ""},
		{"stopword mid-word counts", "international rust team", false, ReasonStopWord},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Classify(tc.text, cfg)
			assert.Equal(t, tc.accept, d.Accept)
			if !tc.accept {
				assert.Equal(t, tc.reason, d.Reason)
			}
		})
	}
}

func TestClassify_StopWordPrecedesKeywords(t *testing.T) {
	// Satisfies the keyword threshold AND hits a stop-word: the
	// stop-word wins.
	d := Classify("go and rust intern position", baseCfg())
	assert.False(t, d.Accept)
	assert.Equal(t, ReasonStopWord, d.Reason)
	assert.Equal(t, "intern", d.StopWord)
}

func TestClassify_ThresholdBoundary(t *testing.T) {
	cfg := baseCfg()
	cfg.MinKeywords = 2

	// Exactly k-1 hits → reject.
	d := Classify("go developer wanted", cfg)
	assert.False(t, d.Accept)
	assert.Equal(t, ReasonInsufficientKeywords, d.Reason)
	assert.Equal(t, 1, d.Matched)

	// Exactly k hits → accept.
	d = Classify("go and rust developer", cfg)
	assert.True(t, d.Accept)
	assert.Equal(t, 2, d.Matched)
}

func TestClassify_ZeroMinimumAcceptsUnconditionally(t *testing.T) {
	cfg := CycleConfig{StopWords: []string{"intern"}, MinKeywords: 0}

	assert.True(t, Classify("anything at all", cfg).Accept)

	// Stop-words still apply first.
	d := Classify("intern anything", cfg)
	assert.False(t, d.Accept)
	assert.Equal(t, ReasonStopWord, d.Reason)
}

func TestClassify_EmptyKeywordsWithPositiveMinimum(t *testing.T) {
	// No keywords configured but a minimum of 1: nothing can match.
	cfg := CycleConfig{MinKeywords: 1}
	d := Classify("go and rust developer", cfg)
	assert.False(t, d.Accept)
	assert.Equal(t, ReasonInsufficientKeywords, d.Reason)
}

func TestClassify_Pure(t *testing.T) {
	cfg := baseCfg()
	text := "senior go engineer"
	first := Classify(text, cfg)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Classify(text, cfg))
	}
}

func TestClassifyText_LowercasesAndStripsMarkup(t *testing.T) {
	got := classifyText("Senior GO Engineer", "<p>Знание <b>Rust</b> обязательно</p>")
	assert.Equal(t, "senior go engineer знание rust обязательно", got)
}

func TestSplitTerms(t *testing.T) {
	assert.Equal(t, []string{"go", "rust", "c++"}, SplitTerms(" Go, RUST , c++,, "))
	assert.Nil(t, SplitTerms(""))
	assert.Nil(t, SplitTerms(" , ,"))
}

package engine

import "strings"

// RejectReason explains a negative classification.
type RejectReason string

const (
	ReasonStopWord             RejectReason = "stopword"
	ReasonInsufficientKeywords RejectReason = "insufficient_keywords"
)

// Decision is the classifier verdict for one vacancy.
type Decision struct {
	Accept   bool
	Reason   RejectReason // set when Accept is false
	StopWord string       // the matched exclusion term, for logging
	Matched  int          // keyword hits counted
}

// Classify decides whether a vacancy text passes the configured filters.
// text must already be lower-cased (see classifyText). Matching is plain
// substring containment, not tokenized: a keyword counts even mid-word.
//
// Stop-words are checked before keywords; a text hitting both an
// exclusion term and the keyword threshold is rejected.
func Classify(text string, cfg CycleConfig) Decision {
	for _, stop := range cfg.StopWords {
		if strings.Contains(text, stop) {
			return Decision{Reason: ReasonStopWord, StopWord: stop}
		}
	}

	matched := 0
	for _, kw := range cfg.Keywords {
		if strings.Contains(text, kw) {
			matched++
		}
	}
	if matched < cfg.MinKeywords {
		return Decision{Reason: ReasonInsufficientKeywords, Matched: matched}
	}
	return Decision{Accept: true, Matched: matched}
}

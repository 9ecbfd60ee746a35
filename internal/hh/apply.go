package hh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ApplyOutcome classifies the result of a negotiation attempt.
type ApplyOutcome int

const (
	// ApplyCreated — the application was accepted (HTTP 201).
	ApplyCreated ApplyOutcome = iota
	// ApplyDuplicate — a negotiation for this vacancy already exists.
	ApplyDuplicate
	// ApplyFailed — any other non-transient rejection (validation, quota,
	// employer policy). The detail carries the API description.
	ApplyFailed
)

func (o ApplyOutcome) String() string {
	switch o {
	case ApplyCreated:
		return "created"
	case ApplyDuplicate:
		return "duplicate"
	default:
		return "failed"
	}
}

// ApplyResult is the interpreted negotiation response.
type ApplyResult struct {
	Outcome ApplyOutcome
	Detail  string
}

// Apply submits an application (negotiation) with a cover letter.
// Transport-level failures return an error; API-level rejections are
// reported through the result so the caller can distinguish duplicates
// from hard failures.
//
// The POST is sent exactly once, never retried: a 5xx or timed-out
// answer may still have created the negotiation server-side, and
// re-sending would double-apply.
func (c *Client) Apply(ctx context.Context, vacancyID, resumeID, message string) (ApplyResult, error) {
	q := url.Values{}
	q.Set("vacancy_id", vacancyID)
	q.Set("resume_id", resumeID)
	q.Set("message", message)
	u := c.baseURL + "/negotiations?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return ApplyResult{}, fmt.Errorf("hh: apply %s: %w", vacancyID, err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return ApplyResult{}, fmt.Errorf("hh: apply %s: %w", vacancyID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated {
		return ApplyResult{Outcome: ApplyCreated}, nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var e errorResponse
	if json.Unmarshal(body, &e) == nil {
		if resp.StatusCode == http.StatusBadRequest && isDuplicateNegotiation(e) {
			return ApplyResult{Outcome: ApplyDuplicate, Detail: e.Description}, nil
		}
		if e.Description != "" {
			return ApplyResult{Outcome: ApplyFailed, Detail: e.Description}, nil
		}
	}
	return ApplyResult{
		Outcome: ApplyFailed,
		Detail:  fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
	}, nil
}

// isDuplicateNegotiation checks the structured 400 body for the
// "negotiation already exists" error code.
func isDuplicateNegotiation(e errorResponse) bool {
	for _, apiErr := range e.Errors {
		if apiErr.Type == "bad_argument" && strings.Contains(apiErr.Value, "negotiation_exists") {
			return true
		}
	}
	return false
}

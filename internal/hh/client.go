// Package hh is a minimal client for the HeadHunter (hh.ru) REST API:
// OAuth authorization, vacancy search/detail, resume access and
// negotiation (application) submission.
package hh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// DefaultBaseURL is the production API host.
	DefaultBaseURL = "https://api.hh.ru"

	userAgent = "go_apply/1.0"
)

// ErrNotFound is returned when a vacancy or resume does not exist.
var ErrNotFound = errors.New("hh: not found")

// TokenFunc supplies the current bearer token. An empty string means the
// client is not authorized.
type TokenFunc func() string

// Client talks to the HH API. All methods take a context and return
// wrapped errors; transient failures (connect errors, 429, 5xx) are
// retried with exponential backoff.
type Client struct {
	baseURL string
	token   TokenFunc
	http    *http.Client
	retry   retryConfig
}

// NewClient creates a Client. httpClient may be nil for a sane default.
func NewClient(baseURL string, token TokenFunc, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    httpClient,
		retry:   defaultRetry,
	}
}

// SearchParams are the query parameters for vacancy search.
type SearchParams struct {
	Text           string
	Area           string // region ID, empty = anywhere
	SalaryFrom     int    // 0 = no salary filter
	Currency       string // used only with SalaryFrom
	OnlyWithSalary bool
	Page           int
	PerPage        int
	OrderBy        string // e.g. "publication_time"
}

func (p SearchParams) values() url.Values {
	q := url.Values{}
	q.Set("text", p.Text)
	q.Set("page", strconv.Itoa(p.Page))
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.OrderBy != "" {
		q.Set("order_by", p.OrderBy)
	}
	if p.Area != "" {
		q.Set("area", p.Area)
	}
	q.Set("only_with_salary", strconv.FormatBool(p.OnlyWithSalary))
	if p.SalaryFrom > 0 {
		q.Set("salary", strconv.Itoa(p.SalaryFrom))
		currency := p.Currency
		if currency == "" {
			currency = "RUR"
		}
		q.Set("currency", currency)
	}
	return q
}

// Search fetches one page of vacancies.
func (c *Client) Search(ctx context.Context, p SearchParams) (*SearchResponse, error) {
	var out SearchResponse
	if err := c.getJSON(ctx, "/vacancies", p.values(), &out); err != nil {
		return nil, fmt.Errorf("hh: search: %w", err)
	}
	return &out, nil
}

// Vacancy fetches the full detail of a single vacancy.
func (c *Client) Vacancy(ctx context.Context, id string) (*VacancyDetail, error) {
	var out VacancyDetail
	if err := c.getJSON(ctx, "/vacancies/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, fmt.Errorf("hh: vacancy %s: %w", id, err)
	}
	return &out, nil
}

// Resumes lists the authorized user's resumes.
func (c *Client) Resumes(ctx context.Context) ([]ResumeRef, error) {
	var out resumeListResponse
	if err := c.getJSON(ctx, "/resumes/mine", nil, &out); err != nil {
		return nil, fmt.Errorf("hh: resumes: %w", err)
	}
	return out.Items, nil
}

// Resume fetches the full resume used for letter drafting.
func (c *Client) Resume(ctx context.Context, id string) (*ResumeDetail, error) {
	var out ResumeDetail
	if err := c.getJSON(ctx, "/resumes/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, fmt.Errorf("hh: resume %s: %w", id, err)
	}
	return &out, nil
}

// getJSON performs an authorized GET with retry and decodes the response.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	resp, err := c.doRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		c.setHeaders(req)
		return req, nil
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
	if c.token != nil {
		if t := c.token(); t != "" {
			req.Header.Set("Authorization", "Bearer "+t)
		}
	}
}

// readErrorBody extracts the description from a structured error body,
// falling back to the first kilobyte of raw text.
func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 1024))
	if err != nil {
		return ""
	}
	var e errorResponse
	if json.Unmarshal(body, &e) == nil && e.Description != "" {
		return e.Description
	}
	return string(body)
}

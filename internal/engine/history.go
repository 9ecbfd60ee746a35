package engine

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SentApplication is one row of the application journal: the durable
// record behind the presentation layer's "sent" list.
type SentApplication struct {
	ID        int64  `json:"id"`
	VacancyID string `json:"vacancy_id"`
	Title     string `json:"title"`
	Employer  string `json:"employer"`
	URL       string `json:"url"`
	Status    string `json:"status"` // sent | duplicate | failed
	Detail    string `json:"detail,omitempty"`
	CreatedAt string `json:"created_at"`
}

// History is a SQLite journal of apply attempts. Unlike the decision
// store it is informational only: the engine never consults it for
// dedup decisions.
type History struct {
	db *sql.DB
}

// OpenHistory opens (or creates) the journal database under dir.
func OpenHistory(dir string) (*History, error) {
	db, err := sql.Open("sqlite", filepath.Join(dir, "history.db"))
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS applications (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		vacancy_id TEXT NOT NULL,
		title      TEXT NOT NULL,
		employer   TEXT,
		url        TEXT,
		status     TEXT NOT NULL,
		detail     TEXT,
		created_at TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: init schema: %w", err)
	}
	return &History{db: db}, nil
}

// Add appends one attempt to the journal.
func (h *History) Add(ctx context.Context, a SentApplication) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO applications (vacancy_id, title, employer, url, status, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.VacancyID, a.Title, a.Employer, a.URL, a.Status, a.Detail, now,
	)
	if err != nil {
		return fmt.Errorf("history: insert %s: %w", a.VacancyID, err)
	}
	return nil
}

// Recent returns the latest attempts, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]SentApplication, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, vacancy_id, title, employer, url, status, detail, created_at
		 FROM applications ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query: %w", err)
	}
	defer rows.Close()

	var out []SentApplication
	for rows.Next() {
		var a SentApplication
		var employer, url, detail sql.NullString
		if err := rows.Scan(&a.ID, &a.VacancyID, &a.Title, &employer, &url,
			&a.Status, &detail, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		a.Employer = employer.String
		a.URL = url.String
		a.Detail = detail.String
		out = append(out, a)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (h *History) Close() error {
	return h.db.Close()
}

package engine

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Outcome is the terminal classification of a vacancy for this account.
type Outcome string

const (
	OutcomeApplied  Outcome = "applied"
	OutcomeRejected Outcome = "rejected"
)

const (
	appliedFile  = "applied_vacancies.txt"
	rejectedFile = "rejected_vacancies.txt"
	lettersDir   = "cover_letters"
)

// Store is the durable dedup ledger: two append-only line files of
// vacancy IDs, mirrored into in-memory sets, plus a directory of sent
// cover letters. There is no deletion or compaction; growth is bounded
// by one human's application volume.
type Store struct {
	dir string

	mu        sync.Mutex
	applied   map[string]struct{}
	rejected  map[string]struct{}
	appliedW  *os.File
	rejectedW *os.File
}

// OpenStore loads both decision logs from dir into memory and opens
// them for appending. Missing files are treated as empty.
func OpenStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("store: mkdir %s: %w", dir, err)
	}

	s := &Store{
		dir:      dir,
		applied:  map[string]struct{}{},
		rejected: map[string]struct{}{},
	}

	if err := loadIDs(filepath.Join(dir, appliedFile), s.applied); err != nil {
		return nil, err
	}
	if err := loadIDs(filepath.Join(dir, rejectedFile), s.rejected); err != nil {
		return nil, err
	}

	var err error
	if s.appliedW, err = openAppend(filepath.Join(dir, appliedFile)); err != nil {
		return nil, err
	}
	if s.rejectedW, err = openAppend(filepath.Join(dir, rejectedFile)); err != nil {
		s.appliedW.Close()
		return nil, err
	}

	slog.Info("store: loaded decision logs",
		slog.Int("applied", len(s.applied)),
		slog.Int("rejected", len(s.rejected)),
		slog.String("dir", dir),
	)
	return s, nil
}

func loadIDs(path string, set map[string]struct{}) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("store: open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if id := strings.TrimSpace(sc.Text()); id != "" {
			set[id] = struct{}{}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("store: read %s: %w", path, err)
	}
	return nil
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
	if err != nil {
		return nil, fmt.Errorf("store: open %s for append: %w", path, err)
	}
	return f, nil
}

// Contains reports whether the vacancy has a recorded decision of
// either outcome.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.applied[id]; ok {
		return true
	}
	_, ok := s.rejected[id]
	return ok
}

// Record appends the ID to the outcome's durable log and in-memory set
// as one unit. Safe to call repeatedly for the same ID: duplicate lines
// in the log are tolerated, the set dedups reads.
func (s *Store) Record(id string, outcome Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, w := s.applied, s.appliedW
	if outcome == OutcomeRejected {
		set, w = s.rejected, s.rejectedW
	}
	if _, ok := set[id]; ok {
		return nil
	}
	if _, err := fmt.Fprintln(w, id); err != nil {
		return fmt.Errorf("store: append %s to %s log: %w", id, outcome, err)
	}
	set[id] = struct{}{}
	return nil
}

// Counts returns the current set sizes.
func (s *Store) Counts() (applied, rejected int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.applied), len(s.rejected)
}

// SaveLetter writes a successfully submitted cover letter for audit,
// keyed by vacancy ID and sanitized vacancy name. Returns the file path.
func (s *Store) SaveLetter(id, vacancyName, text string) (string, error) {
	dir := filepath.Join(s.dir, lettersDir)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("store: mkdir %s: %w", dir, err)
	}
	name := fmt.Sprintf("vacancy_%s_%s.txt", id, SanitizeFilename(vacancyName))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0640); err != nil {
		return "", fmt.Errorf("store: write letter %s: %w", path, err)
	}
	return path, nil
}

// Close releases the append handles.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err1 := s.appliedW.Close()
	err2 := s.rejectedW.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

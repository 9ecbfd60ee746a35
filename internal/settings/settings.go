// Package settings persists search parameters between runs as a flat
// key=value text file, compatible with a hand-edited settings.txt.
package settings

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Settings are the persisted search-form values. Everything is kept as
// strings, as entered; parsing happens where the values are consumed.
type Settings struct {
	Keyword        string
	ExcludeKeyword string
	Area           string
	Resume         string
	SalaryFrom     string
	OnlyWithSalary string
	MinKeywords    string
	SearchDepth    string
}

// field name ↔ struct mapping, in file order.
var keys = []string{
	"keyword", "exclude_keyword", "area", "resume",
	"salary_from", "only_with_salary", "min_keywords", "search_depth",
}

func (s *Settings) get(key string) string {
	switch key {
	case "keyword":
		return s.Keyword
	case "exclude_keyword":
		return s.ExcludeKeyword
	case "area":
		return s.Area
	case "resume":
		return s.Resume
	case "salary_from":
		return s.SalaryFrom
	case "only_with_salary":
		return s.OnlyWithSalary
	case "min_keywords":
		return s.MinKeywords
	case "search_depth":
		return s.SearchDepth
	}
	return ""
}

func (s *Settings) set(key, value string) {
	switch key {
	case "keyword":
		s.Keyword = value
	case "exclude_keyword":
		s.ExcludeKeyword = value
	case "area":
		s.Area = value
	case "resume":
		s.Resume = value
	case "salary_from":
		s.SalaryFrom = value
	case "only_with_salary":
		s.OnlyWithSalary = value
	case "min_keywords":
		s.MinKeywords = value
	case "search_depth":
		s.SearchDepth = value
	}
}

// Load reads settings from path. A missing file yields zero settings,
// not an error. Unknown keys are ignored; lines without '=' are skipped.
func Load(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("settings: file not found", slog.String("path", path))
			return s, nil
		}
		return s, fmt.Errorf("settings: read %s: %w", path, err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		s.set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return s, nil
}

// Save writes settings to path, one key=value per line in stable order.
func Save(path string, s Settings) error {
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s=%s\n", k, s.get(k))
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0640); err != nil {
		return fmt.Errorf("settings: write %s: %w", path, err)
	}
	return nil
}

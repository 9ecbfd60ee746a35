package engine

import (
	"fmt"
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"

	"github.com/anatolykoptev/go_apply/internal/hh"
)

// Caps for the resume section of the drafting prompt: enough signal for
// the model without blowing the context on long resumes.
const (
	maxExperienceEntries = 3
	maxSkills            = 10
	maxEducationEntries  = 2
	maxExpDescription    = 200
)

// FormatResumeProfile renders a resume into the compact text block the
// drafting prompt embeds. Returns "" for a nil resume.
func FormatResumeProfile(r *hh.ResumeDetail) string {
	if r == nil {
		return ""
	}

	var lines []string
	if r.Title != "" {
		lines = append(lines, "Специализация: "+r.Title)
	}

	if len(r.Experience) > 0 {
		lines = append(lines, "", "Опыт работы:")
		for i, exp := range r.Experience {
			if i >= maxExperienceEntries {
				break
			}
			company := exp.Company
			if company == "" {
				company = "Неизвестная компания"
			}
			position := exp.Position
			if position == "" {
				position = "Неизвестная должность"
			}
			end := formatResumeDate(exp.End)
			if exp.End == "" {
				end = "настоящее время"
			}
			lines = append(lines, fmt.Sprintf("- %s в %s (%s - %s)",
				position, company, formatResumeDate(exp.Start), end))
			if desc := CleanHTML(exp.Description); desc != "" {
				lines = append(lines, "  Обязанности: "+strutil.TruncateWith(desc, maxExpDescription, ""))
			}
		}
	}

	if len(r.KeySkills) > 0 {
		var names []string
		for i, sk := range r.KeySkills {
			if i >= maxSkills {
				break
			}
			if sk.Name != "" {
				names = append(names, sk.Name)
			}
		}
		if len(names) > 0 {
			lines = append(lines, "", "Ключевые навыки: "+strings.Join(names, ", "))
		}
	}

	if len(r.Education.Primary) > 0 {
		lines = append(lines, "", "Образование:")
		for i, edu := range r.Education.Primary {
			if i >= maxEducationEntries {
				break
			}
			if edu.Name == "" || edu.Organization == "" {
				continue
			}
			lines = append(lines, fmt.Sprintf("- %s, %s (%d)", edu.Name, edu.Organization, edu.Year))
		}
	}

	if len(r.Language) > 0 {
		var langs []string
		for _, l := range r.Language {
			if l.Name != "" && l.Level.Name != "" {
				langs = append(langs, fmt.Sprintf("%s (%s)", l.Name, l.Level.Name))
			}
		}
		if len(langs) > 0 {
			lines = append(lines, "", "Языки: "+strings.Join(langs, ", "))
		}
	}

	return strings.Join(lines, "\n")
}

// formatResumeDate converts "2021-03-01" to "03.2021"; anything that
// doesn't parse comes back as "неизвестно".
func formatResumeDate(s string) string {
	parts := strings.Split(s, "-")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "неизвестно"
	}
	return parts[1] + "." + parts[0]
}

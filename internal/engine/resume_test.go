package engine

import (
	"strings"
	"testing"

	"github.com/anatolykoptev/go_apply/internal/hh"
)

func fullResume() *hh.ResumeDetail {
	return &hh.ResumeDetail{
		Title: "Go-разработчик",
		Experience: []hh.Experience{
			{Company: "Яндекс", Position: "Backend-разработчик", Start: "2021-03-01", Description: "<p>Сервисы на Go</p>"},
			{Company: "Ozon", Position: "Разработчик", Start: "2018-06-01", End: "2021-02-01"},
			{Company: "Третья", Position: "Стажер", Start: "2017-01-01", End: "2018-05-01"},
			{Company: "Четвертая", Position: "Лишняя", Start: "2016-01-01", End: "2017-01-01"},
		},
		KeySkills: []hh.KeySkill{{Name: "Go"}, {Name: "PostgreSQL"}, {Name: "Docker"}},
		Education: hh.Education{Primary: []hh.EducationEntry{
			{Name: "Прикладная математика", Organization: "МГУ", Year: 2017},
		}},
		Language: []hh.Language{
			{Name: "Русский", Level: hh.LanguageLevel{Name: "Родной"}},
			{Name: "Английский", Level: hh.LanguageLevel{Name: "B2"}},
		},
	}
}

func TestFormatResumeProfile_Full(t *testing.T) {
	got := FormatResumeProfile(fullResume())

	for _, want := range []string{
		"Специализация: Go-разработчик",
		"Опыт работы:",
		"- Backend-разработчик в Яндекс (03.2021 - настоящее время)",
		"- Разработчик в Ozon (06.2018 - 02.2021)",
		"Обязанности: Сервисы на Go",
		"Ключевые навыки: Go, PostgreSQL, Docker",
		"- Прикладная математика, МГУ (2017)",
		"Языки: Русский (Родной), Английский (B2)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("profile missing %q\n---\n%s", want, got)
		}
	}

	if strings.Contains(got, "Четвертая") {
		t.Error("only the first three experience entries may appear")
	}
}

func TestFormatResumeProfile_Nil(t *testing.T) {
	if got := FormatResumeProfile(nil); got != "" {
		t.Errorf("nil resume should format to empty, got %q", got)
	}
}

func TestFormatResumeProfile_MissingFields(t *testing.T) {
	r := &hh.ResumeDetail{
		Experience: []hh.Experience{{Start: "bogus"}},
	}
	got := FormatResumeProfile(r)

	if !strings.Contains(got, "Неизвестная компания") || !strings.Contains(got, "Неизвестная должность") {
		t.Errorf("missing company/position placeholders:\n%s", got)
	}
	if !strings.Contains(got, "неизвестно") {
		t.Errorf("unparseable date must render as 'неизвестно':\n%s", got)
	}
	if strings.Contains(got, "Специализация") {
		t.Error("no title line without a title")
	}
}

func TestFormatResumeDate(t *testing.T) {
	cases := []struct{ in, want string }{
		{"2021-03-01", "03.2021"},
		{"2021-03", "03.2021"},
		{"2021", "неизвестно"},
		{"", "неизвестно"},
	}
	for _, tc := range cases {
		if got := formatResumeDate(tc.in); got != tc.want {
			t.Errorf("formatResumeDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

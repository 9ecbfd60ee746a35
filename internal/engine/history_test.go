package engine

import (
	"context"
	"testing"
)

func TestHistory_AddAndRecent(t *testing.T) {
	h, err := OpenHistory(t.TempDir())
	if err != nil {
		t.Fatalf("OpenHistory: %v", err)
	}
	defer h.Close()
	ctx := context.Background()

	attempts := []SentApplication{
		{VacancyID: "1", Title: "Go Dev", Employer: "Acme", URL: "https://hh.ru/vacancy/1", Status: "sent"},
		{VacancyID: "2", Title: "Backend", Employer: "Globex", Status: "duplicate", Detail: "Negotiation already exists"},
		{VacancyID: "3", Title: "SRE", Status: "failed", Detail: "test required"},
	}
	for _, a := range attempts {
		if err := h.Add(ctx, a); err != nil {
			t.Fatalf("Add %s: %v", a.VacancyID, err)
		}
	}

	recent, err := h.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("got %d rows, want 3", len(recent))
	}
	// Newest first.
	if recent[0].VacancyID != "3" || recent[2].VacancyID != "1" {
		t.Errorf("unexpected order: %s, %s, %s", recent[0].VacancyID, recent[1].VacancyID, recent[2].VacancyID)
	}
	if recent[1].Detail != "Negotiation already exists" {
		t.Errorf("detail = %q", recent[1].Detail)
	}
	if recent[0].CreatedAt == "" {
		t.Error("created_at not set")
	}
}

func TestHistory_RecentLimit(t *testing.T) {
	h, err := OpenHistory(t.TempDir())
	if err != nil {
		t.Fatalf("OpenHistory: %v", err)
	}
	defer h.Close()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := h.Add(ctx, SentApplication{VacancyID: "v", Title: "t", Status: "sent"}); err != nil {
			t.Fatal(err)
		}
	}
	recent, err := h.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("got %d rows, want 2", len(recent))
	}
}

func TestHistory_RecentEmpty(t *testing.T) {
	h, err := OpenHistory(t.TempDir())
	if err != nil {
		t.Fatalf("OpenHistory: %v", err)
	}
	defer h.Close()

	recent, err := h.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("got %d rows, want 0", len(recent))
	}
}

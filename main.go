// go_apply — automated vacancy responder for hh.ru.
//
// Polls vacancy search, filters results against keyword/stop-word
// criteria and the durable decision history, drafts a personalized
// cover letter with an LLM and submits the application. Runs until
// interrupted; every decision survives restarts.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
	"github.com/joho/godotenv"

	"github.com/anatolykoptev/go_apply/internal/engine"
	"github.com/anatolykoptev/go_apply/internal/hh"
	"github.com/anatolykoptev/go_apply/internal/settings"
)

var version = "dev"

func main() {
	godotenv.Load() //nolint:errcheck // .env is optional

	slog.Info("starting go_apply", slog.String("version", version))

	if err := run(); err != nil {
		slog.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clientID := env.Str("HH_CLIENT_ID", "")
	clientSecret := env.Str("HH_CLIENT_SECRET", "")
	redirectURI := env.Str("HH_REDIRECT_URI", "http://localhost:8080/")
	llmKey := env.Str("LLM_API_KEY", "")
	if clientID == "" || clientSecret == "" {
		return errMissingConfig("HH_CLIENT_ID / HH_CLIENT_SECRET")
	}
	if llmKey == "" {
		return errMissingConfig("LLM_API_KEY")
	}

	settingsPath := env.Str("SETTINGS_FILE", "settings.txt")
	st, err := settings.Load(settingsPath)
	if err != nil {
		return err
	}

	cycle := cycleFromSettings(st)
	if cycle.Query == "" {
		return errMissingConfig("search keywords (SEARCH_KEYWORDS or settings.txt)")
	}

	tok, err := hh.Authorize(ctx, hh.OAuthConfig(clientID, clientSecret, redirectURI))
	if err != nil {
		return err
	}
	slog.Info("authorized")

	board := hh.NewClient(
		env.Str("HH_API_URL", hh.DefaultBaseURL),
		func() string { return tok.AccessToken },
		&http.Client{Timeout: 15 * time.Second},
	)

	resumeID, err := selectResume(ctx, board, env.Str("RESUME_ID", st.Resume))
	if err != nil {
		return err
	}

	dataDir := env.Str("DATA_DIR", ".")
	store, err := engine.OpenStore(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	history, err := engine.OpenHistory(dataDir)
	if err != nil {
		slog.Warn("history journal disabled", slog.Any("error", err))
		history = nil
	} else {
		defer history.Close()
	}

	llmClient := llm.NewClient(
		env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		llmKey,
		env.Str("LLM_MODEL", "gemma-3-27b-it"),
		llm.WithTemperature(env.Float("LLM_TEMPERATURE", 0.4)),
		llm.WithMaxTokens(env.Int("LLM_MAX_TOKENS", 2048)),
		llm.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
	)

	cfg := engine.Config{
		DataDir:  dataDir,
		ResumeID: resumeID,
		Gender:   env.Str("USER_GENDER", ""),
		Draft: func(ctx context.Context, prompt string) (string, error) {
			return llmClient.Complete(ctx, "", prompt)
		},
		Token:         func() string { return tok.AccessToken },
		DetailDelay:   env.Duration("DETAIL_DELAY", time.Second),
		ApplyDelay:    env.Duration("APPLY_DELAY", 5*time.Second),
		CycleInterval: env.Duration("CYCLE_INTERVAL", time.Hour),
	}

	eng, err := engine.New(cfg, cycle, board, store, history, engine.LogNotifier{})
	if err != nil {
		return err
	}

	// Persist the effective search parameters for the next run.
	st.Resume = resumeID
	if err := settings.Save(settingsPath, st); err != nil {
		slog.Warn("settings not saved", slog.Any("error", err))
	}

	err = eng.Run(ctx)

	// Session counters to the terminal on shutdown.
	fmt.Print(engine.FormatMetrics())
	return err
}

// cycleFromSettings builds the run's search/filter parameters from the
// settings file, with env overrides.
func cycleFromSettings(st settings.Settings) engine.CycleConfig {
	query := env.Str("SEARCH_KEYWORDS", st.Keyword)
	return engine.CycleConfig{
		Query:          query,
		Keywords:       engine.SplitTerms(query),
		StopWords:      engine.SplitTerms(env.Str("EXCLUDE_KEYWORDS", st.ExcludeKeyword)),
		MinKeywords:    atoiDefault(env.Str("MIN_KEYWORDS", st.MinKeywords), 1),
		Area:           env.Str("SEARCH_AREA", st.Area),
		SalaryFrom:     atoiDefault(env.Str("SALARY_FROM", st.SalaryFrom), 0),
		OnlyWithSalary: env.Str("ONLY_WITH_SALARY", st.OnlyWithSalary) == "true",
		PageDepth:      atoiDefault(env.Str("SEARCH_DEPTH", st.SearchDepth), 5),
		PerPage:        env.Int("PER_PAGE", 50),
	}
}

// selectResume resolves the resume to apply with: explicit ID wins, a
// single-resume account auto-selects, anything else lists the options
// and fails so the user can choose.
func selectResume(ctx context.Context, board *hh.Client, resumeID string) (string, error) {
	if resumeID != "" {
		return resumeID, nil
	}
	refs, err := board.Resumes(ctx)
	if err != nil {
		return "", err
	}
	if len(refs) == 1 {
		slog.Info("using the only resume",
			slog.String("id", refs[0].ID),
			slog.String("title", refs[0].Title),
		)
		return refs[0].ID, nil
	}
	for _, r := range refs {
		slog.Info("available resume", slog.String("id", r.ID), slog.String("title", r.Title))
	}
	return "", errMissingConfig("RESUME_ID (pick one of the resumes above)")
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

type errMissingConfig string

func (e errMissingConfig) Error() string {
	return "missing configuration: " + string(e)
}

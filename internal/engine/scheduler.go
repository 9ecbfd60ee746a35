package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/anatolykoptev/go_apply/internal/hh"
)

// ErrNotAuthorized means the token supplier returned nothing; the run
// must not start and the presentation layer has been signaled.
var ErrNotAuthorized = errors.New("engine: not authorized")

// Run executes cycles until ctx is cancelled. It is the single worker:
// pagination, classification, drafting and submission are strictly
// sequential. Returns nil on cancellation, an error only when the run
// could not start at all.
func (e *Engine) Run(ctx context.Context) error {
	if e.cfg.Token != nil && e.cfg.Token() == "" {
		e.notify.ReauthRequired()
		return ErrNotAuthorized
	}

	// Fetch the resume once per run. Failure is not fatal: letters are
	// drafted without the profile, as the original flow allows.
	if r, err := e.board.Resume(ctx, e.cfg.ResumeID); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		slog.Warn("resume fetch failed, drafting letters without profile",
			slog.String("resume", e.cfg.ResumeID),
			slog.Any("error", err),
		)
	} else {
		e.profile = FormatResumeProfile(r)
	}

	slog.Info("run started",
		slog.String("query", e.cycle.Query),
		slog.Int("page_depth", e.cycle.PageDepth),
		slog.Int("min_keywords", e.cycle.MinKeywords),
		slog.Duration("cycle_interval", e.cfg.CycleInterval),
	)

	for {
		e.runCycle(ctx)
		if ctx.Err() != nil {
			break
		}
		metrics.CyclesCompleted.Add(1)
		slog.Info("cycle complete, waiting", slog.Duration("interval", e.cfg.CycleInterval))
		if !sleepCtx(ctx, e.cfg.CycleInterval) {
			break
		}
	}
	slog.Info("run stopped", slog.Any("metrics", GetMetrics()))
	return nil
}

// cycleStats aggregates what one cycle did, for the end-of-cycle log line.
type cycleStats struct {
	pages     int
	evaluated int
	known     int
	applied   int
	rejected  int
	skipped   int
}

// runCycle walks pages 0..depth-1 of the search, dispatching each new
// vacancy through classifier → letter → submitter. Cancellation is
// observed before each page and each vacancy.
func (e *Engine) runCycle(ctx context.Context) cycleStats {
	var stats cycleStats

	for page := 0; page < e.cycle.PageDepth; page++ {
		if ctx.Err() != nil {
			return stats
		}

		metrics.SearchRequests.Add(1)
		resp, err := e.board.Search(ctx, hh.SearchParams{
			Text:           e.cycle.Query,
			Area:           e.cycle.Area,
			SalaryFrom:     e.cycle.SalaryFrom,
			OnlyWithSalary: e.cycle.OnlyWithSalary,
			Page:           page,
			PerPage:        e.cycle.PerPage,
			OrderBy:        "publication_time",
		})
		if err != nil {
			if ctx.Err() != nil {
				return stats
			}
			// Transient: skip this page, no decisions recorded.
			slog.Warn("search page failed, skipping", slog.Int("page", page), slog.Any("error", err))
			continue
		}
		if len(resp.Items) == 0 {
			slog.Info("no more results", slog.Int("page", page))
			break
		}
		stats.pages++

		known := 0
		for _, v := range resp.Items {
			if ctx.Err() != nil {
				return stats
			}
			if e.store.Contains(v.ID) {
				metrics.KnownSkips.Add(1)
				stats.known++
				known++
				continue
			}
			e.processVacancy(ctx, v, &stats)
		}

		// A page of nothing but known IDs means the frontier of new
		// content was already covered by an earlier cycle.
		if known == len(resp.Items) {
			slog.Info("page fully known, ending cycle early",
				slog.Int("page", page),
				slog.Int("items", known),
			)
			break
		}
	}

	slog.Info("cycle stats",
		slog.Int("pages", stats.pages),
		slog.Int("evaluated", stats.evaluated),
		slog.Int("known", stats.known),
		slog.Int("applied", stats.applied),
		slog.Int("rejected", stats.rejected),
		slog.Int("skipped", stats.skipped),
	)
	return stats
}

// processVacancy takes one previously-unseen vacancy through detail
// fetch, classification and, when accepted, drafting + submission.
// Transient failures leave no decision so the vacancy is retried next
// cycle; classifier rejections and apply attempts are terminal.
func (e *Engine) processVacancy(ctx context.Context, v hh.Vacancy, stats *cycleStats) {
	// Spacing between detail fetches; interruptible by cancellation.
	if err := e.detailLimiter.Wait(ctx); err != nil {
		return
	}

	metrics.DetailFetches.Add(1)
	detail, err := e.board.Vacancy(ctx, v.ID)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		stats.skipped++
		slog.Warn("detail fetch failed, skipping", slog.String("vacancy", v.ID), slog.Any("error", err))
		return
	}
	stats.evaluated++

	decision := Classify(classifyText(detail.Name, detail.Description), e.cycle)
	if !decision.Accept {
		metrics.Rejections.Add(1)
		stats.rejected++
		if err := e.store.Record(v.ID, OutcomeRejected); err != nil {
			slog.Error("record rejected failed", slog.String("vacancy", v.ID), slog.Any("error", err))
		}
		slog.Info("vacancy rejected",
			slog.String("vacancy", v.ID),
			slog.String("name", v.Name),
			slog.String("reason", string(decision.Reason)),
			slog.String("stopword", decision.StopWord),
			slog.Int("matched", decision.Matched),
		)
		return
	}

	letter, err := e.draftLetter(ctx, detail)
	if err != nil {
		// No decision recorded: eligible for retry next cycle.
		stats.skipped++
		slog.Warn("letter drafting failed, skipping", slog.String("vacancy", v.ID), slog.Any("error", err))
		return
	}

	e.submit(ctx, v, letter)
	stats.applied++

	// Pause after every attempt, failed ones included: the remote's
	// rate expectations don't care about the outcome.
	sleepCtx(ctx, e.cfg.ApplyDelay)
}

// sleepCtx waits d or until ctx is cancelled; reports whether the full
// wait elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

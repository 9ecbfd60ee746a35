package engine

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_apply/internal/hh"
)

// submit runs one apply attempt and records its terminal outcome.
//
// Every attempt lands the ID in the applied set: success, duplicate,
// hard failure, even a transport error — a timed-out POST may still
// have created the negotiation server-side, so the engine guarantees
// at most one attempt ever per vacancy, deliberately trading retry of
// possibly-transient failures for never double-applying.
func (e *Engine) submit(ctx context.Context, v hh.Vacancy, letter string) {
	res, err := e.board.Apply(ctx, v.ID, e.cfg.ResumeID, letter)
	if err != nil {
		res = hh.ApplyResult{Outcome: hh.ApplyFailed, Detail: err.Error()}
	}

	if recErr := e.store.Record(v.ID, OutcomeApplied); recErr != nil {
		slog.Error("submit: record applied failed",
			slog.String("vacancy", v.ID),
			slog.Any("error", recErr),
		)
	}

	switch res.Outcome {
	case hh.ApplyCreated:
		metrics.ApplySuccess.Add(1)
		if path, err := e.store.SaveLetter(v.ID, v.Name, letter); err != nil {
			slog.Error("submit: save letter failed", slog.String("vacancy", v.ID), slog.Any("error", err))
		} else {
			slog.Debug("submit: letter saved", slog.String("path", path))
		}
		e.journal(ctx, v, "sent", "")
		e.notify.ApplicationSent(v.Employer.Name, v.AlternateURL)
		slog.Info("application sent",
			slog.String("vacancy", v.ID),
			slog.String("name", v.Name),
			slog.String("employer", v.Employer.Name),
		)

	case hh.ApplyDuplicate:
		metrics.ApplyDuplicates.Add(1)
		e.journal(ctx, v, "duplicate", res.Detail)
		slog.Info("application already exists, marked applied",
			slog.String("vacancy", v.ID),
			slog.String("name", v.Name),
		)

	default:
		metrics.ApplyFailures.Add(1)
		e.journal(ctx, v, "failed", res.Detail)
		slog.Warn("application rejected, marked applied to prevent retries",
			slog.String("vacancy", v.ID),
			slog.String("name", v.Name),
			slog.String("detail", res.Detail),
		)
	}
}

// journal records the attempt in the history DB when one is attached.
func (e *Engine) journal(ctx context.Context, v hh.Vacancy, status, detail string) {
	if e.history == nil {
		return
	}
	err := e.history.Add(ctx, SentApplication{
		VacancyID: v.ID,
		Title:     v.Name,
		Employer:  v.Employer.Name,
		URL:       v.AlternateURL,
		Status:    status,
		Detail:    detail,
	})
	if err != nil {
		slog.Error("submit: journal failed", slog.String("vacancy", v.ID), slog.Any("error", err))
	}
}

package engine

import (
	"context"
	"errors"

	"golang.org/x/time/rate"

	"github.com/anatolykoptev/go_apply/internal/hh"
)

// Board is the slice of the job-board API the engine needs. *hh.Client
// satisfies it; tests substitute fakes.
type Board interface {
	Search(ctx context.Context, p hh.SearchParams) (*hh.SearchResponse, error)
	Vacancy(ctx context.Context, id string) (*hh.VacancyDetail, error)
	Resume(ctx context.Context, id string) (*hh.ResumeDetail, error)
	Apply(ctx context.Context, vacancyID, resumeID, message string) (hh.ApplyResult, error)
}

// Engine owns one application run: the board client, the decision
// store, the drafting callback and the cached resume profile. All state
// is explicit; nothing engine-level is package-global except metrics.
type Engine struct {
	cfg     Config
	cycle   CycleConfig
	board   Board
	store   *Store
	history *History // nil disables the journal
	notify  Notifier

	detailLimiter *rate.Limiter

	profile string // formatted resume text, cached for the run
}

// New wires an Engine. history may be nil; notify defaults to LogNotifier.
func New(cfg Config, cycle CycleConfig, board Board, store *Store, history *History, notify Notifier) (*Engine, error) {
	if board == nil {
		return nil, errors.New("engine: board client is required")
	}
	if store == nil {
		return nil, errors.New("engine: decision store is required")
	}
	if cfg.Draft == nil {
		return nil, errors.New("engine: drafting credential is not configured")
	}
	if cfg.ResumeID == "" {
		return nil, errors.New("engine: no resume selected")
	}
	if notify == nil {
		notify = LogNotifier{}
	}
	cfg.applyDefaults()
	cycle.applyDefaults()

	e := &Engine{
		cfg:           cfg,
		cycle:         cycle,
		board:         board,
		store:         store,
		history:       history,
		notify:        notify,
		detailLimiter: rate.NewLimiter(rate.Every(cfg.DetailDelay), 1),
	}
	// Drain the initial burst so the very first detail fetch is
	// throttled like all later ones.
	e.detailLimiter.Allow()
	return e, nil
}

// Package cascade runs ordered fallback strategy chains. Each signal
// (keywords, menus, basic fields, competitors) owns an ordered list of
// independent strategies; the runner attempts them one at a time and
// short-circuits on the first non-empty validated result. Partial
// results from different strategies are never merged, and failed
// strategies are never re-attempted.
package cascade

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/placelift/place-audit/internal/model"
	"github.com/placelift/place-audit/pkg/browser"
)

// Input is the shared material every strategy works from.
type Input struct {
	Doc      *browser.Document
	Client   browser.Client
	PlaceURL string
	Depth    model.Depth
}

// Strategy is one independent extraction attempt for a signal.
type Strategy[T any] interface {
	Name() string
	Attempt(ctx context.Context, in *Input) ([]T, error)
}

// Trail accumulates one entry per attempted strategy, success or not.
type Trail struct {
	entries []model.TrailEntry
}

// Entries returns the recorded attempts.
func (t *Trail) Entries() []model.TrailEntry {
	return t.entries
}

func (t *Trail) record(e model.TrailEntry) {
	t.entries = append(t.entries, e)
}

// Run attempts strategies in order and returns the first result that is
// still non-empty after normalization, together with the name of the
// winning strategy. An empty result after exhausting every strategy is
// not an error; the signal is simply absent.
func Run[T any](ctx context.Context, signal string, in *Input, normalize func([]T) []T, trail *Trail, strategies ...Strategy[T]) ([]T, string) {
	for _, s := range strategies {
		if ctx.Err() != nil {
			return nil, ""
		}

		start := time.Now()
		items, err := s.Attempt(ctx, in)
		elapsed := time.Since(start).Milliseconds()

		if err != nil {
			trail.record(model.TrailEntry{
				Signal:    signal,
				Strategy:  s.Name(),
				ElapsedMS: elapsed,
				Outcome:   model.OutcomeError,
				Error:     eris.ToString(err, false),
			})
			zap.L().Debug("cascade: strategy failed, trying next",
				zap.String("signal", signal),
				zap.String("strategy", s.Name()),
				zap.Error(err),
			)
			continue
		}

		if normalize != nil {
			items = normalize(items)
		}
		if len(items) == 0 {
			trail.record(model.TrailEntry{
				Signal:    signal,
				Strategy:  s.Name(),
				ElapsedMS: elapsed,
				Outcome:   model.OutcomeEmpty,
			})
			continue
		}

		trail.record(model.TrailEntry{
			Signal:    signal,
			Strategy:  s.Name(),
			ElapsedMS: elapsed,
			Outcome:   model.OutcomeOK,
		})
		return items, s.Name()
	}
	return nil, ""
}

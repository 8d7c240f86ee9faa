package cascade

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placelift/place-audit/internal/model"
)

type fakeStrategy struct {
	name   string
	items  []string
	err    error
	called int
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Attempt(_ context.Context, _ *Input) ([]string, error) {
	f.called++
	return f.items, f.err
}

func TestRun_ShortCircuitsOnFirstHit(t *testing.T) {
	first := &fakeStrategy{name: "first", items: []string{"케이크", "라떼"}}
	second := &fakeStrategy{name: "second", items: []string{"unused"}}
	trail := &Trail{}

	got, winner := Run[string](context.Background(), "keywords", &Input{}, nil, trail, first, second)

	assert.Equal(t, []string{"케이크", "라떼"}, got)
	assert.Equal(t, "first", winner)
	assert.Equal(t, 1, first.called)
	assert.Equal(t, 0, second.called)
}

func TestRun_FallsThroughErrorAndEmpty(t *testing.T) {
	failing := &fakeStrategy{name: "failing", err: eris.New("boom")}
	empty := &fakeStrategy{name: "empty"}
	last := &fakeStrategy{name: "last", items: []string{"값"}}
	trail := &Trail{}

	got, winner := Run[string](context.Background(), "keywords", &Input{}, nil, trail, failing, empty, last)

	assert.Equal(t, []string{"값"}, got)
	assert.Equal(t, "last", winner)

	entries := trail.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, model.OutcomeError, entries[0].Outcome)
	assert.NotEmpty(t, entries[0].Error)
	assert.Equal(t, model.OutcomeEmpty, entries[1].Outcome)
	assert.Equal(t, model.OutcomeOK, entries[2].Outcome)
	for _, e := range entries {
		assert.Equal(t, "keywords", e.Signal)
	}
}

func TestRun_NormalizeCanEmptyAResult(t *testing.T) {
	// The raw result is non-empty but normalization rejects everything,
	// so the runner must keep falling through.
	noisy := &fakeStrategy{name: "noisy", items: []string{" ", ""}}
	clean := &fakeStrategy{name: "clean", items: []string{"키워드"}}
	trail := &Trail{}

	dropBlank := func(items []string) []string {
		out := items[:0:0]
		for _, s := range items {
			if s != "" && s != " " {
				out = append(out, s)
			}
		}
		return out
	}

	got, winner := Run[string](context.Background(), "keywords", &Input{}, dropBlank, trail, noisy, clean)

	assert.Equal(t, []string{"키워드"}, got)
	assert.Equal(t, "clean", winner)
	assert.Equal(t, model.OutcomeEmpty, trail.Entries()[0].Outcome)
}

func TestRun_AllExhaustedIsNotAnError(t *testing.T) {
	trail := &Trail{}
	got, winner := Run[string](context.Background(), "menus", &Input{}, nil, trail,
		&fakeStrategy{name: "a"},
		&fakeStrategy{name: "b", err: eris.New("nope")},
	)
	assert.Nil(t, got)
	assert.Equal(t, "", winner)
	assert.Len(t, trail.Entries(), 2)
}

func TestRun_CancelledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &fakeStrategy{name: "never", items: []string{"x"}}
	got, _ := Run[string](ctx, "keywords", &Input{}, nil, &Trail{}, s)

	assert.Nil(t, got)
	assert.Equal(t, 0, s.called)
}

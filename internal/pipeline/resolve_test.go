package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placelift/place-audit/internal/cache"
	"github.com/placelift/place-audit/internal/config"
	"github.com/placelift/place-audit/internal/model"
	"github.com/placelift/place-audit/pkg/bizsearch"
	"github.com/placelift/place-audit/pkg/browser"
)

type fakeSearch struct {
	resp *bizsearch.SearchResponse
	err  error
	seen []string
}

func (f *fakeSearch) Search(_ context.Context, query string) (*bizsearch.SearchResponse, error) {
	f.seen = append(f.seen, query)
	return f.resp, f.err
}

func newTestAnalyzer(client browser.Client, search bizsearch.Client) *Analyzer {
	docs := cache.New[*browser.Document](10, time.Minute)
	return NewAnalyzer(client, search, nil, docs, config.AnalyzeConfig{
		StrategyTimeoutSecs: 5,
		MaxCompetitorFetch:  2,
	})
}

func TestResolveInput_PlaceURL(t *testing.T) {
	a := newTestAnalyzer(browser.NewFake(), nil)

	got, err := a.resolveInput(context.Background(), model.AnalyzeInput{
		Mode:     model.ModePlaceURL,
		PlaceURL: "https://pcmap.place.naver.com/restaurant/123456/home?from=map",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://m.place.naver.com/place/123456/home", got)
}

func TestResolveInput_UnknownMode(t *testing.T) {
	a := newTestAnalyzer(browser.NewFake(), nil)
	_, err := a.resolveInput(context.Background(), model.AnalyzeInput{Mode: "other"})
	assert.Error(t, err)
}

func TestResolveBizSearch_Match(t *testing.T) {
	search := &fakeSearch{resp: &bizsearch.SearchResponse{Items: []bizsearch.Item{
		{Title: "<b>망원커피</b> 본점", Link: "https://m.place.naver.com/place/123456/home", Telephone: "02-1234-5678"},
	}}}
	a := newTestAnalyzer(browser.NewFake(), search)

	got, err := a.resolveInput(context.Background(), model.AnalyzeInput{
		Mode:    model.ModeBizSearch,
		Name:    "망원커피",
		Address: "서울 마포구",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://m.place.naver.com/place/123456/home", got)
	assert.Equal(t, []string{"망원커피 서울 마포구"}, search.seen)
}

func TestResolveBizSearch_PhoneMismatchDisambiguates(t *testing.T) {
	search := &fakeSearch{resp: &bizsearch.SearchResponse{Items: []bizsearch.Item{
		{Title: "망원커피", Link: "https://m.place.naver.com/place/123456/home", Telephone: "02-9999-9999"},
	}}}
	a := newTestAnalyzer(browser.NewFake(), search)

	_, err := a.resolveInput(context.Background(), model.AnalyzeInput{
		Mode:  model.ModeBizSearch,
		Name:  "망원커피",
		Phone: "02-1234-5678",
	})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNeedsDisambiguation))
}

func TestResolveBizSearch_NoNameOverlapDisambiguates(t *testing.T) {
	search := &fakeSearch{resp: &bizsearch.SearchResponse{Items: []bizsearch.Item{
		{Title: "전혀다른업소", Link: "https://m.place.naver.com/place/123456/home"},
	}}}
	a := newTestAnalyzer(browser.NewFake(), search)

	_, err := a.resolveInput(context.Background(), model.AnalyzeInput{
		Mode: model.ModeBizSearch,
		Name: "망원커피",
	})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNeedsDisambiguation))
}

func TestResolveBizSearch_MissingClientIsMisconfigured(t *testing.T) {
	a := newTestAnalyzer(browser.NewFake(), nil)

	_, err := a.resolveInput(context.Background(), model.AnalyzeInput{
		Mode: model.ModeBizSearch,
		Name: "망원커피",
	})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMisconfigured))
}

func TestPickMatch_TitleContainment(t *testing.T) {
	items := []bizsearch.Item{
		{Title: "망원 커피 로스터스"},
	}
	// Spacing differences fold away in both directions.
	got := pickMatch(items, model.AnalyzeInput{Name: "망원커피 로스터스"})
	require.NotNil(t, got)

	got = pickMatch(items, model.AnalyzeInput{Name: "성수커피"})
	assert.Nil(t, got)
}

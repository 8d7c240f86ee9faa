// Package pipeline orchestrates a single analysis request: resolve the
// listing URL, fetch the rendered document, run the per-signal
// extraction cascades, normalize, classify, score, recommend, and
// apply the plan gate. One request is one sequential pipeline.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/placelift/place-audit/internal/cache"
	"github.com/placelift/place-audit/internal/candidate"
	"github.com/placelift/place-audit/internal/config"
	"github.com/placelift/place-audit/internal/extract"
	"github.com/placelift/place-audit/internal/industry"
	"github.com/placelift/place-audit/internal/model"
	"github.com/placelift/place-audit/internal/normalize"
	"github.com/placelift/place-audit/internal/recommend"
	"github.com/placelift/place-audit/internal/scoring"
	"github.com/placelift/place-audit/pkg/bizsearch"
	"github.com/placelift/place-audit/pkg/browser"
	"github.com/placelift/place-audit/pkg/keywordvol"
)

// Analyzer runs analysis requests. Constructed once at startup; safe
// for concurrent use. The document cache is the only cross-request
// shared state.
type Analyzer struct {
	client  browser.Client
	search  bizsearch.Client // nil when unconfigured
	volumes keywordvol.Client
	docs    *cache.Store[*browser.Document]
	cfg     config.AnalyzeConfig
	now     func() time.Time
}

// NewAnalyzer creates an Analyzer. volumes may be keywordvol.Null{}
// when the volume service is unconfigured; search may be nil, which
// makes biz_search mode a configuration error.
func NewAnalyzer(client browser.Client, search bizsearch.Client, volumes keywordvol.Client, docs *cache.Store[*browser.Document], cfg config.AnalyzeConfig) *Analyzer {
	if volumes == nil {
		volumes = keywordvol.Null{}
	}
	candidate.ExtendChromeTokens(cfg.ExtraChromeTokens)
	return &Analyzer{
		client:  client,
		search:  search,
		volumes: volumes,
		docs:    docs,
		cfg:     cfg,
		now:     time.Now,
	}
}

// WithNow fixes the clock for testing.
func (a *Analyzer) WithNow(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

// Outcome is the analysis result union: exactly one of Response or
// Blocked is set.
type Outcome struct {
	Response *model.AnalyzeResponse
	Blocked  *model.BlockedResponse
}

// Analyze executes the full pipeline for one request.
func (a *Analyzer) Analyze(ctx context.Context, req model.AnalyzeRequest) (*Outcome, error) {
	placeURL, err := a.resolveInput(ctx, req.Input)
	if err != nil {
		return nil, err
	}

	doc, err := a.fetchDocument(ctx, placeURL)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: fetch document")
	}

	if blocked, snippet := extract.DetectBlock(doc.Text, doc.Status); blocked {
		zap.L().Warn("pipeline: blocked content detected",
			zap.String("url", placeURL),
			zap.Int("status", doc.Status),
		)
		return &Outcome{Blocked: &model.BlockedResponse{
			Blocked: true,
			Message: "대상 페이지 접근이 제한되어 분석할 수 없습니다. 잠시 후 다시 시도해 주세요.",
			Snippet: snippet,
		}}, nil
	}

	profile, trail := a.extractProfile(ctx, doc, placeURL, req.Options.Depth)
	profile = normalize.Profile(profile)

	classification := industry.Classify(profile.CombinedText())
	indProfile := industry.ProfileFor(classification)

	scores := scoring.Score(&profile, indProfile)

	rec := recommend.Build(&profile, scores, indProfile)
	a.annotateVolumes(ctx, &rec)
	rec = recommend.ApplyPlanGate(req.Options.Plan, rec)

	resp := &model.AnalyzeResponse{
		OK: true,
		Meta: model.Meta{
			RequestID:  uuid.New().String(),
			Mode:       req.Input.Mode,
			Plan:       req.Options.Plan,
			PlaceURL:   placeURL,
			Confidence: classification.Confidence,
			FetchedAt:  a.now(),
		},
		Industry:  classification,
		Place:     profile,
		Scores:    scores,
		Recommend: rec,
	}
	if req.Options.Debug {
		resp.Trail = trail
	} else {
		resp.Place.Provenance = nil
	}

	zap.L().Info("pipeline: analysis complete",
		zap.String("request_id", resp.Meta.RequestID),
		zap.String("url", placeURL),
		zap.String("subcategory", classification.Subcategory),
		zap.Int("score", scores.Total),
		zap.String("grade", string(scores.Grade)),
	)
	return &Outcome{Response: resp}, nil
}

// fetchDocument serves the raw document from the process-wide cache or
// fetches it. Concurrent requests for the same URL are not coalesced;
// both may fetch and both will store, which is safe.
func (a *Analyzer) fetchDocument(ctx context.Context, placeURL string) (*browser.Document, error) {
	if doc, ok := a.docs.Get(placeURL); ok {
		return doc, nil
	}
	doc, err := a.client.Fetch(ctx, placeURL)
	if err != nil {
		return nil, err
	}
	a.docs.Set(placeURL, doc)
	return doc, nil
}

// annotateVolumes fills keyword volumes on the plan. Failures inside
// the volume client degrade to "unknown"; this never fails a request.
func (a *Analyzer) annotateVolumes(ctx context.Context, rec *model.RecommendResult) {
	if len(rec.Keywords5) == 0 {
		return
	}
	keywords := make([]string, 0, len(rec.Keywords5))
	for _, k := range rec.Keywords5 {
		keywords = append(keywords, k.Keyword)
	}
	volumes := a.volumes.Volumes(ctx, keywords)
	for i := range rec.Keywords5 {
		rec.Keywords5[i].Volume = volumes[rec.Keywords5[i].Keyword]
	}
}

package pipeline

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/placelift/place-audit/internal/cascade"
	"github.com/placelift/place-audit/internal/extract"
	"github.com/placelift/place-audit/internal/model"
	"github.com/placelift/place-audit/pkg/browser"
)

// extractProfile runs every signal cascade against the fetched document
// and assembles the raw profile. Each signal is independent: one signal
// exhausting its strategies leaves that field empty and the rest of the
// profile intact.
func (a *Analyzer) extractProfile(ctx context.Context, doc *browser.Document, placeURL string, depth model.Depth) (model.PlaceProfile, []model.TrailEntry) {
	in := &cascade.Input{
		Doc:      doc,
		Client:   a.client,
		PlaceURL: placeURL,
		Depth:    depth,
	}
	trail := &cascade.Trail{}

	p := model.PlaceProfile{
		PlaceURL:   placeURL,
		Provenance: map[string]string{},
	}
	p.PlaceID = model.PlaceIDFromURL(placeURL)

	timeout := time.Duration(a.cfg.StrategyTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	a.runKeywords(ctx, in, timeout, trail, &p, depth)
	a.runTags(ctx, in, timeout, trail, &p)
	a.runMenus(ctx, in, timeout, trail, &p)
	a.runBasic(ctx, in, timeout, trail, &p)
	a.runCompetitors(ctx, in, timeout, trail, &p, depth)

	return p, trail.Entries()
}

func (a *Analyzer) runKeywords(ctx context.Context, in *cascade.Input, timeout time.Duration, trail *cascade.Trail, p *model.PlaceProfile, depth model.Depth) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	strategies := keywordStrategies(depth)
	keywords, winner := cascade.Run(ctx, "keywords", in, normalizeKeywords, trail, strategies...)
	if len(keywords) == 0 {
		return
	}
	p.Keywords = keywords
	if len(keywords) > extract.MaxRepresentative {
		p.Keywords5 = keywords[:extract.MaxRepresentative]
	} else {
		p.Keywords5 = keywords
	}
	p.Provenance["keywords"] = winner
}

// keywordStrategies orders the keyword cascade. Deep mode inserts the
// frame fetch as the second attempt; standard mode skips it because it
// costs an extra page load per frame.
func keywordStrategies(depth model.Depth) []cascade.Strategy[string] {
	if depth == model.DepthDeep {
		return []cascade.Strategy[string]{
			extract.EmbeddedKeywords{},
			extract.FrameKeywords{},
			extract.NetworkKeywords{},
			extract.TextKeywords{},
		}
	}
	return []cascade.Strategy[string]{
		extract.EmbeddedKeywords{},
		extract.NetworkKeywords{},
		extract.TextKeywords{},
	}
}

func normalizeKeywords(items []string) []string {
	return extract.NormalizeItems(items, extract.MaxKeywords)
}

func (a *Analyzer) runTags(ctx context.Context, in *cascade.Input, timeout time.Duration, trail *cascade.Trail, p *model.PlaceProfile) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tags, winner := cascade.Run(ctx, "tags", in, normalizeKeywords, trail, extract.TextTags{})
	if len(tags) == 0 {
		return
	}
	p.Tags = tags
	p.Provenance["tags"] = winner
}

func (a *Analyzer) runMenus(ctx context.Context, in *cascade.Input, timeout time.Duration, trail *cascade.Trail, p *model.PlaceProfile) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	menus, winner := cascade.Run(ctx, "menus", in, extract.NormalizeMenus, trail,
		extract.EmbeddedMenus{},
		extract.NetworkMenus{},
		extract.TextMenus{},
	)
	if len(menus) == 0 {
		return
	}
	p.Menus = menus
	p.Provenance["menus"] = winner
}

func (a *Analyzer) runBasic(ctx context.Context, in *cascade.Input, timeout time.Duration, trail *cascade.Trail, p *model.PlaceProfile) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fields, winner := cascade.Run(ctx, "basic", in, extract.NormalizeFields, trail,
		extract.EmbeddedBasic{},
		extract.NetworkBasic{},
		extract.MetaBasic{},
		extract.TextBasic{},
	)
	for _, f := range fields {
		foldField(p, f)
		p.Provenance[f.Key] = winner
	}
}

// foldField writes one canonical basic field onto the profile. Metric
// fields parse leniently; an unparseable value leaves the zero value.
func foldField(p *model.PlaceProfile, f extract.FieldKV) {
	switch f.Key {
	case extract.FieldName:
		p.Name = f.Value
	case extract.FieldCategory:
		p.Category = f.Value
	case extract.FieldAddress:
		p.Address = f.Value
	case extract.FieldRoadAddress:
		p.RoadAddress = f.Value
	case extract.FieldPhone:
		p.Phone = f.Value
	case extract.FieldDescription:
		p.Description = f.Value
	case extract.FieldDirections:
		p.Directions = f.Value
	case extract.FieldVisitorReviews:
		p.Reviews.VisitorCount = atoiLenient(f.Value)
	case extract.FieldBlogReviews:
		p.Reviews.BlogCount = atoiLenient(f.Value)
	case extract.FieldRating:
		if v, err := strconv.ParseFloat(f.Value, 64); err == nil {
			p.Reviews.Rating = v
		}
	case extract.FieldPhotoCount:
		p.Photos.Count = atoiLenient(f.Value)
	}
}

func atoiLenient(s string) int {
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && v >= 0 {
		return int(v)
	}
	return 0
}

func (a *Analyzer) runCompetitors(ctx context.Context, in *cascade.Input, timeout time.Duration, trail *cascade.Trail, p *model.PlaceProfile, depth model.Depth) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	competitors, winner := cascade.Run(ctx, "competitors", in, extract.NormalizeCompetitors, trail,
		extract.LinkCompetitors{},
		extract.NetworkCompetitors{},
	)
	if len(competitors) == 0 {
		return
	}
	if depth == model.DepthDeep {
		a.profileCompetitors(ctx, competitors, trail)
	}
	p.Competitors = competitors
	p.Provenance["competitors"] = winner
}

// profileCompetitors runs the keyword cascade against up to
// MaxCompetitorFetch competitor pages in deep mode. A failed competitor
// fetch is logged and skipped; it never degrades the main analysis.
func (a *Analyzer) profileCompetitors(ctx context.Context, competitors []model.Competitor, trail *cascade.Trail) {
	limit := a.cfg.MaxCompetitorFetch
	if limit <= 0 {
		limit = 3
	}
	for i := range competitors {
		if i >= limit {
			break
		}
		doc, err := a.fetchDocument(ctx, competitors[i].PlaceURL)
		if err != nil {
			zap.L().Debug("pipeline: competitor fetch failed",
				zap.String("url", competitors[i].PlaceURL),
				zap.Error(err),
			)
			continue
		}
		sub := &cascade.Input{
			Doc:      doc,
			Client:   a.client,
			PlaceURL: competitors[i].PlaceURL,
			Depth:    model.DepthStandard,
		}
		keywords, _ := cascade.Run(ctx, "competitor_keywords", sub, normalizeKeywords, trail,
			extract.EmbeddedKeywords{},
			extract.NetworkKeywords{},
			extract.TextKeywords{},
		)
		if len(keywords) > extract.MaxRepresentative {
			keywords = keywords[:extract.MaxRepresentative]
		}
		competitors[i].Keywords5 = keywords
	}
}

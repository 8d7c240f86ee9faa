package pipeline

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/placelift/place-audit/internal/extract"
	"github.com/placelift/place-audit/internal/model"
	"github.com/placelift/place-audit/pkg/bizsearch"
)

// resolveInput derives the canonical listing URL from the request
// input. place_url mode is a pure rewrite; biz_search mode queries the
// local search service and requires a confident single match.
func (a *Analyzer) resolveInput(ctx context.Context, in model.AnalyzeInput) (string, error) {
	switch in.Mode {
	case model.ModePlaceURL:
		u, err := model.CanonicalPlaceURL(in.PlaceURL)
		if err != nil {
			return "", eris.Wrap(err, "pipeline: resolve place url")
		}
		return u, nil
	case model.ModeBizSearch:
		return a.resolveBizSearch(ctx, in)
	default:
		return "", eris.Errorf("pipeline: unknown input mode %q", in.Mode)
	}
}

func (a *Analyzer) resolveBizSearch(ctx context.Context, in model.AnalyzeInput) (string, error) {
	if a.search == nil {
		return "", eris.Wrap(ErrMisconfigured, "pipeline: biz_search requires local search credentials")
	}

	query := strings.TrimSpace(in.Name + " " + in.Address)
	resp, err := a.search.Search(ctx, query)
	if err != nil {
		return "", eris.Wrap(err, "pipeline: local search")
	}

	match := pickMatch(resp.Items, in)
	if match == nil {
		zap.L().Info("pipeline: no confident search match",
			zap.String("query", query),
			zap.Int("results", len(resp.Items)),
		)
		return "", eris.Wrapf(ErrNeedsDisambiguation, "pipeline: %d results for %q", len(resp.Items), query)
	}

	u, err := model.CanonicalPlaceURL(match.Link)
	if err != nil {
		return "", eris.Wrapf(ErrNeedsDisambiguation, "pipeline: matched result has no listing url")
	}
	return u, nil
}

// pickMatch applies the confident-match rule: the result's title must
// contain the requested name (or vice versa) after cleaning, and when
// a phone number was supplied it must agree.
func pickMatch(items []bizsearch.Item, in model.AnalyzeInput) *bizsearch.Item {
	wantName := foldKey(in.Name)
	wantPhone := digitsOnly(in.Phone)

	for i := range items {
		title := foldKey(items[i].PlainTitle())
		if !strings.Contains(title, wantName) && !strings.Contains(wantName, title) {
			continue
		}
		if wantPhone != "" && digitsOnly(items[i].Telephone) != "" &&
			digitsOnly(items[i].Telephone) != wantPhone {
			continue
		}
		return &items[i]
	}
	return nil
}

func foldKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(extract.CleanText(s), " ", ""))
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

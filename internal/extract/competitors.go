package extract

import (
	"context"
	"regexp"

	"github.com/rotisserie/eris"

	"github.com/placelift/place-audit/internal/cascade"
	"github.com/placelift/place-audit/internal/model"
)

// MaxCompetitors bounds the harvested competitor list.
const MaxCompetitors = 5

var competitorLinkPattern = regexp.MustCompile(`/(?:place|restaurant|cafe|hairshop|hospital)/(\d{6,})`)

// LinkCompetitors harvests competing listing IDs from links in the
// rendered document ("주변" and recommendation sections).
type LinkCompetitors struct{}

func (LinkCompetitors) Name() string { return "document_links" }

func (LinkCompetitors) Attempt(_ context.Context, in *cascade.Input) ([]model.Competitor, error) {
	if in.Doc == nil {
		return nil, eris.New("extract: no document")
	}
	return competitorsFrom(in.Doc.HTML, in.PlaceURL), nil
}

// NetworkCompetitors harvests listing IDs mentioned in observed network
// payloads (similar-place and nearby-place responses).
type NetworkCompetitors struct{}

func (NetworkCompetitors) Name() string { return "network_payload" }

func (NetworkCompetitors) Attempt(_ context.Context, in *cascade.Input) ([]model.Competitor, error) {
	if in.Doc == nil {
		return nil, eris.New("extract: no document")
	}
	var out []model.Competitor
	for _, p := range in.Doc.ObservedPayloads {
		out = append(out, competitorsFrom(string(p.Body), in.PlaceURL)...)
	}
	return out, nil
}

// NormalizeCompetitors deduplicates by place ID and caps the list. The
// subject listing itself is already excluded at harvest time.
func NormalizeCompetitors(items []model.Competitor) []model.Competitor {
	seen := make(map[string]bool, len(items))
	out := make([]model.Competitor, 0, len(items))
	for _, c := range items {
		if c.PlaceID == "" || seen[c.PlaceID] {
			continue
		}
		seen[c.PlaceID] = true
		out = append(out, c)
		if len(out) == MaxCompetitors {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func competitorsFrom(text, selfURL string) []model.Competitor {
	selfID := model.PlaceIDFromURL(selfURL)
	var out []model.Competitor
	for _, m := range competitorLinkPattern.FindAllStringSubmatch(text, -1) {
		id := m[1]
		if id == selfID {
			continue
		}
		out = append(out, model.Competitor{
			PlaceID:  id,
			PlaceURL: "https://" + model.MobilePlaceHost + "/place/" + id + "/home",
		})
	}
	return out
}

// Package normalize turns a raw extracted profile into canonical shape.
package normalize

import (
	"strings"

	"github.com/placelift/place-audit/internal/extract"
	"github.com/placelift/place-audit/internal/model"
)

// Profile trims and defaults a raw profile. Pure: the input is copied,
// never mutated. Fields the cascade exhausted without a result stay
// absent; nothing is fabricated here.
func Profile(p model.PlaceProfile) model.PlaceProfile {
	out := p

	out.Name = extract.CleanText(p.Name)
	if out.Name == "" {
		out.Name = model.NameFallback
	}

	out.Category = extract.CleanText(p.Category)
	out.Address = extract.CleanText(p.Address)
	out.RoadAddress = extract.CleanText(p.RoadAddress)
	out.Phone = extract.CleanText(p.Phone)
	out.Description = strings.TrimSpace(p.Description)
	out.Directions = strings.TrimSpace(p.Directions)

	out.Tags = trimAll(p.Tags)
	out.Keywords = trimAll(p.Keywords)
	out.Keywords5 = trimAll(p.Keywords5)
	if len(out.Keywords5) > 5 {
		out.Keywords5 = out.Keywords5[:5]
	}

	return out
}

func trimAll(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = extract.CleanText(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Package model defines the canonical data types shared across the
// analysis pipeline.
package model

// NameFallback is substituted when no business name could be extracted.
const NameFallback = "이름 미확인"

// PlaceProfile is the canonical business profile assembled from
// extracted signals. Fields the extraction cascade exhausted without a
// result are left zero-valued and omitted from JSON.
type PlaceProfile struct {
	PlaceID     string `json:"place_id,omitempty"`
	PlaceURL    string `json:"place_url"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Address     string `json:"address,omitempty"`
	RoadAddress string `json:"road_address,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Description string `json:"description,omitempty"`
	Directions  string `json:"directions,omitempty"`

	Tags        []string     `json:"tags,omitempty"`
	Keywords    []string     `json:"keywords,omitempty"`
	Keywords5   []string     `json:"keywords5,omitempty"`
	Menus       []MenuItem   `json:"menus,omitempty"`
	Competitors []Competitor `json:"competitors,omitempty"`

	Reviews Reviews `json:"reviews"`
	Photos  Photos  `json:"photos"`

	// Provenance maps a profile field to the extraction strategy that
	// produced it. Debug side-channel, excluded unless requested.
	Provenance map[string]string `json:"provenance,omitempty"`
}

// MenuItem is a single menu or service offering.
type MenuItem struct {
	Name        string `json:"name"`
	Price       int    `json:"price,omitempty"`
	DurationMin int    `json:"duration_min,omitempty"`
	Note        string `json:"note,omitempty"`
}

// Competitor identifies a nearby competing listing, optionally with its
// representative keywords when deep analysis profiled it.
type Competitor struct {
	PlaceID   string   `json:"place_id"`
	PlaceURL  string   `json:"place_url"`
	Keywords5 []string `json:"keywords5,omitempty"`
}

// Reviews holds review-derived metrics.
type Reviews struct {
	VisitorCount int     `json:"visitor_count,omitempty"`
	BlogCount    int     `json:"blog_count,omitempty"`
	Rating       float64 `json:"rating,omitempty"`
}

// Photos holds photo-derived metrics.
type Photos struct {
	Count int `json:"count,omitempty"`
}

// CombinedText concatenates every free-text field of the profile. The
// industry classifier operates on this string.
func (p *PlaceProfile) CombinedText() string {
	parts := make([]string, 0, 8+len(p.Tags)+len(p.Keywords)+len(p.Menus))
	parts = append(parts, p.Name, p.Category, p.Address, p.RoadAddress, p.Description, p.Directions)
	parts = append(parts, p.Tags...)
	parts = append(parts, p.Keywords...)
	for _, m := range p.Menus {
		parts = append(parts, m.Name)
	}
	joined := ""
	for _, s := range parts {
		if s == "" {
			continue
		}
		if joined != "" {
			joined += " "
		}
		joined += s
	}
	return joined
}

// Package scoring computes the deterministic, explainable listing
// score. Score is a pure function: same profile and industry in, same
// result out, complete even when extraction yielded nothing.
package scoring

import (
	"strings"

	"github.com/placelift/place-audit/internal/industry"
	"github.com/placelift/place-audit/internal/model"
)

// Category caps. Risk starts at its cap and is deducted from.
const (
	DiscoveryCap  = 35
	ConversionCap = 30
	TrustCap      = 20
	RiskCap       = 15

	riskDeduction = 7

	// stuffingThreshold is the token repetition count that flags
	// keyword stuffing in the combined text fields.
	stuffingThreshold = 5

	// stalePhotoFloor is the photo count under which recency is assumed
	// poor. Coarse proxy until richer recency data exists.
	stalePhotoFloor = 5
)

var (
	transitMarkers  = []string{"역", "호선", "출구", "버스", "정류장"}
	distanceMarkers = []string{"도보", "분 거리", "미터", "0m", "km"}
	parkingMarkers  = []string{"주차", "발렛"}
	bulletMarkers   = []string{"·", "•", "- ", "✓"}
)

// Score produces the full score result for a normalized profile in the
// context of its classified industry.
func Score(p *model.PlaceProfile, ind *industry.Profile) model.ScoreResult {
	breakdown := model.ScoreBreakdown{
		Discovery:  discoveryScore(p),
		Conversion: conversionScore(p),
		Trust:      trustScore(p),
	}

	promo := promotionalText(p)
	signals := model.ScoreSignals{
		MissingFields:       missingFields(p),
		KeywordStuffingRisk: hasStuffing(promo),
		StalenessRisk:       p.Photos.Count < stalePhotoFloor,
	}

	risk := RiskCap
	if signals.KeywordStuffingRisk {
		risk -= riskDeduction
	}
	if hasBannedPhrase(promo, ind.BannedPhrases) {
		risk -= riskDeduction
	}
	breakdown.Risk = max(0, risk)

	total := breakdown.Discovery + breakdown.Conversion + breakdown.Trust + breakdown.Risk
	total = min(100, max(0, total))

	return model.ScoreResult{
		Total:     total,
		Grade:     gradeOf(total),
		Breakdown: breakdown,
		Signals:   signals,
	}
}

// gradeOf is the fixed monotone threshold ladder.
func gradeOf(total int) model.Grade {
	switch {
	case total >= 90:
		return model.GradeAPlus
	case total >= 80:
		return model.GradeA
	case total >= 65:
		return model.GradeB
	case total >= 50:
		return model.GradeC
	default:
		return model.GradeD
	}
}

func discoveryScore(p *model.PlaceProfile) int {
	score := 0
	if p.Category != "" {
		score += 6
	}
	if p.Address != "" || p.RoadAddress != "" {
		score += 6
	}
	switch {
	case len(p.Tags) >= 3:
		score += 5
	case len(p.Tags) >= 1:
		score += 3
	}
	switch {
	case len(p.Keywords) >= 5:
		score += 8
	case len(p.Keywords) >= 1:
		score += 4
	}
	if p.Description != "" {
		score += 6
	}
	if p.Reviews.VisitorCount > 0 || p.Reviews.BlogCount > 0 {
		score += 4
	}
	return min(DiscoveryCap, score)
}

func conversionScore(p *model.PlaceProfile) int {
	score := 0

	desc := p.Description
	if desc != "" {
		switch {
		case len([]rune(desc)) >= 200:
			score += 8
		case len([]rune(desc)) >= 80:
			score += 5
		default:
			score += 2
		}
		if strings.Count(desc, "\n\n") >= 1 {
			score += 5
		}
		if containsAny(desc, bulletMarkers) {
			score += 4
		}
	}

	dir := p.Directions
	if dir != "" {
		score += 5
		if containsAny(dir, transitMarkers) {
			score += 4
		}
		if containsAny(dir, distanceMarkers) {
			score += 2
		}
		if containsAny(dir, parkingMarkers) {
			score += 2
		}
	}
	return min(ConversionCap, score)
}

func trustScore(p *model.PlaceProfile) int {
	score := 0
	switch {
	case p.Reviews.VisitorCount >= 30:
		score += 6
	case p.Reviews.VisitorCount >= 10:
		score += 4
	case p.Reviews.VisitorCount >= 1:
		score += 2
	}
	switch {
	case p.Reviews.BlogCount >= 10:
		score += 4
	case p.Reviews.BlogCount >= 1:
		score += 2
	}
	switch {
	case p.Reviews.Rating >= 4.0:
		score += 4
	case p.Reviews.Rating > 0:
		score += 2
	}
	switch {
	case p.Photos.Count >= 10:
		score += 6
	case p.Photos.Count >= 1:
		score += 3
	}
	return min(TrustCap, score)
}

func missingFields(p *model.PlaceProfile) []string {
	missing := []string{}
	if p.Description == "" {
		missing = append(missing, "description")
	}
	if p.Directions == "" {
		missing = append(missing, "directions")
	}
	if len(p.Menus) == 0 {
		missing = append(missing, "menus")
	}
	if p.Photos.Count == 0 {
		missing = append(missing, "photos")
	}
	return missing
}

// promotionalText joins the copy fields the risk detectors scan.
// Directions are excluded: transit and landmark names repeat there as
// navigation, not stuffing, and a credited directions field must never
// cost risk points.
func promotionalText(p *model.PlaceProfile) string {
	parts := make([]string, 0, 3+len(p.Tags)+len(p.Keywords)+len(p.Menus))
	parts = append(parts, p.Name, p.Category, p.Description)
	parts = append(parts, p.Tags...)
	parts = append(parts, p.Keywords...)
	for _, m := range p.Menus {
		parts = append(parts, m.Name)
	}
	joined := make([]string, 0, len(parts))
	for _, s := range parts {
		if s != "" {
			joined = append(joined, s)
		}
	}
	return strings.Join(joined, " ")
}

// hasStuffing tokenizes the promotional text and flags any token
// repeated at or above the threshold.
func hasStuffing(text string) bool {
	counts := make(map[string]int)
	for _, tok := range strings.Fields(text) {
		tok = strings.ToLower(strings.Trim(tok, ".,!?#()[]"))
		if len([]rune(tok)) < 2 {
			continue
		}
		counts[tok]++
		if counts[tok] >= stuffingThreshold {
			return true
		}
	}
	return false
}

func hasBannedPhrase(text string, banned []string) bool {
	for _, b := range banned {
		if strings.Contains(text, b) {
			return true
		}
	}
	return false
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// Package industry classifies profiles into a two-level taxonomy and
// supplies the per-industry content profile (templates, vocabulary,
// banned phrases) the scoring and recommendation engines consume.
package industry

import (
	_ "embed"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/placelift/place-audit/internal/model"
)

//go:embed rules.yaml
var rulesYAML []byte

// Rule is one weighted vote. Patterns are scanned in order and only the
// first match contributes the rule's weight, once.
type Rule struct {
	Subcategory string   `yaml:"subcategory"`
	Weight      float64  `yaml:"weight"`
	Reason      string   `yaml:"reason"`
	Patterns    []string `yaml:"patterns"`
}

type ruleSet struct {
	Default struct {
		Subcategory string `yaml:"subcategory"`
		Reason      string `yaml:"reason"`
	} `yaml:"default"`
	Normalizer float64           `yaml:"normalizer"`
	Rules      []Rule            `yaml:"rules"`
	Verticals  map[string]string `yaml:"verticals"`
}

var rules = mustLoadRules()

func mustLoadRules() *ruleSet {
	rs, err := loadRules(rulesYAML)
	if err != nil {
		panic(err)
	}
	return rs
}

func loadRules(raw []byte) (*ruleSet, error) {
	var rs ruleSet
	if err := yaml.Unmarshal(raw, &rs); err != nil {
		return nil, eris.Wrap(err, "industry: parse rules")
	}
	if rs.Normalizer <= 0 {
		return nil, eris.New("industry: normalizer must be positive")
	}
	if rs.Default.Subcategory == "" {
		return nil, eris.New("industry: default subcategory required")
	}
	for _, r := range rs.Rules {
		if _, ok := rs.Verticals[r.Subcategory]; !ok {
			return nil, eris.Errorf("industry: rule subcategory %q has no vertical mapping", r.Subcategory)
		}
	}
	return &rs, nil
}

const (
	confidenceFloor = 0.3
	confidenceCeil  = 0.95
)

// Classify runs weighted rule voting over the concatenated free-text
// profile fields. When no rule matches, the fixed default subcategory
// is returned with the insufficient-evidence reason and the confidence
// floor.
func Classify(text string) model.IndustryClassification {
	scores := make(map[string]float64)
	reasons := make(map[string][]string)

	for _, r := range rules.Rules {
		for _, p := range r.Patterns {
			if strings.Contains(text, p) {
				scores[r.Subcategory] += r.Weight
				reasons[r.Subcategory] = append(reasons[r.Subcategory], r.Reason)
				break
			}
		}
	}

	if len(scores) == 0 {
		return model.IndustryClassification{
			Subcategory: rules.Default.Subcategory,
			Vertical:    verticalOf(rules.Default.Subcategory),
			Confidence:  confidenceFloor,
			Reasons:     []string{rules.Default.Reason},
		}
	}

	// Winner resolution follows rule declaration order on ties so the
	// outcome never depends on map iteration order.
	winner := ""
	var best float64
	for _, r := range rules.Rules {
		s, ok := scores[r.Subcategory]
		if !ok {
			continue
		}
		if winner == "" || s > best {
			winner = r.Subcategory
			best = s
		}
	}

	return model.IndustryClassification{
		Subcategory: winner,
		Vertical:    verticalOf(winner),
		Confidence:  clamp(best/rules.Normalizer, confidenceFloor, confidenceCeil),
		Reasons:     distinct(reasons[winner]),
	}
}

func verticalOf(subcategory string) model.Vertical {
	if v, ok := rules.Verticals[subcategory]; ok {
		return model.Vertical(v)
	}
	return model.VerticalService
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func distinct(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

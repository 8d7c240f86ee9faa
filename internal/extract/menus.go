package extract

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/placelift/place-audit/internal/candidate"
	"github.com/placelift/place-audit/internal/cascade"
	"github.com/placelift/place-audit/internal/model"
)

// MaxMenus bounds the extracted menu list.
const MaxMenus = 20

var menuLabels = []string{"메뉴", "시술", "가격표", "코스"}

var (
	pricePattern    = regexp.MustCompile(`([0-9][0-9,\.]*)\s*(?:원|won)`)
	durationPattern = regexp.MustCompile(`([0-9]+)\s*분`)
	menuLinePattern = regexp.MustCompile(`(?m)^(.{2,40}?)\s+([0-9][0-9,]*원)\s*$`)
)

// EmbeddedMenus reads menu records from payloads embedded in the document.
type EmbeddedMenus struct{}

func (EmbeddedMenus) Name() string { return "embedded_payload" }

func (EmbeddedMenus) Attempt(_ context.Context, in *cascade.Input) ([]model.MenuItem, error) {
	if in.Doc == nil {
		return nil, eris.New("extract: no document")
	}
	var pool []candidate.RawCandidate
	for _, root := range PayloadRoots(in.Doc.HTML) {
		pool = append(pool, candidate.Collect(root, candidate.ShapeRecordList, "embedded_payload")...)
	}
	return menusOf(candidate.SelectBest(pool)), nil
}

// NetworkMenus reads menu records from observed network payloads.
type NetworkMenus struct{}

func (NetworkMenus) Name() string { return "network_payload" }

func (NetworkMenus) Attempt(_ context.Context, in *cascade.Input) ([]model.MenuItem, error) {
	if in.Doc == nil {
		return nil, eris.New("extract: no document")
	}
	var pool []candidate.RawCandidate
	for _, p := range in.Doc.ObservedPayloads {
		root := DecodePayload(p.Body)
		if root == nil {
			continue
		}
		pool = append(pool, candidate.Collect(root, candidate.ShapeRecordList, "network_payload")...)
	}
	return menusOf(candidate.SelectBest(pool)), nil
}

// TextMenus scans the rendered text near a menu label for name-price
// line pairs.
type TextMenus struct{}

func (TextMenus) Name() string { return "text_heuristic" }

func (TextMenus) Attempt(_ context.Context, in *cascade.Input) ([]model.MenuItem, error) {
	if in.Doc == nil {
		return nil, eris.New("extract: no document")
	}
	window := LabelWindow(in.Doc.Text, menuLabels, 1200)
	if window == "" {
		return nil, nil
	}
	var items []model.MenuItem
	for _, m := range menuLinePattern.FindAllStringSubmatch(window, -1) {
		items = append(items, model.MenuItem{
			Name:  strings.TrimSpace(m[1]),
			Price: ParsePrice(m[2]),
		})
	}
	return items, nil
}

// NormalizeMenus cleans menu names, drops chrome and unnamed entries,
// deduplicates by name, caps the list.
func NormalizeMenus(items []model.MenuItem) []model.MenuItem {
	seen := make(map[string]bool, len(items))
	out := make([]model.MenuItem, 0, len(items))
	for _, it := range items {
		name := CleanText(it.Name)
		n := len([]rune(name))
		if n < minItemRunes || n > 40 {
			continue
		}
		if candidate.IsChromeToken(name) {
			continue
		}
		key := strings.ToLower(strings.ReplaceAll(name, " ", ""))
		if seen[key] {
			continue
		}
		seen[key] = true
		it.Name = name
		it.Note = CleanText(it.Note)
		out = append(out, it)
		if len(out) == MaxMenus {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ParsePrice extracts a won amount from free text. Returns 0 when no
// amount is present (e.g. "변동", "상담 후 결정").
func ParsePrice(s string) int {
	m := pricePattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	digits := strings.NewReplacer(",", "", ".", "").Replace(m[1])
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// ParseDuration extracts a duration in minutes from free text.
func ParseDuration(s string) int {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

func menusOf(c *candidate.RawCandidate) []model.MenuItem {
	if c == nil {
		return nil
	}
	var items []model.MenuItem
	for _, r := range c.Records {
		item := model.MenuItem{Name: candidate.RecordName(r)}
		for _, k := range []string{"price", "priceString", "amount"} {
			switch v := r[k].(type) {
			case float64:
				item.Price = int(v)
			case string:
				item.Price = ParsePrice(v)
			}
			if item.Price > 0 {
				break
			}
		}
		switch v := r["duration"].(type) {
		case float64:
			item.DurationMin = int(v)
		case string:
			item.DurationMin = ParseDuration(v)
		}
		if note, ok := r["description"].(string); ok {
			item.Note = note
		}
		items = append(items, item)
	}
	return items
}

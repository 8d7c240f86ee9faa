// Package extract implements the per-signal extraction strategies and
// the shared normalization every extracted item list passes through.
package extract

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/placelift/place-audit/internal/candidate"
)

// Item list bounds. A full "existing keyword" set keeps up to 15
// entries; the representative subset keeps 5.
const (
	MaxKeywords       = 15
	MaxRepresentative = 5

	minItemRunes = 2
	maxItemRunes = 24
)

// CleanText normalizes a single string: NFC composition, full-width
// folding, whitespace trim and collapse. Korean listing payloads mix
// full-width and half-width forms freely.
func CleanText(s string) string {
	s = norm.NFC.String(width.Fold.String(s))
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeItems applies the shared item pipeline: clean each entry,
// drop empties and out-of-bound lengths, drop interface-chrome tokens,
// deduplicate case/whitespace-insensitively, cap to max entries.
func NormalizeItems(items []string, max int) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, raw := range items {
		s := strings.TrimPrefix(CleanText(raw), "#")
		n := len([]rune(s))
		if n < minItemRunes || n > maxItemRunes {
			continue
		}
		if candidate.IsChromeToken(s) {
			continue
		}
		key := strings.ToLower(strings.ReplaceAll(s, " ", ""))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
		if len(out) == max {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

package recommend

import "strings"

// Administrative-unit and transit suffix groups, in preference order. A
// neighborhood token localizes search intent better than a district.
var regionSuffixGroups = [][]string{
	{"동", "읍", "면", "리"},
	{"역"},
	{"구", "군"},
}

// RegionToken infers a coarse region token from address text by
// scanning whitespace-separated tokens for administrative-unit or
// transit-station suffixes. Returns "" when none occur.
func RegionToken(address string) string {
	tokens := strings.Fields(address)
	for _, suffixes := range regionSuffixGroups {
		for _, tok := range tokens {
			// Strip building/lot numbers glued onto the unit.
			tok = strings.TrimRight(tok, "0123456789-")
			n := len([]rune(tok))
			if n < 2 || n > 9 {
				continue
			}
			for _, suf := range suffixes {
				if strings.HasSuffix(tok, suf) && tok != suf {
					return tok
				}
			}
		}
	}
	return ""
}

package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// stateAssignments are the inline script globals that carry the page's
// embedded structured state. The exact set drifts between page
// revisions; all known spellings are probed.
var stateAssignments = []*regexp.Regexp{
	regexp.MustCompile(`window\.__APOLLO_STATE__\s*=\s*`),
	regexp.MustCompile(`window\.__PLACE_STATE__\s*=\s*`),
	regexp.MustCompile(`window\.__NEXT_DATA__\s*=\s*`),
	regexp.MustCompile(`window\.__INITIAL_STATE__\s*=\s*`),
}

var jsonScriptPattern = regexp.MustCompile(`(?s)<script[^>]+type="application/(?:ld\+)?json"[^>]*>(.*?)</script>`)

// PayloadRoots locates every embedded JSON payload in the rendered HTML
// and decodes each into a generic tree for candidate walking. Invalid
// blobs are skipped; an unparsable page yields an empty slice, never an
// error.
func PayloadRoots(html string) []any {
	var roots []any

	for _, pat := range stateAssignments {
		for _, loc := range pat.FindAllStringIndex(html, -1) {
			blob := balancedJSON(html[loc[1]:])
			if blob == "" || !gjson.Valid(blob) {
				continue
			}
			if root := decodeTree(blob); root != nil {
				roots = append(roots, root)
			}
		}
	}

	for _, m := range jsonScriptPattern.FindAllStringSubmatch(html, -1) {
		blob := strings.TrimSpace(m[1])
		if !gjson.Valid(blob) {
			continue
		}
		if root := decodeTree(blob); root != nil {
			roots = append(roots, root)
		}
	}

	return roots
}

// DecodePayload decodes one observed network payload body.
func DecodePayload(body []byte) any {
	if !gjson.ValidBytes(body) {
		return nil
	}
	var root any
	if err := json.Unmarshal(body, &root); err != nil {
		return nil
	}
	return root
}

// QueryString runs a gjson path query over a JSON blob and returns the
// first non-empty string result across the given paths.
func QueryString(blob string, paths ...string) string {
	for _, p := range paths {
		if r := gjson.Get(blob, p); r.Exists() && strings.TrimSpace(r.String()) != "" {
			return strings.TrimSpace(r.String())
		}
	}
	return ""
}

func decodeTree(blob string) any {
	var root any
	if err := json.Unmarshal([]byte(blob), &root); err != nil {
		return nil
	}
	return root
}

// balancedJSON returns the leading balanced JSON object or array of s,
// honoring string literals and escapes. Returns "" when s does not
// start with a container or never balances.
func balancedJSON(s string) string {
	s = strings.TrimLeft(s, " \t\r\n")
	if s == "" || (s[0] != '{' && s[0] != '[') {
		return ""
	}
	open, close := s[0], byte('}')
	if open == '[' {
		close = ']'
	}
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}

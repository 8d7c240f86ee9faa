package extract

import "strings"

// Access-restriction markers in rendered listing pages. Detection only;
// nothing here ever attempts to get past a challenge.
var blockMarkers = []string{
	"보안문자",
	"캡차",
	"captcha",
	"접속이 일시적으로 제한",
	"비정상적인 접근",
	"자동입력 방지",
	"서비스 이용이 제한",
	"checking your browser",
}

// DetectBlock checks a rendered document for access-restriction or
// challenge indicators. It returns whether the page is blocked and a
// short snippet of the matched region for the structured response.
func DetectBlock(text string, status int) (bool, string) {
	if status == 403 || status == 429 {
		return true, snippetAround(text, 0)
	}
	lower := strings.ToLower(text)
	for _, marker := range blockMarkers {
		if idx := strings.Index(lower, marker); idx >= 0 {
			return true, snippetAround(text, idx)
		}
	}
	return false, ""
}

func snippetAround(text string, idx int) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	// Byte index to rune index, clamped.
	r := len([]rune(text[:min(idx, len(text))]))
	start := max(0, r-40)
	end := min(len(runes), r+120)
	return strings.TrimSpace(string(runes[start:end]))
}

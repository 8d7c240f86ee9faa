package candidate

import (
	"strings"
	"sync"
	"sync/atomic"
)

// defaultChromeTokens are interface-chrome labels that belong to the
// listing UI rather than the business content. Candidate members
// matching one of these are noise; whole candidates dominated by them
// are menus of the page, not menus of the business.
var defaultChromeTokens = map[string]bool{
	"홈":      true,
	"메뉴":     true,
	"리뷰":     true,
	"사진":     true,
	"지도":     true,
	"주변":     true,
	"정보":     true,
	"길찾기":    true,
	"공유":     true,
	"저장":     true,
	"예약":     true,
	"쿠폰":     true,
	"더보기":    true,
	"전화":     true,
	"출발":     true,
	"도착":     true,
	"로그인":    true,
	"블로그":    true,
	"톡톡":     true,
	"문의":     true,
	"home":   true,
	"menu":   true,
	"review": true,
	"photo":  true,
	"map":    true,
	"share":  true,
	"more":   true,
	"login":  true,
}

// chromeTokens holds the active denylist. Extensions replace the map
// wholesale so reads never observe a map mid-write.
var (
	chromeTokens   atomic.Pointer[map[string]bool]
	chromeTokensMu sync.Mutex
)

func init() {
	chromeTokens.Store(&defaultChromeTokens)
}

// IsChromeToken reports whether s is a known interface-chrome label.
// Comparison is case- and whitespace-insensitive.
func IsChromeToken(s string) bool {
	return (*chromeTokens.Load())[strings.ToLower(strings.TrimSpace(s))]
}

// ExtendChromeTokens registers additional denylist tokens from config.
// Safe to call while other goroutines consult IsChromeToken.
func ExtendChromeTokens(tokens []string) {
	chromeTokensMu.Lock()
	defer chromeTokensMu.Unlock()

	cur := *chromeTokens.Load()
	next := make(map[string]bool, len(cur)+len(tokens))
	for k := range cur {
		next[k] = true
	}
	added := false
	for _, t := range tokens {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && !next[t] {
			next[t] = true
			added = true
		}
	}
	if added {
		chromeTokens.Store(&next)
	}
}

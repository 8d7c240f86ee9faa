package extract

import (
	"regexp"
	"strings"
)

var iframeSrcPattern = regexp.MustCompile(`<iframe[^>]+src="([^"]+)"`)

// FrameURLs returns the frame and sub-resource URLs referenced by the
// document that belong to the listing's own host family. External
// frames (ads, analytics) are skipped.
func FrameURLs(html string) []string {
	var urls []string
	seen := make(map[string]bool)
	for _, m := range iframeSrcPattern.FindAllStringSubmatch(html, -1) {
		src := strings.ReplaceAll(m[1], "&amp;", "&")
		if !strings.Contains(src, "place.naver.com") {
			continue
		}
		if strings.HasPrefix(src, "//") {
			src = "https:" + src
		}
		if seen[src] {
			continue
		}
		seen[src] = true
		urls = append(urls, src)
	}
	return urls
}

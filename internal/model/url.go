package model

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
)

// MobilePlaceHost is the canonical host every listing URL is resolved to.
const MobilePlaceHost = "m.place.naver.com"

// placeIDPattern matches the numeric listing ID in any known URL layout,
// including vertical-specific paths (restaurant/..., hairshop/...).
var placeIDPattern = regexp.MustCompile(`/(?:place|restaurant|cafe|hairshop|hospital|accommodation|beauty|entry/place)/(\d+)`)

var knownPlaceHosts = map[string]bool{
	"m.place.naver.com":     true,
	"place.naver.com":       true,
	"pcmap.place.naver.com": true,
	"map.naver.com":         true,
	"naver.me":              true,
}

// CanonicalPlaceURL rewrites any recognized listing URL onto the mobile
// host with the query string stripped. Unrecognized URLs are rejected.
func CanonicalPlaceURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", eris.Wrap(err, "model: parse place url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", eris.Errorf("model: unsupported scheme %q", u.Scheme)
	}
	host := strings.ToLower(u.Hostname())
	if !knownPlaceHosts[host] {
		return "", eris.Errorf("model: not a recognized listing host: %s", host)
	}

	if m := placeIDPattern.FindStringSubmatch(u.Path); m != nil {
		return "https://" + MobilePlaceHost + "/place/" + m[1] + "/home", nil
	}

	// No listing ID in the path: keep the path, force the mobile host,
	// drop the query.
	u.Scheme = "https"
	u.Host = MobilePlaceHost
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// PlaceIDFromURL extracts the numeric listing ID, or "" if absent.
func PlaceIDFromURL(raw string) string {
	if m := placeIDPattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return ""
}

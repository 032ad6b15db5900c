package webmeta

import "strings"

// platformMarker pairs a source-platform tag with the host substrings
// that identify it. Markers are checked in declaration order; the first
// match wins.
type platformMarker struct {
	tag     string
	markers []string
}

var platformMarkers = []platformMarker{
	{"youtube", []string{"youtube.com", "youtu.be"}},
	{"tiktok", []string{"tiktok.com"}},
	{"twitter", []string{"twitter.com", "x.com"}},
	{"instagram", []string{"instagram.com"}},
	{"reddit", []string{"reddit.com"}},
	{"linkedin", []string{"linkedin.com"}},
	{"github", []string{"github.com"}},
	{"medium", []string{"medium.com"}},
}

// Detect classifies a URL into a source-platform tag. Matching is
// case-insensitive substring matching against a fixed, ordered marker
// set. An empty URL yields an empty tag; a non-empty URL that matches
// no marker yields "web".
func Detect(url string) string {
	if url == "" {
		return ""
	}

	lower := strings.ToLower(url)
	for _, pm := range platformMarkers {
		for _, marker := range pm.markers {
			if strings.Contains(lower, marker) {
				return pm.tag
			}
		}
	}
	return "web"
}

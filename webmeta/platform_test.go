package webmeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"youtube watch url", "https://www.youtube.com/watch?v=1", "youtube"},
		{"youtube short url", "https://youtu.be/abc", "youtube"},
		{"tiktok", "https://www.tiktok.com/@someone/video/1", "tiktok"},
		{"twitter", "https://twitter.com/user/status/1", "twitter"},
		{"x dot com", "https://x.com/user/status/1", "twitter"},
		{"instagram", "https://www.instagram.com/p/abc/", "instagram"},
		{"reddit", "https://www.reddit.com/r/golang/", "reddit"},
		{"linkedin", "https://www.linkedin.com/in/someone", "linkedin"},
		{"github", "https://github.com/a/b", "github"},
		{"medium", "https://medium.com/@writer/post", "medium"},
		{"uppercase host", "https://GITHUB.COM/a/b", "github"},
		{"empty url", "", ""},
		{"unknown host", "https://example.com", "web"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.url))
		})
	}
}

func TestDetectPriorityOrder(t *testing.T) {
	// youtube outranks tiktok when both markers appear
	url := "https://www.youtube.com/watch?v=1&ref=tiktok.com"
	assert.Equal(t, "youtube", Detect(url))
}

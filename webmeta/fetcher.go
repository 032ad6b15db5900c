// Copyright 2025 The Linkstash Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package webmeta

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	// fetchTimeout bounds the whole page fetch, including redirects.
	fetchTimeout = 15 * time.Second

	maxTitleLen       = 200
	maxDescriptionLen = 500

	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

// Metadata is the page information extracted from a URL.
type Metadata struct {
	Title       string
	Description string
	Thumbnail   string
}

// Fetcher retrieves display metadata for a URL. Implementations must be
// safe for concurrent use. A failed fetch is reported as an error; the
// caller decides how to degrade.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Metadata, error)
}

// HTTPFetcher implements Fetcher by downloading the page and extracting
// Open-Graph tags, with fallbacks to the page <title> and the standard
// description meta tag.
type HTTPFetcher struct {
	client *http.Client
	logger *slog.Logger
}

// FetcherOption configures an HTTPFetcher.
type FetcherOption func(*HTTPFetcher)

// WithHTTPClient sets a custom HTTP client. The default follows
// redirects and times out after 15 seconds.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *HTTPFetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithFetcherLogger sets a custom logger.
func WithFetcherLogger(logger *slog.Logger) FetcherOption {
	return func(f *HTTPFetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewHTTPFetcher creates a fetcher with a bounded-timeout,
// redirect-following HTTP client.
func NewHTTPFetcher(opts ...FetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client: &http.Client{Timeout: fetchTimeout},
		logger: slog.Default().With("component", "webmeta-fetcher"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the page and extracts og:title, og:description and
// og:image, falling back to <title> and <meta name="description">.
// Title is truncated to 200 characters and description to 500.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (Metadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Metadata{}, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return Metadata{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return Metadata{}, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "html") {
		return Metadata{}, fmt.Errorf("fetch %s: not an HTML page (%s)", url, contentType)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return Metadata{}, err
	}

	meta := extractMetadata(doc)
	meta.Title = truncateRunes(strings.TrimSpace(meta.Title), maxTitleLen)
	meta.Description = truncateRunes(strings.TrimSpace(meta.Description), maxDescriptionLen)
	return meta, nil
}

// extractMetadata walks the parsed document collecting Open-Graph tags
// and their fallbacks.
func extractMetadata(doc *html.Node) Metadata {
	var meta Metadata
	var pageTitle, metaDescription string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				property := attrValue(n, "property")
				name := attrValue(n, "name")
				content := attrValue(n, "content")
				switch {
				case property == "og:title":
					meta.Title = content
				case property == "og:description":
					meta.Description = content
				case property == "og:image":
					meta.Thumbnail = content
				case name == "description":
					metaDescription = content
				}
			case "title":
				if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					pageTitle = n.FirstChild.Data
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if meta.Title == "" {
		meta.Title = pageTitle
	}
	if meta.Description == "" {
		meta.Description = metaDescription
	}
	return meta
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

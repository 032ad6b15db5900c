package webmeta

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_OpenGraphTags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><head>
			<meta property="og:title" content="OG Title">
			<meta property="og:description" content="OG description text">
			<meta property="og:image" content="https://cdn.example.com/thumb.jpg">
			<title>Plain Title</title>
		</head><body></body></html>`)
	}))
	defer srv.Close()

	f := NewHTTPFetcher()
	meta, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "OG Title", meta.Title)
	assert.Equal(t, "OG description text", meta.Description)
	assert.Equal(t, "https://cdn.example.com/thumb.jpg", meta.Thumbnail)
}

func TestHTTPFetcher_Fallbacks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><head>
			<title>  Page Title  </title>
			<meta name="description" content="meta description">
		</head><body></body></html>`)
	}))
	defer srv.Close()

	f := NewHTTPFetcher()
	meta, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Page Title", meta.Title)
	assert.Equal(t, "meta description", meta.Description)
	assert.Empty(t, meta.Thumbnail)
}

func TestHTTPFetcher_Truncation(t *testing.T) {
	longTitle := strings.Repeat("t", 300)
	longDesc := strings.Repeat("d", 600)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `<html><head>
			<meta property="og:title" content="%s">
			<meta property="og:description" content="%s">
		</head></html>`, longTitle, longDesc)
	}))
	defer srv.Close()

	f := NewHTTPFetcher()
	meta, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, meta.Title, 200)
	assert.Len(t, meta.Description, 500)
}

func TestHTTPFetcher_NonHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, "%PDF-1.4")
	}))
	defer srv.Close()

	f := NewHTTPFetcher()
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestHTTPFetcher_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher()
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestHTTPFetcher_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed before use

	f := NewHTTPFetcher()
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestHTTPFetcher_FollowsRedirects(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><head><title>Final</title></head></html>`)
	}))
	defer target.Close()

	redirecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusFound)
	}))
	defer redirecting.Close()

	f := NewHTTPFetcher()
	meta, err := f.Fetch(context.Background(), redirecting.URL)
	require.NoError(t, err)
	assert.Equal(t, "Final", meta.Title)
}

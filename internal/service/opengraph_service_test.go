package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const opengraphFixture = `<!DOCTYPE html>
<html>
<head>
<title>Fallback Title</title>
<meta name="description" content="Fallback description.">
<meta property="og:title" content="Graph Title">
<meta property="og:description" content="Graph description.">
<meta property="og:image" content="/img/cover.png">
<meta property="og:site_name" content="Example">
<link rel="shortcut icon" href="/static/fav.png">
</head>
<body>hello</body>
</html>`

func TestPreview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(opengraphFixture))
	}))
	defer srv.Close()

	svc := NewOpenGraphService(srv.Client())
	preview, err := svc.Preview(context.Background(), srv.URL+"/post")
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if preview.Error != "" {
		t.Fatalf("unexpected preview error: %s", preview.Error)
	}
	if preview.Title != "Graph Title" {
		t.Errorf("title = %q", preview.Title)
	}
	if preview.Description != "Graph description." {
		t.Errorf("description = %q", preview.Description)
	}
	if want := srv.URL + "/img/cover.png"; preview.Image != want {
		t.Errorf("image = %q, want %q", preview.Image, want)
	}
	if preview.SiteName != "Example" {
		t.Errorf("siteName = %q", preview.SiteName)
	}
	if want := srv.URL + "/static/fav.png"; preview.Favicon != want {
		t.Errorf("favicon = %q, want %q", preview.Favicon, want)
	}
}

func TestPreviewFallbacks(t *testing.T) {
	page := `<html><head><title> Plain Page </title><meta name="description" content="plain desc"></head></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	svc := NewOpenGraphService(srv.Client())
	preview, err := svc.Preview(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if preview.Title != "Plain Page" {
		t.Errorf("title = %q, want trimmed <title> fallback", preview.Title)
	}
	if preview.Description != "plain desc" {
		t.Errorf("description = %q", preview.Description)
	}
	if want := srv.URL + "/favicon.ico"; preview.Favicon != want {
		t.Errorf("favicon = %q, want default %q", preview.Favicon, want)
	}
}

func TestPreviewUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	svc := NewOpenGraphService(srv.Client())
	preview, err := svc.Preview(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch problems must not surface as errors: %v", err)
	}
	if preview.Error == "" {
		t.Error("expected the failure reported in the preview payload")
	}
}

func TestPreviewRejectsBadURLs(t *testing.T) {
	svc := NewOpenGraphService(nil)
	for _, raw := range []string{"", "notaurl", "ftp://example.com/x", "/relative/path", "javascript:alert(1)"} {
		if _, err := svc.Preview(context.Background(), raw); err == nil {
			t.Errorf("%q should be rejected", raw)
		}
	}
}

package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Bitlatte/notebook/internal/fetch"
	"github.com/Bitlatte/notebook/internal/model"
)

type memFetcher struct {
	posts    []model.Post
	docs     map[string]string
	indexErr error
}

func (m memFetcher) FetchIndex(context.Context) ([]model.Post, error) {
	if m.indexErr != nil {
		return nil, m.indexErr
	}
	return m.posts, nil
}

func (m memFetcher) FetchDocument(_ context.Context, filename string) (string, error) {
	doc, ok := m.docs[filename]
	if !ok {
		return "", fmt.Errorf("document %s: %w", filename, fetch.ErrNotFound)
	}
	return doc, nil
}

const noteBody = `---
title: Azure VM
---
# Azure VM

Intro paragraph.

## Create

Steps here.

### Portal

Click things.

## Delete

Gone.
`

func newTestServer(t *testing.T, f fetch.Fetcher) *httptest.Server {
	t.Helper()
	s, err := New(f, Options{SiteTitle: "Notes", Logger: log.New(io.Discard, "", 0)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mux := http.NewServeMux()
	s.Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func defaultFetcher() memFetcher {
	return memFetcher{
		posts: []model.Post{
			{ID: "vm", Title: "Azure VM", Date: "2024-02-01", Author: "pp", Excerpt: "Virtual machines", Tags: []string{"azure"}, Filename: "vm.md"},
			{ID: "go", Title: "Go Channels", Date: "2024-01-01", Author: "pp", Excerpt: "Concurrency", Tags: []string{"golang"}, Filename: "go.md"},
			{ID: "lost", Title: "Lost", Filename: "lost.md"},
		},
		docs: map[string]string{
			"vm.md": noteBody,
			"go.md": "Just text, no sections.\n",
		},
	}
}

func get(t *testing.T, client *http.Client, url string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func noRedirect() *http.Client {
	return &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
}

func TestListing(t *testing.T) {
	srv := newTestServer(t, defaultFetcher())

	for _, path := range []string{"/", "/index.html"} {
		resp, body := get(t, srv.Client(), srv.URL+path)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s status = %d", path, resp.StatusCode)
		}
		if !strings.Contains(body, "Azure VM") || !strings.Contains(body, "Go Channels") {
			t.Fatalf("listing misses posts:\n%s", body)
		}
		if strings.Contains(body, `class="search-container active"`) {
			t.Fatal("search box open without a search term")
		}
	}
}

func TestListingSearch(t *testing.T) {
	srv := newTestServer(t, defaultFetcher())
	_, body := get(t, srv.Client(), srv.URL+"/index.html?search=GOLANG")

	if !strings.Contains(body, `Search results: &#34;GOLANG&#34; (1)`) {
		t.Fatalf("missing result heading:\n%s", body)
	}
	if !strings.Contains(body, `class="search-container active"`) || !strings.Contains(body, `value="GOLANG"`) {
		t.Fatalf("search box not pre-opened:\n%s", body)
	}
	listing := body[strings.Index(body, `id="posts-list"`):strings.Index(body, "</main>")]
	if strings.Contains(listing, "Azure VM") || !strings.Contains(listing, "Go Channels") {
		t.Fatalf("filter not applied:\n%s", listing)
	}

	_, empty := get(t, srv.Client(), srv.URL+"/index.html?search=kubernetes")
	if !strings.Contains(empty, "No matching posts found.") {
		t.Fatalf("missing empty message:\n%s", empty)
	}
}

func TestListingIndexUnavailable(t *testing.T) {
	srv := newTestServer(t, memFetcher{indexErr: errors.New("offline")})
	resp, body := get(t, srv.Client(), srv.URL+"/")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "No matching posts found.") {
		t.Fatalf("status = %d body:\n%s", resp.StatusCode, body)
	}
}

func TestDocumentRedirects(t *testing.T) {
	srv := newTestServer(t, defaultFetcher())
	for _, path := range []string{"/post.html", "/post.html?id=", "/post.html?id=unknown"} {
		resp, _ := get(t, noRedirect(), srv.URL+path)
		if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/index.html" {
			t.Errorf("GET %s = %d Location=%q", path, resp.StatusCode, resp.Header.Get("Location"))
		}
	}
}

func TestDocument(t *testing.T) {
	srv := newTestServer(t, defaultFetcher())
	_, body := get(t, srv.Client(), srv.URL+"/post.html?id=vm")

	for _, want := range []string{
		"<title>Azure VM - Notes</title>",
		`<div id="post-meta-data" class="post-meta">2024-02-01 | pp</div>`,
		`<div class="intro-section"><p>Intro paragraph.</p>`,
		`class="accordion-header active" data-target="section-2"`,
		`<div id="section-2" class="accordion-content open">`,
		`<h3 id="h3-4">Portal</h3>`,
		`<div id="section-6" class="accordion-content open">`,
		`class="toc-sublink" data-section="section-2" data-subsection="h3-4">Portal</a>`,
		`href="post.html?id=vm&amp;goto=section-6"`,
		`Collapse all`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("document missing %q", want)
		}
	}
	article := body[strings.Index(body, `id="article-body"`):]
	if strings.Contains(article, "<h1>Azure VM</h1>") {
		t.Error("first H1 was not removed from the body")
	}
	if strings.Contains(body, "<script>") {
		t.Error("scroll script emitted without a navigation target")
	}
}

func TestDocumentCollapsedAndGoto(t *testing.T) {
	srv := newTestServer(t, defaultFetcher())
	_, body := get(t, srv.Client(), srv.URL+"/post.html?id=vm&collapsed=section-2,section-6&goto=section-2/h3-4")

	if !strings.Contains(body, `<div id="section-2" class="accordion-content open">`) {
		t.Error("goto target section was not expanded")
	}
	if !strings.Contains(body, `<div id="section-6" class="accordion-content">`) {
		t.Error("other section should stay collapsed")
	}
	if !strings.Contains(body, `document.getElementById("h3-4")`) || !strings.Contains(body, `block: "center"`) {
		t.Errorf("scroll script missing:\n%s", body)
	}
	if !strings.Contains(body, " 300 );") && !strings.Contains(body, "}, 300);") {
		t.Error("settle delay not applied")
	}
}

func TestDocumentGotoUnknownIsIgnored(t *testing.T) {
	srv := newTestServer(t, defaultFetcher())
	resp, body := get(t, srv.Client(), srv.URL+"/post.html?id=vm&goto=section-2/h3-99")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if strings.Contains(body, "<script>") {
		t.Error("unknown target produced a scroll")
	}
}

func TestDocumentWithoutSections(t *testing.T) {
	srv := newTestServer(t, defaultFetcher())
	_, body := get(t, srv.Client(), srv.URL+"/post.html?id=go")
	if !strings.Contains(body, "<p>Just text, no sections.</p>") {
		t.Fatalf("body missing:\n%s", body)
	}
	if strings.Contains(body, "toc-widget") || strings.Contains(body, "toggle-all-btn") {
		t.Fatal("TOC shown for a note without sections")
	}
}

func TestDocumentBodyMissing(t *testing.T) {
	srv := newTestServer(t, defaultFetcher())
	resp, body := get(t, srv.Client(), srv.URL+"/post.html?id=lost")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, `<h1 id="post-title">Lost</h1>`) {
		t.Fatalf("metadata not rendered:\n%s", body)
	}
	if strings.Contains(body, "accordion") {
		t.Fatal("body rendered for a missing document")
	}
}

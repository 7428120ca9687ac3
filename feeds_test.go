package inkgen

import (
	"bytes"
	"strings"
	"testing"
)

func feedPosts(t *testing.T) []BlogPost {
	t.Helper()
	coll := newCollection([]BlogPost{
		post(t, "older", "2024-01-05", "go"),
		post(t, "newer", "2024-01-15", "web"),
	})
	return coll.Posts()
}

func TestWriteFeed(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFeed(&buf, validConfig(), feedPosts(t)); err != nil {
		t.Fatalf("WriteFeed failed: %v", err)
	}
	got := buf.String()

	for _, want := range []string{
		`<?xml`,
		`<rss version="2.0">`,
		`<title>My Blog</title>`,
		`<description>Writing about software</description>`,
		`<link>https://blog.example.com/blog/newer/</link>`,
		`<link>https://blog.example.com/blog/older/</link>`,
		`<pubDate>Mon, 15 Jan 2024 00:00:00 +0000</pubDate>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("feed missing %s:\n%s", want, got)
		}
	}

	// Items must appear in listing order, most recent first.
	if strings.Index(got, "blog/newer") > strings.Index(got, "blog/older") {
		t.Error("feed items are not in listing order")
	}
}

func TestWriteSitemap(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSitemap(&buf, validConfig(), feedPosts(t), []string{"go", "web"}); err != nil {
		t.Fatalf("WriteSitemap failed: %v", err)
	}
	got := buf.String()

	for _, want := range []string{
		`xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`,
		`<loc>https://blog.example.com</loc>`,
		`<loc>https://blog.example.com/blog/newer/</loc>`,
		`<lastmod>2024-01-15</lastmod>`,
		`<loc>https://blog.example.com/tags/go/</loc>`,
		`<loc>https://blog.example.com/tags/web/</loc>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("sitemap missing %s:\n%s", want, got)
		}
	}
}

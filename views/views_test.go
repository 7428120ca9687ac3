package views

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"inkgen"
)

func testConfig() inkgen.SiteConfig {
	return inkgen.SiteConfig{
		Title:       "My Blog",
		Description: "Writing about software",
		URL:         "https://blog.example.com",
		Author:      "Jane Doe",
		Email:       "jane@example.com",
		GitHubURL:   "https://github.com/janedoe",
		LinkedInURL: "https://www.linkedin.com/in/janedoe",
	}
}

func testPost() inkgen.BlogPost {
	return inkgen.BlogPost{
		Title:       "Hello <World>",
		Description: "A greeting",
		PubDate:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Tags:        []string{"go"},
		Slug:        "hello-world",
		Link:        "/blog/hello-world/",
		Body:        "# Greetings\n\nSome **bold** text.",
	}
}

func TestHomeListsPosts(t *testing.T) {
	var buf bytes.Buffer
	cmp := Home(testConfig(), []inkgen.BlogPost{testPost()}, []string{"go"})
	if err := cmp.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	got := buf.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>My Blog</title>",
		`href="/blog/hello-world/"`,
		"Hello &lt;World&gt;",
		`href="/tags/go/"`,
		`href="/feed.xml"`,
		"jane@example.com",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("home page missing %s", want)
		}
	}
}

func TestPostRendersBodyAndMeta(t *testing.T) {
	var buf bytes.Buffer
	cmp := Post(testConfig(), testPost(), nil)
	if err := cmp.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	got := buf.String()
	for _, want := range []string{
		"<h1>Hello &lt;World&gt;</h1>",
		"<h1>Greetings</h1>",
		"<strong>bold</strong>",
		`property="og:type" content="article"`,
		`"@type":"BlogPosting"`,
		`datetime="2024-01-15"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("post page missing %s", want)
		}
	}
}

func TestPostHeroImage(t *testing.T) {
	var buf bytes.Buffer
	p := testPost()
	p.HeroImage = "/assets/hero.jpg"
	if err := Post(testConfig(), p, nil).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(buf.String(), `src="/assets/hero.jpg"`) {
		t.Error("hero image not rendered")
	}
}

func TestNotFound(t *testing.T) {
	var buf bytes.Buffer
	if err := NotFound(testConfig()).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "404") {
		t.Error("404 page missing its heading")
	}
}

func TestTagIndex(t *testing.T) {
	var buf bytes.Buffer
	if err := TagIndex(testConfig(), "go", []inkgen.BlogPost{testPost()}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "go") || !strings.Contains(got, "/blog/hello-world/") {
		t.Errorf("tag page incomplete:\n%s", got)
	}
}

func TestDefaultIsComplete(t *testing.T) {
	v := Default()
	if v.Home == nil || v.TagIndex == nil || v.Post == nil || v.NotFound == nil {
		t.Fatal("Default() must populate every view")
	}
}

// Package views provides the default templ components for inkgen sites.
// Every component is a plain templ.ComponentFunc writing HTML, so sites
// that want their own look supply their own ViewFuncs instead.
package views

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"inkgen"
	"inkgen/markdown"
)

// Default returns the stock view set.
func Default() inkgen.ViewFuncs {
	return inkgen.ViewFuncs{
		Home:     Home,
		TagIndex: TagIndex,
		Post:     Post,
		NotFound: NotFound,
	}
}

// Home renders the index page: the site header and every post in listing
// order.
func Home(cfg inkgen.SiteConfig, posts []inkgen.BlogPost, tags []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		meta := inkgen.PageMeta{
			Title:       cfg.Title,
			Description: cfg.Description,
			URL:         inkgen.BuildURL(cfg.URL),
			OGType:      "website",
		}
		openPage(&b, cfg, meta, inkgen.WebsiteJSONLD(cfg))
		b.WriteString(`<h1>` + html.EscapeString(cfg.Title) + `</h1>`)
		b.WriteString(`<p class="site-description">` + html.EscapeString(cfg.Description) + `</p>`)
		writeTagNav(&b, tags, "")
		writePostList(&b, posts)
		closePage(&b, cfg)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// TagIndex renders the listing page for one tag.
func TagIndex(cfg inkgen.SiteConfig, tag string, posts []inkgen.BlogPost) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		meta := inkgen.PageMeta{
			Title:       tag + " — " + cfg.Title,
			Description: cfg.Description,
			URL:         inkgen.BuildURL(cfg.URL, "tags", tag),
			OGType:      "website",
		}
		openPage(&b, cfg, meta, inkgen.WebsiteJSONLD(cfg))
		b.WriteString(`<h1>Posts tagged “` + html.EscapeString(tag) + `”</h1>`)
		writePostList(&b, posts)
		closePage(&b, cfg)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Post renders a single post page: hero image, title, date, tags, the
// rendered markdown body, and related posts.
func Post(cfg inkgen.SiteConfig, post inkgen.BlogPost, related []inkgen.BlogPost) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		meta := inkgen.PageMeta{
			Title:       post.Title + " — " + cfg.Title,
			Description: post.Description,
			URL:         inkgen.BuildURL(cfg.URL, "blog", post.Slug),
			OGType:      "article",
		}
		openPage(&b, cfg, meta, inkgen.BlogPostingJSONLD(post, cfg))
		b.WriteString(`<article>`)
		if post.HeroImage != "" {
			b.WriteString(`<img class="hero" fetchpriority="high" decoding="async" alt="" src="` + html.EscapeString(post.HeroImage) + `"/>`)
		}
		b.WriteString(`<h1>` + html.EscapeString(post.Title) + `</h1>`)
		b.WriteString(`<p class="meta"><time datetime="` + post.PubDate.Format("2006-01-02") + `">` +
			post.PubDate.Format("January 2, 2006") + `</time>`)
		if len(post.Tags) > 0 {
			b.WriteString(` · ` + html.EscapeString(inkgen.JoinTags(post.Tags)))
		}
		b.WriteString(`</p>`)
		if err := flush(w, &b); err != nil {
			return err
		}
		if err := markdown.Markdown(post.Body).Render(ctx, w); err != nil {
			return err
		}
		b.WriteString(`</article>`)
		if len(related) > 0 {
			b.WriteString(`<aside><h2>Related posts</h2>`)
			writePostList(&b, related)
			b.WriteString(`</aside>`)
		}
		closePage(&b, cfg)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// NotFound renders the 404 page.
func NotFound(cfg inkgen.SiteConfig) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		meta := inkgen.PageMeta{
			Title:       "Not found — " + cfg.Title,
			Description: cfg.Description,
			URL:         inkgen.BuildURL(cfg.URL),
			OGType:      "website",
		}
		openPage(&b, cfg, meta, "")
		b.WriteString(`<h1>404</h1><p>This page does not exist. <a href="/">Back to the index.</a></p>`)
		closePage(&b, cfg)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func openPage(b *strings.Builder, cfg inkgen.SiteConfig, meta inkgen.PageMeta, jsonLD string) {
	b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
	b.WriteString(`<title>` + html.EscapeString(meta.Title) + `</title>`)
	b.WriteString(`<meta name="description" content="` + html.EscapeString(meta.Description) + `"/>`)
	b.WriteString(`<meta name="author" content="` + html.EscapeString(cfg.Author) + `"/>`)
	b.WriteString(`<link rel="canonical" href="` + html.EscapeString(meta.URL) + `"/>`)
	b.WriteString(`<meta property="og:title" content="` + html.EscapeString(meta.Title) + `"/>`)
	b.WriteString(`<meta property="og:description" content="` + html.EscapeString(meta.Description) + `"/>`)
	b.WriteString(`<meta property="og:url" content="` + html.EscapeString(meta.URL) + `"/>`)
	b.WriteString(`<meta property="og:type" content="` + meta.OGType + `"/>`)
	b.WriteString(`<link rel="alternate" type="application/rss+xml" title="` + html.EscapeString(cfg.Title) + `" href="/feed.xml"/>`)
	if jsonLD != "" {
		b.WriteString(`<script type="application/ld+json">` + jsonLD + `</script>`)
	}
	b.WriteString(`</head><body><header><nav><a href="/">` + html.EscapeString(cfg.Title) + `</a></nav></header><main>`)
}

func closePage(b *strings.Builder, cfg inkgen.SiteConfig) {
	b.WriteString(`</main><footer><p>` + html.EscapeString(cfg.Author) + ` · `)
	b.WriteString(`<a href="mailto:` + html.EscapeString(cfg.Email) + `">email</a> · `)
	b.WriteString(`<a href="` + html.EscapeString(cfg.GitHubURL) + `">github</a> · `)
	b.WriteString(`<a href="` + html.EscapeString(cfg.LinkedInURL) + `">linkedin</a>`)
	b.WriteString(`</p></footer></body></html>`)
}

func writePostList(b *strings.Builder, posts []inkgen.BlogPost) {
	b.WriteString(`<ul class="post-list">`)
	for _, p := range posts {
		b.WriteString(`<li><a href="` + html.EscapeString(p.Link) + `">` + html.EscapeString(p.Title) + `</a>`)
		b.WriteString(` <time datetime="` + p.PubDate.Format("2006-01-02") + `">` + p.PubDate.Format("Jan 2, 2006") + `</time>`)
		b.WriteString(`<p>` + html.EscapeString(p.Description) + `</p></li>`)
	}
	b.WriteString(`</ul>`)
}

func writeTagNav(b *strings.Builder, tags []string, active string) {
	if len(tags) == 0 {
		return
	}
	b.WriteString(`<nav class="tags">`)
	for _, t := range tags {
		class := ""
		if t == active {
			class = ` class="active"`
		}
		b.WriteString(`<a` + class + ` href="/tags/` + html.EscapeString(t) + `/">` + html.EscapeString(t) + `</a> `)
	}
	b.WriteString(`</nav>`)
}

func flush(w io.Writer, b *strings.Builder) error {
	_, err := io.WriteString(w, b.String())
	b.Reset()
	return err
}

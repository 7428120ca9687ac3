package inkgen

import "time"

// BlogPost is the core content type produced by the loader and rendered by
// templates. Identity is the Slug; the set of posts is fixed for one build.
type BlogPost struct {
	Title       string
	Description string
	PubDate     time.Time // date-only, midnight UTC
	Tags        []string
	HeroImage   string // optional; empty means no hero image
	Slug        string
	Link        string
	Body        string // raw markdown, handed to the renderer unmodified
	SourcePath  string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> of a
// rendered page.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// Package inkgen is a static blog generation engine built with Go and templ.
// It loads a content collection of markdown documents with YAML front
// matter, validates them against a fixed schema, and renders a complete
// site: post pages, an index, tag listings, an RSS feed, and a sitemap.
//
// Users provide their own templ components via the ViewFuncs struct, and
// inkgen handles loading, validation, ordering, and page emission.
package inkgen

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog"
)

// ViewFuncs holds user-provided templ components that the engine calls when
// emitting pages. This is the inversion-of-control mechanism that lets users
// own and customize all templates; defaults live in the views package.
type ViewFuncs struct {
	Home     func(cfg SiteConfig, posts []BlogPost, tags []string) templ.Component
	TagIndex func(cfg SiteConfig, tag string, posts []BlogPost) templ.Component
	Post     func(cfg SiteConfig, post BlogPost, related []BlogPost) templ.Component
	NotFound func(cfg SiteConfig) templ.Component
}

// Site is the central inkgen engine. It wires together the configuration,
// the content collection, and the user-provided templates.
type Site struct {
	Config SiteConfig
	Views  ViewFuncs

	contentDir string
	outputDir  string
	staticDir  string
	workers    int
	log        zerolog.Logger

	collection *Collection
}

// New creates a Site with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *Site {
	s := &Site{
		Config:     cfg,
		Views:      views,
		contentDir: "content",
		outputDir:  "dist",
		staticDir:  "static",
		workers:    runtime.NumCPU(),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load validates the configuration, then parses and validates docs into the
// site's collection. Any failure aborts before any page is rendered.
func (s *Site) Load(ctx context.Context, docs []Document) error {
	if err := s.Config.Validate(); err != nil {
		return err
	}
	if err := s.checkViews(); err != nil {
		return err
	}
	coll, err := LoadCollection(ctx, docs, s.workers)
	if err != nil {
		return err
	}
	s.collection = coll
	s.log.Info().Int("posts", coll.Len()).Int("tags", len(coll.Tags())).Msg("content collection loaded")
	return nil
}

// LoadDir loads every markdown document under fsys.
func (s *Site) LoadDir(ctx context.Context, fsys fs.FS) error {
	docs, err := DirSource(fsys)
	if err != nil {
		return err
	}
	return s.Load(ctx, docs)
}

// Collection returns the loaded content collection, or nil before Load.
func (s *Site) Collection() *Collection {
	return s.collection
}

// Build runs one complete build: load the content directory, stage hero
// images and static assets, and emit every page plus the feed and sitemap
// into the output directory. It is all-or-nothing; the first error aborts
// the build with no partial-success mode.
func (s *Site) Build(ctx context.Context) error {
	start := time.Now()

	if err := s.LoadDir(ctx, os.DirFS(s.contentDir)); err != nil {
		return err
	}
	if err := s.stageAssets(); err != nil {
		return err
	}
	if err := s.emitPages(ctx); err != nil {
		return err
	}
	if err := s.emitFeeds(); err != nil {
		return err
	}

	s.log.Info().
		Int("posts", s.collection.Len()).
		Str("output", s.outputDir).
		Dur("elapsed", time.Since(start)).
		Msg("site built")
	return nil
}

func (s *Site) checkViews() error {
	switch {
	case s.Views.Home == nil:
		return fmt.Errorf("inkgen: Views.Home is required")
	case s.Views.TagIndex == nil:
		return fmt.Errorf("inkgen: Views.TagIndex is required")
	case s.Views.Post == nil:
		return fmt.Errorf("inkgen: Views.Post is required")
	case s.Views.NotFound == nil:
		return fmt.Errorf("inkgen: Views.NotFound is required")
	}
	return nil
}

// emitPages renders the index, one page per post, one page per tag, and the
// 404 page.
func (s *Site) emitPages(ctx context.Context) error {
	cfg := s.Config
	posts := s.collection.Posts()
	tags := s.collection.Tags()

	if err := RenderToFile(ctx, filepath.Join(s.outputDir, "index.html"), s.Views.Home(cfg, posts, tags)); err != nil {
		return err
	}
	for _, p := range posts {
		out := filepath.Join(s.outputDir, "blog", filepath.FromSlash(p.Slug), "index.html")
		if err := RenderToFile(ctx, out, s.Views.Post(cfg, p, s.collection.Related(p))); err != nil {
			return err
		}
		s.log.Debug().Str("slug", p.Slug).Msg("post page rendered")
	}
	for _, t := range tags {
		out := filepath.Join(s.outputDir, "tags", t, "index.html")
		if err := RenderToFile(ctx, out, s.Views.TagIndex(cfg, t, s.collection.FilterByTag(t))); err != nil {
			return err
		}
	}
	return RenderToFile(ctx, filepath.Join(s.outputDir, "404.html"), s.Views.NotFound(cfg))
}

// emitFeeds writes feed.xml and sitemap.xml.
func (s *Site) emitFeeds() error {
	posts := s.collection.Posts()

	f, err := createFile(filepath.Join(s.outputDir, "feed.xml"))
	if err != nil {
		return err
	}
	if err := WriteFeed(f, s.Config, posts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	sm, err := createFile(filepath.Join(s.outputDir, "sitemap.xml"))
	if err != nil {
		return err
	}
	if err := WriteSitemap(sm, s.Config, posts, s.collection.Tags()); err != nil {
		sm.Close()
		return err
	}
	return sm.Close()
}

// stageAssets copies the static directory into the output verbatim, then
// processes every locally referenced hero image into output assets and
// rewrites the posts to point at the processed files. Remote hero URLs are
// left untouched.
func (s *Site) stageAssets() error {
	if err := s.copyStatic(); err != nil {
		return err
	}

	posts := make([]BlogPost, s.collection.Len())
	copy(posts, s.collection.Posts())
	staged := 0
	for i, p := range posts {
		if p.HeroImage == "" || isRemoteRef(p.HeroImage) {
			continue
		}
		ref := filepath.FromSlash(trimLeadingSlash(p.HeroImage))
		src, err := os.Open(filepath.Join(s.staticDir, ref))
		if err != nil {
			return fmt.Errorf("inkgen: %s: hero image %q: %w", p.SourcePath, p.HeroImage, err)
		}
		hero, err := processHeroImage(src, ref)
		src.Close()
		if err != nil {
			return fmt.Errorf("inkgen: %s: hero image %q: %w", p.SourcePath, p.HeroImage, err)
		}
		out := filepath.Join(s.outputDir, "assets", hero.Name)
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(out, hero.Data, 0o644); err != nil {
			return err
		}
		posts[i].HeroImage = "/assets/" + hero.Name
		staged++
	}
	if staged > 0 {
		// Hero references changed; rebuild the collection's sorted view.
		s.collection = newCollection(posts)
		s.log.Info().Int("heroes", staged).Msg("hero images processed")
	}
	return nil
}

func (s *Site) copyStatic() error {
	info, err := os.Stat(s.staticDir)
	if os.IsNotExist(err) {
		s.log.Debug().Str("dir", s.staticDir).Msg("no static directory, skipping copy")
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("inkgen: static path %s is not a directory", s.staticDir)
	}
	return filepath.WalkDir(s.staticDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(s.staticDir, path)
		if err != nil {
			return err
		}
		return copyFile(path, filepath.Join(s.outputDir, rel))
	})
}

func trimLeadingSlash(p string) string {
	for len(p) > 0 && (p[0] == '/' || p[0] == '\\') {
		p = p[1:]
	}
	return p
}

func createFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(path)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := createFile(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

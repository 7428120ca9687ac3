package inkgen

import (
	"context"
	"fmt"
	"io/fs"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Document is one source markdown file: its path relative to the content
// root and its raw UTF-8 text. The loader takes an explicit document list so
// it can be exercised without touching a real filesystem.
type Document struct {
	Path string
	Raw  []byte
}

// DirSource enumerates all markdown documents under fsys, read-only.
// Paths keep their directory structure; nothing else is touched.
func DirSource(fsys fs.FS) ([]Document, error) {
	var docs []Document
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(path), ".md") {
			return nil
		}
		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		docs = append(docs, Document{Path: path, Raw: raw})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// pubDateLayout is the only accepted pubDate form. Dates are calendar dates;
// no time zone is involved.
const pubDateLayout = "2006-01-02"

// LoadCollection parses and validates every document and returns the typed
// collection. Parsing runs on up to workers goroutines (workers < 1 means
// one per CPU); per-document validation has no cross-document dependency,
// so the only sequential steps are the duplicate-slug check and the final
// sort, both deterministic in document order. Any schema violation or slug
// collision fails the whole load.
func LoadCollection(ctx context.Context, docs []Document, workers int) (*Collection, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	posts := make([]BlogPost, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			post, err := parseDocument(doc)
			if err != nil {
				return err
			}
			posts[i] = post
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(posts))
	for _, p := range posts {
		if other, ok := seen[p.Slug]; ok {
			return nil, &DuplicateSlugError{Slug: p.Slug, Path: p.SourcePath, OtherPath: other}
		}
		seen[p.Slug] = p.SourcePath
	}

	return newCollection(posts), nil
}

// parseDocument splits the front matter block from the body, validates every
// schema field explicitly, and builds the BlogPost. The body is carried over
// byte-for-byte; rendering it is the markdown package's job.
func parseDocument(doc Document) (BlogPost, error) {
	block, body, err := splitFrontMatter(string(doc.Raw))
	if err != nil {
		return BlogPost{}, &SchemaError{Path: doc.Path, Field: "front matter", Reason: err.Error()}
	}

	var fields map[string]yaml.Node
	if err := yaml.Unmarshal([]byte(block), &fields); err != nil {
		return BlogPost{}, &SchemaError{Path: doc.Path, Field: "front matter", Reason: "not a valid key/value block"}
	}

	title, err := requiredString(fields, "title")
	if err != nil {
		return BlogPost{}, &SchemaError{Path: doc.Path, Field: "title", Reason: err.Error()}
	}
	description, err := requiredString(fields, "description")
	if err != nil {
		return BlogPost{}, &SchemaError{Path: doc.Path, Field: "description", Reason: err.Error()}
	}

	rawDate, err := requiredString(fields, "pubDate")
	if err != nil {
		return BlogPost{}, &SchemaError{Path: doc.Path, Field: "pubDate", Reason: err.Error()}
	}
	pubDate, err := time.ParseInLocation(pubDateLayout, rawDate, time.UTC)
	if err != nil {
		return BlogPost{}, &SchemaError{Path: doc.Path, Field: "pubDate", Reason: fmt.Sprintf("%q is not a valid calendar date (want YYYY-MM-DD)", rawDate)}
	}

	var heroImage string
	if node, ok := fields["heroImage"]; ok {
		if err := node.Decode(&heroImage); err != nil {
			return BlogPost{}, &SchemaError{Path: doc.Path, Field: "heroImage", Reason: "must be a string"}
		}
	}

	tags := []string{}
	if node, ok := fields["tags"]; ok {
		if err := node.Decode(&tags); err != nil {
			return BlogPost{}, &SchemaError{Path: doc.Path, Field: "tags", Reason: "must be a sequence of strings"}
		}
		for _, t := range tags {
			if strings.TrimSpace(t) == "" {
				return BlogPost{}, &SchemaError{Path: doc.Path, Field: "tags", Reason: "must not contain empty entries"}
			}
		}
	}

	slug := SlugFromPath(doc.Path)
	return BlogPost{
		Title:       title,
		Description: description,
		PubDate:     pubDate,
		Tags:        tags,
		HeroImage:   heroImage,
		Slug:        slug,
		Link:        "/blog/" + slug + "/",
		Body:        body,
		SourcePath:  doc.Path,
	}, nil
}

// requiredString fetches a front matter field that must be a non-empty
// string scalar.
func requiredString(fields map[string]yaml.Node, key string) (string, error) {
	node, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("required field is missing")
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return "", fmt.Errorf("must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("must not be empty")
	}
	return s, nil
}

// splitFrontMatter separates the leading "---" delimited YAML block from the
// markdown body. The body is returned exactly as written, including leading
// blank lines after the closing delimiter.
func splitFrontMatter(raw string) (block, body string, err error) {
	content := strings.TrimPrefix(raw, "\uFEFF")
	if !strings.HasPrefix(content, "---\n") && !strings.HasPrefix(content, "---\r\n") {
		return "", "", fmt.Errorf("document does not start with a front matter block")
	}
	rest := content[strings.Index(content, "\n")+1:]
	for _, delim := range []string{"\n---\n", "\n---\r\n", "\r\n---\n", "\r\n---\r\n"} {
		if idx := strings.Index(rest, delim); idx >= 0 {
			return rest[:idx], rest[idx+len(delim):], nil
		}
	}
	// Closing delimiter on the final line with no trailing newline.
	if strings.HasSuffix(rest, "\n---") {
		return strings.TrimSuffix(rest, "---"), "", nil
	}
	return "", "", fmt.Errorf("front matter block is never closed")
}

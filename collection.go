package inkgen

import (
	"sort"
	"strings"
)

// Collection is the validated, typed set of blog posts for one build.
// It is immutable once constructed: every query serves the same sorted view.
type Collection struct {
	posts  []BlogPost // pubDate descending, loader order preserved on ties
	bySlug map[string]int
	tags   []string
}

// newCollection sorts posts by pubDate descending. The sort is stable so
// posts sharing a date keep the loader's relative order, which makes the
// listing deterministic within one build.
func newCollection(posts []BlogPost) *Collection {
	sorted := make([]BlogPost, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PubDate.After(sorted[j].PubDate)
	})

	bySlug := make(map[string]int, len(sorted))
	tagSet := make(map[string]struct{})
	for i, p := range sorted {
		bySlug[p.Slug] = i
		for _, t := range p.Tags {
			tagSet[normalizeTag(t)] = struct{}{}
		}
	}
	tags := make([]string, 0, len(tagSet))
	for t := range tagSet {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	return &Collection{posts: sorted, bySlug: bySlug, tags: tags}
}

// Posts returns all posts, most recent first. Callers must not mutate the
// returned slice.
func (c *Collection) Posts() []BlogPost {
	return c.posts
}

// Len returns the number of posts in the collection.
func (c *Collection) Len() int {
	return len(c.posts)
}

// Get returns the post whose derived slug equals slug, or ErrNotFound.
func (c *Collection) Get(slug string) (BlogPost, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return BlogPost{}, ErrNotFound
	}
	return c.posts[i], nil
}

// Tags returns every tag used by at least one post, lowercased,
// deduplicated, and sorted.
func (c *Collection) Tags() []string {
	return c.tags
}

// FilterByTag returns the posts carrying tag, matched case-insensitively,
// in listing order.
func (c *Collection) FilterByTag(tag string) []BlogPost {
	normalized := normalizeTag(tag)
	var filtered []BlogPost
	for _, p := range c.posts {
		for _, t := range p.Tags {
			if normalizeTag(t) == normalized {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered
}

// Related returns the posts sharing at least one tag with current, in
// listing order, excluding current itself.
func (c *Collection) Related(current BlogPost) []BlogPost {
	tagSet := make(map[string]struct{}, len(current.Tags))
	for _, t := range current.Tags {
		tagSet[normalizeTag(t)] = struct{}{}
	}
	var related []BlogPost
	for _, p := range c.posts {
		if p.Slug == current.Slug {
			continue
		}
		for _, t := range p.Tags {
			if _, ok := tagSet[normalizeTag(t)]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

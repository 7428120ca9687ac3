package inkgen

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
)

// Slugify converts arbitrary text to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// SlugFromPath derives a post's slug from its source path: lowercased,
// extension stripped, path separators preserved as slug separators.
// "Go/My-Post.md" becomes "go/my-post".
func SlugFromPath(p string) string {
	p = strings.ToLower(path.Clean(strings.ReplaceAll(p, "\\", "/")))
	p = strings.TrimPrefix(p, "./")
	ext := path.Ext(p)
	return strings.TrimSuffix(p, ext)
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// JoinTags joins tags with ", ".
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// WebsiteJSONLD returns a JSON-LD string for a WebSite schema built from the
// site configuration. The social profile URLs go into sameAs.
func WebsiteJSONLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Title,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
		"author": map[string]interface{}{
			"@type":  "Person",
			"name":   cfg.Author,
			"email":  cfg.Email,
			"sameAs": []string{cfg.GitHubURL, cfg.LinkedInURL},
		},
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJSONLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJSONLD(post BlogPost, cfg SiteConfig) string {
	postURL := BuildURL(cfg.URL, "blog", post.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Description,
		"datePublished": post.PubDate.Format(pubDateLayout),
		"url":           postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
		"author": map[string]interface{}{
			"@type":  "Person",
			"name":   cfg.Author,
			"sameAs": []string{cfg.GitHubURL, cfg.LinkedInURL},
		},
	}
	if post.HeroImage != "" {
		data["image"] = post.HeroImage
	}
	if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.Tags, ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

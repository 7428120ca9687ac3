package inkgen

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"  Spaces  ", "spaces"},
		{"Go 1.22 Release!", "go-1-22-release"},
		{"already-slugged", "already-slugged"},
		{"Trailing---", "trailing"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.expected {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSlugFromPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"My-Post.md", "my-post"},
		{"my-post.md", "my-post"},
		{"Go/Generics-Intro.md", "go/generics-intro"},
		{"./relative.md", "relative"},
		{"UPPER.MD", "upper"},
		{"nested\\windows\\path.md", "nested/windows/path"},
	}
	for _, tt := range tests {
		if got := SlugFromPath(tt.input); got != tt.expected {
			t.Errorf("SlugFromPath(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		expected string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"blog", "my-post"}, "https://example.com/blog/my-post/"},
		{"https://example.com/base", []string{"tags", "go"}, "https://example.com/base/tags/go/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.expected {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.expected)
		}
	}
}

func TestWebsiteJSONLD(t *testing.T) {
	got := WebsiteJSONLD(validConfig())
	for _, want := range []string{
		`"@type":"WebSite"`,
		`"name":"My Blog"`,
		`"https://github.com/janedoe"`,
		`"https://www.linkedin.com/in/janedoe"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("WebsiteJSONLD missing %s in %s", want, got)
		}
	}
}

func TestBlogPostingJSONLD(t *testing.T) {
	p := post(t, "my-post", "2024-01-15", "go")
	p.Title = "My Post"
	p.HeroImage = "/assets/hero.jpg"
	got := BlogPostingJSONLD(p, validConfig())
	for _, want := range []string{
		`"@type":"BlogPosting"`,
		`"headline":"My Post"`,
		`"datePublished":"2024-01-15"`,
		`"image":"/assets/hero.jpg"`,
		`"keywords":"go"`,
		`https://blog.example.com/blog/my-post/`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("BlogPostingJSONLD missing %s in %s", want, got)
		}
	}
}

package inkgen

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// SiteConfig holds the site-wide constants interpolated into every rendered
// page: headers, metadata tags, the feed channel, and the footer. It is
// constructed once at build start and never mutated.
type SiteConfig struct {
	Title       string `yaml:"title" validate:"required"`
	Description string `yaml:"description" validate:"required"`
	URL         string `yaml:"url" validate:"required,url"`
	Author      string `yaml:"author" validate:"required"`
	Email       string `yaml:"email" validate:"required,email"`
	GitHubURL   string `yaml:"githubUrl" validate:"required,url"`
	LinkedInURL string `yaml:"linkedinUrl" validate:"required,url"`
}

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their yaml names so errors match what the author
	// wrote in site.yaml.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks that every field is set and that the URL fields are
// well-formed absolute URLs. It returns a *ConfigError naming the first
// offending field, so a build either starts with a fully valid config or
// not at all.
func (c SiteConfig) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return &ConfigError{Field: "site", Reason: err.Error()}
	}
	fe := errs[0]
	reason := "is required"
	switch fe.Tag() {
	case "url":
		reason = "must be a well-formed absolute URL"
	case "email":
		reason = "must be a well-formed email address"
	}
	return &ConfigError{Field: fe.Field(), Reason: reason}
}

// Option configures additional Site behavior.
type Option func(*Site)

// WithContentDir sets the directory scanned for markdown documents
// (default "content").
func WithContentDir(dir string) Option {
	return func(s *Site) {
		s.contentDir = dir
	}
}

// WithOutputDir sets the directory the build writes into (default "dist").
func WithOutputDir(dir string) Option {
	return func(s *Site) {
		s.outputDir = dir
	}
}

// WithStaticDir sets the directory of static assets copied into the output
// (default "static"). Hero images referenced by posts are resolved here.
func WithStaticDir(dir string) Option {
	return func(s *Site) {
		s.staticDir = dir
	}
}

// WithWorkers caps the number of documents parsed concurrently.
// Values below 1 fall back to the default.
func WithWorkers(n int) Option {
	return func(s *Site) {
		if n >= 1 {
			s.workers = n
		}
	}
}

// WithLogger sets the build logger (default zerolog.Nop()).
func WithLogger(l zerolog.Logger) Option {
	return func(s *Site) {
		s.log = l
	}
}

package inkgen

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("inkgen: post not found")

// SchemaError reports a document whose front matter violates the content
// schema: a required field is missing, has the wrong type, or fails a
// constraint. It always names the source file and the offending field.
type SchemaError struct {
	Path   string
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("inkgen: %s: front matter field %q: %s", e.Path, e.Field, e.Reason)
}

// DuplicateSlugError reports two documents whose filenames derive the same
// slug. Both paths are included so the author can rename either file.
type DuplicateSlugError struct {
	Slug      string
	Path      string
	OtherPath string
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("inkgen: duplicate slug %q: %s and %s", e.Slug, e.Path, e.OtherPath)
}

// ConfigError reports an invalid SiteConfig field. It is raised at startup,
// before any content loads.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("inkgen: config field %q: %s", e.Field, e.Reason)
}

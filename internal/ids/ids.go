// Package ids generates names for objects created without one.
package ids

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixFigure   = "figure"
	PrefixView     = "view"
	PrefixLayer    = "layer"
	PrefixPath     = "path"
	PrefixLine     = "line"
	PrefixGrid     = "grid"
	PrefixDirected = "directed"
	PrefixObject   = "obj"
)

// New returns a fresh type id string with the given prefix.
func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

// Validate checks that id is a type id with the expected prefix.
func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}

// Prefix returns the prefix of id, or "" when id is not a type id.
func Prefix(id string) string {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return ""
	}
	return parsed.Prefix()
}

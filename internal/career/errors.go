package career

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidProfile is returned when a profile field is absent or malformed.
	ErrInvalidProfile = errors.New("invalid profile")
	// ErrEmptyCatalog is returned when matching against a catalog without archetypes.
	ErrEmptyCatalog = errors.New("empty catalog")
	// ErrInconsistentCatalog is returned when the catalog and its feature matrix disagree in shape.
	ErrInconsistentCatalog = errors.New("inconsistent catalog")
)

// InvalidProfileError names the profile field that is absent or malformed.
type InvalidProfileError struct {
	Field string
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("%s: %s is required", ErrInvalidProfile, e.Field)
}

func (e *InvalidProfileError) Is(target error) bool { return target == ErrInvalidProfile }

// InvalidArchetypeError reports a seed archetype that cannot enter a catalog.
type InvalidArchetypeError struct {
	Index int
	Field string
}

func (e *InvalidArchetypeError) Error() string {
	return fmt.Sprintf("invalid archetype #%d: %s is required", e.Index, e.Field)
}

func (e *InvalidArchetypeError) Is(target error) bool { return target == ErrInvalidProfile }

// InconsistentCatalogError describes how a catalog and a feature matrix disagree.
//
// Row is -1 when the mismatch is about the row count rather than a single row.
type InconsistentCatalogError struct {
	Archetypes int
	Rows       int
	Row        int
	Width      int
	Want       int
}

func (e *InconsistentCatalogError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("%s: %d archetypes but %d matrix rows", ErrInconsistentCatalog, e.Archetypes, e.Rows)
	}
	return fmt.Sprintf("%s: row %d has %d columns, expected %d", ErrInconsistentCatalog, e.Row, e.Width, e.Want)
}

func (e *InconsistentCatalogError) Is(target error) bool { return target == ErrInconsistentCatalog }

package atlas

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned for non-positive rectangle sizes.
	ErrInvalidSize = errors.New("atlas: rectangle size must be positive")

	// ErrTooLarge is returned when a rectangle can never fit on an empty page.
	ErrTooLarge = errors.New("atlas: rectangle larger than page")
)

// FullError is returned when no page has room and no new page may be added.
type FullError struct {
	Pages         int
	Width, Height int
}

func (e *FullError) Error() string {
	return fmt.Sprintf("atlas: no room for %dx%d rectangle in %d page(s)", e.Width, e.Height, e.Pages)
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid config." + e.Field + ": " + e.Reason
}

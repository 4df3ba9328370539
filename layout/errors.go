package layout

import "errors"

var (
	// ErrNilFont is returned when Config.Font is nil.
	ErrNilFont = errors.New("layout: config has no font asset")
)

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "layout: invalid config." + e.Field + ": " + e.Reason
}

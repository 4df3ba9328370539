package atlas

// MaxDimension is the largest supported page width or height.
const MaxDimension = 16384

// Config holds atlas configuration.
type Config struct {
	// Width and Height of each page in pixels.
	// Default: 1024x1024
	Width, Height int

	// Padding is the empty border kept around every glyph on each side.
	// Default: 2
	Padding int

	// MaxPages limits the number of pages. A value of 1 disables growth.
	// Default: 1
	MaxPages int

	// Heuristic selects the packing rule for single allocations.
	// Default: BestShortSideFit
	Heuristic Heuristic
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Width:     1024,
		Height:    1024,
		Padding:   2,
		MaxPages:  1,
		Heuristic: BestShortSideFit,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Width < 1 {
		return &ConfigError{Field: "Width", Reason: "must be at least 1"}
	}
	if c.Width > MaxDimension {
		return &ConfigError{Field: "Width", Reason: "must be at most 16384"}
	}
	if c.Height < 1 {
		return &ConfigError{Field: "Height", Reason: "must be at least 1"}
	}
	if c.Height > MaxDimension {
		return &ConfigError{Field: "Height", Reason: "must be at most 16384"}
	}
	if c.Padding < 0 {
		return &ConfigError{Field: "Padding", Reason: "must be non-negative"}
	}
	if 2*c.Padding >= min(c.Width, c.Height) {
		return &ConfigError{Field: "Padding", Reason: "must be less than half the page size"}
	}
	if c.MaxPages < 1 {
		return &ConfigError{Field: "MaxPages", Reason: "must be at least 1"}
	}
	if c.MaxPages > 256 {
		return &ConfigError{Field: "MaxPages", Reason: "must be at most 256"}
	}
	if c.Heuristic > ContactPoint {
		return &ConfigError{Field: "Heuristic", Reason: "unknown heuristic"}
	}
	return nil
}

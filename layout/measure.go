package layout

import "context"

// Measure returns the preferred size of text: the width it takes on a
// single unbounded line per paragraph, and the height it takes when
// wrapped at cfg.Width (unbounded when zero). Auto-sizing is disabled and
// cfg.FontSize is used.
func Measure(ctx context.Context, text string, cfg Config) (Size, error) {
	cfg.AutoSize = false
	cfg.Overflow = OverflowVisible

	wide := cfg
	wide.Width, wide.Height = 0, 0
	wide.WordWrap = false
	w, err := Generate(ctx, text, wide)
	if err != nil {
		return Size{}, err
	}

	tall := cfg
	tall.Height = 0
	h, err := Generate(ctx, text, tall)
	if err != nil {
		return Size{}, err
	}
	return Size{Width: w.PreferredSize.Width, Height: h.PreferredSize.Height}, nil
}

package layout

import (
	"context"
	"math"

	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/markup"
)

// DefaultMaxPasses is the default cap on layout passes.
const DefaultMaxPasses = 20

// autoSizeStep is the granularity of auto-size font sizes.
const autoSizeStep = 0.05

// checkInterval is the number of elements laid out between context checks.
const checkInterval = 256

// RetryReason says why a layout pass asked for another pass.
type RetryReason uint8

const (
	RetryNone RetryReason = iota
	// RetryShrink reruns with a smaller auto-size font size.
	RetryShrink
	// RetryGrow reruns with a larger auto-size font size.
	RetryGrow
	// RetryEllipsis reruns with the ellipsis placed at a known index.
	RetryEllipsis
)

// String returns the reason name.
func (r RetryReason) String() string {
	switch r {
	case RetryNone:
		return "none"
	case RetryShrink:
		return "shrink"
	case RetryGrow:
		return "grow"
	case RetryEllipsis:
		return "ellipsis"
	default:
		return "unknown"
	}
}

// Generate lays out text with cfg.
//
// Malformed markup, missing glyphs and atlas exhaustion never fail a
// layout; errors are returned only for an invalid cfg or when ctx is done.
// Retries (auto-size steps, ellipsis regeneration) run as an explicit loop
// capped at cfg.MaxPasses; at the cap the best layout found is returned
// with RetryCapReached set.
func Generate(ctx context.Context, text string, cfg Config) (*TextInfo, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := newGenerator(&cfg, text)
	return g.run(ctx)
}

// generator holds what is shared by all passes of one Generate call.
type generator struct {
	cfg    *Config
	text   []rune
	source []int
	rules  *breakRules
	casing *markup.Casing
	rtl    bool
}

func newGenerator(cfg *Config, text string) *generator {
	if cfg.Ellipsis == 0 {
		cfg.Ellipsis = '\u2026'
	}
	if cfg.PageToDisplay == 0 {
		cfg.PageToDisplay = 1
	}
	in := []rune(text)
	exp := markup.Expand(in, markup.ExpandOptions{
		RichText: cfg.RichText,
		Escapes:  cfg.ParseEscapes,
		Styles:   cfg.StyleSheet,
	})
	g := &generator{
		cfg:    cfg,
		text:   exp.Text,
		source: exp.Source,
		rules:  newBreakRules(cfg.LeadingForbidden, cfg.FollowingForbidden),
		casing: markup.NewCasing(cfg.Language),
	}
	switch cfg.Direction {
	case DirectionRTL:
		g.rtl = true
	case DirectionAuto:
		g.rtl = firstStrongRTL(in)
	}
	return g
}

func (g *generator) run(ctx context.Context) (*TextInfo, error) {
	cfg := g.cfg
	size := cfg.FontSize
	lo, hi := size, size
	if cfg.AutoSize {
		lo, hi = cfg.FontSizeMin, cfg.FontSizeMax
		size = hi
	}

	ellipsisAt := -1
	var best, last *pass
	passes := 0
	capped := false
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		passes++
		// The last allowed pass must produce a complete layout: it runs at
		// the minimum size if nothing fit yet and never asks for a retry.
		final := passes >= cfg.MaxPasses
		if final && cfg.AutoSize && best == nil && size != lo {
			size = lo
			capped = true
		}
		p := g.newPass(size, ellipsisAt, cfg.AutoSize && size > lo && !final)
		p.final = final
		if err := p.run(ctx); err != nil {
			return nil, err
		}
		last = p

		reason := p.retry
		if cfg.AutoSize && reason != RetryEllipsis {
			if p.fits() {
				best = p
				lo = size
				if next := snapSize((size + hi) / 2); next > size && hi-size > autoSizeStep {
					reason, size = RetryGrow, next
				}
			} else if reason == RetryShrink {
				hi = size
				next := max(snapSize((lo+size)/2), lo)
				if next >= size {
					next = max(size-autoSizeStep, lo)
				}
				if best != nil && next <= best.size {
					reason = RetryNone
				} else {
					size = next
				}
			}
		}
		if reason == RetryEllipsis {
			ellipsisAt = p.ellipsisNext
		}
		if reason == RetryNone {
			break
		}
		if final {
			capped = true
			break
		}
		textmesh.Logger().Debug("layout: retrying pass", "pass", passes, "reason", reason.String(), "size", size)
	}
	if capped {
		textmesh.Logger().Warn("layout: retry cap reached", "passes", passes, "size", last.size)
	}

	result := last
	if best != nil && (last.retry != RetryNone || !last.fits()) {
		result = best
	}
	info := result.finalize()
	info.Passes = passes
	info.RetryCapReached = capped
	return info, nil
}

// snapSize rounds a font size down to the auto-size granularity.
func snapSize(v float64) float64 {
	return math.Floor(v/autoSizeStep+1e-9) * autoSizeStep
}

// firstStrongRTL reports whether the first strong character of text is
// right-to-left (rules P2 and P3 of the bidi algorithm).
func firstStrongRTL(text []rune) bool {
	for _, r := range text {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return false
		case bidi.R, bidi.AL:
			return true
		}
	}
	return false
}

package markup

import "fmt"

// StyleError reports an invalid style sheet declaration.
type StyleError struct {
	Pos    string
	Style  string
	Reason string
}

func (e *StyleError) Error() string {
	if e.Style != "" {
		return fmt.Sprintf("markup: style %q at %s: %s", e.Style, e.Pos, e.Reason)
	}
	return fmt.Sprintf("markup: style at %s: %s", e.Pos, e.Reason)
}

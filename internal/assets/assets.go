// Package assets holds the embedded default deck stylesheet.
package assets

import _ "embed"

//go:embed style.css
var defaultStyle string

// DefaultStyle returns the built-in style.css content, written next to the
// generated deck on request so a fresh checkout renders something readable.
func DefaultStyle() string {
	return defaultStyle
}

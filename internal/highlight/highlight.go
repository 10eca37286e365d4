// Package highlight wraps chroma to isolate the external dependency: one
// entry point for highlighting a code block and one for generating the
// stylesheet the highlighted markup links against.
package highlight

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultScheme is the color scheme used when none is configured.
const DefaultScheme = "friendly"

// preClass locates the class attribute of the opening <pre> tag so extra
// classes can be injected alongside chroma's own.
var preClass = regexp.MustCompile(`(<pre[^>]*class=")`)

// Highlighter renders code blocks through chroma using CSS classes, so the
// markup stays small and all color lives in the generated stylesheet.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// New creates a Highlighter for the named scheme. Unknown scheme names fall
// back to chroma's default style.
func New(scheme string) *Highlighter {
	style := styles.Get(scheme)
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{
		style:     style,
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
}

// Snippet highlights code for the given language tag and returns the
// resulting HTML with extraClasses injected into the <pre> tag. The second
// return value is false when no lexer matches the language, in which case
// the caller is expected to fall back to plain preformatted output.
func (h *Highlighter) Snippet(lang, code string, extraClasses ...string) (string, bool) {
	if lang == "" {
		return "", false
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", false
	}

	out := buf.String()
	if out == "" {
		return "", false
	}
	if len(extraClasses) > 0 {
		inject := "${1}" + strings.Join(extraClasses, " ") + " "
		out = preClass.ReplaceAllString(out, inject)
	}
	return out, true
}

// Stylesheet returns the CSS for the configured scheme, suitable for
// writing to syntax.css next to the generated deck.
func (h *Highlighter) Stylesheet() (string, error) {
	var buf bytes.Buffer
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", fmt.Errorf("generating highlight stylesheet: %w", err)
	}
	return buf.String(), nil
}

// Package hints provides actionable error hints for common failure
// scenarios. Hints are formatted consistently as "\n  hint: <text>" for
// appending to error messages.
package hints

import (
	"path/filepath"

	"github.com/alnah/go-md2slides/internal/fileutil"
)

// ForMissingSource returns a hint when the watched file does not exist yet.
func ForMissingSource(path string) string {
	return format("create " + path + " and the watcher will pick it up on the next tick")
}

// ForMissingStyle returns a hint when style.css is absent next to the
// output, which leaves the deck unstyled in the browser.
func ForMissingStyle(outputPath string) string {
	style := filepath.Join(filepath.Dir(outputPath), "style.css")
	if fileutil.FileExists(style) {
		return ""
	}
	return format("no " + style + " found; run with --init-style to write the default")
}

// ForUnsupportedConstruct returns a hint for render errors caused by
// markdown the deck flavor rejects.
func ForUnsupportedConstruct() string {
	return format("remove the unsupported construct; the deck updates on the next save")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// Package watch implements the poll loop that keeps the generated deck in
// sync with its markdown source. One iteration at a time, no shared state:
// the last successfully rendered content is passed into each tick and the
// updated value returned, so change detection is explicit.
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/alnah/go-md2slides/internal/fileutil"
)

// DefaultInterval is the poll period when none is configured.
const DefaultInterval = time.Second

// outputPerm is the permission for generated files.
const outputPerm = 0o644

// Deck abstracts the render pipeline the loop drives on every change.
type Deck interface {
	// Render produces the full slide-deck HTML for the given source.
	Render(markdown []byte) (string, error)
	// Stylesheet returns the highlighter's generated CSS.
	Stylesheet() (string, error)
}

// Watcher polls one source file and regenerates one output file.
type Watcher struct {
	Source         string        // markdown file to poll
	Output         string        // HTML file to overwrite on change
	StylesheetPath string        // syntax.css location, created once if absent
	Interval       time.Duration // poll period, DefaultInterval if zero
	Deck           Deck
	Logger         *log.Logger // nil means stderr with timestamps
	Verbose        bool
}

func (w *Watcher) logger() *log.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return log.Default()
}

// Run polls until ctx is done. Every error raised inside a tick is logged
// and swallowed; the loop itself never fails. Returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := ""
	for {
		next, err := w.Tick(last)
		if err != nil {
			w.logger().Printf("error: %v", err)
		} else {
			last = next
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Tick runs one iteration: ensure the stylesheet exists, read the source,
// and regenerate the output if the content changed since last. It returns
// the content that is now reflected in the output file. On error the
// returned content equals last, so the next tick retries the whole pass.
func (w *Watcher) Tick(last string) (string, error) {
	if err := w.ensureStylesheet(); err != nil {
		return last, err
	}

	raw, err := os.ReadFile(w.Source)
	if err != nil {
		return last, fmt.Errorf("reading %s: %w", w.Source, err)
	}
	content := string(raw)
	if content == last {
		if w.Verbose {
			w.logger().Printf("%s unchanged", w.Source)
		}
		return last, nil
	}

	deck, err := w.Deck.Render(raw)
	if err != nil {
		return last, fmt.Errorf("rendering %s: %w", w.Source, err)
	}
	if err := fileutil.WriteFileAtomic(w.Output, []byte(deck), outputPerm); err != nil {
		return last, fmt.Errorf("writing %s: %w", w.Output, err)
	}

	w.logger().Printf("updated %s", w.Output)
	return content, nil
}

// ensureStylesheet writes the highlight stylesheet once, only if absent.
func (w *Watcher) ensureStylesheet() error {
	if w.StylesheetPath == "" || fileutil.FileExists(w.StylesheetPath) {
		return nil
	}
	css, err := w.Deck.Stylesheet()
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(w.StylesheetPath, []byte(css), outputPerm); err != nil {
		return fmt.Errorf("writing %s: %w", w.StylesheetPath, err)
	}
	w.logger().Printf("created %s", w.StylesheetPath)
	return nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/assets"
	"github.com/alnah/go-md2slides/internal/config"
	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/hints"
	"github.com/alnah/go-md2slides/internal/watch"
)

// Compile-time interface implementation check: the library service must
// satisfy the watch loop's contract.
var _ watch.Deck = (*md2slides.Service)(nil)

// run wires flags, config, service, and watch loop together.
func run(ctx context.Context, args []string, stderr io.Writer) error {
	flags, positional, err := parseFlags(args)
	if err != nil {
		return err
	}

	if flags.version {
		fmt.Fprintf(stderr, "md2slides %s\n", Version)
		return nil
	}

	if len(positional) != 1 {
		return fmt.Errorf("%w: expected exactly one source file, got %d", ErrUsage, len(positional))
	}
	source := positional[0]

	cfg := config.DefaultConfig()
	if flags.config != "" {
		cfg, err = config.LoadConfig(flags.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	mergeFlags(flags, cfg)

	svc := newService(cfg)

	outDir := cfg.Output.Dir
	output := filepath.Join(outDir, fileutil.OutputName(source))
	syntaxName := cfg.Slides.SyntaxHref
	if syntaxName == "" {
		syntaxName = "syntax.css"
	}
	syntaxPath := filepath.Join(outDir, syntaxName)

	logger := log.New(stderr, "", log.LstdFlags)

	if flags.initStyle {
		if err := initStyle(outDir, logger); err != nil {
			return err
		}
	}

	if !flags.quiet {
		if !fileutil.FileExists(source) {
			logger.Printf("waiting for %s%s", source, hints.ForMissingSource(source))
		}
		if hint := hints.ForMissingStyle(output); hint != "" {
			logger.Printf("deck will be unstyled%s", hint)
		}
	}

	watcher := &watch.Watcher{
		Source:         source,
		Output:         output,
		StylesheetPath: syntaxPath,
		Interval:       cfg.Watch.Interval,
		Deck:           svc,
		Logger:         logger,
		Verbose:        flags.verbose,
	}

	if flags.once {
		if _, err := watcher.Tick(""); err != nil {
			return fmt.Errorf("%w%s", err, hints.ForUnsupportedConstruct())
		}
		return nil
	}
	return watcher.Run(ctx)
}

// mergeFlags applies CLI flags on top of the config (CLI wins).
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.interval > 0 {
		cfg.Watch.Interval = flags.interval
	}
	if flags.outDir != "" {
		cfg.Output.Dir = flags.outDir
	}
	if flags.scheme != "" {
		cfg.Slides.Scheme = flags.scheme
	}
	if flags.scriptURL != "" {
		cfg.Slides.ScriptURL = flags.scriptURL
	}
}

// newService builds the render service from the effective config. Empty
// fields fall through to the library defaults.
func newService(cfg *config.Config) *md2slides.Service {
	var opts []md2slides.Option
	if cfg.Slides.Scheme != "" {
		opts = append(opts, md2slides.WithScheme(cfg.Slides.Scheme))
	}
	if cfg.Slides.ScriptURL != "" {
		opts = append(opts, md2slides.WithScriptURL(cfg.Slides.ScriptURL))
	}
	if cfg.Slides.TemplateClass != "" {
		opts = append(opts, md2slides.WithTemplateClass(cfg.Slides.TemplateClass))
	}
	if cfg.Slides.SyntaxHref != "" || cfg.Slides.StyleHref != "" {
		syntax := cfg.Slides.SyntaxHref
		if syntax == "" {
			syntax = "syntax.css"
		}
		style := cfg.Slides.StyleHref
		if style == "" {
			style = "style.css"
		}
		opts = append(opts, md2slides.WithStylesheets(syntax, style))
	}
	return md2slides.NewService(opts...)
}

// initStyle writes the embedded default style.css, only if absent.
func initStyle(outDir string, logger *log.Logger) error {
	path := filepath.Join(outDir, "style.css")
	if fileutil.FileExists(path) {
		return nil
	}
	if err := fileutil.WriteFileAtomic(path, []byte(assets.DefaultStyle()), 0o644); err != nil {
		return fmt.Errorf("writing default style: %w", err)
	}
	logger.Printf("created %s", path)
	return nil
}

package main

import (
	"errors"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"
)

// ErrUsage indicates the command line itself is wrong (bad flags, wrong
// number of positional arguments).
var ErrUsage = errors.New("usage: md2slides [flags] <source.md>")

// cliFlags holds all command-line flags.
type cliFlags struct {
	interval  time.Duration
	outDir    string
	scheme    string
	scriptURL string
	config    string
	initStyle bool
	once      bool
	quiet     bool
	verbose   bool
	version   bool
}

// parseFlags parses os.Args-style arguments. The returned slice holds the
// positional arguments left after flag parsing.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("md2slides", flag.ContinueOnError)
	f := &cliFlags{}

	fs.DurationVar(&f.interval, "interval", 0, "poll interval (default 1s)")
	fs.StringVar(&f.outDir, "out", "", "output directory (default current directory)")
	fs.StringVar(&f.scheme, "scheme", "", "chroma color scheme for syntax.css")
	fs.StringVar(&f.scriptURL, "script", "", "slide framework script URL")
	fs.StringVar(&f.config, "config", "", "path to YAML config file")
	fs.BoolVar(&f.initStyle, "init-style", false, "write the default style.css next to the output if absent")
	fs.BoolVar(&f.once, "once", false, "render a single pass and exit instead of watching")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "suppress informational output")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log every poll tick")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: md2slides [flags] <source.md>")
		fmt.Fprintln(fs.Output(), "\nWatch a markdown file and regenerate its HTML5 slide deck on change.")
		fmt.Fprintln(fs.Output(), "\nFlags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return f, fs.Args(), nil
}

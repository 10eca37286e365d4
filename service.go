package md2slides

import (
	"fmt"
	"time"

	"github.com/alnah/go-md2slides/internal/highlight"
	"github.com/alnah/go-md2slides/internal/parse"
	"github.com/alnah/go-md2slides/internal/render"
)

// Service renders markdown sources into slide-deck HTML. It is stateless
// and safe for reuse across renders.
type Service struct {
	cfg         serviceConfig
	highlighter *highlight.Highlighter
	renderer    *render.Renderer
}

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	scheme        string
	scriptURL     string
	templateClass string
	syntaxHref    string
	styleHref     string
	now           func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithScheme sets the chroma color scheme used for highlighted code and
// the generated stylesheet.
func WithScheme(name string) Option {
	return func(s *Service) {
		s.cfg.scheme = name
	}
}

// WithScriptURL overrides the slide framework script reference.
func WithScriptURL(url string) Option {
	return func(s *Service) {
		s.cfg.scriptURL = url
	}
}

// WithTemplateClass overrides the class on the slides <section>.
func WithTemplateClass(class string) Option {
	return func(s *Service) {
		s.cfg.templateClass = class
	}
}

// WithStylesheets overrides the hrefs of the two stylesheet links in the
// generated head.
func WithStylesheets(syntaxHref, styleHref string) Option {
	return func(s *Service) {
		s.cfg.syntaxHref = syntaxHref
		s.cfg.styleHref = styleHref
	}
}

// WithClock sets the clock used to resolve "auto" dates in front matter.
// Panics if now is nil (programmer error, similar to time.NewTicker).
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("md2slides: WithClock requires a non-nil clock")
	}
	return func(s *Service) {
		s.cfg.now = now
	}
}

// NewService creates a Service with default configuration.
func NewService(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			scheme: highlight.DefaultScheme,
			now:    time.Now,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.highlighter = highlight.New(s.cfg.scheme)
	s.renderer = render.NewRenderer(render.Config{
		ScriptURL:     s.cfg.scriptURL,
		TemplateClass: s.cfg.templateClass,
		SyntaxHref:    s.cfg.syntaxHref,
		StyleHref:     s.cfg.styleHref,
		Highlighter:   s.highlighter,
	})
	return s
}

// Render runs the full pipeline: front matter, markdown parse, slide
// grouping, markup generation. The result is a complete HTML document.
func (s *Service) Render(markdown []byte) (string, error) {
	doc, err := parse.Document(markdown, parse.Options{Now: s.cfg.now})
	if err != nil {
		return "", fmt.Errorf("parsing markdown: %w", err)
	}
	deck, err := s.renderer.Deck(doc)
	if err != nil {
		return "", fmt.Errorf("rendering deck: %w", err)
	}
	return deck, nil
}

// Stylesheet returns the CSS for the configured highlight scheme, the
// content of the syntax.css the generated deck links against.
func (s *Service) Stylesheet() (string, error) {
	return s.highlighter.Stylesheet()
}

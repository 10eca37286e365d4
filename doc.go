// Package md2slides turns a markdown file into an HTML5 slide deck and
// keeps it up to date while the file is edited.
//
// # Quick Start
//
// Create a service and render markdown to a complete deck:
//
//	svc := md2slides.NewService()
//	deck, err := svc.Render([]byte("---\ntitle: Demo\n---\n# Intro\n\nhello"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("demo.html", []byte(deck), 0644)
//
// The deck references syntax.css (generated, see Service.Stylesheet), a
// style.css expected next to the output, and the remote slide framework
// script that reveals and paginates the deck in the browser.
//
// # Pipeline
//
//  1. Front matter (title, author, date) decoded from a leading YAML block
//  2. Markdown parsed by goldmark into a block/inline document tree
//  3. Blocks grouped into slides at every heading
//  4. Each slide rendered to an <article>, code highlighted via chroma
//
// Slide grouping starts a new slide at every heading; content before the
// first heading shares the first slide. The whole document is re-rendered
// on every change; there is no incremental mode.
//
// # Unsupported constructs
//
// Math, footnote references, non-HTML raw fragments, and inline code
// attributes other than the bare "url" class abort the render pass with an
// error. The watch loop logs the error and leaves the previous output in
// place until the source is fixed.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := md2slides.NewService(
//	    md2slides.WithScheme("monokai"),
//	    md2slides.WithScriptURL("https://example.com/slides.js"),
//	)
package md2slides

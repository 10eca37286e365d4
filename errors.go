package md2slides

import (
	"github.com/alnah/go-md2slides/internal/parse"
	"github.com/alnah/go-md2slides/internal/render"
)

// Sentinel errors surfaced by Render. All of them end the current render
// pass; callers decide whether to retry.
var (
	// ErrUnsupported marks markdown constructs the deck flavor rejects
	// (math, footnote references, non-HTML raw fragments).
	ErrUnsupported = render.ErrUnsupported

	// ErrBadHeaderLevel marks a heading level outside 1-6.
	ErrBadHeaderLevel = render.ErrBadHeaderLevel

	// ErrBadCodeAttr marks inline code whose attributes are not the bare
	// "url" class.
	ErrBadCodeAttr = render.ErrBadCodeAttr

	// ErrFrontMatter marks an undecodable YAML front-matter block.
	ErrFrontMatter = parse.ErrFrontMatter
)

package render

import "errors"

// Sentinel errors for rendering. Every one of these is fatal to the current
// render pass; the watch loop logs it and retries on the next change.
var (
	ErrUnsupported    = errors.New("unsupported markdown construct")
	ErrBadHeaderLevel = errors.New("header level out of range")
	ErrBadCodeAttr    = errors.New("unsupported inline code attributes")
)

package render

import "github.com/alnah/go-md2slides/internal/document"

// Sectionize splits a top-level block sequence into slide groups. The first
// group always starts at the first block; every subsequent Header, at any
// level, starts a new group and becomes its first element. Concatenating
// the groups in order reproduces the input exactly.
func Sectionize(blocks []document.Block) [][]document.Block {
	if len(blocks) == 0 {
		return nil
	}

	var groups [][]document.Block
	start := 0
	for i := 1; i < len(blocks); i++ {
		if _, ok := blocks[i].(document.Header); ok {
			groups = append(groups, blocks[start:i])
			start = i
		}
	}
	return append(groups, blocks[start:])
}

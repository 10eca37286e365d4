// Package document defines the block/inline tree a parsed slide source is
// reduced to before rendering. The tree is a closed set of variants: Block
// and Inline are sealed interfaces whose implementations live in this
// package only, so renderers can type-switch exhaustively.
package document

// Document is one fully parsed source file. It is rebuilt from scratch on
// every change and never mutated after construction.
type Document struct {
	Title   []Inline
	Authors [][]Inline
	Date    []Inline
	Blocks  []Block
}

// Attr carries the identifier, classes, and key/value pairs attached to a
// code node.
type Attr struct {
	ID      string
	Classes []string
	KeyVals [][2]string
}

// Block is a top-level or nested block element.
type Block interface {
	block()
}

type (
	// Plain is inline content with no wrapper element.
	Plain struct{ Inlines []Inline }

	// Para is a paragraph.
	Para struct{ Inlines []Inline }

	// CodeBlock is a fenced or indented code block. The first class in
	// Attr, if any, names the language.
	CodeBlock struct {
		Attr Attr
		Text string
	}

	// RawBlock is passed through to the output verbatim.
	RawBlock struct {
		Format string
		Text   string
	}

	// BlockQuote wraps nested blocks.
	BlockQuote struct{ Blocks []Block }

	// OrderedList holds one block sequence per item.
	OrderedList struct{ Items [][]Block }

	// BulletList holds one block sequence per item.
	BulletList struct{ Items [][]Block }

	// DefinitionList pairs terms with their definitions.
	DefinitionList struct{ Items []Definition }

	// Header is a heading with level 1 through 6.
	Header struct {
		Level   int
		Inlines []Inline
	}

	// HorizontalRule is a thematic break.
	HorizontalRule struct{}

	// Table carries a caption, per-column alignment and width metadata,
	// a header row, and body rows. Every cell is itself a block sequence.
	Table struct {
		Caption []Inline
		Aligns  []Alignment
		Widths  []float64
		Head    [][]Block
		Rows    [][][]Block
	}

	// Null produces no output.
	Null struct{}
)

// Definition is one term with its definition block sequences.
type Definition struct {
	Term        []Inline
	Definitions [][]Block
}

// Alignment is a table column alignment.
type Alignment int

// Column alignments.
const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (Plain) block()          {}
func (Para) block()           {}
func (CodeBlock) block()      {}
func (RawBlock) block()       {}
func (BlockQuote) block()     {}
func (OrderedList) block()    {}
func (BulletList) block()     {}
func (DefinitionList) block() {}
func (Header) block()         {}
func (HorizontalRule) block() {}
func (Table) block()          {}
func (Null) block()           {}

// QuoteKind distinguishes single from double quoted spans.
type QuoteKind int

// Quote kinds.
const (
	SingleQuote QuoteKind = iota
	DoubleQuote
)

// Inline is an element of running text.
type Inline interface {
	inline()
}

type (
	// Str is literal text.
	Str struct{ Text string }

	// Emph is emphasized content.
	Emph struct{ Inlines []Inline }

	// Strong is strongly emphasized content.
	Strong struct{ Inlines []Inline }

	// Strikeout is struck-through content.
	Strikeout struct{ Inlines []Inline }

	// Superscript content.
	Superscript struct{ Inlines []Inline }

	// Subscript content.
	Subscript struct{ Inlines []Inline }

	// SmallCaps content.
	SmallCaps struct{ Inlines []Inline }

	// Quoted wraps content in quote characters.
	Quoted struct {
		Kind    QuoteKind
		Inlines []Inline
	}

	// Cite is a citation span.
	Cite struct{ Inlines []Inline }

	// Code is an inline code span with attributes.
	Code struct {
		Attr Attr
		Text string
	}

	// Space is a single inter-word space.
	Space struct{}

	// LineBreak is an explicit line break.
	LineBreak struct{}

	// Math is a math expression.
	Math struct{ Text string }

	// RawInline is format-tagged passthrough text.
	RawInline struct {
		Format string
		Text   string
	}

	// Link is a hyperlink around inline content.
	Link struct {
		Inlines []Inline
		URL     string
		Title   string
	}

	// Image is an image reference; Alt is its alternative text content.
	Image struct {
		Alt   []Inline
		URL   string
		Title string
	}

	// NoteRef is a footnote or endnote reference.
	NoteRef struct{}
)

func (Str) inline()         {}
func (Emph) inline()        {}
func (Strong) inline()      {}
func (Strikeout) inline()   {}
func (Superscript) inline() {}
func (Subscript) inline()   {}
func (SmallCaps) inline()   {}
func (Quoted) inline()      {}
func (Cite) inline()        {}
func (Code) inline()        {}
func (Space) inline()       {}
func (LineBreak) inline()   {}
func (Math) inline()        {}
func (RawInline) inline()   {}
func (Link) inline()        {}
func (Image) inline()       {}
func (NoteRef) inline()     {}

// MapInlines applies f to every inline in the sequence, descending into the
// children of container inlines first. f receives each node after its
// children have been rewritten and returns the replacement node.
func MapInlines(inlines []Inline, f func(Inline) Inline) []Inline {
	if len(inlines) == 0 {
		return inlines
	}
	out := make([]Inline, len(inlines))
	for i, in := range inlines {
		switch t := in.(type) {
		case Emph:
			t.Inlines = MapInlines(t.Inlines, f)
			in = t
		case Strong:
			t.Inlines = MapInlines(t.Inlines, f)
			in = t
		case Strikeout:
			t.Inlines = MapInlines(t.Inlines, f)
			in = t
		case Superscript:
			t.Inlines = MapInlines(t.Inlines, f)
			in = t
		case Subscript:
			t.Inlines = MapInlines(t.Inlines, f)
			in = t
		case SmallCaps:
			t.Inlines = MapInlines(t.Inlines, f)
			in = t
		case Quoted:
			t.Inlines = MapInlines(t.Inlines, f)
			in = t
		case Cite:
			t.Inlines = MapInlines(t.Inlines, f)
			in = t
		case Link:
			t.Inlines = MapInlines(t.Inlines, f)
			in = t
		case Image:
			t.Alt = MapInlines(t.Alt, f)
			in = t
		}
		out[i] = f(in)
	}
	return out
}

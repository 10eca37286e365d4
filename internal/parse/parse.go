// Package parse turns raw markdown bytes into a document tree. Goldmark
// does the actual markdown parsing; this package owns the front matter,
// line-ending normalization, and the conversion of goldmark's AST into the
// document package's block/inline variants. Goldmark's own HTML renderer is
// never invoked.
package parse

import (
	"net/url"
	"regexp"
	"time"
	"unicode"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-md2slides/internal/document"
)

// crlfOrCR matches Windows and old-Mac line endings for normalization.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// Options configures parsing. Now supplies the clock for "auto" dates;
// nil means time.Now.
type Options struct {
	Now func() time.Time
}

// markdown is the shared goldmark instance. Only its parser is used.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,            // tables, strikethrough, autolinks, task lists
		extension.Footnote,       // [^1] references (rejected later, at render)
		extension.DefinitionList, // term / : definition pairs
	),
)

// Document parses src into a document tree. The returned document is fully
// detached from src and safe to keep after the caller reuses the buffer.
func Document(src []byte, opts Options) (*document.Document, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	src = crlfOrCR.ReplaceAll(src, []byte("\n"))

	rawMeta, body := splitFrontMatter(src)
	meta, err := decodeMetadata(rawMeta, now)
	if err != nil {
		return nil, err
	}

	doc := &document.Document{
		Title: words(meta.Title),
		Date:  words(meta.Date),
	}
	for _, name := range authorNames(meta.Author) {
		doc.Authors = append(doc.Authors, words(name))
	}

	root := markdown.Parser().Parse(text.NewReader(body))
	doc.Blocks = blocks(root, body)
	return doc, nil
}

// blocks converts the children of a goldmark block node.
func blocks(parent gast.Node, src []byte) []document.Block {
	var out []document.Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if b := block(n, src); b != nil {
			out = append(out, b)
		}
	}
	return out
}

// block converts one goldmark block node, or returns nil for nodes that
// have no document equivalent (footnote definitions and the like).
func block(n gast.Node, src []byte) document.Block {
	switch t := n.(type) {
	case *gast.Heading:
		return document.Header{Level: t.Level, Inlines: inlines(t, src)}
	case *gast.Paragraph:
		return document.Para{Inlines: inlines(t, src)}
	case *gast.TextBlock:
		return document.Plain{Inlines: inlines(t, src)}
	case *gast.FencedCodeBlock:
		attr := document.Attr{}
		if lang := t.Language(src); len(lang) > 0 {
			attr.Classes = []string{string(lang)}
		}
		return document.CodeBlock{Attr: attr, Text: lineText(t, src)}
	case *gast.CodeBlock:
		return document.CodeBlock{Text: lineText(t, src)}
	case *gast.Blockquote:
		return document.BlockQuote{Blocks: blocks(t, src)}
	case *gast.List:
		items := make([][]document.Block, 0, t.ChildCount())
		for li := t.FirstChild(); li != nil; li = li.NextSibling() {
			items = append(items, blocks(li, src))
		}
		if t.IsOrdered() {
			return document.OrderedList{Items: items}
		}
		return document.BulletList{Items: items}
	case *east.DefinitionList:
		return definitionList(t, src)
	case *gast.ThematicBreak:
		return document.HorizontalRule{}
	case *gast.HTMLBlock:
		raw := lineText(t, src)
		if t.HasClosure() {
			raw += string(t.ClosureLine.Value(src))
		}
		return document.RawBlock{Format: "html", Text: raw}
	case *east.Table:
		return table(t, src)
	case *east.Footnote, *east.FootnoteList:
		return nil
	default:
		return document.Null{}
	}
}

// definitionList pairs DefinitionTerm nodes with the descriptions that
// follow them.
func definitionList(n *east.DefinitionList, src []byte) document.Block {
	var items []document.Definition
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *east.DefinitionTerm:
			items = append(items, document.Definition{Term: inlines(t, src)})
		case *east.DefinitionDescription:
			if len(items) == 0 {
				items = append(items, document.Definition{})
			}
			last := &items[len(items)-1]
			last.Definitions = append(last.Definitions, blocks(t, src))
		}
	}
	return document.DefinitionList{Items: items}
}

// table converts a goldmark table. Goldmark tables have no caption; cell
// content becomes a single Plain block per cell.
func table(n *east.Table, src []byte) document.Block {
	out := document.Table{
		Aligns: make([]document.Alignment, len(n.Alignments)),
		Widths: make([]float64, len(n.Alignments)),
	}
	for i, a := range n.Alignments {
		out.Aligns[i] = alignment(a)
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *east.TableHeader:
			out.Head = tableCells(t, src)
		case *east.TableRow:
			out.Rows = append(out.Rows, tableCells(t, src))
		}
	}
	return out
}

func tableCells(row gast.Node, src []byte) [][]document.Block {
	var cells [][]document.Block
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		content := inlines(c, src)
		if len(content) == 0 {
			cells = append(cells, nil)
			continue
		}
		cells = append(cells, []document.Block{document.Plain{Inlines: content}})
	}
	return cells
}

func alignment(a east.Alignment) document.Alignment {
	switch a {
	case east.AlignLeft:
		return document.AlignLeft
	case east.AlignCenter:
		return document.AlignCenter
	case east.AlignRight:
		return document.AlignRight
	default:
		return document.AlignDefault
	}
}

// inlines converts the children of a goldmark node holding inline content.
func inlines(parent gast.Node, src []byte) []document.Inline {
	var out []document.Inline
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = append(out, inline(n, src)...)
	}
	return out
}

// inline converts one goldmark inline node into zero or more document
// inlines. Text runs split into word and space inlines.
func inline(n gast.Node, src []byte) []document.Inline {
	switch t := n.(type) {
	case *gast.Text:
		out := words(string(t.Segment.Value(src)))
		if t.HardLineBreak() {
			out = append(out, document.LineBreak{})
		} else if t.SoftLineBreak() {
			out = append(out, document.Space{})
		}
		return out
	case *gast.String:
		return words(string(t.Value))
	case *gast.Emphasis:
		content := inlines(t, src)
		if t.Level >= 2 {
			return []document.Inline{document.Strong{Inlines: content}}
		}
		return []document.Inline{document.Emph{Inlines: content}}
	case *east.Strikethrough:
		return []document.Inline{document.Strikeout{Inlines: inlines(t, src)}}
	case *gast.CodeSpan:
		return []document.Inline{codeSpan(t, src)}
	case *gast.Link:
		return []document.Inline{document.Link{
			Inlines: inlines(t, src),
			URL:     string(t.Destination),
			Title:   string(t.Title),
		}}
	case *gast.AutoLink:
		u := string(t.URL(src))
		return []document.Inline{document.Link{
			Inlines: []document.Inline{document.Str{Text: string(t.Label(src))}},
			URL:     u,
		}}
	case *gast.Image:
		return []document.Inline{document.Image{
			Alt:   inlines(t, src),
			URL:   string(t.Destination),
			Title: string(t.Title),
		}}
	case *gast.RawHTML:
		var raw []byte
		for i := 0; i < t.Segments.Len(); i++ {
			seg := t.Segments.At(i)
			raw = append(raw, seg.Value(src)...)
		}
		return []document.Inline{document.RawInline{Format: "html", Text: string(raw)}}
	case *east.FootnoteLink:
		return []document.Inline{document.NoteRef{}}
	case *east.FootnoteBacklink:
		return nil
	case *east.TaskCheckBox:
		box := "[ ]"
		if t.IsChecked {
			box = "[x]"
		}
		return []document.Inline{document.Str{Text: box}, document.Space{}}
	default:
		return nil
	}
}

// codeSpan converts an inline code span. A span whose text is an absolute
// http(s) URL is tagged with the "url" class, the one attribute combination
// the renderer accepts.
func codeSpan(n *gast.CodeSpan, src []byte) document.Inline {
	var buf []byte
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gast.Text); ok {
			buf = append(buf, t.Segment.Value(src)...)
		}
	}
	code := document.Code{Text: string(buf)}
	if isHTTPURL(code.Text) {
		code.Attr.Classes = []string{"url"}
	}
	return code
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// lineText joins a block node's line segments into one string.
func lineText(n gast.Node, src []byte) string {
	var buf []byte
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf = append(buf, seg.Value(src)...)
	}
	return string(buf)
}

// words splits a text run into Str and Space inlines. Every maximal run of
// whitespace collapses to a single Space.
func words(s string) []document.Inline {
	var out []document.Inline
	start := -1
	flush := func(end int) {
		if start >= 0 {
			out = append(out, document.Str{Text: s[start:end]})
			start = -1
		}
	}
	inSpace := false
	for i, r := range s {
		if unicode.IsSpace(r) {
			flush(i)
			if !inSpace {
				out = append(out, document.Space{})
				inSpace = true
			}
			continue
		}
		inSpace = false
		if start < 0 {
			start = i
		}
	}
	flush(len(s))
	return out
}

// Package render contains the slide-deck transform: Sectionize groups the
// top-level blocks into slides, and Renderer maps the document tree onto
// the deck's HTML flavor (hidden body, one <section> of <article> slides,
// chroma-highlighted code). This is the only place markup is produced.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/alnah/go-md2slides/internal/document"
	"github.com/alnah/go-md2slides/internal/highlight"
)

// Deck framework defaults. The script reveals the display:none body at
// runtime and drives slide navigation.
const (
	DefaultScriptURL     = "http://html5slides.googlecode.com/svn/trunk/slides.js"
	DefaultTemplateClass = "slides layout-regular template-default"
	DefaultSyntaxHref    = "syntax.css"
	DefaultStyleHref     = "style.css"
)

// noPrettyPrint suppresses the deck framework's own client-side
// highlighter, which would otherwise restyle chroma's output.
const noPrettyPrint = "noprettyprint"

// Config customizes deck output. Zero values select the defaults above.
type Config struct {
	ScriptURL     string
	TemplateClass string
	SyntaxHref    string
	StyleHref     string
	Highlighter   *highlight.Highlighter
}

// Renderer converts a document into one self-contained slide-deck HTML
// string. It is pure: the only collaborator is the highlighter, and every
// unsupported construct surfaces as an error instead of a panic.
type Renderer struct {
	cfg Config
}

// NewRenderer creates a Renderer, filling unset config fields with
// defaults.
func NewRenderer(cfg Config) *Renderer {
	if cfg.ScriptURL == "" {
		cfg.ScriptURL = DefaultScriptURL
	}
	if cfg.TemplateClass == "" {
		cfg.TemplateClass = DefaultTemplateClass
	}
	if cfg.SyntaxHref == "" {
		cfg.SyntaxHref = DefaultSyntaxHref
	}
	if cfg.StyleHref == "" {
		cfg.StyleHref = DefaultStyleHref
	}
	if cfg.Highlighter == nil {
		cfg.Highlighter = highlight.New(highlight.DefaultScheme)
	}
	return &Renderer{cfg: cfg}
}

// Deck renders the full slide-deck document: head, title slide, then one
// article per Sectionize group.
func (r *Renderer) Deck(doc *document.Document) (string, error) {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	// The <title> element must not contain line breaks; substitute a
	// space at every depth of the title's inline tree.
	flatTitle := document.MapInlines(doc.Title, func(in document.Inline) document.Inline {
		if _, ok := in.(document.LineBreak); ok {
			return document.Space{}
		}
		return in
	})
	if err := r.inlines(&b, flatTitle); err != nil {
		return "", err
	}
	b.WriteString("</title>\n")
	fmt.Fprintf(&b, "<link rel=\"stylesheet\" href=%q>\n", r.cfg.SyntaxHref)
	fmt.Fprintf(&b, "<link rel=\"stylesheet\" href=%q>\n", r.cfg.StyleHref)
	fmt.Fprintf(&b, "<script src=%q></script>\n", r.cfg.ScriptURL)
	b.WriteString("</head>\n<body style=\"display: none\">\n")
	fmt.Fprintf(&b, "<section class=%q>\n", r.cfg.TemplateClass)

	if err := r.titleSlide(&b, doc); err != nil {
		return "", err
	}

	for _, group := range Sectionize(doc.Blocks) {
		b.WriteString("<article>\n")
		if err := r.blocks(&b, group); err != nil {
			return "", err
		}
		b.WriteString("</article>\n")
	}

	b.WriteString("</section>\n</body>\n</html>\n")
	return b.String(), nil
}

// titleSlide writes the leading article: the title as an h1, then one
// paragraph with the authors separated by line breaks, the date last.
func (r *Renderer) titleSlide(b *strings.Builder, doc *document.Document) error {
	b.WriteString("<article>\n<h1>")
	if err := r.inlines(b, doc.Title); err != nil {
		return err
	}
	b.WriteString("</h1>\n<p>")
	for i, author := range doc.Authors {
		if i > 0 {
			b.WriteString("<br>")
		}
		if err := r.inlines(b, author); err != nil {
			return err
		}
	}
	if len(doc.Date) > 0 {
		if len(doc.Authors) > 0 {
			b.WriteString("<br>")
		}
		if err := r.inlines(b, doc.Date); err != nil {
			return err
		}
	}
	b.WriteString("</p>\n</article>\n")
	return nil
}

func (r *Renderer) blocks(b *strings.Builder, blocks []document.Block) error {
	for _, blk := range blocks {
		if err := r.block(b, blk); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) block(b *strings.Builder, blk document.Block) error {
	switch t := blk.(type) {
	case document.Plain:
		return r.inlines(b, t.Inlines)
	case document.Para:
		b.WriteString("<p>")
		if err := r.inlines(b, t.Inlines); err != nil {
			return err
		}
		b.WriteString("</p>\n")
		return nil
	case document.CodeBlock:
		return r.codeBlock(b, t)
	case document.RawBlock:
		b.WriteString(t.Text)
		return nil
	case document.BlockQuote:
		b.WriteString("<blockquote>\n")
		if err := r.blocks(b, t.Blocks); err != nil {
			return err
		}
		b.WriteString("</blockquote>\n")
		return nil
	case document.OrderedList:
		return r.list(b, "ol", t.Items)
	case document.BulletList:
		return r.list(b, "ul", t.Items)
	case document.DefinitionList:
		return r.definitionList(b, t)
	case document.Header:
		if t.Level < 1 || t.Level > 6 {
			return fmt.Errorf("%w: %d", ErrBadHeaderLevel, t.Level)
		}
		fmt.Fprintf(b, "<h%d>", t.Level)
		if err := r.inlines(b, t.Inlines); err != nil {
			return err
		}
		fmt.Fprintf(b, "</h%d>\n", t.Level)
		return nil
	case document.HorizontalRule:
		b.WriteString("<hr>\n")
		return nil
	case document.Table:
		return r.table(b, t)
	case document.Null:
		return nil
	default:
		return fmt.Errorf("%w: %T block", ErrUnsupported, blk)
	}
}

// codeBlock highlights through chroma, injecting noprettyprint alongside
// the block's own classes, and falls back to an escaped <pre> when no
// lexer matches.
func (r *Renderer) codeBlock(b *strings.Builder, t document.CodeBlock) error {
	lang := ""
	if len(t.Attr.Classes) > 0 {
		lang = t.Attr.Classes[0]
	}
	classes := append([]string{noPrettyPrint}, t.Attr.Classes...)
	if out, ok := r.cfg.Highlighter.Snippet(lang, t.Text, classes...); ok {
		b.WriteString(out)
		b.WriteString("\n")
		return nil
	}
	fmt.Fprintf(b, "<pre class=%q>%s</pre>\n",
		strings.Join(classes, " "), html.EscapeString(t.Text))
	return nil
}

func (r *Renderer) list(b *strings.Builder, tag string, items [][]document.Block) error {
	fmt.Fprintf(b, "<%s>\n", tag)
	for _, item := range items {
		b.WriteString("<li>")
		if err := r.blocks(b, item); err != nil {
			return err
		}
		b.WriteString("</li>\n")
	}
	fmt.Fprintf(b, "</%s>\n", tag)
	return nil
}

// definitionList writes each term followed by its definitions' blocks.
// NOTE: terms are emitted as <dd>, not <dt>, and without a <dl> wrapper;
// the deck stylesheet targets exactly this shape, so it stays.
func (r *Renderer) definitionList(b *strings.Builder, t document.DefinitionList) error {
	for _, item := range t.Items {
		b.WriteString("<dd>")
		if err := r.inlines(b, item.Term); err != nil {
			return err
		}
		b.WriteString("</dd>\n")
		for _, def := range item.Definitions {
			if err := r.blocks(b, def); err != nil {
				return err
			}
		}
	}
	return nil
}

// table writes the caption, one header row, then the body rows. Alignment
// and width metadata is carried by the document but not reflected in the
// markup; the deck stylesheet sizes columns itself.
func (r *Renderer) table(b *strings.Builder, t document.Table) error {
	b.WriteString("<table>\n")
	if len(t.Caption) > 0 {
		b.WriteString("<caption>")
		if err := r.inlines(b, t.Caption); err != nil {
			return err
		}
		b.WriteString("</caption>\n")
	}
	if len(t.Head) > 0 {
		if err := r.tableRow(b, t.Head); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		if err := r.tableRow(b, row); err != nil {
			return err
		}
	}
	b.WriteString("</table>\n")
	return nil
}

func (r *Renderer) tableRow(b *strings.Builder, cells [][]document.Block) error {
	b.WriteString("<tr>")
	for _, cell := range cells {
		b.WriteString("<td>")
		if err := r.blocks(b, cell); err != nil {
			return err
		}
		b.WriteString("</td>")
	}
	b.WriteString("</tr>\n")
	return nil
}

func (r *Renderer) inlines(b *strings.Builder, inlines []document.Inline) error {
	for _, in := range inlines {
		if err := r.inline(b, in); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) inline(b *strings.Builder, in document.Inline) error {
	switch t := in.(type) {
	case document.Str:
		b.WriteString(html.EscapeString(t.Text))
		return nil
	case document.Emph:
		return r.wrapped(b, "em", t.Inlines)
	case document.Strong:
		return r.wrapped(b, "strong", t.Inlines)
	case document.Strikeout:
		return r.wrapped(b, "s", t.Inlines)
	case document.Superscript:
		return r.wrapped(b, "sup", t.Inlines)
	case document.Subscript:
		return r.wrapped(b, "sub", t.Inlines)
	case document.SmallCaps:
		b.WriteString(`<span class="smallcaps">`)
		if err := r.inlines(b, t.Inlines); err != nil {
			return err
		}
		b.WriteString("</span>")
		return nil
	case document.Quoted:
		quote := `"`
		if t.Kind == document.SingleQuote {
			quote = "'"
		}
		b.WriteString(quote)
		if err := r.inlines(b, t.Inlines); err != nil {
			return err
		}
		b.WriteString(quote)
		return nil
	case document.Cite:
		return r.wrapped(b, "cite", t.Inlines)
	case document.Code:
		// The bare "url" class marks text that is already markup-safe
		// and must pass through untouched. Every other attribute
		// combination is unsupported.
		if isURLAttr(t.Attr) {
			b.WriteString(t.Text)
			return nil
		}
		return fmt.Errorf("%w: %s", ErrBadCodeAttr, describeAttr(t.Attr))
	case document.Space:
		b.WriteString("&nbsp;")
		return nil
	case document.LineBreak:
		b.WriteString("<br>")
		return nil
	case document.Math:
		return fmt.Errorf("%w: math", ErrUnsupported)
	case document.RawInline:
		if t.Format == "html" {
			b.WriteString(t.Text)
			return nil
		}
		return fmt.Errorf("%w: raw %q inline", ErrUnsupported, t.Format)
	case document.Link:
		fmt.Fprintf(b, `<a href="%s" title="%s">`,
			html.EscapeString(t.URL), html.EscapeString(t.Title))
		if err := r.inlines(b, t.Inlines); err != nil {
			return err
		}
		b.WriteString("</a>")
		return nil
	case document.Image:
		fmt.Fprintf(b, `<img class="centered" src="%s" alt="%s" title="%s">`,
			html.EscapeString(t.URL),
			html.EscapeString(plainText(t.Alt)),
			html.EscapeString(t.Title))
		return nil
	case document.NoteRef:
		return fmt.Errorf("%w: note reference", ErrUnsupported)
	default:
		return fmt.Errorf("%w: %T inline", ErrUnsupported, in)
	}
}

func (r *Renderer) wrapped(b *strings.Builder, tag string, inlines []document.Inline) error {
	fmt.Fprintf(b, "<%s>", tag)
	if err := r.inlines(b, inlines); err != nil {
		return err
	}
	fmt.Fprintf(b, "</%s>", tag)
	return nil
}

// isURLAttr reports whether the attributes are exactly the bare url class.
func isURLAttr(a document.Attr) bool {
	return a.ID == "" && len(a.Classes) == 1 && a.Classes[0] == "url" && len(a.KeyVals) == 0
}

func describeAttr(a document.Attr) string {
	if a.ID == "" && len(a.Classes) == 0 && len(a.KeyVals) == 0 {
		return "no attributes"
	}
	var parts []string
	if a.ID != "" {
		parts = append(parts, "#"+a.ID)
	}
	for _, c := range a.Classes {
		parts = append(parts, "."+c)
	}
	for _, kv := range a.KeyVals {
		parts = append(parts, kv[0]+"="+kv[1])
	}
	return strings.Join(parts, " ")
}

// plainText flattens inline content to unadorned text for attribute values.
func plainText(inlines []document.Inline) string {
	var b strings.Builder
	for _, in := range inlines {
		switch t := in.(type) {
		case document.Str:
			b.WriteString(t.Text)
		case document.Space, document.LineBreak:
			b.WriteString(" ")
		case document.Emph:
			b.WriteString(plainText(t.Inlines))
		case document.Strong:
			b.WriteString(plainText(t.Inlines))
		case document.Strikeout:
			b.WriteString(plainText(t.Inlines))
		case document.Superscript:
			b.WriteString(plainText(t.Inlines))
		case document.Subscript:
			b.WriteString(plainText(t.Inlines))
		case document.SmallCaps:
			b.WriteString(plainText(t.Inlines))
		case document.Quoted:
			b.WriteString(plainText(t.Inlines))
		case document.Cite:
			b.WriteString(plainText(t.Inlines))
		case document.Code:
			b.WriteString(t.Text)
		case document.Link:
			b.WriteString(plainText(t.Inlines))
		case document.Image:
			b.WriteString(plainText(t.Alt))
		}
	}
	return b.String()
}

package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2slides/internal/document"
)

func str(s string) document.Inline { return document.Str{Text: s} }

func renderBlock(t *testing.T, blk document.Block) (string, error) {
	t.Helper()
	var b strings.Builder
	err := NewRenderer(Config{}).block(&b, blk)
	return b.String(), err
}

func renderInline(t *testing.T, in document.Inline) (string, error) {
	t.Helper()
	var b strings.Builder
	err := NewRenderer(Config{}).inline(&b, in)
	return b.String(), err
}

func TestBlockRendering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		block    document.Block
		expected string
	}{
		{
			name:     "plain has no wrapper",
			block:    document.Plain{Inlines: []document.Inline{str("x")}},
			expected: "x",
		},
		{
			name:     "paragraph",
			block:    document.Para{Inlines: []document.Inline{str("x")}},
			expected: "<p>x</p>\n",
		},
		{
			name:     "raw block passes through unescaped",
			block:    document.RawBlock{Format: "html", Text: "<video src=a>"},
			expected: "<video src=a>",
		},
		{
			name: "block quote",
			block: document.BlockQuote{Blocks: []document.Block{
				document.Para{Inlines: []document.Inline{str("q")}},
			}},
			expected: "<blockquote>\n<p>q</p>\n</blockquote>\n",
		},
		{
			name: "ordered list",
			block: document.OrderedList{Items: [][]document.Block{
				{document.Plain{Inlines: []document.Inline{str("a")}}},
				{document.Plain{Inlines: []document.Inline{str("b")}}},
			}},
			expected: "<ol>\n<li>a</li>\n<li>b</li>\n</ol>\n",
		},
		{
			name: "bullet list",
			block: document.BulletList{Items: [][]document.Block{
				{document.Plain{Inlines: []document.Inline{str("a")}}},
			}},
			expected: "<ul>\n<li>a</li>\n</ul>\n",
		},
		{
			name: "definition list puts terms in dd",
			block: document.DefinitionList{Items: []document.Definition{{
				Term: []document.Inline{str("term")},
				Definitions: [][]document.Block{
					{document.Para{Inlines: []document.Inline{str("def")}}},
				},
			}}},
			expected: "<dd>term</dd>\n<p>def</p>\n",
		},
		{
			name:     "horizontal rule",
			block:    document.HorizontalRule{},
			expected: "<hr>\n",
		},
		{
			name:     "null renders nothing",
			block:    document.Null{},
			expected: "",
		},
		{
			name: "table with caption header and body",
			block: document.Table{
				Caption: []document.Inline{str("cap")},
				Head: [][]document.Block{
					{document.Plain{Inlines: []document.Inline{str("h1")}}},
					{document.Plain{Inlines: []document.Inline{str("h2")}}},
				},
				Rows: [][][]document.Block{{
					{document.Plain{Inlines: []document.Inline{str("a")}}},
					{document.Plain{Inlines: []document.Inline{str("b")}}},
				}},
			},
			expected: "<table>\n<caption>cap</caption>\n" +
				"<tr><td>h1</td><td>h2</td></tr>\n" +
				"<tr><td>a</td><td>b</td></tr>\n</table>\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := renderBlock(t, tt.block)
			if err != nil {
				t.Fatalf("block() error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("block() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestHeaderLevels(t *testing.T) {
	t.Parallel()

	for level := 1; level <= 6; level++ {
		got, err := renderBlock(t, document.Header{Level: level, Inlines: []document.Inline{str("x")}})
		if err != nil {
			t.Fatalf("level %d: unexpected error: %v", level, err)
		}
		want := strings.ReplaceAll("<hN>x</hN>\n", "N", string(rune('0'+level)))
		if got != want {
			t.Errorf("level %d = %q, want %q", level, got, want)
		}
	}

	for _, level := range []int{0, 7, -1} {
		_, err := renderBlock(t, document.Header{Level: level})
		if !errors.Is(err, ErrBadHeaderLevel) {
			t.Errorf("level %d: error = %v, want ErrBadHeaderLevel", level, err)
		}
	}
}

func TestCodeBlockHighlighting(t *testing.T) {
	t.Parallel()

	t.Run("python goes through chroma with noprettyprint injected", func(t *testing.T) {
		t.Parallel()

		got, err := renderBlock(t, document.CodeBlock{
			Attr: document.Attr{Classes: []string{"python"}},
			Text: "print('hi')\n",
		})
		if err != nil {
			t.Fatalf("block() error: %v", err)
		}
		if !strings.Contains(got, "<pre") {
			t.Fatalf("output has no <pre>: %q", got)
		}
		preTag := got[strings.Index(got, "<pre"):strings.Index(got, ">")+1]
		if !strings.Contains(preTag, "noprettyprint") {
			t.Errorf("pre tag missing noprettyprint class: %q", preTag)
		}
		if !strings.Contains(preTag, "python") {
			t.Errorf("pre tag lost the original language class: %q", preTag)
		}
	})

	t.Run("unknown language falls back to escaped pre", func(t *testing.T) {
		t.Parallel()

		got, err := renderBlock(t, document.CodeBlock{
			Attr: document.Attr{Classes: []string{"no-such-language-xyz"}},
			Text: "<&>",
		})
		if err != nil {
			t.Fatalf("block() error: %v", err)
		}
		if !strings.Contains(got, "&lt;&amp;&gt;") {
			t.Errorf("fallback output not escaped: %q", got)
		}
		if !strings.Contains(got, "noprettyprint") {
			t.Errorf("fallback output missing noprettyprint: %q", got)
		}
	})

	t.Run("no language falls back", func(t *testing.T) {
		t.Parallel()

		got, err := renderBlock(t, document.CodeBlock{Text: "x"})
		if err != nil {
			t.Fatalf("block() error: %v", err)
		}
		if !strings.HasPrefix(got, "<pre") {
			t.Errorf("expected plain pre fallback, got %q", got)
		}
	})
}

func TestInlineRendering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		inline   document.Inline
		expected string
	}{
		{
			name:     "text is escaped",
			inline:   str("a < b & c"),
			expected: "a &lt; b &amp; c",
		},
		{
			name:     "emphasis",
			inline:   document.Emph{Inlines: []document.Inline{str("x")}},
			expected: "<em>x</em>",
		},
		{
			name:     "strong",
			inline:   document.Strong{Inlines: []document.Inline{str("x")}},
			expected: "<strong>x</strong>",
		},
		{
			name:     "strikeout",
			inline:   document.Strikeout{Inlines: []document.Inline{str("x")}},
			expected: "<s>x</s>",
		},
		{
			name:     "superscript",
			inline:   document.Superscript{Inlines: []document.Inline{str("x")}},
			expected: "<sup>x</sup>",
		},
		{
			name:     "subscript",
			inline:   document.Subscript{Inlines: []document.Inline{str("x")}},
			expected: "<sub>x</sub>",
		},
		{
			name:     "small caps",
			inline:   document.SmallCaps{Inlines: []document.Inline{str("x")}},
			expected: `<span class="smallcaps">x</span>`,
		},
		{
			name:     "single quoted",
			inline:   document.Quoted{Kind: document.SingleQuote, Inlines: []document.Inline{str("x")}},
			expected: "'x'",
		},
		{
			name:     "double quoted",
			inline:   document.Quoted{Kind: document.DoubleQuote, Inlines: []document.Inline{str("x")}},
			expected: `"x"`,
		},
		{
			name:     "citation",
			inline:   document.Cite{Inlines: []document.Inline{str("x")}},
			expected: "<cite>x</cite>",
		},
		{
			name:     "space",
			inline:   document.Space{},
			expected: "&nbsp;",
		},
		{
			name:     "line break",
			inline:   document.LineBreak{},
			expected: "<br>",
		},
		{
			name:     "raw html inline",
			inline:   document.RawInline{Format: "html", Text: "<b>"},
			expected: "<b>",
		},
		{
			name:     "link",
			inline:   document.Link{Inlines: []document.Inline{str("x")}, URL: "http://e.com", Title: "t"},
			expected: `<a href="http://e.com" title="t">x</a>`,
		},
		{
			name:   "image with empty title keeps the attribute",
			inline: document.Image{Alt: []document.Inline{str("alt")}, URL: "p.png"},
			expected: `<img class="centered" src="p.png" alt="alt" title="">`,
		},
		{
			name:     "url code passes through unescaped",
			inline:   document.Code{Attr: document.Attr{Classes: []string{"url"}}, Text: "http://e.com/<a>"},
			expected: "http://e.com/<a>",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := renderInline(t, tt.inline)
			if err != nil {
				t.Fatalf("inline() error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("inline() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestInlineFatalCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		inline   document.Inline
		expected error
	}{
		{
			name:     "math",
			inline:   document.Math{Text: "x^2"},
			expected: ErrUnsupported,
		},
		{
			name:     "note reference",
			inline:   document.NoteRef{},
			expected: ErrUnsupported,
		},
		{
			name:     "raw inline with non-html format",
			inline:   document.RawInline{Format: "latex", Text: `\em`},
			expected: ErrUnsupported,
		},
		{
			name:     "code with no attributes",
			inline:   document.Code{Text: "x"},
			expected: ErrBadCodeAttr,
		},
		{
			name:     "code with extra class",
			inline:   document.Code{Attr: document.Attr{Classes: []string{"url", "x"}}, Text: "x"},
			expected: ErrBadCodeAttr,
		},
		{
			name:     "code with id and url class",
			inline:   document.Code{Attr: document.Attr{ID: "i", Classes: []string{"url"}}, Text: "x"},
			expected: ErrBadCodeAttr,
		},
		{
			name: "code with key values",
			inline: document.Code{
				Attr: document.Attr{Classes: []string{"url"}, KeyVals: [][2]string{{"k", "v"}}},
				Text: "x",
			},
			expected: ErrBadCodeAttr,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := renderInline(t, tt.inline)
			if !errors.Is(err, tt.expected) {
				t.Errorf("inline() error = %v, want %v", err, tt.expected)
			}
		})
	}
}

func TestDeckRoundTrip(t *testing.T) {
	t.Parallel()

	doc := &document.Document{
		Title: []document.Inline{str("Demo")},
		Authors: [][]document.Inline{
			{str("A."), document.Space{}, str("Author")},
		},
		Date: []document.Inline{str("2024-01-01")},
		Blocks: []document.Block{
			header(1, "Intro"),
			para("hello"),
			header(1, "Details"),
			para("world"),
		},
	}

	got, err := NewRenderer(Config{}).Deck(doc)
	if err != nil {
		t.Fatalf("Deck() error: %v", err)
	}

	if !strings.Contains(got, "<title>Demo</title>") {
		t.Errorf("missing head title: %q", got)
	}
	if n := strings.Count(got, "<article>"); n != 3 {
		t.Errorf("article count = %d, want 3 (title slide + two groups)", n)
	}
	wantTitleSlide := "<article>\n<h1>Demo</h1>\n<p>A.&nbsp;Author<br>2024-01-01</p>\n</article>\n"
	if !strings.Contains(got, wantTitleSlide) {
		t.Errorf("title slide missing or malformed:\n%s", got)
	}
	first := strings.Index(got, "<h1>Intro</h1>")
	second := strings.Index(got, "<h1>Details</h1>")
	if first < 0 || second < 0 || second < first {
		t.Fatalf("slide headers missing or out of order:\n%s", got)
	}
	if !strings.Contains(got[first:second], "<p>hello</p>") {
		t.Errorf("first slide missing its paragraph")
	}
	if !strings.Contains(got[second:], "<p>world</p>") {
		t.Errorf("second slide missing its paragraph")
	}
	if !strings.Contains(got, `<body style="display: none">`) {
		t.Errorf("body is not hidden by default")
	}
	if !strings.Contains(got, `<section class="slides layout-regular template-default">`) {
		t.Errorf("missing fixed template class section")
	}
}

func TestDeckHead(t *testing.T) {
	t.Parallel()

	doc := &document.Document{
		Title: []document.Inline{str("a"), document.LineBreak{}, str("b")},
	}

	got, err := NewRenderer(Config{}).Deck(doc)
	if err != nil {
		t.Fatalf("Deck() error: %v", err)
	}

	head := got[:strings.Index(got, "</head>")]
	if !strings.Contains(head, "<title>a&nbsp;b</title>") {
		t.Errorf("title line break not replaced by a space: %q", head)
	}
	if strings.Contains(head, "<br>") {
		t.Errorf("head title contains a line break element: %q", head)
	}
	if !strings.Contains(head, `href="syntax.css"`) || !strings.Contains(head, `href="style.css"`) {
		t.Errorf("stylesheet links missing: %q", head)
	}
	if !strings.Contains(head, `<script src="`+DefaultScriptURL+`"></script>`) {
		t.Errorf("slide framework script missing: %q", head)
	}

	// Body title keeps the line break.
	if !strings.Contains(got, "<h1>a<br>b</h1>") {
		t.Errorf("body title should keep its line break:\n%s", got)
	}
}

func TestDeckIsDeterministic(t *testing.T) {
	t.Parallel()

	doc := &document.Document{
		Title: []document.Inline{str("t")},
		Blocks: []document.Block{
			header(1, "h"),
			para("p"),
			document.CodeBlock{Attr: document.Attr{Classes: []string{"go"}}, Text: "package main\n"},
		},
	}

	r := NewRenderer(Config{})
	first, err := r.Deck(doc)
	if err != nil {
		t.Fatalf("Deck() error: %v", err)
	}
	second, err := r.Deck(doc)
	if err != nil {
		t.Fatalf("Deck() second error: %v", err)
	}
	if first != second {
		t.Errorf("Deck() is not deterministic")
	}
}

func TestDeckFatalErrorPropagates(t *testing.T) {
	t.Parallel()

	doc := &document.Document{
		Title:  []document.Inline{str("t")},
		Blocks: []document.Block{document.Para{Inlines: []document.Inline{document.Math{Text: "x"}}}},
	}

	_, err := NewRenderer(Config{}).Deck(doc)
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("Deck() error = %v, want ErrUnsupported", err)
	}
}

// Package markdown parses markdown with goldmark and converts the result
// into the renderer's document tree.
package markdown

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/arthur-debert/mdxaml/pkg/ast"
	"github.com/arthur-debert/mdxaml/pkg/errors"
	"github.com/arthur-debert/mdxaml/pkg/registry"
)

// RawMode selects what happens to HTML embedded in the markdown
type RawMode string

const (
	// RawPassthrough hands the fragment to the raw markup handler
	RawPassthrough RawMode = "passthrough"
	// RawText strips the tags and keeps the text
	RawText RawMode = "text"
	// RawSkip drops embedded HTML
	RawSkip RawMode = "skip"
)

// ParseRawMode validates a raw mode name
func ParseRawMode(s string) (RawMode, error) {
	switch m := RawMode(strings.ToLower(strings.TrimSpace(s))); m {
	case RawPassthrough, RawText, RawSkip:
		return m, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown raw markup mode %q", s).
		WithDetail("allowed", []string{string(RawPassthrough), string(RawText), string(RawSkip)})
}

var extensions = registry.New[goldmark.Extender]()

func init() {
	registry.MustRegister[goldmark.Extender](extensions, "table", extension.Table)
	registry.MustRegister[goldmark.Extender](extensions, "strikethrough", extension.Strikethrough)
	registry.MustRegister[goldmark.Extender](extensions, "tasklist", extension.TaskList)
	registry.MustRegister[goldmark.Extender](extensions, "linkify", extension.Linkify)
}

// Extensions lists the goldmark extensions that can be enabled by name
func Extensions() []string { return extensions.List() }

// Options configure the parser
type Options struct {
	Extensions []string
	Raw        RawMode

	// Logger receives parser diagnostics. The zero value discards them.
	Logger zerolog.Logger
}

// DefaultOptions enables every GFM extension and keeps the text of HTML
func DefaultOptions() Options {
	return Options{Extensions: Extensions(), Raw: RawText, Logger: zerolog.Nop()}
}

// Parser converts markdown source into an ast.Document
type Parser struct {
	md  goldmark.Markdown
	raw RawMode
	log zerolog.Logger
}

// New builds a parser. Unknown extension names are rejected.
func New(opts Options) (*Parser, error) {
	var exts []goldmark.Extender
	for _, name := range opts.Extensions {
		ext, err := extensions.Get(name)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "unknown markdown extension %q", name)
		}
		exts = append(exts, ext)
	}
	raw := opts.Raw
	if raw == "" {
		raw = RawText
	}
	if _, err := ParseRawMode(string(raw)); err != nil {
		return nil, err
	}
	return &Parser{
		md:  goldmark.New(goldmark.WithExtensions(exts...)),
		raw: raw,
		log: opts.Logger,
	}, nil
}

// Parse reads src and returns its document tree
func (p *Parser) Parse(src []byte) (*ast.Document, error) {
	root := p.md.Parser().Parse(text.NewReader(src))
	if root == nil {
		return nil, errors.New(errors.ErrParse, "markdown parser returned no document")
	}
	c := &converter{src: src, raw: p.raw, log: p.log}
	doc := &ast.Document{Blocks: c.blocks(root)}
	p.log.Debug().Int("bytes", len(src)).Int("blocks", len(doc.Blocks)).Msg("parsed markdown")
	return doc, nil
}

// Parse parses src with the default options
func Parse(src []byte) (*ast.Document, error) {
	p, err := New(DefaultOptions())
	if err != nil {
		return nil, err
	}
	return p.Parse(src)
}

type converter struct {
	src []byte
	raw RawMode
	log zerolog.Logger
}

func (c *converter) blocks(parent gast.Node) []ast.Node {
	var out []ast.Node
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if b := c.block(n); b != nil {
			out = append(out, b)
		}
	}
	return out
}

func (c *converter) block(n gast.Node) ast.Node {
	switch v := n.(type) {
	case *gast.Heading:
		return &ast.Heading{Level: v.Level, Inlines: c.inlines(v)}
	case *gast.Paragraph, *gast.TextBlock:
		return &ast.Paragraph{Inlines: c.inlines(v)}
	case *gast.FencedCodeBlock:
		return &ast.CodeBlock{Info: string(v.Language(c.src)), Lines: c.lines(v.Lines())}
	case *gast.CodeBlock:
		return &ast.CodeBlock{Lines: c.lines(v.Lines())}
	case *gast.Blockquote:
		return &ast.QuoteBlock{Blocks: c.blocks(v)}
	case *gast.List:
		return c.list(v)
	case *gast.ThematicBreak:
		return &ast.ThematicBreak{}
	case *gast.HTMLBlock:
		html := strings.Join(c.lines(v.Lines()), "\n")
		if v.HasClosure() {
			html += "\n" + strings.TrimRight(string(v.ClosureLine.Value(c.src)), "\r\n")
		}
		return c.rawBlock(html)
	case *extast.Table:
		return c.table(v)
	}
	c.log.Debug().Str("kind", n.Kind().String()).Msg("unsupported block, skipping")
	return nil
}

func (c *converter) lines(segs *text.Segments) []string {
	out := make([]string, 0, segs.Len())
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		out = append(out, strings.TrimRight(string(seg.Value(c.src)), "\r\n"))
	}
	return out
}

func (c *converter) list(l *gast.List) *ast.List {
	out := &ast.List{Ordered: l.IsOrdered(), Tight: l.IsTight}
	if out.Ordered {
		out.Marker = '1'
		out.Start = l.Start
		out.HasStart = true
	} else {
		out.Marker = rune(l.Marker)
	}
	for n := l.FirstChild(); n != nil; n = n.NextSibling() {
		if item, ok := n.(*gast.ListItem); ok {
			out.Items = append(out.Items, &ast.ListItem{Blocks: c.blocks(item)})
		}
	}
	return out
}

var alignments = map[extast.Alignment]ast.Alignment{
	extast.AlignLeft:   ast.AlignLeft,
	extast.AlignCenter: ast.AlignCenter,
	extast.AlignRight:  ast.AlignRight,
}

func (c *converter) table(t *extast.Table) *ast.Table {
	out := &ast.Table{}
	for _, a := range t.Alignments {
		out.Columns = append(out.Columns, &ast.TableColumn{Alignment: alignments[a]})
	}
	for n := t.FirstChild(); n != nil; n = n.NextSibling() {
		switch n.(type) {
		case *extast.TableHeader:
			out.Rows = append(out.Rows, c.tableRow(n, true))
		case *extast.TableRow:
			out.Rows = append(out.Rows, c.tableRow(n, false))
		}
	}
	return out
}

// tableRow converts a header or body row. Header cells are direct
// children of the header node.
func (c *converter) tableRow(row gast.Node, header bool) *ast.TableRow {
	out := &ast.TableRow{Header: header}
	i := 0
	for n := row.FirstChild(); n != nil; n = n.NextSibling() {
		cell, ok := n.(*extast.TableCell)
		if !ok {
			continue
		}
		tc := &ast.TableCell{ColumnIndex: i}
		if inl := c.inlines(cell); len(inl) > 0 {
			tc.Blocks = []ast.Node{&ast.Paragraph{Inlines: inl}}
		}
		out.Cells = append(out.Cells, tc)
		i++
	}
	return out
}

func (c *converter) inlines(parent gast.Node) []ast.Node {
	var out []ast.Node
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = c.inline(n, out)
	}
	return out
}

func (c *converter) inline(n gast.Node, out []ast.Node) []ast.Node {
	switch v := n.(type) {
	case *gast.Text:
		value := v.Segment.Value(c.src)
		if !v.IsRaw() {
			value = resolveText(value)
		}
		out = append(out, &ast.Literal{Text: string(value)})
		switch {
		case v.HardLineBreak():
			out = append(out, &ast.LineBreak{Hard: true})
		case v.SoftLineBreak():
			out = append(out, &ast.LineBreak{})
		}
	case *gast.String:
		value := v.Value
		if !v.IsRaw() && !v.IsCode() {
			value = resolveText(value)
		}
		out = append(out, &ast.Literal{Text: string(value)})
	case *gast.Emphasis:
		out = append(out, &ast.Emphasis{Delimiter: '*', Double: v.Level >= 2, Inlines: c.inlines(v)})
	case *extast.Strikethrough:
		out = append(out, &ast.Emphasis{Delimiter: '~', Double: true, Inlines: c.inlines(v)})
	case *gast.CodeSpan:
		out = append(out, &ast.CodeSpan{Text: c.codeSpan(v)})
	case *gast.Link:
		out = append(out, &ast.Link{URL: string(v.Destination), Title: string(resolveText(v.Title)), Inlines: c.inlines(v)})
	case *gast.Image:
		out = append(out, &ast.Link{Image: true, URL: string(v.Destination), Title: string(resolveText(v.Title)), Inlines: c.inlines(v)})
	case *gast.AutoLink:
		out = append(out, &ast.Autolink{URL: string(v.URL(c.src)), Email: v.AutoLinkType == gast.AutoLinkEmail})
	case *extast.TaskCheckBox:
		out = append(out, &ast.TaskItem{Checked: v.IsChecked})
	case *gast.RawHTML:
		var b strings.Builder
		for i := 0; i < v.Segments.Len(); i++ {
			seg := v.Segments.At(i)
			b.Write(seg.Value(c.src))
		}
		if raw := c.rawInline(b.String()); raw != nil {
			out = append(out, raw)
		}
	default:
		c.log.Debug().Str("kind", n.Kind().String()).Msg("unsupported inline, keeping its children")
		out = append(out, c.inlines(n)...)
	}
	return out
}

// resolveText drops backslash escapes and resolves entity and numeric
// character references. An escaped character is never part of a reference.
func resolveText(b []byte) []byte {
	var out []byte
	start := 0
	for i := 0; i < len(b)-1; i++ {
		if b[i] != '\\' || !util.IsPunct(b[i+1]) {
			continue
		}
		out = append(out, references(b[start:i])...)
		out = append(out, b[i+1])
		i++
		start = i + 1
	}
	return append(out, references(b[start:])...)
}

func references(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return util.ResolveEntityNames(util.ResolveNumericReferences(b))
}

// codeSpan joins the text of a code span; line endings become spaces
func (c *converter) codeSpan(n *gast.CodeSpan) string {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch t := child.(type) {
		case *gast.Text:
			b.Write(t.Segment.Value(c.src))
		case *gast.String:
			b.Write(t.Value)
		}
	}
	return strings.NewReplacer("\r\n", " ", "\n", " ").Replace(b.String())
}

func (c *converter) rawInline(html string) ast.Node {
	switch c.raw {
	case RawPassthrough:
		return &ast.RawMarkup{Fragment: html}
	case RawText:
		if s := htmlText(html); s != "" {
			return &ast.Literal{Text: s}
		}
	}
	return nil
}

func (c *converter) rawBlock(html string) ast.Node {
	switch c.raw {
	case RawPassthrough:
		return &ast.RawMarkup{Fragment: html}
	case RawText:
		if s := strings.TrimSpace(htmlText(html)); s != "" {
			return &ast.Paragraph{Inlines: []ast.Node{&ast.Literal{Text: s}}}
		}
	}
	return nil
}

// htmlText returns the text content of an HTML fragment
func htmlText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return doc.Text()
}

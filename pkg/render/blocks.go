package render

import (
	"github.com/arthur-debert/mdxaml/pkg/ast"
	"github.com/arthur-debert/mdxaml/pkg/styles"
	"github.com/arthur-debert/mdxaml/pkg/xaml"
)

func registerBuiltins(d *Dispatcher) {
	for k, h := range map[ast.Kind]Handler{
		ast.KindDocument:      renderDocument,
		ast.KindHeading:       renderHeading,
		ast.KindParagraph:     renderParagraph,
		ast.KindCodeBlock:     renderCodeBlock,
		ast.KindQuoteBlock:    renderQuoteBlock,
		ast.KindThematicBreak: renderThematicBreak,
		ast.KindList:          renderList,
		ast.KindListItem:      renderListItem,
		ast.KindTable:         renderTable,

		ast.KindLiteral:   renderLiteral,
		ast.KindEmphasis:  renderEmphasis,
		ast.KindCodeSpan:  renderCodeSpan,
		ast.KindLink:      renderLink,
		ast.KindAutolink:  renderAutolink,
		ast.KindLineBreak: renderLineBreak,
		ast.KindRawMarkup: renderRawMarkup,
		ast.KindTaskItem:  renderTaskItem,
	} {
		// built-in kinds are never abstract
		_ = d.Set(k, h)
	}
}

// styledContainer opens typeName, optionally styled, and declares its
// collection. Both are released by the returned func in LIFO order.
func (r *Renderer) styledContainer(typeName string, key styles.Key, collection string) (func(*error), error) {
	w := r.w
	obj, err := w.BeginObject(typeName)
	if err != nil {
		return nil, err
	}
	if key != "" {
		if err := w.WriteStyleReference("", key); err != nil {
			obj.End(nil)
			return nil, err
		}
	}
	coll, err := w.BeginCollection(collection)
	if err != nil {
		obj.End(nil)
		return nil, err
	}
	return func(errp *error) {
		coll.End(errp)
		obj.End(errp)
	}, nil
}

func renderDocument(r *Renderer, n ast.Node) (err error) {
	doc, ok := ast.As[*ast.Document](n)
	if !ok {
		return mismatch(n, "document")
	}
	if r.opts.Fragment {
		return r.WriteAll(doc.Blocks)
	}

	w := r.w
	if err := w.Namespace(xaml.LanguagePrefix, xaml.LanguageNamespace); err != nil {
		return err
	}
	if err := w.Namespace(r.opts.Styles.Prefix, r.opts.Styles.Namespace); err != nil {
		return err
	}
	end, err := r.styledContainer(xaml.TypeFlowDocument, styles.DocumentStyleKey, "Blocks")
	if err != nil {
		return err
	}
	defer end(&err)
	return r.WriteAll(doc.Blocks)
}

func renderHeading(r *Renderer, n ast.Node) (err error) {
	h, ok := ast.As[*ast.Heading](n)
	if !ok {
		return mismatch(n, "heading")
	}
	end, err := r.styledContainer(xaml.TypeParagraph, styles.HeadingKey(h.Level), "Inlines")
	if err != nil {
		return err
	}
	defer end(&err)
	return r.WriteAll(h.Inlines)
}

func renderParagraph(r *Renderer, n ast.Node) (err error) {
	p, ok := ast.As[*ast.Paragraph](n)
	if !ok {
		return mismatch(n, "paragraph")
	}
	end, err := r.styledContainer(xaml.TypeParagraph, "", "Inlines")
	if err != nil {
		return err
	}
	defer end(&err)
	return r.WriteAll(p.Inlines)
}

// renderCodeBlock writes each verbatim line followed by a LineBreak
func renderCodeBlock(r *Renderer, n ast.Node) (err error) {
	cb, ok := ast.As[*ast.CodeBlock](n)
	if !ok {
		return mismatch(n, "code block")
	}
	end, err := r.styledContainer(xaml.TypeParagraph, styles.CodeBlockStyleKey, "Inlines")
	if err != nil {
		return err
	}
	defer end(&err)

	restore := r.w.Preserve()
	defer restore()
	for _, line := range cb.Lines {
		if err := r.w.WriteText(line); err != nil {
			return err
		}
		if err := r.lineBreak(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) lineBreak() error {
	br, err := r.w.BeginObject(xaml.TypeLineBreak)
	if err != nil {
		return err
	}
	return br.Close()
}

func renderQuoteBlock(r *Renderer, n ast.Node) (err error) {
	q, ok := ast.As[*ast.QuoteBlock](n)
	if !ok {
		return mismatch(n, "quote block")
	}
	end, err := r.styledContainer(xaml.TypeSection, styles.QuoteBlockStyleKey, "Blocks")
	if err != nil {
		return err
	}
	defer end(&err)
	return r.WriteAll(q.Blocks)
}

func renderThematicBreak(r *Renderer, n ast.Node) (err error) {
	if _, ok := ast.As[*ast.ThematicBreak](n); !ok {
		return mismatch(n, "thematic break")
	}
	obj, err := r.w.BeginObject(xaml.TypeParagraph)
	if err != nil {
		return err
	}
	defer obj.End(&err)
	return r.w.WriteStyleReference("", styles.ThematicBreakStyleKey)
}

// Marker styles by the numbering character of an ordered list
var orderedMarkers = map[rune]string{
	'1': "Decimal",
	'a': "LowerLatin",
	'A': "UpperLatin",
	'i': "LowerRoman",
	'I': "UpperRoman",
}

func markerStyle(l *ast.List) string {
	if !l.Ordered {
		return "Disc"
	}
	if m, ok := orderedMarkers[l.Marker]; ok {
		return m
	}
	return "Decimal"
}

func renderList(r *Renderer, n ast.Node) (err error) {
	l, ok := ast.As[*ast.List](n)
	if !ok {
		return mismatch(n, "list")
	}
	w := r.w
	obj, err := w.BeginObject(xaml.TypeList)
	if err != nil {
		return err
	}
	defer obj.End(&err)

	if err := w.WriteMember("MarkerStyle", markerStyle(l)); err != nil {
		return err
	}
	if l.Ordered && l.HasStart && l.Start != ast.ListDefaultStart {
		if err := w.WriteMember("StartIndex", l.Start); err != nil {
			return err
		}
	}

	items, err := w.BeginCollection("ListItems")
	if err != nil {
		return err
	}
	defer items.End(&err)
	for _, item := range l.Items {
		if item == nil {
			continue
		}
		if err := r.Write(item); err != nil {
			return err
		}
	}
	return nil
}

func renderListItem(r *Renderer, n ast.Node) (err error) {
	item, ok := ast.As[*ast.ListItem](n)
	if !ok {
		return mismatch(n, "list item")
	}
	end, err := r.styledContainer(xaml.TypeListItem, "", "Blocks")
	if err != nil {
		return err
	}
	defer end(&err)
	return r.WriteAll(item.Blocks)
}

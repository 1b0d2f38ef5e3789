package render

import (
	"net/url"
	"strings"

	"github.com/arthur-debert/mdxaml/pkg/ast"
	"github.com/arthur-debert/mdxaml/pkg/styles"
	"github.com/arthur-debert/mdxaml/pkg/xaml"
)

func renderLiteral(r *Renderer, n ast.Node) error {
	lit, ok := ast.As[*ast.Literal](n)
	if !ok {
		return mismatch(n, "literal")
	}
	if lit.Text == "" {
		return nil
	}
	return r.w.WriteText(lit.Text)
}

// emphasisTarget maps a delimiter run to the wrapping object type and its
// style key. ok is false for delimiters that render their children bare.
func emphasisTarget(e *ast.Emphasis) (typeName string, key styles.Key, ok bool) {
	switch e.Delimiter {
	case '*', '_':
		if e.Double {
			return xaml.TypeBold, "", true
		}
		return xaml.TypeItalic, "", true
	case '~':
		if e.Double {
			return xaml.TypeSpan, styles.StrikeThroughStyleKey, true
		}
		return xaml.TypeSpan, styles.SubscriptStyleKey, true
	case '^':
		return xaml.TypeSpan, styles.SuperscriptStyleKey, true
	case '+':
		return xaml.TypeSpan, styles.InsertedStyleKey, true
	case '=':
		return xaml.TypeSpan, styles.MarkedStyleKey, true
	}
	return "", "", false
}

func renderEmphasis(r *Renderer, n ast.Node) (err error) {
	e, ok := ast.As[*ast.Emphasis](n)
	if !ok {
		return mismatch(n, "emphasis")
	}
	typeName, key, ok := emphasisTarget(e)
	if !ok {
		r.log.Debug().Str("delimiter", string(e.Delimiter)).Msg("unknown emphasis delimiter, rendering children only")
		return r.WriteAll(e.Inlines)
	}
	end, err := r.styledContainer(typeName, key, "Inlines")
	if err != nil {
		return err
	}
	defer end(&err)
	return r.WriteAll(e.Inlines)
}

func renderCodeSpan(r *Renderer, n ast.Node) (err error) {
	c, ok := ast.As[*ast.CodeSpan](n)
	if !ok {
		return mismatch(n, "code span")
	}
	end, err := r.styledContainer(xaml.TypeSpan, styles.CodeStyleKey, "Inlines")
	if err != nil {
		return err
	}
	defer end(&err)

	restore := r.w.Preserve()
	defer restore()
	return r.w.WriteText(c.Text)
}

func renderLineBreak(r *Renderer, n ast.Node) error {
	br, ok := ast.As[*ast.LineBreak](n)
	if !ok {
		return mismatch(n, "line break")
	}
	if !br.Hard {
		return r.w.WriteText("\n")
	}
	return r.lineBreak()
}

// validURL reports whether s parses as a URL reference
func validURL(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	_, err := url.Parse(s)
	return err == nil
}

// imageSource returns s, or the placeholder when s is not a usable URL
func (r *Renderer) imageSource(s string) string {
	if validURL(s) {
		return s
	}
	r.log.Debug().Str("url", s).Str("placeholder", r.opts.ImagePlaceholder).Msg("malformed image url, using placeholder")
	return r.opts.ImagePlaceholder
}

func renderLink(r *Renderer, n ast.Node) (err error) {
	link, ok := ast.As[*ast.Link](n)
	if !ok {
		return mismatch(n, "link")
	}
	target := link.ResolvedURL()
	if link.Image {
		return r.image(target, link.Title)
	}

	end, err := r.hyperlink(target, link.Title)
	if err != nil {
		return err
	}
	defer end(&err)
	return r.WriteAll(link.Inlines)
}

func (r *Renderer) image(target, title string) (err error) {
	w := r.w
	obj, err := w.BeginObject(xaml.TypeImage)
	if err != nil {
		return err
	}
	defer obj.End(&err)
	if err := w.WriteStyleReference("", styles.ImageStyleKey); err != nil {
		return err
	}
	if err := w.WriteMember("Source", r.imageSource(target)); err != nil {
		return err
	}
	if title != "" {
		return w.WriteMember("ToolTip", title)
	}
	return nil
}

// hyperlink opens a Hyperlink and its Inlines. The tooltip is the title,
// or the URL when there is none. A malformed URL leaves out NavigateUri.
func (r *Renderer) hyperlink(target, title string) (func(*error), error) {
	w := r.w
	obj, err := w.BeginObject(xaml.TypeHyperlink)
	if err != nil {
		return nil, err
	}
	fail := func(err error) (func(*error), error) {
		obj.End(nil)
		return nil, err
	}

	if err := w.WriteStyleReference("", styles.HyperlinkStyleKey); err != nil {
		return fail(err)
	}
	if validURL(target) {
		if err := w.WriteMember("NavigateUri", target); err != nil {
			return fail(err)
		}
	} else {
		r.log.Debug().Str("url", target).Msg("malformed link url, omitting NavigateUri")
	}
	tip := title
	if tip == "" {
		tip = target
	}
	if tip != "" {
		if err := w.WriteMember("ToolTip", tip); err != nil {
			return fail(err)
		}
	}
	if r.opts.HyperlinkCommand != "" {
		if err := w.WriteStaticMember("Command", r.opts.HyperlinkCommand); err != nil {
			return fail(err)
		}
		if err := w.WriteMember("CommandParameter", target); err != nil {
			return fail(err)
		}
	}

	inlines, err := w.BeginCollection("Inlines")
	if err != nil {
		return fail(err)
	}
	return func(errp *error) {
		inlines.End(errp)
		obj.End(errp)
	}, nil
}

func renderAutolink(r *Renderer, n ast.Node) (err error) {
	a, ok := ast.As[*ast.Autolink](n)
	if !ok {
		return mismatch(n, "autolink")
	}
	target := a.URL
	if a.Email && !strings.HasPrefix(strings.ToLower(target), "mailto:") {
		target = "mailto:" + target
	}
	end, err := r.hyperlink(target, "")
	if err != nil {
		return err
	}
	defer end(&err)
	return r.w.WriteText(a.URL)
}

// renderTaskItem writes a disabled check box inside an InlineUIContainer
func renderTaskItem(r *Renderer, n ast.Node) (err error) {
	task, ok := ast.As[*ast.TaskItem](n)
	if !ok {
		return mismatch(n, "task item")
	}
	w := r.w
	container, err := w.BeginObject(xaml.TypeInlineUI)
	if err != nil {
		return err
	}
	defer container.End(&err)

	child, err := w.BeginMember("Child")
	if err != nil {
		return err
	}
	defer child.End(&err)

	box, err := w.BeginObject(xaml.TypeCheckBox)
	if err != nil {
		return err
	}
	defer box.End(&err)

	if err := w.WriteStyleReference("", styles.TaskListStyleKey); err != nil {
		return err
	}
	if err := w.WriteMember("IsEnabled", false); err != nil {
		return err
	}
	return w.WriteMember("IsChecked", task.Checked)
}

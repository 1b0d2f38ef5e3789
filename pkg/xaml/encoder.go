package xaml

import (
	"io"
	"strings"

	"github.com/beevik/etree"

	"github.com/arthur-debert/mdxaml/pkg/errors"
)

// Encoder writes a Node graph as XAML text.
//
// Scalar members become attributes, markup extensions become attribute
// values in brace syntax, content-property collections become child
// elements, and every other object-valued member becomes a property
// element such as <Table.Columns>.
type Encoder struct {
	w      io.Writer
	indent int
}

// NewEncoder returns an encoder writing to w with two-space indentation
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, indent: 2}
}

// SetIndent sets the number of spaces per level. Zero writes everything on
// one line.
func (e *Encoder) SetIndent(spaces int) {
	e.indent = spaces
}

// Encode writes the given top-level objects. The first object receives the
// presentation namespace as default namespace unless it already declares one.
func (e *Encoder) Encode(roots ...*Node) error {
	st := &encodeState{flat: map[*etree.Element]bool{}}
	doc, err := st.document(roots)
	if err != nil {
		return err
	}
	if e.indent > 0 {
		st.indentDocument(doc, e.indent)
	}
	if _, err := doc.WriteTo(e.w); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write XAML")
	}
	return nil
}

// Document converts the graph to an unindented etree document
func Document(roots ...*Node) (*etree.Document, error) {
	st := &encodeState{flat: map[*etree.Element]bool{}}
	return st.document(roots)
}

type encodeState struct {
	// elements whose children are inline content; whitespace inserted
	// between their children would become visible text
	flat map[*etree.Element]bool
}

func (st *encodeState) document(roots []*Node) (*etree.Document, error) {
	doc := etree.NewDocument()
	for i, n := range roots {
		if n.Type == nil {
			doc.CreateText(n.Text)
			continue
		}
		if _, err := st.element(&doc.Element, n, i == 0); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (st *encodeState) indentDocument(doc *etree.Document, width int) {
	kids := doc.ChildElements()
	if len(kids) == 0 || len(kids) != len(doc.Child) {
		return
	}
	out := make([]etree.Token, 0, 2*len(kids))
	for i, k := range kids {
		if i > 0 {
			out = append(out, etree.NewText("\n"))
		}
		out = append(out, k)
		st.indent(k, 0, width)
	}
	out = append(out, etree.NewText("\n"))
	doc.Child = out
}

func (st *encodeState) indent(el *etree.Element, depth, width int) {
	if st.flat[el] {
		return
	}
	kids := el.ChildElements()
	if len(kids) == 0 || len(kids) != len(el.Child) {
		return
	}
	pad := "\n" + strings.Repeat(" ", (depth+1)*width)
	out := make([]etree.Token, 0, 2*len(kids)+1)
	for _, k := range kids {
		out = append(out, etree.NewText(pad), k)
		st.indent(k, depth+1, width)
	}
	out = append(out, etree.NewText("\n"+strings.Repeat(" ", depth*width)))
	el.Child = out
}

// EncodeToString is a convenience for tests and the CLI
func EncodeToString(roots ...*Node) (string, error) {
	var b strings.Builder
	if err := NewEncoder(&b).Encode(roots...); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (st *encodeState) element(parent *etree.Element, n *Node, root bool) (*etree.Element, error) {
	if n.Type.MarkupExtension {
		return nil, errors.Newf(errors.ErrStructural, "markup extension %s cannot be written as an element", n.Type.QualifiedName())
	}
	el := parent.CreateElement(n.Type.QualifiedName())
	if n.Type.Inline || n.Type.ContentProperty == "Inlines" {
		st.flat[el] = true
	}
	if root && !declaresDefault(n.Namespaces) {
		el.CreateAttr("xmlns", PresentationNamespace)
	}
	for _, ns := range n.Namespaces {
		if ns.Prefix == "" {
			el.CreateAttr("xmlns", ns.URI)
		} else {
			el.CreateAttr("xmlns:"+ns.Prefix, ns.URI)
		}
	}

	// Attributes first so property elements and children follow them
	var complex []*Property
	for _, p := range n.Members {
		switch {
		case p.HasValue && !p.Collection:
			el.CreateAttr(p.Member.Name, literalAttr(p.Value))
		case len(p.Items) == 1 && p.Items[0].Type != nil && p.Items[0].Type.MarkupExtension:
			ext, err := extension(p.Items[0])
			if err != nil {
				return nil, err
			}
			el.CreateAttr(p.Member.Name, ext)
		default:
			complex = append(complex, p)
		}
	}

	for _, p := range complex {
		target := el
		if p.Member.Name != n.Type.ContentProperty {
			target = el.CreateElement(n.Type.Name + "." + p.Member.Name)
			if st.flat[el] {
				st.flat[target] = true
			}
		}
		for _, item := range p.Items {
			if item.Type == nil {
				target.CreateText(item.Text)
				continue
			}
			if _, err := st.element(target, item, false); err != nil {
				return nil, err
			}
		}
	}
	return el, nil
}

func declaresDefault(nss []Namespace) bool {
	for _, ns := range nss {
		if ns.Prefix == "" {
			return true
		}
	}
	return false
}

// extension renders a markup extension in attribute syntax, for example
// {StaticResource {x:Static markdig:Styles.DocumentStyleKey}}
func extension(n *Node) (string, error) {
	var b strings.Builder
	b.WriteByte('{')
	b.WriteString(n.Type.QualifiedName())

	var args []string
	for _, p := range n.Members {
		if p.Member != positionalDirective {
			if p.HasValue {
				args = append(args, p.Member.Name+"="+extensionArg(p.Value))
			}
			continue
		}
		for _, item := range p.Items {
			if item.Type == nil {
				args = append(args, extensionArg(item.Text))
				continue
			}
			if !item.Type.MarkupExtension {
				return "", errors.Newf(errors.ErrStructural, "positional parameter %s is not a markup extension", item.Type.QualifiedName())
			}
			s, err := extension(item)
			if err != nil {
				return "", err
			}
			args = append(args, s)
		}
	}
	if len(args) > 0 {
		b.WriteByte(' ')
		b.WriteString(strings.Join(args, ", "))
	}
	b.WriteByte('}')
	return b.String(), nil
}

// literalAttr keeps a scalar that starts with a brace from being read back as
// a markup extension.
func literalAttr(v string) string {
	if strings.HasPrefix(v, "{") {
		return "{}" + v
	}
	return v
}

// extensionArg quotes an argument that would otherwise end or split the
// extension it sits in.
func extensionArg(v string) string {
	if v != "" && !strings.ContainsAny(v, "{}=,'\"\\") && strings.TrimSpace(v) == v {
		return v
	}
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range v {
		if r == '\'' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('\'')
	return b.String()
}

package xaml

import (
	"github.com/arthur-debert/mdxaml/pkg/errors"
)

// Namespace is a prefix to URI binding declared on an object
type Namespace struct {
	Prefix string `yaml:"prefix"`
	URI    string `yaml:"uri"`
}

// Node is one object of a materialized graph. A node with a nil Type is a
// bare text item inside a collection.
type Node struct {
	Type       *Type
	Namespaces []Namespace
	Members    []*Property
	Text       string
}

// Property is the value of one member on a Node: either a scalar Value, an
// object-valued member, or a collection of Items.
type Property struct {
	Member     *Member
	Value      string
	HasValue   bool
	Collection bool
	Items      []*Node
}

// Property returns the named member's value or nil
func (n *Node) Property(name string) *Property {
	for _, p := range n.Members {
		if p.Member.Name == name {
			return p
		}
	}
	return nil
}

// Children returns the items of the named member
func (n *Node) Children(name string) []*Node {
	if p := n.Property(name); p != nil {
		return p.Items
	}
	return nil
}

// Scalar returns the named member's scalar value
func (n *Node) Scalar(name string) (string, bool) {
	p := n.Property(name)
	if p == nil || !p.HasValue {
		return "", false
	}
	return p.Value, true
}

type buildKind int

const (
	buildObject buildKind = iota
	buildGetObject
	buildMember
)

type buildFrame struct {
	kind buildKind
	node *Node
	prop *Property
}

// Builder is a Sink that materializes the event stream into a Node graph.
// It rejects unbalanced or misplaced events with ERR_STRUCTURAL.
type Builder struct {
	roots   []*Node
	stack   []*buildFrame
	pending []Namespace
}

// NewBuilder returns an empty builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Roots returns the completed top-level objects
func (b *Builder) Roots() []*Node { return b.roots }

// Root returns the single top-level object of a full document
func (b *Builder) Root() (*Node, error) {
	if len(b.stack) != 0 {
		return nil, errors.Newf(errors.ErrStructural, "document is incomplete: %d frames still open", len(b.stack))
	}
	if len(b.roots) != 1 {
		return nil, errors.Newf(errors.ErrStructural, "expected one root object, got %d", len(b.roots))
	}
	return b.roots[0], nil
}

func (b *Builder) top() *buildFrame {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

func (b *Builder) push(f *buildFrame) { b.stack = append(b.stack, f) }

func (b *Builder) pop() { b.stack = b.stack[:len(b.stack)-1] }

func structural(format string, args ...interface{}) error {
	return errors.Newf(errors.ErrStructural, format, args...)
}

func (b *Builder) Namespace(prefix, uri string) error {
	b.pending = append(b.pending, Namespace{Prefix: prefix, URI: uri})
	return nil
}

func (b *Builder) StartObject(t *Type) error {
	if t == nil {
		return structural("start object without a type")
	}
	n := &Node{Type: t, Namespaces: b.pending}
	b.pending = nil

	f := b.top()
	switch {
	case f == nil:
		b.roots = append(b.roots, n)
	case f.kind == buildMember:
		f.prop.Items = append(f.prop.Items, n)
	default:
		return structural("object %s started outside a member", t.QualifiedName())
	}
	b.push(&buildFrame{kind: buildObject, node: n})
	return nil
}

func (b *Builder) GetObject() error {
	f := b.top()
	if f == nil || f.kind != buildMember {
		return structural("get object outside a member")
	}
	f.prop.Collection = true
	b.push(&buildFrame{kind: buildGetObject, prop: f.prop})
	return nil
}

func (b *Builder) StartMember(m *Member) error {
	f := b.top()
	if f == nil || f.kind == buildMember {
		return structural("member %s started outside an object", m.Name)
	}
	if f.kind == buildGetObject {
		if m != itemsDirective {
			return structural("collection accessor accepts only %s, got %s", MemberItems, m.Name)
		}
		// Items of the collection land on the owning property
		b.push(&buildFrame{kind: buildMember, prop: f.prop})
		return nil
	}
	p := &Property{Member: m, Collection: m.Collection}
	f.node.Members = append(f.node.Members, p)
	b.push(&buildFrame{kind: buildMember, prop: p})
	return nil
}

func (b *Builder) EndMember() error {
	f := b.top()
	if f == nil || f.kind != buildMember {
		return structural("end member without an open member")
	}
	b.pop()
	return nil
}

func (b *Builder) Value(v string) error {
	f := b.top()
	if f == nil || f.kind != buildMember {
		return structural("value %q outside a member", v)
	}
	if f.prop.Collection {
		f.prop.Items = append(f.prop.Items, &Node{Text: v})
		return nil
	}
	f.prop.Value += v
	f.prop.HasValue = true
	return nil
}

func (b *Builder) EndObject() error {
	f := b.top()
	if f == nil || f.kind == buildMember {
		return structural("end object without an open object")
	}
	b.pop()
	return nil
}

package xaml

import (
	"github.com/arthur-debert/mdxaml/pkg/errors"
	"github.com/arthur-debert/mdxaml/pkg/registry"
)

// XML namespaces used by the emitted documents
const (
	PresentationNamespace = "http://schemas.microsoft.com/winfx/2006/xaml/presentation"
	LanguageNamespace     = "http://schemas.microsoft.com/winfx/2006/xaml"
	LanguagePrefix        = "x"
)

// Directive member names. Directives are available on every type.
const (
	MemberItems      = "x:Items"
	MemberPositional = "x:_PositionalParameters"
)

// Member is a named slot on a Type
type Member struct {
	Name       string
	Owner      *Type
	Collection bool
	Directive  bool
}

// QualifiedName is the property element name, Owner.Member. Directives
// return their own name.
func (m *Member) QualifiedName() string {
	if m.Directive || m.Owner == nil {
		return m.Name
	}
	return m.Owner.Name + "." + m.Name
}

func (m *Member) String() string { return m.Name }

var (
	itemsDirective      = &Member{Name: MemberItems, Collection: true, Directive: true}
	positionalDirective = &Member{Name: MemberPositional, Collection: true, Directive: true}
)

// Items is the directive member holding the contents of a collection
// obtained with GetObject
func Items() *Member { return itemsDirective }

// PositionalParameters is the directive member holding a markup
// extension's constructor arguments
func PositionalParameters() *Member { return positionalDirective }

// Type is an object type known to the output notation
type Type struct {
	Name   string
	Prefix string

	// Block types reset inline whitespace state at their boundaries. A
	// LineBreak type does the same without being a block.
	Block     bool
	Inline    bool
	LineBreak bool

	// MarkupExtension types are written in attribute syntax by the encoder
	MarkupExtension bool

	// ContentProperty names the member whose contents are written as child
	// elements without a property element
	ContentProperty string

	members registry.Registry[*Member]
}

// QualifiedName is the element name including the prefix
func (t *Type) QualifiedName() string {
	if t.Prefix == "" {
		return t.Name
	}
	return t.Prefix + ":" + t.Name
}

func (t *Type) String() string { return t.QualifiedName() }

// Member resolves a member by name. Directive names resolve on every type.
func (t *Type) Member(name string) (*Member, error) {
	switch name {
	case MemberItems:
		return itemsDirective, nil
	case MemberPositional:
		return positionalDirective, nil
	}
	m, ok := t.members.Lookup(name)
	if !ok {
		return nil, errors.Newf(errors.ErrUnknownMember, "type %s has no member %q", t.QualifiedName(), name).
			WithDetail("type", t.QualifiedName()).
			WithDetail("member", name)
	}
	return m, nil
}

// Members lists the member names in sorted order
func (t *Type) Members() []string {
	return t.members.List()
}

// Content returns the content property member, or nil
func (t *Type) Content() *Member {
	if t.ContentProperty == "" {
		return nil
	}
	m, _ := t.members.Lookup(t.ContentProperty)
	return m
}

// TypeOption configures a Type during definition
type TypeOption func(*Type)

// Block marks a block-level type
func Block() TypeOption { return func(t *Type) { t.Block = true } }

// Inline marks an inline type
func Inline() TypeOption { return func(t *Type) { t.Inline = true } }

// BreaksLine marks a type that ends the current line of text
func BreaksLine() TypeOption { return func(t *Type) { t.LineBreak = true } }

// Extension marks a markup extension type
func Extension() TypeOption { return func(t *Type) { t.MarkupExtension = true } }

// WithPrefix places the type in a prefixed namespace
func WithPrefix(prefix string) TypeOption { return func(t *Type) { t.Prefix = prefix } }

// Scalars adds scalar members
func Scalars(names ...string) TypeOption {
	return func(t *Type) {
		for _, n := range names {
			t.members.Set(n, &Member{Name: n, Owner: t})
		}
	}
}

// Collections adds collection members
func Collections(names ...string) TypeOption {
	return func(t *Type) {
		for _, n := range names {
			t.members.Set(n, &Member{Name: n, Owner: t, Collection: true})
		}
	}
}

// ContentProperty sets the content member. The member must be added by
// another option.
func ContentProperty(name string) TypeOption {
	return func(t *Type) { t.ContentProperty = name }
}

// Schema is the set of types the output notation recognizes
type Schema struct {
	types registry.Registry[*Type]
}

// NewSchema returns an empty schema
func NewSchema() *Schema {
	return &Schema{types: registry.New[*Type]()}
}

// Define adds or replaces a type. Types are keyed by qualified name.
func (s *Schema) Define(name string, opts ...TypeOption) *Type {
	t := &Type{Name: name, members: registry.New[*Member]()}
	for _, opt := range opts {
		opt(t)
	}
	s.types.Set(t.QualifiedName(), t)
	return t
}

// Type resolves a type by qualified name
func (s *Schema) Type(name string) (*Type, error) {
	t, ok := s.types.Lookup(name)
	if !ok {
		return nil, errors.Newf(errors.ErrUnknownType, "unknown type %q", name).
			WithDetail("type", name)
	}
	return t, nil
}

// Types lists the qualified type names in sorted order
func (s *Schema) Types() []string {
	return s.types.List()
}

// Well-known type names
const (
	TypeFlowDocument   = "FlowDocument"
	TypeSection        = "Section"
	TypeParagraph      = "Paragraph"
	TypeList           = "List"
	TypeListItem       = "ListItem"
	TypeTable          = "Table"
	TypeTableColumn    = "TableColumn"
	TypeTableRowGroup  = "TableRowGroup"
	TypeTableRow       = "TableRow"
	TypeTableCell      = "TableCell"
	TypeRun            = "Run"
	TypeSpan           = "Span"
	TypeBold           = "Bold"
	TypeItalic         = "Italic"
	TypeUnderline      = "Underline"
	TypeHyperlink      = "Hyperlink"
	TypeImage          = "Image"
	TypeLineBreak      = "LineBreak"
	TypeInlineUI       = "InlineUIContainer"
	TypeBlockUI        = "BlockUIContainer"
	TypeCheckBox       = "CheckBox"
	TypeStaticResource = "StaticResource"
	TypeStatic         = "x:Static"
)

// DefaultSchema returns the flow document types the renderer emits
func DefaultSchema() *Schema {
	s := NewSchema()
	common := Scalars("Style", "Tag", "ToolTip")
	blocks := []TypeOption{common, Block(), Collections("Blocks"), ContentProperty("Blocks")}
	inlines := []TypeOption{common, Inline(), Collections("Inlines"), ContentProperty("Inlines")}

	s.Define(TypeFlowDocument, append(blocks, Scalars("FontFamily", "PagePadding"))...)
	s.Define(TypeSection, blocks...)
	s.Define(TypeParagraph, common, Block(), Collections("Inlines"), ContentProperty("Inlines"), Scalars("TextAlignment"))
	s.Define(TypeList, common, Block(), Collections("ListItems"), ContentProperty("ListItems"), Scalars("MarkerStyle", "StartIndex"))
	s.Define(TypeListItem, blocks...)
	s.Define(TypeTable, common, Block(), Collections("Columns", "RowGroups"), ContentProperty("RowGroups"), Scalars("CellSpacing"))
	s.Define(TypeTableColumn, Scalars("Width", "Style"))
	s.Define(TypeTableRowGroup, common, Collections("Rows"), ContentProperty("Rows"))
	s.Define(TypeTableRow, common, Collections("Cells"), ContentProperty("Cells"))
	s.Define(TypeTableCell, append(blocks, Scalars("ColumnSpan", "RowSpan", "TextAlignment"))...)
	s.Define(TypeBlockUI, common, Block(), Scalars("Child"), ContentProperty("Child"))

	s.Define(TypeRun, common, Inline(), Scalars("Text"), ContentProperty("Text"))
	s.Define(TypeSpan, inlines...)
	s.Define(TypeBold, inlines...)
	s.Define(TypeItalic, inlines...)
	s.Define(TypeUnderline, inlines...)
	s.Define(TypeHyperlink, append(inlines, Scalars("NavigateUri", "TargetName", "Command", "CommandParameter"))...)
	s.Define(TypeImage, common, Inline(), Scalars("Source", "Width", "Height"))
	s.Define(TypeLineBreak, Inline(), BreaksLine())
	s.Define(TypeInlineUI, common, Inline(), Scalars("Child"), ContentProperty("Child"))
	s.Define(TypeCheckBox, common, Scalars("IsChecked", "IsEnabled", "Content"))

	s.Define(TypeStaticResource, Extension(), Scalars("ResourceKey"))
	s.Define("Static", Extension(), WithPrefix(LanguagePrefix), Scalars("Member"))
	return s
}

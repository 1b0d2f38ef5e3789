package ast

// Node is one element of a parsed document tree. Nodes are owned by the
// parser and are read-only to the renderer.
type Node interface {
	Kind() Kind
}

// Container is a node with ordered children
type Container interface {
	Node
	Children() []Node
}

// ListDefaultStart is the implicit start index of an ordered list
const ListDefaultStart = 1

// Alignment is the horizontal alignment of a table column
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "Left"
	case AlignCenter:
		return "Center"
	case AlignRight:
		return "Right"
	}
	return ""
}

// Document is the root of a parsed markdown file
type Document struct {
	Blocks []Node
}

func (*Document) Kind() Kind          { return KindDocument }
func (d *Document) Children() []Node { return d.Blocks }

// Heading is an ATX or setext heading. Level is nominally 1 to 6.
type Heading struct {
	Level   int
	Inlines []Node
}

func (*Heading) Kind() Kind          { return KindHeading }
func (h *Heading) Children() []Node { return h.Inlines }

type Paragraph struct {
	Inlines []Node
}

func (*Paragraph) Kind() Kind          { return KindParagraph }
func (p *Paragraph) Children() []Node { return p.Inlines }

// CodeBlock holds verbatim lines without their line terminators
type CodeBlock struct {
	Info  string
	Lines []string
}

func (*CodeBlock) Kind() Kind { return KindCodeBlock }

type QuoteBlock struct {
	Blocks []Node
}

func (*QuoteBlock) Kind() Kind          { return KindQuoteBlock }
func (q *QuoteBlock) Children() []Node { return q.Blocks }

// List is a bullet or ordered list. Marker is the bullet character for
// unordered lists and the numbering type ('1', 'a', 'A', 'i', 'I') for
// ordered ones. Start is meaningful only when HasStart is set.
type List struct {
	Ordered  bool
	Marker   rune
	Start    int
	HasStart bool
	Tight    bool
	Items    []*ListItem
}

func (*List) Kind() Kind { return KindList }

func (l *List) Children() []Node {
	out := make([]Node, 0, len(l.Items))
	for _, it := range l.Items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}

type ListItem struct {
	Blocks []Node
}

func (*ListItem) Kind() Kind          { return KindListItem }
func (i *ListItem) Children() []Node { return i.Blocks }

// TableColumn describes one column. A zero Width means auto sizing.
type TableColumn struct {
	Width     float64
	Alignment Alignment
}

// Table is a pipe table. Columns may be shorter than a row's cell count
// when the input is malformed.
type Table struct {
	Columns []*TableColumn
	Rows    []*TableRow
}

func (*Table) Kind() Kind { return KindTable }

type TableRow struct {
	Header bool
	Cells  []*TableCell
}

func (*TableRow) Kind() Kind { return KindTableRow }

// TableCell is one cell. ColumnIndex is -1 when the parser did not assign
// one; spans below 2 mean no spanning.
type TableCell struct {
	ColumnIndex int
	ColumnSpan  int
	RowSpan     int
	Blocks      []Node
}

func (*TableCell) Kind() Kind          { return KindTableCell }
func (c *TableCell) Children() []Node { return c.Blocks }

type ThematicBreak struct{}

func (*ThematicBreak) Kind() Kind { return KindThematicBreak }

// Literal is a plain text span
type Literal struct {
	Text string
}

func (*Literal) Kind() Kind { return KindLiteral }

// Emphasis is a delimiter run: '*' and '_' for italic/bold, '~' for
// subscript/strike-through, '^' superscript, '+' inserted, '=' marked.
type Emphasis struct {
	Delimiter rune
	Double    bool
	Inlines   []Node
}

func (*Emphasis) Kind() Kind          { return KindEmphasis }
func (e *Emphasis) Children() []Node { return e.Inlines }

type CodeSpan struct {
	Text string
}

func (*CodeSpan) Kind() Kind { return KindCodeSpan }

// Link is an inline link or image. DynamicURL, when set, is consulted at
// render time and wins over URL if it returns a non-empty string.
type Link struct {
	URL        string
	Title      string
	Image      bool
	DynamicURL func() string
	Inlines    []Node
}

func (*Link) Kind() Kind          { return KindLink }
func (l *Link) Children() []Node { return l.Inlines }

// ResolvedURL returns the URL the link should point at
func (l *Link) ResolvedURL() string {
	if l.DynamicURL != nil {
		if u := l.DynamicURL(); u != "" {
			return u
		}
	}
	return l.URL
}

// Autolink is a bare URL or e-mail address
type Autolink struct {
	URL   string
	Email bool
}

func (*Autolink) Kind() Kind { return KindAutolink }

// LineBreak is a hard break, or a soft break when Hard is false
type LineBreak struct {
	Hard bool
}

func (*LineBreak) Kind() Kind { return KindLineBreak }

// RawMarkup carries a verbatim fragment of embedded markup
type RawMarkup struct {
	Fragment string
}

func (*RawMarkup) Kind() Kind { return KindRawMarkup }

// TaskItem is the checkbox that opens a task list item
type TaskItem struct {
	Checked bool
}

func (*TaskItem) Kind() Kind { return KindTaskItem }

package ast

import "sync"

// Kind identifies the runtime kind of a Node. Kinds form a tree: every kind
// except the abstract roots has a parent, and the render dispatcher falls
// back to the nearest ancestor that has a registered handler.
type Kind int

// KindNone is the zero Kind. It has no parent and is never registered.
const KindNone Kind = 0

type kindInfo struct {
	name   string
	parent Kind
}

var (
	kindsMu sync.RWMutex
	kinds   = []kindInfo{{name: "None"}}
)

// NewKind declares a new node kind. Declare kinds at package init time;
// extension packages derive from a built-in kind to reuse its handler.
func NewKind(name string, parent Kind) Kind {
	kindsMu.Lock()
	defer kindsMu.Unlock()

	kinds = append(kinds, kindInfo{name: name, parent: parent})
	return Kind(len(kinds) - 1)
}

// String returns the kind's name
func (k Kind) String() string {
	kindsMu.RLock()
	defer kindsMu.RUnlock()

	if int(k) < 0 || int(k) >= len(kinds) {
		return "Unknown"
	}
	return kinds[k].name
}

// Parent returns the kind this one derives from, or KindNone
func (k Kind) Parent() Kind {
	kindsMu.RLock()
	defer kindsMu.RUnlock()

	if int(k) <= 0 || int(k) >= len(kinds) {
		return KindNone
	}
	return kinds[k].parent
}

// Ancestry returns k followed by each of its ancestors, nearest first
func (k Kind) Ancestry() []Kind {
	var out []Kind
	for cur := k; cur != KindNone; cur = cur.Parent() {
		out = append(out, cur)
	}
	return out
}

// IsA reports whether k is base or derives from it
func (k Kind) IsA(base Kind) bool {
	for cur := k; cur != KindNone; cur = cur.Parent() {
		if cur == base {
			return true
		}
	}
	return false
}

// Abstract roots. No handler is ever registered for these.
var (
	KindBlock  = NewKind("Block", KindNone)
	KindInline = NewKind("Inline", KindNone)
)

// Block kinds
var (
	KindDocument      = NewKind("Document", KindBlock)
	KindHeading       = NewKind("Heading", KindBlock)
	KindParagraph     = NewKind("Paragraph", KindBlock)
	KindCodeBlock     = NewKind("CodeBlock", KindBlock)
	KindQuoteBlock    = NewKind("QuoteBlock", KindBlock)
	KindList          = NewKind("List", KindBlock)
	KindListItem      = NewKind("ListItem", KindBlock)
	KindTable         = NewKind("Table", KindBlock)
	KindTableRow      = NewKind("TableRow", KindBlock)
	KindTableCell     = NewKind("TableCell", KindBlock)
	KindThematicBreak = NewKind("ThematicBreak", KindBlock)
)

// Inline kinds
var (
	KindLiteral   = NewKind("Literal", KindInline)
	KindEmphasis  = NewKind("Emphasis", KindInline)
	KindCodeSpan  = NewKind("CodeSpan", KindInline)
	KindLink      = NewKind("Link", KindInline)
	KindAutolink  = NewKind("Autolink", KindInline)
	KindLineBreak = NewKind("LineBreak", KindInline)
	KindRawMarkup = NewKind("RawMarkup", KindInline)
	KindTaskItem  = NewKind("TaskItem", KindInline)
)

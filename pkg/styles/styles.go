// Package styles holds the symbolic style keys the renderer emits and the
// resolver that turns a key into the static symbol the host looks up.
//
// The renderer never writes a concrete appearance. Every styled object
// receives {StaticResource {x:Static markdig:Styles.<Key>}}, and the host
// theme decides what that resource contains.
package styles

import (
	"strings"

	"github.com/arthur-debert/mdxaml/pkg/errors"
)

// Key is one symbolic style role
type Key string

const (
	CodeStyleKey          Key = "CodeStyleKey"
	CodeBlockStyleKey     Key = "CodeBlockStyleKey"
	DocumentStyleKey      Key = "DocumentStyleKey"
	Heading1StyleKey      Key = "Heading1StyleKey"
	Heading2StyleKey      Key = "Heading2StyleKey"
	Heading3StyleKey      Key = "Heading3StyleKey"
	Heading4StyleKey      Key = "Heading4StyleKey"
	Heading5StyleKey      Key = "Heading5StyleKey"
	Heading6StyleKey      Key = "Heading6StyleKey"
	HyperlinkStyleKey     Key = "HyperlinkStyleKey"
	ImageStyleKey         Key = "ImageStyleKey"
	InsertedStyleKey      Key = "InsertedStyleKey"
	MarkedStyleKey        Key = "MarkedStyleKey"
	QuoteBlockStyleKey    Key = "QuoteBlockStyleKey"
	StrikeThroughStyleKey Key = "StrikeThroughStyleKey"
	SubscriptStyleKey     Key = "SubscriptStyleKey"
	SuperscriptStyleKey   Key = "SuperscriptStyleKey"
	TableStyleKey         Key = "TableStyleKey"
	TableCellStyleKey     Key = "TableCellStyleKey"
	TableHeaderStyleKey   Key = "TableHeaderStyleKey"
	TaskListStyleKey      Key = "TaskListStyleKey"
	ThematicBreakStyleKey Key = "ThematicBreakStyleKey"
)

var allKeys = []Key{
	CodeStyleKey, CodeBlockStyleKey, DocumentStyleKey,
	Heading1StyleKey, Heading2StyleKey, Heading3StyleKey,
	Heading4StyleKey, Heading5StyleKey, Heading6StyleKey,
	HyperlinkStyleKey, ImageStyleKey, InsertedStyleKey, MarkedStyleKey,
	QuoteBlockStyleKey, StrikeThroughStyleKey, SubscriptStyleKey,
	SuperscriptStyleKey, TableStyleKey, TableCellStyleKey,
	TableHeaderStyleKey, TaskListStyleKey, ThematicBreakStyleKey,
}

var headingKeys = [...]Key{
	Heading1StyleKey, Heading2StyleKey, Heading3StyleKey,
	Heading4StyleKey, Heading5StyleKey, Heading6StyleKey,
}

// Keys returns every style key
func Keys() []Key {
	out := make([]Key, len(allKeys))
	copy(out, allKeys)
	return out
}

// Valid reports whether k is one of the enumerated keys
func (k Key) Valid() bool {
	for _, known := range allKeys {
		if k == known {
			return true
		}
	}
	return false
}

// HeadingKey picks the key for a heading level. Levels 1 to 5 have their
// own key; everything else shares the level 6 key.
func HeadingKey(level int) Key {
	if level >= 1 && level <= 5 {
		return headingKeys[level-1]
	}
	return Heading6StyleKey
}

// Defaults for the style class binding
const (
	DefaultPrefix    = "markdig"
	DefaultClass     = "Styles"
	DefaultNamespace = "clr-namespace:Markdig.Wpf;assembly=Markdig.Wpf"
)

// Resolver maps keys to static member symbols such as
// markdig:Styles.Heading1StyleKey
type Resolver struct {
	Prefix    string
	Class     string
	Namespace string
}

// DefaultResolver binds keys to the Markdig.Wpf Styles class
func DefaultResolver() Resolver {
	return Resolver{Prefix: DefaultPrefix, Class: DefaultClass, Namespace: DefaultNamespace}
}

// Validate checks the binding is usable in an x:Static reference
func (r Resolver) Validate() error {
	switch {
	case r.Prefix == "" || strings.ContainsAny(r.Prefix, ": "):
		return errors.Newf(errors.ErrConfigValid, "invalid style prefix %q", r.Prefix)
	case r.Class == "" || strings.ContainsAny(r.Class, ":. "):
		return errors.Newf(errors.ErrConfigValid, "invalid style class %q", r.Class)
	case r.Namespace == "":
		return errors.New(errors.ErrConfigValid, "style namespace cannot be empty")
	}
	return nil
}

// Symbol returns the x:Static argument for k
func (r Resolver) Symbol(k Key) string {
	return r.Prefix + ":" + r.Class + "." + string(k)
}

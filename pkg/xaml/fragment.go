package xaml

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/arthur-debert/mdxaml/pkg/errors"
)

// ParseFragment turns a literal XAML fragment into structural events.
//
// Element names resolve against the schema; unknown types or members are
// fatal. Processing instructions and DTD directives have no event form and
// fail with ERR_STRUCTURAL. Comments are dropped, whitespace between
// elements is ignored, and text outside any element becomes a Run. A {}
// prefix on an attribute value is removed; an attribute holding a markup
// extension is a parse error.
func ParseFragment(schema *Schema, fragment string) ([]Event, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(fragment); err != nil {
		return nil, errors.Wrap(err, errors.ErrParse, "malformed markup fragment").
			WithDetail("fragment", fragment)
	}

	p := &fragmentParser{schema: schema}
	if err := p.content(doc.Child, nil); err != nil {
		return nil, err
	}
	return p.events, nil
}

type fragmentParser struct {
	schema *Schema
	events []Event
}

func (p *fragmentParser) emit(e Event) { p.events = append(p.events, e) }

// content emits a run of child tokens. member is the member receiving them,
// nil at the top level.
func (p *fragmentParser) content(tokens []etree.Token, member *Member) error {
	tokens = significant(tokens)
	for i, tok := range tokens {
		switch t := tok.(type) {
		case *etree.Element:
			if err := p.element(t); err != nil {
				return err
			}
		case *etree.CharData:
			text := normalizeSpace(t.Data, i == 0, i == len(tokens)-1)
			if text == "" {
				continue
			}
			if member != nil && !member.Collection {
				p.emit(Event{Kind: EventValue, Value: text})
				continue
			}
			if err := p.run(text); err != nil {
				return err
			}
		case *etree.Comment:
		case *etree.ProcInst:
			return errors.Newf(errors.ErrStructural, "processing instruction %q is not allowed in a fragment", t.Target)
		case *etree.Directive:
			return errors.New(errors.ErrStructural, "directive is not allowed in a fragment")
		default:
			return errors.Newf(errors.ErrStructural, "unrecognized token %T in fragment", tok)
		}
	}
	return nil
}

func (p *fragmentParser) run(text string) error {
	run, err := p.schema.Type(TypeRun)
	if err != nil {
		return err
	}
	m, err := run.Member("Text")
	if err != nil {
		return err
	}
	p.emit(Event{Kind: EventStartObject, Type: run})
	p.emit(Event{Kind: EventStartMember, Member: m})
	p.emit(Event{Kind: EventValue, Value: text})
	p.emit(Event{Kind: EventEndMember})
	p.emit(Event{Kind: EventEndObject})
	return nil
}

func (p *fragmentParser) element(el *etree.Element) error {
	name := el.Tag
	if el.Space != "" {
		name = el.Space + ":" + el.Tag
	}
	if strings.Contains(el.Tag, ".") {
		return errors.Newf(errors.ErrStructural, "property element %s outside its owner", name)
	}

	var attrs []etree.Attr
	for _, a := range el.Attr {
		switch {
		case a.Space == "xmlns":
			p.emit(Event{Kind: EventNamespace, Prefix: a.Key, URI: a.Value})
		case a.Space == "" && a.Key == "xmlns":
			p.emit(Event{Kind: EventNamespace, URI: a.Value})
		default:
			attrs = append(attrs, a)
		}
	}

	t, err := p.schema.Type(name)
	if err != nil {
		return err
	}
	p.emit(Event{Kind: EventStartObject, Type: t})

	for _, a := range attrs {
		key := a.Key
		if a.Space != "" {
			key = a.Space + ":" + a.Key
		}
		m, err := t.Member(key)
		if err != nil {
			return err
		}
		value, ok := fragmentAttr(a.Value)
		if !ok {
			return errors.Newf(errors.ErrParse, "markup extension in fragment attribute %s", key).
				WithDetail("value", a.Value)
		}
		p.emit(Event{Kind: EventStartMember, Member: m})
		p.emit(Event{Kind: EventValue, Value: value})
		p.emit(Event{Kind: EventEndMember})
	}

	var inner []etree.Token
	for _, tok := range el.Child {
		child, ok := tok.(*etree.Element)
		if !ok || !strings.HasPrefix(child.Tag, t.Name+".") {
			inner = append(inner, tok)
			continue
		}
		m, err := t.Member(strings.TrimPrefix(child.Tag, t.Name+"."))
		if err != nil {
			return err
		}
		if err := p.member(m, child.Child); err != nil {
			return err
		}
	}

	if len(significant(inner)) > 0 {
		m := t.Content()
		if m == nil {
			return errors.Newf(errors.ErrUnknownMember, "type %s has no content property", t.QualifiedName()).
				WithDetail("type", t.QualifiedName())
		}
		if err := p.member(m, inner); err != nil {
			return err
		}
	}

	p.emit(Event{Kind: EventEndObject})
	return nil
}

func (p *fragmentParser) member(m *Member, tokens []etree.Token) error {
	p.emit(Event{Kind: EventStartMember, Member: m})
	if m.Collection {
		p.emit(Event{Kind: EventGetObject})
		p.emit(Event{Kind: EventStartMember, Member: itemsDirective})
	}
	if err := p.content(tokens, m); err != nil {
		return err
	}
	if m.Collection {
		p.emit(Event{Kind: EventEndMember})
		p.emit(Event{Kind: EventEndObject})
	}
	p.emit(Event{Kind: EventEndMember})
	return nil
}

// significant drops whitespace-only text between elements. Text that
// contains anything but whitespace is kept.
func significant(tokens []etree.Token) []etree.Token {
	out := make([]etree.Token, 0, len(tokens))
	for _, tok := range tokens {
		if cd, ok := tok.(*etree.CharData); ok && strings.TrimSpace(cd.Data) == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// normalizeSpace collapses whitespace runs to one space and trims the ends
// of the first and last text of a content run
func normalizeSpace(s string, first, last bool) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			space = true
			continue
		}
		if space && (b.Len() > 0 || !first) {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	if space && !last && b.Len() > 0 {
		b.WriteByte(' ')
	}
	return b.String()
}

// fragmentAttr undoes the {} escape. Markup extensions in fragments are not
// parsed, so an unescaped brace value is rejected.
func fragmentAttr(v string) (string, bool) {
	switch {
	case strings.HasPrefix(v, "{}"):
		return v[2:], true
	case strings.HasPrefix(v, "{"):
		return "", false
	}
	return v, true
}

package render

import (
	"github.com/arthur-debert/mdxaml/pkg/ast"
	"github.com/arthur-debert/mdxaml/pkg/errors"
	"github.com/arthur-debert/mdxaml/pkg/xaml"
)

// renderRawMarkup splices a literal markup fragment into the output. A
// fragment that does not parse is written as plain text instead.
func renderRawMarkup(r *Renderer, n ast.Node) (err error) {
	raw, ok := ast.As[*ast.RawMarkup](n)
	if !ok {
		return mismatch(n, "raw markup")
	}
	if raw.Fragment == "" {
		return nil
	}

	events, err := xaml.ParseFragment(r.schema, raw.Fragment)
	if errors.IsErrorCode(err, errors.ErrParse) {
		r.log.Debug().Err(err).Msg("raw markup is not well formed, writing it as text")
		return r.literalText(raw.Fragment)
	}
	if err != nil {
		return err
	}
	return r.splice(events)
}

// literalText writes s as text, wrapping it in a paragraph when the
// current position does not accept inlines
func (r *Renderer) literalText(s string) (err error) {
	if r.w.InlineContext() {
		return r.w.WriteText(s)
	}
	end, err := r.styledContainer(xaml.TypeParagraph, "", "Inlines")
	if err != nil {
		return err
	}
	defer end(&err)
	return r.w.WriteText(s)
}

// spliceEntry tracks one open event of a spliced fragment. scope is nil
// for the GetObject and x:Items wrappers, which the writer emits itself.
type spliceEntry struct {
	scope *Scope
	items bool
}

// splice replays parsed events through the writer so they pass the same
// checks and collection handling as handler output
func (r *Renderer) splice(events []xaml.Event) (err error) {
	w := r.w
	var stack []spliceEntry
	defer func() {
		for i := len(stack) - 1; i >= 0; i-- {
			stack[i].scope.End(&err)
		}
	}()

	pop := func() (spliceEntry, error) {
		if len(stack) == 0 {
			return spliceEntry{}, errors.New(errors.ErrStructural, "fragment closes more than it opens")
		}
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return e, nil
	}
	inItems := func() bool {
		return len(stack) > 0 && stack[len(stack)-1].items
	}

	for _, e := range events {
		switch e.Kind {
		case xaml.EventNamespace:
			if err := w.Namespace(e.Prefix, e.URI); err != nil {
				return err
			}

		case xaml.EventStartObject:
			s, err := w.BeginObject(e.Type.QualifiedName())
			if err != nil {
				return err
			}
			stack = append(stack, spliceEntry{scope: s})

		case xaml.EventGetObject:
			stack = append(stack, spliceEntry{})

		case xaml.EventStartMember:
			var (
				s   *Scope
				err error
			)
			switch {
			case e.Member == xaml.Items():
				stack = append(stack, spliceEntry{items: true})
				continue
			case e.Member.Collection && !e.Member.Directive:
				s, err = w.BeginCollection(e.Member.Name)
			default:
				s, err = w.BeginMember(e.Member.Name)
			}
			if err != nil {
				return err
			}
			stack = append(stack, spliceEntry{scope: s})

		case xaml.EventValue:
			if inItems() {
				if err := w.WriteText(e.Value); err != nil {
					return err
				}
				continue
			}
			if err := w.WriteValue(e.Value); err != nil {
				return err
			}

		case xaml.EventEndMember, xaml.EventEndObject:
			top, err := pop()
			if err != nil {
				return err
			}
			if err := top.scope.Close(); err != nil {
				return err
			}

		default:
			return errors.Newf(errors.ErrStructural, "unknown event %s in fragment", e.Kind)
		}
	}
	if len(stack) != 0 {
		return errors.Newf(errors.ErrStructural, "fragment leaves %d members or objects open", len(stack))
	}
	return nil
}

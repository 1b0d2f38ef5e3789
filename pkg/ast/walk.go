package ast

// Unwrapper is implemented by extension nodes that derive from a built-in
// node. Unwrap returns the embedded base node.
type Unwrapper interface {
	Unwrap() Node
}

// As finds the first node in n's unwrap chain that has type T, in the
// manner of errors.As. Handlers registered for a base kind use it so they
// also accept nodes of derived kinds.
func As[T Node](n Node) (T, bool) {
	for n != nil {
		if t, ok := n.(T); ok {
			return t, true
		}
		u, ok := n.(Unwrapper)
		if !ok {
			break
		}
		n = u.Unwrap()
	}
	var zero T
	return zero, false
}

// ChildrenOf returns n's children, looking through Unwrap when n itself is
// not a Container
func ChildrenOf(n Node) []Node {
	if c, ok := As[Container](n); ok {
		return c.Children()
	}
	return nil
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the node's subtree.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch v := n.(type) {
	case *Table:
		for _, row := range v.Rows {
			if row != nil {
				Walk(row, fn)
			}
		}
		return
	case *TableRow:
		for _, cell := range v.Cells {
			if cell != nil {
				Walk(cell, fn)
			}
		}
		return
	}
	for _, child := range ChildrenOf(n) {
		Walk(child, fn)
	}
}

// Text concatenates the literal text below n. Useful for link titles and
// plain-text fallbacks.
func Text(n Node) string {
	var b []byte
	Walk(n, func(c Node) bool {
		switch v := c.(type) {
		case *Literal:
			b = append(b, v.Text...)
		case *CodeSpan:
			b = append(b, v.Text...)
		case *Autolink:
			b = append(b, v.URL...)
		case *LineBreak:
			b = append(b, ' ')
		}
		return true
	})
	return string(b)
}

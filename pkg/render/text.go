package render

import "strings"

// TextMode selects how the accumulator treats whitespace
type TextMode int

const (
	// Collapse folds whitespace runs into one space and drops leading and
	// trailing whitespace of a block
	Collapse TextMode = iota
	// Preserve appends every character unchanged
	Preserve
)

func (m TextMode) String() string {
	if m == Preserve {
		return "preserve"
	}
	return "collapse"
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// accumulator buffers text until a structural boundary flushes it.
//
// pendingSpace and lineStart survive a flush: they only reset at block
// boundaries, so whitespace decisions span adjacent runs and inline
// objects. spaced is set while the last thing written was a space, which
// keeps a space from being doubled across an inline object edge.
type accumulator struct {
	buf          strings.Builder
	pendingSpace bool
	lineStart    bool
	spaced       bool
}

func newAccumulator() *accumulator {
	return &accumulator{lineStart: true}
}

func (a *accumulator) write(s string, mode TextMode) {
	if mode == Preserve {
		if s == "" {
			return
		}
		if a.pendingSpace && !a.lineStart {
			a.buf.WriteByte(' ')
		}
		a.pendingSpace = false
		a.lineStart = false
		a.buf.WriteString(s)
		a.spaced = isSpace(rune(s[len(s)-1]))
		return
	}

	for _, r := range s {
		if isSpace(r) {
			if !a.spaced {
				a.pendingSpace = true
			}
			continue
		}
		if a.pendingSpace && !a.lineStart {
			a.buf.WriteByte(' ')
		}
		a.pendingSpace = false
		a.lineStart = false
		a.spaced = false
		a.buf.WriteRune(r)
	}
}

func (a *accumulator) active() bool { return a.buf.Len() > 0 }

// take empties the buffer and returns its contents
func (a *accumulator) take() string {
	s := a.buf.String()
	a.buf.Reset()
	return s
}

// boundary marks the start or end of a block: a pending space is dropped
// and the next character starts a fresh line
func (a *accumulator) boundary() {
	a.pendingSpace = false
	a.lineStart = true
	a.spaced = false
}

// openInline settles a pending space before an inline object so the space
// stays outside it. An object opened at the start of a block is not content
// yet: leading whitespace inside it is still dropped.
func (a *accumulator) openInline() {
	if a.pendingSpace && !a.lineStart {
		a.buf.WriteByte(' ')
		a.spaced = true
	}
	a.pendingSpace = false
}

// closeInline marks the end of an inline object, which counts as content
func (a *accumulator) closeInline() {
	a.lineStart = false
	a.spaced = false
}

// CollapseSpace applies collapse mode to s as a complete block of text
func CollapseSpace(s string) string {
	a := newAccumulator()
	a.write(s, Collapse)
	return a.take()
}

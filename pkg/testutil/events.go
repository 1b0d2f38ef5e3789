package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/mdxaml/pkg/ast"
	"github.com/arthur-debert/mdxaml/pkg/render"
	"github.com/arthur-debert/mdxaml/pkg/xaml"
)

// Trace renders n and returns the recorded event stream
func Trace(t *testing.T, n ast.Node, opts ...render.Option) *xaml.Recorder {
	t.Helper()

	r, err := render.New(opts...)
	require.NoError(t, err)
	rec := xaml.NewRecorder()
	require.NoError(t, r.Render(rec, n))
	require.Equal(t, 0, rec.Depth(), "unbalanced stream:\n%s", rec)
	return rec
}

// AssertTrace compares the indented trace of n with want, which is dedented
// first
func AssertTrace(t *testing.T, want string, n ast.Node, opts ...render.Option) {
	t.Helper()

	got := Trace(t, n, opts...).String()
	assert.Equal(t, strings.TrimRight(Dedent(want), "\n"), got)
}

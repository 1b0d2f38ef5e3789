package render_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/mdxaml/pkg/errors"
	"github.com/arthur-debert/mdxaml/pkg/render"
	"github.com/arthur-debert/mdxaml/pkg/styles"
	"github.com/arthur-debert/mdxaml/pkg/xaml"
)

func newWriter(t *testing.T, sink xaml.Sink) *render.Writer {
	t.Helper()
	w, err := render.NewWriter(sink, xaml.DefaultSchema(), styles.DefaultResolver(), zerolog.Nop())
	require.NoError(t, err)
	return w
}

// values returns the Value payloads of the recorded events in order
func values(rec *xaml.Recorder) []string {
	var out []string
	for _, e := range rec.Events {
		if e.Kind == xaml.EventValue {
			out = append(out, e.Value)
		}
	}
	return out
}

// open starts typeName with its collection and returns a func closing both
func open(t *testing.T, w *render.Writer, typeName, collection string) func() {
	t.Helper()
	obj, err := w.BeginObject(typeName)
	require.NoError(t, err)
	coll, err := w.BeginCollection(collection)
	require.NoError(t, err)
	return func() {
		require.NoError(t, coll.Close())
		require.NoError(t, obj.Close())
	}
}

// failingSink rejects the first StartObject of the named type
type failingSink struct {
	xaml.Sink
	typeName string
}

func (f failingSink) StartObject(t *xaml.Type) error {
	if t.Name == f.typeName {
		return assert.AnError
	}
	return f.Sink.StartObject(t)
}

func TestWriterCollections(t *testing.T) {
	t.Run("empty_collection_leaves_no_trace", func(t *testing.T) {
		rec := xaml.NewRecorder()
		w := newWriter(t, rec)

		obj, err := w.BeginObject(xaml.TypeParagraph)
		require.NoError(t, err)
		coll, err := w.BeginCollection("Inlines")
		require.NoError(t, err)
		assert.Equal(t, render.StateMemberPending, w.State())

		require.NoError(t, coll.Close())
		assert.Equal(t, render.StateIdle, w.State())
		require.NoError(t, obj.Close())

		assert.Equal(t, []string{"StartObject Paragraph", "EndObject"}, rec.Lines())
	})

	t.Run("text_flushes_as_run", func(t *testing.T) {
		rec := xaml.NewRecorder()
		w := newWriter(t, rec)

		done := open(t, w, xaml.TypeParagraph, "Inlines")
		require.NoError(t, w.WriteText("  hello   world  "))
		assert.Equal(t, render.StateCollectingText, w.State())
		done()

		assert.Equal(t, []string{
			"StartObject Paragraph",
			"  StartMember Inlines",
			"    GetObject",
			"      StartMember x:Items",
			"        StartObject Run",
			"          StartMember Text",
			"            Value hello world",
			"          EndMember",
			"        EndObject",
			"      EndMember",
			"    EndObject",
			"  EndMember",
			"EndObject",
		}, rec.Lines())
		assert.Equal(t, 0, rec.Depth())
	})

	t.Run("nested_collection_materializes_parent_once", func(t *testing.T) {
		rec := xaml.NewRecorder()
		w := newWriter(t, rec)

		closeSection := open(t, w, xaml.TypeSection, "Blocks")
		closeFirst := open(t, w, xaml.TypeParagraph, "Inlines")
		require.NoError(t, w.WriteText("a"))
		closeFirst()
		closeSecond := open(t, w, xaml.TypeParagraph, "Inlines")
		closeSecond()
		closeSection()

		starts := 0
		for _, e := range rec.Events {
			if e.Kind == xaml.EventStartMember && e.Member.Name == "Blocks" {
				starts++
			}
		}
		assert.Equal(t, 1, starts)
		assert.Equal(t, 0, rec.Depth())
	})
}

func TestWriterText(t *testing.T) {
	t.Run("space_stays_outside_inline_objects", func(t *testing.T) {
		rec := xaml.NewRecorder()
		w := newWriter(t, rec)

		done := open(t, w, xaml.TypeParagraph, "Inlines")
		require.NoError(t, w.WriteText("a "))
		closeBold := open(t, w, xaml.TypeBold, "Inlines")
		require.NoError(t, w.WriteText(" b"))
		closeBold()
		require.NoError(t, w.WriteText(" c "))
		done()

		assert.Equal(t, []string{"a ", "b", " c"}, values(rec))
	})

	t.Run("first_inline_of_block_drops_leading_space", func(t *testing.T) {
		for _, typeName := range []string{xaml.TypeBold, xaml.TypeHyperlink} {
			t.Run(typeName, func(t *testing.T) {
				rec := xaml.NewRecorder()
				w := newWriter(t, rec)

				done := open(t, w, xaml.TypeParagraph, "Inlines")
				closeInline := open(t, w, typeName, "Inlines")
				require.NoError(t, w.WriteText(" x"))
				closeInline()
				require.NoError(t, w.WriteText(" y"))
				done()

				assert.Equal(t, []string{"x", " y"}, values(rec))
			})
		}
	})

	t.Run("block_boundary_drops_pending_space", func(t *testing.T) {
		rec := xaml.NewRecorder()
		w := newWriter(t, rec)

		closeSection := open(t, w, xaml.TypeSection, "Blocks")
		closeFirst := open(t, w, xaml.TypeParagraph, "Inlines")
		require.NoError(t, w.WriteText("x "))
		closeFirst()
		closeSecond := open(t, w, xaml.TypeParagraph, "Inlines")
		require.NoError(t, w.WriteText(" y"))
		closeSecond()
		closeSection()

		assert.Equal(t, []string{"x", "y"}, values(rec))
	})

	t.Run("fragments_join_with_single_space", func(t *testing.T) {
		rec := xaml.NewRecorder()
		w := newWriter(t, rec)

		done := open(t, w, xaml.TypeParagraph, "Inlines")
		for _, s := range []string{" one ", "\n", "  two", "three  "} {
			require.NoError(t, w.WriteText(s))
		}
		done()

		assert.Equal(t, []string{"one twothree"}, values(rec))
	})

	t.Run("preserve_keeps_whitespace", func(t *testing.T) {
		rec := xaml.NewRecorder()
		w := newWriter(t, rec)

		done := open(t, w, xaml.TypeParagraph, "Inlines")
		restore := w.Preserve()
		assert.Equal(t, render.Preserve, w.Mode())
		require.NoError(t, w.WriteText("  a  b "))
		restore()
		assert.Equal(t, render.Collapse, w.Mode())
		done()

		assert.Equal(t, []string{"  a  b "}, values(rec))
	})

	t.Run("line_break_starts_a_fresh_line", func(t *testing.T) {
		rec := xaml.NewRecorder()
		w := newWriter(t, rec)

		done := open(t, w, xaml.TypeParagraph, "Inlines")
		require.NoError(t, w.WriteText("a "))
		br, err := w.BeginObject(xaml.TypeLineBreak)
		require.NoError(t, err)
		require.NoError(t, br.Close())
		require.NoError(t, w.WriteText(" b"))
		done()

		assert.Equal(t, []string{"a", "b"}, values(rec))
	})

	t.Run("text_outside_collection_fails", func(t *testing.T) {
		w := newWriter(t, xaml.Discard)
		err := w.WriteText("x")
		assert.True(t, errors.IsErrorCode(err, errors.ErrStructural))
	})
}

func TestCollapseSpace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims_and_folds", "  foo   bar  ", "foo bar"},
		{"tabs_and_newlines", "a\t\n b", "a b"},
		{"only_space", " \n\t ", ""},
		{"nbsp_is_content", "a\u00a0\u00a0b", "a\u00a0\u00a0b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render.CollapseSpace(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, render.CollapseSpace(got))
		})
	}
}

func TestWriterErrors(t *testing.T) {
	t.Run("object_directly_inside_object", func(t *testing.T) {
		rec := xaml.NewRecorder()
		w := newWriter(t, rec)

		p, err := w.BeginObject(xaml.TypeParagraph)
		require.NoError(t, err)
		_, err = w.BeginObject(xaml.TypeRun)
		assert.True(t, errors.IsErrorCode(err, errors.ErrStructural))

		require.NoError(t, p.Close())
		assert.Equal(t, 0, w.Depth())
		assert.Equal(t, 0, rec.Depth())
	})

	t.Run("unknown_type_and_member", func(t *testing.T) {
		w := newWriter(t, xaml.Discard)

		_, err := w.BeginObject("Marquee")
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownType))

		p, err := w.BeginObject(xaml.TypeParagraph)
		require.NoError(t, err)
		_, err = w.BeginMember("Blink")
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownMember))
		require.NoError(t, p.Close())
	})

	t.Run("member_kind_mismatch", func(t *testing.T) {
		w := newWriter(t, xaml.Discard)

		p, err := w.BeginObject(xaml.TypeParagraph)
		require.NoError(t, err)
		_, err = w.BeginMember("Inlines")
		assert.True(t, errors.IsErrorCode(err, errors.ErrStructural))
		_, err = w.BeginCollection("Tag")
		assert.True(t, errors.IsErrorCode(err, errors.ErrStructural))
		require.NoError(t, p.Close())
	})

	t.Run("scalar_member_takes_one_value", func(t *testing.T) {
		w := newWriter(t, xaml.Discard)

		p, err := w.BeginObject(xaml.TypeParagraph)
		require.NoError(t, err)
		m, err := w.BeginMember("Tag")
		require.NoError(t, err)
		require.NoError(t, w.WriteValue("a"))
		err = w.WriteValue("b")
		assert.True(t, errors.IsErrorCode(err, errors.ErrStructural))
		require.NoError(t, m.Close())
		require.NoError(t, p.Close())
	})

	t.Run("leaked_scopes_are_unwound", func(t *testing.T) {
		rec := xaml.NewRecorder()
		w := newWriter(t, rec)

		p, err := w.BeginObject(xaml.TypeParagraph)
		require.NoError(t, err)
		_, err = w.BeginCollection("Inlines")
		require.NoError(t, err)
		_, err = w.BeginObject(xaml.TypeBold)
		require.NoError(t, err)

		err = p.Close()
		assert.True(t, errors.IsErrorCode(err, errors.ErrStructural))
		assert.Equal(t, 0, w.Depth())
		assert.Equal(t, 0, rec.Depth())
	})

	t.Run("end_runs_once", func(t *testing.T) {
		rec := xaml.NewRecorder()
		w := newWriter(t, rec)

		p, err := w.BeginObject(xaml.TypeParagraph)
		require.NoError(t, err)
		require.NoError(t, p.Close())
		p.End(nil)
		assert.True(t, p.Released())
		assert.Len(t, rec.Events, 2)
	})

	t.Run("sink_failure_is_sticky", func(t *testing.T) {
		w := newWriter(t, failingSink{Sink: xaml.Discard, typeName: xaml.TypeRun})

		p, err := w.BeginObject(xaml.TypeParagraph)
		require.NoError(t, err)
		coll, err := w.BeginCollection("Inlines")
		require.NoError(t, err)
		require.NoError(t, w.WriteText("boom"))

		err = coll.Close()
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSink))
		assert.True(t, errors.IsFatal(err))

		_, err = w.BeginMember("Tag")
		assert.True(t, errors.IsErrorCode(err, errors.ErrSink))
		p.End(nil)
	})
}

func TestWriterMembers(t *testing.T) {
	t.Run("style_reference", func(t *testing.T) {
		rec := xaml.NewRecorder()
		w := newWriter(t, rec)

		span, err := w.BeginObject(xaml.TypeSpan)
		require.NoError(t, err)
		require.NoError(t, w.WriteStyleReference("", styles.CodeStyleKey))
		require.NoError(t, span.Close())

		assert.Equal(t, []string{
			"StartObject Span",
			"  StartMember Style",
			"    StartObject StaticResource",
			"      StartMember x:_PositionalParameters",
			"        StartObject x:Static",
			"          StartMember x:_PositionalParameters",
			"            Value markdig:Styles.CodeStyleKey",
			"          EndMember",
			"        EndObject",
			"      EndMember",
			"    EndObject",
			"  EndMember",
			"EndObject",
		}, rec.Lines())
	})

	t.Run("scalar_formatting", func(t *testing.T) {
		rec := xaml.NewRecorder()
		w := newWriter(t, rec)

		cell, err := w.BeginObject(xaml.TypeTableCell)
		require.NoError(t, err)
		require.NoError(t, w.WriteMember("ColumnSpan", 2))
		require.NoError(t, w.WriteMember("Tag", true))
		require.NoError(t, w.WriteMember("ToolTip", nil))
		require.NoError(t, cell.Close())

		assert.Equal(t, []string{"2", "True"}, values(rec))
	})

	t.Run("namespace_precedes_root", func(t *testing.T) {
		rec := xaml.NewRecorder()
		w := newWriter(t, rec)

		require.NoError(t, w.Namespace("x", xaml.LanguageNamespace))
		doc, err := w.BeginObject(xaml.TypeFlowDocument)
		require.NoError(t, err)
		require.NoError(t, doc.Close())

		require.Len(t, rec.Events, 3)
		assert.Equal(t, xaml.EventNamespace, rec.Events[0].Kind)
		assert.Equal(t, "x", rec.Events[0].Prefix)
	})
}

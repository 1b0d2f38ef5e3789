package xaml_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/mdxaml/pkg/errors"
	"github.com/arthur-debert/mdxaml/pkg/xaml"
)

func mustType(t *testing.T, s *xaml.Schema, name string) *xaml.Type {
	t.Helper()
	ty, err := s.Type(name)
	require.NoError(t, err)
	return ty
}

func mustMember(t *testing.T, ty *xaml.Type, name string) *xaml.Member {
	t.Helper()
	m, err := ty.Member(name)
	require.NoError(t, err)
	return m
}

// styledParagraph emits Paragraph{Style=StaticResource(x:Static key), Inlines=[Run "hi"]}
func styledParagraph(t *testing.T, s *xaml.Schema, sink xaml.Sink) {
	t.Helper()
	para := mustType(t, s, xaml.TypeParagraph)
	res := mustType(t, s, xaml.TypeStaticResource)
	static := mustType(t, s, xaml.TypeStatic)
	run := mustType(t, s, xaml.TypeRun)

	steps := []func() error{
		func() error { return sink.StartObject(para) },
		func() error { return sink.StartMember(mustMember(t, para, "Style")) },
		func() error { return sink.StartObject(res) },
		func() error { return sink.StartMember(xaml.PositionalParameters()) },
		func() error { return sink.StartObject(static) },
		func() error { return sink.StartMember(xaml.PositionalParameters()) },
		func() error { return sink.Value("markdig:Styles.Heading1StyleKey") },
		sink.EndMember,
		sink.EndObject,
		sink.EndMember,
		sink.EndObject,
		sink.EndMember,
		func() error { return sink.StartMember(mustMember(t, para, "Inlines")) },
		sink.GetObject,
		func() error { return sink.StartMember(xaml.Items()) },
		func() error { return sink.StartObject(run) },
		func() error { return sink.StartMember(mustMember(t, run, "Text")) },
		func() error { return sink.Value("hi") },
		sink.EndMember,
		sink.EndObject,
		sink.EndMember,
		sink.EndObject,
		sink.EndMember,
		sink.EndObject,
	}
	for _, step := range steps {
		require.NoError(t, step())
	}
}

func TestSchema(t *testing.T) {
	s := xaml.DefaultSchema()

	t.Run("known_types_resolve", func(t *testing.T) {
		for _, name := range []string{
			xaml.TypeFlowDocument, xaml.TypeSection, xaml.TypeParagraph, xaml.TypeList,
			xaml.TypeListItem, xaml.TypeTable, xaml.TypeTableColumn, xaml.TypeTableRowGroup,
			xaml.TypeTableRow, xaml.TypeTableCell, xaml.TypeRun, xaml.TypeSpan, xaml.TypeBold,
			xaml.TypeItalic, xaml.TypeUnderline, xaml.TypeHyperlink, xaml.TypeImage,
			xaml.TypeLineBreak, xaml.TypeInlineUI, xaml.TypeBlockUI, xaml.TypeCheckBox,
			xaml.TypeStaticResource, xaml.TypeStatic,
		} {
			_, err := s.Type(name)
			assert.NoError(t, err, name)
		}
	})

	t.Run("unknown_type_is_fatal", func(t *testing.T) {
		_, err := s.Type("Canvas")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownType))
		assert.True(t, errors.IsFatal(err))
	})

	t.Run("unknown_member_is_fatal", func(t *testing.T) {
		_, err := mustType(t, s, xaml.TypeRun).Member("Blocks")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownMember))
		assert.True(t, errors.IsFatal(err))
	})

	t.Run("directives_resolve_on_every_type", func(t *testing.T) {
		m := mustMember(t, mustType(t, s, xaml.TypeRun), xaml.MemberItems)
		assert.Same(t, xaml.Items(), m)
		m = mustMember(t, mustType(t, s, xaml.TypeStatic), xaml.MemberPositional)
		assert.Same(t, xaml.PositionalParameters(), m)
	})

	t.Run("flags", func(t *testing.T) {
		assert.True(t, mustType(t, s, xaml.TypeParagraph).Block)
		assert.True(t, mustType(t, s, xaml.TypeBold).Inline)
		assert.True(t, mustType(t, s, xaml.TypeLineBreak).LineBreak)
		assert.True(t, mustType(t, s, xaml.TypeStaticResource).MarkupExtension)
		assert.Equal(t, "x:Static", mustType(t, s, xaml.TypeStatic).QualifiedName())
		assert.Equal(t, "Blocks", mustType(t, s, xaml.TypeFlowDocument).Content().Name)
		assert.True(t, mustMember(t, mustType(t, s, xaml.TypeTable), "Columns").Collection)
	})
}

func TestRecorder(t *testing.T) {
	s := xaml.DefaultSchema()

	t.Run("trace_is_indented", func(t *testing.T) {
		rec := xaml.NewRecorder()
		styledParagraph(t, s, rec)

		lines := rec.Lines()
		assert.Equal(t, "StartObject Paragraph", lines[0])
		assert.Equal(t, "  StartMember Style", lines[1])
		assert.Equal(t, "    StartObject StaticResource", lines[2])
		assert.Equal(t, "EndObject", lines[len(lines)-1])
		assert.Contains(t, rec.String(), "Value markdig:Styles.Heading1StyleKey")
		assert.Equal(t, 0, rec.Depth())
	})

	t.Run("replay_reproduces_events", func(t *testing.T) {
		rec := xaml.NewRecorder()
		styledParagraph(t, s, rec)

		copied := xaml.NewRecorder()
		require.NoError(t, rec.Replay(copied))
		assert.Equal(t, rec.Events, copied.Events)
	})

	t.Run("unknown_event_kind", func(t *testing.T) {
		err := xaml.Event{Kind: xaml.EventKind(99)}.Emit(xaml.Discard)
		assert.True(t, errors.IsErrorCode(err, errors.ErrStructural))
	})

	t.Run("tee_feeds_every_sink", func(t *testing.T) {
		a, b := xaml.NewRecorder(), xaml.NewRecorder()
		styledParagraph(t, s, xaml.Tee(a, b))
		assert.Equal(t, a.Events, b.Events)
		assert.NotEmpty(t, a.Events)
	})
}

func TestBuilder(t *testing.T) {
	s := xaml.DefaultSchema()

	t.Run("builds_graph", func(t *testing.T) {
		b := xaml.NewBuilder()
		styledParagraph(t, s, b)

		root, err := b.Root()
		require.NoError(t, err)
		assert.Equal(t, xaml.TypeParagraph, root.Type.Name)

		style := root.Property("Style")
		require.NotNil(t, style)
		require.Len(t, style.Items, 1)
		assert.Equal(t, xaml.TypeStaticResource, style.Items[0].Type.Name)

		runs := root.Children("Inlines")
		require.Len(t, runs, 1)
		text, ok := runs[0].Scalar("Text")
		assert.True(t, ok)
		assert.Equal(t, "hi", text)
	})

	t.Run("rejects_unbalanced_end", func(t *testing.T) {
		b := xaml.NewBuilder()
		err := b.EndObject()
		assert.True(t, errors.IsErrorCode(err, errors.ErrStructural))
		assert.True(t, errors.IsErrorCode(b.EndMember(), errors.ErrStructural))
	})

	t.Run("rejects_object_directly_inside_object", func(t *testing.T) {
		b := xaml.NewBuilder()
		para := mustType(t, s, xaml.TypeParagraph)
		require.NoError(t, b.StartObject(para))
		err := b.StartObject(para)
		assert.True(t, errors.IsErrorCode(err, errors.ErrStructural))
	})

	t.Run("incomplete_document", func(t *testing.T) {
		b := xaml.NewBuilder()
		require.NoError(t, b.StartObject(mustType(t, s, xaml.TypeParagraph)))
		_, err := b.Root()
		assert.True(t, errors.IsErrorCode(err, errors.ErrStructural))
	})

	t.Run("namespaces_attach_to_next_object", func(t *testing.T) {
		b := xaml.NewBuilder()
		require.NoError(t, b.Namespace("x", xaml.LanguageNamespace))
		require.NoError(t, b.StartObject(mustType(t, s, xaml.TypeFlowDocument)))
		require.NoError(t, b.EndObject())
		root, err := b.Root()
		require.NoError(t, err)
		assert.Equal(t, []xaml.Namespace{{Prefix: "x", URI: xaml.LanguageNamespace}}, root.Namespaces)
	})
}

func TestEncoder(t *testing.T) {
	s := xaml.DefaultSchema()

	t.Run("attributes_and_extensions", func(t *testing.T) {
		b := xaml.NewBuilder()
		styledParagraph(t, s, b)

		out, err := xaml.EncodeToString(b.Roots()...)
		require.NoError(t, err)
		assert.Contains(t, out, `<Paragraph xmlns="`+xaml.PresentationNamespace+`"`)
		assert.Contains(t, out, `Style="{StaticResource {x:Static markdig:Styles.Heading1StyleKey}}"`)
		assert.Contains(t, out, `<Run Text="hi"/>`)
	})

	t.Run("property_elements_for_non_content_collections", func(t *testing.T) {
		events, err := xaml.ParseFragment(s, `<Table><Table.Columns><TableColumn Width="1*"/></Table.Columns><TableRowGroup/></Table>`)
		require.NoError(t, err)
		b := xaml.NewBuilder()
		require.NoError(t, (&xaml.Recorder{Events: events}).Replay(b))

		out, err := xaml.EncodeToString(b.Roots()...)
		require.NoError(t, err)
		assert.Contains(t, out, "<Table.Columns>")
		assert.Contains(t, out, `<TableColumn Width="1*"/>`)
		assert.NotContains(t, out, "<Table.RowGroups>")
	})

	t.Run("inline_content_is_not_indented", func(t *testing.T) {
		events, err := xaml.ParseFragment(s, `<Paragraph><Run Text="a"/><Bold><Run Text="b"/></Bold></Paragraph>`)
		require.NoError(t, err)
		b := xaml.NewBuilder()
		require.NoError(t, (&xaml.Recorder{Events: events}).Replay(b))

		out, err := xaml.EncodeToString(b.Roots()...)
		require.NoError(t, err)
		assert.Contains(t, out, `<Run Text="a"/><Bold><Run Text="b"/></Bold>`)
	})

	t.Run("literal_braces_are_escaped", func(t *testing.T) {
		events, err := xaml.ParseFragment(s, `<Hyperlink ToolTip="{}{x:Null}"><Run Text="{}{Binding Foo}"/></Hyperlink>`)
		require.NoError(t, err)
		b := xaml.NewBuilder()
		require.NoError(t, (&xaml.Recorder{Events: events}).Replay(b))

		out, err := xaml.EncodeToString(b.Roots()...)
		require.NoError(t, err)
		assert.Contains(t, out, `ToolTip="{}{x:Null}"`)
		assert.Contains(t, out, `<Run Text="{}{Binding Foo}"/>`)
	})

	t.Run("extension_arguments_are_quoted", func(t *testing.T) {
		res := mustType(t, s, xaml.TypeStaticResource)
		run := mustType(t, s, xaml.TypeRun)
		b := xaml.NewBuilder()
		steps := []func() error{
			func() error { return b.StartObject(run) },
			func() error { return b.StartMember(mustMember(t, run, "Tag")) },
			func() error { return b.StartObject(res) },
			func() error { return b.StartMember(xaml.PositionalParameters()) },
			func() error { return b.Value("a,b}") },
			b.EndMember,
			b.EndObject,
			b.EndMember,
			b.EndObject,
		}
		for _, step := range steps {
			require.NoError(t, step())
		}

		out, err := xaml.EncodeToString(b.Roots()...)
		require.NoError(t, err)
		assert.Contains(t, out, `Tag="{StaticResource 'a,b}'}"`)
	})

	t.Run("yaml_export", func(t *testing.T) {
		b := xaml.NewBuilder()
		styledParagraph(t, s, b)

		data, err := xaml.MarshalGraphYAML(b.Roots()...)
		require.NoError(t, err)

		var decoded map[string]interface{}
		require.NoError(t, yaml.Unmarshal(data, &decoded))
		assert.Equal(t, "Paragraph", decoded["type"])
		assert.Equal(t, "{StaticResource {x:Static markdig:Styles.Heading1StyleKey}}", decoded["Style"])
		inlines, ok := decoded["Inlines"].([]interface{})
		require.True(t, ok)
		assert.Len(t, inlines, 1)
	})
}

func TestParseFragment(t *testing.T) {
	s := xaml.DefaultSchema()

	kinds := func(events []xaml.Event) string {
		parts := make([]string, len(events))
		for i, e := range events {
			parts[i] = e.String()
		}
		return strings.Join(parts, "|")
	}

	t.Run("element_with_attribute_and_text", func(t *testing.T) {
		events, err := xaml.ParseFragment(s, `<Bold Tag="t">strong  words</Bold>`)
		require.NoError(t, err)
		assert.Equal(t,
			"StartObject Bold|StartMember Tag|Value t|EndMember|"+
				"StartMember Inlines|GetObject|StartMember x:Items|"+
				"StartObject Run|StartMember Text|Value strong words|EndMember|EndObject|"+
				"EndMember|EndObject|EndMember|EndObject",
			kinds(events))
	})

	t.Run("namespace_declarations_precede_object", func(t *testing.T) {
		events, err := xaml.ParseFragment(s, `<Span xmlns:x="`+xaml.LanguageNamespace+`"/>`)
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, xaml.EventNamespace, events[0].Kind)
		assert.Equal(t, "x", events[0].Prefix)
		assert.Equal(t, xaml.EventStartObject, events[1].Kind)
	})

	t.Run("top_level_text_becomes_run", func(t *testing.T) {
		events, err := xaml.ParseFragment(s, `plain`)
		require.NoError(t, err)
		assert.Equal(t, "StartObject Run|StartMember Text|Value plain|EndMember|EndObject", kinds(events))
	})

	t.Run("comments_are_dropped", func(t *testing.T) {
		events, err := xaml.ParseFragment(s, `<!-- note --><LineBreak/>`)
		require.NoError(t, err)
		assert.Equal(t, "StartObject LineBreak|EndObject", kinds(events))
	})

	t.Run("processing_instruction_is_fatal", func(t *testing.T) {
		_, err := xaml.ParseFragment(s, `<?xml version="1.0"?><LineBreak/>`)
		assert.True(t, errors.IsErrorCode(err, errors.ErrStructural))
	})

	t.Run("unknown_type_is_fatal", func(t *testing.T) {
		_, err := xaml.ParseFragment(s, `<Canvas/>`)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownType))
	})

	t.Run("escaped_brace_value_is_unescaped", func(t *testing.T) {
		events, err := xaml.ParseFragment(s, `<Run Text="{}{literal}"/>`)
		require.NoError(t, err)
		assert.Equal(t, "StartObject Run|StartMember Text|Value {literal}|EndMember|EndObject", kinds(events))
	})

	t.Run("markup_extension_attribute_is_a_parse_error", func(t *testing.T) {
		_, err := xaml.ParseFragment(s, `<Run Text="{Binding Foo}"/>`)
		assert.True(t, errors.IsErrorCode(err, errors.ErrParse))
	})

	t.Run("malformed_fragment_is_a_parse_error", func(t *testing.T) {
		_, err := xaml.ParseFragment(s, `<Bold Tag=>x</Bold>`)
		assert.True(t, errors.IsErrorCode(err, errors.ErrParse))
		assert.False(t, errors.IsFatal(err))
	})
}

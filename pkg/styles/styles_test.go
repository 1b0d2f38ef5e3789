package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/mdxaml/pkg/errors"
)

func TestHeadingKey(t *testing.T) {
	tests := []struct {
		name  string
		level int
		want  Key
	}{
		{"level_1", 1, Heading1StyleKey},
		{"level_2", 2, Heading2StyleKey},
		{"level_5", 5, Heading5StyleKey},
		{"level_6", 6, Heading6StyleKey},
		{"level_above_6_clamps", 9, Heading6StyleKey},
		{"level_zero_clamps", 0, Heading6StyleKey},
		{"negative_level_clamps", -1, Heading6StyleKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HeadingKey(tt.level))
		})
	}

	t.Run("levels_1_to_5_are_distinct", func(t *testing.T) {
		seen := map[Key]bool{}
		for level := 1; level <= 6; level++ {
			seen[HeadingKey(level)] = true
		}
		assert.Len(t, seen, 6)
	})
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Len(t, keys, 22)
	for _, k := range keys {
		assert.True(t, k.Valid(), k)
	}
	assert.False(t, Key("NopeStyleKey").Valid())

	// Keys hands out a copy
	keys[0] = "changed"
	assert.Equal(t, CodeStyleKey, Keys()[0])
}

func TestResolver(t *testing.T) {
	t.Run("default_symbol", func(t *testing.T) {
		r := DefaultResolver()
		assert.Equal(t, "markdig:Styles.DocumentStyleKey", r.Symbol(DocumentStyleKey))
		assert.NoError(t, r.Validate())
	})

	t.Run("custom_binding", func(t *testing.T) {
		r := Resolver{Prefix: "theme", Class: "Keys", Namespace: "clr-namespace:My.Theme"}
		assert.Equal(t, "theme:Keys.CodeStyleKey", r.Symbol(CodeStyleKey))
	})

	t.Run("invalid_bindings", func(t *testing.T) {
		for _, r := range []Resolver{
			{Prefix: "", Class: "Styles", Namespace: "ns"},
			{Prefix: "a:b", Class: "Styles", Namespace: "ns"},
			{Prefix: "markdig", Class: "My.Styles", Namespace: "ns"},
			{Prefix: "markdig", Class: "Styles", Namespace: ""},
		} {
			err := r.Validate()
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "%+v", r)
		}
	})
}

package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/glyphc/internal/domain/entities"
)

func newTestResolver() (*GlyphResolver, *entities.SelectionSet) {
	sel := entities.NewSelectionSet()
	return NewGlyphResolver(testCatalog(), sel), sel
}

func Test_GlyphResolver_Resolve_EmptyAndImagePassThrough(t *testing.T) {
	r, sel := newTestResolver()

	got, err := r.Resolve(nil, "x")
	require.NoError(t, err)
	assert.Equal(t, GlyphKindEmpty, got.Kind)
	assert.Nil(t, got.Operand())

	got, err = r.Resolve(entities.ImageGlyph{Handle: "logo"}, "x")
	require.NoError(t, err)
	assert.Equal(t, GlyphKindImage, got.Kind)
	assert.Equal(t, entities.RefOperand{ID: "logo", External: true}, got.Operand())

	assert.Equal(t, 0, sel.Len(), "image and empty glyphs never touch the selection")
}

func Test_GlyphResolver_Resolve_IconName(t *testing.T) {
	r, sel := newTestResolver()

	got, err := r.Resolve(entities.IconGlyph{Name: "mdi:bell"}, "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"bell"}, got.Names)
	assert.Equal(t, []rune{0xF0A0}, got.Codepoints)
	assert.True(t, sel.Contains("bell"))
}

func Test_GlyphResolver_Resolve_IconNameIdempotent(t *testing.T) {
	r, sel := newTestResolver()

	for i := 0; i < 5; i++ {
		_, err := r.Resolve(entities.IconGlyph{Name: "bell"}, "x")
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"bell"}, sel.Sorted())
}

func Test_GlyphResolver_Resolve_UnknownIcon(t *testing.T) {
	r, sel := newTestResolver()

	_, err := r.Resolve(entities.IconGlyph{Name: "bel"}, "groups[0] (main)")
	require.Error(t, err)

	var unknown *entities.UnknownIconError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "bel", unknown.Name)
	assert.Equal(t, "groups[0] (main)", unknown.Location)
	assert.Equal(t, 0, sel.Len())
}

func Test_GlyphResolver_Resolve_IconList(t *testing.T) {
	r, sel := newTestResolver()

	got, err := r.Resolve(entities.IconListGlyph{Names: []string{"walk", "run", "walk"}}, "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"walk", "run", "walk"}, got.Names, "list order is animation order")
	assert.Equal(t, []rune{0xF0A1, 0xF0A2, 0xF0A1}, got.Codepoints)
	assert.Equal(t, []string{"run", "walk"}, sel.Sorted())
}

func Test_GlyphResolver_Resolve_IconListAbortsOnFirstBadElement(t *testing.T) {
	r, sel := newTestResolver()

	_, err := r.Resolve(entities.IconListGlyph{Names: []string{"walk", "nope", "zap"}}, "x")

	var unknown *entities.UnknownIconError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "nope", unknown.Name)
	assert.Equal(t, 0, sel.Len(), "a failed list selects nothing")
}

func Test_GlyphResolver_Resolve_WildcardUsesSelectionNotCatalog(t *testing.T) {
	r, sel := newTestResolver()
	_, err := r.Resolve(entities.IconGlyph{Name: "bell"}, "x")
	require.NoError(t, err)
	_, err = r.Resolve(entities.IconGlyph{Name: "alarm"}, "x")
	require.NoError(t, err)

	got, err := r.Resolve(entities.WildcardGlyph{}, "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"alarm", "bell"}, got.Names)
	assert.Equal(t, []rune{0xF0A3, 0xF0A0}, got.Codepoints)
	assert.Equal(t, 2, sel.Len())
}

func Test_GlyphResolver_Resolve_WildcardMarkerAsIconName(t *testing.T) {
	r, _ := newTestResolver()
	_, err := r.Resolve(entities.IconGlyph{Name: "bell"}, "x")
	require.NoError(t, err)

	got, err := r.Resolve(entities.IconGlyph{Name: "*"}, "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"bell"}, got.Names)
}

func Test_GlyphResolver_Resolve_WildcardWithEmptySelection(t *testing.T) {
	r, _ := newTestResolver()

	got, err := r.Resolve(entities.WildcardGlyph{}, "x")
	require.NoError(t, err)
	assert.Equal(t, GlyphKindIcons, got.Kind)
	assert.Empty(t, got.Names)
	assert.Empty(t, got.Codepoints)
}

func Test_IsDeferred(t *testing.T) {
	assert.True(t, IsDeferred(entities.WildcardGlyph{}))
	assert.True(t, IsDeferred(entities.IconGlyph{Name: "*"}))
	assert.False(t, IsDeferred(entities.IconGlyph{Name: "bell"}))
	assert.False(t, IsDeferred(nil))
	assert.False(t, IsDeferred(entities.IconListGlyph{Names: []string{"*"}}))
}

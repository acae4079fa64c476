package sphinxql

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindSelect:   "select",
		KindInsert:   "insert",
		KindReplace:  "replace",
		KindUpdate:   "update",
		KindDelete:   "delete",
		KindShow:     "show",
		KindTruncate: "truncate",
		Kind(0):      "kind(0)",
		Kind(99):     "kind(99)",
	}
	for k, want := range tests {
		assert.Equal(t, want, k.String())
	}
}

func TestPlatformDecorators(t *testing.T) {
	p := NewPlatform()
	r, ok := p.Decorator(KindSelect)
	require.True(t, ok)
	assert.IsType(t, SelectDecorator{}, r)

	for _, k := range []Kind{KindInsert, KindReplace, KindUpdate, KindDelete, KindShow, KindTruncate} {
		_, ok := p.Decorator(k)
		assert.False(t, ok, k.String())
	}
}

func TestPlatformRender(t *testing.T) {
	p := NewPlatform()

	_, _, err := p.Render(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil statement")

	s := Select("id").From("products").Match("phone")
	query, args, err := p.Render(s)
	require.NoError(t, err)
	wantQuery, wantArgs := s.Query()
	assert.Equal(t, wantQuery, query)
	assert.Equal(t, wantArgs, args)
	assert.Equal(t, "SELECT `id` FROM `products` WHERE MATCH(?)", query)
}

func TestRenderFunc(t *testing.T) {
	var got Statement
	r := RenderFunc(func(stmt Statement) (string, []any, error) {
		got = stmt
		return "SHOW META", nil, nil
	})
	stmt := Show(ShowMeta)
	query, args, err := r.Render(stmt)
	require.NoError(t, err)
	assert.Equal(t, "SHOW META", query)
	assert.Nil(t, args)
	assert.Same(t, stmt, got)

	errBoom := errors.New("boom")
	_, _, err = RenderFunc(func(Statement) (string, []any, error) { return "", nil, errBoom }).Render(stmt)
	assert.ErrorIs(t, err, errBoom)
}

func TestSQL(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s := New()
		require.NotNil(t, s.Platform())
		assert.Empty(t, s.DefaultIndex())
		assert.Empty(t, s.Insert("").Index())
		assert.ErrorIs(t, s.Select().Err(), ErrMissingIndex)
		assert.ErrorIs(t, s.Select("").Err(), ErrMissingIndex)
		assert.ErrorIs(t, s.Select("a", "").Err(), ErrMissingIndex)
	})
	t.Run("default_index", func(t *testing.T) {
		s := New(WithDefaultIndex("products"))
		assert.Equal(t, "products", s.DefaultIndex())
		assert.Equal(t, "products", s.Insert("").Index())
		assert.Equal(t, "products", s.Replace("").Index())
		assert.Equal(t, "products", s.Update("").Index())
		assert.Equal(t, "products", s.Delete("").Index())
		assert.Equal(t, "products", s.Truncate("").Index())
		assert.Equal(t, "products", s.Select().Index())
		assert.Equal(t, "other", s.Insert("other").Index())
		assert.Equal(t, "a,b", s.Select("a", "b").Index())
		assert.Equal(t, "products", s.Select("").Index())
		assert.Equal(t, "a,products", s.Select("a", "").Index())
		query, _, err := s.Render(s.Select(""))
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM `products`", query)
		assert.Equal(t, KindReplace, s.Replace("").Kind())
	})
	t.Run("platform", func(t *testing.T) {
		p := NewPlatform()
		s := New(WithPlatform(p))
		assert.Same(t, p, s.Platform())
		assert.NotNil(t, New(WithPlatform(nil)).Platform())
	})
	t.Run("render", func(t *testing.T) {
		s := New(WithDefaultIndex("products"))
		query, args, err := s.Render(s.Delete("").Where(Literal("id = 7")))
		require.NoError(t, err)
		assert.Equal(t, "DELETE FROM `products` WHERE id = 7", query)
		assert.Empty(t, args)

		query, _, err = s.Render(s.Show(ShowStatus))
		require.NoError(t, err)
		assert.Equal(t, "SHOW STATUS", query)
	})
}

/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package boltsource

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voedger/charcoal/pkg/expression"
	"github.com/voedger/charcoal/pkg/ilog"
	"github.com/voedger/charcoal/pkg/metadata"
	"github.com/voedger/charcoal/pkg/model"
	"github.com/voedger/charcoal/pkg/property"
	"github.com/voedger/charcoal/pkg/source"
	"github.com/voedger/charcoal/pkg/translator"
)

const articleYAML = `
ident: article
properties:
  id:
    type: id
  title:
    type: string
    l10n: true
  tags:
    type: string
    multiple: true
  views:
    type: integer
  author:
    type: object
    obj_type: user
    pattern: "{{name}}"
`

const userYAML = `
ident: user
table: users
properties:
  id:
    type: id
  name:
    type: string
`

type testEnv struct {
	st     *Storage
	models model.IFactory
}

func newTestEnv(t *testing.T) *testEnv {
	rec := ilog.NewRecorder()
	st, err := Open(Params{Path: filepath.Join(t.TempDir(), "charcoal.db"), Logger: rec})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, st.Close()) })

	meta := metadata.Provide(nil)
	for _, y := range []string{articleYAML, userYAML} {
		m, err := metadata.Parse("", []byte(y))
		require.NoError(t, err)
		meta.Add(m)
	}
	models := model.Provide(model.Params{
		Metadata: meta,
		Properties: property.Deps{
			Logger:     rec,
			Translator: translator.MustProvide(translator.Params{Locales: []string{"en", "fr"}}),
		},
		Collections: source.Collections(st.Factory()),
	})
	return &testEnv{st: st, models: models}
}

func (e *testEnv) source(t *testing.T, objType string) *BoltSource {
	m, err := e.models.New(objType)
	require.NoError(t, err)
	s := e.st.NewSource()
	s.SetModel(m)
	return s
}

func (e *testEnv) save(t *testing.T, objType string, data map[string]any) *model.Model {
	s := e.source(t, objType)
	m, _ := s.Model()
	item, err := m.New()
	require.NoError(t, err)
	require.NoError(t, item.SetData(data))
	require.NoError(t, s.SaveItem(context.Background(), item))
	return item
}

func TestBasicUsage(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	env := newTestEnv(t)

	alice := env.save(t, "user", map[string]any{"name": "Alice"})
	require.Equal(int64(1), alice.Id())

	a1 := env.save(t, "article", map[string]any{
		"title":  map[string]any{"en": "Hello", "fr": "Bonjour"},
		"tags":   []any{"go", "db"},
		"views":  10,
		"author": alice.Id(),
	})
	env.save(t, "article", map[string]any{"title": "Second", "tags": "db", "views": 5})
	env.save(t, "article", map[string]any{"title": "Third", "tags": "go", "views": 30})
	require.Equal(int64(1), a1.Id(), "every table has own sequence")

	tables, err := env.st.Tables()
	require.NoError(err)
	require.Equal([]string{"article", "users"}, tables)

	t.Run("load item", func(t *testing.T) {
		s := env.source(t, "article")
		item, err := s.LoadItem(ctx, 1, nil)
		require.NoError(err)
		require.Equal(int64(1), item.Id())
		require.Equal(map[string]any{"en": "Hello", "fr": "Bonjour"}, item.Get("title"))
		require.Equal([]any{"go", "db"}, item.Get("tags"))
		require.Equal(int64(10), item.Get("views"))

		_, err = s.LoadItem(ctx, 42, nil)
		require.ErrorIs(err, source.ErrNotFoundError)
	})

	t.Run("load item from key", func(t *testing.T) {
		s := env.source(t, "article")
		item, err := s.LoadItemFromKey(ctx, "title", "Third", nil)
		require.NoError(err)
		require.Equal(int64(3), item.Id())

		_, err = s.LoadItemFromKey(ctx, "title", "Bonjour", nil)
		require.ErrorIs(err, source.ErrNotFoundError, "current locale is searched")

		_, err = s.LoadItemFromKey(ctx, "unknown", 1, nil)
		require.ErrorIs(err, source.ErrInvalidArgumentError)
	})

	t.Run("load items", func(t *testing.T) {
		s := env.source(t, "article")
		f, err := expression.ParseFilter("tags = 'go'")
		require.NoError(err)
		require.NoError(s.AddFilter(f))
		o, err := expression.ParseOrder("views desc")
		require.NoError(err)
		require.NoError(s.AddOrder(o))

		items, err := s.LoadItems(ctx, nil)
		require.NoError(err)
		require.Len(items, 2)
		require.Equal(int64(3), items[0].Id())
		require.Equal(int64(1), items[1].Id())

		require.NoError(s.SetNumPerPage(1))
		require.NoError(s.SetPage(2))
		items, err = s.LoadItems(ctx, nil)
		require.NoError(err)
		require.Len(items, 1)
		require.Equal(int64(1), items[0].Id())
	})

	t.Run("fetched properties", func(t *testing.T) {
		s := env.source(t, "article")
		s.SetProperties("views")
		items, err := s.LoadItems(ctx, nil)
		require.NoError(err)
		require.Len(items, 3)
		require.Equal(int64(10), items[0].Get("views"))
		require.Nil(items[0].Get("tags"))
	})

	t.Run("object property through collections", func(t *testing.T) {
		item, err := env.source(t, "article").LoadItem(ctx, 1, nil)
		require.NoError(err)
		require.Equal("Alice", item.Display("author"))

		p, err := item.P("author")
		require.NoError(err)
		sp := p.(property.ISelectable)
		require.True(sp.HasChoice("1"))
	})

	t.Run("update", func(t *testing.T) {
		s := env.source(t, "article")
		item, err := s.LoadItem(ctx, 2, nil)
		require.NoError(err)
		require.NoError(item.Set("views", 6))
		require.NoError(item.Set("tags", "changed"))
		require.NoError(s.UpdateItem(ctx, item, "views"))

		item, err = s.LoadItem(ctx, 2, nil)
		require.NoError(err)
		require.Equal(int64(6), item.Get("views"))
		require.Equal([]any{"db"}, item.Get("tags"), "not listed properties are kept")

		missing, err := item.New()
		require.NoError(err)
		require.ErrorIs(s.UpdateItem(ctx, missing), source.ErrInvalidArgumentError)
		require.NoError(missing.SetId(99))
		require.ErrorIs(s.UpdateItem(ctx, missing), source.ErrNotFoundError)
	})

	t.Run("explicit identifiers advance sequence", func(t *testing.T) {
		a := env.save(t, "article", map[string]any{"id": 10, "title": "Ten"})
		require.Equal(int64(10), a.Id())
		b := env.save(t, "article", map[string]any{"title": "Eleven"})
		require.Equal(int64(11), b.Id())

		s := env.source(t, "article")
		dup, err := a.New()
		require.NoError(err)
		require.NoError(dup.SetData(map[string]any{"id": 10}))
		require.ErrorIs(s.SaveItem(ctx, dup), source.ErrInvalidArgumentError)
	})

	t.Run("delete", func(t *testing.T) {
		s := env.source(t, "article")
		item, err := s.LoadItem(ctx, 3, nil)
		require.NoError(err)
		require.NoError(s.DeleteItem(ctx, item))
		require.ErrorIs(s.DeleteItem(ctx, item), source.ErrNotFoundError)
		_, err = s.LoadItem(ctx, 3, nil)
		require.ErrorIs(err, source.ErrNotFoundError)
	})

	t.Run("model is required", func(t *testing.T) {
		_, err := env.st.NewSource().LoadItems(ctx, nil)
		require.ErrorIs(err, source.ErrModelNotSet)
	})

	t.Run("no matching items", func(t *testing.T) {
		m, err := env.models.New("user")
		require.NoError(err)
		s := env.st.NewSource()
		s.SetModel(m)
		f := expression.MustNewFilter(map[string]any{"property": "name", "val": "Bob"})
		require.NoError(s.AddFilter(f))
		items, err := s.LoadItems(ctx, nil)
		require.NoError(err)
		require.Empty(items)
	})
}

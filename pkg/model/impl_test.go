/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package model

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/voedger/charcoal/pkg/expression"
	"github.com/voedger/charcoal/pkg/ilog"
	"github.com/voedger/charcoal/pkg/metadata"
	"github.com/voedger/charcoal/pkg/property"
	"github.com/voedger/charcoal/pkg/translator"
)

const newsYAML = `
ident: charcoal/news
properties:
  id:
    type: id
  title:
    type: string
    l10n: true
    required: true
  tags:
    type: string
    multiple: true
  blocks:
    type: structure
    multiple: true
  author:
    type: object
    obj_type: user
    pattern: "{{name}}"
  preview:
    type: text
    storable: false
  draft:
    type: boolean
    active: false
default_data:
  tags: news,hot
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

type mockCollections struct {
	mock.Mock
}

func (m *mockCollections) LoadCollection(ctx context.Context, proto *Model, filters []*expression.Filter, orders []*expression.Order) ([]*Model, error) {
	args := m.Called(proto.ObjType(), filters, orders)
	items, _ := args.Get(0).([]*Model)
	return items, args.Error(1)
}

func (m *mockCollections) LoadOne(ctx context.Context, proto *Model, id any) (*Model, error) {
	args := m.Called(proto.ObjType(), id)
	item, _ := args.Get(0).(*Model)
	return item, args.Error(1)
}

func testFactory(t *testing.T, coll ICollectionSource) IFactory {
	meta := metadata.Provide(nil)
	for _, y := range []string{newsYAML, userYAML} {
		m, err := metadata.Parse("", []byte(y))
		require.NoError(t, err)
		meta.Add(m)
	}
	return Provide(Params{
		Metadata: meta,
		Properties: property.Deps{
			Logger:     ilog.NewNop(),
			Translator: translator.MustProvide(translator.Params{Locales: []string{"en", "fr"}}),
		},
		Collections: coll,
	})
}

func TestModel(t *testing.T) {
	require := require.New(t)

	t.Run("properties are instantiated once", func(t *testing.T) {
		m, err := testFactory(t, nil).New("charcoal/news")
		require.NoError(err)
		require.Equal("charcoal/news", m.ObjType())
		require.Equal("id", m.Key())
		require.Equal("charcoal_news", m.Table())

		p1, err := m.P("title")
		require.NoError(err)
		p2, err := m.P("title")
		require.NoError(err)
		require.Same(p1, p2)
		require.True(p1.L10n())

		_, err = m.P("unknown")
		require.ErrorIs(err, ErrUnknownPropertyError)
		require.Nil(m.Get("unknown"))

		pp, err := m.ActiveProperties()
		require.NoError(err)
		require.Len(pp, 6, "draft is not active")
	})

	t.Run("unknown model", func(t *testing.T) {
		_, err := testFactory(t, nil).New("nothing")
		require.ErrorIs(err, metadata.ErrNotFoundError)
	})

	t.Run("default data", func(t *testing.T) {
		m, err := testFactory(t, nil).New("charcoal/news")
		require.NoError(err)
		require.Equal([]any{"news", "hot"}, m.Get("tags"))

		u, err := testFactory(t, nil).New("user")
		require.NoError(err)
		require.Equal("users", u.Table())
	})

	t.Run("data", func(t *testing.T) {
		m, err := testFactory(t, nil).New("charcoal/news")
		require.NoError(err)
		require.NoError(m.SetData(map[string]any{
			"title":   map[string]any{"en": "Hello", "fr": "Bonjour"},
			"tags":    "a, b",
			"unknown": 1,
		}))
		require.Equal([]any{"a", "b"}, m.Get("tags"))
		require.Equal("Bonjour", m.Display("title", property.WithLocale("fr")))

		data, err := m.Data()
		require.NoError(err)
		require.Len(data, 7)
		require.Equal(map[string]any{"en": "Hello", "fr": "Bonjour"}, data["title"])

		require.ErrorIs(m.Set("unknown", 1), ErrUnknownPropertyError)
	})

	t.Run("flat data round trip", func(t *testing.T) {
		f := testFactory(t, nil)
		m, err := f.New("charcoal/news")
		require.NoError(err)
		require.NoError(m.SetData(map[string]any{
			"title":   map[string]any{"en": "Hello", "fr": "Bonjour"},
			"blocks":  []any{map[string]any{"a": float64(1)}},
			"preview": "not stored",
		}))

		row, err := m.FlatData()
		require.NoError(err)
		require.Equal("Hello", row["title_en"])
		require.Equal("Bonjour", row["title_fr"])
		require.Equal("news,hot", row["tags"])
		require.Equal(`[{"a":1}]`, row["blocks"])
		require.Contains(row, "id")
		require.NotContains(row, "title")
		require.NotContains(row, "preview")

		loaded, err := f.New("charcoal/news")
		require.NoError(err)
		row["id"] = int64(7)
		row["tags"] = []byte("x,y")
		require.NoError(loaded.SetFlatData(row))
		require.Equal(int64(7), loaded.Id())
		require.Equal(map[string]any{"en": "Hello", "fr": "Bonjour"}, loaded.Get("title"))
		require.Equal([]any{"x", "y"}, loaded.Get("tags"))
		require.Equal([]any{map[string]any{"a": float64(1)}}, loaded.Get("blocks"))
		require.Equal("charcoal/news#7", loaded.String())
	})

	t.Run("deferred identifier", func(t *testing.T) {
		m, err := testFactory(t, nil).New("charcoal/news")
		require.NoError(err)
		require.True(m.IsDeferredId())

		require.NoError(m.BeforeSave())
		require.Nil(m.Id())
		require.True(m.IsDeferredId())

		require.NoError(m.SetId(42))
		require.Equal(int64(42), m.Id())
		require.False(m.IsDeferredId())
	})

	t.Run("validate", func(t *testing.T) {
		m, err := testFactory(t, nil).New("charcoal/news")
		require.NoError(err)
		failed, err := m.Validate()
		require.NoError(err)
		require.Equal(map[string][]string{"title": {property.Validation_Required}}, failed)

		require.NoError(m.Set("title", "Hello"))
		failed, err = m.Validate()
		require.NoError(err)
		require.Empty(failed)
	})
}

func TestCollectionLoader(t *testing.T) {
	require := require.New(t)

	newUser := func(f IFactory, id int, name string) *Model {
		u, err := f.New("user")
		require.NoError(err)
		require.NoError(u.SetData(map[string]any{"id": id, "name": name}))
		return u
	}

	t.Run("object property loads choices through collections", func(t *testing.T) {
		coll := &mockCollections{}
		f := testFactory(t, coll)
		coll.On("LoadCollection", "user", mock.Anything, mock.Anything).
			Return([]*Model{newUser(f, 1, "Ann"), newUser(f, 2, "Bob")}, nil).Once()

		m, err := f.New("charcoal/news")
		require.NoError(err)
		p, err := m.P("author")
		require.NoError(err)
		require.Len(p.(property.ISelectable).Choices(), 2)

		// another model shares loader cache
		m2, err := f.New("charcoal/news")
		require.NoError(err)
		require.NoError(m2.Set("author", 2))
		require.Equal("Bob", m2.Display("author"))
		p2, err := m2.P("author")
		require.NoError(err)
		require.Len(p2.(property.ISelectable).Choices(), 2)
		coll.AssertExpectations(t)

		obj, err := f.Loader().LoadObject("user", 1)
		require.NoError(err)
		require.Equal("Ann", obj.Get("name"), "objects of loaded collections are cached")
	})

	t.Run("collections are cached by expressions", func(t *testing.T) {
		coll := &mockCollections{}
		f := testFactory(t, coll)
		coll.On("LoadCollection", "user", mock.Anything, mock.Anything).Return([]*Model{newUser(f, 1, "Ann")}, nil)
		l := f.Loader()

		active := expression.MustNewFilter(map[string]any{"property": "active", "val": 1})
		_, err := l.LoadObjects("user", nil, nil)
		require.NoError(err)
		_, err = l.LoadObjects("user", nil, nil)
		require.NoError(err)
		coll.AssertNumberOfCalls(t, "LoadCollection", 1)

		_, err = l.LoadObjects("user", []*expression.Filter{active}, nil)
		require.NoError(err)
		coll.AssertNumberOfCalls(t, "LoadCollection", 2)

		l.Purge()
		_, err = l.LoadObjects("user", nil, nil)
		require.NoError(err)
		coll.AssertNumberOfCalls(t, "LoadCollection", 3)
	})

	t.Run("single objects", func(t *testing.T) {
		coll := &mockCollections{}
		f := testFactory(t, coll)
		coll.On("LoadOne", "user", 5).Return(newUser(f, 5, "Eve"), nil).Once()
		coll.On("LoadOne", "user", 6).Return(nil, nil)
		l := f.Loader()

		for i := 0; i < 2; i++ {
			obj, err := l.LoadObject("user", 5)
			require.NoError(err)
			require.Equal(int64(5), obj.Id())
		}
		obj, err := l.LoadObject("user", 6)
		require.NoError(err)
		require.Nil(obj)

		obj, err = l.LoadObject("user", nil)
		require.NoError(err)
		require.Nil(obj)

		_, err = l.LoadObject("nothing", 1)
		require.ErrorIs(err, metadata.ErrNotFoundError)
		coll.AssertExpectations(t)
	})

	t.Run("loaded objects expire", func(t *testing.T) {
		coll := &mockCollections{}
		f := testFactory(t, coll)
		coll.On("LoadOne", "user", 7).Return(newUser(f, 7, "Kim"), nil).Twice()
		l := NewCollectionLoader(f, coll, nil, 0, 10*time.Millisecond)

		for i := 0; i < 2; i++ {
			obj, err := l.LoadObject("user", 7)
			require.NoError(err)
			require.Equal("Kim", obj.Get("name"))
		}
		coll.AssertNumberOfCalls(t, "LoadOne", 1)

		time.Sleep(50 * time.Millisecond)
		_, err := l.LoadObject("user", 7)
		require.NoError(err)
		coll.AssertNumberOfCalls(t, "LoadOne", 2)
	})

	t.Run("no collections", func(t *testing.T) {
		f := testFactory(t, nil)
		require.Nil(f.Loader())
		m, err := f.New("charcoal/news")
		require.NoError(err)
		require.NoError(m.Set("author", 3))
		require.Equal("3", m.Display("author"), "identifier is displayed if object can not be loaded")
	})
}

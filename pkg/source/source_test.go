/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package source

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voedger/charcoal/pkg/expression"
	"github.com/voedger/charcoal/pkg/ilog"
	"github.com/voedger/charcoal/pkg/metadata"
	"github.com/voedger/charcoal/pkg/model"
	"github.com/voedger/charcoal/pkg/property"
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
  authors:
    type: object
    obj_type: user
    multiple: true
  blocks:
    type: structure
    multiple: true
  views:
    type: integer
  notes:
    type: text
    storable: false
  legacy:
    type: string
    active: false
`

func testModel(t *testing.T, locale string) *model.Model {
	meta := metadata.Provide(nil)
	m, err := metadata.Parse("", []byte(articleYAML))
	require.NoError(t, err)
	meta.Add(m)
	tr := translator.MustProvide(translator.Params{Locales: []string{"en", "fr"}})
	require.NoError(t, tr.SetLocale(locale))
	f := model.Provide(model.Params{
		Metadata:   meta,
		Properties: property.Deps{Logger: ilog.NewNop(), Translator: tr},
	})
	item, err := f.New("article")
	require.NoError(t, err)
	return item
}

func filter(t *testing.T, data map[string]any) *expression.Filter {
	f, err := expression.ParseFilter(data)
	require.NoError(t, err)
	return f
}

func TestSource(t *testing.T) {
	require := require.New(t)

	t.Run("model", func(t *testing.T) {
		s := MakeSource(nil)
		require.False(s.HasModel())
		_, err := s.Model()
		require.ErrorIs(err, ErrModelNotSet)
		_, err = s.Item(nil)
		require.ErrorIs(err, ErrModelNotSet)

		m := testModel(t, "en")
		s.SetModel(m)
		require.True(s.HasModel())
		got, err := s.Item(nil)
		require.NoError(err)
		require.Same(m, got)
	})

	t.Run("set resets, add appends", func(t *testing.T) {
		s := MakeSource(nil)
		s.SetProperties("title")
		s.AddProperty("tags")
		s.AddProperty("tags")
		require.Equal([]string{"title", "tags"}, s.Properties())
		s.SetProperties()
		require.Empty(s.Properties())

		require.NoError(s.SetFilters(filter(t, map[string]any{"property": "a", "val": 1})))
		require.NoError(s.AddFilter(filter(t, map[string]any{"property": "b", "val": 2})))
		require.Len(s.Filters(), 2)
		require.NoError(s.SetFilters(filter(t, map[string]any{"property": "c", "val": 3})))
		require.Len(s.Filters(), 1)
		require.Equal("c", s.Filters()[0].Property())
		require.ErrorIs(s.AddFilter(nil), ErrInvalidArgumentError)

		o, err := expression.ParseOrder("title desc")
		require.NoError(err)
		require.NoError(s.SetOrders(o, o))
		require.Len(s.Orders(), 2)
		require.NoError(s.SetOrders())
		require.Empty(s.Orders())

		require.NoError(s.SetPage(2))
		require.NoError(s.SetNumPerPage(10))
		require.Equal(10, s.Pagination().First())
		require.Equal(20, s.Pagination().Last())
		require.Error(s.SetPage(-1))
		s.SetPagination(nil)
		require.False(s.Pagination().Active())
	})

	t.Run("filter on l10n property targets current locale field", func(t *testing.T) {
		s := MakeSource(nil)
		s.SetModel(testModel(t, "fr"))
		f := filter(t, map[string]any{"property": "title", "val": "Bonjour"})
		require.NoError(s.AddFilter(f))
		require.Equal("title_fr", s.Filters()[0].Property())
		require.Equal("title", f.Property(), "added filter is not changed")

		o, err := expression.ParseOrder("title")
		require.NoError(err)
		require.NoError(s.AddOrder(o))
		require.Equal("title_fr", s.Orders()[0].Property())
	})

	t.Run("filter on multiple property gets FIND_IN_SET", func(t *testing.T) {
		s := MakeSource(nil)
		s.SetModel(testModel(t, "en"))
		require.NoError(s.SetFilters(
			filter(t, map[string]any{"property": "tags", "val": "go"}),
			filter(t, map[string]any{"property": "authors", "val": 7, "operand": "OR"}),
			filter(t, map[string]any{"property": "views", "val": 10, "operator": ">"}),
			filter(t, map[string]any{"property": "tags", "operator": "IS NULL"}),
		))
		ff := s.Filters()
		require.Equal(Operator_FindInSet, ff[0].Operator())
		require.Equal(Operator_FindInSet, ff[1].Operator())
		require.Equal(">", ff[2].Operator())
		require.Equal("IS NULL", ff[3].Operator())

		where, err := expression.WhereSQL(expression.MySQL, ff)
		require.NoError(err)
		require.Equal("WHERE FIND_IN_SET(\"go\", `tags`) OR FIND_IN_SET(7, `authors`) AND `views` > 10 AND `tags` IS NULL", where)
	})

	t.Run("set separator follows property", func(t *testing.T) {
		s := MakeSource(nil)
		item := testModel(t, "en")
		p, err := item.P("tags")
		require.NoError(err)
		require.NoError(p.SetMultipleOptions(map[string]any{"separator": "|"}))
		s.SetModel(item)

		require.NoError(s.AddFilter(filter(t, map[string]any{"property": "tags", "val": "go"})))
		require.Equal("|", s.Filters()[0].Separator())
		where, err := expression.WhereSQL(expression.MySQL, s.Filters())
		require.NoError(err)
		require.Equal("WHERE FIND_IN_SET(\"go\", REPLACE(`tags`, \"|\", ','))", where)
	})

	t.Run("JSON stored multiple property keeps operator", func(t *testing.T) {
		rec := ilog.NewRecorder()
		s := MakeSource(rec)
		s.SetModel(testModel(t, "en"))
		require.NoError(s.AddFilter(filter(t, map[string]any{"property": "blocks", "val": "x", "operator": "LIKE"})))
		require.Equal("LIKE", s.Filters()[0].Operator())
		require.Len(rec.EntriesOf(ilog.Level_Warning), 1)
	})

	t.Run("nested filters are coupled", func(t *testing.T) {
		s := MakeSource(nil)
		s.SetModel(testModel(t, "en"))
		f, err := expression.ParseFilter("views > 1 AND (title = 'x' OR tags = 'y')")
		require.NoError(err)
		require.NoError(s.AddFilter(f))
		where, err := expression.WhereSQL(expression.MySQL, s.Filters())
		require.NoError(err)
		require.Equal("WHERE (`views` > 1 AND (`title_en` = \"x\" OR FIND_IN_SET(\"y\", `tags`)))", where)
	})

	t.Run("filters without model are kept", func(t *testing.T) {
		s := MakeSource(nil)
		require.NoError(s.AddFilter(filter(t, map[string]any{"property": "tags", "val": "go"})))
		require.Equal("=", s.Filters()[0].Operator())
	})
}

func TestFields(t *testing.T) {
	require := require.New(t)

	m := testModel(t, "en")
	require.NoError(m.SetData(map[string]any{
		"id":    5,
		"title": map[string]any{"en": "Hi", "fr": "Salut"},
		"tags":  []any{"a", "b"},
		"views": 3,
	}))

	s := MakeSource(nil)
	s.SetModel(m)

	t.Run("all active storable properties, key first", func(t *testing.T) {
		ff, err := s.Fields(nil)
		require.NoError(err)
		require.Equal([]string{"id", "title_en", "title_fr", "tags", "authors", "blocks", "views"}, FieldNames(ff))
		require.Equal(int64(5), ff[0].Val)
		require.Equal("Salut", ff[2].Val)
		require.Equal("fr", ff[2].Locale)
		require.Equal("a,b", ff[3].Val)
		require.Equal(property.PdoType_Int, ff[6].SqlPdoType)
	})

	t.Run("restricted by fetched properties", func(t *testing.T) {
		s.SetProperties("views")
		ff, err := s.Fields(m)
		require.NoError(err)
		require.Equal([]string{"id", "views"}, FieldNames(ff))
		s.SetProperties()
	})
}

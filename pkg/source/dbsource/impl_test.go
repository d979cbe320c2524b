/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package dbsource

import (
	"context"
	"testing"

	"github.com/blastrain/vitess-sqlparser/sqlparser"
	"github.com/stretchr/testify/mock"
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
  notes:
    type: text
    storable: false
`

type mockExecutor struct {
	mock.Mock
}

func (m *mockExecutor) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	a := m.Called(query, args)
	return a.Get(0).(Result), a.Error(1)
}

func (m *mockExecutor) Query(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	a := m.Called(query, args)
	rows, _ := a.Get(0).([]map[string]any)
	return rows, a.Error(1)
}

func testArticle(t *testing.T) *model.Model {
	meta := metadata.Provide(nil)
	m, err := metadata.Parse("", []byte(articleYAML))
	require.NoError(t, err)
	meta.Add(m)
	f := model.Provide(model.Params{
		Metadata: meta,
		Properties: property.Deps{
			Logger:     ilog.NewNop(),
			Translator: translator.MustProvide(translator.Params{Locales: []string{"en", "fr"}}),
		},
	})
	item, err := f.New("article")
	require.NoError(t, err)
	return item
}

func testSource(t *testing.T, d expression.Dialect) (*DbSource, *mockExecutor) {
	exec := &mockExecutor{}
	s := New(Params{Dialect: d, Executor: exec, Logger: ilog.NewNop()})
	s.SetModel(testArticle(t))
	return s, exec
}

// Generated MySQL statements must be valid MySQL
func requireMySQL(t *testing.T, sql string) {
	_, err := sqlparser.Parse(sql)
	require.NoError(t, err, sql)
}

func TestLoad(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	t.Run("load items", func(t *testing.T) {
		s, exec := testSource(t, expression.MySQL)
		f, err := expression.ParseFilter("tags = 'go'")
		require.NoError(err)
		require.NoError(s.AddFilter(f))
		o, err := expression.ParseOrder("views desc")
		require.NoError(err)
		require.NoError(s.AddOrder(o))
		require.NoError(s.SetPage(2))
		require.NoError(s.SetNumPerPage(10))

		const sql = "SELECT `id`, `title_en`, `title_fr`, `tags`, `views` FROM `article` WHERE FIND_IN_SET(?, `tags`) ORDER BY `views` DESC LIMIT 10, 10"
		requireMySQL(t, sql)
		exec.On("Query", sql, []any{"go"}).Return([]map[string]any{
			{"id": int64(1), "title_en": "Hello", "title_fr": "Bonjour", "tags": "go,db", "views": int64(5)},
			{"id": int64(2), "title_en": "Bye", "title_fr": nil, "tags": nil, "views": nil},
		}, nil)

		items, err := s.LoadItems(ctx, nil)
		require.NoError(err)
		require.Len(items, 2)
		require.Equal(int64(1), items[0].Id())
		require.Equal([]any{"go", "db"}, items[0].Get("tags"))
		require.Equal(map[string]any{"en": "Hello", "fr": "Bonjour"}, items[0].Get("title"))
		require.Equal("Bye", items[1].Display("title"))
		exec.AssertExpectations(t)
	})

	t.Run("load fetched properties only", func(t *testing.T) {
		s, exec := testSource(t, expression.Postgres)
		s.SetProperties("views")
		const sql = `SELECT "id", "views" FROM "article" LIMIT 5 OFFSET 0`
		exec.On("Query", sql, []any(nil)).Return([]map[string]any{}, nil)
		require.NoError(s.SetNumPerPage(5))

		items, err := s.LoadItems(ctx, nil)
		require.NoError(err)
		require.Empty(items)
		exec.AssertExpectations(t)
	})

	t.Run("load item", func(t *testing.T) {
		s, exec := testSource(t, expression.MySQL)
		const sql = "SELECT `id`, `title_en`, `title_fr`, `tags`, `views` FROM `article` WHERE `id` = ? LIMIT 1"
		requireMySQL(t, sql)
		exec.On("Query", sql, []any{3}).Return([]map[string]any{{"id": int64(3), "views": int64(9)}}, nil)
		exec.On("Query", sql, []any{4}).Return(nil, nil)

		item, err := s.LoadItem(ctx, 3, nil)
		require.NoError(err)
		require.Equal(int64(9), item.Get("views"))
		m, _ := s.Model()
		require.NotSame(m, item, "new item is created")

		target := testArticle(t)
		item, err = s.LoadItem(ctx, 3, target)
		require.NoError(err)
		require.Same(target, item)

		_, err = s.LoadItem(ctx, 4, nil)
		require.ErrorIs(err, source.ErrNotFoundError)
	})

	t.Run("load item from l10n key", func(t *testing.T) {
		s, exec := testSource(t, expression.MySQL)
		const sql = "SELECT `id`, `title_en`, `title_fr`, `tags`, `views` FROM `article` WHERE `title_en` = ? LIMIT 1"
		exec.On("Query", sql, []any{"Hello"}).Return([]map[string]any{{"id": int64(1), "title_en": "Hello"}}, nil)

		item, err := s.LoadItemFromKey(ctx, "title", "Hello", nil)
		require.NoError(err)
		require.Equal(int64(1), item.Id())

		_, err = s.LoadItemFromKey(ctx, "unknown", 1, nil)
		require.ErrorIs(err, source.ErrInvalidArgumentError)
	})

	t.Run("model is required", func(t *testing.T) {
		s := New(Params{Executor: &mockExecutor{}})
		_, err := s.LoadItems(ctx, nil)
		require.ErrorIs(err, source.ErrModelNotSet)
	})

	t.Run("executor is required", func(t *testing.T) {
		s := New(Params{})
		s.SetModel(testArticle(t))
		_, err := s.LoadItems(ctx, nil)
		require.Error(err)
	})
}

func TestSave(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	newItem := func(t *testing.T, s *DbSource) *model.Model {
		m, err := s.Model()
		require.NoError(err)
		item, err := m.New()
		require.NoError(err)
		require.NoError(item.SetData(map[string]any{
			"title": map[string]any{"en": "Hi", "fr": "Salut"},
			"tags":  "a,b",
			"views": 2,
			"notes": "not stored",
		}))
		return item
	}

	t.Run("insert with generated identifier", func(t *testing.T) {
		s, exec := testSource(t, expression.MySQL)
		const sql = "INSERT INTO `article` (`title_en`, `title_fr`, `tags`, `views`) VALUES (?, ?, ?, ?)"
		requireMySQL(t, sql)
		exec.On("Exec", sql, []any{"Hi", "Salut", "a,b", int64(2)}).Return(Result{RowsAffected: 1, LastInsertId: 11}, nil)

		item := newItem(t, s)
		require.NoError(s.SaveItem(ctx, item))
		require.Equal(int64(11), item.Id())
		exec.AssertExpectations(t)
	})

	t.Run("insert with known identifier", func(t *testing.T) {
		s, exec := testSource(t, expression.MySQL)
		const sql = "INSERT INTO `article` (`id`, `title_en`, `title_fr`, `tags`, `views`) VALUES (?, ?, ?, ?, ?)"
		requireMySQL(t, sql)
		exec.On("Exec", sql, []any{int64(5), "Hi", "Salut", "a,b", int64(2)}).Return(Result{RowsAffected: 1}, nil)

		item := newItem(t, s)
		require.NoError(item.SetId(5))
		require.NoError(s.SaveItem(ctx, item))
		require.Equal(int64(5), item.Id())
		exec.AssertExpectations(t)
	})

	t.Run("postgres insert returns identifier", func(t *testing.T) {
		s, exec := testSource(t, expression.Postgres)
		const sql = `INSERT INTO "article" ("title_en", "title_fr", "tags", "views") VALUES ($1, $2, $3, $4) RETURNING "id"`
		exec.On("Query", sql, []any{"Hi", "Salut", "a,b", int64(2)}).Return([]map[string]any{{"id": int32(12)}}, nil)

		item := newItem(t, s)
		require.NoError(s.SaveItem(ctx, item))
		require.Equal(int64(12), item.Id())
		exec.AssertExpectations(t)
	})

	t.Run("update", func(t *testing.T) {
		s, exec := testSource(t, expression.MySQL)
		const sql = "UPDATE `article` SET `views` = ? WHERE `id` = ?"
		requireMySQL(t, sql)
		exec.On("Exec", sql, []any{int64(3), int64(7)}).Return(Result{RowsAffected: 1}, nil)

		item := newItem(t, s)
		require.ErrorIs(s.UpdateItem(ctx, item), source.ErrInvalidArgumentError, "no identifier")

		require.NoError(item.SetId(7))
		require.NoError(item.Set("views", 3))
		require.NoError(s.UpdateItem(ctx, item, "views"))
		exec.AssertExpectations(t)
	})

	t.Run("update all fetched properties", func(t *testing.T) {
		s, exec := testSource(t, expression.MySQL)
		const sql = "UPDATE `article` SET `title_en` = ?, `title_fr` = ?, `tags` = ?, `views` = ? WHERE `id` = ?"
		requireMySQL(t, sql)
		exec.On("Exec", sql, []any{"Hi", "Salut", "a,b", int64(2), int64(7)}).Return(Result{RowsAffected: 1}, nil)

		item := newItem(t, s)
		require.NoError(item.SetId(7))
		require.NoError(s.UpdateItem(ctx, item))
		exec.AssertExpectations(t)
	})

	t.Run("delete", func(t *testing.T) {
		s, exec := testSource(t, expression.MySQL)
		const sql = "DELETE FROM `article` WHERE `id` = ?"
		requireMySQL(t, sql)
		exec.On("Exec", sql, []any{int64(7)}).Return(Result{RowsAffected: 1}, nil).Once()
		exec.On("Exec", sql, []any{int64(7)}).Return(Result{}, nil).Once()

		item := newItem(t, s)
		require.ErrorIs(s.DeleteItem(ctx, item), source.ErrInvalidArgumentError)
		require.NoError(item.SetId(7))
		require.NoError(s.DeleteItem(ctx, item))
		require.ErrorIs(s.DeleteItem(ctx, item), source.ErrNotFoundError)
	})
}

func TestTable(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	t.Run("mysql create table", func(t *testing.T) {
		s, exec := testSource(t, expression.MySQL)
		const ddl = "CREATE TABLE IF NOT EXISTS `article` (\n" +
			"  `id` INT NOT NULL AUTO_INCREMENT,\n" +
			"  `title_en` VARCHAR(255) COLLATE utf8mb4_unicode_ci NULL,\n" +
			"  `title_fr` VARCHAR(255) COLLATE utf8mb4_unicode_ci NULL,\n" +
			"  `tags` TEXT COLLATE utf8mb4_unicode_ci NULL,\n" +
			"  `views` INT NULL,\n" +
			"  PRIMARY KEY (`id`)\n" +
			")"
		sql, err := s.CreateTableSQL(nil)
		require.NoError(err)
		require.Equal(ddl, sql)

		exec.On("Exec", ddl, []any(nil)).Return(Result{}, nil)
		require.NoError(s.CreateTable(ctx, nil))
		exec.AssertExpectations(t)
	})

	t.Run("postgres create table", func(t *testing.T) {
		s, _ := testSource(t, expression.Postgres)
		sql, err := s.CreateTableSQL(nil)
		require.NoError(err)
		require.Equal(`CREATE TABLE IF NOT EXISTS "article" (
  "id" SERIAL NOT NULL,
  "title_en" VARCHAR(255) NULL,
  "title_fr" VARCHAR(255) NULL,
  "tags" TEXT NULL,
  "views" INT NULL,
  PRIMARY KEY ("id")
)`, sql)
	})

	t.Run("postgres types", func(t *testing.T) {
		require.Equal("TIMESTAMP", postgresType("DATETIME"))
		require.Equal("SMALLINT", postgresType("tinyint(1) unsigned"))
		require.Equal("VARCHAR(15)", postgresType("VARCHAR(15)"))
	})

	t.Run("table exists", func(t *testing.T) {
		s, exec := testSource(t, expression.MySQL)
		exec.On("Query", "SELECT COUNT(*) AS n FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?", []any{"article"}).
			Return([]map[string]any{{"n": int64(1)}}, nil)
		ok, err := s.TableExists(ctx, nil)
		require.NoError(err)
		require.True(ok)
	})

	t.Run("table structure", func(t *testing.T) {
		s, exec := testSource(t, expression.Postgres)
		exec.On("Query", "SELECT column_name AS name, data_type AS type, is_nullable AS nullable FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1 ORDER BY ordinal_position", []any{"article"}).
			Return([]map[string]any{
				{"name": "id", "type": "integer", "nullable": "NO"},
				{"name": "views", "type": "integer", "nullable": "YES"},
			}, nil)
		cc, err := s.TableStructure(ctx, nil)
		require.NoError(err)
		require.Equal([]Column{{Name: "id", Type: "integer"}, {Name: "views", Type: "integer", Nullable: true}}, cc)
	})
}

func TestRowMap(t *testing.T) {
	require := require.New(t)
	row := rowMap([]string{"a", "b", "c"}, []any{[]byte("x"), int64(1), nil})
	require.Equal(map[string]any{"a": "x", "b": int64(1), "c": nil}, row)
}

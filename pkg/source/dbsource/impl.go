/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package dbsource

import (
	"context"
	"fmt"
	"slices"

	"github.com/voedger/charcoal/pkg/codec"
	"github.com/voedger/charcoal/pkg/expression"
	"github.com/voedger/charcoal/pkg/ilog"
	"github.com/voedger/charcoal/pkg/model"
	"github.com/voedger/charcoal/pkg/property"
	"github.com/voedger/charcoal/pkg/source"
)

// Relational database source. Statements are parameterised, values are never inlined.
//
// # Implements:
//   - source.ISource
type DbSource struct {
	source.Source
	d    expression.Dialect
	exec IExecutor
}

func (s *DbSource) Dialect() expression.Dialect { return s.d }

func (s *DbSource) executor() (IExecutor, error) {
	if s.exec == nil {
		return nil, fmt.Errorf("%s source: executor is not set", s.d.Name)
	}
	return s.exec, nil
}

func (s *DbSource) query(ctx context.Context, st *statement) ([]map[string]any, error) {
	e, err := s.executor()
	if err != nil {
		return nil, err
	}
	s.Logger().Debug("query", ilog.Ctx{"sql": st.String(), "args": len(st.Args())})
	return e.Query(ctx, st.String(), st.Args()...)
}

func (s *DbSource) execute(ctx context.Context, st *statement) (Result, error) {
	e, err := s.executor()
	if err != nil {
		return Result{}, err
	}
	s.Logger().Debug("exec", ilog.Ctx{"sql": st.String(), "args": len(st.Args())})
	return e.Exec(ctx, st.String(), st.Args()...)
}

// Builds `SELECT` of fetched fields with source filters, orders and pagination
func (s *DbSource) selectStatement(item *model.Model) (*statement, error) {
	ff, err := s.Fields(item)
	if err != nil {
		return nil, err
	}
	st := newStatement(s.d)
	st.write("SELECT ").idents(source.FieldNames(ff)).write(" FROM ").ident(item.Table())
	where, err := expression.BindWhere(st.args, s.Filters())
	if err != nil {
		st.release()
		return nil, err
	}
	order, err := expression.BindOrder(st.args, s.Orders())
	if err != nil {
		st.release()
		return nil, err
	}
	limit, err := s.Pagination().SQL(s.d)
	if err != nil {
		st.release()
		return nil, err
	}
	st.clause(where).clause(order).clause(limit)
	return st, nil
}

// Builds `SELECT` of fetched fields of the first item with property value
func (s *DbSource) keyStatement(item *model.Model, key string, val any) (*statement, error) {
	f, err := keyFilter(item, key, val)
	if err != nil {
		return nil, err
	}
	ff, err := s.Fields(item)
	if err != nil {
		return nil, err
	}
	st := newStatement(s.d)
	st.write("SELECT ").idents(source.FieldNames(ff)).write(" FROM ").ident(item.Table())
	where, err := expression.BindWhere(st.args, []*expression.Filter{f})
	if err != nil {
		st.release()
		return nil, err
	}
	st.clause(where).write(" LIMIT 1")
	return st, nil
}

// Filter `key = val`, l10n key targets field of current locale
func keyFilter(item *model.Model, key string, val any) (*expression.Filter, error) {
	p, err := item.P(key)
	if err != nil {
		return nil, source.ErrInvalidArgument("%v", err)
	}
	field := key
	if p.L10n() {
		if field, err = p.L10nIdent(); err != nil {
			return nil, err
		}
	}
	f := expression.NewFilter()
	if err := f.SetProperty(field); err != nil {
		return nil, err
	}
	if err := f.SetVal(val); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *DbSource) LoadItem(ctx context.Context, id any, item *model.Model) (*model.Model, error) {
	proto, err := s.Item(item)
	if err != nil {
		return nil, err
	}
	return s.LoadItemFromKey(ctx, proto.Key(), id, item)
}

func (s *DbSource) LoadItemFromKey(ctx context.Context, key string, val any, item *model.Model) (*model.Model, error) {
	proto, err := s.Item(item)
	if err != nil {
		return nil, err
	}
	st, err := s.keyStatement(proto, key, val)
	if err != nil {
		return nil, err
	}
	defer st.release()
	rows, err := s.query(ctx, st)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, source.ErrNotFound(proto.ObjType(), key, val)
	}
	target := item
	if target == nil {
		if target, err = proto.New(); err != nil {
			return nil, err
		}
	}
	if err := target.SetFlatData(rows[0]); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *DbSource) LoadItems(ctx context.Context, item *model.Model) ([]*model.Model, error) {
	proto, err := s.Item(item)
	if err != nil {
		return nil, err
	}
	st, err := s.selectStatement(proto)
	if err != nil {
		return nil, err
	}
	defer st.release()
	rows, err := s.query(ctx, st)
	if err != nil {
		return nil, err
	}
	res := make([]*model.Model, 0, len(rows))
	for _, row := range rows {
		m, err := proto.New()
		if err != nil {
			return nil, err
		}
		if err := m.SetFlatData(row); err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, nil
}

func (s *DbSource) SaveItem(ctx context.Context, item *model.Model) error {
	item, err := s.Item(item)
	if err != nil {
		return err
	}
	if err := item.BeforeSave(); err != nil {
		return err
	}
	deferred := item.IsDeferredId()
	ff, err := s.FieldsOf(item)
	if err != nil {
		return err
	}
	if deferred {
		ff = slices.DeleteFunc(ff, func(f property.Field) bool { return f.Ident == item.Key() })
	}

	st := newStatement(s.d)
	defer st.release()
	st.write("INSERT INTO ").ident(item.Table()).write(" (").idents(source.FieldNames(ff)).write(") VALUES (")
	for i, f := range ff {
		if i > 0 {
			st.write(", ")
		}
		if err := st.bind(f.Val); err != nil {
			return err
		}
	}
	st.write(")")

	if !deferred {
		_, err := s.execute(ctx, st)
		return err
	}
	if s.d.IsPostgres() {
		st.write(" RETURNING ").ident(item.Key())
		rows, err := s.query(ctx, st)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("insert into «%s» returned no identifier", item.Table())
		}
		return item.SetId(rows[0][item.Key()])
	}
	res, err := s.execute(ctx, st)
	if err != nil {
		return err
	}
	return item.SetId(res.LastInsertId)
}

func (s *DbSource) UpdateItem(ctx context.Context, item *model.Model, properties ...string) error {
	item, err := s.Item(item)
	if err != nil {
		return err
	}
	id := item.Id()
	if codec.IsBlank(id) {
		return source.ErrInvalidArgument("can not update «%s» without identifier", item.ObjType())
	}
	if err := item.BeforeSave(); err != nil {
		return err
	}
	if len(properties) == 0 {
		properties = s.Properties()
	}
	ff, err := s.FieldsOf(item, properties...)
	if err != nil {
		return err
	}
	ff = slices.DeleteFunc(ff, func(f property.Field) bool { return f.Ident == item.Key() })
	if len(ff) == 0 {
		return source.ErrInvalidArgument("nothing to update in «%s»", item.ObjType())
	}

	st := newStatement(s.d)
	defer st.release()
	st.write("UPDATE ").ident(item.Table()).write(" SET ")
	for i, f := range ff {
		if i > 0 {
			st.write(", ")
		}
		st.ident(f.Name).write(" = ")
		if err := st.bind(f.Val); err != nil {
			return err
		}
	}
	st.write(" WHERE ").ident(item.Key()).write(" = ")
	if err := st.bind(id); err != nil {
		return err
	}
	_, err = s.execute(ctx, st)
	return err
}

func (s *DbSource) DeleteItem(ctx context.Context, item *model.Model) error {
	item, err := s.Item(item)
	if err != nil {
		return err
	}
	id := item.Id()
	if codec.IsBlank(id) {
		return source.ErrInvalidArgument("can not delete «%s» without identifier", item.ObjType())
	}
	st := newStatement(s.d)
	defer st.release()
	st.write("DELETE FROM ").ident(item.Table()).write(" WHERE ").ident(item.Key()).write(" = ")
	if err := st.bind(id); err != nil {
		return err
	}
	res, err := s.execute(ctx, st)
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return source.ErrNotFound(item.ObjType(), item.Key(), id)
	}
	return nil
}

/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package boltsource

import (
	"context"
	"slices"
	"strconv"

	bolt "go.etcd.io/bbolt"

	"github.com/voedger/charcoal/pkg/codec"
	"github.com/voedger/charcoal/pkg/ilog"
	"github.com/voedger/charcoal/pkg/model"
	"github.com/voedger/charcoal/pkg/property"
	"github.com/voedger/charcoal/pkg/source"
)

// Key-value source. Filters, orders and pagination are evaluated in memory
// over rows of model table, rows without orders come in key order.
//
// # Implements:
//   - source.ISource
type BoltSource struct {
	source.Source
	st *Storage
}

func rowKey(id any) ([]byte, error) {
	s, ok := codec.ToString(id)
	if !ok || s == "" {
		return nil, source.ErrInvalidArgument("identifier must be scalar, got %T", id)
	}
	return []byte(s), nil
}

// Returns row keyed by column names of fields
func fieldsRow(ff []property.Field) row {
	r := make(row, len(ff))
	for _, f := range ff {
		r[f.Name] = f.Val
	}
	return r
}

// Leaves only named columns, missing columns are nulls
func project(r row, names []string) row {
	res := make(row, len(names))
	for _, n := range names {
		res[n] = r[n]
	}
	return res
}

func (s *BoltSource) load(r row, names []string, proto, item *model.Model) (*model.Model, error) {
	target := item
	if target == nil {
		var err error
		if target, err = proto.New(); err != nil {
			return nil, err
		}
	}
	if err := target.SetFlatData(project(r, names)); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *BoltSource) LoadItem(ctx context.Context, id any, item *model.Model) (*model.Model, error) {
	proto, err := s.Item(item)
	if err != nil {
		return nil, err
	}
	return s.LoadItemFromKey(ctx, proto.Key(), id, item)
}

func (s *BoltSource) LoadItemFromKey(ctx context.Context, key string, val any, item *model.Model) (*model.Model, error) {
	proto, err := s.Item(item)
	if err != nil {
		return nil, err
	}
	ff, err := s.Fields(proto)
	if err != nil {
		return nil, err
	}
	names := source.FieldNames(ff)

	if key == proto.Key() {
		k, err := rowKey(val)
		if err != nil {
			return nil, err
		}
		r, err := s.st.get(proto.Table(), k)
		if err != nil {
			return nil, err
		}
		if r == nil {
			return nil, source.ErrNotFound(proto.ObjType(), key, val)
		}
		return s.load(r, names, proto, item)
	}

	p, err := proto.P(key)
	if err != nil {
		return nil, source.ErrInvalidArgument("%v", err)
	}
	field := key
	if p.L10n() {
		if field, err = p.L10nIdent(); err != nil {
			return nil, err
		}
	}
	var found row
	err = s.st.scan(proto.Table(), func(_ []byte, r row) error {
		if found == nil && r[field] != nil && compare(r[field], val) == 0 {
			found = r
		}
		return ctx.Err()
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, source.ErrNotFound(proto.ObjType(), key, val)
	}
	return s.load(found, names, proto, item)
}

func (s *BoltSource) LoadItems(ctx context.Context, item *model.Model) ([]*model.Model, error) {
	proto, err := s.Item(item)
	if err != nil {
		return nil, err
	}
	ff, err := s.Fields(proto)
	if err != nil {
		return nil, err
	}
	rows := []row{}
	err = s.st.scan(proto.Table(), func(_ []byte, r row) error {
		ok, err := match(r, s.Filters())
		if err != nil {
			return err
		}
		if ok {
			rows = append(rows, r)
		}
		return ctx.Err()
	})
	if err != nil {
		return nil, err
	}
	if err := sortRows(rows, s.Orders()); err != nil {
		return nil, err
	}
	from, to := s.Pagination().Bounds(len(rows))
	rows = rows[from:to]

	names := source.FieldNames(ff)
	res := make([]*model.Model, 0, len(rows))
	for _, r := range rows {
		m, err := s.load(r, names, proto, nil)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	s.Logger().Debug("items loaded", ilog.Ctx{"table": proto.Table(), "count": len(res)})
	return res, nil
}

// Inserts item. Deferred identifier is taken from table sequence,
// explicit numeric identifiers advance the sequence
func (s *BoltSource) SaveItem(ctx context.Context, item *model.Model) error {
	item, err := s.Item(item)
	if err != nil {
		return err
	}
	if err := item.BeforeSave(); err != nil {
		return err
	}
	return s.st.update(item.Table(), func(b *bolt.Bucket) error {
		if item.IsDeferredId() {
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			if err := item.SetId(int64(seq)); err != nil {
				return err
			}
		}
		key, err := rowKey(item.Id())
		if err != nil {
			return err
		}
		if b.Get(key) != nil {
			return source.ErrInvalidArgument("«%s» with %s «%s» already exists", item.ObjType(), item.Key(), key)
		}
		if n, err := strconv.ParseUint(string(key), 10, 64); err == nil && n > b.Sequence() {
			if err := b.SetSequence(n); err != nil {
				return err
			}
		}
		ff, err := s.FieldsOf(item)
		if err != nil {
			return err
		}
		s.Logger().Debug("put", ilog.Ctx{"table": item.Table(), "key": string(key)})
		return putRow(b, key, fieldsRow(ff))
	})
}

func (s *BoltSource) UpdateItem(ctx context.Context, item *model.Model, properties ...string) error {
	item, err := s.Item(item)
	if err != nil {
		return err
	}
	id := item.Id()
	if codec.IsBlank(id) {
		return source.ErrInvalidArgument("can not update «%s» without identifier", item.ObjType())
	}
	key, err := rowKey(id)
	if err != nil {
		return err
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
	return s.st.update(item.Table(), func(b *bolt.Bucket) error {
		data := b.Get(key)
		if data == nil {
			return source.ErrNotFound(item.ObjType(), item.Key(), id)
		}
		r, err := decodeRow(item.Table(), key, data)
		if err != nil {
			return err
		}
		for _, f := range ff {
			r[f.Name] = f.Val
		}
		s.Logger().Debug("put", ilog.Ctx{"table": item.Table(), "key": string(key)})
		return putRow(b, key, r)
	})
}

func (s *BoltSource) DeleteItem(ctx context.Context, item *model.Model) error {
	item, err := s.Item(item)
	if err != nil {
		return err
	}
	id := item.Id()
	if codec.IsBlank(id) {
		return source.ErrInvalidArgument("can not delete «%s» without identifier", item.ObjType())
	}
	key, err := rowKey(id)
	if err != nil {
		return err
	}
	return s.st.update(item.Table(), func(b *bolt.Bucket) error {
		if b.Get(key) == nil {
			return source.ErrNotFound(item.ObjType(), item.Key(), id)
		}
		s.Logger().Debug("delete", ilog.Ctx{"table": item.Table(), "key": string(key)})
		return b.Delete(key)
	})
}

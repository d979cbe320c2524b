/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package source

import (
	"context"
	"errors"

	"github.com/voedger/charcoal/pkg/expression"
	"github.com/voedger/charcoal/pkg/model"
)

// Returns collection source over engine. Every load is performed by a new source
// created by newSource, so that query constraints do not leak between loads
func Collections(newSource func() ISource) model.ICollectionSource {
	return &collections{newSource: newSource}
}

// # Implements:
//   - model.ICollectionSource
type collections struct {
	newSource func() ISource
}

func (c *collections) LoadCollection(ctx context.Context, proto *model.Model, filters []*expression.Filter, orders []*expression.Order) ([]*model.Model, error) {
	s := c.newSource()
	s.SetModel(proto)
	if err := s.SetFilters(filters...); err != nil {
		return nil, err
	}
	if err := s.SetOrders(orders...); err != nil {
		return nil, err
	}
	return s.LoadItems(ctx, nil)
}

func (c *collections) LoadOne(ctx context.Context, proto *model.Model, id any) (*model.Model, error) {
	s := c.newSource()
	s.SetModel(proto)
	item, err := s.LoadItem(ctx, id, nil)
	if errors.Is(err, ErrNotFoundError) {
		return nil, nil
	}
	return item, err
}

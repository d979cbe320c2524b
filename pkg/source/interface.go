/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package source

import (
	"context"

	"github.com/voedger/charcoal/pkg/expression"
	"github.com/voedger/charcoal/pkg/model"
	"github.com/voedger/charcoal/pkg/property"
)

// Storage engine facing component: translates between model property values and storage rows.
//
// Query constraints accumulate on source: SetX methods reset prior state, AddX methods append.
// Item arguments of CRUD methods may be nil, then source model is used.
//
// Ref. to source.go for common part, dbsource and boltsource packages for engines
type ISource interface {
	// Sets model of items
	SetModel(m *model.Model)

	// Returns model of items.
	//
	// Returns ErrModelNotSet if model is not set
	Model() (*model.Model, error)

	HasModel() bool

	// Restricts fetched properties. Empty list means all properties
	SetProperties(idents ...string)
	AddProperty(ident string)
	Properties() []string

	// Sets filters. Model coupling rules are applied to every filter, ref. to AddFilter
	SetFilters(filters ...*expression.Filter) error

	// Adds filter.
	//
	// If model is set then filter on l10n property targets its field of current locale,
	// and filter on multiple property with separator-joined storage gets FIND_IN_SET operator
	AddFilter(f *expression.Filter) error
	Filters() []*expression.Filter

	SetOrders(orders ...*expression.Order) error
	AddOrder(o *expression.Order) error
	Orders() []*expression.Order

	SetPagination(p *expression.Pagination)
	Pagination() *expression.Pagination
	SetPage(page int) error
	SetNumPerPage(num int) error

	// Returns storage fields of active storable fetched properties of item, key field first
	Fields(item *model.Model) ([]property.Field, error)

	// Loads item by identifier.
	//
	// Returns ErrNotFound if there is no such item
	LoadItem(ctx context.Context, id any, item *model.Model) (*model.Model, error)

	// Loads first item with property value.
	//
	// Returns ErrNotFound if there is no such item
	LoadItemFromKey(ctx context.Context, key string, val any, item *model.Model) (*model.Model, error)

	// Loads items matching filters, in orders, paginated
	LoadItems(ctx context.Context, item *model.Model) ([]*model.Model, error)

	// Inserts item. Identifier assigned by storage is set to item
	SaveItem(ctx context.Context, item *model.Model) error

	// Updates item fields of specified properties, all fetched properties if omitted
	UpdateItem(ctx context.Context, item *model.Model, properties ...string) error

	// Deletes item.
	//
	// Returns ErrNotFound if there is no such item
	DeleteItem(ctx context.Context, item *model.Model) error
}

/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package model

import (
	"context"

	"github.com/voedger/charcoal/pkg/expression"
	"github.com/voedger/charcoal/pkg/metadata"
	"github.com/voedger/charcoal/pkg/property"
)

// Models factory.
//
// Ref. to provide.go for implementation
type IFactory interface {
	// Creates empty model of specified object type. Default data of metadata is applied.
	//
	// Returns metadata.ErrNotFound if metadata is not found
	New(objType string) (*Model, error)

	// Returns properties factory used by models
	Properties() property.IFactory

	// Returns metadata loader
	Metadata() metadata.ILoader

	// Returns loader of object property choices, nil if there is no collection source
	Loader() *CollectionLoader
}

// Storage of model collections, consumed by CollectionLoader.
//
// Ref. to source.Collections for implementation over source engines
type ICollectionSource interface {
	// Loads items of prototype model type, filtered and ordered
	LoadCollection(ctx context.Context, proto *Model, filters []*expression.Filter, orders []*expression.Order) ([]*Model, error)

	// Loads single item of prototype model type. Returns nil, nil if not found
	LoadOne(ctx context.Context, proto *Model, id any) (*Model, error)
}

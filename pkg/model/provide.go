/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package model

import (
	"time"

	"github.com/voedger/charcoal/pkg/ilog"
	"github.com/voedger/charcoal/pkg/metadata"
	"github.com/voedger/charcoal/pkg/property"
)

// Returns models factory.
//
// If params.Collections is set then object properties of created models load
// their choices through CollectionLoader over it
func Provide(params Params) IFactory {
	if params.Properties.Logger == nil {
		params.Properties.Logger = ilog.NewNop()
	}
	f := &factory{
		meta:   params.Metadata,
		logger: params.Properties.Logger,
	}
	if params.Collections != nil {
		f.loader = NewCollectionLoader(f, params.Collections, f.logger, params.CacheSize, params.ObjectTTL)
		params.Properties.ObjectLoader = f.loader
	}
	f.props = property.Provide(params.Properties)
	return f
}

// Models factory parameters
type Params struct {
	Metadata metadata.ILoader

	// Dependencies of created properties. ObjectLoader is replaced if Collections is set
	Properties property.Deps

	// Storage of object property choices, optional
	Collections ICollectionSource

	// Collection loader cache size, DefaultCacheSize if zero
	CacheSize int

	// Time to keep loaded objects, no expiration if zero
	ObjectTTL time.Duration
}

/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package model

import (
	"context"
	"fmt"
	"time"

	"github.com/erni27/imcache"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/voedger/charcoal/pkg/codec"
	"github.com/voedger/charcoal/pkg/expression"
	"github.com/voedger/charcoal/pkg/ilog"
	"github.com/voedger/charcoal/pkg/property"
)

// Loads objects referenced by object properties. Loaded collections are kept
// in LRU cache, loaded objects are kept by identifier until TTL expires.
// Both are dropped by Purge.
//
// Loader is request-scoped, purge it or create new one per request.
//
// # Implements:
//   - property.IObjectLoader
type CollectionLoader struct {
	models  IFactory
	src     ICollectionSource
	logger  ilog.ILogger
	colls   *lru.Cache[string, []property.IObject]
	objects *imcache.Cache[string, property.IObject]
	ttl     time.Duration
}

// Creates loader over collection source. Size is cache size in collections, DefaultCacheSize if zero.
// Loaded objects never expire if ttl is zero
func NewCollectionLoader(models IFactory, src ICollectionSource, logger ilog.ILogger, size int, ttl time.Duration) *CollectionLoader {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if logger == nil {
		logger = ilog.NewNop()
	}
	l := &CollectionLoader{
		models:  models,
		src:     src,
		logger:  logger,
		objects: imcache.New[string, property.IObject](),
		ttl:     ttl,
	}
	var err error
	if l.colls, err = lru.New[string, []property.IObject](size); err != nil {
		panic(err)
	}
	return l
}

func (l *CollectionLoader) putObject(objType, id string, obj property.IObject) {
	exp := imcache.WithNoExpiration()
	if l.ttl > 0 {
		exp = imcache.WithExpiration(l.ttl)
	}
	l.objects.Set(objectKey(objType, id), obj, exp)
}

func (l *CollectionLoader) LoadObjects(objType string, filters []*expression.Filter, orders []*expression.Order) ([]property.IObject, error) {
	key, cacheable := collectionKey(objType, filters, orders)
	if cacheable {
		if objs, ok := l.colls.Get(key); ok {
			return objs, nil
		}
	}
	proto, err := l.models.New(objType)
	if err != nil {
		return nil, err
	}
	items, err := l.src.LoadCollection(context.Background(), proto, filters, orders)
	if err != nil {
		return nil, fmt.Errorf("load «%s» collection: %w", objType, err)
	}
	objs := make([]property.IObject, 0, len(items))
	for _, item := range items {
		objs = append(objs, item)
		if id, ok := codec.ToString(item.Id()); ok && id != "" {
			l.putObject(objType, id, item)
		}
	}
	if cacheable {
		l.colls.Add(key, objs)
	}
	l.logger.Debug("collection loaded", ilog.Ctx{"objType": objType, "count": len(objs), "cached": cacheable})
	return objs, nil
}

func (l *CollectionLoader) LoadObject(objType string, id any) (property.IObject, error) {
	sid, ok := codec.ToString(id)
	if !ok || sid == "" {
		return nil, nil
	}
	if obj, ok := l.objects.Get(objectKey(objType, sid)); ok {
		return obj, nil
	}
	proto, err := l.models.New(objType)
	if err != nil {
		return nil, err
	}
	item, err := l.src.LoadOne(context.Background(), proto, id)
	if err != nil {
		return nil, fmt.Errorf("load «%s» #%s: %w", objType, sid, err)
	}
	if item == nil {
		return nil, nil
	}
	l.putObject(objType, sid, item)
	return item, nil
}

// Clears caches
func (l *CollectionLoader) Purge() {
	l.colls.Purge()
	l.objects.RemoveAll()
}

// Collections are keyed by rendered filters and orders. Expressions which
// can not be rendered are not cached
func collectionKey(objType string, filters []*expression.Filter, orders []*expression.Order) (string, bool) {
	where, err := expression.WhereSQL(expression.MySQL, filters)
	if err != nil {
		return "", false
	}
	order, err := expression.OrderSQL(expression.MySQL, orders)
	if err != nil {
		return "", false
	}
	return objType + "\x00" + where + "\x00" + order, true
}

func objectKey(objType, id string) string {
	return objType + "\x00" + id
}

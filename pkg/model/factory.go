/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package model

import (
	"fmt"

	"github.com/voedger/charcoal/pkg/ilog"
	"github.com/voedger/charcoal/pkg/metadata"
	"github.com/voedger/charcoal/pkg/property"
)

// # Implements:
//   - IFactory
type factory struct {
	meta   metadata.ILoader
	props  property.IFactory
	loader *CollectionLoader
	logger ilog.ILogger
}

func (f *factory) New(objType string) (*Model, error) {
	meta, err := f.meta.Load(objType)
	if err != nil {
		return nil, fmt.Errorf("model «%s»: %w", objType, err)
	}
	m := newModel(f, meta)
	if len(meta.DefaultData) > 0 {
		if err := m.SetData(meta.DefaultData); err != nil {
			return nil, fmt.Errorf("model «%s» default data: %w", objType, err)
		}
	}
	return m, nil
}

func (f *factory) Properties() property.IFactory { return f.props }

func (f *factory) Metadata() metadata.ILoader { return f.meta }

// Returns collection loader, nil if factory has no collection source
func (f *factory) Loader() *CollectionLoader { return f.loader }

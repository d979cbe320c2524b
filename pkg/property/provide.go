/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import "github.com/voedger/charcoal/pkg/metadata"

// Returns factory with all builtin property types registered
func Provide(deps Deps) IFactory {
	return newFactory(deps)
}

// Creates and configures property, panics on error.
//
// Intended for properties defined in code, not from user data
func MustNew(f IFactory, ident string, data map[string]any) IProperty {
	p, err := f.Build(metadata.PropertyMetadata{Ident: ident, Data: data})
	if err != nil {
		panic(err)
	}
	return p
}

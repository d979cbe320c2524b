/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package metadata

// Metadata loader.
//
// Ref. to loader.go for implementation
type ILoader interface {
	// Returns metadata by identifier.
	//
	// Identifier `charcoal/news` is looked up as file `charcoal/news.yaml` (`.yml`, `.json`).
	// Metadata listed in `extends` are loaded first and merged in order.
	// Loaded metadata are cached.
	Load(ident string) (*Metadata, error)

	// Registers metadata directly. Registered metadata shadows files
	Add(m *Metadata)
}

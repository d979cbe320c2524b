/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package metadata

import "io/fs"

// Creates new metadata loader which reads files from specified file system.
//
// fsys may be nil, then only metadata registered by Add are available.
func Provide(fsys fs.FS) ILoader {
	return &loader{
		fs:      fsys,
		cache:   make(map[string]*Metadata),
		loading: make(map[string]bool),
	}
}

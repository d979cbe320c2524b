/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package metadata

import (
	"errors"
	"io/fs"
	"path"
)

// # Implements:
//   - ILoader
type loader struct {
	fs      fs.FS
	cache   map[string]*Metadata
	loading map[string]bool
}

func (l *loader) Add(m *Metadata) {
	l.cache[m.Ident] = m
}

func (l *loader) Load(ident string) (*Metadata, error) {
	if m, ok := l.cache[ident]; ok {
		return m, nil
	}
	if l.loading[ident] {
		return nil, ErrInvalid("metadata «%s» extends itself", ident)
	}
	l.loading[ident] = true
	defer delete(l.loading, ident)

	data, err := l.read(ident)
	if err != nil {
		return nil, err
	}
	own, extends, err := parse(ident, data)
	if err != nil {
		return nil, err
	}

	m := New(ident)
	for _, e := range extends {
		parent, err := l.Load(e)
		if err != nil {
			return nil, err
		}
		m.Merge(parent)
	}
	m.Merge(own)

	l.cache[ident] = m
	return m, nil
}

func (l *loader) read(ident string) ([]byte, error) {
	if l.fs == nil {
		return nil, ErrNotFound("metadata «%s»", ident)
	}
	for _, ext := range fileExts {
		data, err := fs.ReadFile(l.fs, path.Clean(ident)+ext)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, ErrNotFound("metadata «%s»", ident)
}

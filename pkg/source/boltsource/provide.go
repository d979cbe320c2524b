/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package boltsource

import (
	bolt "go.etcd.io/bbolt"

	"github.com/voedger/charcoal/pkg/ilog"
	"github.com/voedger/charcoal/pkg/source"
)

// Opens (creates if not exists) database file. Caller must Close returned storage
func Open(params Params) (*Storage, error) {
	if params.Logger == nil {
		params.Logger = ilog.NewNop()
	}
	opts := *bolt.DefaultOptions
	opts.Timeout = params.Timeout
	db, err := bolt.Open(params.Path, fileMode, &opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db, logger: params.Logger}, nil
}

// Returns source over storage
func (st *Storage) NewSource() *BoltSource {
	return &BoltSource{
		Source: source.MakeSource(st.logger),
		st:     st,
	}
}

// Returns factory of sources over storage, e.g. for source.Collections
func (st *Storage) Factory() func() source.ISource {
	return func() source.ISource { return st.NewSource() }
}

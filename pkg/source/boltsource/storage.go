/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package boltsource

import (
	"encoding/json"
	"slices"

	bolt "go.etcd.io/bbolt"

	"github.com/voedger/charcoal/pkg/ilog"
)

// Database file shared by sources. Every model table is a bucket,
// rows are JSON objects keyed by item identifier.
type Storage struct {
	db     *bolt.DB
	logger ilog.ILogger
}

func (st *Storage) Close() error {
	return st.db.Close()
}

// Returns names of existing tables in lexical order
func (st *Storage) Tables() ([]string, error) {
	res := []string{}
	err := st.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			res = append(res, string(name))
			return nil
		})
	})
	slices.Sort(res)
	return res, err
}

// Returns row by key, nil if table or row does not exist
func (st *Storage) get(table string, key []byte) (row, error) {
	var res row
	err := st.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(table))
		if b == nil {
			return nil
		}
		data := b.Get(key)
		if data == nil {
			return nil
		}
		r, err := decodeRow(table, key, data)
		res = r
		return err
	})
	return res, err
}

// Calls cb for every row of table in key order. Missing table has no rows
func (st *Storage) scan(table string, cb func(key []byte, r row) error) error {
	return st.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(table))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			r, err := decodeRow(table, k, v)
			if err != nil {
				return err
			}
			return cb(k, r)
		})
	})
}

// Runs fn in write transaction over table bucket, bucket is created if not exists
func (st *Storage) update(table string, fn func(b *bolt.Bucket) error) error {
	return st.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(table))
		if err != nil {
			return err
		}
		return fn(b)
	})
}

func putRow(b *bolt.Bucket, key []byte, r row) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return b.Put(key, data)
}

func decodeRow(table string, key, data []byte) (row, error) {
	r := row{}
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, ErrCorruptedRow(table, key, err)
	}
	return r, nil
}

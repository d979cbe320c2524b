/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package expression

import "github.com/voedger/charcoal/pkg/codec"

// Bind parameters collected while rendering expressions.
//
// Values are normalized with codec.ParseValue, placeholders are numbered
// per dialect starting after already collected values.
type Args struct {
	d    Dialect
	vals []any
}

func NewArgs(d Dialect, vals ...any) *Args {
	return &Args{d: d, vals: vals}
}

func (a *Args) Dialect() Dialect { return a.d }

// Adds value and returns its placeholder
func (a *Args) Add(v any) (string, error) {
	v, err := codec.ParseValue(v)
	if err != nil {
		return "", err
	}
	a.vals = append(a.vals, v)
	return a.d.Placeholder(len(a.vals)), nil
}

func (a *Args) Values() []any { return a.vals }

func (a *Args) Len() int { return len(a.vals) }

// renders a value either as literal or as placeholder
type literalFunc func(v any) (string, error)

func inline(d Dialect) literalFunc { return d.Literal }

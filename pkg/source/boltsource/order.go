/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package boltsource

import (
	"math/rand"
	"slices"

	"github.com/voedger/charcoal/pkg/expression"
)

// Sorts rows by active orders. NULL goes first in ascending order, as in MySQL.
//
// Random order shuffles rows, following orders sort shuffled rows stably
func sortRows(rows []row, orders []*expression.Order) error {
	active := []*expression.Order{}
	for _, o := range orders {
		if !o.Active() {
			continue
		}
		switch o.Mode() {
		case expression.OrderMode_Custom:
			return ErrUnsupported("custom order «%s»", o.Raw())
		case expression.OrderMode_Rand:
			rand.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
			continue
		}
		active = append(active, o)
	}
	if len(active) == 0 {
		return nil
	}
	slices.SortStableFunc(rows, func(a, b row) int {
		for _, o := range active {
			if c := compareBy(o, a, b); c != 0 {
				return c
			}
		}
		return 0
	})
	return nil
}

func compareBy(o *expression.Order, a, b row) int {
	va, vb := a[o.Property()], b[o.Property()]
	if o.Mode() == expression.OrderMode_Values {
		return valuePosition(o.Values(), va) - valuePosition(o.Values(), vb)
	}
	var c int
	switch {
	case va == nil && vb == nil:
		c = 0
	case va == nil:
		c = -1
	case vb == nil:
		c = 1
	default:
		c = compare(va, vb)
	}
	if o.Mode() == expression.OrderMode_Desc {
		return -c
	}
	return c
}

// 1-based position of value in list, 0 if not listed, as FIELD() does
func valuePosition(values []any, v any) int {
	if v == nil {
		return 0
	}
	for i, item := range values {
		if compare(v, item) == 0 {
			return i + 1
		}
	}
	return 0
}

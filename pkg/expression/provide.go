/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package expression

import (
	"strings"
)

// Builds filter from filter, data map or filter expression.
//
// Expression with several conditions gives a group filter.
func ParseFilter(v any) (*Filter, error) {
	switch val := v.(type) {
	case *Filter:
		if val == nil {
			return nil, ErrInvalidArgument("filter is nil")
		}
		return val, nil
	case map[string]any:
		f := NewFilter()
		if err := f.SetData(val); err != nil {
			return nil, err
		}
		return f, nil
	case string:
		ff, err := ParseFilters(val)
		if err != nil {
			return nil, err
		}
		if len(ff) == 1 {
			return ff[0], nil
		}
		f := NewFilter()
		f.SetFilters(ff)
		return f, nil
	}
	return nil, ErrInvalidArgument("filter must be a filter, a map or an expression, got %T", v)
}

// Builds filter from data map, panics on error.
//
// Use for filters defined in code only
func MustNewFilter(data map[string]any) *Filter {
	f := NewFilter()
	if err := f.SetData(data); err != nil {
		panic(err)
	}
	return f
}

// Builds order from order, data map or expression.
//
// Expression is `property [asc|desc]`, `rand` or `rand()`.
func ParseOrder(v any) (*Order, error) {
	switch val := v.(type) {
	case *Order:
		if val == nil {
			return nil, ErrInvalidArgument("order is nil")
		}
		return val, nil
	case map[string]any:
		o := NewOrder()
		if err := o.SetData(val); err != nil {
			return nil, err
		}
		return o, nil
	case string:
		return parseOrderString(val)
	}
	return nil, ErrInvalidArgument("order must be an order, a map or an expression, got %T", v)
}

func parseOrderString(s string) (*Order, error) {
	o := NewOrder()
	words := strings.Fields(s)
	switch len(words) {
	case 1:
		switch strings.ToLower(words[0]) {
		case OrderMode_Rand, "rand()", "random()":
			return o, o.SetMode(OrderMode_Rand)
		}
		return o, o.SetProperty(words[0])
	case 2:
		if err := o.SetProperty(words[0]); err != nil {
			return nil, err
		}
		m := strings.ToLower(words[1])
		if m != OrderMode_Asc && m != OrderMode_Desc {
			return nil, ErrInvalidArgument("invalid order direction «%s»", words[1])
		}
		return o, o.SetMode(m)
	}
	return nil, ErrInvalidArgument("can not parse order expression «%s»", s)
}

// Builds orders from comma-separated order expression, like `name asc, created desc`
func ParseOrders(s string) ([]*Order, error) {
	res := []*Order{}
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		o, err := parseOrderString(part)
		if err != nil {
			return nil, err
		}
		res = append(res, o)
	}
	return res, nil
}

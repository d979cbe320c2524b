/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package expression

// Renders `WHERE …` clause of active filters with inlined literals. Empty if nothing to render
func WhereSQL(d Dialect, filters []*Filter) (string, error) {
	return where(d, filters, inline(d))
}

// Renders `WHERE …` clause of active filters with bind placeholders
func BindWhere(args *Args, filters []*Filter) (string, error) {
	return where(args.Dialect(), filters, args.Add)
}

func where(d Dialect, filters []*Filter, lit literalFunc) (string, error) {
	s, err := joinFilters(d, filters, lit, false)
	if err != nil || s == "" {
		return "", err
	}
	return "WHERE " + s, nil
}

// Renders `ORDER BY …` clause of active orders with inlined literals. Empty if nothing to render
func OrderSQL(d Dialect, orders []*Order) (string, error) {
	return orderBy(d, orders, inline(d))
}

// Renders `ORDER BY …` clause of active orders with bind placeholders
func BindOrder(args *Args, orders []*Order) (string, error) {
	return orderBy(args.Dialect(), orders, args.Add)
}

func orderBy(d Dialect, orders []*Order, lit literalFunc) (string, error) {
	s, err := joinOrders(d, orders, lit)
	if err != nil || s == "" {
		return "", err
	}
	return "ORDER BY " + s, nil
}

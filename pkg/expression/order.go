/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package expression

import (
	"fmt"
	"slices"
	"strings"

	"github.com/voedger/charcoal/pkg/codec"
)

// One sort clause.
//
// # Implements:
//   - IExpression
type Order struct {
	property  string
	tableName string
	mode      string
	values    []any
	raw       string
	active    bool
}

func NewOrder() *Order {
	return &Order{
		mode:   OrderMode_Asc,
		active: true,
	}
}

func (o *Order) Property() string { return o.property }

func (o *Order) SetProperty(ident string) error {
	if strings.TrimSpace(ident) == "" {
		return ErrInvalidArgument("order property can not be empty")
	}
	o.property = ident
	return nil
}

func (o *Order) TableName() string { return o.tableName }

func (o *Order) SetTableName(name string) { o.tableName = name }

// Returns mode in lower case
func (o *Order) Mode() string { return o.mode }

func (o *Order) SetMode(mode string) error {
	m := strings.ToLower(strings.TrimSpace(mode))
	if !slices.Contains(validOrderModes, m) {
		return ErrInvalidArgument("invalid order mode «%s»", mode)
	}
	o.mode = m
	return nil
}

// Explicit values order, used in `values` mode
func (o *Order) Values() []any { return o.values }

// Sets explicit values order. Accepts list or comma-separated string
func (o *Order) SetValues(v any) error {
	vals := codec.ParseMultiple(v, codec.DefaultSeparator)
	for i, val := range vals {
		if !codec.IsScalar(val) {
			return ErrInvalidArgument("order value #%d must be a scalar, got %T", i, val)
		}
	}
	o.values = vals
	return nil
}

// Custom SQL, used in `custom` mode
func (o *Order) Raw() string { return o.raw }

func (o *Order) SetRaw(sql string) { o.raw = sql }

func (o *Order) Active() bool { return o.active }

func (o *Order) SetActive(active bool) { o.active = active }

// Configures order from data map.
//
// Known keys: property, mode, values, table_name, string (or raw), active.
func (o *Order) SetData(data map[string]any) (err error) {
	for k, v := range data {
		switch normalizeKey(k) {
		case "property":
			s, ok := v.(string)
			if !ok {
				return ErrInvalidArgument("order property must be a string, got %T", v)
			}
			err = o.SetProperty(s)
		case "mode", "direction":
			s, ok := v.(string)
			if !ok {
				return ErrInvalidArgument("order mode must be a string, got %T", v)
			}
			err = o.SetMode(s)
		case "values":
			err = o.SetValues(v)
		case "tablename", "table":
			s, ok := v.(string)
			if !ok {
				return ErrInvalidArgument("order table name must be a string, got %T", v)
			}
			o.SetTableName(s)
		case "string", "raw", "sql":
			s, ok := v.(string)
			if !ok {
				return ErrInvalidArgument("order raw SQL must be a string, got %T", v)
			}
			o.SetRaw(s)
		case "active":
			o.SetActive(codec.ToBool(v))
		default:
			return ErrInvalidArgument("unknown order key «%s»", k)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (o *Order) SQL(d Dialect) (string, error) {
	return o.render(d, inline(d))
}

func (o *Order) Bind(args *Args) (string, error) {
	return o.render(args.Dialect(), args.Add)
}

func (o *Order) render(d Dialect, lit literalFunc) (string, error) {
	if !o.active {
		return "", nil
	}
	switch o.mode {
	case OrderMode_Rand:
		return d.Rand, nil
	case OrderMode_Custom:
		if o.raw == "" {
			return "", ErrIncomplete("custom order has no SQL")
		}
		return o.raw, nil
	}
	if o.property == "" {
		return "", ErrIncomplete("order has no property")
	}
	field := d.Quoter.Identifier(o.property, o.tableName)
	if o.mode == OrderMode_Values {
		return o.valuesOrder(d, field, lit)
	}
	return field + " " + strings.ToUpper(o.mode), nil
}

// MySQL uses FIELD(), other engines get equivalent CASE expression
func (o *Order) valuesOrder(d Dialect, field string, lit literalFunc) (string, error) {
	if len(o.values) == 0 {
		return "", ErrIncomplete("values order on «%s» has no values", o.property)
	}
	ss := make([]string, 0, len(o.values))
	for _, v := range o.values {
		s, err := lit(v)
		if err != nil {
			return "", err
		}
		ss = append(ss, s)
	}
	if !d.IsPostgres() {
		return "FIELD(" + field + ", " + strings.Join(ss, ", ") + ")", nil
	}
	var b strings.Builder
	b.WriteString("CASE " + field)
	for i, s := range ss {
		fmt.Fprintf(&b, " WHEN %s THEN %d", s, i+1)
	}
	fmt.Fprintf(&b, " ELSE 0 END")
	return b.String(), nil
}

func (o *Order) String() string {
	s, err := o.SQL(MySQL)
	if err != nil {
		return "<invalid order: " + err.Error() + ">"
	}
	return s
}

func joinOrders(d Dialect, orders []*Order, lit literalFunc) (string, error) {
	ss := []string{}
	for _, o := range orders {
		s, err := o.render(d, lit)
		if err != nil {
			return "", err
		}
		if s != "" {
			ss = append(ss, s)
		}
	}
	return strings.Join(ss, ", "), nil
}

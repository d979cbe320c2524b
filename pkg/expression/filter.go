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

// One query predicate.
//
// Filter is either a comparison (property, operator and value), a raw SQL
// condition or a group of nested filters rendered in parentheses.
//
// # Implements:
//   - IExpression
type Filter struct {
	property  string
	tableName string
	val       any
	operator  string
	fn        string
	operand   string
	raw       string
	separator string
	active    bool
	filters   []*Filter
}

func NewFilter() *Filter {
	return &Filter{
		operator:  DefaultOperator,
		operand:   DefaultOperand,
		separator: codec.DefaultSeparator,
		active:    true,
	}
}

func (f *Filter) Property() string { return f.property }

func (f *Filter) SetProperty(ident string) error {
	if strings.TrimSpace(ident) == "" {
		return ErrInvalidArgument("filter property can not be empty")
	}
	f.property = ident
	return nil
}

func (f *Filter) TableName() string { return f.tableName }

func (f *Filter) SetTableName(name string) { f.tableName = name }

func (f *Filter) Val() any { return f.val }

// Sets comparison value. Date-times and properties are converted to storage strings
func (f *Filter) SetVal(v any) error {
	v, err := codec.ParseValue(v)
	if err != nil {
		return err
	}
	f.val = v
	return nil
}

// Returns operator in upper case
func (f *Filter) Operator() string { return f.operator }

func (f *Filter) SetOperator(op string) error {
	norm := normalizeWord(op)
	if !slices.Contains(validOperators, norm) {
		return ErrInvalidArgument("invalid filter operator «%s»", op)
	}
	f.operator = norm
	return nil
}

func (f *Filter) Func() string { return f.fn }

// Sets SQL function wrapping the field. Empty string removes function
func (f *Filter) SetFunc(fn string) error {
	norm := normalizeWord(fn)
	if norm != "" && !slices.Contains(validFuncs, norm) {
		return ErrInvalidArgument("invalid filter function «%s»", fn)
	}
	f.fn = norm
	return nil
}

func (f *Filter) Operand() string { return f.operand }

func (f *Filter) SetOperand(operand string) error {
	norm := normalizeWord(operand)
	if !slices.Contains(validOperands, norm) {
		return ErrInvalidArgument("invalid filter operand «%s»", operand)
	}
	f.operand = norm
	return nil
}

// Returns separator of set values matched by FIND_IN_SET
func (f *Filter) Separator() string {
	if f.separator == "" {
		return codec.DefaultSeparator
	}
	return f.separator
}

func (f *Filter) SetSeparator(sep string) error {
	if sep == "" {
		return ErrInvalidArgument("filter set separator can not be empty")
	}
	f.separator = sep
	return nil
}

// Returns custom SQL condition
func (f *Filter) Raw() string { return f.raw }

// Sets custom SQL condition, which replaces comparison rendering.
// Raw SQL is never escaped, it must not contain user input
func (f *Filter) SetRaw(sql string) { f.raw = sql }

func (f *Filter) Active() bool { return f.active }

func (f *Filter) SetActive(active bool) { f.active = active }

func (f *Filter) Filters() []*Filter { return f.filters }

func (f *Filter) SetFilters(filters []*Filter) { f.filters = slices.Clone(filters) }

func (f *Filter) AddFilter(filter *Filter) { f.filters = append(f.filters, filter) }

// Returns is filter a group of nested filters
func (f *Filter) IsGroup() bool { return len(f.filters) > 0 }

// Returns deep copy of filter
func (f *Filter) Clone() *Filter {
	c := *f
	c.filters = make([]*Filter, 0, len(f.filters))
	for _, n := range f.filters {
		c.filters = append(c.filters, n.Clone())
	}
	return &c
}

// Configures filter from data map.
//
// Known keys: property, val (or value), operator, func (or function), operand,
// table_name, string (or raw), separator, active, filters.
func (f *Filter) SetData(data map[string]any) (err error) {
	for k, v := range data {
		switch normalizeKey(k) {
		case "property":
			s, ok := v.(string)
			if !ok {
				return ErrInvalidArgument("filter property must be a string, got %T", v)
			}
			err = f.SetProperty(s)
		case "val", "value":
			err = f.SetVal(v)
		case "operator":
			err = setWord(v, "operator", f.SetOperator)
		case "func", "function":
			err = setWord(v, "func", f.SetFunc)
		case "operand":
			err = setWord(v, "operand", f.SetOperand)
		case "tablename", "table":
			s, ok := v.(string)
			if !ok {
				return ErrInvalidArgument("filter table name must be a string, got %T", v)
			}
			f.SetTableName(s)
		case "string", "raw", "sql":
			s, ok := v.(string)
			if !ok {
				return ErrInvalidArgument("filter raw SQL must be a string, got %T", v)
			}
			f.SetRaw(s)
		case "separator":
			s, ok := v.(string)
			if !ok {
				return ErrInvalidArgument("filter set separator must be a string, got %T", v)
			}
			err = f.SetSeparator(s)
		case "active":
			f.SetActive(codec.ToBool(v))
		case "filters":
			err = f.setNested(v)
		default:
			return ErrInvalidArgument("unknown filter key «%s»", k)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (f *Filter) setNested(v any) error {
	nested := []*Filter{}
	for _, item := range codec.ParseMultiple(v, "\x00") {
		n, err := ParseFilter(item)
		if err != nil {
			return err
		}
		nested = append(nested, n)
	}
	f.filters = nested
	return nil
}

// Renders condition with inlined literals
func (f *Filter) SQL(d Dialect) (string, error) {
	return f.render(d, inline(d))
}

// Renders condition with bind placeholders, values are collected into args
func (f *Filter) Bind(args *Args) (string, error) {
	return f.render(args.Dialect(), args.Add)
}

func (f *Filter) render(d Dialect, lit literalFunc) (string, error) {
	if !f.active {
		return "", nil
	}
	if f.raw != "" {
		if f.IsGroup() {
			return "", ErrInvalidArgument("filter can not have both raw SQL and nested filters")
		}
		return f.raw, nil
	}
	if !f.IsGroup() {
		return f.condition(d, lit)
	}

	parts := []string{}
	if f.property != "" {
		c, err := f.condition(d, lit)
		if err != nil {
			return "", err
		}
		parts = append(parts, c)
	}
	nested, err := joinFilters(d, f.filters, lit, len(parts) > 0)
	if err != nil {
		return "", err
	}
	if nested != "" {
		parts = append(parts, nested)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "(" + strings.Join(parts, "") + ")", nil
}

// Renders single comparison
func (f *Filter) condition(d Dialect, lit literalFunc) (string, error) {
	if f.property == "" {
		return "", ErrIncomplete("filter has no property")
	}
	field := d.Quoter.Identifier(f.property, f.tableName)
	if f.fn != "" {
		field = f.fn + "(" + field + ")"
	}

	switch f.operator {
	case "IS NULL", "IS NOT NULL":
		return field + " " + f.operator, nil
	case "IN", "NOT IN":
		return f.inList(field, lit)
	case "FIND_IN_SET":
		return f.findInSet(d, field, lit)
	case "%", "MOD":
		return f.modulo(field, lit)
	case "REGEXP", "NOT REGEXP":
		v, err := lit(f.val)
		if err != nil {
			return "", err
		}
		op := f.operator
		if d.IsPostgres() {
			op = "~"
			if f.operator == "NOT REGEXP" {
				op = "!~"
			}
		}
		return field + " " + op + " " + v, nil
	}

	switch val := f.val.(type) {
	case nil:
		switch f.operator {
		case "=", "IS":
			return field + " IS NULL", nil
		case "!=", "IS NOT":
			return field + " IS NOT NULL", nil
		}
	case bool:
		if f.operator == "IS" || f.operator == "IS NOT" {
			if val {
				return field + " " + f.operator + " TRUE", nil
			}
			return field + " " + f.operator + " FALSE", nil
		}
	}
	v, err := lit(f.val)
	if err != nil {
		return "", err
	}
	return field + " " + f.operator + " " + v, nil
}

// MySQL FIND_IN_SET knows comma only, other separators are replaced with comma
func (f *Filter) findInSet(d Dialect, field string, lit literalFunc) (string, error) {
	v, err := lit(f.val)
	if err != nil {
		return "", err
	}
	sep := "','"
	if f.Separator() != codec.DefaultSeparator {
		if sep, err = lit(f.Separator()); err != nil {
			return "", err
		}
		if !d.IsPostgres() {
			field = fmt.Sprintf("REPLACE(%s, %s, ',')", field, sep)
		}
	}
	if d.IsPostgres() {
		return fmt.Sprintf("%s = ANY(string_to_array(%s, %s))", v, field, sep), nil
	}
	return fmt.Sprintf("FIND_IN_SET(%s, %s)", v, field), nil
}

// Empty IN list never matches, empty NOT IN list always matches
func (f *Filter) inList(field string, lit literalFunc) (string, error) {
	vals := codec.ParseMultiple(f.val, codec.DefaultSeparator)
	if len(vals) == 0 {
		if f.operator == "IN" {
			return "1 = 0", nil
		}
		return "1 = 1", nil
	}
	ss := make([]string, 0, len(vals))
	for _, v := range vals {
		s, err := lit(v)
		if err != nil {
			return "", err
		}
		ss = append(ss, s)
	}
	return field + " " + f.operator + " (" + strings.Join(ss, ", ") + ")", nil
}

// Value is a divisor or a [divisor, remainder] pair, remainder defaults to zero
func (f *Filter) modulo(field string, lit literalFunc) (string, error) {
	vals := codec.ParseMultiple(f.val, codec.DefaultSeparator)
	if len(vals) == 0 || len(vals) > 2 {
		return "", ErrInvalidArgument("modulo filter on «%s» requires divisor and optional remainder", f.property)
	}
	divisor, err := lit(vals[0])
	if err != nil {
		return "", err
	}
	remainder := "0"
	if len(vals) == 2 {
		if remainder, err = lit(vals[1]); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("MOD(%s, %s) = %s", field, divisor, remainder), nil
}

func (f *Filter) String() string {
	s, err := f.SQL(MySQL)
	if err != nil {
		return "<invalid filter: " + err.Error() + ">"
	}
	return s
}

// Renders active filters joined with their operands.
//
// Operand of the first rendered filter is omitted unless leading is set.
func joinFilters(d Dialect, filters []*Filter, lit literalFunc, leading bool) (string, error) {
	var b strings.Builder
	for _, f := range filters {
		s, err := f.render(d, lit)
		if err != nil {
			return "", err
		}
		if s == "" {
			continue
		}
		if b.Len() > 0 || leading {
			b.WriteString(" " + f.operand + " ")
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func setWord(v any, name string, set func(string) error) error {
	s, ok := v.(string)
	if !ok {
		return ErrInvalidArgument("filter %s must be a string, got %T", name, v)
	}
	return set(s)
}

// Upper-cases word and collapses inner whitespace: `is  not null` gives `IS NOT NULL`
func normalizeWord(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

// Normalizes data key: `table_name`, `table-name` and `tableName` give `tablename`
func normalizeKey(k string) string {
	k = strings.ReplaceAll(k, "_", "")
	k = strings.ReplaceAll(k, "-", "")
	return strings.ToLower(k)
}

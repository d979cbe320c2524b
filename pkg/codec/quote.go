/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package codec

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Quoting rules of an SQL engine
type Quoter struct {
	// Identifier quote char, "`" for MySQL and `"` for Postgres
	IdentQuote string
}

var (
	MySQLQuoter    = Quoter{IdentQuote: "`"}
	PostgresQuoter = Quoter{IdentQuote: `"`}
)

// Quotes an identifier, optionally qualified with table name.
//
// Empty identifier is returned as empty string, `*` is never quoted.
// Quote chars inside identifier are doubled.
func (q Quoter) Identifier(ident string, table ...string) string {
	if ident == "" {
		return ""
	}
	s := ident
	if ident != wildcardIdent {
		s = q.IdentQuote + strings.ReplaceAll(ident, q.IdentQuote, q.IdentQuote+q.IdentQuote) + q.IdentQuote
	}
	if len(table) > 0 && table[0] != "" {
		s = q.Identifier(table[0]) + "." + s
	}
	return s
}

// Quotes list of identifiers
func (q Quoter) Identifiers(idents []string, table ...string) []string {
	res := make([]string, 0, len(idents))
	for _, i := range idents {
		res = append(res, q.Identifier(i, table...))
	}
	return res
}

// Quotes an identifier with MySQL rules
func QuoteIdentifier(ident string, table ...string) string {
	return MySQLQuoter.Identifier(ident, table...)
}

// Returns literal SQL representation of the value.
//
// Booleans became `0` or `1`, numbers are returned as is,
// everything else is HTML-escaped and double quoted.
// Date-time values are formatted with DateTimeLayout first.
func QuoteValue(v any) (string, error) {
	v, err := ParseValue(v)
	if err != nil {
		return "", err
	}
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case bool:
		if val {
			return "1", nil
		}
		return "0", nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(val), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case string:
		if IsNumeric(val) {
			return val, nil
		}
		return `"` + html.EscapeString(val) + `"`, nil
	}
	return `"` + html.EscapeString(fmt.Sprint(v)) + `"`, nil
}

// Normalizes value before quoting or binding.
//
// Date-time values are formatted with DateTimeLayout,
// storable values (properties) are replaced by their storage value.
func ParseValue(v any) (any, error) {
	switch val := v.(type) {
	case time.Time:
		return val.Format(DateTimeLayout), nil
	case *time.Time:
		if val == nil {
			return nil, nil
		}
		return val.Format(DateTimeLayout), nil
	case IStorable:
		sv, err := val.StorageValue()
		if err != nil {
			return nil, err
		}
		if t, ok := sv.(time.Time); ok {
			return t.Format(DateTimeLayout), nil
		}
		return sv, nil
	}
	return v, nil
}

var numericRe = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?\s*$`)

// Returns is string is a decimal number, like PHP is_numeric() does
func IsNumeric(s string) bool {
	return numericRe.MatchString(s)
}

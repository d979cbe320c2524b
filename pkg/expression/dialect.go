/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package expression

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/voedger/charcoal/pkg/codec"
)

// SQL dialect of storage engine
type Dialect struct {
	Name   string
	Quoter codec.Quoter

	// Random order function
	Rand string

	// Renders literal value
	Literal func(v any) (string, error)

	// Renders n-th (1-based) bind parameter placeholder
	Placeholder func(n int) string
}

var MySQL = Dialect{
	Name:        DialectName_MySQL,
	Quoter:      codec.MySQLQuoter,
	Rand:        "RAND()",
	Literal:     codec.QuoteValue,
	Placeholder: func(int) string { return "?" },
}

var Postgres = Dialect{
	Name:        DialectName_Postgres,
	Quoter:      codec.PostgresQuoter,
	Rand:        "RANDOM()",
	Literal:     postgresLiteral,
	Placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
}

// Returns dialect by name
func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case DialectName_MySQL, "mariadb", "":
		return MySQL, nil
	case DialectName_Postgres, "postgresql", "pgx":
		return Postgres, nil
	}
	return Dialect{}, ErrUnknownDialect(name)
}

func (d Dialect) IsPostgres() bool { return d.Name == DialectName_Postgres }

// Postgres strings are always single quoted, numeric-looking ones included:
// quoted literal is coerced to column type. Booleans are TRUE/FALSE
func postgresLiteral(v any) (string, error) {
	v, err := codec.ParseValue(v)
	if err != nil {
		return "", err
	}
	switch val := v.(type) {
	case nil, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return codec.QuoteValue(val)
	case bool:
		if val {
			return "TRUE", nil
		}
		return "FALSE", nil
	case string:
		return postgresString(val), nil
	}
	return postgresString(fmt.Sprint(v)), nil
}

func postgresString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

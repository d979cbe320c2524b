/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package expression

// Filter operators
var validOperators = []string{
	"=", "IS", "!=", "IS NOT",
	"LIKE", "NOT LIKE",
	"FIND_IN_SET",
	">", ">=", "<", "<=",
	"IS NULL", "IS NOT NULL",
	"%", "MOD",
	"IN", "NOT IN",
	"REGEXP", "NOT REGEXP",
}

// SQL functions which may wrap filtered field
var validFuncs = []string{
	"ABS", "ACOS", "ASIN", "ATAN", "CEIL", "CEILING", "CHAR_LENGTH", "COS", "COT",
	"DATE", "DAY", "DAYOFMONTH", "DAYOFWEEK", "DAYOFYEAR", "DEGREES", "EXP", "FLOOR",
	"HOUR", "LCASE", "LENGTH", "LOG", "LOG10", "LOG2", "LOWER", "LTRIM", "MINUTE", "MONTH",
	"QUARTER", "RADIANS", "REVERSE", "ROUND", "RTRIM", "SECOND", "SIGN", "SIN", "SQRT",
	"TAN", "TRIM", "UCASE", "UNIX_TIMESTAMP", "UPPER", "WEEK", "WEEKDAY", "WEEKOFYEAR",
	"YEAR", "YEARWEEK",
}

// Boolean join operands
var validOperands = []string{"AND", "&&", "OR", "||", "XOR"}

const (
	DefaultOperator = "="
	DefaultOperand  = "AND"
)

// Order modes
const (
	OrderMode_Asc    = "asc"
	OrderMode_Desc   = "desc"
	OrderMode_Rand   = "rand"
	OrderMode_Values = "values"
	OrderMode_Custom = "custom"
)

var validOrderModes = []string{OrderMode_Asc, OrderMode_Desc, OrderMode_Rand, OrderMode_Values, OrderMode_Custom}

const DefaultPage = 1

// Dialect names
const (
	DialectName_MySQL    = "mysql"
	DialectName_Postgres = "postgres"
)

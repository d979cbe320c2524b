/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package boltsource

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/voedger/charcoal/pkg/codec"
	"github.com/voedger/charcoal/pkg/expression"
)

// Result of single condition joined to previous ones by operand
type term struct {
	operand string
	val     bool
}

// Evaluates active filters against row with the precedence of SQL operands:
// AND binds tighter than XOR, XOR binds tighter than OR.
func match(r row, filters []*expression.Filter) (bool, error) {
	tt := []term{}
	for _, f := range filters {
		ok, active, err := matchFilter(r, f)
		if err != nil {
			return false, err
		}
		if active {
			tt = append(tt, term{operand: f.Operand(), val: ok})
		}
	}
	return reduce(tt), nil
}

func reduce(tt []term) bool {
	if len(tt) == 0 {
		return true
	}
	tt = fold(tt, isAnd, func(a, b bool) bool { return a && b })
	tt = fold(tt, isXor, func(a, b bool) bool { return a != b })
	tt = fold(tt, isOr, func(a, b bool) bool { return a || b })
	return tt[0].val
}

// Merges every term joined with operand into previous one
func fold(tt []term, operand func(string) bool, op func(a, b bool) bool) []term {
	res := []term{tt[0]}
	for _, t := range tt[1:] {
		if operand(t.operand) {
			res[len(res)-1].val = op(res[len(res)-1].val, t.val)
			continue
		}
		res = append(res, t)
	}
	return res
}

func isAnd(operand string) bool { return operand == "AND" || operand == "&&" }
func isXor(operand string) bool { return operand == "XOR" }
func isOr(operand string) bool  { return operand == "OR" || operand == "||" }

// Evaluates filter, active is false if filter renders nothing
func matchFilter(r row, f *expression.Filter) (ok, active bool, err error) {
	if !f.Active() {
		return false, false, nil
	}
	if f.Raw() != "" {
		return false, false, ErrUnsupported("raw filter «%s»", f.Raw())
	}
	if !f.IsGroup() {
		ok, err = condition(r, f)
		return ok, err == nil, err
	}
	tt := []term{}
	if f.Property() != "" {
		ok, err := condition(r, f)
		if err != nil {
			return false, false, err
		}
		tt = append(tt, term{val: ok})
	}
	for _, nested := range f.Filters() {
		ok, active, err := matchFilter(r, nested)
		if err != nil {
			return false, false, err
		}
		if active {
			tt = append(tt, term{operand: nested.Operand(), val: ok})
		}
	}
	if len(tt) == 0 {
		return false, false, nil
	}
	return reduce(tt), true, nil
}

// Evaluates single comparison. Comparison with NULL never matches, as in SQL
func condition(r row, f *expression.Filter) (bool, error) {
	v, err := apply(f.Func(), r[f.Property()])
	if err != nil {
		return false, err
	}
	op := f.Operator()
	switch op {
	case "IS NULL":
		return v == nil, nil
	case "IS NOT NULL":
		return v != nil, nil
	}

	fv := f.Val()
	switch val := fv.(type) {
	case nil:
		switch op {
		case "=", "IS":
			return v == nil, nil
		case "!=", "IS NOT":
			return v != nil, nil
		}
	case bool:
		if op == "IS" || op == "IS NOT" {
			is := v != nil && codec.ToBool(v) == val
			return is == (op == "IS"), nil
		}
	}
	if v == nil {
		return false, nil
	}

	switch op {
	case "=", "IS":
		return compare(v, fv) == 0, nil
	case "!=", "IS NOT":
		return compare(v, fv) != 0, nil
	case ">":
		return compare(v, fv) > 0, nil
	case ">=":
		return compare(v, fv) >= 0, nil
	case "<":
		return compare(v, fv) < 0, nil
	case "<=":
		return compare(v, fv) <= 0, nil
	case "IN", "NOT IN":
		found := false
		for _, item := range codec.ParseMultiple(fv, codec.DefaultSeparator) {
			if compare(v, item) == 0 {
				found = true
				break
			}
		}
		return found == (op == "IN"), nil
	case "FIND_IN_SET":
		s, _ := codec.ToString(v)
		needle, _ := codec.ToString(fv)
		for _, item := range strings.Split(s, f.Separator()) {
			if item == needle {
				return true, nil
			}
		}
		return false, nil
	case "LIKE", "NOT LIKE":
		re, err := likeRegexp(fv)
		if err != nil {
			return false, err
		}
		s, _ := codec.ToString(v)
		return re.MatchString(s) == (op == "LIKE"), nil
	case "REGEXP", "NOT REGEXP":
		pattern, _ := codec.ToString(fv)
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return false, ErrUnsupported("regexp «%s»: %v", pattern, err)
		}
		s, _ := codec.ToString(v)
		return re.MatchString(s) == (op == "REGEXP"), nil
	case "%", "MOD":
		return modulo(v, fv)
	}
	return false, ErrUnsupported("operator «%s»", op)
}

// Numbers are compared as numbers, everything else as case-insensitive strings
func compare(a, b any) int {
	if fa, ok := toNumber(a); ok {
		if fb, ok := toNumber(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	sa, _ := codec.ToString(a)
	sb, _ := codec.ToString(b)
	return strings.Compare(strings.ToLower(sa), strings.ToLower(sb))
}

func toNumber(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		if !codec.IsNumeric(s) {
			return 0, false
		}
	}
	return codec.ToFloat(v)
}

func modulo(v, fv any) (bool, error) {
	vals := codec.ParseMultiple(fv, codec.DefaultSeparator)
	if len(vals) == 0 || len(vals) > 2 {
		return false, ErrUnsupported("modulo requires divisor and optional remainder")
	}
	n, ok1 := toNumber(v)
	d, ok2 := toNumber(vals[0])
	if !ok1 || !ok2 || d == 0 {
		return false, nil
	}
	rem := 0.0
	if len(vals) == 2 {
		var ok bool
		if rem, ok = toNumber(vals[1]); !ok {
			return false, nil
		}
	}
	return math.Mod(n, d) == rem, nil
}

// Converts LIKE pattern to case-insensitive regexp: `%` is any string, `_` is any character
func likeRegexp(pattern any) (*regexp.Regexp, error) {
	s, ok := codec.ToString(pattern)
	if !ok {
		return nil, ErrUnsupported("LIKE pattern must be scalar, got %T", pattern)
	}
	var b strings.Builder
	b.WriteString("(?is)^")
	escaped := false
	for _, c := range s {
		switch {
		case escaped:
			b.WriteString(regexp.QuoteMeta(string(c)))
			escaped = false
		case c == '\\':
			escaped = true
		case c == '%':
			b.WriteString(".*")
		case c == '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}

// Applies filter function to stored value
func apply(fn string, v any) (any, error) {
	if fn == "" || v == nil {
		return v, nil
	}
	if f, ok := stringFuncs[fn]; ok {
		s, _ := codec.ToString(v)
		return f(s), nil
	}
	if f, ok := numberFuncs[fn]; ok {
		n, ok := toNumber(v)
		if !ok {
			return nil, nil
		}
		return f(n), nil
	}
	if f, ok := dateFuncs[fn]; ok {
		s, _ := codec.ToString(v)
		t, err := time.Parse(codec.DateTimeLayout, s)
		if err != nil {
			if t, err = time.Parse(time.DateOnly, s); err != nil {
				return nil, nil
			}
		}
		return f(t), nil
	}
	return nil, ErrUnsupported("function «%s»", fn)
}

var stringFuncs = map[string]func(string) any{
	"UPPER":       func(s string) any { return strings.ToUpper(s) },
	"UCASE":       func(s string) any { return strings.ToUpper(s) },
	"LOWER":       func(s string) any { return strings.ToLower(s) },
	"LCASE":       func(s string) any { return strings.ToLower(s) },
	"TRIM":        func(s string) any { return strings.TrimSpace(s) },
	"LTRIM":       func(s string) any { return strings.TrimLeft(s, " ") },
	"RTRIM":       func(s string) any { return strings.TrimRight(s, " ") },
	"LENGTH":      func(s string) any { return int64(len(s)) },
	"CHAR_LENGTH": func(s string) any { return int64(utf8.RuneCountInString(s)) },
	"REVERSE": func(s string) any {
		rr := []rune(s)
		for i, j := 0, len(rr)-1; i < j; i, j = i+1, j-1 {
			rr[i], rr[j] = rr[j], rr[i]
		}
		return string(rr)
	},
}

var numberFuncs = map[string]func(float64) any{
	"ABS":     func(n float64) any { return math.Abs(n) },
	"CEIL":    func(n float64) any { return math.Ceil(n) },
	"CEILING": func(n float64) any { return math.Ceil(n) },
	"FLOOR":   func(n float64) any { return math.Floor(n) },
	"ROUND":   func(n float64) any { return math.Round(n) },
	"SIGN": func(n float64) any {
		switch {
		case n > 0:
			return 1.0
		case n < 0:
			return -1.0
		}
		return 0.0
	},
	"SQRT": func(n float64) any { return math.Sqrt(n) },
}

var dateFuncs = map[string]func(time.Time) any{
	"DATE":           func(t time.Time) any { return t.Format(time.DateOnly) },
	"YEAR":           func(t time.Time) any { return int64(t.Year()) },
	"MONTH":          func(t time.Time) any { return int64(t.Month()) },
	"DAY":            func(t time.Time) any { return int64(t.Day()) },
	"DAYOFMONTH":     func(t time.Time) any { return int64(t.Day()) },
	"DAYOFYEAR":      func(t time.Time) any { return int64(t.YearDay()) },
	"HOUR":           func(t time.Time) any { return int64(t.Hour()) },
	"MINUTE":         func(t time.Time) any { return int64(t.Minute()) },
	"SECOND":         func(t time.Time) any { return int64(t.Second()) },
	"UNIX_TIMESTAMP": func(t time.Time) any { return t.Unix() },
}

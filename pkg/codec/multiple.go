/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package codec

import (
	"reflect"
	"strings"

	"github.com/samber/lo"
)

// Normalizes multiple value input into list.
//
// Strings are split by separator and trimmed, slices are converted
// to []any, blank value gives empty list and any other value gives
// list with single element.
func ParseMultiple(v any, sep string) []any {
	if sep == "" {
		sep = DefaultSeparator
	}
	switch val := v.(type) {
	case nil:
		return []any{}
	case []any:
		return val
	case string:
		return lo.Map(SplitMultiple(val, sep), func(s string, _ int) any { return s })
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		res := make([]any, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			res = append(res, rv.Index(i).Interface())
		}
		return res
	}
	return []any{v}
}

// Splits string by separator, trims parts and removes empty ones
func SplitMultiple(s, sep string) []string {
	if sep == "" {
		sep = DefaultSeparator
	}
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := lo.Map(strings.Split(s, sep), func(p string, _ int) string { return strings.TrimSpace(p) })
	return lo.Filter(parts, func(p string, _ int) bool { return p != "" })
}

// Joins scalar values by separator
func JoinMultiple(vals []any, sep string) string {
	ss := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := ToString(v); ok && s != "" {
			ss = append(ss, s)
		}
	}
	return strings.Join(ss, sep)
}

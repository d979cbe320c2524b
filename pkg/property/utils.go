/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/voedger/charcoal/pkg/codec"
	"github.com/voedger/charcoal/pkg/translator"
)

// Normalizes definition key: `max_length`, `max-length` and `maxLength` give `maxlength`
func normalizeKey(k string) string {
	k = strings.ReplaceAll(k, "_", "")
	k = strings.ReplaceAll(k, "-", "")
	return strings.ToLower(k)
}

// Encodes value to JSON without HTML escaping, so unicode and `<>&` are kept as is
func jsonEncode(v any) (string, error) {
	buf := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func isList(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.([]byte); ok {
		return false
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

func isMap(v any) bool {
	if v == nil {
		return false
	}
	return reflect.ValueOf(v).Kind() == reflect.Map
}

// Converts raw definition value to int
func toInt(v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case int32:
		return int(val), nil
	case uint64:
		return int(val), nil
	case float64:
		if val != float64(int(val)) {
			return 0, fmt.Errorf("%v is not integer", v)
		}
		return int(val), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(val))
	case nil:
		return 0, nil
	}
	return 0, fmt.Errorf("%v (%T) is not integer", v, v)
}

// Converts raw definition value to string list. Accepts string (comma-separated) or list
func toStringList(v any) ([]string, error) {
	if s, ok := v.(string); ok {
		return codec.SplitMultiple(s, codec.DefaultSeparator), nil
	}
	res := []string{}
	for _, item := range codec.ParseMultiple(v, codec.DefaultSeparator) {
		s, ok := codec.ToString(item)
		if !ok {
			return nil, fmt.Errorf("%v (%T) is not string", item, item)
		}
		res = append(res, s)
	}
	return res, nil
}

// Returns text of translation in locale, falls back to default locale
func translated(tr *translator.Translation, locale, defaultLocale string) string {
	if tr == nil {
		return ""
	}
	if s, ok := tr.Get(locale); ok {
		return s
	}
	s, _ := tr.Get(defaultLocale)
	return s
}

// Returns scalar string of value, non-scalar values are JSON encoded
func scalarOrJSON(v any) string {
	if s, ok := codec.ToString(v); ok {
		return s
	}
	s, err := jsonEncode(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

// Returns items of list, or single item list for other not nil values
func listItems(v any) []any {
	if v == nil {
		return nil
	}
	if isList(v) {
		return codec.ParseMultiple(v, codec.DefaultSeparator)
	}
	return []any{v}
}

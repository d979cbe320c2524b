/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package codec

import (
	"strings"
	"testing"
	"time"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
)

type storableMock struct {
	val any
	err error
}

func (s storableMock) StorageValue() (any, error) { return s.val, s.err }

func TestQuoteIdentifier(t *testing.T) {
	require := require.New(t)

	require.Equal("", QuoteIdentifier(""))
	require.Equal("*", QuoteIdentifier("*"))
	require.Equal("`foo`", QuoteIdentifier("foo"))
	require.Equal("`tbl`.`foo`", QuoteIdentifier("foo", "tbl"))
	require.Equal("`tbl`.*", QuoteIdentifier("*", "tbl"))
	require.Equal("`fo``o`", QuoteIdentifier("fo`o"))

	require.Equal(`"tbl"."foo"`, PostgresQuoter.Identifier("foo", "tbl"))
	require.Equal([]string{"`a`", "`b`"}, MySQLQuoter.Identifiers([]string{"a", "b"}))
}

func TestQuoteValue(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"nil", nil, "NULL"},
		{"true", true, "1"},
		{"false", false, "0"},
		{"int", 42, "42"},
		{"float", 4.5, "4.5"},
		{"numeric string", "12.50", "12.50"},
		{"string", "foo", `"foo"`},
		{"html", `<a href="x">`, `"&lt;a href=&#34;x&#34;&gt;"`},
		{"time", time.Date(2015, 1, 2, 3, 4, 5, 0, time.UTC), `"2015-01-02 03:04:05"`},
		{"storable", storableMock{val: "bar"}, `"bar"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QuoteValue(tt.v)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	t.Run("must fail if storable fails", func(t *testing.T) {
		_, err := QuoteValue(storableMock{err: ErrInvalidDate})
		require.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestQuoteFuzz(t *testing.T) {
	require := require.New(t)
	f := fuzz.New().NilChance(0)

	for i := 0; i < 500; i++ {
		var s string
		f.Fuzz(&s)
		if s == "" || s == "*" {
			continue
		}
		q := QuoteIdentifier(s)
		require.True(strings.HasPrefix(q, "`") && strings.HasSuffix(q, "`"), q)
		require.Equal(strings.Count(s, "`")*2+2, strings.Count(q, "`"), q)

		v, err := QuoteValue(s)
		require.NoError(err)
		if !IsNumeric(s) {
			inner := v[1 : len(v)-1]
			require.NotContains(inner, `"`, v)
			require.NotContains(inner, `<`, v)
		}
	}
}

func TestToBool(t *testing.T) {
	require := require.New(t)

	for _, v := range []any{nil, false, 0, int64(0), 0.0, "", "0", []any{}, map[string]any{}} {
		require.False(ToBool(v), "%#v", v)
	}
	for _, v := range []any{true, 1, -1, 0.1, "1", "foo", "false", []any{1}, map[string]any{"a": 1}, struct{}{}} {
		require.True(ToBool(v), "%#v", v)
	}
}

func TestIsBlank(t *testing.T) {
	require := require.New(t)
	require.True(IsBlank(nil))
	require.True(IsBlank(""))
	require.True(IsBlank([]string{}))
	require.True(IsBlank(map[string]any{}))
	require.False(IsBlank(false))
	require.False(IsBlank(0))
	require.False(IsBlank("x"))
}

func TestParseMultiple(t *testing.T) {
	require := require.New(t)

	require.Equal([]any{}, ParseMultiple(nil, ","))
	require.Equal([]any{"a", "b", "c"}, ParseMultiple("a, b,,c ", ","))
	require.Equal([]any{"a", "b"}, ParseMultiple("a|b", "|"))
	require.Equal([]any{1, 2}, ParseMultiple([]int{1, 2}, ","))
	require.Equal([]any{42}, ParseMultiple(42, ","))
	require.Equal("a,1,b", JoinMultiple([]any{"a", 1, nil, "b"}, ","))
}

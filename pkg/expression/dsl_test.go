/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package expression

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFilters(t *testing.T) {
	require := require.New(t)

	where := func(s string) string {
		ff, err := ParseFilters(s)
		require.NoError(err, s)
		res, err := WhereSQL(MySQL, ff)
		require.NoError(err, s)
		return res
	}

	t.Run("comparisons", func(t *testing.T) {
		require.Equal("WHERE `name` = \"foo\"", where(`name = 'foo'`))
		require.Equal("WHERE `age` >= 18 AND `age` < 65", where(`age >= 18 and age < 65`))
		require.Equal("WHERE `a` != 1", where(`a <> 1`))
		require.Equal("WHERE `s` = \"active\"", where(`s = active`))
		require.Equal("WHERE `t`.`x` = -1.5", where(`t.x = -1.5`))
	})

	t.Run("multi-word operators", func(t *testing.T) {
		require.Equal("WHERE `d` IS NULL", where(`d is null`))
		require.Equal("WHERE `d` IS NOT NULL OR `e` NOT LIKE \"%x\"", where(`d IS NOT NULL || e not like "%x"`))
		require.Equal("WHERE `f` IS NOT TRUE", where(`f IS NOT TRUE`))
	})

	t.Run("lists", func(t *testing.T) {
		require.Equal("WHERE `id` IN (1, 2, \"x\")", where(`id IN (1, 2, 'x')`))
		require.Equal("WHERE `id` NOT IN (3)", where(`id not in (3)`))
		require.Equal("WHERE 1 = 0", where(`id IN ()`))
	})

	t.Run("functions", func(t *testing.T) {
		require.Equal("WHERE UPPER(`role`) = \"ADMIN\"", where(`UPPER(role) = 'ADMIN'`))
		require.Equal("WHERE YEAR(`u`.`created`) = 2024", where(`year(u.created) = 2024`))

		_, err := ParseFilters(`SLEEP(a) = 1`)
		require.ErrorIs(err, ErrInvalidArgumentError)
	})

	t.Run("groups", func(t *testing.T) {
		require.Equal(
			"WHERE `a` = 1 AND (`b` = 2 OR `c` = 3) XOR `d` = 4",
			where(`a = 1 AND (b = 2 OR c = 3) XOR d = 4`),
		)
	})

	t.Run("identifiers are not confused with operators", func(t *testing.T) {
		require.Equal("WHERE `is_active` = 1 AND `index` = 2 AND `order_id` = 3", where(`is_active = 1 AND index = 2 AND order_id = 3`))
	})

	t.Run("errors", func(t *testing.T) {
		for _, s := range []string{``, `a`, `a =`, `a = 1 AND`, `(a = 1`, `a ~ 1`} {
			_, err := ParseFilters(s)
			require.ErrorIs(err, ErrInvalidArgumentError, s)
		}
	})
}

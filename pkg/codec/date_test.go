/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	require := require.New(t)
	d := time.Date(2015, time.March, 1, 14, 5, 9, 0, time.UTC)

	require.Equal("2015-03-01 14:05:09", FormatDate(d, DefaultDateFormat))
	require.Equal("1st March 2015", FormatDate(d, "jS F Y"))
	require.Equal("Sun, 01 Mar 15", FormatDate(d, "D, d M y"))
	require.Equal("2:05 pm", FormatDate(d, "g:i a"))
	require.Equal("Y=2015", FormatDate(d, `\Y=Y`))
	require.Equal("", FormatDate(d, ""))
	require.Equal("31", FormatDate(d, "t"))
	require.Equal("7", FormatDate(d, "N"))
}

func TestParseDate(t *testing.T) {
	require := require.New(t)
	now := func() time.Time { return time.Date(2020, 5, 6, 7, 8, 9, 0, time.UTC) }

	t.Run("must be ok to parse layouts", func(t *testing.T) {
		for _, s := range []string{"2015-01-01", "2015-01-01 10:00:00", "2015-01-01T10:00:00Z", "2015-01-01T10:00"} {
			d, err := ParseDate(s, now)
			require.NoError(err, s)
			require.Equal(2015, d.Year())
		}
	})

	t.Run("must be ok to parse relative words", func(t *testing.T) {
		d, err := ParseDate("now", now)
		require.NoError(err)
		require.Equal(now(), d)

		d, err = ParseDate("tomorrow", now)
		require.NoError(err)
		require.Equal(time.Date(2020, 5, 7, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("must be ok to parse unix timestamp", func(t *testing.T) {
		d, err := ParseDate("@0", now)
		require.NoError(err)
		require.Equal(int64(0), d.Unix())
	})

	t.Run("must fail on garbage", func(t *testing.T) {
		_, err := ParseDate("not a date", now)
		require.ErrorIs(err, ErrInvalidDate)
	})
}

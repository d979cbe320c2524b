/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package codec

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layouts tried by ParseDate, in order
var parseLayouts = []string{
	DateTimeLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
}

// Parses date-time string.
//
// Accepts storage layout, ISO-8601 variants, RFC-1123 and relative
// words `now`, `today`, `tomorrow`, `yesterday`.
func ParseDate(s string, now func() time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if now == nil {
		now = time.Now
	}
	switch strings.ToLower(s) {
	case "now":
		return now(), nil
	case "today", "midnight":
		return truncateDay(now()), nil
	case "tomorrow":
		return truncateDay(now()).AddDate(0, 0, 1), nil
	case "yesterday":
		return truncateDay(now()).AddDate(0, 0, -1), nil
	}
	if s != "" && s[0] == '@' {
		if sec, err := strconv.ParseInt(s[1:], 10, 64); err == nil {
			return time.Unix(sec, 0).UTC(), nil
		}
	}
	for _, l := range parseLayouts {
		if t, err := time.ParseInLocation(l, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("can not parse «%s»: %w", s, ErrInvalidDate)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Formats time with PHP date() format characters.
//
// Supported characters: d D j l N S w z W F m M n t L o Y y a A g G h H i s u v e T P O U c r.
// Backslash escapes the next character, unknown characters are copied as is.
func FormatDate(t time.Time, format string) string {
	var b strings.Builder
	rr := []rune(format)
	for i := 0; i < len(rr); i++ {
		c := rr[i]
		if c == '\\' {
			if i+1 < len(rr) {
				i++
				b.WriteRune(rr[i])
			}
			continue
		}
		b.WriteString(formatDateChar(t, c))
	}
	return b.String()
}

func formatDateChar(t time.Time, c rune) string {
	switch c {
	case 'd':
		return t.Format("02")
	case 'D':
		return t.Format("Mon")
	case 'j':
		return strconv.Itoa(t.Day())
	case 'l':
		return t.Format("Monday")
	case 'N':
		wd := int(t.Weekday())
		if wd == 0 {
			wd = 7
		}
		return strconv.Itoa(wd)
	case 'S':
		return ordinalSuffix(t.Day())
	case 'w':
		return strconv.Itoa(int(t.Weekday()))
	case 'z':
		return strconv.Itoa(t.YearDay() - 1)
	case 'W':
		_, w := t.ISOWeek()
		return fmt.Sprintf("%02d", w)
	case 'F':
		return t.Format("January")
	case 'm':
		return t.Format("01")
	case 'M':
		return t.Format("Jan")
	case 'n':
		return strconv.Itoa(int(t.Month()))
	case 't':
		return strconv.Itoa(time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day())
	case 'L':
		y := t.Year()
		if (y%4 == 0 && y%100 != 0) || y%400 == 0 {
			return "1"
		}
		return "0"
	case 'o':
		y, _ := t.ISOWeek()
		return strconv.Itoa(y)
	case 'Y':
		return t.Format("2006")
	case 'y':
		return t.Format("06")
	case 'a':
		return t.Format("pm")
	case 'A':
		return t.Format("PM")
	case 'g':
		return t.Format("3")
	case 'G':
		return strconv.Itoa(t.Hour())
	case 'h':
		return t.Format("03")
	case 'H':
		return t.Format("15")
	case 'i':
		return t.Format("04")
	case 's':
		return t.Format("05")
	case 'u':
		return fmt.Sprintf("%06d", t.Nanosecond()/1000)
	case 'v':
		return fmt.Sprintf("%03d", t.Nanosecond()/1000000)
	case 'e':
		return t.Location().String()
	case 'T':
		return t.Format("MST")
	case 'P':
		return t.Format("-07:00")
	case 'O':
		return t.Format("-0700")
	case 'U':
		return strconv.FormatInt(t.Unix(), 10)
	case 'c':
		return t.Format(time.RFC3339)
	case 'r':
		return t.Format(time.RFC1123Z)
	}
	return string(c)
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package codec

// Storage layout of date-time values, `Y-m-d H:i:s` in PHP notation
const DateTimeLayout = "2006-01-02 15:04:05"

// Default PHP-style date format used by date-time properties
const DefaultDateFormat = "Y-m-d H:i:s"

// Default separator for multiple values
const DefaultSeparator = ","

// Identifier which is never quoted
const wildcardIdent = "*"

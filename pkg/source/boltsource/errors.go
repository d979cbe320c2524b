/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package boltsource

import (
	"errors"
	"fmt"
)

var ErrUnsupportedError = errors.New("not supported by key-value source")

func ErrUnsupported(msg string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedError, fmt.Sprintf(msg, args...))
}

var ErrCorruptedRowError = errors.New("stored row is corrupted")

func ErrCorruptedRow(table string, key []byte, err error) error {
	return fmt.Errorf("%w: «%s» key «%s»: %w", ErrCorruptedRowError, table, key, err)
}

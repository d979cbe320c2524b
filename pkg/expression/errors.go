/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package expression

import (
	"errors"
	"fmt"
)

func enrichError(err error, msg string, args ...any) error {
	s := msg
	if len(args) > 0 {
		s = fmt.Sprintf(msg, args...)
	}
	return fmt.Errorf("%w: %s", err, s)
}

var ErrInvalidArgumentError = errors.New("invalid argument")

func ErrInvalidArgument(msg string, args ...any) error {
	return enrichError(ErrInvalidArgumentError, msg, args...)
}

// Expression can not be rendered in its current state
var ErrIncompleteError = errors.New("incomplete expression")

func ErrIncomplete(msg string, args ...any) error {
	return enrichError(ErrIncompleteError, msg, args...)
}

var ErrUnknownDialectError = errors.New("unknown SQL dialect")

func ErrUnknownDialect(name string) error {
	return enrichError(ErrUnknownDialectError, "«%s»", name)
}

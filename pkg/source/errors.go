/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package source

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

var ErrModelNotSet = errors.New("source model is not set")

var ErrNotFoundError = errors.New("item not found")

func ErrNotFound(objType string, key string, val any) error {
	return enrichError(ErrNotFoundError, "«%s» with %s «%v»", objType, key, val)
}

var ErrInvalidArgumentError = errors.New("invalid argument")

func ErrInvalidArgument(msg string, args ...any) error {
	return enrichError(ErrInvalidArgumentError, msg, args...)
}

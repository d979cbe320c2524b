/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package model

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

var ErrUnknownPropertyError = errors.New("unknown property")

func ErrUnknownProperty(objType, ident string) error {
	return enrichError(ErrUnknownPropertyError, "«%s» in «%s»", ident, objType)
}

var ErrNoKeyError = errors.New("key property is not defined")

func ErrNoKey(objType, key string) error {
	return enrichError(ErrNoKeyError, "«%s» in «%s»", key, objType)
}

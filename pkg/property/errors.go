/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"errors"
	"fmt"
)

func EnrichError(err error, msg string, args ...any) error {
	s := msg
	if len(args) > 0 {
		s = fmt.Sprintf(msg, args...)
	}
	return fmt.Errorf("%w: %s", err, s)
}

// Wrong type or out-of-domain value passed to setter
var ErrInvalidArgumentError = errors.New("invalid argument")

func ErrInvalidArgument(msg string, args ...any) error {
	return EnrichError(ErrInvalidArgumentError, msg, args...)
}

// Operation requested in state which can not satisfy it
var ErrLogicError = errors.New("logic error")

func ErrLogic(msg string, args ...any) error {
	return EnrichError(ErrLogicError, msg, args...)
}

// Required collaborator or precondition is missing at use-time
var ErrRuntimeError = errors.New("runtime error")

func ErrRuntime(msg string, args ...any) error {
	return EnrichError(ErrRuntimeError, msg, args...)
}

// File upload or transfer failure
var ErrUploadError = errors.New("upload failed")

func ErrUpload(msg string, args ...any) error {
	return EnrichError(ErrUploadError, msg, args...)
}

var ErrUnknownTypeError = errors.New("unknown property type")

func ErrUnknownType(typ string) error {
	return EnrichError(ErrUnknownTypeError, "«%s»", typ)
}

func ErrObjTypeNotSet(ident string) error {
	return ErrLogic("object type of property «%s» is not set", ident)
}

func ErrForbiddenFlag(typ, flag string) error {
	return ErrInvalidArgument("%s property can not be %s", typ, flag)
}

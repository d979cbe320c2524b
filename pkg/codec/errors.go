/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package codec

import "errors"

var ErrInvalidIdentifier = errors.New("invalid identifier")

var ErrInvalidDate = errors.New("invalid date")

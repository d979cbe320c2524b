/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package main

import "errors"

var ErrValidationFailed = errors.New("validation failed")

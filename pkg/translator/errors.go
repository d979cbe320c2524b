/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package translator

import "errors"

var ErrLocaleNotAvailable = errors.New("locale is not available")

var ErrInvalidLocale = errors.New("invalid locale")

var ErrNoLocales = errors.New("no locales configured")

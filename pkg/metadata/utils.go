/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package metadata

import "strconv"

func validatePropertyIdent(ident string) error {
	if ident == "" {
		return ErrMissed("property identifier")
	}
	if _, err := strconv.ParseFloat(ident, 64); err == nil {
		return ErrInvalid("property identifier «%s» is numeric", ident)
	}
	return nil
}

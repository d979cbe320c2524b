/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package codec

// Value which knows its own storage representation.
//
// Implemented by properties, so that a property can be passed
// as a filter operand.
type IStorable interface {
	StorageValue() (any, error)
}

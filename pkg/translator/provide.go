/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package translator

// Creates new translator.
//
// Returns error if no locales specified, or some locale is invalid,
// or default locale is not in locales list.
func Provide(params Params) (ITranslator, error) {
	return newTranslator(params)
}

// Creates new translator.
//
// # Panics:
//   - if Provide() returns error
func MustProvide(params Params) ITranslator {
	t, err := Provide(params)
	if err != nil {
		panic(err)
	}
	return t
}

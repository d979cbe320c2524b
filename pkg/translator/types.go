/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package translator

// Translations of static strings: message id → locale → translated text
type Translations map[string]map[string]string

// Translator parameters
type Params struct {
	// Available locales, first is default if DefaultLocale is empty
	Locales []string

	// Fallback locale
	DefaultLocale string

	// Static strings catalog
	Translations Translations
}

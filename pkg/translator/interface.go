/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package translator

// Translator service.
//
// Ref. to impl.go for implementation
type ITranslator interface {
	// Translates static UI string into current locale,
	// or into the first of specified locales.
	//
	// Returns string as is if no translation found.
	Translate(s string, locale ...string) string

	// Wraps raw value into translation value.
	//
	// Accepted values are:
	//   - nil, returns nil,
	//   - *Translation, returns as is,
	//   - string, every available locale gets translation of this string,
	//   - map[string]any or map[string]string, keyed by locale.
	//
	// Other values are converted by fmt.Sprint and handled as string.
	Translation(v any) *Translation

	// Returns current locale
	Locale() string

	// Changes current locale.
	//
	// Returns error if locale is not available
	SetLocale(locale string) error

	// Returns default (fallback) locale
	DefaultLocale() string

	// Returns available locales in configuration order
	AvailableLocales() []string

	// Returns is locale available
	HasLocale(locale string) bool
}

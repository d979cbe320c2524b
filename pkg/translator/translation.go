/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package translator

import (
	"encoding/json"
	"slices"

	"golang.org/x/exp/maps"
)

// Localized value: locale → text.
//
// Created by ITranslator.Translation()
type Translation struct {
	vals          map[string]string
	locale        string
	defaultLocale string
}

func newTranslation(locale, defaultLocale string) *Translation {
	return &Translation{
		vals:          make(map[string]string),
		locale:        locale,
		defaultLocale: defaultLocale,
	}
}

// Returns text for locale.
//
// ok is false if locale has no text
func (t *Translation) Get(locale string) (s string, ok bool) {
	s, ok = t.vals[locale]
	return s, ok
}

// Sets text for locale
func (t *Translation) Set(locale, s string) {
	t.vals[locale] = s
}

// Returns locale which used by String()
func (t *Translation) Locale() string {
	return t.locale
}

// Returns locales which have texts, sorted
func (t *Translation) AvailableLocales() []string {
	ll := maps.Keys(t.vals)
	slices.Sort(ll)
	return ll
}

// Returns copy of locale map
func (t *Translation) Data() map[string]string {
	return maps.Clone(t.vals)
}

// Returns text in current locale, falls back to default locale
func (t *Translation) String() string {
	if s, ok := t.vals[t.locale]; ok {
		return s
	}
	return t.vals[t.defaultLocale]
}

// Returns is translation has no texts
func (t *Translation) IsEmpty() bool {
	for _, s := range t.vals {
		if s != "" {
			return false
		}
	}
	return true
}

func (t *Translation) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.vals)
}

/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package translator

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// # Implements:
//   - ITranslator
type translator struct {
	locales       []string
	tags          map[string]language.Tag
	defaultLocale string
	locale        string
	catalog       catalog.Catalog
	printers      map[string]*message.Printer
}

func newTranslator(params Params) (*translator, error) {
	if len(params.Locales) == 0 {
		return nil, ErrNoLocales
	}
	t := &translator{
		locales:  slices.Clone(params.Locales),
		tags:     make(map[string]language.Tag),
		printers: make(map[string]*message.Printer),
	}
	for _, l := range t.locales {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("locale «%s»: %w: %w", l, ErrInvalidLocale, err)
		}
		t.tags[l] = tag
	}

	t.defaultLocale = params.DefaultLocale
	if t.defaultLocale == "" {
		t.defaultLocale = t.locales[0]
	}
	if !t.HasLocale(t.defaultLocale) {
		return nil, fmt.Errorf("default locale «%s»: %w", t.defaultLocale, ErrLocaleNotAvailable)
	}
	t.locale = t.defaultLocale

	ctlg, err := buildCatalog(params.Translations, t.tags)
	if err != nil {
		return nil, err
	}
	t.catalog = ctlg
	for l, tag := range t.tags {
		t.printers[l] = message.NewPrinter(tag, message.Catalog(ctlg))
	}
	return t, nil
}

func buildCatalog(tt Translations, tags map[string]language.Tag) (catalog.Catalog, error) {
	ctlg := catalog.NewBuilder()
	for msg, byLocale := range tt {
		for l, s := range byLocale {
			tag, ok := tags[l]
			if !ok {
				continue
			}
			if err := ctlg.SetString(tag, msg, s); err != nil {
				return nil, fmt.Errorf("translation «%s» for «%s»: %w", msg, l, err)
			}
		}
	}
	return ctlg, nil
}

func (t *translator) AvailableLocales() []string {
	return slices.Clone(t.locales)
}

func (t *translator) DefaultLocale() string {
	return t.defaultLocale
}

func (t *translator) HasLocale(locale string) bool {
	_, ok := t.tags[locale]
	return ok
}

func (t *translator) Locale() string {
	return t.locale
}

func (t *translator) SetLocale(locale string) error {
	if !t.HasLocale(locale) {
		return fmt.Errorf("locale «%s»: %w", locale, ErrLocaleNotAvailable)
	}
	t.locale = locale
	return nil
}

func (t *translator) Translate(s string, locale ...string) string {
	if s == "" {
		return ""
	}
	l := t.locale
	if len(locale) > 0 && locale[0] != "" {
		l = locale[0]
	}
	p, ok := t.printers[l]
	if !ok {
		return s
	}
	return p.Sprintf(message.Key(s, strings.ReplaceAll(s, "%", "%%")))
}

func (t *translator) Translation(v any) *Translation {
	switch val := v.(type) {
	case nil:
		return nil
	case *Translation:
		return val
	case map[string]string:
		tr := newTranslation(t.locale, t.defaultLocale)
		for l, s := range val {
			tr.Set(l, s)
		}
		return tr
	case map[string]any:
		tr := newTranslation(t.locale, t.defaultLocale)
		for l, s := range val {
			if s == nil {
				continue
			}
			tr.Set(l, fmt.Sprint(s))
		}
		return tr
	case string:
		tr := newTranslation(t.locale, t.defaultLocale)
		for _, l := range t.locales {
			tr.Set(l, t.Translate(val, l))
		}
		return tr
	}
	return t.Translation(fmt.Sprint(v))
}

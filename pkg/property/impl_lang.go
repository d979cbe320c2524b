/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Locale selector, choices are translator locales labeled by their native names
//
// # Implements:
//   - IProperty
//   - ISelectable
type LangProperty struct {
	StringProperty
}

func newLangProperty(deps Deps) IProperty {
	p := &LangProperty{}
	p.initString(p, Type_Lang, deps)
	p.maxLength = 0
	for _, l := range p.deps.Translator.AvailableLocales() {
		name := l
		if tag, err := language.Parse(l); err == nil {
			if n := display.Self.Name(tag); n != "" {
				name = n
			}
		}
		// label is a name, not a message to translate
		p.index[l] = len(p.choices)
		p.choices = append(p.choices, Choice{Value: l, Label: p.deps.Translator.Translation(map[string]string{
			p.deps.Translator.DefaultLocale(): name,
		})})
	}
	return p
}

func (p *LangProperty) validators() []validator {
	return append(p.StringProperty.validators(), validator{Validation_Choices, p.ValidateChoices})
}

// Returns false if any value is not an available locale
func (p *LangProperty) ValidateChoices() bool {
	for _, item := range p.valItems() {
		s, ok := item.(string)
		if !ok || !p.HasChoice(s) {
			return false
		}
	}
	return true
}

func (p *LangProperty) SqlType() string {
	if p.multiple {
		return "TEXT"
	}
	return "CHAR(2)"
}

/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"strings"
	"unicode"
)

// # Implements:
//   - IProperty
//   - ISelectable
type PhoneProperty struct {
	StringProperty
}

func newPhoneProperty(deps Deps) IProperty {
	p := &PhoneProperty{}
	p.initString(p, Type_Phone, deps)
	p.maxLength = PhoneMaxLength
	return p
}

// Keeps digits only
func (p *PhoneProperty) ParseOne(v any) (any, error) {
	sv, err := p.StringProperty.ParseOne(v)
	if err != nil || sv == nil {
		return sv, err
	}
	return sanitizePhone(sv.(string)), nil
}

func sanitizePhone(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// Formats 10-digit numbers as `(NNN) NNN-NNNN`, other numbers are returned as is
func (p *PhoneProperty) displayOne(v any, o *valOptions) string {
	s := p.StringProperty.displayOne(v, o)
	digits := sanitizePhone(s)
	if len(digits) != 10 {
		return s
	}
	return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
}

func (p *PhoneProperty) validators() []validator {
	return append(p.StringProperty.validators(), validator{Validation_Phone, p.ValidatePhone})
}

// Returns false if any value contains something but digits
func (p *PhoneProperty) ValidatePhone() bool {
	for _, item := range p.valItems() {
		s, ok := item.(string)
		if !ok {
			return false
		}
		for _, r := range s {
			if !unicode.IsDigit(r) {
				return false
			}
		}
	}
	return true
}

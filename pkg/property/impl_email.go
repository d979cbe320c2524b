/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"strings"

	emailaddress "github.com/mcnijman/go-emailaddress"
)

// # Implements:
//   - IProperty
//   - ISelectable
type EmailProperty struct {
	StringProperty
}

func newEmailProperty(deps Deps) IProperty {
	p := &EmailProperty{}
	p.initString(p, Type_Email, deps)
	p.maxLength = EmailMaxLength
	return p
}

// Always EmailMaxLength
func (p *EmailProperty) MaxLength() int { return EmailMaxLength }

// Max length of email is fixed, the call has no effect
func (p *EmailProperty) SetMaxLength(int) error { return nil }

// Strips tags and removes characters which are not allowed in email addresses
func (p *EmailProperty) ParseOne(v any) (any, error) {
	sv, err := p.StringProperty.ParseOne(v)
	if err != nil || sv == nil {
		return sv, err
	}
	return sanitizeEmail(sv.(string)), nil
}

func sanitizeEmail(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case strings.ContainsRune("!#$%&'*+-=?^_`{|}~@.[]", r):
			return r
		}
		return -1
	}, s)
}

func (p *EmailProperty) validators() []validator {
	return append(p.StringProperty.validators(), validator{Validation_Email, p.ValidateEmail})
}

// Returns false if any value is not a valid email address
func (p *EmailProperty) ValidateEmail() bool {
	for _, item := range p.valItems() {
		s, ok := item.(string)
		if !ok {
			return false
		}
		if _, err := emailaddress.Parse(s); err != nil {
			return false
		}
	}
	return true
}

func (p *EmailProperty) setDataKey(key string, v any) (bool, error) {
	if key == "maxlength" {
		return true, nil
	}
	return p.StringProperty.setDataKey(key, v)
}

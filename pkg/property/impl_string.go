/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/voedger/charcoal/pkg/codec"
)

var strictPolicy = bluemonday.StrictPolicy()

func stripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// # Implements:
//   - IProperty
//   - ISelectable
type StringProperty struct {
	property
	selectable
	minLength  int
	maxLength  int
	regexp     *regexp.Regexp
	allowEmpty bool
	allowHtml  bool
}

func newStringProperty(deps Deps) IProperty {
	p := &StringProperty{}
	p.initString(p, Type_String, deps)
	return p
}

func (p *StringProperty) initString(emb propertyImpl, typ string, deps Deps) {
	p.init(emb, typ, deps)
	p.initChoices(p.deps.Translator)
	p.maxLength = DefaultStringMaxLength
	p.allowEmpty = true
}

func (p *StringProperty) MinLength() int { return p.minLength }

// Sets minimum length in characters, zero means no minimum
func (p *StringProperty) SetMinLength(n int) error {
	if n < 0 {
		return ErrInvalidArgument("min length of property «%s» must be non-negative, got %d", p.ident, n)
	}
	p.minLength = n
	return nil
}

func (p *StringProperty) MaxLength() int { return p.maxLength }

// Sets maximum length in characters, zero means unbounded
func (p *StringProperty) SetMaxLength(n int) error {
	if n < 0 {
		return ErrInvalidArgument("max length of property «%s» must be non-negative, got %d", p.ident, n)
	}
	p.maxLength = n
	return nil
}

func (p *StringProperty) Regexp() string {
	if p.regexp == nil {
		return ""
	}
	return p.regexp.String()
}

// Sets pattern which every value must match. Empty pattern removes constraint
func (p *StringProperty) SetRegexp(pattern string) error {
	if pattern == "" {
		p.regexp = nil
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return ErrInvalidArgument("regexp of property «%s»: %v", p.ident, err)
	}
	p.regexp = re
	return nil
}

func (p *StringProperty) AllowEmpty() bool { return p.allowEmpty }

func (p *StringProperty) SetAllowEmpty(v any) error {
	p.allowEmpty = codec.ToBool(v)
	return nil
}

func (p *StringProperty) AllowHtml() bool { return p.allowHtml }

func (p *StringProperty) SetAllowHtml(v any) error {
	p.allowHtml = codec.ToBool(v)
	return nil
}

func (p *StringProperty) ParseOne(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	s, ok := codec.ToString(v)
	if !ok {
		return nil, ErrInvalidArgument("%s property «%s» value must be a string, got %T", p.typ, p.ident, v)
	}
	if !p.allowHtml {
		s = stripTags(s)
	}
	return s, nil
}

func (p *StringProperty) displayOne(v any, o *valOptions) string {
	if s, ok := v.(string); ok && p.HasChoices() {
		if label, ok := p.choiceText(s, o.locale); ok {
			return label
		}
	}
	return p.property.displayOne(v, o)
}

func (p *StringProperty) validators() []validator {
	return append(p.property.validators(),
		validator{Validation_MinLength, p.ValidateMinLength},
		validator{Validation_MaxLength, p.ValidateMaxLength},
		validator{Validation_Regexp, p.ValidateRegexp},
		validator{Validation_AllowEmpty, p.ValidateAllowEmpty},
	)
}

// Returns false if any value is shorter than min length. Length is counted in characters
func (p *StringProperty) ValidateMinLength() bool {
	if p.minLength == 0 {
		return true
	}
	for _, item := range p.valItems() {
		s, _ := codec.ToString(item)
		if utf8.RuneCountInString(s) < p.minLength {
			return false
		}
	}
	return true
}

// Returns false if any value is longer than max length. Length is counted in characters
func (p *StringProperty) ValidateMaxLength() bool {
	if p.maxLength == 0 {
		return true
	}
	for _, item := range p.valItems() {
		s, _ := codec.ToString(item)
		if utf8.RuneCountInString(s) > p.maxLength {
			return false
		}
	}
	return true
}

// Returns false if any value does not match regexp
func (p *StringProperty) ValidateRegexp() bool {
	if p.regexp == nil {
		return true
	}
	for _, item := range p.valItems() {
		s, _ := codec.ToString(item)
		if !p.regexp.MatchString(s) {
			return false
		}
	}
	return true
}

// Returns false if empty value is not allowed and value is empty
func (p *StringProperty) ValidateAllowEmpty() bool {
	return p.allowEmpty || len(p.valItems()) > 0
}

func (p *StringProperty) SqlType() string {
	if p.multiple || p.maxLength == 0 || p.maxLength > DefaultStringMaxLength {
		return "TEXT"
	}
	return fmt.Sprintf("VARCHAR(%d)", p.maxLength)
}

func (p *StringProperty) SqlEncoding() string { return DefaultSqlEncoding }

func (p *StringProperty) setDataKey(key string, v any) (bool, error) {
	switch key {
	case "minlength":
		n, err := toInt(v)
		if err != nil {
			return true, ErrInvalidArgument("min length: %v", err)
		}
		return true, p.SetMinLength(n)
	case "maxlength":
		n, err := toInt(v)
		if err != nil {
			return true, ErrInvalidArgument("max length: %v", err)
		}
		return true, p.SetMaxLength(n)
	case "regexp":
		s, ok := v.(string)
		if !ok && v != nil {
			return true, ErrInvalidArgument("regexp must be a string, got %T", v)
		}
		return true, p.SetRegexp(s)
	case "allowempty":
		return true, p.SetAllowEmpty(v)
	case "allowhtml":
		return true, p.SetAllowHtml(v)
	case "choices":
		return true, p.SetChoices(v)
	}
	return p.property.setDataKey(key, v)
}

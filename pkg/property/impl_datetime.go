/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"time"

	"github.com/voedger/charcoal/pkg/codec"
)

// # Implements:
//   - IProperty
type DateTimeProperty struct {
	property
	min    *time.Time
	max    *time.Time
	format string
}

func newDateTimeProperty(deps Deps) IProperty {
	p := &DateTimeProperty{}
	p.init(p, Type_DateTime, deps)
	p.format = codec.DefaultDateFormat
	return p
}

func (p *DateTimeProperty) SetMultiple(v any) error {
	if codec.ToBool(v) {
		return ErrForbiddenFlag(p.typ, "multiple")
	}
	return nil
}

// Converts string, time.Time or *time.Time to time
func (p *DateTimeProperty) toTime(v any) (*time.Time, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &val, nil
	case *time.Time:
		return val, nil
	case string:
		if val == "" {
			return nil, nil
		}
		t, err := codec.ParseDate(val, p.deps.Now)
		if err != nil {
			return nil, ErrInvalidArgument("date-time property «%s»: %v", p.ident, err)
		}
		return &t, nil
	}
	return nil, ErrInvalidArgument("date-time property «%s» value must be a string or time, got %T", p.ident, v)
}

// Returns minimum, nil if not set
func (p *DateTimeProperty) Min() *time.Time { return p.min }

// Sets inclusive minimum from string or time. Nil or empty string removes constraint
func (p *DateTimeProperty) SetMin(v any) error {
	t, err := p.toTime(v)
	if err == nil {
		p.min = t
	}
	return err
}

// Returns maximum, nil if not set
func (p *DateTimeProperty) Max() *time.Time { return p.max }

// Sets inclusive maximum from string or time. Nil or empty string removes constraint
func (p *DateTimeProperty) SetMax(v any) error {
	t, err := p.toTime(v)
	if err == nil {
		p.max = t
	}
	return err
}

// Returns PHP-style display format
func (p *DateTimeProperty) Format() string { return p.format }

// Sets PHP-style display format. Empty string is allowed, anything but string is not
func (p *DateTimeProperty) SetFormat(v any) error {
	s, ok := v.(string)
	if !ok {
		return ErrInvalidArgument("format of property «%s» must be a string, got %T", p.ident, v)
	}
	p.format = s
	return nil
}

func (p *DateTimeProperty) ParseOne(v any) (any, error) {
	t, err := p.toTime(v)
	if err != nil || t == nil {
		return nil, err
	}
	return *t, nil
}

func (p *DateTimeProperty) displayOne(v any, _ *valOptions) string {
	t, err := p.toTime(v)
	if err != nil || t == nil {
		return ""
	}
	return codec.FormatDate(*t, p.format)
}

func (p *DateTimeProperty) inputOne(v any, o *valOptions) string {
	return p.displayOne(v, o)
}

func (p *DateTimeProperty) storageOne(v any) (any, error) {
	t, err := p.toTime(v)
	if err != nil || t == nil {
		return nil, err
	}
	return t.Format(codec.DateTimeLayout), nil
}

func (p *DateTimeProperty) nullStorage() (any, error) {
	if !p.allowNull {
		return nil, ErrInvalidArgument("date-time property «%s» can not store null", p.ident)
	}
	return nil, nil
}

func (p *DateTimeProperty) validators() []validator {
	return append(p.property.validators(),
		validator{Validation_Min, p.ValidateMin},
		validator{Validation_Max, p.ValidateMax},
	)
}

// Returns true if min is not set or every value is not before min
func (p *DateTimeProperty) ValidateMin() bool {
	if p.min == nil {
		return true
	}
	for _, item := range p.valItems() {
		t, err := p.toTime(item)
		if err != nil || t == nil || t.Before(*p.min) {
			return false
		}
	}
	return true
}

// Returns true if max is not set or every value is not after max
func (p *DateTimeProperty) ValidateMax() bool {
	if p.max == nil {
		return true
	}
	for _, item := range p.valItems() {
		t, err := p.toTime(item)
		if err != nil || t == nil || t.After(*p.max) {
			return false
		}
	}
	return true
}

func (p *DateTimeProperty) SqlType() string { return "DATETIME" }

func (p *DateTimeProperty) setDataKey(key string, v any) (bool, error) {
	switch key {
	case "min":
		return true, p.SetMin(v)
	case "max":
		return true, p.SetMax(v)
	case "format":
		return true, p.SetFormat(v)
	}
	return p.property.setDataKey(key, v)
}

/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"math"
	"strconv"
	"strings"

	"github.com/voedger/charcoal/pkg/codec"
)

// Floating point number
//
// # Implements:
//   - IProperty
//   - ISelectable
type NumberProperty struct {
	property
	selectable
	min *float64
	max *float64
}

func newNumberProperty(deps Deps) IProperty {
	p := &NumberProperty{}
	p.initNumber(p, Type_Number, deps)
	return p
}

func (p *NumberProperty) initNumber(emb propertyImpl, typ string, deps Deps) {
	p.init(emb, typ, deps)
	p.initChoices(p.deps.Translator)
}

// Returns minimum, nil if not set
func (p *NumberProperty) Min() *float64 { return p.min }

// Sets inclusive minimum, nil removes constraint
func (p *NumberProperty) SetMin(v any) error {
	f, err := p.bound("min", v)
	if err == nil {
		p.min = f
	}
	return err
}

// Returns maximum, nil if not set
func (p *NumberProperty) Max() *float64 { return p.max }

// Sets inclusive maximum, nil removes constraint
func (p *NumberProperty) SetMax(v any) error {
	f, err := p.bound("max", v)
	if err == nil {
		p.max = f
	}
	return err
}

func (p *NumberProperty) bound(name string, v any) (*float64, error) {
	if codec.IsBlank(v) {
		return nil, nil
	}
	f, ok := codec.ToFloat(v)
	if !ok {
		return nil, ErrInvalidArgument("%s of property «%s» must be a number, got %v", name, p.ident, v)
	}
	return &f, nil
}

func (p *NumberProperty) ParseOne(v any) (any, error) {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	if codec.IsBlank(v) {
		return nil, nil
	}
	f, ok := codec.ToFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, ErrInvalidArgument("%s property «%s» value must be a number, got %v", p.typ, p.ident, v)
	}
	return f, nil
}

func (p *NumberProperty) displayOne(v any, o *valOptions) string {
	s := p.property.displayOne(v, o)
	if label, ok := p.choiceText(s, o.locale); ok {
		return label
	}
	return s
}

func (p *NumberProperty) validators() []validator {
	return append(p.property.validators(),
		validator{Validation_Min, p.ValidateMin},
		validator{Validation_Max, p.ValidateMax},
	)
}

// Returns false if any value is less than min
func (p *NumberProperty) ValidateMin() bool {
	if p.min == nil {
		return true
	}
	for _, item := range p.valItems() {
		if f, ok := codec.ToFloat(item); !ok || f < *p.min {
			return false
		}
	}
	return true
}

// Returns false if any value is greater than max
func (p *NumberProperty) ValidateMax() bool {
	if p.max == nil {
		return true
	}
	for _, item := range p.valItems() {
		if f, ok := codec.ToFloat(item); !ok || f > *p.max {
			return false
		}
	}
	return true
}

func (p *NumberProperty) SqlType() string {
	if p.multiple {
		return "TEXT"
	}
	return "DOUBLE"
}

func (p *NumberProperty) setDataKey(key string, v any) (bool, error) {
	switch key {
	case "min":
		return true, p.SetMin(v)
	case "max":
		return true, p.SetMax(v)
	case "choices":
		return true, p.SetChoices(v)
	}
	return p.property.setDataKey(key, v)
}

// # Implements:
//   - IProperty
//   - ISelectable
type IntegerProperty struct {
	NumberProperty
	unsigned bool
}

func newIntegerProperty(deps Deps) IProperty {
	p := &IntegerProperty{}
	p.initNumber(p, Type_Integer, deps)
	return p
}

func (p *IntegerProperty) Unsigned() bool { return p.unsigned }

func (p *IntegerProperty) SetUnsigned(v any) error {
	p.unsigned = codec.ToBool(v)
	return nil
}

func (p *IntegerProperty) ParseOne(v any) (any, error) {
	fv, err := p.NumberProperty.ParseOne(v)
	if err != nil || fv == nil {
		return fv, err
	}
	f := fv.(float64)
	if s, ok := v.(string); ok {
		if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			if p.unsigned && n < 0 {
				return nil, ErrInvalidArgument("integer property «%s» is unsigned, got %d", p.ident, n)
			}
			return n, nil
		}
	}
	if f != math.Trunc(f) {
		return nil, ErrInvalidArgument("integer property «%s» value must be an integer, got %v", p.ident, v)
	}
	if p.unsigned && f < 0 {
		return nil, ErrInvalidArgument("integer property «%s» is unsigned, got %v", p.ident, v)
	}
	return int64(f), nil
}

func (p *IntegerProperty) SqlType() string {
	if p.multiple {
		return "TEXT"
	}
	if p.unsigned {
		return "INT UNSIGNED"
	}
	return "INT"
}

func (p *IntegerProperty) SqlPdoType() PdoType {
	if p.multiple {
		return PdoType_Str
	}
	return PdoType_Int
}

func (p *IntegerProperty) setDataKey(key string, v any) (bool, error) {
	if key == "unsigned" {
		return true, p.SetUnsigned(v)
	}
	return p.NumberProperty.setDataKey(key, v)
}

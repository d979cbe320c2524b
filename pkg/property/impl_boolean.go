/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"github.com/voedger/charcoal/pkg/codec"
	"github.com/voedger/charcoal/pkg/translator"
)

// # Implements:
//   - IProperty
type BooleanProperty struct {
	property
	trueLabel  *translator.Translation
	falseLabel *translator.Translation
}

func newBooleanProperty(deps Deps) IProperty {
	p := &BooleanProperty{}
	p.init(p, Type_Boolean, deps)
	p.trueLabel = p.deps.Translator.Translation("True")
	p.falseLabel = p.deps.Translator.Translation("False")
	return p
}

func (p *BooleanProperty) SetL10n(v any) error {
	if codec.ToBool(v) {
		return ErrForbiddenFlag(p.typ, "l10n")
	}
	return nil
}

func (p *BooleanProperty) SetMultiple(v any) error {
	if codec.ToBool(v) {
		return ErrForbiddenFlag(p.typ, "multiple")
	}
	return nil
}

func (p *BooleanProperty) TrueLabel() *translator.Translation { return p.trueLabel }

func (p *BooleanProperty) SetTrueLabel(v any) error {
	if v == nil {
		return ErrInvalidArgument("true label of property «%s» can not be nil", p.ident)
	}
	p.trueLabel = p.deps.Translator.Translation(v)
	return nil
}

func (p *BooleanProperty) FalseLabel() *translator.Translation { return p.falseLabel }

func (p *BooleanProperty) SetFalseLabel(v any) error {
	if v == nil {
		return ErrInvalidArgument("false label of property «%s» can not be nil", p.ident)
	}
	p.falseLabel = p.deps.Translator.Translation(v)
	return nil
}

func (p *BooleanProperty) ParseOne(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return codec.ToBool(v), nil
}

func (p *BooleanProperty) displayOne(v any, o *valOptions) string {
	def := p.deps.Translator.DefaultLocale()
	if codec.ToBool(v) {
		return translated(p.trueLabel, o.locale, def)
	}
	return translated(p.falseLabel, o.locale, def)
}

func (p *BooleanProperty) inputOne(v any, _ *valOptions) string {
	if codec.ToBool(v) {
		return "1"
	}
	return "0"
}

func (p *BooleanProperty) storageOne(v any) (any, error) {
	if codec.ToBool(v) {
		return 1, nil
	}
	return 0, nil
}

func (p *BooleanProperty) SqlType() string { return "TINYINT(1) UNSIGNED" }

func (p *BooleanProperty) SqlPdoType() PdoType { return PdoType_Bool }

func (p *BooleanProperty) setDataKey(key string, v any) (bool, error) {
	switch key {
	case "truelabel":
		return true, p.SetTrueLabel(v)
	case "falselabel":
		return true, p.SetFalseLabel(v)
	}
	return p.property.setDataKey(key, v)
}

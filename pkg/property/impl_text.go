/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/voedger/charcoal/pkg/codec"
)

// Unbounded string
//
// # Implements:
//   - IProperty
//   - ISelectable
type TextProperty struct {
	StringProperty
}

func newTextProperty(deps Deps) IProperty {
	p := &TextProperty{}
	p.initText(p, Type_Text, deps)
	return p
}

func (p *TextProperty) initText(emb propertyImpl, typ string, deps Deps) {
	p.initString(emb, typ, deps)
	p.maxLength = 0
}

func (p *TextProperty) SqlType() string { return "TEXT" }

var ugcPolicy = bluemonday.UGCPolicy()

// Text which allows HTML. Markup is sanitized against XSS, not stripped
//
// # Implements:
//   - IProperty
//   - ISelectable
type HtmlProperty struct {
	TextProperty
}

func newHtmlProperty(deps Deps) IProperty {
	p := &HtmlProperty{}
	p.initText(p, Type_Html, deps)
	p.allowHtml = true
	return p
}

func (p *HtmlProperty) ParseOne(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	s, ok := codec.ToString(v)
	if !ok {
		return nil, ErrInvalidArgument("html property «%s» value must be a string, got %T", p.ident, v)
	}
	return ugcPolicy.Sanitize(s), nil
}

const passwordMask = "********"

// Secret string. Never displayed nor prefilled in forms
//
// # Implements:
//   - IProperty
type PasswordProperty struct {
	StringProperty
}

func newPasswordProperty(deps Deps) IProperty {
	p := &PasswordProperty{}
	p.initString(p, Type_Password, deps)
	return p
}

func (p *PasswordProperty) displayOne(any, *valOptions) string { return passwordMask }

func (p *PasswordProperty) inputOne(any, *valOptions) string { return "" }

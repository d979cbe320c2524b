/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"net/url"
	"strings"
)

// # Implements:
//   - IProperty
//   - ISelectable
type UrlProperty struct {
	StringProperty
}

func newUrlProperty(deps Deps) IProperty {
	p := &UrlProperty{}
	p.initString(p, Type_Url, deps)
	return p
}

func (p *UrlProperty) ParseOne(v any) (any, error) {
	sv, err := p.StringProperty.ParseOne(v)
	if err != nil || sv == nil {
		return sv, err
	}
	return strings.TrimSpace(sv.(string)), nil
}

func (p *UrlProperty) validators() []validator {
	return append(p.StringProperty.validators(), validator{Validation_Url, p.ValidateUrl})
}

// Returns false if any value is neither absolute URL with host nor absolute path
func (p *UrlProperty) ValidateUrl() bool {
	for _, item := range p.valItems() {
		s, ok := item.(string)
		if !ok {
			return false
		}
		u, err := url.Parse(s)
		if err != nil {
			return false
		}
		if u.IsAbs() {
			if u.Host == "" && u.Opaque == "" {
				return false
			}
			continue
		}
		if !strings.HasPrefix(u.Path, "/") {
			return false
		}
	}
	return true
}

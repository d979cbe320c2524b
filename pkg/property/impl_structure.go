/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"encoding/json"
	"slices"
	"strings"
)

// Arbitrary JSON structure
//
// # Implements:
//   - IProperty
type StructureProperty struct {
	property
	sqlType string
}

func newStructureProperty(deps Deps) IProperty {
	p := &StructureProperty{}
	p.initStructure(p, Type_Structure, deps)
	return p
}

func (p *StructureProperty) initStructure(emb propertyImpl, typ string, deps Deps) {
	p.init(emb, typ, deps)
	p.sqlType = structureSqlTypes[0]
}

// Decodes JSON string before splitting into multiple values
func (p *StructureProperty) ParseVal(v any) (any, error) {
	if s, ok := v.(string); ok && p.multiple {
		dv, err := decodeJSON(s)
		if err != nil {
			return nil, ErrInvalidArgument("structure property «%s»: %v", p.ident, err)
		}
		v = dv
	}
	return p.property.ParseVal(v)
}

func (p *StructureProperty) ParseOne(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return v, nil
	}
	dv, err := decodeJSON(s)
	if err != nil {
		return nil, ErrInvalidArgument("structure property «%s»: %v", p.ident, err)
	}
	return dv, nil
}

func decodeJSON(s string) (any, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var res any
	if err := json.Unmarshal([]byte(s), &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (p *StructureProperty) SetSqlType(t string) error {
	t = strings.ToUpper(t)
	if !slices.Contains(structureSqlTypes, t) {
		return ErrInvalidArgument("sql type «%s» of property «%s» is not one of %v", t, p.ident, structureSqlTypes)
	}
	p.sqlType = t
	return nil
}

func (p *StructureProperty) SqlType() string { return p.sqlType }

func (p *StructureProperty) setDataKey(key string, v any) (bool, error) {
	if key == "sqltype" {
		s, ok := v.(string)
		if !ok {
			return true, ErrInvalidArgument("sql type must be a string, got %T", v)
		}
		return true, p.SetSqlType(s)
	}
	return p.property.setDataKey(key, v)
}

// Structure which must be a JSON object
//
// # Implements:
//   - IProperty
type MapStructureProperty struct {
	StructureProperty
}

func newMapStructureProperty(deps Deps) IProperty {
	p := &MapStructureProperty{}
	p.initStructure(p, Type_MapStructure, deps)
	return p
}

func (p *MapStructureProperty) ParseOne(v any) (any, error) {
	dv, err := p.StructureProperty.ParseOne(v)
	if err != nil || dv == nil {
		return dv, err
	}
	if !isMap(dv) {
		return nil, ErrInvalidArgument("map-structure property «%s» value must be an object, got %T", p.ident, dv)
	}
	return dv, nil
}

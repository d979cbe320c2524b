/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package metadata

import "slices"

// Raw property definition data.
//
// Contains at least `type` key and type-specific options.
type PropertyData map[string]any

// Property definition: identifier and raw definition data
type PropertyMetadata struct {
	Ident string
	Data  PropertyData
}

// Returns property type name
func (p PropertyMetadata) Type() string {
	s, _ := p.Data[Key_Type].(string)
	return s
}

// Model metadata: identifier and ordered property definitions
type Metadata struct {
	Ident       string
	Key         string
	Table       string
	Label       any
	DefaultData map[string]any

	props []PropertyMetadata
	index map[string]int
}

// Creates new empty metadata with specified identifier
func New(ident string) *Metadata {
	return &Metadata{
		Ident: ident,
		Key:   DefaultKey,
		index: make(map[string]int),
	}
}

// Adds (or replaces) property definition.
//
// Returns error if ident is empty or numeric, or definition has no type.
func (m *Metadata) AddProperty(ident string, data PropertyData) error {
	if err := validatePropertyIdent(ident); err != nil {
		return err
	}
	if t, _ := data[Key_Type].(string); t == "" {
		return ErrMissed("type for property «%s» in «%s»", ident, m.Ident)
	}
	if i, ok := m.index[ident]; ok {
		m.props[i].Data = data
		return nil
	}
	m.index[ident] = len(m.props)
	m.props = append(m.props, PropertyMetadata{Ident: ident, Data: data})
	return nil
}

// Returns property definition by identifier
func (m *Metadata) Property(ident string) (PropertyMetadata, bool) {
	if i, ok := m.index[ident]; ok {
		return m.props[i], true
	}
	return PropertyMetadata{}, false
}

// Returns is property defined
func (m *Metadata) HasProperty(ident string) bool {
	_, ok := m.index[ident]
	return ok
}

// Returns property definitions in declaration order
func (m *Metadata) Properties() []PropertyMetadata {
	return slices.Clone(m.props)
}

// Returns property identifiers in declaration order
func (m *Metadata) PropertyIdents() []string {
	res := make([]string, 0, len(m.props))
	for _, p := range m.props {
		res = append(res, p.Ident)
	}
	return res
}

// Merges other metadata into this one. Properties of other override or extend
func (m *Metadata) Merge(other *Metadata) {
	if other.Key != "" && other.Key != DefaultKey {
		m.Key = other.Key
	}
	if other.Table != "" {
		m.Table = other.Table
	}
	if other.Label != nil {
		m.Label = other.Label
	}
	for k, v := range other.DefaultData {
		if m.DefaultData == nil {
			m.DefaultData = make(map[string]any)
		}
		m.DefaultData[k] = v
	}
	for _, p := range other.props {
		if i, ok := m.index[p.Ident]; ok {
			merged := make(PropertyData, len(m.props[i].Data)+len(p.Data))
			for k, v := range m.props[i].Data {
				merged[k] = v
			}
			for k, v := range p.Data {
				merged[k] = v
			}
			m.props[i].Data = merged
			continue
		}
		m.index[p.Ident] = len(m.props)
		m.props = append(m.props, p)
	}
}

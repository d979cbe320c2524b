/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/voedger/charcoal/pkg/codec"
	"github.com/voedger/charcoal/pkg/ilog"
	"github.com/voedger/charcoal/pkg/metadata"
	"github.com/voedger/charcoal/pkg/property"
	"github.com/voedger/charcoal/pkg/translator"
)

// Model object: metadata and lazily instantiated properties holding values.
//
// Model is request-scoped and not safe for concurrent use.
//
// # Implements:
//   - property.IObject
type Model struct {
	f     *factory
	meta  *metadata.Metadata
	props map[string]property.IProperty
}

func newModel(f *factory, meta *metadata.Metadata) *Model {
	return &Model{
		f:     f,
		meta:  meta,
		props: make(map[string]property.IProperty),
	}
}

// Returns new empty model of the same type
func (m *Model) New() (*Model, error) {
	return m.f.New(m.meta.Ident)
}

// Returns object type, i.e. metadata identifier
func (m *Model) ObjType() string { return m.meta.Ident }

func (m *Model) Metadata() *metadata.Metadata { return m.meta }

// Returns identifier (primary key) property ident
func (m *Model) Key() string { return m.meta.Key }

// Returns storage table name: metadata table or object type with `/` replaced by `_`
func (m *Model) Table() string {
	if m.meta.Table != "" {
		return m.meta.Table
	}
	return strings.ReplaceAll(m.meta.Ident, "/", "_")
}

func (m *Model) Translator() translator.ITranslator { return m.f.props.Deps().Translator }

func (m *Model) HasProperty(ident string) bool { return m.meta.HasProperty(ident) }

// Returns property, instantiates it from metadata on first call.
//
// Returns ErrUnknownProperty if property is not defined
func (m *Model) P(ident string) (property.IProperty, error) {
	if p, ok := m.props[ident]; ok {
		return p, nil
	}
	pm, ok := m.meta.Property(ident)
	if !ok {
		return nil, ErrUnknownProperty(m.meta.Ident, ident)
	}
	p, err := m.f.props.Build(pm)
	if err != nil {
		return nil, fmt.Errorf("model «%s»: %w", m.meta.Ident, err)
	}
	m.props[ident] = p
	return p, nil
}

// Returns all properties in declaration order
func (m *Model) Properties() ([]property.IProperty, error) {
	res := make([]property.IProperty, 0, len(m.meta.PropertyIdents()))
	for _, ident := range m.meta.PropertyIdents() {
		p, err := m.P(ident)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, nil
}

// Returns active properties in declaration order
func (m *Model) ActiveProperties() ([]property.IProperty, error) {
	pp, err := m.Properties()
	if err != nil {
		return nil, err
	}
	res := pp[:0]
	for _, p := range pp {
		if p.Active() {
			res = append(res, p)
		}
	}
	return res, nil
}

// Returns identifier value, nil if key property is not defined or not set
func (m *Model) Id() any {
	p, err := m.P(m.meta.Key)
	if err != nil {
		return nil
	}
	return p.Val()
}

// Sets identifier value. Called by storage engines after insert
func (m *Model) SetId(id any) error {
	p, err := m.P(m.meta.Key)
	if err != nil {
		return ErrNoKey(m.meta.Ident, m.meta.Key)
	}
	return p.SetVal(id)
}

// Returns is identifier to be assigned by storage engine
func (m *Model) IsDeferredId() bool {
	p, err := m.P(m.meta.Key)
	if err != nil {
		return false
	}
	id, ok := p.(*property.IdProperty)
	return ok && id.IsDeferred(p.Val())
}

// Returns property value, nil for unknown property
func (m *Model) Get(ident string) any {
	p, err := m.P(ident)
	if err != nil {
		return nil
	}
	return p.Val()
}

// Sets property value
func (m *Model) Set(ident string, v any) error {
	p, err := m.P(ident)
	if err != nil {
		return err
	}
	if err := p.SetVal(v); err != nil {
		return fmt.Errorf("model «%s»: %w", m.meta.Ident, err)
	}
	return nil
}

// Sets values of defined properties. Unknown keys are skipped
func (m *Model) SetData(data map[string]any) error {
	for _, k := range sortedKeys(data) {
		if !m.meta.HasProperty(k) {
			m.f.logger.Debug("unknown model data key skipped", ilog.Ctx{"objType": m.meta.Ident, "key": k})
			continue
		}
		if err := m.Set(k, data[k]); err != nil {
			return err
		}
	}
	return nil
}

// Returns values of all properties keyed by ident
func (m *Model) Data() (map[string]any, error) {
	pp, err := m.Properties()
	if err != nil {
		return nil, err
	}
	res := make(map[string]any, len(pp))
	for _, p := range pp {
		res[p.Ident()] = p.Val()
	}
	return res, nil
}

// Sets values from storage row. Columns `{ident}_{locale}` of l10n properties
// are folded into locale maps, JSON stored multiple values are decoded
func (m *Model) SetFlatData(row map[string]any) error {
	for _, ident := range m.meta.PropertyIdents() {
		p, err := m.P(ident)
		if err != nil {
			return err
		}
		v, ok, err := flatVal(p, row)
		if err != nil {
			return fmt.Errorf("model «%s» property «%s»: %w", m.meta.Ident, ident, err)
		}
		if !ok {
			continue
		}
		if err := p.SetVal(v); err != nil {
			return fmt.Errorf("model «%s»: %w", m.meta.Ident, err)
		}
	}
	return nil
}

func flatVal(p property.IProperty, row map[string]any) (any, bool, error) {
	if !p.L10n() {
		v, ok := row[p.Ident()]
		if !ok {
			return nil, false, nil
		}
		v, err := storedVal(p, v)
		return v, true, err
	}
	names, err := p.FieldNames()
	if err != nil {
		return nil, false, err
	}
	res := make(map[string]any)
	for _, name := range names {
		v, ok := row[name]
		if !ok {
			continue
		}
		if v, err = storedVal(p, v); err != nil {
			return nil, false, err
		}
		res[strings.TrimPrefix(name, p.Ident()+"_")] = v
	}
	return res, len(res) > 0, nil
}

// Decodes JSON list stored by multiple property for non-scalar items
func storedVal(p property.IProperty, v any) (any, error) {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	s, ok := v.(string)
	if !ok || !p.Multiple() || !strings.HasPrefix(s, "[") {
		return v, nil
	}
	var list []any
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		return v, nil
	}
	return list, nil
}

// Returns storage row: storage values of storable properties keyed by field name
func (m *Model) FlatData() (map[string]any, error) {
	pp, err := m.Properties()
	if err != nil {
		return nil, err
	}
	res := make(map[string]any)
	for _, p := range pp {
		if !p.Storable() {
			continue
		}
		ff, err := p.Fields(p.Val())
		if err != nil {
			return nil, err
		}
		for _, f := range ff {
			res[f.Name] = f.Val
		}
	}
	return res, nil
}

// Runs persist-time hooks of storable properties: uploads transfer, identifiers generation.
//
// Errors of all properties are joined
func (m *Model) BeforeSave() error {
	pp, err := m.Properties()
	if err != nil {
		return err
	}
	var errs []error
	for _, p := range pp {
		if !p.Storable() {
			continue
		}
		v, err := p.Save(p.Val())
		if err == nil {
			err = p.SetVal(v)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("property «%s»: %w", p.Ident(), err))
		}
	}
	return errors.Join(errs...)
}

// Runs validation of active properties. Returns failed validation methods keyed by property ident,
// properties without failures are omitted
func (m *Model) Validate() (map[string][]string, error) {
	pp, err := m.ActiveProperties()
	if err != nil {
		return nil, err
	}
	res := make(map[string][]string)
	for _, p := range pp {
		if failed := p.Validate(); len(failed) > 0 {
			res[p.Ident()] = failed
		}
	}
	return res, nil
}

// Returns display value of property, empty for unknown property
func (m *Model) Display(ident string, opts ...property.ValOption) string {
	p, err := m.P(ident)
	if err != nil {
		return ""
	}
	return p.DisplayVal(p.Val(), opts...)
}

func (m *Model) String() string {
	id, _ := codec.ToString(m.Id())
	return m.meta.Ident + "#" + id
}

func sortedKeys(data map[string]any) []string {
	kk := maps.Keys(data)
	slices.Sort(kk)
	return kk
}

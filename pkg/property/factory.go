/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/voedger/charcoal/pkg/ilog"
	"github.com/voedger/charcoal/pkg/metadata"
)

var builtinTypes = map[string]Constructor{
	Type_String:       newStringProperty,
	Type_Text:         newTextProperty,
	Type_Html:         newHtmlProperty,
	Type_Email:        newEmailProperty,
	Type_Phone:        newPhoneProperty,
	Type_Url:          newUrlProperty,
	Type_Password:     newPasswordProperty,
	Type_Number:       newNumberProperty,
	Type_Integer:      newIntegerProperty,
	Type_Boolean:      newBooleanProperty,
	Type_DateTime:     newDateTimeProperty,
	Type_Id:           newIdProperty,
	Type_Ip:           newIpProperty,
	Type_Lang:         newLangProperty,
	Type_Structure:    newStructureProperty,
	Type_MapStructure: newMapStructureProperty,
	Type_Object:       newObjectProperty,
	Type_File:         newFileProperty,
	Type_Image:        newImageProperty,
}

// # Implements:
//   - IFactory
type factory struct {
	deps  Deps
	ctors map[string]Constructor
}

func newFactory(deps Deps) *factory {
	if deps.Logger == nil {
		deps.Logger = ilog.NewNop()
	}
	f := &factory{
		deps:  deps,
		ctors: maps.Clone(builtinTypes),
	}
	return f
}

func resolveType(typ string) string {
	typ = strings.ToLower(strings.TrimSpace(typ))
	if a, ok := typeAliases[typ]; ok {
		return a
	}
	return typ
}

func (f *factory) Create(typ string) (IProperty, error) {
	c, ok := f.ctors[resolveType(typ)]
	if !ok {
		f.deps.Logger.Debug("unknown property type", ilog.Ctx{"type": typ})
		return nil, ErrUnknownType(typ)
	}
	return c(f.deps), nil
}

func (f *factory) Build(pm metadata.PropertyMetadata) (IProperty, error) {
	p, err := f.Create(pm.Type())
	if err != nil {
		return nil, fmt.Errorf("property «%s»: %w", pm.Ident, err)
	}
	if err := p.SetIdent(pm.Ident); err != nil {
		return nil, err
	}
	if err := p.SetData(pm.Data); err != nil {
		return nil, err
	}
	return p, nil
}

func (f *factory) Register(typ string, c Constructor) {
	f.ctors[resolveType(typ)] = c
}

func (f *factory) Types() []string {
	tt := maps.Keys(f.ctors)
	slices.Sort(tt)
	return tt
}

func (f *factory) Deps() Deps { return f.deps }

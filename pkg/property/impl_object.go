/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"regexp"
	"strings"

	"github.com/voedger/charcoal/pkg/codec"
	"github.com/voedger/charcoal/pkg/expression"
	"github.com/voedger/charcoal/pkg/ilog"
	"github.com/voedger/charcoal/pkg/translator"
)

const DefaultObjectPattern = "{{name}}"

var patternTokenRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.\-]+)\s*\}\}`)

// Reference to object of other model type.
//
// Choices are loaded from storage through IObjectLoader and cached until
// object type, filters or orders are changed.
//
// # Implements:
//   - IProperty
//   - ISelectable
type ObjectProperty struct {
	property
	objType string
	pattern string
	filters []*expression.Filter
	orders  []*expression.Order

	choicesCache []Choice
	choicesIndex map[string]int
	cacheValid   bool
}

func newObjectProperty(deps Deps) IProperty {
	p := &ObjectProperty{}
	p.init(p, Type_Object, deps)
	p.pattern = DefaultObjectPattern
	return p
}

// Returns referenced model type.
//
// Returns ErrLogic if object type is not set
func (p *ObjectProperty) ObjType() (string, error) {
	if p.objType == "" {
		return "", ErrObjTypeNotSet(p.ident)
	}
	return p.objType, nil
}

func (p *ObjectProperty) SetObjType(objType string) error {
	if objType == "" {
		return ErrInvalidArgument("object type of property «%s» can not be empty", p.ident)
	}
	if objType != p.objType {
		p.objType = objType
		p.invalidateChoices()
	}
	return nil
}

// Returns display pattern, `{{name}}` by default
func (p *ObjectProperty) Pattern() string { return p.pattern }

func (p *ObjectProperty) SetPattern(pattern string) {
	if pattern != p.pattern {
		p.pattern = pattern
		p.invalidateChoices()
	}
}

func (p *ObjectProperty) Filters() []*expression.Filter { return p.filters }

// Sets filters of choices collection. Accepts list of filters, filter data maps or filter expressions
func (p *ObjectProperty) SetFilters(v any) error {
	res := []*expression.Filter{}
	for _, item := range listItems(v) {
		f, err := expression.ParseFilter(item)
		if err != nil {
			return err
		}
		res = append(res, f)
	}
	p.filters = res
	p.invalidateChoices()
	return nil
}

func (p *ObjectProperty) Orders() []*expression.Order { return p.orders }

// Sets orders of choices collection. Accepts list of orders or order data maps
func (p *ObjectProperty) SetOrders(v any) error {
	res := []*expression.Order{}
	for _, item := range listItems(v) {
		o, err := expression.ParseOrder(item)
		if err != nil {
			return err
		}
		res = append(res, o)
	}
	p.orders = res
	p.invalidateChoices()
	return nil
}

func (p *ObjectProperty) invalidateChoices() {
	p.cacheValid = false
	p.choicesCache = nil
	p.choicesIndex = nil
}

func (p *ObjectProperty) loader() (IObjectLoader, error) {
	if p.deps.ObjectLoader == nil {
		return nil, ErrRuntime("object property «%s»: object loader is not available", p.ident)
	}
	return p.deps.ObjectLoader, nil
}

// Loads choices from storage or returns cached ones
func (p *ObjectProperty) LoadChoices() ([]Choice, error) {
	if p.cacheValid {
		return p.choicesCache, nil
	}
	objType, err := p.ObjType()
	if err != nil {
		return nil, err
	}
	l, err := p.loader()
	if err != nil {
		return nil, err
	}
	objs, err := l.LoadObjects(objType, p.filters, p.orders)
	if err != nil {
		return nil, err
	}
	p.choicesCache = make([]Choice, 0, len(objs))
	p.choicesIndex = make(map[string]int, len(objs))
	for _, obj := range objs {
		key, ok := codec.ToString(obj.Id())
		if !ok || key == "" {
			continue
		}
		p.choicesIndex[key] = len(p.choicesCache)
		p.choicesCache = append(p.choicesCache, Choice{Value: key, Label: p.objLabel(obj, p.pattern)})
	}
	p.cacheValid = true
	return p.choicesCache, nil
}

func (p *ObjectProperty) Choices() []Choice {
	cc, err := p.LoadChoices()
	if err != nil {
		p.deps.Logger.Warning("can not load object choices", ilog.Ctx{"ident": p.ident, "objType": p.objType, "error": err.Error()})
		return []Choice{}
	}
	return cc
}

func (p *ObjectProperty) HasChoices() bool {
	return len(p.Choices()) > 0
}

func (p *ObjectProperty) Choice(key string) (Choice, bool) {
	p.Choices()
	if i, ok := p.choicesIndex[key]; ok {
		return p.choicesCache[i], true
	}
	return Choice{}, false
}

func (p *ObjectProperty) HasChoice(key string) bool {
	_, ok := p.Choice(key)
	return ok
}

func (p *ObjectProperty) ChoiceLabel(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case IObject:
		return p.objLabel(val, p.pattern), nil
	case map[string]any:
		if len(val) == 0 {
			return nil, ErrInvalidArgument("choice structure is empty")
		}
		if l, ok := val["label"]; ok {
			return p.deps.Translator.Translation(l), nil
		}
		cv, ok := val["value"]
		if !ok {
			return nil, ErrInvalidArgument("choice structure has neither label nor value")
		}
		v = cv
	}
	key, ok := choiceKey(v)
	if !ok {
		return nil, ErrInvalidArgument("choice key must be a string or an integer, got %T", v)
	}
	if c, ok := p.Choice(key); ok {
		return c.Label, nil
	}
	return v, nil
}

func (p *ObjectProperty) AddChoice(string, any) error {
	return ErrLogic("choices of object property «%s» are loaded from storage", p.ident)
}

func (p *ObjectProperty) AddChoices(any) error {
	return ErrLogic("choices of object property «%s» are loaded from storage", p.ident)
}

func (p *ObjectProperty) SetChoices(any) error {
	return ErrLogic("choices of object property «%s» are loaded from storage", p.ident)
}

// Objects are replaced with their identifiers
func (p *ObjectProperty) ParseOne(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case IObject:
		return val.Id(), nil
	case map[string]any:
		if id, ok := val["id"]; ok {
			return id, nil
		}
		return nil, ErrInvalidArgument("object property «%s»: structure has no id", p.ident)
	case string:
		if val == "" {
			return nil, nil
		}
		return val, nil
	}
	if !codec.IsScalar(v) {
		return nil, ErrInvalidArgument("object property «%s» value must be an identifier, got %T", p.ident, v)
	}
	return v, nil
}

// Renders referenced object with pattern. Falls back to identifier if object can not be loaded
func (p *ObjectProperty) displayOne(v any, o *valOptions) string {
	id, _ := codec.ToString(v)
	if id == "" {
		return ""
	}
	pattern := p.pattern
	if o.pattern != "" {
		pattern = o.pattern
	}
	if pattern == p.pattern {
		if c, ok := p.cachedChoice(id); ok {
			return translated(c.Label, o.locale, p.deps.Translator.DefaultLocale())
		}
	}
	obj, err := p.loadObject(v)
	if err != nil {
		p.deps.Logger.Warning("can not load referenced object", ilog.Ctx{"ident": p.ident, "id": id, "error": err.Error()})
		return id
	}
	if obj == nil {
		return id
	}
	return p.renderPattern(obj, pattern, o.locale)
}

func (p *ObjectProperty) inputOne(v any, _ *valOptions) string {
	s, _ := codec.ToString(v)
	return s
}

func (p *ObjectProperty) cachedChoice(id string) (Choice, bool) {
	if !p.cacheValid {
		return Choice{}, false
	}
	if i, ok := p.choicesIndex[id]; ok {
		return p.choicesCache[i], true
	}
	return Choice{}, false
}

func (p *ObjectProperty) loadObject(id any) (IObject, error) {
	objType, err := p.ObjType()
	if err != nil {
		return nil, err
	}
	l, err := p.loader()
	if err != nil {
		return nil, err
	}
	return l.LoadObject(objType, id)
}

// Label of object rendered in every available locale
func (p *ObjectProperty) objLabel(obj IObject, pattern string) *translator.Translation {
	texts := make(map[string]string)
	for _, l := range p.deps.Translator.AvailableLocales() {
		texts[l] = p.renderPattern(obj, pattern, l)
	}
	return p.deps.Translator.Translation(texts)
}

// Replaces `{{ident}}` tokens with object property values in locale
func (p *ObjectProperty) renderPattern(obj IObject, pattern, locale string) string {
	res := patternTokenRe.ReplaceAllStringFunc(pattern, func(token string) string {
		ident := patternTokenRe.FindStringSubmatch(token)[1]
		var v any
		if ident == "id" {
			v = obj.Id()
		} else {
			v = obj.Get(ident)
		}
		return p.localizedText(v, locale)
	})
	if strings.TrimSpace(res) == "" {
		s, _ := codec.ToString(obj.Id())
		return s
	}
	return res
}

func (p *ObjectProperty) localizedText(v any, locale string) string {
	switch val := v.(type) {
	case nil:
		return ""
	case *translator.Translation:
		return translated(val, locale, p.deps.Translator.DefaultLocale())
	case map[string]any, map[string]string:
		s, _ := codec.ToString(p.localized(val, locale))
		return s
	}
	return scalarOrJSON(v)
}

func (p *ObjectProperty) SqlType() string {
	if p.multiple {
		return "TEXT"
	}
	return "VARCHAR(255)"
}

func (p *ObjectProperty) setDataKey(key string, v any) (bool, error) {
	switch key {
	case "objtype":
		s, ok := v.(string)
		if !ok {
			return true, ErrInvalidArgument("object type must be a string, got %T", v)
		}
		return true, p.SetObjType(s)
	case "pattern":
		s, ok := v.(string)
		if !ok {
			return true, ErrInvalidArgument("pattern must be a string, got %T", v)
		}
		p.SetPattern(s)
		return true, nil
	case "filters":
		return true, p.SetFilters(v)
	case "orders":
		return true, p.SetOrders(v)
	}
	return p.property.setDataKey(key, v)
}

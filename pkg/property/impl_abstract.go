/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/tidwall/pretty"
	"golang.org/x/exp/maps"

	"github.com/voedger/charcoal/pkg/codec"
	"github.com/voedger/charcoal/pkg/ilog"
	"github.com/voedger/charcoal/pkg/translator"
)

// Hooks which variants override. Base property calls them through emb
type propertyImpl interface {
	IProperty

	displayOne(v any, o *valOptions) string
	inputOne(v any, o *valOptions) string
	storageOne(v any) (any, error)

	// Storage value for blank value
	nullStorage() (any, error)

	// Dispatches normalized definition key to typed setter. Returns false if key is unknown
	setDataKey(key string, v any) (bool, error)

	validators() []validator
}

var defaultTranslator = sync.OnceValue(func() translator.ITranslator {
	return translator.MustProvide(translator.Params{Locales: []string{"en"}})
})

// Base of all property variants.
//
// # Implements:
//   - IProperty, variants override what they need
type property struct {
	emb             propertyImpl
	typ             string
	deps            Deps
	ident           string
	label           *translator.Translation
	l10n            bool
	multiple        bool
	required        bool
	unique          bool
	allowNull       bool
	storable        bool
	hidden          bool
	active          bool
	multipleOptions MultipleOptions
	val             any
	extra           map[string]any
}

func (p *property) init(emb propertyImpl, typ string, deps Deps) {
	if deps.Logger == nil {
		deps.Logger = ilog.NewNop()
	}
	if deps.Translator == nil {
		deps.Translator = defaultTranslator()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	p.emb = emb
	p.typ = typ
	p.deps = deps
	p.allowNull = true
	p.storable = true
	p.active = true
	p.multipleOptions = MultipleOptions{Separator: codec.DefaultSeparator}
	p.extra = make(map[string]any)
}

func (p *property) Type() string { return p.typ }

func (p *property) Ident() string { return p.ident }

// Ident is a non-numeric field key
func (p *property) SetIdent(ident string) error {
	if codec.IsNumeric(ident) {
		return ErrInvalidArgument("property ident «%s» can not be numeric", ident)
	}
	p.ident = ident
	return nil
}

func (p *property) Label() *translator.Translation { return p.label }

func (p *property) SetLabel(v any) error {
	switch v.(type) {
	case nil:
		p.label = nil
	case string, map[string]any, map[string]string, *translator.Translation:
		p.label = p.deps.Translator.Translation(v)
	default:
		return ErrInvalidArgument("label of property «%s» must be a string or locale map, got %T", p.ident, v)
	}
	return nil
}

func (p *property) L10n() bool      { return p.l10n }
func (p *property) Multiple() bool  { return p.multiple }
func (p *property) Required() bool  { return p.required }
func (p *property) Unique() bool    { return p.unique }
func (p *property) AllowNull() bool { return p.allowNull }
func (p *property) Storable() bool  { return p.storable }
func (p *property) Hidden() bool    { return p.hidden }
func (p *property) Active() bool    { return p.active }

func (p *property) SetL10n(v any) error {
	p.l10n = codec.ToBool(v)
	return nil
}

func (p *property) SetMultiple(v any) error {
	p.multiple = codec.ToBool(v)
	return nil
}

func (p *property) SetRequired(v any) error {
	p.required = codec.ToBool(v)
	return nil
}

func (p *property) SetUnique(v any) error {
	p.unique = codec.ToBool(v)
	return nil
}

func (p *property) SetAllowNull(v any) error {
	p.allowNull = codec.ToBool(v)
	return nil
}

func (p *property) SetStorable(v any) error {
	p.storable = codec.ToBool(v)
	return nil
}

func (p *property) SetHidden(v any) error {
	p.hidden = codec.ToBool(v)
	return nil
}

func (p *property) SetActive(v any) error {
	p.active = codec.ToBool(v)
	return nil
}

func (p *property) MultipleOptions() MultipleOptions { return p.multipleOptions }

func (p *property) SetMultipleOptions(opts map[string]any) error {
	res := MultipleOptions{Separator: codec.DefaultSeparator}
	for k, v := range opts {
		switch normalizeKey(k) {
		case "separator":
			s, ok := v.(string)
			if !ok || s == "" {
				return ErrInvalidArgument("multiple separator of property «%s» must be a non-empty string", p.ident)
			}
			res.Separator = s
		case "min":
			n, err := toInt(v)
			if err != nil || n < 0 {
				return ErrInvalidArgument("multiple min of property «%s» must be a non-negative integer", p.ident)
			}
			res.Min = n
		case "max":
			n, err := toInt(v)
			if err != nil || n < 0 {
				return ErrInvalidArgument("multiple max of property «%s» must be a non-negative integer", p.ident)
			}
			res.Max = n
		}
	}
	p.multipleOptions = res
	return nil
}

func (p *property) MultipleSeparator() string {
	if p.multipleOptions.Separator == "" {
		return codec.DefaultSeparator
	}
	return p.multipleOptions.Separator
}

func (p *property) L10nIdent(locale ...string) (string, error) {
	if !p.l10n {
		return "", ErrLogic("property «%s» is not l10n", p.ident)
	}
	if p.ident == "" {
		return "", ErrRuntime("can not get l10n ident: property ident is empty")
	}
	l := p.deps.Translator.Locale()
	if len(locale) > 0 && locale[0] != "" {
		l = locale[0]
	}
	return p.ident + "_" + l, nil
}

func (p *property) Val() any { return p.val }

func (p *property) SetVal(v any) error {
	pv, err := p.emb.ParseVal(v)
	if err != nil {
		return err
	}
	if pv == nil && !p.allowNull {
		return ErrInvalidArgument("property «%s» value can not be null", p.ident)
	}
	p.val = pv
	return nil
}

func (p *property) StorageValue() (any, error) {
	return p.emb.StorageVal(p.val)
}

func (p *property) ParseVal(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if p.l10n {
		return p.parseL10n(v)
	}
	return p.parseLocalized(v)
}

func (p *property) ParseOne(v any) (any, error) {
	return v, nil
}

func (p *property) parseLocalized(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if !p.multiple {
		return p.emb.ParseOne(v)
	}
	items := codec.ParseMultiple(v, p.MultipleSeparator())
	res := make([]any, 0, len(items))
	for _, item := range items {
		pv, err := p.emb.ParseOne(item)
		if err != nil {
			return nil, err
		}
		if pv != nil {
			res = append(res, pv)
		}
	}
	return res, nil
}

func (p *property) parseL10n(v any) (map[string]any, error) {
	res := make(map[string]any)
	for l, lv := range p.localeMap(v) {
		pv, err := p.parseLocalized(lv)
		if err != nil {
			return nil, fmt.Errorf("locale «%s»: %w", l, err)
		}
		res[l] = pv
	}
	return res, nil
}

// Converts value to locale map. Strings are translated into every available locale,
// other not localized values are copied into every available locale
func (p *property) localeMap(v any) map[string]any {
	switch val := v.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		return val
	case map[string]string:
		return lo.MapValues(val, func(s string, _ string) any { return s })
	case *translator.Translation:
		return lo.MapValues(val.Data(), func(s string, _ string) any { return s })
	case string:
		return p.localeMap(p.deps.Translator.Translation(val))
	}
	res := make(map[string]any)
	for _, l := range p.deps.Translator.AvailableLocales() {
		res[l] = v
	}
	return res
}

// Returns value of locale, falls back to default locale
func (p *property) localized(v any, locale string) any {
	def := p.deps.Translator.DefaultLocale()
	switch val := v.(type) {
	case map[string]any:
		if lv, ok := val[locale]; ok && !codec.IsBlank(lv) {
			return lv
		}
		return val[def]
	case map[string]string:
		if lv, ok := val[locale]; ok && lv != "" {
			return lv
		}
		return val[def]
	case *translator.Translation:
		return translated(val, locale, def)
	}
	return v
}

func (p *property) valOptions(opts []ValOption) *valOptions {
	o := &valOptions{locale: p.deps.Translator.Locale()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (p *property) DisplayVal(v any, opts ...ValOption) string {
	o := p.valOptions(opts)
	if p.l10n {
		v = p.localized(v, o.locale)
	}
	if codec.IsBlank(v) {
		return ""
	}
	if !p.multiple {
		return p.emb.displayOne(v, o)
	}
	parts := []string{}
	for _, item := range codec.ParseMultiple(v, p.MultipleSeparator()) {
		if s := p.emb.displayOne(item, o); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, DefaultDisplaySep)
}

func (p *property) displayOne(v any, o *valOptions) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case *translator.Translation:
		return translated(val, o.locale, p.deps.Translator.DefaultLocale())
	case time.Time:
		return val.Format(codec.DateTimeLayout)
	}
	if s, ok := codec.ToString(v); ok {
		return s
	}
	s, err := jsonEncode(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSpace(string(pretty.Pretty([]byte(s))))
}

func (p *property) InputVal(v any, opts ...ValOption) string {
	o := p.valOptions(opts)
	if p.l10n {
		v = p.localized(v, o.locale)
	}
	if codec.IsBlank(v) {
		return ""
	}
	if !p.multiple {
		return p.emb.inputOne(v, o)
	}
	parts := []string{}
	for _, item := range codec.ParseMultiple(v, p.MultipleSeparator()) {
		if s := p.emb.inputOne(item, o); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, p.MultipleSeparator())
}

func (p *property) inputOne(v any, _ *valOptions) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return val.Format(codec.DateTimeLayout)
	}
	return scalarOrJSON(v)
}

func (p *property) StorageVal(v any) (any, error) {
	if codec.IsBlank(v) {
		return p.emb.nullStorage()
	}
	if !p.l10n {
		return p.storageLocalized(v)
	}
	res := make(map[string]any)
	for l, lv := range p.localeMap(v) {
		sv, err := p.storageLocalized(lv)
		if err != nil {
			return nil, fmt.Errorf("locale «%s»: %w", l, err)
		}
		res[l] = sv
	}
	return jsonEncode(res)
}

func (p *property) storageLocalized(v any) (any, error) {
	if codec.IsBlank(v) {
		return p.emb.nullStorage()
	}
	if !p.multiple {
		return p.emb.storageOne(v)
	}
	vals := []any{}
	raw := []any{}
	scalars := true
	for _, item := range codec.ParseMultiple(v, p.MultipleSeparator()) {
		sv, err := p.emb.storageOne(item)
		if err != nil {
			return nil, err
		}
		if sv == nil {
			continue
		}
		// structures are encoded as a whole JSON list, not as joined JSON items
		scalars = scalars && codec.IsScalar(sv) && !isList(item) && !isMap(item)
		vals = append(vals, sv)
		raw = append(raw, item)
	}
	if len(vals) == 0 {
		return p.emb.nullStorage()
	}
	if scalars {
		return codec.JoinMultiple(vals, p.MultipleSeparator()), nil
	}
	return jsonEncode(raw)
}

func (p *property) storageOne(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return val.Format(codec.DateTimeLayout), nil
	case codec.IStorable:
		return val.StorageValue()
	}
	if codec.IsScalar(v) {
		return v, nil
	}
	return jsonEncode(v)
}

func (p *property) nullStorage() (any, error) {
	return nil, nil
}

func (p *property) Save(v any) (any, error) {
	return v, nil
}

func (p *property) validators() []validator {
	res := []validator{
		{Validation_Required, p.ValidateRequired},
		{Validation_AllowNull, p.ValidateAllowNull},
	}
	if p.multiple {
		res = append(res, validator{Validation_Multiple, p.ValidateMultiple})
	}
	return res
}

func (p *property) ValidationMethods() []string {
	return lo.Map(p.emb.validators(), func(v validator, _ int) string { return v.name })
}

func (p *property) Validate() []string {
	failed := []string{}
	for _, v := range p.emb.validators() {
		if !v.fn() {
			failed = append(failed, v.name)
		}
	}
	return failed
}

// Returns false if property is required and value is blank
func (p *property) ValidateRequired() bool {
	if !p.required {
		return true
	}
	return len(p.valItems()) > 0
}

// Returns false if null is not allowed and value is nil
func (p *property) ValidateAllowNull() bool {
	return p.allowNull || p.val != nil
}

// Returns false if any locale holds fewer items than multiple min or more than multiple max.
// Blank value is checked by required
func (p *property) ValidateMultiple() bool {
	opts := p.multipleOptions
	if !p.multiple || (opts.Min == 0 && opts.Max == 0) {
		return true
	}
	for _, lv := range p.localValues() {
		n := len(p.multipleItems(lv))
		if n < opts.Min || (opts.Max > 0 && n > opts.Max) {
			return false
		}
	}
	return true
}

// Returns not blank values of every locale, or value itself if property is not l10n
func (p *property) localValues() []any {
	if codec.IsBlank(p.val) {
		return nil
	}
	locals := []any{p.val}
	if p.l10n {
		m := p.localeMap(p.val)
		ll := maps.Keys(m)
		slices.Sort(ll)
		locals = lo.Map(ll, func(l string, _ int) any { return m[l] })
	}
	return lo.Reject(locals, func(lv any, _ int) bool { return codec.IsBlank(lv) })
}

func (p *property) multipleItems(lv any) []any {
	return lo.Reject(codec.ParseMultiple(lv, p.MultipleSeparator()), func(item any, _ int) bool {
		return codec.IsBlank(item)
	})
}

// Returns current value flattened into list of not blank scalar items:
// locales of l10n value and items of multiple value
func (p *property) valItems() []any {
	res := []any{}
	for _, lv := range p.localValues() {
		if p.multiple {
			res = append(res, p.multipleItems(lv)...)
			continue
		}
		res = append(res, lv)
	}
	return res
}

func (p *property) SqlType() string {
	if p.multiple {
		return "TEXT"
	}
	return "VARCHAR(255)"
}

func (p *property) SqlPdoType() PdoType { return PdoType_Str }

func (p *property) SqlExtra() string { return "" }

func (p *property) SqlEncoding() string { return "" }

func (p *property) FieldNames() ([]string, error) {
	if p.ident == "" {
		return nil, ErrRuntime("can not get field names: property ident is empty")
	}
	if !p.l10n {
		return []string{p.ident}, nil
	}
	return lo.Map(p.deps.Translator.AvailableLocales(), func(l string, _ int) string {
		return p.ident + "_" + l
	}), nil
}

func (p *property) Fields(v any) ([]Field, error) {
	if p.ident == "" {
		return nil, ErrRuntime("can not get fields: property ident is empty")
	}
	if !p.l10n {
		sv, err := p.emb.StorageVal(v)
		if err != nil {
			return nil, fmt.Errorf("property «%s»: %w", p.ident, err)
		}
		return []Field{p.field(p.ident, "", sv)}, nil
	}
	m := map[string]any{}
	if !codec.IsBlank(v) {
		m = p.localeMap(v)
	}
	res := []Field{}
	for _, l := range p.deps.Translator.AvailableLocales() {
		sv, err := p.storageLocalized(m[l])
		if err != nil {
			return nil, fmt.Errorf("property «%s» locale «%s»: %w", p.ident, l, err)
		}
		res = append(res, p.field(p.ident+"_"+l, l, sv))
	}
	return res, nil
}

func (p *property) field(name, locale string, v any) Field {
	return Field{
		Ident:       p.ident,
		Name:        name,
		Locale:      locale,
		Val:         v,
		SqlType:     p.emb.SqlType(),
		SqlPdoType:  p.emb.SqlPdoType(),
		SqlExtra:    p.emb.SqlExtra(),
		SqlEncoding: p.emb.SqlEncoding(),
		AllowNull:   p.allowNull,
	}
}

func (p *property) Extra() map[string]any { return p.extra }

func (p *property) SetData(data map[string]any) error {
	keys := maps.Keys(data)
	// ident first, value last: value parsing depends on flags
	slices.SortFunc(keys, func(a, b string) int {
		if oa, ob := dataKeyOrder(a), dataKeyOrder(b); oa != ob {
			return oa - ob
		}
		return strings.Compare(a, b)
	})
	for _, k := range keys {
		handled, err := p.emb.setDataKey(normalizeKey(k), data[k])
		if err != nil {
			return fmt.Errorf("%s property «%s» key «%s»: %w", p.typ, p.ident, k, err)
		}
		if !handled {
			p.extra[k] = data[k]
			p.deps.Logger.Debug("unknown property key kept as extra", ilog.Ctx{"type": p.typ, "ident": p.ident, "key": k})
		}
	}
	return nil
}

func dataKeyOrder(k string) int {
	switch normalizeKey(k) {
	case "ident":
		return -1
	case "val":
		return 1
	}
	return 0
}

func (p *property) setDataKey(key string, v any) (bool, error) {
	switch key {
	case "type":
		return true, nil
	case "ident":
		s, ok := v.(string)
		if !ok {
			return true, ErrInvalidArgument("ident must be a string, got %T", v)
		}
		return true, p.emb.SetIdent(s)
	case "label":
		return true, p.emb.SetLabel(v)
	case "l10n":
		return true, p.emb.SetL10n(v)
	case "multiple":
		return true, p.emb.SetMultiple(v)
	case "multipleoptions":
		m, ok := v.(map[string]any)
		if !ok && v != nil {
			return true, ErrInvalidArgument("multiple options must be a map, got %T", v)
		}
		return true, p.emb.SetMultipleOptions(m)
	case "required":
		return true, p.emb.SetRequired(v)
	case "unique":
		return true, p.emb.SetUnique(v)
	case "allownull":
		return true, p.emb.SetAllowNull(v)
	case "storable":
		return true, p.emb.SetStorable(v)
	case "hidden":
		return true, p.emb.SetHidden(v)
	case "active":
		return true, p.emb.SetActive(v)
	case "val":
		return true, p.emb.SetVal(v)
	}
	return false, nil
}

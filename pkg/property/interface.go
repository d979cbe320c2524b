/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"github.com/voedger/charcoal/pkg/codec"
	"github.com/voedger/charcoal/pkg/expression"
	"github.com/voedger/charcoal/pkg/metadata"
	"github.com/voedger/charcoal/pkg/translator"
)

// Typed, self-validating, storage-mappable value slot of a model.
//
// Ref. to impl_abstract.go for base implementation and impl_*.go for variants
type IProperty interface {
	// Returns storage value of current value
	codec.IStorable

	// Returns property type name, e.g. `string` or `date-time`
	Type() string

	// Returns property identifier
	Ident() string

	// Sets property identifier.
	//
	// Returns ErrInvalidArgument if identifier is numeric
	SetIdent(string) error

	// Returns property label. Returns nil if label is not set
	Label() *translator.Translation

	// Sets label. Accepts string, locale map or translation.
	//
	// Returns ErrInvalidArgument for other values
	SetLabel(any) error

	L10n() bool
	Multiple() bool
	Required() bool
	Unique() bool
	AllowNull() bool
	Storable() bool
	Hidden() bool
	Active() bool

	// Boolean flag setters coerce any value with codec.ToBool.
	//
	// Some variants forbid l10n or multiple and return ErrInvalidArgument
	// if flag is coerced to true.
	SetL10n(any) error
	SetMultiple(any) error
	SetRequired(any) error
	SetUnique(any) error
	SetAllowNull(any) error
	SetStorable(any) error
	SetHidden(any) error
	SetActive(any) error

	// Returns multiple value options
	MultipleOptions() MultipleOptions

	// Sets multiple value options from raw map with keys `separator`, `min` and `max`.
	//
	// Returns ErrInvalidArgument if min or max is negative, or separator is not a string
	SetMultipleOptions(map[string]any) error

	// Returns multiple values separator, `,` by default
	MultipleSeparator() string

	// Returns locale-qualified storage identifier `{ident}_{locale}`.
	// If locale is omitted then current translator locale is used.
	//
	// Returns ErrLogic if property is not l10n and ErrRuntime if ident is empty.
	L10nIdent(locale ...string) (string, error)

	// Returns current value
	Val() any

	// Parses and sets current value.
	//
	// Returns ErrInvalidArgument if value is nil and null is not allowed,
	// or value can not be parsed
	SetVal(any) error

	// Parses raw value into canonical value respecting l10n and multiple flags
	ParseVal(any) (any, error)

	// Parses single raw value into canonical value
	ParseOne(any) (any, error)

	// Returns human-facing representation of value
	DisplayVal(v any, opts ...ValOption) string

	// Returns edit-form representation of value
	InputVal(v any, opts ...ValOption) string

	// Returns value as persisted. Blank values are stored as nil
	StorageVal(v any) (any, error)

	// Persist-time hook. Returns value to be stored.
	//
	// Some variants perform side effects here (file transfer, identifier generation)
	Save(v any) (any, error)

	// Returns names of validation methods applicable to this property
	ValidationMethods() []string

	// Runs all validation methods against current value.
	//
	// Returns names of failed methods. Never returns nil
	Validate() []string

	// Returns false if property is required and value is blank
	ValidateRequired() bool

	// Returns false if null is not allowed and value is nil
	ValidateAllowNull() bool

	// Returns SQL column type
	SqlType() string

	// Returns parameter binding type
	SqlPdoType() PdoType

	// Returns extra column DDL, e.g. `AUTO_INCREMENT`
	SqlExtra() string

	// Returns column collation hint for string columns, empty for others
	SqlEncoding() string

	// Returns storage field names: ident, or ident per available locale if l10n
	FieldNames() ([]string, error)

	// Returns storage fields for specified value
	Fields(v any) ([]Field, error)

	// Configures property from raw definition data.
	//
	// Every known key is dispatched to its typed setter. Keys are case-insensitive,
	// `_` and `-` are ignored (`max_length` == `maxLength`). Key `type` is ignored.
	// Unknown keys are kept in Extra()
	SetData(map[string]any) error

	// Returns definition keys which are not known by property
	Extra() map[string]any
}

// Choices list capability.
//
// Ref. to impl_selectable.go for implementation
type ISelectable interface {
	// Returns choices in add order
	Choices() []Choice
	HasChoices() bool
	Choice(key string) (Choice, bool)
	HasChoice(key string) bool

	// Returns label for choice.
	//
	// Accepts:
	//   - nil, returns nil,
	//   - map with `label` key, returns label as translation,
	//   - map with `value` key, resolves value as key,
	//   - string or integer key, returns choice label as translation if choice exists or key as is.
	//
	// Returns ErrInvalidArgument for empty map and for other types
	ChoiceLabel(v any) (any, error)

	// Adds choice. Choice may be string (label) or map with `value` and `label` keys
	AddChoice(key string, choice any) error

	// Adds choices from map (sorted by key) or list of maps with `value` key (in list order)
	AddChoices(choices any) error

	// Clears choices and adds specified
	SetChoices(choices any) error
}

// Referenced model object
type IObject interface {
	// Returns object identifier
	Id() any

	// Returns property value by identifier
	Get(ident string) any
}

// Loads referenced objects for object properties.
//
// Ref. to model.CollectionLoader for implementation
type IObjectLoader interface {
	// Loads objects of specified type
	LoadObjects(objType string, filters []*expression.Filter, orders []*expression.Order) ([]IObject, error)

	// Loads single object by identifier. Returns nil, nil if not found
	LoadObject(objType string, id any) (IObject, error)
}

// Processes image effects for image properties.
//
// Image processing itself is out of scope, processor is provided by application.
type IEffectsProcessor interface {
	Apply(path string, effects []map[string]any) error
}

// Property factory: registry of constructors keyed by type name.
//
// Ref. to factory.go for implementation
type IFactory interface {
	// Creates property of specified type.
	//
	// Returns ErrUnknownType if type is not registered
	Create(typ string) (IProperty, error)

	// Creates property from metadata definition, sets ident and definition data
	Build(pm metadata.PropertyMetadata) (IProperty, error)

	// Registers (or replaces) constructor for type
	Register(typ string, c Constructor)

	// Returns registered type names, sorted
	Types() []string

	// Returns dependencies passed to constructors
	Deps() Deps
}

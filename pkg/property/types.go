/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"time"

	"github.com/voedger/charcoal/pkg/ilog"
	"github.com/voedger/charcoal/pkg/translator"
)

// Parameter binding type of storage engine
type PdoType uint8

const (
	PdoType_Null PdoType = iota
	PdoType_Bool
	PdoType_Int
	PdoType_Str
	PdoType_Lob
)

func (t PdoType) String() string {
	switch t {
	case PdoType_Null:
		return "null"
	case PdoType_Bool:
		return "bool"
	case PdoType_Int:
		return "int"
	case PdoType_Str:
		return "string"
	case PdoType_Lob:
		return "lob"
	}
	return "unknown"
}

// Storage field (column) of a property
type Field struct {
	// Property identifier
	Ident string

	// Column name, locale-qualified for l10n properties
	Name string

	// Locale, empty for not l10n properties
	Locale string

	// Storage value
	Val any

	SqlType     string
	SqlPdoType  PdoType
	SqlExtra    string
	SqlEncoding string
	AllowNull   bool
}

// Multiple value options
type MultipleOptions struct {
	Separator string
	Min       int
	Max       int
}

// Choice of selectable property
type Choice struct {
	Value string
	Label *translator.Translation
}

// Constructs property of concrete type
type Constructor func(deps Deps) IProperty

// Property dependencies.
//
// Translator is required, other dependencies are optional.
type Deps struct {
	Logger     ilog.ILogger
	Translator translator.ITranslator

	// Loads referenced objects for object properties
	ObjectLoader IObjectLoader

	// Processes image effects for image properties
	EffectsProcessor IEffectsProcessor

	File FileParams

	// Current time source, time.Now if nil
	Now func() time.Time
}

// File properties environment
type FileParams struct {
	// File system root, relative file paths are resolved against it
	BasePath string

	// Maximum upload size if not configured by property, DefaultMaxFilesize if zero
	MaxUploadSize int64
}

// Received file upload, the mechanics of receiving are out of scope
type Upload struct {
	// Original client file name
	Name string

	// Path of the received temporary file
	TmpPath string

	// Size in bytes
	Size int64

	// Client reported MIME type, not trusted
	Type string

	Error UploadErrorCode
}

type valOptions struct {
	locale  string
	pattern string
}

// Display and input value option
type ValOption func(*valOptions)

// Renders value in specified locale instead of current one
func WithLocale(locale string) ValOption {
	return func(o *valOptions) { o.locale = locale }
}

// Renders referenced objects with specified pattern, e.g. `{{title}} ({{id}})`
func WithPattern(pattern string) ValOption {
	return func(o *valOptions) { o.pattern = pattern }
}

type validator struct {
	name string
	fn   func() bool
}

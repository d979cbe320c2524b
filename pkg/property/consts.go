/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

// Property type names
const (
	Type_String       = "string"
	Type_Text         = "text"
	Type_Html         = "html"
	Type_Email        = "email"
	Type_Phone        = "phone"
	Type_Url          = "url"
	Type_Password     = "password"
	Type_Number       = "number"
	Type_Integer      = "integer"
	Type_Boolean      = "boolean"
	Type_DateTime     = "date-time"
	Type_Id           = "id"
	Type_Ip           = "ip"
	Type_Lang         = "lang"
	Type_Structure    = "structure"
	Type_MapStructure = "map-structure"
	Type_Object       = "object"
	Type_File         = "file"
	Type_Image        = "image"
)

// Type aliases accepted by factory
var typeAliases = map[string]string{
	"datetime": Type_DateTime,
	"int":      Type_Integer,
	"bool":     Type_Boolean,
	"json":     Type_Structure,
}

// Validation method names
const (
	Validation_Required   = "required"
	Validation_AllowNull  = "allowNull"
	Validation_Multiple   = "multiple"
	Validation_MinLength  = "minLength"
	Validation_MaxLength  = "maxLength"
	Validation_Regexp     = "regexp"
	Validation_AllowEmpty = "allowEmpty"
	Validation_Email      = "email"
	Validation_Phone      = "phone"
	Validation_Url        = "url"
	Validation_Min        = "min"
	Validation_Max        = "max"
	Validation_Ip         = "ip"
	Validation_Choices    = "choices"
	Validation_Mimetypes  = "mimetypes"
	Validation_Filesizes  = "filesizes"
)

const (
	DefaultStringMaxLength = 255
	EmailMaxLength         = 254 // RFC-3696 errata 1690
	PhoneMaxLength         = 16
	DefaultDisplaySep      = ", "
	DefaultSqlEncoding     = "utf8mb4_unicode_ci"
	DefaultMaxFilesize     = 128 << 20
	DefaultUploadPath      = "uploads/"
	uniqidLen              = 13
)

// Id property modes
const (
	IdMode_AutoIncrement = "auto-increment"
	IdMode_Uniqid        = "uniqid"
	IdMode_Uuid          = "uuid"
	IdMode_Custom        = "custom"
)

// Placeholder returned by IdProperty.Save() in auto-increment mode.
// Real identifier is assigned by storage engine after insert.
const DeferredID = ""

// Ip property storage modes
const (
	IpStorage_String = "string"
	IpStorage_Int    = "int"
)

// Image effects policies
const (
	ApplyEffects_Never  = "never"
	ApplyEffects_Upload = "upload"
	ApplyEffects_Save   = "save"
)

// Structure SQL types
var structureSqlTypes = []string{"TEXT", "TINYTEXT", "MEDIUMTEXT", "LONGTEXT"}

// Upload error codes, same values as PHP UPLOAD_ERR_××× constants
type UploadErrorCode int

const (
	Upload_Ok UploadErrorCode = iota
	Upload_IniSize
	Upload_FormSize
	Upload_Partial
	Upload_NoFile
	_
	Upload_NoTmpDir
	Upload_CantWrite
	Upload_Extension
)

var uploadErrorMessages = map[UploadErrorCode]string{
	Upload_IniSize:   "the uploaded file exceeds the maximum upload size",
	Upload_FormSize:  "the uploaded file exceeds the maximum size specified by the form",
	Upload_Partial:   "the uploaded file was only partially uploaded",
	Upload_NoFile:    "no file was uploaded",
	Upload_NoTmpDir:  "missing a temporary folder",
	Upload_CantWrite: "failed to write file to disk",
	Upload_Extension: "an extension stopped the file upload",
}

// Returns human-readable message for upload error code
func (c UploadErrorCode) Message() string {
	if c == Upload_Ok {
		return ""
	}
	if s, ok := uploadErrorMessages[c]; ok {
		return s
	}
	return "unknown upload error"
}

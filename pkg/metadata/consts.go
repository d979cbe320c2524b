/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package metadata

// Default identifier (primary key) property
const DefaultKey = "id"

const (
	Key_Type        = "type"
	Key_Ident       = "ident"
	Key_Key         = "key"
	Key_Table       = "table"
	Key_Label       = "label"
	Key_Properties  = "properties"
	Key_DefaultData = "default_data"
	Key_Extends     = "extends"
)

// Metadata file extensions, in lookup order
var fileExts = []string{".yaml", ".yml", ".json"}

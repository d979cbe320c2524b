/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package ilog

type Level uint8

const (
	Level_Debug Level = iota
	Level_Notice
	Level_Warning
	Level_Error
)

func (l Level) String() string {
	switch l {
	case Level_Debug:
		return "debug"
	case Level_Notice:
		return "notice"
	case Level_Warning:
		return "warning"
	case Level_Error:
		return "error"
	}
	return "unknown"
}

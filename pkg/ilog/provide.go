/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package ilog

import "github.com/rs/zerolog"

// Returns logger which writes through goutils logger
func Provide() ILogger {
	return goutilsLogger{}
}

// Returns logger which writes through specified zerolog logger
func ProvideZerolog(zl zerolog.Logger) ILogger {
	return &zeroLogger{zl: zl}
}

// Returns logger which discards everything
func NewNop() ILogger {
	return nopLogger{}
}

// Returns new empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

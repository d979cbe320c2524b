/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package ilog

// Structured log context
type Ctx map[string]any

// Leveled logger with structured context.
//
// Implementations: Provide (goutils logger), ProvideZerolog, NewNop, NewRecorder
type ILogger interface {
	Debug(msg string, ctx Ctx)
	Notice(msg string, ctx Ctx)
	Warning(msg string, ctx Ctx)
	Error(msg string, ctx Ctx)
}

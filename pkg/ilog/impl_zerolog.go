/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package ilog

import "github.com/rs/zerolog"

// # Implements:
//   - ILogger
type zeroLogger struct {
	zl zerolog.Logger
}

func (l *zeroLogger) Debug(msg string, ctx Ctx) {
	l.zl.Debug().Fields(map[string]any(ctx)).Msg(msg)
}

// zerolog has no notice level, info is used instead
func (l *zeroLogger) Notice(msg string, ctx Ctx) {
	l.zl.Info().Fields(map[string]any(ctx)).Msg(msg)
}

func (l *zeroLogger) Warning(msg string, ctx Ctx) {
	l.zl.Warn().Fields(map[string]any(ctx)).Msg(msg)
}

func (l *zeroLogger) Error(msg string, ctx Ctx) {
	l.zl.Error().Fields(map[string]any(ctx)).Msg(msg)
}

/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package ilog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/untillpro/goutils/logger"
	"golang.org/x/exp/maps"
)

// # Implements:
//   - ILogger
type goutilsLogger struct{}

func (goutilsLogger) Debug(msg string, ctx Ctx) {
	if logger.IsVerbose() {
		logger.Verbose(msg, FormatCtx(ctx))
	}
}

func (goutilsLogger) Notice(msg string, ctx Ctx) {
	logger.Info(msg, FormatCtx(ctx))
}

func (goutilsLogger) Warning(msg string, ctx Ctx) {
	logger.Warning(msg, FormatCtx(ctx))
}

func (goutilsLogger) Error(msg string, ctx Ctx) {
	logger.Error(msg, FormatCtx(ctx))
}

// Renders context as sorted `key=value` pairs
func FormatCtx(ctx Ctx) string {
	if len(ctx) == 0 {
		return ""
	}
	keys := maps.Keys(ctx)
	slices.Sort(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, ctx[k]))
	}
	return strings.Join(pairs, " ")
}

// # Implements:
//   - ILogger
type nopLogger struct{}

func (nopLogger) Debug(string, Ctx)   {}
func (nopLogger) Notice(string, Ctx)  {}
func (nopLogger) Warning(string, Ctx) {}
func (nopLogger) Error(string, Ctx)   {}

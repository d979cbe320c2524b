/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package boltsource

import (
	"time"

	"github.com/voedger/charcoal/pkg/ilog"
)

type Params struct {
	// Path of database file, created if not exists
	Path string

	// Time to wait for file lock, zero means wait indefinitely
	Timeout time.Duration

	Logger ilog.ILogger
}

// Stored item: flat column values keyed by column name
type row map[string]any

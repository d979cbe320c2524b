/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package ilog

import "sync"

// Recorded log entry
type Entry struct {
	Level Level
	Msg   string
	Ctx   Ctx
}

// Logger which keeps all entries in memory. Useful for tests.
//
// # Implements:
//   - ILogger
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) add(l Level, msg string, ctx Ctx) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: l, Msg: msg, Ctx: ctx})
}

func (r *Recorder) Debug(msg string, ctx Ctx)   { r.add(Level_Debug, msg, ctx) }
func (r *Recorder) Notice(msg string, ctx Ctx)  { r.add(Level_Notice, msg, ctx) }
func (r *Recorder) Warning(msg string, ctx Ctx) { r.add(Level_Warning, msg, ctx) }
func (r *Recorder) Error(msg string, ctx Ctx)   { r.add(Level_Error, msg, ctx) }

// Returns copy of recorded entries
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Returns recorded entries of specified level
func (r *Recorder) EntriesOf(l Level) []Entry {
	res := make([]Entry, 0)
	for _, e := range r.Entries() {
		if e.Level == l {
			res = append(res, e)
		}
	}
	return res
}

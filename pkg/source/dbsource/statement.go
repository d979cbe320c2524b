/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package dbsource

import (
	"github.com/valyala/bytebufferpool"

	"github.com/voedger/charcoal/pkg/expression"
)

// Statement text and bind arguments under construction.
//
// Text buffer is pooled, release statement after use
type statement struct {
	d    expression.Dialect
	buf  *bytebufferpool.ByteBuffer
	args *expression.Args
}

func newStatement(d expression.Dialect) *statement {
	return &statement{
		d:    d,
		buf:  bytebufferpool.Get(),
		args: expression.NewArgs(d),
	}
}

func (st *statement) release() {
	bytebufferpool.Put(st.buf)
	st.buf = nil
}

func (st *statement) write(ss ...string) *statement {
	for _, s := range ss {
		_, _ = st.buf.WriteString(s)
	}
	return st
}

func (st *statement) ident(name string) *statement {
	return st.write(st.d.Quoter.Identifier(name))
}

func (st *statement) idents(names []string) *statement {
	for i, n := range names {
		if i > 0 {
			st.write(", ")
		}
		st.ident(n)
	}
	return st
}

func (st *statement) bind(v any) error {
	ph, err := st.args.Add(v)
	if err != nil {
		return err
	}
	st.write(ph)
	return nil
}

// Writes clause prefixed with space, empty clause is skipped
func (st *statement) clause(s string) *statement {
	if s != "" {
		st.write(" ", s)
	}
	return st
}

func (st *statement) String() string { return st.buf.String() }

func (st *statement) Args() []any { return st.args.Values() }

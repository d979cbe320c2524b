/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package dbsource

import (
	"context"
	"strings"

	"github.com/voedger/charcoal/pkg/codec"
	"github.com/voedger/charcoal/pkg/model"
	"github.com/voedger/charcoal/pkg/property"
)

// Returns `CREATE TABLE IF NOT EXISTS` statement for storable active properties of item
func (s *DbSource) CreateTableSQL(item *model.Model) (string, error) {
	item, err := s.Item(item)
	if err != nil {
		return "", err
	}
	ff, err := s.FieldsOf(item)
	if err != nil {
		return "", err
	}
	st := newStatement(s.d)
	defer st.release()
	st.write("CREATE TABLE IF NOT EXISTS ").ident(item.Table()).write(" (\n")
	for _, f := range ff {
		st.write("  ").write(s.columnDefinition(f, f.Ident == item.Key())).write(",\n")
	}
	st.write("  PRIMARY KEY (").ident(item.Key()).write(")\n)")
	return st.String(), nil
}

func (s *DbSource) columnDefinition(f property.Field, key bool) string {
	parts := []string{s.d.Quoter.Identifier(f.Name)}
	autoInc := f.SqlExtra == mysqlAutoIncrement
	switch {
	case s.d.IsPostgres() && autoInc:
		parts = append(parts, "SERIAL")
	case s.d.IsPostgres():
		parts = append(parts, postgresType(f.SqlType))
	default:
		parts = append(parts, f.SqlType)
		if f.SqlEncoding != "" {
			parts = append(parts, "COLLATE "+f.SqlEncoding)
		}
	}
	if key || !f.AllowNull {
		parts = append(parts, "NOT NULL")
	} else {
		parts = append(parts, "NULL")
	}
	if f.SqlExtra != "" && !s.d.IsPostgres() {
		parts = append(parts, f.SqlExtra)
	}
	return strings.Join(parts, " ")
}

func postgresType(t string) string {
	if pt, ok := postgresTypes[strings.ToUpper(t)]; ok {
		return pt
	}
	return t
}

// Creates table of item if not exists
func (s *DbSource) CreateTable(ctx context.Context, item *model.Model) error {
	sql, err := s.CreateTableSQL(item)
	if err != nil {
		return err
	}
	st := newStatement(s.d)
	defer st.release()
	_, err = s.execute(ctx, st.write(sql))
	return err
}

// Returns is table of item exists in current database (schema)
func (s *DbSource) TableExists(ctx context.Context, item *model.Model) (bool, error) {
	item, err := s.Item(item)
	if err != nil {
		return false, err
	}
	st := newStatement(s.d)
	defer st.release()
	st.write("SELECT COUNT(*) AS n FROM information_schema.tables WHERE ")
	st.write(s.schemaCondition()).write(" AND table_name = ")
	if err := st.bind(item.Table()); err != nil {
		return false, err
	}
	rows, err := s.query(ctx, st)
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}
	n, _ := codec.ToFloat(rows[0]["n"])
	return n > 0, nil
}

// Returns columns of item table in ordinal order
func (s *DbSource) TableStructure(ctx context.Context, item *model.Model) ([]Column, error) {
	item, err := s.Item(item)
	if err != nil {
		return nil, err
	}
	st := newStatement(s.d)
	defer st.release()
	st.write("SELECT column_name AS name, data_type AS type, is_nullable AS nullable FROM information_schema.columns WHERE ")
	st.write(s.schemaCondition()).write(" AND table_name = ")
	if err := st.bind(item.Table()); err != nil {
		return nil, err
	}
	st.write(" ORDER BY ordinal_position")
	rows, err := s.query(ctx, st)
	if err != nil {
		return nil, err
	}
	res := make([]Column, 0, len(rows))
	for _, row := range rows {
		name, _ := codec.ToString(row["name"])
		typ, _ := codec.ToString(row["type"])
		nullable, _ := codec.ToString(row["nullable"])
		res = append(res, Column{Name: name, Type: typ, Nullable: strings.EqualFold(nullable, "YES")})
	}
	return res, nil
}

func (s *DbSource) schemaCondition() string {
	if s.d.IsPostgres() {
		return "table_schema = current_schema()"
	}
	return "table_schema = DATABASE()"
}

/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voedger/charcoal/pkg/expression"
	"github.com/voedger/charcoal/pkg/source/dbsource"
)

func newSchemaCmd(params *CLIParams) *cobra.Command {
	dialect := defaultDialect
	cmd := &cobra.Command{
		Use:   "schema <model>",
		Short: "print CREATE TABLE statement of model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wired, err := wireCharcoal(*params)
			if err != nil {
				return err
			}
			s, err := newDbSource(wired, args[0], dialect)
			if err != nil {
				return err
			}
			sql, err := s.CreateTableSQL(nil)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), sql)
			return err
		},
	}
	cmd.Flags().StringVar(&dialect, "dialect", defaultDialect, "SQL dialect: mysql or postgres")
	return cmd
}

// Returns relational source of model without executor, it renders statements only
func newDbSource(wired WiredCharcoal, objType, dialect string) (*dbsource.DbSource, error) {
	d, err := expression.DialectByName(dialect)
	if err != nil {
		return nil, err
	}
	m, err := wired.Models.New(objType)
	if err != nil {
		return nil, err
	}
	s := dbsource.New(dbsource.Params{Dialect: d, Logger: wired.Logger})
	s.SetModel(m)
	return s, nil
}

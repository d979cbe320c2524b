/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voedger/charcoal/pkg/expression"
)

func newFilterCmd(params *CLIParams) *cobra.Command {
	dialect := defaultDialect
	cmd := &cobra.Command{
		Use:   "filter <model> <expression>",
		Short: "print WHERE clause of filter expression applied to model",
		Long: "Filter expression is applied to model source, so localized properties are resolved\n" +
			"to current locale columns and multiple properties are matched by set membership.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wired, err := wireCharcoal(*params)
			if err != nil {
				return err
			}
			s, err := newDbSource(wired, args[0], dialect)
			if err != nil {
				return err
			}
			ff, err := expression.ParseFilters(strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			for _, f := range ff {
				if err := s.AddFilter(f); err != nil {
					return err
				}
			}
			where, err := expression.WhereSQL(s.Dialect(), s.Filters())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), where)
			return err
		},
	}
	cmd.Flags().StringVar(&dialect, "dialect", defaultDialect, "SQL dialect: mysql or postgres")
	return cmd
}

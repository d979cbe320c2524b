/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v3"

	"github.com/voedger/charcoal/pkg/ilog"
)

func newValidateCmd(params *CLIParams) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <model> <data-file>",
		Short: "validate model data read from JSON or YAML file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wired, err := wireCharcoal(*params)
			if err != nil {
				return err
			}
			data, err := readData(args[1])
			if err != nil {
				return err
			}
			item, err := wired.Models.New(args[0])
			if err != nil {
				return err
			}
			if err := item.SetData(data); err != nil {
				return err
			}
			failed, err := item.Validate()
			if err != nil {
				return err
			}
			if len(failed) == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return err
			}
			idents := maps.Keys(failed)
			slices.Sort(idents)
			for _, ident := range idents {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", ident, strings.Join(failed[ident], ", ")); err != nil {
					return err
				}
			}
			wired.Logger.Warning("model data is not valid", ilog.Ctx{"model": args[0], "properties": len(idents)})
			return fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(idents, ", "))
		},
	}
}

// Reads data map from file. JSON is read as YAML
func readData(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data := map[string]any{}
	if err := yaml.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/cobrau"
)

//go:embed version
var version string

func main() {
	if err := execRootCmd(os.Args, version); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func execRootCmd(args []string, ver string) error {
	return cobrau.ExecCommandAndCatchInterrupt(newRootCmd(args, ver))
}

func newRootCmd(args []string, ver string) *cobra.Command {
	params := &CLIParams{}
	rootCmd := cobrau.PrepareRootCmd(
		"charcoal",
		"charcoal models tool",
		args,
		ver,
		newSchemaCmd(params),
		newFilterCmd(params),
		newValidateCmd(params),
	)
	initGlobalFlags(rootCmd, params)
	return rootCmd
}

func initGlobalFlags(cmd *cobra.Command, params *CLIParams) {
	cmd.PersistentFlags().StringVarP(&params.MetadataDir, "metadata-dir", "m", ".", "directory of model metadata files")
	cmd.PersistentFlags().StringSliceVar(&params.Locales, "locales", []string{defaultLocale}, "available locales, the first is default")
	cmd.PersistentFlags().StringVar(&params.Locale, "locale", "", "current locale")
	cmd.PersistentFlags().BoolVar(&params.JSONLog, "json-log", false, "write structured JSON log to stderr")
}

/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package main

import (
	"github.com/voedger/charcoal/pkg/ilog"
	"github.com/voedger/charcoal/pkg/model"
	"github.com/voedger/charcoal/pkg/translator"
)

type CLIParams struct {
	MetadataDir string
	Locales     []string
	Locale      string
	JSONLog     bool
}

type WiredCharcoal struct {
	Logger     ilog.ILogger
	Translator translator.ITranslator
	Models     model.IFactory
}

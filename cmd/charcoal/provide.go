/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/voedger/charcoal/pkg/ilog"
	"github.com/voedger/charcoal/pkg/metadata"
	"github.com/voedger/charcoal/pkg/model"
	"github.com/voedger/charcoal/pkg/property"
	"github.com/voedger/charcoal/pkg/translator"
)

func provideLogger(params CLIParams) ilog.ILogger {
	if params.JSONLog {
		return ilog.ProvideZerolog(zerolog.New(os.Stderr).With().Timestamp().Logger())
	}
	return ilog.Provide()
}

func provideTranslator(params CLIParams) (translator.ITranslator, error) {
	tr, err := translator.Provide(translator.Params{Locales: params.Locales})
	if err != nil {
		return nil, err
	}
	if params.Locale != "" {
		if err := tr.SetLocale(params.Locale); err != nil {
			return nil, err
		}
	}
	return tr, nil
}

func provideMetadata(params CLIParams) metadata.ILoader {
	return metadata.Provide(os.DirFS(params.MetadataDir))
}

func provideModels(meta metadata.ILoader, logger ilog.ILogger, tr translator.ITranslator) model.IFactory {
	return model.Provide(model.Params{
		Metadata: meta,
		Properties: property.Deps{
			Logger:     logger,
			Translator: tr,
		},
	})
}

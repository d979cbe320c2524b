//go:generate go run github.com/google/wire/cmd/wire
//go:build wireinject
// +build wireinject

/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package main

import (
	"github.com/google/wire"
)

func wireCharcoal(params CLIParams) (WiredCharcoal, error) {
	panic(
		wire.Build(
			provideLogger,
			provideTranslator,
			provideMetadata,
			provideModels,
			wire.Struct(new(WiredCharcoal), "*"),
		),
	)
}

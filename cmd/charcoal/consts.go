/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package main

const (
	defaultLocale  = "en"
	defaultDialect = "mysql"
)

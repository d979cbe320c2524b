/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package dbsource

import "github.com/voedger/charcoal/pkg/expression"

var defaultDialect = expression.MySQL

// MySQL column types and their Postgres counterparts
var postgresTypes = map[string]string{
	"DATETIME":            "TIMESTAMP",
	"DOUBLE":              "DOUBLE PRECISION",
	"TINYINT(1) UNSIGNED": "SMALLINT",
	"INT UNSIGNED":        "BIGINT",
	"TINYTEXT":            "TEXT",
	"MEDIUMTEXT":          "TEXT",
	"LONGTEXT":            "TEXT",
}

const mysqlAutoIncrement = "AUTO_INCREMENT"

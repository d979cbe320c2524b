/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package expression_test

import (
	"fmt"

	"github.com/voedger/charcoal/pkg/expression"
)

func ExampleParseFilters() {
	filters, err := expression.ParseFilters(`status IN ('new', 'open') AND (UPPER(owner) = 'ADMIN' OR closed IS NULL)`)
	if err != nil {
		panic(err)
	}

	args := expression.NewArgs(expression.Postgres)
	where, err := expression.BindWhere(args, filters)
	if err != nil {
		panic(err)
	}
	fmt.Println(where)
	fmt.Println(args.Values()...)

	// Output:
	// WHERE "status" IN ($1, $2) AND (UPPER("owner") = $3 OR "closed" IS NULL)
	// new open ADMIN
}

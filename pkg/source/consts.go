/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package source

const Operator_FindInSet = "FIND_IN_SET"

// Operators which test the whole field, kept for multiple properties
var nullOperators = []string{"IS NULL", "IS NOT NULL"}

/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package boltsource

import "os"

const fileMode os.FileMode = 0o600

/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package model

// Default size of collection loader cache, in collections
const DefaultCacheSize = 64

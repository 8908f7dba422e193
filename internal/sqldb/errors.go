//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

package sqldb

const (
	// MySQLErrDuplicateKeyName is the error code when an index with the same name already exists
	// (ER_DUP_KEYNAME).
	MySQLErrDuplicateKeyName uint16 = 1061

	// MySQLErrDuplicateEntry is the error code when a duplicate entry violates a unique constraint
	// (ER_DUP_ENTRY).
	MySQLErrDuplicateEntry uint16 = 1062
)

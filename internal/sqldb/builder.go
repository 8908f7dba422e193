//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

// Package sqldb provides shared helpers for SQL-backed storage managers.
package sqldb

import (
	"fmt"
	"strings"
)

// BuildTableName constructs a full table name with optional prefix.
// If prefix is empty, returns the base table name.
// If prefix is provided, automatically adds an underscore separator if not present.
//
// Examples:
//   - BuildTableName("", "scene_sets") -> "scene_sets"
//   - BuildTableName("test", "scene_sets") -> "test_scene_sets"
//   - BuildTableName("test_", "scene_sets") -> "test_scene_sets"
func BuildTableName(prefix, base string) string {
	if prefix == "" {
		return base
	}

	// Automatically add underscore if not present
	if !strings.HasSuffix(prefix, "_") {
		prefix += "_"
	}

	return prefix + base
}

// BuildIndexName constructs an index name based on table name and suffix.
// The format is: idx_{tableName}_{suffix}
//
// Examples:
//   - BuildIndexName("", "scene_sets", "app_created")
//     -> "idx_scene_sets_app_created"
//   - BuildIndexName("test", "scene_sets", "app_created")
//     -> "idx_test_scene_sets_app_created"
func BuildIndexName(prefix, tableName, suffix string) string {
	fullTableName := BuildTableName(prefix, tableName)
	return fmt.Sprintf("idx_%s_%s", fullTableName, suffix)
}

//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

package mysqldb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trpc.group/trpc-go/trpc-graph-reward/internal/sqldb"
	storage "trpc.group/trpc-go/trpc-graph-reward/storage/mysql"
)

const (
	// TableNameSceneSets is the base table name for scene sets.
	TableNameSceneSets = "reward_scene_sets"
	// TableNameSceneCases is the base table name for scene cases.
	TableNameSceneCases = "reward_scene_cases"
	// TableNameBatchResults is the base table name for scored batch results.
	TableNameBatchResults = "reward_batch_results"
)

// Tables holds fully qualified table names with the configured prefix applied.
type Tables struct {
	SceneSets    string
	SceneCases   string
	BatchResults string
}

type tableDefinition struct {
	name     string
	template string
}

type indexDefinition struct {
	table    string
	name     string
	template string
}

type indexSpec struct {
	name     string
	template string
}

type schemaSpec struct {
	target    SchemaTarget
	tableName func(Tables) string
	tableSQL  string
	indexes   []indexSpec
}

var schemaSpecs = []schemaSpec{
	{
		target:    SchemaSceneSets,
		tableName: func(t Tables) string { return t.SceneSets },
		tableSQL:  sqlCreateSceneSetsTable,
		indexes: []indexSpec{
			{name: "uniq_scene_sets_app_set", template: sqlCreateSceneSetsUniqueIndex},
			{name: "idx_scene_sets_app_created", template: sqlCreateSceneSetsAppCreatedIndex},
		},
	},
	{
		target:    SchemaSceneCases,
		tableName: func(t Tables) string { return t.SceneCases },
		tableSQL:  sqlCreateSceneCasesTable,
		indexes: []indexSpec{
			{name: "uniq_scene_cases_app_set_case", template: sqlCreateSceneCasesUniqueIndex},
			{name: "idx_scene_cases_app_set_order", template: sqlCreateSceneCasesOrderIndex},
		},
	},
	{
		target:    SchemaBatchResults,
		tableName: func(t Tables) string { return t.BatchResults },
		tableSQL:  sqlCreateBatchResultsTable,
		indexes: []indexSpec{
			{name: "uniq_results_app_result_id", template: sqlCreateBatchResultsUniqueIndex},
			{name: "idx_results_app_created", template: sqlCreateBatchResultsAppCreatedIndex},
			{name: "idx_results_app_set_created", template: sqlCreateBatchResultsAppSetCreatedIndex},
		},
	},
}

// SchemaTarget selects which storage tables should be ensured.
type SchemaTarget uint8

const (
	// SchemaSceneSets ensures the scene sets table.
	SchemaSceneSets SchemaTarget = 1 << iota
	// SchemaSceneCases ensures the scene cases table.
	SchemaSceneCases
	// SchemaBatchResults ensures the batch results table.
	SchemaBatchResults

	// SchemaAll ensures all storage tables.
	SchemaAll = SchemaSceneSets | SchemaSceneCases | SchemaBatchResults
)

// BuildTables builds table names with the given prefix.
func BuildTables(prefix string) Tables {
	return Tables{
		SceneSets:    sqldb.BuildTableName(prefix, TableNameSceneSets),
		SceneCases:   sqldb.BuildTableName(prefix, TableNameSceneCases),
		BatchResults: sqldb.BuildTableName(prefix, TableNameBatchResults),
	}
}

// EnsureSchema creates selected storage MySQL tables if they do not exist.
func EnsureSchema(ctx context.Context, db storage.Client, tables Tables, target SchemaTarget) error {
	if target == 0 {
		return errors.New("no schema target specified")
	}

	tableDefs := []tableDefinition{}
	indexDefs := []indexDefinition{}

	for _, spec := range schemaSpecs {
		if target&spec.target == 0 {
			continue
		}
		tableName := spec.tableName(tables)
		tableDefs = append(tableDefs, tableDefinition{
			name:     tableName,
			template: spec.tableSQL,
		})
		for _, idx := range spec.indexes {
			indexDefs = append(indexDefs, indexDefinition{
				table:    tableName,
				name:     idx.name,
				template: idx.template,
			})
		}
	}

	for _, tableDef := range tableDefs {
		query := strings.ReplaceAll(tableDef.template, "{{TABLE_NAME}}", tableDef.name)
		if _, err := db.Exec(ctx, query); err != nil {
			return fmt.Errorf("create table %s failed: %w", tableDef.name, err)
		}
	}

	for _, indexDef := range indexDefs {
		query := strings.ReplaceAll(indexDef.template, "{{TABLE_NAME}}", indexDef.table)
		query = strings.ReplaceAll(query, "{{INDEX_NAME}}", indexDef.name)
		if _, err := db.Exec(ctx, query); err != nil {
			if IsDuplicateKeyName(err) {
				continue
			}
			return fmt.Errorf("create index %s on table %s failed: %w", indexDef.name, indexDef.table, err)
		}
	}
	return nil
}

const (
	sqlCreateSceneSetsTable = `
		CREATE TABLE IF NOT EXISTS {{TABLE_NAME}} (
			id BIGINT NOT NULL AUTO_INCREMENT,
			app_name VARCHAR(255) NOT NULL,
			scene_set_id VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			description TEXT DEFAULT NULL,
			created_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
			updated_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6) ON UPDATE CURRENT_TIMESTAMP(6),
			PRIMARY KEY (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

	sqlCreateSceneSetsUniqueIndex = `
		CREATE UNIQUE INDEX {{INDEX_NAME}} ON {{TABLE_NAME}}(app_name, scene_set_id)`

	sqlCreateSceneSetsAppCreatedIndex = `
		CREATE INDEX {{INDEX_NAME}} ON {{TABLE_NAME}}(app_name, created_at)`

	sqlCreateSceneCasesTable = `
		CREATE TABLE IF NOT EXISTS {{TABLE_NAME}} (
			id BIGINT NOT NULL AUTO_INCREMENT,
			app_name VARCHAR(255) NOT NULL,
			scene_set_id VARCHAR(255) NOT NULL,
			case_id VARCHAR(255) NOT NULL,
			scene_case JSON NOT NULL,
			created_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
			updated_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6) ON UPDATE CURRENT_TIMESTAMP(6),
			PRIMARY KEY (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

	sqlCreateSceneCasesUniqueIndex = `
		CREATE UNIQUE INDEX {{INDEX_NAME}} ON {{TABLE_NAME}}(app_name, scene_set_id, case_id)`

	sqlCreateSceneCasesOrderIndex = `
		CREATE INDEX {{INDEX_NAME}} ON {{TABLE_NAME}}(app_name, scene_set_id, id)`

	sqlCreateBatchResultsTable = `
		CREATE TABLE IF NOT EXISTS {{TABLE_NAME}} (
			id BIGINT NOT NULL AUTO_INCREMENT,
			app_name VARCHAR(255) NOT NULL,
			batch_result_id VARCHAR(255) NOT NULL,
			scene_set_id VARCHAR(255) NOT NULL,
			batch_name VARCHAR(255) NOT NULL,
			case_results JSON NOT NULL,
			summary JSON DEFAULT NULL,
			created_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
			updated_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6) ON UPDATE CURRENT_TIMESTAMP(6),
			PRIMARY KEY (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

	sqlCreateBatchResultsUniqueIndex = `
		CREATE UNIQUE INDEX {{INDEX_NAME}} ON {{TABLE_NAME}}(app_name, batch_result_id)`

	sqlCreateBatchResultsAppCreatedIndex = `
		CREATE INDEX {{INDEX_NAME}} ON {{TABLE_NAME}}(app_name, created_at)`

	sqlCreateBatchResultsAppSetCreatedIndex = `
		CREATE INDEX {{INDEX_NAME}} ON {{TABLE_NAME}}(app_name, scene_set_id, created_at)`
)

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
	"database/sql"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"trpc.group/trpc-go/trpc-graph-reward/internal/sqldb"
	storage "trpc.group/trpc-go/trpc-graph-reward/storage/mysql"
)

type dummyResult struct{}

func (dummyResult) LastInsertId() (int64, error) { return 0, nil }

func (dummyResult) RowsAffected() (int64, error) { return 0, nil }

type recordingClient struct {
	queries  []string
	indexErr error
}

func (c *recordingClient) Exec(_ context.Context, query string, _ ...any) (sql.Result, error) {
	c.queries = append(c.queries, query)
	if c.indexErr != nil && strings.Contains(query, "CREATE UNIQUE INDEX") {
		return nil, c.indexErr
	}
	return dummyResult{}, nil
}

func (c *recordingClient) Query(_ context.Context, _ storage.NextFunc, _ string, _ ...any) error {
	return nil
}

func (c *recordingClient) QueryRow(_ context.Context, _ []any, _ string, _ ...any) error {
	return nil
}

func (c *recordingClient) Transaction(_ context.Context, _ storage.TxFunc, _ ...storage.TxOption) error {
	return nil
}

func (c *recordingClient) Close() error { return nil }

func countQueriesContaining(queries []string, needle string) int {
	n := 0
	for _, q := range queries {
		if strings.Contains(q, needle) {
			n++
		}
	}
	return n
}

func containsCreateForTable(queries []string, table string) bool {
	return countQueriesContaining(queries, "CREATE TABLE IF NOT EXISTS "+table) > 0
}

func TestBuildTables(t *testing.T) {
	tables := BuildTables("test")
	assert.Equal(t, "test_reward_scene_sets", tables.SceneSets)
	assert.Equal(t, "test_reward_scene_cases", tables.SceneCases)
	assert.Equal(t, "test_reward_batch_results", tables.BatchResults)

	tables = BuildTables("")
	assert.Equal(t, TableNameSceneSets, tables.SceneSets)
}

func TestEnsureSchema_TargetSelection(t *testing.T) {
	ctx := context.Background()
	client := &recordingClient{}
	tables := BuildTables("test")

	err := EnsureSchema(ctx, client, tables, SchemaSceneSets|SchemaBatchResults)
	assert.NoError(t, err)
	assert.True(t, containsCreateForTable(client.queries, tables.SceneSets))
	assert.True(t, containsCreateForTable(client.queries, tables.BatchResults))
	assert.False(t, containsCreateForTable(client.queries, tables.SceneCases))
	// 2 tables plus 2 + 3 indexes.
	assert.Len(t, client.queries, 7)
}

func TestEnsureSchema_AllTargets(t *testing.T) {
	ctx := context.Background()
	client := &recordingClient{}
	tables := BuildTables("test_")

	err := EnsureSchema(ctx, client, tables, SchemaAll)
	assert.NoError(t, err)
	assert.True(t, containsCreateForTable(client.queries, tables.SceneSets))
	assert.True(t, containsCreateForTable(client.queries, tables.SceneCases))
	assert.True(t, containsCreateForTable(client.queries, tables.BatchResults))
	assert.Equal(t, 3, countQueriesContaining(client.queries, "CREATE TABLE IF NOT EXISTS"))
	assert.Equal(t, 3, countQueriesContaining(client.queries, "CREATE UNIQUE INDEX"))
	assert.Equal(t, 4, countQueriesContaining(client.queries, "CREATE INDEX"))
}

func TestEnsureSchema_NoTarget(t *testing.T) {
	ctx := context.Background()
	client := &recordingClient{}
	tables := BuildTables("test")

	err := EnsureSchema(ctx, client, tables, 0)
	assert.Error(t, err)
}

func TestEnsureSchema_DuplicateKeyNameIgnored(t *testing.T) {
	ctx := context.Background()
	client := &recordingClient{
		indexErr: &mysql.MySQLError{Number: sqldb.MySQLErrDuplicateKeyName},
	}
	tables := BuildTables("test")

	err := EnsureSchema(ctx, client, tables, SchemaSceneSets)
	assert.NoError(t, err)
}

func TestEnsureSchema_IndexErrorPropagates(t *testing.T) {
	ctx := context.Background()
	client := &recordingClient{
		indexErr: &mysql.MySQLError{Number: 1005},
	}
	tables := BuildTables("test")

	err := EnsureSchema(ctx, client, tables, SchemaSceneSets)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "create index")
}

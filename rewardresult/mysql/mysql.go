//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-graph-reward/internal/epochtime"
	"trpc.group/trpc-go/trpc-graph-reward/internal/mysqldb"
	"trpc.group/trpc-go/trpc-graph-reward/rewardresult"
	storage "trpc.group/trpc-go/trpc-graph-reward/storage/mysql"
)

var _ rewardresult.Manager = (*manager)(nil)

type manager struct {
	opts   options
	db     storage.Client
	tables mysqldb.Tables
}

// New creates a MySQL-backed batch result manager.
func New(opts ...Option) (rewardresult.Manager, error) {
	options := newOptions(opts...)
	db, err := mysqldb.BuildClient(options.dsn, options.instanceName, options.extraOptions)
	if err != nil {
		return nil, fmt.Errorf("create mysql client failed: %w", err)
	}
	tables := mysqldb.BuildTables(options.tablePrefix)
	m := &manager{
		opts:   *options,
		db:     db,
		tables: tables,
	}
	if !options.skipDBInit {
		ctx, cancel := context.WithTimeout(context.Background(), options.initTimeout)
		defer cancel()
		if err := mysqldb.EnsureSchema(ctx, db, tables, mysqldb.SchemaBatchResults); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init database failed: %w", err)
		}
	}
	return m, nil
}

// Close implements rewardresult.Manager.
func (m *manager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}

// Save upserts a batch result into MySQL.
func (m *manager) Save(ctx context.Context, appName string, batchResult *rewardresult.BatchResult) (string, error) {
	if appName == "" {
		return "", errors.New("app name is empty")
	}
	if batchResult == nil {
		return "", errors.New("batch result is nil")
	}
	if batchResult.SceneSetID == "" {
		return "", errors.New("the scene set id of batch result is empty")
	}
	batchResultID := batchResult.BatchResultID
	if batchResultID == "" {
		batchResultID = fmt.Sprintf("%s_%s_%s", appName, batchResult.SceneSetID, uuid.New().String())
	}
	batchName := batchResult.BatchName
	if batchName == "" {
		batchName = batchResultID
	}
	caseResults := batchResult.CaseResults
	if caseResults == nil {
		caseResults = []*rewardresult.CaseResult{}
	}
	casePayload, err := json.Marshal(caseResults)
	if err != nil {
		return "", fmt.Errorf("marshal case results: %w", err)
	}
	var summaryPayload any
	if batchResult.Summary != nil {
		summaryBytes, err := json.Marshal(batchResult.Summary)
		if err != nil {
			return "", fmt.Errorf("marshal summary: %w", err)
		}
		summaryPayload = summaryBytes
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (app_name, batch_result_id, scene_set_id, batch_name, case_results, summary)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
		   scene_set_id = VALUES(scene_set_id),
		   batch_name = VALUES(batch_name),
		   case_results = VALUES(case_results),
		   summary = VALUES(summary),
		   updated_at = CURRENT_TIMESTAMP(6)`,
		m.tables.BatchResults,
	)
	if _, err := m.db.Exec(ctx, query, appName, batchResultID, batchResult.SceneSetID, batchName, casePayload, summaryPayload); err != nil {
		return "", fmt.Errorf("store batch result %s.%s: %w", appName, batchResultID, err)
	}
	return batchResultID, nil
}

// Get loads a batch result from MySQL.
func (m *manager) Get(ctx context.Context, appName, batchResultID string) (*rewardresult.BatchResult, error) {
	if appName == "" {
		return nil, errors.New("app name is empty")
	}
	if batchResultID == "" {
		return nil, errors.New("batch result id is empty")
	}
	var (
		sceneSetID  string
		name        string
		casePayload []byte
		summary     sql.NullString
		createdAt   time.Time
	)
	query := fmt.Sprintf(
		"SELECT scene_set_id, batch_name, case_results, summary, created_at FROM %s WHERE app_name = ? AND batch_result_id = ?",
		m.tables.BatchResults,
	)
	if err := m.db.QueryRow(ctx, []any{&sceneSetID, &name, &casePayload, &summary, &createdAt}, query, appName, batchResultID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("batch result %s.%s not found: %w", appName, batchResultID, os.ErrNotExist)
		}
		return nil, fmt.Errorf("load batch result %s.%s: %w", appName, batchResultID, err)
	}
	var cases []*rewardresult.CaseResult
	if err := json.Unmarshal(casePayload, &cases); err != nil {
		return nil, fmt.Errorf("unmarshal case results %s.%s: %w", appName, batchResultID, err)
	}
	if cases == nil {
		cases = []*rewardresult.CaseResult{}
	}
	var summaryObj *rewardresult.BatchSummary
	if summary.Valid && summary.String != "" {
		var s rewardresult.BatchSummary
		if err := json.Unmarshal([]byte(summary.String), &s); err != nil {
			return nil, fmt.Errorf("unmarshal summary %s.%s: %w", appName, batchResultID, err)
		}
		summaryObj = &s
	}
	return &rewardresult.BatchResult{
		BatchResultID:     batchResultID,
		BatchName:         name,
		SceneSetID:        sceneSetID,
		CaseResults:       cases,
		Summary:           summaryObj,
		CreationTimestamp: &epochtime.EpochTime{Time: createdAt},
	}, nil
}

// List lists batch result IDs for the given app from MySQL, newest first.
func (m *manager) List(ctx context.Context, appName string) ([]string, error) {
	if appName == "" {
		return nil, errors.New("app name is empty")
	}
	query := fmt.Sprintf(
		"SELECT batch_result_id FROM %s WHERE app_name = ? ORDER BY created_at DESC",
		m.tables.BatchResults,
	)
	var ids []string
	if err := m.db.Query(ctx, func(rows *sql.Rows) error {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		ids = append(ids, id)
		return nil
	}, query, appName); err != nil {
		return nil, fmt.Errorf("list batch results for app %s: %w", appName, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

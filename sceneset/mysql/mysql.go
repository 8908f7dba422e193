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

	"trpc.group/trpc-go/trpc-graph-reward/internal/clone"
	"trpc.group/trpc-go/trpc-graph-reward/internal/epochtime"
	"trpc.group/trpc-go/trpc-graph-reward/internal/mysqldb"
	"trpc.group/trpc-go/trpc-graph-reward/sceneset"
	storage "trpc.group/trpc-go/trpc-graph-reward/storage/mysql"
)

var _ sceneset.Manager = (*manager)(nil)

type manager struct {
	opts   options
	db     storage.Client
	tables mysqldb.Tables
}

// New creates a MySQL-backed scene set manager.
func New(opts ...Option) (sceneset.Manager, error) {
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
		if err := mysqldb.EnsureSchema(ctx, db, tables, mysqldb.SchemaSceneSets|mysqldb.SchemaSceneCases); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init database failed: %w", err)
		}
	}
	return m, nil
}

// Close implements sceneset.Manager.
func (m *manager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}

// ensureSceneSetExists checks whether the specified scene set exists in MySQL.
func (m *manager) ensureSceneSetExists(ctx context.Context, appName, sceneSetID string) error {
	var one int
	err := m.db.QueryRow(ctx, []any{&one},
		fmt.Sprintf("SELECT 1 FROM %s WHERE app_name = ? AND scene_set_id = ?", m.tables.SceneSets),
		appName, sceneSetID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("scene set %s.%s not found: %w", appName, sceneSetID, os.ErrNotExist)
		}
		return err
	}
	return nil
}

// Get retrieves a scene set and its cases from MySQL.
func (m *manager) Get(ctx context.Context, appName, sceneSetID string) (*sceneset.SceneSet, error) {
	if appName == "" {
		return nil, errors.New("app name is empty")
	}
	if sceneSetID == "" {
		return nil, errors.New("scene set id is empty")
	}
	var (
		name        string
		desc        sql.NullString
		createdAt   time.Time
		sceneCases  []*sceneset.SceneCase
		sceneSetSQL = fmt.Sprintf(
			"SELECT name, description, created_at FROM %s WHERE app_name = ? AND scene_set_id = ?",
			m.tables.SceneSets,
		)
	)
	if err := m.db.QueryRow(ctx, []any{&name, &desc, &createdAt}, sceneSetSQL, appName, sceneSetID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("scene set %s.%s not found: %w", appName, sceneSetID, os.ErrNotExist)
		}
		return nil, fmt.Errorf("get scene set %s.%s: %w", appName, sceneSetID, err)
	}
	casesSQL := fmt.Sprintf(
		"SELECT scene_case FROM %s WHERE app_name = ? AND scene_set_id = ? ORDER BY id ASC",
		m.tables.SceneCases,
	)
	if err := m.db.Query(ctx, func(rows *sql.Rows) error {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return err
		}
		var c sceneset.SceneCase
		if err := json.Unmarshal(payload, &c); err != nil {
			return fmt.Errorf("unmarshal scene case: %w", err)
		}
		sceneCases = append(sceneCases, &c)
		return nil
	}, casesSQL, appName, sceneSetID); err != nil {
		return nil, fmt.Errorf("list scene cases for scene set %s.%s: %w", appName, sceneSetID, err)
	}
	if sceneCases == nil {
		sceneCases = []*sceneset.SceneCase{}
	}
	result := &sceneset.SceneSet{
		SceneSetID:        sceneSetID,
		Name:              name,
		Description:       desc.String,
		SceneCases:        sceneCases,
		CreationTimestamp: &epochtime.EpochTime{Time: createdAt},
	}
	return result, nil
}

// Create creates a new scene set in MySQL.
func (m *manager) Create(ctx context.Context, appName, sceneSetID string) (*sceneset.SceneSet, error) {
	if appName == "" {
		return nil, errors.New("app name is empty")
	}
	if sceneSetID == "" {
		return nil, errors.New("scene set id is empty")
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (app_name, scene_set_id, name, description) VALUES (?, ?, ?, ?)",
		m.tables.SceneSets,
	)
	if _, err := m.db.Exec(ctx, query, appName, sceneSetID, sceneSetID, ""); err != nil {
		if mysqldb.IsDuplicateEntry(err) {
			return nil, fmt.Errorf("scene set %s.%s already exists", appName, sceneSetID)
		}
		return nil, fmt.Errorf("create scene set %s.%s: %w", appName, sceneSetID, err)
	}
	now := time.Now()
	return &sceneset.SceneSet{
		SceneSetID:        sceneSetID,
		Name:              sceneSetID,
		SceneCases:        []*sceneset.SceneCase{},
		CreationTimestamp: &epochtime.EpochTime{Time: now},
	}, nil
}

// List lists scene set IDs for the given app from MySQL.
func (m *manager) List(ctx context.Context, appName string) ([]string, error) {
	if appName == "" {
		return nil, errors.New("app name is empty")
	}
	query := fmt.Sprintf(
		"SELECT scene_set_id FROM %s WHERE app_name = ? ORDER BY scene_set_id ASC",
		m.tables.SceneSets,
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
		return nil, fmt.Errorf("list scene sets for app %s: %w", appName, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Delete deletes a scene set and its cases from MySQL.
func (m *manager) Delete(ctx context.Context, appName, sceneSetID string) error {
	if appName == "" {
		return errors.New("app name is empty")
	}
	if sceneSetID == "" {
		return errors.New("scene set id is empty")
	}
	return m.db.Transaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE app_name = ? AND scene_set_id = ?", m.tables.SceneCases),
			appName, sceneSetID,
		)
		if err != nil {
			return fmt.Errorf("delete scene cases failed: %w", err)
		}
		res, err := tx.ExecContext(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE app_name = ? AND scene_set_id = ?", m.tables.SceneSets),
			appName, sceneSetID,
		)
		if err != nil {
			return fmt.Errorf("delete scene set failed: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("get rows affected failed: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("scene set %s.%s not found: %w", appName, sceneSetID, os.ErrNotExist)
		}
		return nil
	})
}

// GetCase retrieves a scene case from MySQL.
func (m *manager) GetCase(ctx context.Context, appName, sceneSetID, caseID string) (*sceneset.SceneCase, error) {
	if appName == "" {
		return nil, errors.New("app name is empty")
	}
	if sceneSetID == "" {
		return nil, errors.New("scene set id is empty")
	}
	if caseID == "" {
		return nil, errors.New("scene case id is empty")
	}
	if err := m.ensureSceneSetExists(ctx, appName, sceneSetID); err != nil {
		return nil, err
	}
	var payload []byte
	query := fmt.Sprintf(
		"SELECT scene_case FROM %s WHERE app_name = ? AND scene_set_id = ? AND case_id = ?",
		m.tables.SceneCases,
	)
	if err := m.db.QueryRow(ctx, []any{&payload}, query, appName, sceneSetID, caseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("scene case %s.%s.%s not found: %w", appName, sceneSetID, caseID, os.ErrNotExist)
		}
		return nil, fmt.Errorf("get scene case %s.%s.%s: %w", appName, sceneSetID, caseID, err)
	}
	var c sceneset.SceneCase
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("unmarshal scene case %s.%s.%s: %w", appName, sceneSetID, caseID, err)
	}
	return &c, nil
}

// AddCase adds a new scene case to MySQL.
func (m *manager) AddCase(ctx context.Context, appName, sceneSetID string, sceneCase *sceneset.SceneCase) error {
	if appName == "" {
		return errors.New("app name is empty")
	}
	if sceneSetID == "" {
		return errors.New("scene set id is empty")
	}
	if sceneCase == nil {
		return errors.New("sceneCase is nil")
	}
	if sceneCase.CaseID == "" {
		return errors.New("sceneCase.CaseID is empty")
	}
	if err := m.ensureSceneSetExists(ctx, appName, sceneSetID); err != nil {
		return err
	}
	cloned, err := clone.Clone(sceneCase)
	if err != nil {
		return fmt.Errorf("clone scene case: %w", err)
	}
	if cloned.CreationTimestamp == nil {
		cloned.CreationTimestamp = &epochtime.EpochTime{Time: time.Now()}
	}
	sceneset.NormalizeGroundTruth(cloned.GroundTruth)
	if err := sceneset.ValidateGroundTruth(cloned.GroundTruth); err != nil {
		return fmt.Errorf("scene case %s.%s.%s: %w", appName, sceneSetID, cloned.CaseID, err)
	}
	payload, err := json.Marshal(cloned)
	if err != nil {
		return fmt.Errorf("marshal scene case: %w", err)
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (app_name, scene_set_id, case_id, scene_case) VALUES (?, ?, ?, ?)",
		m.tables.SceneCases,
	)
	if _, err := m.db.Exec(ctx, query, appName, sceneSetID, cloned.CaseID, payload); err != nil {
		if mysqldb.IsDuplicateEntry(err) {
			return fmt.Errorf("scene case %s.%s.%s already exists", appName, sceneSetID, cloned.CaseID)
		}
		return fmt.Errorf("add scene case %s.%s.%s: %w", appName, sceneSetID, cloned.CaseID, err)
	}
	return nil
}

// UpdateCase updates an existing scene case in MySQL.
func (m *manager) UpdateCase(ctx context.Context, appName, sceneSetID string, sceneCase *sceneset.SceneCase) error {
	if appName == "" {
		return errors.New("app name is empty")
	}
	if sceneSetID == "" {
		return errors.New("scene set id is empty")
	}
	if sceneCase == nil {
		return errors.New("sceneCase is nil")
	}
	if sceneCase.CaseID == "" {
		return errors.New("sceneCase.CaseID is empty")
	}
	if err := m.ensureSceneSetExists(ctx, appName, sceneSetID); err != nil {
		return err
	}
	// Clone so normalization never mutates the caller's case.
	cloned, err := clone.Clone(sceneCase)
	if err != nil {
		return fmt.Errorf("clone scene case: %w", err)
	}
	sceneset.NormalizeGroundTruth(cloned.GroundTruth)
	if err := sceneset.ValidateGroundTruth(cloned.GroundTruth); err != nil {
		return fmt.Errorf("scene case %s.%s.%s: %w", appName, sceneSetID, cloned.CaseID, err)
	}
	payload, err := json.Marshal(cloned)
	if err != nil {
		return fmt.Errorf("marshal scene case: %w", err)
	}
	query := fmt.Sprintf(
		"UPDATE %s SET scene_case = ?, updated_at = CURRENT_TIMESTAMP(6) WHERE app_name = ? AND scene_set_id = ? AND case_id = ?",
		m.tables.SceneCases,
	)
	res, err := m.db.Exec(ctx, query, payload, appName, sceneSetID, cloned.CaseID)
	if err != nil {
		return fmt.Errorf("update scene case %s.%s.%s: %w", appName, sceneSetID, cloned.CaseID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected failed: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("scene case %s.%s.%s not found: %w", appName, sceneSetID, cloned.CaseID, os.ErrNotExist)
	}
	return nil
}

// DeleteCase deletes a scene case from MySQL.
func (m *manager) DeleteCase(ctx context.Context, appName, sceneSetID, caseID string) error {
	if appName == "" {
		return errors.New("app name is empty")
	}
	if sceneSetID == "" {
		return errors.New("scene set id is empty")
	}
	if caseID == "" {
		return errors.New("scene case id is empty")
	}
	if err := m.ensureSceneSetExists(ctx, appName, sceneSetID); err != nil {
		return err
	}
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE app_name = ? AND scene_set_id = ? AND case_id = ?",
		m.tables.SceneCases,
	)
	res, err := m.db.Exec(ctx, query, appName, sceneSetID, caseID)
	if err != nil {
		return fmt.Errorf("delete scene case %s.%s.%s: %w", appName, sceneSetID, caseID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected failed: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("scene case %s.%s.%s not found: %w", appName, sceneSetID, caseID, os.ErrNotExist)
	}
	return nil
}

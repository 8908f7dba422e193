//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

// Package local provides a local file based batch result manager.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-graph-reward/internal/epochtime"
	"trpc.group/trpc-go/trpc-graph-reward/rewardresult"
)

const (
	defaultTempFileSuffix = ".tmp"
	defaultDirPermission  = 0o755
	defaultFilePermission = 0o644
)

// manager implements rewardresult.Manager backed by the local filesystem.
type manager struct {
	mu      sync.RWMutex
	baseDir string
	locator rewardresult.Locator
}

// New creates a local file batch result manager.
func New(opt ...rewardresult.Option) rewardresult.Manager {
	opts := rewardresult.NewOptions(opt...)
	return &manager{
		baseDir: opts.BaseDir,
		locator: opts.Locator,
	}
}

// Save stores a batch result to a local file and returns its ID.
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
	stored := *batchResult
	if stored.BatchResultID == "" {
		stored.BatchResultID = fmt.Sprintf("%s_%s_%s", appName, stored.SceneSetID, uuid.New().String())
	}
	if stored.BatchName == "" {
		stored.BatchName = stored.BatchResultID
	}
	if stored.CaseResults == nil {
		stored.CaseResults = []*rewardresult.CaseResult{}
	}
	if stored.CreationTimestamp == nil {
		stored.CreationTimestamp = &epochtime.EpochTime{Time: time.Now()}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store(appName, &stored); err != nil {
		return "", fmt.Errorf("store batch result %s.%s: %w", appName, stored.BatchResultID, err)
	}
	return stored.BatchResultID, nil
}

// Get retrieves a batch result by batchResultID from a local file.
func (m *manager) Get(ctx context.Context, appName, batchResultID string) (*rewardresult.BatchResult, error) {
	if appName == "" {
		return nil, errors.New("app name is empty")
	}
	if batchResultID == "" {
		return nil, errors.New("batch result id is empty")
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	batchResult, err := m.load(appName, batchResultID)
	if err != nil {
		return nil, fmt.Errorf("load batch result %s.%s: %w", appName, batchResultID, err)
	}
	return batchResult, nil
}

// List lists all batch result IDs for the given appName.
func (m *manager) List(ctx context.Context, appName string) ([]string, error) {
	if appName == "" {
		return nil, errors.New("app name is empty")
	}
	ids, err := m.locator.List(m.baseDir, appName)
	if err != nil {
		return nil, fmt.Errorf("list batch results for app %s: %w", appName, err)
	}
	return ids, nil
}

// Close implements rewardresult.Manager. It is a no-op for the local manager.
func (m *manager) Close() error {
	return nil
}

func (m *manager) resultPath(appName, batchResultID string) string {
	return m.locator.Build(m.baseDir, appName, batchResultID)
}

func (m *manager) load(appName, batchResultID string) (*rewardresult.BatchResult, error) {
	path := m.resultPath(appName, batchResultID)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	var batchResult rewardresult.BatchResult
	if err := json.Unmarshal(data, &batchResult); err != nil {
		return nil, fmt.Errorf("unmarshal file %s: %w", path, err)
	}
	if batchResult.CaseResults == nil {
		batchResult.CaseResults = []*rewardresult.CaseResult{}
	}
	return &batchResult, nil
}

func (m *manager) store(appName string, batchResult *rewardresult.BatchResult) error {
	path := m.resultPath(appName, batchResult.BatchResultID)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, defaultDirPermission); err != nil {
		return fmt.Errorf("mkdir all %s: %w", dir, err)
	}
	tmp := path + defaultTempFileSuffix
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, defaultFilePermission)
	if err != nil {
		return fmt.Errorf("open file %s: %w", tmp, err)
	}
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(batchResult); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode file %s: %w", tmp, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename file %s to %s: %w", tmp, path, err)
	}
	return nil
}

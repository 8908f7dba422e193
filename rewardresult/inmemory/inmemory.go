//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in memory batch result manager.
package inmemory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-graph-reward/internal/clone"
	"trpc.group/trpc-go/trpc-graph-reward/internal/epochtime"
	"trpc.group/trpc-go/trpc-graph-reward/rewardresult"
)

// manager implements rewardresult.Manager backed by process memory.
// Results are stored per app; callers always receive deep copies.
type manager struct {
	mu      sync.RWMutex
	results map[string]map[string]*rewardresult.BatchResult
	// order tracks first-save order per app so List can return newest first,
	// matching the created_at ordering of the MySQL manager.
	order map[string][]string
}

// New creates an in memory batch result manager.
func New() rewardresult.Manager {
	return &manager{
		results: make(map[string]map[string]*rewardresult.BatchResult),
		order:   make(map[string][]string),
	}
}

// Save stores a batch result and returns its ID.
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
	stored, err := clone.Clone(batchResult)
	if err != nil {
		return "", fmt.Errorf("clone batch result: %w", err)
	}
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
	if m.results[appName] == nil {
		m.results[appName] = make(map[string]*rewardresult.BatchResult)
	}
	if _, ok := m.results[appName][stored.BatchResultID]; !ok {
		m.order[appName] = append(m.order[appName], stored.BatchResultID)
	}
	m.results[appName][stored.BatchResultID] = stored
	return stored.BatchResultID, nil
}

// Get retrieves a batch result by batchResultID.
func (m *manager) Get(ctx context.Context, appName, batchResultID string) (*rewardresult.BatchResult, error) {
	if appName == "" {
		return nil, errors.New("app name is empty")
	}
	if batchResultID == "" {
		return nil, errors.New("batch result id is empty")
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	batchResult, ok := m.results[appName][batchResultID]
	if !ok {
		return nil, fmt.Errorf("batch result %s.%s not found: %w", appName, batchResultID, os.ErrNotExist)
	}
	cloned, err := clone.Clone(batchResult)
	if err != nil {
		return nil, fmt.Errorf("clone batch result: %w", err)
	}
	return cloned, nil
}

// List returns all batch result IDs for the given appName, newest first.
func (m *manager) List(ctx context.Context, appName string) ([]string, error) {
	if appName == "" {
		return nil, errors.New("app name is empty")
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	saved := m.order[appName]
	ids := make([]string, 0, len(saved))
	for i := len(saved) - 1; i >= 0; i-- {
		ids = append(ids, saved[i])
	}
	return ids, nil
}

// Close implements rewardresult.Manager. It is a no-op for the in memory manager.
func (m *manager) Close() error {
	return nil
}

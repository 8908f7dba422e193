//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in memory scene set manager.
package inmemory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"trpc.group/trpc-go/trpc-graph-reward/internal/clone"
	"trpc.group/trpc-go/trpc-graph-reward/internal/epochtime"
	"trpc.group/trpc-go/trpc-graph-reward/sceneset"
)

// manager implements sceneset.Manager backed by process memory.
// Sets are stored per app; callers always receive deep copies so the
// stored state can only change through the Manager methods.
type manager struct {
	mu   sync.RWMutex
	apps map[string]map[string]*sceneset.SceneSet
}

// New creates an in memory scene set manager.
func New() sceneset.Manager {
	return &manager{apps: make(map[string]map[string]*sceneset.SceneSet)}
}

// Get gets a SceneSet identified by sceneSetID.
// Returns an error if the SceneSet does not exist.
func (m *manager) Get(_ context.Context, appName, sceneSetID string) (*sceneset.SceneSet, error) {
	if appName == "" {
		return nil, errors.New("app name is empty")
	}
	if sceneSetID == "" {
		return nil, errors.New("scene set id is empty")
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sceneSet, ok := m.apps[appName][sceneSetID]
	if !ok {
		return nil, fmt.Errorf("scene set %s.%s not found: %w", appName, sceneSetID, os.ErrNotExist)
	}
	cloned, err := clone.Clone(sceneSet)
	if err != nil {
		return nil, fmt.Errorf("clone scene set: %w", err)
	}
	return cloned, nil
}

// Create creates a SceneSet.
// Returns an error if the SceneSet already exists.
func (m *manager) Create(_ context.Context, appName, sceneSetID string) (*sceneset.SceneSet, error) {
	if appName == "" {
		return nil, errors.New("app name is empty")
	}
	if sceneSetID == "" {
		return nil, errors.New("scene set id is empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.apps[appName][sceneSetID]; ok {
		return nil, fmt.Errorf("scene set %s.%s already exists", appName, sceneSetID)
	}
	sceneSet := &sceneset.SceneSet{
		SceneSetID:        sceneSetID,
		Name:              sceneSetID,
		SceneCases:        []*sceneset.SceneCase{},
		CreationTimestamp: &epochtime.EpochTime{Time: time.Now()},
	}
	if m.apps[appName] == nil {
		m.apps[appName] = make(map[string]*sceneset.SceneSet)
	}
	m.apps[appName][sceneSetID] = sceneSet
	cloned, err := clone.Clone(sceneSet)
	if err != nil {
		return nil, fmt.Errorf("clone scene set: %w", err)
	}
	return cloned, nil
}

// List lists all SceneSet IDs for the given appName, sorted.
func (m *manager) List(_ context.Context, appName string) ([]string, error) {
	if appName == "" {
		return nil, errors.New("app name is empty")
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.apps[appName]))
	for id := range m.apps[appName] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete deletes the SceneSet identified by sceneSetID.
// Returns an error if the SceneSet does not exist.
func (m *manager) Delete(_ context.Context, appName, sceneSetID string) error {
	if appName == "" {
		return errors.New("app name is empty")
	}
	if sceneSetID == "" {
		return errors.New("scene set id is empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.apps[appName][sceneSetID]; !ok {
		return fmt.Errorf("scene set %s.%s not found: %w", appName, sceneSetID, os.ErrNotExist)
	}
	delete(m.apps[appName], sceneSetID)
	return nil
}

// GetCase gets a SceneCase.
// Returns an error if the SceneCase does not exist.
func (m *manager) GetCase(_ context.Context, appName, sceneSetID, caseID string) (*sceneset.SceneCase, error) {
	if appName == "" {
		return nil, errors.New("app name is empty")
	}
	if sceneSetID == "" {
		return nil, errors.New("scene set id is empty")
	}
	if caseID == "" {
		return nil, errors.New("scene case id is empty")
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sceneSet, ok := m.apps[appName][sceneSetID]
	if !ok {
		return nil, fmt.Errorf("scene set %s.%s not found: %w", appName, sceneSetID, os.ErrNotExist)
	}
	for _, c := range sceneSet.SceneCases {
		if c.CaseID == caseID {
			cloned, err := clone.Clone(c)
			if err != nil {
				return nil, fmt.Errorf("clone scene case: %w", err)
			}
			return cloned, nil
		}
	}
	return nil, fmt.Errorf("scene case %s.%s.%s not found: %w", appName, sceneSetID, caseID, os.ErrNotExist)
}

// AddCase adds the given SceneCase to an existing SceneSet identified by sceneSetID.
// If the SceneSet does not exist or the SceneCase already exists, returns an error.
func (m *manager) AddCase(_ context.Context, appName, sceneSetID string, sceneCase *sceneset.SceneCase) error {
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
	m.mu.Lock()
	defer m.mu.Unlock()
	sceneSet, ok := m.apps[appName][sceneSetID]
	if !ok {
		return fmt.Errorf("scene set %s.%s not found: %w", appName, sceneSetID, os.ErrNotExist)
	}
	for _, c := range sceneSet.SceneCases {
		if c.CaseID == sceneCase.CaseID {
			return fmt.Errorf("scene case %s.%s.%s already exists", appName, sceneSetID, sceneCase.CaseID)
		}
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
	sceneSet.SceneCases = append(sceneSet.SceneCases, cloned)
	return nil
}

// UpdateCase updates an existing SceneCase.
// If the SceneSet does not exist or the SceneCase does not exist, returns an error.
func (m *manager) UpdateCase(_ context.Context, appName, sceneSetID string, sceneCase *sceneset.SceneCase) error {
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
	m.mu.Lock()
	defer m.mu.Unlock()
	sceneSet, ok := m.apps[appName][sceneSetID]
	if !ok {
		return fmt.Errorf("scene set %s.%s not found: %w", appName, sceneSetID, os.ErrNotExist)
	}
	for i, c := range sceneSet.SceneCases {
		if c.CaseID == sceneCase.CaseID {
			cloned, err := clone.Clone(sceneCase)
			if err != nil {
				return fmt.Errorf("clone scene case: %w", err)
			}
			sceneset.NormalizeGroundTruth(cloned.GroundTruth)
			if err := sceneset.ValidateGroundTruth(cloned.GroundTruth); err != nil {
				return fmt.Errorf("scene case %s.%s.%s: %w", appName, sceneSetID, cloned.CaseID, err)
			}
			sceneSet.SceneCases[i] = cloned
			return nil
		}
	}
	return fmt.Errorf("scene case %s.%s.%s not found: %w", appName, sceneSetID, sceneCase.CaseID, os.ErrNotExist)
}

// DeleteCase deletes the SceneCase identified by sceneSetID and caseID.
// If the SceneSet does not exist or the SceneCase does not exist, returns an error.
func (m *manager) DeleteCase(_ context.Context, appName, sceneSetID, caseID string) error {
	if appName == "" {
		return errors.New("app name is empty")
	}
	if sceneSetID == "" {
		return errors.New("scene set id is empty")
	}
	if caseID == "" {
		return errors.New("scene case id is empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sceneSet, ok := m.apps[appName][sceneSetID]
	if !ok {
		return fmt.Errorf("scene set %s.%s not found: %w", appName, sceneSetID, os.ErrNotExist)
	}
	for i, c := range sceneSet.SceneCases {
		if c.CaseID == caseID {
			sceneSet.SceneCases = append(sceneSet.SceneCases[:i], sceneSet.SceneCases[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("scene case %s.%s.%s not found: %w", appName, sceneSetID, caseID, os.ErrNotExist)
}

// Close implements sceneset.Manager. It is a no-op for the in memory manager.
func (m *manager) Close() error {
	return nil
}

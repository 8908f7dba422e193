//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

// Package local provides a local file based scene set manager.
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

	"trpc.group/trpc-go/trpc-graph-reward/internal/clone"
	"trpc.group/trpc-go/trpc-graph-reward/internal/epochtime"
	"trpc.group/trpc-go/trpc-graph-reward/sceneset"
)

const (
	defaultTempFileSuffix = ".tmp"
	defaultDirPermission  = 0o755
	defaultFilePermission = 0o644
)

// manager implements sceneset.Manager backed by the local filesystem.
type manager struct {
	mu      sync.RWMutex
	baseDir string
	locator sceneset.Locator
}

// New creates a local file scene set manager.
func New(opt ...sceneset.Option) sceneset.Manager {
	opts := sceneset.NewOptions(opt...)
	return &manager{
		baseDir: opts.BaseDir,
		locator: opts.Locator,
	}
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
	sceneSet, err := m.load(appName, sceneSetID)
	if err != nil {
		return nil, fmt.Errorf("load scene set %s.%s: %w", appName, sceneSetID, err)
	}
	return sceneSet, nil
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
	if _, err := m.load(appName, sceneSetID); err == nil {
		return nil, fmt.Errorf("scene set %s.%s already exists", appName, sceneSetID)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load scene set %s.%s: %w", appName, sceneSetID, err)
	}
	sceneSet := &sceneset.SceneSet{
		SceneSetID:        sceneSetID,
		Name:              sceneSetID,
		SceneCases:        []*sceneset.SceneCase{},
		CreationTimestamp: &epochtime.EpochTime{Time: time.Now()},
	}
	if err := m.store(appName, sceneSet); err != nil {
		return nil, fmt.Errorf("store scene set %s.%s: %w", appName, sceneSetID, err)
	}
	return sceneSet, nil
}

// List lists all SceneSet IDs for the given appName.
func (m *manager) List(_ context.Context, appName string) ([]string, error) {
	if appName == "" {
		return nil, errors.New("app name is empty")
	}
	sceneSetIDs, err := m.locator.List(m.baseDir, appName)
	if err != nil {
		return nil, fmt.Errorf("list scene sets for app %s: %w", appName, err)
	}
	return sceneSetIDs, nil
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
	if _, err := m.load(appName, sceneSetID); err != nil {
		return fmt.Errorf("load scene set %s.%s: %w", appName, sceneSetID, err)
	}
	if err := m.remove(appName, sceneSetID); err != nil {
		return fmt.Errorf("remove scene set %s.%s: %w", appName, sceneSetID, err)
	}
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
	sceneSet, err := m.load(appName, sceneSetID)
	if err != nil {
		return nil, fmt.Errorf("load scene set %s.%s: %w", appName, sceneSetID, err)
	}
	for _, c := range sceneSet.SceneCases {
		if c.CaseID == caseID {
			return c, nil
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
	sceneSet, err := m.load(appName, sceneSetID)
	if err != nil {
		return fmt.Errorf("load scene set %s.%s: %w", appName, sceneSetID, err)
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
	if err := m.store(appName, sceneSet); err != nil {
		return fmt.Errorf("store scene set %s.%s: %w", appName, sceneSetID, err)
	}
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
	sceneSet, err := m.load(appName, sceneSetID)
	if err != nil {
		return fmt.Errorf("load scene set %s.%s: %w", appName, sceneSetID, err)
	}
	for i, c := range sceneSet.SceneCases {
		if c.CaseID == sceneCase.CaseID {
			// Clone so normalization never mutates the caller's case.
			cloned, err := clone.Clone(sceneCase)
			if err != nil {
				return fmt.Errorf("clone scene case: %w", err)
			}
			sceneset.NormalizeGroundTruth(cloned.GroundTruth)
			if err := sceneset.ValidateGroundTruth(cloned.GroundTruth); err != nil {
				return fmt.Errorf("scene case %s.%s.%s: %w", appName, sceneSetID, cloned.CaseID, err)
			}
			sceneSet.SceneCases[i] = cloned
			if err := m.store(appName, sceneSet); err != nil {
				return fmt.Errorf("store scene set %s.%s: %w", appName, sceneSetID, err)
			}
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
	sceneSet, err := m.load(appName, sceneSetID)
	if err != nil {
		return fmt.Errorf("load scene set %s.%s: %w", appName, sceneSetID, err)
	}
	for i, c := range sceneSet.SceneCases {
		if c.CaseID == caseID {
			sceneSet.SceneCases = append(sceneSet.SceneCases[:i], sceneSet.SceneCases[i+1:]...)
			if err := m.store(appName, sceneSet); err != nil {
				return fmt.Errorf("store scene set %s.%s: %w", appName, sceneSetID, err)
			}
			return nil
		}
	}
	return fmt.Errorf("scene case %s.%s.%s not found: %w", appName, sceneSetID, caseID, os.ErrNotExist)
}

// Close implements sceneset.Manager. It is a no-op for the local manager.
func (m *manager) Close() error {
	return nil
}

func (m *manager) sceneSetPath(appName, sceneSetID string) string {
	return m.locator.Build(m.baseDir, appName, sceneSetID)
}

func (m *manager) load(appName, sceneSetID string) (*sceneset.SceneSet, error) {
	path := m.sceneSetPath(appName, sceneSetID)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	var sceneSet sceneset.SceneSet
	if err := json.Unmarshal(data, &sceneSet); err != nil {
		return nil, fmt.Errorf("unmarshal file %s: %w", path, err)
	}
	if sceneSet.SceneCases == nil {
		sceneSet.SceneCases = []*sceneset.SceneCase{}
	}
	return &sceneSet, nil
}

func (m *manager) store(appName string, sceneSet *sceneset.SceneSet) error {
	if sceneSet == nil {
		return errors.New("sceneSet is nil")
	}
	path := m.sceneSetPath(appName, sceneSet.SceneSetID)
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
	if err := encoder.Encode(sceneSet); err != nil {
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

func (m *manager) remove(appName, sceneSetID string) error {
	path := m.sceneSetPath(appName, sceneSetID)
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove file %s: %w", path, err)
	}
	return nil
}

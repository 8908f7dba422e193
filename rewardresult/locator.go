//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

package rewardresult

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// defaultResultFileSuffix is the default suffix for batch result files.
const defaultResultFileSuffix = ".reward_result.json"

// Locator provides Build and List methods for locating batch result files.
type Locator interface {
	// Build builds the path of a batch result file for the given appName and batchResultID.
	Build(baseDir, appName, batchResultID string) string
	// List lists all batch result IDs for the given appName.
	List(baseDir, appName string) ([]string, error)
}

// locator is the default Locator implementation.
type locator struct {
}

// NewDefaultLocator creates a Locator which stores each batch result as
// <baseDir>/<appName>/<batchResultID>.reward_result.json.
func NewDefaultLocator() Locator {
	return &locator{}
}

// Build builds the path of a batch result file.
func (l *locator) Build(baseDir, appName, batchResultID string) string {
	return filepath.Join(baseDir, appName, batchResultID+defaultResultFileSuffix)
}

// List lists all batch result IDs for the given appName.
func (l *locator) List(baseDir, appName string) ([]string, error) {
	dir := filepath.Join(baseDir, appName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	results := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), defaultResultFileSuffix) {
			name := strings.TrimSuffix(entry.Name(), defaultResultFileSuffix)
			results = append(results, name)
		}
	}
	return results, nil
}

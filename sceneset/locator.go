//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

package sceneset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// defaultFileSuffix is the suffix of the scene set file.
const defaultFileSuffix = ".sceneset.json"

// Locator resolves scene set storage paths.
type Locator interface {
	// Build returns the file path for the given scene set.
	Build(baseDir, appName, sceneSetID string) string
	// List returns all scene set IDs under the given app.
	List(baseDir, appName string) ([]string, error)
}

type defaultLocator struct{}

// NewDefaultLocator creates a Locator which stores each scene set as
// <baseDir>/<appName>/<sceneSetID>.sceneset.json.
func NewDefaultLocator() Locator {
	return &defaultLocator{}
}

// Build implements Locator.Build.
func (l *defaultLocator) Build(baseDir, appName, sceneSetID string) string {
	return filepath.Join(baseDir, appName, sceneSetID+defaultFileSuffix)
}

// List implements Locator.List.
func (l *defaultLocator) List(baseDir, appName string) ([]string, error) {
	dir := filepath.Join(baseDir, appName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), defaultFileSuffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), defaultFileSuffix))
	}
	return ids, nil
}

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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLocatorBuild(t *testing.T) {
	locator := NewDefaultLocator()
	got := locator.Build("base", "kitchen-app", "result-1")
	want := filepath.Join("base", "kitchen-app", "result-1.reward_result.json")
	assert.Equal(t, want, got)
}

func TestDefaultLocatorList(t *testing.T) {
	baseDir := t.TempDir()
	appDir := filepath.Join(baseDir, "kitchen-app")
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	for _, name := range []string{
		"result-1.reward_result.json",
		"result-2.reward_result.json",
		"notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(appDir, name), []byte("{}"), 0o644))
	}

	ids, err := NewDefaultLocator().List(baseDir, "kitchen-app")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"result-1", "result-2"}, ids)
}

func TestDefaultLocatorListMissingDir(t *testing.T) {
	ids, err := NewDefaultLocator().List(t.TempDir(), "no-such-app")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestNewOptions(t *testing.T) {
	opts := NewOptions()
	assert.Equal(t, "reward_results", opts.BaseDir)
	assert.NotNil(t, opts.Locator)

	custom := NewOptions(WithBaseDir("/tmp/results"), WithLocator(NewDefaultLocator()))
	assert.Equal(t, "/tmp/results", custom.BaseDir)
}

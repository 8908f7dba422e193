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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLocatorBuild(t *testing.T) {
	locator := NewDefaultLocator()
	got := locator.Build("base", "kitchen-app", "drawer-set")
	want := filepath.Join("base", "kitchen-app", "drawer-set.sceneset.json")
	assert.Equal(t, want, got)
}

func TestDefaultLocatorList(t *testing.T) {
	baseDir := t.TempDir()
	appDir := filepath.Join(baseDir, "kitchen-app")
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	for _, name := range []string{
		"drawer-set.sceneset.json",
		"toaster-set.sceneset.json",
		"notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(appDir, name), []byte("{}"), 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(appDir, "nested.sceneset.json"), 0o755))

	ids, err := NewDefaultLocator().List(baseDir, "kitchen-app")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"drawer-set", "toaster-set"}, ids)
}

func TestDefaultLocatorListMissingDir(t *testing.T) {
	ids, err := NewDefaultLocator().List(t.TempDir(), "no-such-app")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestNewOptions(t *testing.T) {
	options := NewOptions()
	assert.Equal(t, defaultBaseDir, options.BaseDir)
	assert.NotNil(t, options.Locator)

	custom := NewOptions(WithBaseDir("/tmp/sets"), WithLocator(NewDefaultLocator()))
	assert.Equal(t, "/tmp/sets", custom.BaseDir)
}

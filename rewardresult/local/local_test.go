//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

package local

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-graph-reward/reward"
	"trpc.group/trpc-go/trpc-graph-reward/rewardresult"
)

func batchFixture() *rewardresult.BatchResult {
	return &rewardresult.BatchResult{
		SceneSetID: "kitchen-set",
		CaseResults: []*rewardresult.CaseResult{
			{
				CaseID:         "case-1",
				Attempt:        0,
				ResponseLength: 120,
				Reward: reward.Record{
					Overall:            1.0,
					Format:             1.0,
					Accuracy:           1.0,
					AccuracyNormalized: 1.0,
				},
			},
		},
	}
}

func TestLocalManager(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	manager := New(rewardresult.WithBaseDir(dir)).(*manager)

	ids, err := manager.List(ctx, "app")
	assert.NoError(t, err)
	assert.Empty(t, ids)

	_, err = manager.Get(ctx, "app", "missing")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	batch := batchFixture()
	id, err := manager.Save(ctx, "app", batch)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "app_kitchen-set_"))
	// The caller's result is not mutated by ID generation.
	assert.Empty(t, batch.BatchResultID)
	assert.FileExists(t, manager.resultPath("app", id))

	got, err := manager.Get(ctx, "app", id)
	require.NoError(t, err)
	assert.Equal(t, id, got.BatchResultID)
	assert.Equal(t, id, got.BatchName)
	assert.Equal(t, "kitchen-set", got.SceneSetID)
	require.Len(t, got.CaseResults, 1)
	assert.Equal(t, "case-1", got.CaseResults[0].CaseID)
	assert.NotNil(t, got.CreationTimestamp)

	ids, err = manager.List(ctx, "app")
	assert.NoError(t, err)
	assert.Equal(t, []string{id}, ids)

	assert.NoError(t, manager.Close())
}

func TestLocalManagerSaveWithExplicitID(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	manager := New(rewardresult.WithBaseDir(dir))

	batch := batchFixture()
	batch.BatchResultID = "fixed-id"
	batch.BatchName = "nightly run"
	batch.Summary = rewardresult.Summarize(batch, 1)

	id, err := manager.Save(ctx, "app", batch)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)

	// Saving again overwrites the stored copy.
	batch.BatchName = "nightly rerun"
	id, err = manager.Save(ctx, "app", batch)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)

	got, err := manager.Get(ctx, "app", "fixed-id")
	require.NoError(t, err)
	assert.Equal(t, "nightly rerun", got.BatchName)
	require.NotNil(t, got.Summary)
	assert.Equal(t, 1, got.Summary.NumCases)
}

func TestLocalManagerValidation(t *testing.T) {
	ctx := context.Background()
	manager := New(rewardresult.WithBaseDir(t.TempDir()))

	_, err := manager.Save(ctx, "", batchFixture())
	assert.EqualError(t, err, "app name is empty")
	_, err = manager.Save(ctx, "app", nil)
	assert.EqualError(t, err, "batch result is nil")
	_, err = manager.Save(ctx, "app", &rewardresult.BatchResult{})
	assert.EqualError(t, err, "the scene set id of batch result is empty")
	_, err = manager.Get(ctx, "app", "")
	assert.EqualError(t, err, "batch result id is empty")
	_, err = manager.List(ctx, "")
	assert.EqualError(t, err, "app name is empty")
}

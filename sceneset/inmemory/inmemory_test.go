//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

package inmemory

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-graph-reward/scenegraph"
	"trpc.group/trpc-go/trpc-graph-reward/sceneset"
)

func graphFixture() *scenegraph.SceneGraph {
	return &scenegraph.SceneGraph{
		TaskInstruction: "open the cabinet",
		Nodes:           []string{"cabinet", "handle"},
		Edges: []*scenegraph.Edge{
			{
				FunctionalRelationship: "open or close",
				Object1:                "handle",
				Object2:                "cabinet",
				SpatialRelations:       []string{"touching"},
				IsTouching:             true,
			},
		},
		ActionType:   "pull",
		FunctionType: "handle",
	}
}

func caseFixture(caseID string) *sceneset.SceneCase {
	return &sceneset.SceneCase{
		CaseID:      caseID,
		Prompt:      "open the cabinet",
		GroundTruth: graphFixture(),
	}
}

func TestInMemoryManager(t *testing.T) {
	ctx := context.Background()
	manager := New()

	ids, err := manager.List(ctx, "app")
	assert.NoError(t, err)
	assert.Empty(t, ids)

	_, err = manager.Get(ctx, "app", "missing")
	assert.True(t, errors.Is(err, os.ErrNotExist))

	sceneSet, err := manager.Create(ctx, "app", "set1")
	assert.NoError(t, err)
	assert.Equal(t, "set1", sceneSet.SceneSetID)
	assert.Equal(t, "set1", sceneSet.Name)

	_, err = manager.Create(ctx, "app", "set1")
	assert.ErrorContains(t, err, "already exists")

	err = manager.AddCase(ctx, "app", "set1", caseFixture("case1"))
	assert.NoError(t, err)
	err = manager.AddCase(ctx, "app", "set1", caseFixture("case1"))
	assert.ErrorContains(t, err, "already exists")
	err = manager.AddCase(ctx, "app", "missing", caseFixture("case1"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	gotCase, err := manager.GetCase(ctx, "app", "set1", "case1")
	require.NoError(t, err)
	assert.Equal(t, "openorclose", gotCase.GroundTruth.Edges[0].FunctionalRelationship)
	assert.NotNil(t, gotCase.CreationTimestamp)

	update := caseFixture("case1")
	update.Prompt = "open the lower cabinet"
	assert.NoError(t, manager.UpdateCase(ctx, "app", "set1", update))
	gotCase, err = manager.GetCase(ctx, "app", "set1", "case1")
	require.NoError(t, err)
	assert.Equal(t, "open the lower cabinet", gotCase.Prompt)

	assert.NoError(t, manager.DeleteCase(ctx, "app", "set1", "case1"))
	_, err = manager.GetCase(ctx, "app", "set1", "case1")
	assert.True(t, errors.Is(err, os.ErrNotExist))

	ids, err = manager.List(ctx, "app")
	assert.NoError(t, err)
	assert.Equal(t, []string{"set1"}, ids)

	assert.NoError(t, manager.Delete(ctx, "app", "set1"))
	assert.True(t, errors.Is(manager.Delete(ctx, "app", "set1"), os.ErrNotExist))

	assert.NoError(t, manager.Close())
}

func TestInMemoryManagerListSorted(t *testing.T) {
	ctx := context.Background()
	manager := New()
	for _, id := range []string{"set-c", "set-a", "set-b"} {
		_, err := manager.Create(ctx, "app", id)
		require.NoError(t, err)
	}
	ids, err := manager.List(ctx, "app")
	require.NoError(t, err)
	assert.Equal(t, []string{"set-a", "set-b", "set-c"}, ids)
}

func TestInMemoryManagerReturnsCopies(t *testing.T) {
	ctx := context.Background()
	manager := New()
	_, err := manager.Create(ctx, "app", "set1")
	require.NoError(t, err)
	require.NoError(t, manager.AddCase(ctx, "app", "set1", caseFixture("case1")))

	got, err := manager.Get(ctx, "app", "set1")
	require.NoError(t, err)
	got.SceneCases[0].Prompt = "mutated"
	got.SceneCases[0].GroundTruth.Nodes[0] = "mutated"

	fresh, err := manager.Get(ctx, "app", "set1")
	require.NoError(t, err)
	assert.Equal(t, "open the cabinet", fresh.SceneCases[0].Prompt)
	assert.Equal(t, "cabinet", fresh.SceneCases[0].GroundTruth.Nodes[0])

	gotCase, err := manager.GetCase(ctx, "app", "set1", "case1")
	require.NoError(t, err)
	gotCase.GroundTruth.ActionType = "push"
	fresh, err = manager.Get(ctx, "app", "set1")
	require.NoError(t, err)
	assert.Equal(t, "pull", fresh.SceneCases[0].GroundTruth.ActionType)
}

func TestInMemoryManagerValidation(t *testing.T) {
	ctx := context.Background()
	manager := New()
	_, err := manager.Create(ctx, "app", "set1")
	require.NoError(t, err)

	invalid := caseFixture("case1")
	invalid.GroundTruth.ActionType = "teleport"
	err = manager.AddCase(ctx, "app", "set1", invalid)
	assert.ErrorContains(t, err, "validate ground truth")

	err = manager.AddCase(ctx, "app", "set1", &sceneset.SceneCase{CaseID: "case1"})
	assert.ErrorContains(t, err, "ground truth is nil")

	_, err = manager.Get(ctx, "", "set1")
	assert.EqualError(t, err, "app name is empty")
	_, err = manager.Get(ctx, "app", "")
	assert.EqualError(t, err, "scene set id is empty")
	assert.EqualError(t, manager.AddCase(ctx, "app", "set1", nil), "sceneCase is nil")
}

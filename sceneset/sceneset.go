//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

// Package sceneset provides ground truth scene set storage.
package sceneset

import (
	"context"

	"trpc.group/trpc-go/trpc-graph-reward/internal/epochtime"
	"trpc.group/trpc-go/trpc-graph-reward/scenegraph"
)

// SceneSet represents a collection of scene cases.
type SceneSet struct {
	// SceneSetID uniquely identifies this scene set.
	SceneSetID string `json:"scene_set_id"`
	// Name of the scene set.
	Name string `json:"name,omitempty"`
	// Description of the scene set.
	Description string `json:"description,omitempty"`
	// SceneCases contains all the scene cases.
	SceneCases []*SceneCase `json:"scene_cases"`
	// CreationTimestamp when this scene set was created.
	CreationTimestamp *epochtime.EpochTime `json:"creation_timestamp,omitempty"`
}

// SceneCase holds one prompt and its ground truth scene graph.
type SceneCase struct {
	// CaseID uniquely identifies this case within a scene set.
	CaseID string `json:"case_id"`
	// Prompt is the task prompt presented to the model.
	Prompt string `json:"prompt,omitempty"`
	// GroundTruth is the reference scene graph for the prompt.
	GroundTruth *scenegraph.SceneGraph `json:"ground_truth"`
	// CreationTimestamp when this case was created.
	CreationTimestamp *epochtime.EpochTime `json:"creation_timestamp,omitempty"`
}

// Manager defines the interface for managing scene sets.
type Manager interface {
	// Get returns a SceneSet identified by sceneSetID.
	Get(ctx context.Context, appName, sceneSetID string) (*SceneSet, error)
	// Create creates and returns an empty SceneSet given the sceneSetID.
	Create(ctx context.Context, appName, sceneSetID string) (*SceneSet, error)
	// List lists all SceneSet IDs for the given appName.
	List(ctx context.Context, appName string) ([]string, error)
	// Delete deletes the SceneSet identified by sceneSetID.
	Delete(ctx context.Context, appName, sceneSetID string) error
	// GetCase returns a SceneCase if found, otherwise an error.
	GetCase(ctx context.Context, appName, sceneSetID, caseID string) (*SceneCase, error)
	// AddCase adds the given SceneCase to an existing SceneSet identified by sceneSetID.
	// The ground truth is normalized and validated before it is stored.
	AddCase(ctx context.Context, appName, sceneSetID string, sceneCase *SceneCase) error
	// UpdateCase updates an existing SceneCase given the sceneSetID.
	// The ground truth is normalized and validated before it is stored.
	UpdateCase(ctx context.Context, appName, sceneSetID string, sceneCase *SceneCase) error
	// DeleteCase deletes the SceneCase identified by sceneSetID and caseID.
	DeleteCase(ctx context.Context, appName, sceneSetID, caseID string) error
	// Close releases resources held by the manager.
	Close() error
}

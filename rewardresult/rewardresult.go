//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

// Package rewardresult provides storage for batch scoring results.
package rewardresult

import (
	"context"

	"trpc.group/trpc-go/trpc-graph-reward/internal/epochtime"
	"trpc.group/trpc-go/trpc-graph-reward/reward"
)

// BatchResult represents the scoring result for one batch of responses
// against a scene set.
type BatchResult struct {
	// BatchResultID uniquely identifies this result.
	BatchResultID string `json:"batchResultId,omitempty"`
	// BatchName is the name of this result.
	BatchName string `json:"batchName,omitempty"`
	// SceneSetID identifies the scene set the batch was scored against.
	SceneSetID string `json:"sceneSetId,omitempty"`
	// CaseResults contains one result per scored response.
	CaseResults []*CaseResult `json:"caseResults,omitempty"`
	// Summary aggregates the batch outcomes.
	Summary *BatchSummary `json:"summary,omitempty"`
	// CreationTimestamp when this result was created.
	CreationTimestamp *epochtime.EpochTime `json:"creationTimestamp,omitempty"`
}

// CaseResult represents the score of a single response to a scene case.
type CaseResult struct {
	// CaseID identifies the scene case the response answered.
	CaseID string `json:"caseId,omitempty"`
	// Attempt numbers this response among the responses submitted for the
	// case, starting at 1.
	Attempt int `json:"attempt"`
	// ResponseLength is the response length in runes.
	ResponseLength int `json:"responseLength"`
	// Reward is the score breakdown for this response.
	Reward reward.Record `json:"reward"`
}

// Manager defines the interface for managing batch scoring results.
type Manager interface {
	// Save stores a batch result and returns its ID. A missing BatchResultID
	// is generated from the app name, the scene set ID and a fresh UUID.
	Save(ctx context.Context, appName string, batchResult *BatchResult) (string, error)
	// Get retrieves a batch result by batchResultID.
	Get(ctx context.Context, appName, batchResultID string) (*BatchResult, error)
	// List returns all available batch result IDs.
	List(ctx context.Context, appName string) ([]string, error)
	// Close releases resources held by the manager.
	Close() error
}

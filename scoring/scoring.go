//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

// Package scoring orchestrates batch scoring runs: it resolves stored scene
// sets, scores grouped model responses through the reward engine and persists
// the summarized batch results.
package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"

	"trpc.group/trpc-go/trpc-graph-reward/log"
	"trpc.group/trpc-go/trpc-graph-reward/reward"
	"trpc.group/trpc-go/trpc-graph-reward/rewardresult"
	"trpc.group/trpc-go/trpc-graph-reward/sceneset"
	"trpc.group/trpc-go/trpc-graph-reward/telemetry"
)

// CaseResponses groups the rollout responses of one scene case. Several
// responses per case make the pass@k rates of the batch summary meaningful.
type CaseResponses struct {
	// CaseID references a scene case of the scored scene set.
	CaseID string `json:"caseId"`
	// Responses are the raw model outputs for the case prompt.
	Responses []string `json:"responses"`
}

// BatchScorer scores grouped model responses against stored scene sets and
// persists the aggregated results. It is safe for concurrent use as long as
// the configured managers are.
type BatchScorer struct {
	appName            string
	engine             *reward.Engine
	sceneSetManager    sceneset.Manager
	batchResultManager rewardresult.Manager
	batchName          string
	passKs             []int
}

// New creates a BatchScorer for the given application. Without options it
// scores with a default engine and keeps scene sets and batch results in
// memory.
func New(appName string, opt ...Option) (*BatchScorer, error) {
	if appName == "" {
		return nil, errors.New("app name is empty")
	}
	opts := newOptions(opt...)
	if opts.sceneSetManager == nil {
		return nil, errors.New("scene set manager is nil")
	}
	if opts.batchResultManager == nil {
		return nil, errors.New("batch result manager is nil")
	}
	engine := opts.engine
	if engine == nil {
		var err error
		if engine, err = reward.New(opts.engineOptions...); err != nil {
			return nil, fmt.Errorf("create reward engine: %w", err)
		}
	}
	return &BatchScorer{
		appName:            appName,
		engine:             engine,
		sceneSetManager:    opts.sceneSetManager,
		batchResultManager: opts.batchResultManager,
		batchName:          opts.batchName,
		passKs:             opts.passKs,
	}, nil
}

// Score scores every response of every named case against the scene set's
// ground truth, saves the summarized batch and returns the stored result.
// Case results follow the input grouping and attempts count up per case.
func (s *BatchScorer) Score(
	ctx context.Context, sceneSetID string, responses []CaseResponses,
) (*rewardresult.BatchResult, error) {
	if sceneSetID == "" {
		return nil, errors.New("scene set id is empty")
	}
	if len(responses) == 0 {
		return nil, errors.New("responses are empty")
	}
	start := time.Now()
	sceneSet, err := s.sceneSetManager.Get(ctx, s.appName, sceneSetID)
	if err != nil {
		return nil, fmt.Errorf("get scene set: %w", err)
	}
	samples, err := s.collectSamples(sceneSet, responses)
	if err != nil {
		return nil, fmt.Errorf("resolve scene cases: %w", err)
	}
	records, err := s.engine.ComputeScore(ctx, samples)
	if err != nil {
		return nil, fmt.Errorf("score batch: %w", err)
	}
	batchResult := s.assembleBatchResult(sceneSetID, responses, records)
	batchResultID, err := s.batchResultManager.Save(ctx, s.appName, batchResult)
	if err != nil {
		return nil, fmt.Errorf("save batch result: %w", err)
	}
	batchResult.BatchResultID = batchResultID
	if batchResult.BatchName == "" {
		batchResult.BatchName = batchResultID
	}
	telemetry.RecordBatchScored(ctx, s.appName, sceneSetID, time.Since(start))
	log.Debugf("Scored batch %s with %d responses across %d cases of scene set %s.",
		batchResultID, batchResult.Summary.NumResponses, batchResult.Summary.NumCases, sceneSetID)
	return batchResult, nil
}

// Close closes the scorer and releases the engine and both managers.
func (s *BatchScorer) Close() error {
	var overallErr error
	if s.engine != nil {
		if err := s.engine.Close(); err != nil {
			overallErr = errors.Join(overallErr, fmt.Errorf("close reward engine: %w", err))
		}
	}
	if s.sceneSetManager != nil {
		if err := s.sceneSetManager.Close(); err != nil {
			overallErr = errors.Join(overallErr, fmt.Errorf("close scene set manager: %w", err))
		}
	}
	if s.batchResultManager != nil {
		if err := s.batchResultManager.Close(); err != nil {
			overallErr = errors.Join(overallErr, fmt.Errorf("close batch result manager: %w", err))
		}
	}
	return overallErr
}

// collectSamples flattens the grouped responses into engine samples, pairing
// each response with its case's ground truth. Empty and unknown case IDs are
// reported together so a caller can repair the whole request in one round.
func (s *BatchScorer) collectSamples(
	sceneSet *sceneset.SceneSet, responses []CaseResponses,
) ([]reward.Sample, error) {
	casesByID := make(map[string]*sceneset.SceneCase, len(sceneSet.SceneCases))
	for _, sceneCase := range sceneSet.SceneCases {
		if sceneCase != nil {
			casesByID[sceneCase.CaseID] = sceneCase
		}
	}
	groundTruths := make(map[string]string, len(responses))
	var errs *multierror.Error
	for i, group := range responses {
		if group.CaseID == "" {
			errs = multierror.Append(errs, fmt.Errorf("case responses %d: scene case id is empty", i))
			continue
		}
		if _, ok := groundTruths[group.CaseID]; ok {
			continue
		}
		sceneCase, ok := casesByID[group.CaseID]
		if !ok {
			errs = multierror.Append(errs, fmt.Errorf("scene case %s.%s.%s not found: %w",
				s.appName, sceneSet.SceneSetID, group.CaseID, os.ErrNotExist))
			continue
		}
		groundTruth, err := json.Marshal(sceneCase.GroundTruth)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("marshal ground truth of scene case %s: %w",
				group.CaseID, err))
			continue
		}
		groundTruths[group.CaseID] = string(groundTruth)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	samples := make([]reward.Sample, 0, len(responses))
	for _, group := range responses {
		for _, response := range group.Responses {
			samples = append(samples, reward.Sample{
				Response:    response,
				GroundTruth: groundTruths[group.CaseID],
			})
		}
	}
	return samples, nil
}

// assembleBatchResult pairs the score records back with their responses. The
// record order is the flattened response order, so one running index walks
// both.
func (s *BatchScorer) assembleBatchResult(
	sceneSetID string, responses []CaseResponses, records []*reward.Record,
) *rewardresult.BatchResult {
	caseResults := make([]*rewardresult.CaseResult, 0, len(records))
	attempts := make(map[string]int)
	next := 0
	for _, group := range responses {
		for _, response := range group.Responses {
			attempts[group.CaseID]++
			caseResults = append(caseResults, &rewardresult.CaseResult{
				CaseID:         group.CaseID,
				Attempt:        attempts[group.CaseID],
				ResponseLength: utf8.RuneCountInString(response),
				Reward:         *records[next],
			})
			next++
		}
	}
	batchResult := &rewardresult.BatchResult{
		BatchName:   s.batchName,
		SceneSetID:  sceneSetID,
		CaseResults: caseResults,
	}
	batchResult.Summary = rewardresult.Summarize(batchResult, s.passKs...)
	return batchResult
}

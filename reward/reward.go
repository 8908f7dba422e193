//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

// Package reward turns raw model responses into training reward records by
// extracting the predicted scene graph, gating it through the format
// validator, comparing it against the reference graph and folding the pieces
// into one weighted overall score.
package reward

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/panjf2000/ants/v2"

	"trpc.group/trpc-go/trpc-graph-reward/reward/criterion/graph"
	"trpc.group/trpc-go/trpc-graph-reward/scenegraph"
	"trpc.group/trpc-go/trpc-graph-reward/telemetry"
)

// Sample pairs one model response with its reference scene graph.
type Sample struct {
	// Response is the raw model output including any reasoning text.
	Response string `json:"response"`
	// GroundTruth is the reference scene graph as a JSON document.
	GroundTruth string `json:"ground_truth"`
}

// Record carries every score component of one sample.
type Record struct {
	// Overall is the weighted reward handed to the trainer.
	Overall float64 `json:"overall"`
	// Format reports the binary schema gate result.
	Format float64 `json:"format"`
	// Accuracy is the discretized graph similarity reward.
	Accuracy float64 `json:"accuracy"`
	// Overlong is the soft length penalty, 0 or negative.
	Overlong float64 `json:"overlong"`
	// AccuracyNormalized rescales Accuracy onto [0, 1] for sample filtering.
	AccuracyNormalized float64 `json:"accuracy_normalized"`
}

// Solved reports whether the sample reached the full accuracy reward. It is
// the success notion used by the pass@k estimators.
func (r *Record) Solved() bool {
	return r.Accuracy >= 1.0
}

// Formatted reports whether the sample passed every format check.
func (r *Record) Formatted() bool {
	return r.Format >= 1.0
}

// Engine scores samples. It is safe for concurrent use.
type Engine struct {
	extractor             *scenegraph.Extractor
	validator             *scenegraph.Validator
	criterion             *graph.Criterion
	formatWeight          float64
	maxResponseLength     int
	overlongBufferLength  int
	overlongPenaltyFactor float64
	pool                  *ants.PoolWithFunc
}

// New creates an Engine. Without options the engine uses the greedy answer
// extractor, exact object matching, a 0.2 format weight and the default
// length budget.
func New(opt ...Option) (*Engine, error) {
	opts := newOptions(opt...)
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("reward engine options: %w", err)
	}
	extractor := scenegraph.NewExtractor(scenegraph.WithExtractStrategy(opts.extractStrategy))
	engine := &Engine{
		extractor:             extractor,
		validator:             scenegraph.NewValidator(extractor),
		criterion:             opts.graphCriterion(),
		formatWeight:          opts.formatWeight,
		maxResponseLength:     opts.maxResponseLength,
		overlongBufferLength:  opts.overlongBufferLength,
		overlongPenaltyFactor: opts.overlongPenaltyFactor,
	}
	if opts.parallelism > 0 {
		pool, err := newScorePool(opts.parallelism)
		if err != nil {
			return nil, fmt.Errorf("create score pool: %w", err)
		}
		engine.pool = pool
	}
	return engine, nil
}

// Score computes the reward record for one sample. Scoring never fails:
// missing answers, malformed payloads and unreadable ground truth all
// surface as zero or negative score components.
func (e *Engine) Score(ctx context.Context, sample Sample) *Record {
	formatScore := e.validator.FormatScore(sample.Response)
	accuracyScore := e.Accuracy(sample.Response, sample.GroundTruth)
	overlongScore := OverlongPenalty(
		utf8.RuneCountInString(sample.Response), e.maxResponseLength, e.overlongBufferLength)
	record := &Record{
		Overall: e.formatWeight*formatScore +
			(1-e.formatWeight)*accuracyScore +
			overlongScore*e.overlongPenaltyFactor,
		Format:             formatScore,
		Accuracy:           accuracyScore,
		Overlong:           overlongScore,
		AccuracyNormalized: 0.5 * (accuracyScore + 1.0),
	}
	telemetry.RecordSampleScored(ctx, record.Overall, record.Formatted())
	return record
}

// ComputeScore scores a whole batch. Samples are independent; with
// WithParallelism they are scored on a goroutine pool. Result index i always
// belongs to input index i. The input must be a batch: nil is rejected, an
// empty batch yields an empty result.
func (e *Engine) ComputeScore(ctx context.Context, batch []Sample) ([]*Record, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, errors.New("reward inputs must be a batch of samples")
	}
	records := make([]*Record, len(batch))
	if e.pool == nil || len(batch) <= 1 {
		for i, sample := range batch {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			records[i] = e.Score(ctx, sample)
		}
		return records, nil
	}
	var wg sync.WaitGroup
	for i, sample := range batch {
		wg.Add(1)
		param := scoreParamPool.Get().(*scoreParam)
		param.idx = i
		param.ctx = ctx
		param.engine = e
		param.sample = sample
		param.records = records
		param.wg = &wg
		if err := e.pool.Invoke(param); err != nil {
			// Pool refused the task, score inline instead.
			wg.Done()
			records[i] = e.Score(ctx, sample)
			param.reset()
			scoreParamPool.Put(param)
		}
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Close releases the scoring pool. The engine must not be used afterwards.
func (e *Engine) Close() error {
	if e.pool != nil {
		e.pool.Release()
	}
	return nil
}

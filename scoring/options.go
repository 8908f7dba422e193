//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

package scoring

import (
	"trpc.group/trpc-go/trpc-graph-reward/reward"
	"trpc.group/trpc-go/trpc-graph-reward/rewardresult"
	rewardresultinmemory "trpc.group/trpc-go/trpc-graph-reward/rewardresult/inmemory"
	"trpc.group/trpc-go/trpc-graph-reward/sceneset"
	scenesetinmemory "trpc.group/trpc-go/trpc-graph-reward/sceneset/inmemory"
)

type options struct {
	engine             *reward.Engine
	engineOptions      []reward.Option
	sceneSetManager    sceneset.Manager
	batchResultManager rewardresult.Manager
	batchName          string
	passKs             []int
}

func newOptions(opt ...Option) *options {
	opts := &options{
		sceneSetManager:    scenesetinmemory.New(),
		batchResultManager: rewardresultinmemory.New(),
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures the BatchScorer.
type Option func(*options)

// WithEngine supplies a prebuilt reward engine. The scorer takes ownership and
// closes it.
func WithEngine(engine *reward.Engine) Option {
	return func(o *options) {
		o.engine = engine
	}
}

// WithEngineOptions configures the reward engine the scorer builds itself.
// Ignored when an engine is supplied through WithEngine.
func WithEngineOptions(opt ...reward.Option) Option {
	return func(o *options) {
		o.engineOptions = append(o.engineOptions, opt...)
	}
}

// WithSceneSetManager sets the scene set store to score against.
func WithSceneSetManager(m sceneset.Manager) Option {
	return func(o *options) {
		o.sceneSetManager = m
	}
}

// WithBatchResultManager sets the store scored batches are saved to.
func WithBatchResultManager(m rewardresult.Manager) Option {
	return func(o *options) {
		o.batchResultManager = m
	}
}

// WithBatchName names the stored batch results. Empty means the generated
// batch result ID is used as the name.
func WithBatchName(name string) Option {
	return func(o *options) {
		o.batchName = name
	}
}

// WithPassAtK requests pass@k rates in the batch summary for the given k
// values.
func WithPassAtK(ks ...int) Option {
	return func(o *options) {
		o.passKs = append(o.passKs, ks...)
	}
}

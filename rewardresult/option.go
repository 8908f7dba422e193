//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

package rewardresult

// Options holds configuration for file based batch result managers.
type Options struct {
	// BaseDir is the root directory for batch result files.
	BaseDir string
	// Locator resolves batch result storage paths.
	Locator Locator
}

// Option configures Options.
type Option func(*Options)

// NewOptions creates Options with defaults applied, then applies opt.
func NewOptions(opt ...Option) *Options {
	opts := &Options{
		BaseDir: "reward_results",
		Locator: NewDefaultLocator(),
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// WithBaseDir overrides the default base directory used to store results.
func WithBaseDir(dir string) Option {
	return func(o *Options) {
		o.BaseDir = dir
	}
}

// WithLocator sets the locator used to resolve batch result paths.
func WithLocator(locator Locator) Option {
	return func(o *Options) {
		o.Locator = locator
	}
}

//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

package sceneset

// defaultBaseDir is the default directory for file based storage.
const defaultBaseDir = "scenesets"

// Options holds configuration for file based scene set managers.
type Options struct {
	// BaseDir is the root directory for scene set files.
	BaseDir string
	// Locator resolves scene set storage paths.
	Locator Locator
}

// Option configures Options.
type Option func(*Options)

// NewOptions creates Options with defaults applied, then applies opts.
func NewOptions(opts ...Option) *Options {
	options := &Options{
		BaseDir: defaultBaseDir,
		Locator: NewDefaultLocator(),
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithBaseDir sets the root directory for scene set files.
func WithBaseDir(baseDir string) Option {
	return func(o *Options) {
		o.BaseDir = baseDir
	}
}

// WithLocator sets the locator used to resolve scene set paths.
func WithLocator(locator Locator) Option {
	return func(o *Options) {
		o.Locator = locator
	}
}

//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

package reward

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"trpc.group/trpc-go/trpc-graph-reward/reward/criterion/edge"
	"trpc.group/trpc-go/trpc-graph-reward/reward/criterion/graph"
	"trpc.group/trpc-go/trpc-graph-reward/reward/criterion/object"
	"trpc.group/trpc-go/trpc-graph-reward/scenegraph"
)

// Default engine configuration.
const (
	// DefaultFormatWeight is the share of the overall reward granted for a
	// schema-conforming answer; the rest rewards accuracy.
	DefaultFormatWeight = 0.2
	// DefaultMaxResponseLength is the hard response length budget in runes.
	DefaultMaxResponseLength = 4096
	// DefaultOverlongBufferLength is the width of the soft penalty zone at
	// the end of the length budget.
	DefaultOverlongBufferLength = 512
	// DefaultOverlongPenaltyFactor scales the length penalty inside the
	// overall reward.
	DefaultOverlongPenaltyFactor = 1.0
)

type options struct {
	formatWeight          float64
	maxResponseLength     int
	overlongBufferLength  int
	overlongPenaltyFactor float64
	extractStrategy       scenegraph.ExtractStrategy
	objectMatchStrategy   object.MatchStrategy
	criterion             *graph.Criterion
	parallelism           int
}

// Option configures the Engine.
type Option func(*options)

func newOptions(opt ...Option) *options {
	opts := &options{
		formatWeight:          DefaultFormatWeight,
		maxResponseLength:     DefaultMaxResponseLength,
		overlongBufferLength:  DefaultOverlongBufferLength,
		overlongPenaltyFactor: DefaultOverlongPenaltyFactor,
		extractStrategy:       scenegraph.ExtractStrategyGreedy,
		objectMatchStrategy:   object.MatchStrategyExact,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

func (o *options) validate() error {
	var errs *multierror.Error
	if o.formatWeight < 0 || o.formatWeight > 1 {
		errs = multierror.Append(errs, fmt.Errorf("format weight %v must be within [0, 1]", o.formatWeight))
	}
	if o.maxResponseLength <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("max response length %d must be positive", o.maxResponseLength))
	}
	if o.overlongBufferLength <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("overlong buffer length %d must be positive", o.overlongBufferLength))
	}
	if o.overlongBufferLength > o.maxResponseLength {
		errs = multierror.Append(errs, fmt.Errorf("overlong buffer length %d cannot exceed max response length %d",
			o.overlongBufferLength, o.maxResponseLength))
	}
	if o.parallelism < 0 {
		errs = multierror.Append(errs, fmt.Errorf("parallelism %d cannot be negative", o.parallelism))
	}
	return errs.ErrorOrNil()
}

// graphCriterion returns the configured criterion, or builds one from the
// object match strategy.
func (o *options) graphCriterion() *graph.Criterion {
	if o.criterion != nil {
		return o.criterion
	}
	return &graph.Criterion{
		Edge: &edge.Criterion{
			Object: &object.Criterion{MatchStrategy: o.objectMatchStrategy},
		},
	}
}

// WithFormatWeight sets the format share of the overall reward, within [0, 1].
func WithFormatWeight(weight float64) Option {
	return func(o *options) {
		o.formatWeight = weight
	}
}

// WithMaxResponseLength sets the hard response length budget in runes.
func WithMaxResponseLength(length int) Option {
	return func(o *options) {
		o.maxResponseLength = length
	}
}

// WithOverlongBufferLength sets the width of the soft penalty zone.
func WithOverlongBufferLength(length int) Option {
	return func(o *options) {
		o.overlongBufferLength = length
	}
}

// WithOverlongPenaltyFactor scales the length penalty inside the overall
// reward.
func WithOverlongPenaltyFactor(factor float64) Option {
	return func(o *options) {
		o.overlongPenaltyFactor = factor
	}
}

// WithExtractStrategy selects how answer payloads are captured from the
// response text.
func WithExtractStrategy(strategy scenegraph.ExtractStrategy) Option {
	return func(o *options) {
		o.extractStrategy = strategy
	}
}

// WithObjectMatchStrategy selects how edge endpoints are compared, e.g.
// alias-aware matching for slash-separated labels. Ignored when a full
// criterion is set through WithGraphCriterion.
func WithObjectMatchStrategy(strategy object.MatchStrategy) Option {
	return func(o *options) {
		o.objectMatchStrategy = strategy
	}
}

// WithGraphCriterion replaces the whole similarity criterion.
func WithGraphCriterion(criterion *graph.Criterion) Option {
	return func(o *options) {
		o.criterion = criterion
	}
}

// WithParallelism scores batch samples on a goroutine pool of the given size.
// Zero keeps scoring sequential.
func WithParallelism(parallelism int) Option {
	return func(o *options) {
		o.parallelism = parallelism
	}
}

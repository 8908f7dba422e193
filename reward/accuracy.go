//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

package reward

import "trpc.group/trpc-go/trpc-graph-reward/scenegraph"

// Accuracy rewards, from worst to best.
const (
	// accuracyUnusable marks samples without a usable prediction or ground
	// truth. It stays below every bucket so the trainer steers away from
	// non-answers harder than from wrong answers.
	accuracyUnusable = -0.5
	// accuracyMalformed marks samples that carry an answer payload which
	// fails the format gate.
	accuracyMalformed = 0.0
)

// Accuracy computes the discretized accuracy reward for one response. An
// unreadable ground truth or a missing answer yields -0.5; a parsed answer
// that fails the format gate yields 0.0; everything else maps the graph
// similarity into reward buckets.
func (e *Engine) Accuracy(response, groundTruth string) float64 {
	payload, ok := e.extractor.Extract(response)
	reference, err := scenegraph.ParseGraph(groundTruth)
	if err != nil {
		return accuracyUnusable
	}
	if !ok {
		return accuracyUnusable
	}
	if e.validator.FormatScore(response) == 0.0 {
		return accuracyMalformed
	}
	return bucketize(e.criterion.Similarity(scenegraph.DecodeGraph(payload), reference))
}

// bucketize discretizes graph similarity into the training reward. The top
// bucket is deliberately strict so that full reward stays reserved for
// near-perfect graphs; below 0.3 the prediction counts as unusable.
func bucketize(similarity float64) float64 {
	switch {
	case similarity >= 0.98:
		return 1.0
	case similarity >= 0.85:
		return 0.8
	case similarity >= 0.7:
		return 0.5
	case similarity >= 0.5:
		return 0.2
	case similarity >= 0.3:
		return 0.0
	default:
		return -0.5
	}
}

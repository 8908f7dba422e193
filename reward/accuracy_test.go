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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketize(t *testing.T) {
	tests := []struct {
		similarity float64
		want       float64
	}{
		{1.0, 1.0},
		{0.98, 1.0},
		{0.979, 0.8},
		{0.85, 0.8},
		{0.849, 0.5},
		{0.7, 0.5},
		{0.699, 0.2},
		{0.5, 0.2},
		{0.499, 0.0},
		{0.3, 0.0},
		{0.299, -0.5},
		{0.0, -0.5},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("similarity %v", tt.similarity), func(t *testing.T) {
			assert.InDelta(t, tt.want, bucketize(tt.similarity), delta)
		})
	}
}

func TestAccuracyGroundTruthBeatsResponseErrors(t *testing.T) {
	// A broken ground truth yields -0.5 regardless of the response.
	engine := newTestEngine(t)
	assert.InDelta(t, -0.5, engine.Accuracy("Answer: "+toasterGroundTruth, "{broken"), delta)
	assert.InDelta(t, -0.5, engine.Accuracy("no answer", "{broken"), delta)
	assert.InDelta(t, -0.5, engine.Accuracy("no answer", "[1, 2]"), delta)
}

func TestAccuracyToleratesGroundTruthWhitespace(t *testing.T) {
	engine := newTestEngine(t)
	got := engine.Accuracy("Answer: "+toasterGroundTruth, "\n  "+toasterGroundTruth+"\t\n")
	assert.InDelta(t, 1.0, got, delta)
}

//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

package rewardresult

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-graph-reward/reward"
)

// scoredResult builds a CaseResult the way the scoring engine would: full
// format score, no length penalty, overall derived from the 0.2 format weight.
func scoredResult(caseID string, attempt int, accuracy float64) *CaseResult {
	return &CaseResult{
		CaseID:         caseID,
		Attempt:        attempt,
		ResponseLength: 120,
		Reward: reward.Record{
			Overall:            0.2 + 0.8*accuracy,
			Format:             1.0,
			Accuracy:           accuracy,
			Overlong:           0.0,
			AccuracyNormalized: 0.5 * (accuracy + 1.0),
		},
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, 1)
	assert.Zero(t, summary.NumResponses)
	assert.Nil(t, summary.AccuracyCounts)
	assert.Nil(t, summary.PassRates)

	summary = Summarize(&BatchResult{}, 1)
	assert.Zero(t, summary.NumResponses)
}

func TestSummarizeMeansAndCounts(t *testing.T) {
	batch := &BatchResult{
		CaseResults: []*CaseResult{
			scoredResult("case-a", 0, 1.0),
			scoredResult("case-a", 1, 0.0),
			scoredResult("case-b", 0, 0.8),
			scoredResult("case-b", 1, -0.5),
		},
	}
	summary := Summarize(batch)

	assert.Equal(t, 2, summary.NumCases)
	assert.Equal(t, 4, summary.NumResponses)
	assert.Equal(t, 1, summary.NumSolved)
	assert.Equal(t, 4, summary.NumFormatted)
	assert.InDelta(t, 0.325, summary.MeanAccuracy, 1e-12)
	assert.InDelta(t, 0.6625, summary.MeanAccuracyNormalized, 1e-12)
	assert.InDelta(t, 1.0, summary.MeanFormat, 1e-12)
	assert.InDelta(t, 0.2+0.8*0.325, summary.MeanOverall, 1e-12)
	assert.InDelta(t, 0.0, summary.MeanOverlong, 1e-12)

	require.NotNil(t, summary.AccuracyCounts)
	assert.Equal(t, 1, summary.AccuracyCounts.Full)
	assert.Equal(t, 1, summary.AccuracyCounts.High)
	assert.Equal(t, 0, summary.AccuracyCounts.Medium)
	assert.Equal(t, 0, summary.AccuracyCounts.Low)
	assert.Equal(t, 1, summary.AccuracyCounts.Zero)
	assert.Equal(t, 1, summary.AccuracyCounts.Penalty)

	assert.Nil(t, summary.PassRates)
}

func TestSummarizePassRates(t *testing.T) {
	batch := &BatchResult{
		CaseResults: []*CaseResult{
			scoredResult("case-a", 0, 1.0),
			scoredResult("case-a", 1, 0.0),
			scoredResult("case-b", 0, 0.0),
			scoredResult("case-b", 1, 0.2),
		},
	}
	summary := Summarize(batch, 2, 1, 1, 0, -3)

	require.Len(t, summary.PassRates, 2)
	assert.Equal(t, 1, summary.PassRates[0].K)
	// case-a solves 1 of 2 draws, case-b none: (0.5 + 0) / 2.
	assert.InDelta(t, 0.25, summary.PassRates[0].Rate, 1e-12)
	assert.Equal(t, 2, summary.PassRates[1].K)
	// Drawing both responses of case-a always includes the solved one.
	assert.InDelta(t, 0.5, summary.PassRates[1].Rate, 1e-12)
}

func TestSummarizePassRateSkipsShortCases(t *testing.T) {
	batch := &BatchResult{
		CaseResults: []*CaseResult{
			scoredResult("case-a", 0, 1.0),
		},
	}
	summary := Summarize(batch, 1, 2)

	require.Len(t, summary.PassRates, 1)
	assert.Equal(t, 1, summary.PassRates[0].K)
	assert.InDelta(t, 1.0, summary.PassRates[0].Rate, 1e-12)
}

func TestSummarizeSkipsNilCaseResults(t *testing.T) {
	batch := &BatchResult{
		CaseResults: []*CaseResult{
			nil,
			scoredResult("case-a", 0, 0.5),
		},
	}
	summary := Summarize(batch)
	assert.Equal(t, 1, summary.NumCases)
	assert.Equal(t, 1, summary.NumResponses)
	assert.Equal(t, 1, summary.AccuracyCounts.Medium)
}

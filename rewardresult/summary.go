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
	"sort"

	"trpc.group/trpc-go/trpc-graph-reward/reward"
)

// BatchSummary aggregates a batch result for easier inspection.
type BatchSummary struct {
	// NumCases is the number of distinct scene cases scored.
	NumCases int `json:"numCases,omitempty"`
	// NumResponses is the total number of scored responses.
	NumResponses int `json:"numResponses,omitempty"`
	// NumSolved counts responses that reached the full accuracy reward.
	NumSolved int `json:"numSolved,omitempty"`
	// NumFormatted counts responses that passed every format check.
	NumFormatted int `json:"numFormatted,omitempty"`
	// MeanOverall is the mean overall reward across responses.
	MeanOverall float64 `json:"meanOverall"`
	// MeanFormat is the mean format score across responses.
	MeanFormat float64 `json:"meanFormat"`
	// MeanAccuracy is the mean accuracy reward across responses.
	MeanAccuracy float64 `json:"meanAccuracy"`
	// MeanAccuracyNormalized is the mean normalized accuracy across responses.
	MeanAccuracyNormalized float64 `json:"meanAccuracyNormalized"`
	// MeanOverlong is the mean length penalty across responses.
	MeanOverlong float64 `json:"meanOverlong"`
	// AccuracyCounts is a histogram of the discrete accuracy reward tiers.
	AccuracyCounts *AccuracyCounts `json:"accuracyCounts,omitempty"`
	// PassRates contains pass@k estimates across cases, ascending in k.
	PassRates []*PassRate `json:"passRates,omitempty"`
}

// AccuracyCounts records a histogram of the accuracy reward tiers.
type AccuracyCounts struct {
	// Full counts responses that reached the full accuracy reward.
	Full int `json:"full,omitempty"`
	// High counts responses in the 0.8 tier.
	High int `json:"high,omitempty"`
	// Medium counts responses in the 0.5 tier.
	Medium int `json:"medium,omitempty"`
	// Low counts responses in the 0.2 tier.
	Low int `json:"low,omitempty"`
	// Zero counts responses in the 0.0 tier.
	Zero int `json:"zero,omitempty"`
	// Penalty counts responses that received the negative reward.
	Penalty int `json:"penalty,omitempty"`
}

// PassRate is the pass@k estimate for one k.
type PassRate struct {
	// K is the number of draws per case.
	K int `json:"k,omitempty"`
	// Rate is the estimated probability that at least one of k draws from a
	// case's responses is solved, averaged over the eligible cases.
	Rate float64 `json:"rate"`
}

// caseGroup tracks the attempts of one scene case across the batch.
type caseGroup struct {
	attempts int
	solved   int
}

// Summarize computes aggregate statistics for a batch result. Pass rates are
// estimated for each requested k; a case contributes to pass@k only when it
// has at least k responses, and a k with no eligible cases is omitted.
func Summarize(batchResult *BatchResult, passKs ...int) *BatchSummary {
	summary := &BatchSummary{}
	if batchResult == nil || len(batchResult.CaseResults) == 0 {
		return summary
	}
	groups := make(map[string]*caseGroup)
	order := []string{}
	counts := &AccuracyCounts{}
	for _, caseResult := range batchResult.CaseResults {
		if caseResult == nil {
			continue
		}
		summary.NumResponses++
		summary.MeanOverall += caseResult.Reward.Overall
		summary.MeanFormat += caseResult.Reward.Format
		summary.MeanAccuracy += caseResult.Reward.Accuracy
		summary.MeanAccuracyNormalized += caseResult.Reward.AccuracyNormalized
		summary.MeanOverlong += caseResult.Reward.Overlong
		if caseResult.Reward.Formatted() {
			summary.NumFormatted++
		}
		countAccuracy(counts, caseResult.Reward.Accuracy)
		group, ok := groups[caseResult.CaseID]
		if !ok {
			group = &caseGroup{}
			groups[caseResult.CaseID] = group
			order = append(order, caseResult.CaseID)
		}
		group.attempts++
		if caseResult.Reward.Solved() {
			summary.NumSolved++
			group.solved++
		}
	}
	if summary.NumResponses == 0 {
		return summary
	}
	n := float64(summary.NumResponses)
	summary.NumCases = len(groups)
	summary.MeanOverall /= n
	summary.MeanFormat /= n
	summary.MeanAccuracy /= n
	summary.MeanAccuracyNormalized /= n
	summary.MeanOverlong /= n
	summary.AccuracyCounts = counts
	summary.PassRates = passRates(groups, order, passKs)
	return summary
}

// countAccuracy buckets one accuracy reward. The reward takes discrete tier
// values, so range checks only guard against float drift.
func countAccuracy(counts *AccuracyCounts, accuracy float64) {
	switch {
	case accuracy >= 1.0:
		counts.Full++
	case accuracy >= 0.8:
		counts.High++
	case accuracy >= 0.5:
		counts.Medium++
	case accuracy >= 0.2:
		counts.Low++
	case accuracy >= 0.0:
		counts.Zero++
	default:
		counts.Penalty++
	}
}

// passRates averages the per-case pass@k estimates for each requested k.
func passRates(groups map[string]*caseGroup, order []string, passKs []int) []*PassRate {
	ks := []int{}
	seen := make(map[int]struct{})
	for _, k := range passKs {
		if k <= 0 {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		ks = append(ks, k)
	}
	sort.Ints(ks)
	rates := []*PassRate{}
	for _, k := range ks {
		var sum float64
		var eligible int
		for _, caseID := range order {
			group := groups[caseID]
			if group.attempts < k {
				continue
			}
			rate, err := reward.PassAtK(group.attempts, group.solved, k)
			if err != nil {
				continue
			}
			sum += rate
			eligible++
		}
		if eligible == 0 {
			continue
		}
		rates = append(rates, &PassRate{K: k, Rate: sum / float64(eligible)})
	}
	if len(rates) == 0 {
		return nil
	}
	return rates
}

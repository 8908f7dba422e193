//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

package reward

// OverlongPenalty computes the soft length penalty for a response of
// responseLength runes. Responses within the expected length, max minus
// buffer, cost nothing. Inside the buffer zone the penalty falls linearly
// from 0 to -1; beyond maxResponseLength it is capped at -1.
func OverlongPenalty(responseLength, maxResponseLength, bufferLength int) float64 {
	expected := maxResponseLength - bufferLength
	if responseLength <= expected {
		return 0.0
	}
	if responseLength <= maxResponseLength {
		return float64(expected-responseLength) / float64(bufferLength)
	}
	return -1.0
}

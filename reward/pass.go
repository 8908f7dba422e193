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
	"math"
)

// PassAtK estimates pass@k from a rollout group: the probability that at
// least one of k outputs drawn from the n observed samples is solved, where
// c of the n samples were solved (accuracy reached full reward).
//
// It uses the unbiased estimator
//
//	pass@k = 1 - C(n-c, k) / C(n, k)
//
// computed in log-space via math.Lgamma so large n does not overflow:
//
//	logP = ln((n-c)!) + ln((n-k)!) - ln((n-c-k)!) - ln(n!)
//	pass@k = -expm1(logP)
//
// The estimator assumes the n samples are independent draws for the same
// prompt. Constraints: n >= 0, 0 <= c <= n, 1 <= k <= n. If c == 0 the
// result is 0; if fewer than k failures exist the result is 1.
func PassAtK(n, c, k int) (float64, error) {
	if n < 0 {
		return 0.0, fmt.Errorf("n must be >= 0")
	}
	if k <= 0 {
		return 0.0, fmt.Errorf("k must be >= 1")
	}
	if c < 0 {
		return 0.0, fmt.Errorf("c must be >= 0")
	}
	if c > n {
		return 0.0, fmt.Errorf("c cannot exceed n")
	}
	if k > n {
		return 0.0, fmt.Errorf("k cannot exceed n")
	}
	if c == 0 {
		return 0.0, nil
	}
	// Fewer than k failures exist, so any draw of k contains a success.
	if n-c < k {
		return 1.0, nil
	}
	nf := float64(n)
	cf := float64(c)
	kf := float64(k)
	a, _ := math.Lgamma(nf - cf + 1)
	b, _ := math.Lgamma(nf - kf + 1)
	d, _ := math.Lgamma(nf - cf - kf + 1)
	e, _ := math.Lgamma(nf + 1)
	logP := a + b - d - e
	// 1 - exp(x) == -expm1(x), which keeps precision when logP is near zero.
	return -math.Expm1(logP), nil
}

// PassHatK estimates pass^k from a rollout group: the probability that k
// independent outputs are all solved, given c solved among n observed
// samples. The single-run success probability is estimated as p = c/n and
// raised to the k-th power in log-space. Where PassAtK measures peak
// capability, PassHatK measures consistency.
//
// Constraints: n > 0, 0 <= c <= n, k >= 1.
func PassHatK(n, c, k int) (float64, error) {
	if n <= 0 {
		return 0.0, fmt.Errorf("n must be > 0")
	}
	if k <= 0 {
		return 0.0, fmt.Errorf("k must be >= 1")
	}
	if c < 0 {
		return 0.0, fmt.Errorf("c must be >= 0")
	}
	if c > n {
		return 0.0, fmt.Errorf("c cannot exceed n")
	}
	if c == 0 {
		return 0.0, nil
	}
	if c == n {
		return 1.0, nil
	}
	p := float64(c) / float64(n)
	return math.Exp(float64(k) * math.Log(p)), nil
}

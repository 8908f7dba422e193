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

func TestOverlongPenalty(t *testing.T) {
	tests := []struct {
		length, max, buffer int
		want                float64
	}{
		{0, 100, 20, 0.0},
		{80, 100, 20, 0.0},
		{81, 100, 20, -0.05},
		{90, 100, 20, -0.5},
		{99, 100, 20, -0.95},
		{100, 100, 20, -1.0},
		{101, 100, 20, -1.0},
		{150, 100, 20, -1.0},
		{512, 4096, 512, 0.0},
		{3840, 4096, 512, -0.5},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("len %d of %d", tt.length, tt.max), func(t *testing.T) {
			assert.InDelta(t, tt.want, OverlongPenalty(tt.length, tt.max, tt.buffer), delta)
		})
	}
}

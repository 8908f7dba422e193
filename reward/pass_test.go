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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassAtK(t *testing.T) {
	tests := []struct {
		name    string
		n, c, k int
		want    float64
	}{
		{"single solved run", 1, 1, 1, 1.0},
		{"no solved runs", 4, 0, 2, 0.0},
		{"half solved k1", 10, 5, 1, 0.5},
		{"half solved k2", 4, 2, 2, 1.0 - 1.0/6.0},
		{"all solved", 8, 8, 4, 1.0},
		{"fewer failures than k", 5, 4, 2, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PassAtK(tt.n, tt.c, tt.k)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPassAtKRejectsBadArguments(t *testing.T) {
	for _, args := range [][3]int{
		{-1, 0, 1},
		{4, -1, 1},
		{4, 5, 1},
		{4, 2, 0},
		{4, 2, 5},
	} {
		_, err := PassAtK(args[0], args[1], args[2])
		assert.Error(t, err, "args %v", args)
	}
}

func TestPassHatK(t *testing.T) {
	tests := []struct {
		name    string
		n, c, k int
		want    float64
	}{
		{"half solved squared", 4, 2, 2, 0.25},
		{"all solved", 4, 4, 3, 1.0},
		{"none solved", 3, 0, 2, 0.0},
		{"half solved k1", 10, 5, 1, 0.5},
		{"quarter solved cubed", 4, 1, 3, 0.015625},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PassHatK(tt.n, tt.c, tt.k)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPassHatKRejectsBadArguments(t *testing.T) {
	for _, args := range [][3]int{
		{0, 0, 1},
		{4, -1, 1},
		{4, 5, 1},
		{4, 2, 0},
	} {
		_, err := PassHatK(args[0], args[1], args[2])
		assert.Error(t, err, "args %v", args)
	}
}

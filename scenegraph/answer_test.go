//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

package scenegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractToasterAnswer(t *testing.T) {
	payload, ok := NewExtractor().Extract(toasterResponse())
	require.True(t, ok)
	assert.Equal(t, "insert", payload["action_type"])
	assert.Equal(t, "Power on the toaster.", payload["task_instruction"])
}

func TestExtractLabelVariants(t *testing.T) {
	tests := []struct {
		name     string
		response string
		ok       bool
	}{
		{"plain label", `Answer: {"a": 1}`, true},
		{"no space after colon", `Answer:{"a": 1}`, true},
		{"space before colon", `Answer : {"a": 1}`, true},
		{"newline between colon and payload", "Answer:\n{\"a\": 1}", true},
		{"payload on later line", "thinking...\n\nAnswer: {\"a\": 1}\n", true},
		{"missing label", `{"a": 1}`, false},
		{"label without payload", "Answer: none", false},
		{"lowercase label", `answer: {"a": 1}`, false},
		{"empty response", "", false},
		{"label only", "Answer:", false},
		{"invalid payload", `Answer: {"a": }`, false},
		{"array payload", `Answer: [1, 2]`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := NewExtractor().Extract(tt.response)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestExtractSkipsBracelessLabel(t *testing.T) {
	// The first label carries no payload, so the capture anchors on the second.
	response := "Answer: not yet\nAnswer: {\"a\": 1}"
	payload, ok := NewExtractor().Extract(response)
	require.True(t, ok)
	assert.Equal(t, 1.0, payload["a"])
}

func TestExtractGreedySpansToLastBrace(t *testing.T) {
	// Greedy capture runs to the last closing brace, so a second payload
	// poisons the first and nothing parses.
	response := "Answer: {\"a\": 1}\nAnswer: {\"b\": 2}"
	_, ok := NewExtractor().Extract(response)
	assert.False(t, ok)
}

func TestExtractGreedyIgnoresTrailingProse(t *testing.T) {
	// Prose after the last brace is outside the capture.
	payload, ok := NewExtractor().Extract(`Answer: {"a": 1} and that is final.`)
	require.True(t, ok)
	assert.Equal(t, 1.0, payload["a"])
}

func TestExtractBalancedStopsAtMatchingBrace(t *testing.T) {
	extractor := NewExtractor(WithExtractStrategy(ExtractStrategyBalanced))

	payload, ok := extractor.Extract("Answer: {\"a\": 1}\nAnswer: {\"b\": 2}")
	require.True(t, ok)
	assert.Equal(t, 1.0, payload["a"])

	payload, ok = extractor.Extract(`Answer: {"nested": {"deep": true}} trailing`)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"deep": true}, payload["nested"])
}

func TestExtractBalancedHonorsStringLiterals(t *testing.T) {
	extractor := NewExtractor(WithExtractStrategy(ExtractStrategyBalanced))
	payload, ok := extractor.Extract(`Answer: {"text": "a \" and a } inside"} rest`)
	require.True(t, ok)
	assert.Equal(t, `a " and a } inside`, payload["text"])
}

func TestExtractBalancedRejectsUnbalanced(t *testing.T) {
	extractor := NewExtractor(WithExtractStrategy(ExtractStrategyBalanced))
	_, ok := extractor.Extract(`Answer: {"a": {"b": 1}`)
	assert.False(t, ok)
}

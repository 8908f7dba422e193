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

// toasterGroundTruth is the reference scene used throughout the package tests.
const toasterGroundTruth = `{
  "task_instruction": "Power on the toaster.",
  "nodes": ["electric outlet", "toaster"],
  "edges": [
    {
      "functional_relationship": "providepower",
      "object1": "electric outlet",
      "object2": "toaster",
      "spatial_relations": ["higher_than", "right_of", "in_front_of", "close"],
      "is_touching": false
    }
  ],
  "action_type": "insert",
  "function_type": "power_supply"
}`

// toasterResponse wraps the ground truth in a typical model response.
func toasterResponse() string {
	return "Let me analyze the scene step by step.\n\nAnswer: " + toasterGroundTruth
}

func TestParseGraphToaster(t *testing.T) {
	graph, err := ParseGraph(toasterGroundTruth)
	require.NoError(t, err)
	require.NotNil(t, graph)
	assert.Equal(t, "Power on the toaster.", graph.TaskInstruction)
	assert.Equal(t, []string{"electric outlet", "toaster"}, graph.Nodes)
	assert.Equal(t, "insert", graph.ActionType)
	assert.Equal(t, "power_supply", graph.FunctionType)
	require.Len(t, graph.Edges, 1)
	edge := graph.Edges[0]
	assert.Equal(t, "providepower", edge.FunctionalRelationship)
	assert.Equal(t, "electric outlet", edge.Object1)
	assert.Equal(t, "toaster", edge.Object2)
	assert.Equal(t, []string{"higher_than", "right_of", "in_front_of", "close"}, edge.SpatialRelations)
	assert.False(t, edge.IsTouching)
}

func TestParseGraphTrimsWhitespace(t *testing.T) {
	graph, err := ParseGraph("\n\t  " + toasterGroundTruth + "  \n")
	require.NoError(t, err)
	assert.Equal(t, "insert", graph.ActionType)
}

func TestParseGraphRejectsInvalidJSON(t *testing.T) {
	_, err := ParseGraph(`{"task_instruction": "broken"`)
	require.Error(t, err)
}

func TestParseGraphRejectsNonObject(t *testing.T) {
	_, err := ParseGraph(`["not", "an", "object"]`)
	require.Error(t, err)
}

func TestDecodeGraphDefaults(t *testing.T) {
	graph := DecodeGraph(map[string]any{})
	require.NotNil(t, graph)
	assert.Empty(t, graph.TaskInstruction)
	assert.Empty(t, graph.Nodes)
	assert.Empty(t, graph.Edges)
	assert.Empty(t, graph.ActionType)
	assert.Empty(t, graph.FunctionType)
}

func TestDecodeGraphNilPayload(t *testing.T) {
	assert.Nil(t, DecodeGraph(nil))
}

func TestDecodeGraphMistypedFields(t *testing.T) {
	graph := DecodeGraph(map[string]any{
		"task_instruction": 42.0,
		"nodes":            "not a list",
		"edges":            []any{"not an object"},
		"action_type":      true,
	})
	assert.Empty(t, graph.TaskInstruction)
	assert.Empty(t, graph.Nodes)
	assert.Empty(t, graph.ActionType)
	// A non-object edge entry still occupies one slot.
	require.Len(t, graph.Edges, 1)
	assert.Equal(t, &Edge{}, graph.Edges[0])
}

func TestDecodeGraphNonStringNodes(t *testing.T) {
	graph := DecodeGraph(map[string]any{
		"nodes": []any{"toaster", 7.0, true},
	})
	assert.Equal(t, []string{"toaster", "7", "true"}, graph.Nodes)
}

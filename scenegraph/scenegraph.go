//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

// Package scenegraph defines the scene graph data model shared by the reward
// engine: graph and edge types, the field vocabularies, answer extraction and
// format validation for model responses.
package scenegraph

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Field names of the scene graph wire format.
const (
	fieldTaskInstruction        = "task_instruction"
	fieldNodes                  = "nodes"
	fieldEdges                  = "edges"
	fieldActionType             = "action_type"
	fieldFunctionType           = "function_type"
	fieldFunctionalRelationship = "functional_relationship"
	fieldObject1                = "object1"
	fieldObject2                = "object2"
	fieldSpatialRelations       = "spatial_relations"
	fieldIsTouching             = "is_touching"
)

// SceneGraph describes one manipulation scene: the objects involved, the
// pairwise relations between them and the action that fulfils the task
// instruction.
type SceneGraph struct {
	// TaskInstruction is the natural language instruction for the scene.
	TaskInstruction string `json:"task_instruction"`
	// Nodes lists the object labels appearing in the scene.
	Nodes []string `json:"nodes"`
	// Edges lists the pairwise object relations.
	Edges []*Edge `json:"edges"`
	// ActionType is the manipulation primitive, one of the action vocabulary.
	ActionType string `json:"action_type"`
	// FunctionType is a free-form description of the object function involved.
	FunctionType string `json:"function_type"`
}

// Edge describes the relation between two objects of a scene.
type Edge struct {
	// FunctionalRelationship is one of the functional relationship vocabulary.
	FunctionalRelationship string `json:"functional_relationship"`
	// Object1 and Object2 are the endpoint object labels. The pair is
	// logically unordered.
	Object1 string `json:"object1"`
	Object2 string `json:"object2"`
	// SpatialRelations lists relations of Object1 relative to Object2.
	SpatialRelations []string `json:"spatial_relations"`
	// IsTouching reports whether the two objects are in contact.
	IsTouching bool `json:"is_touching"`
}

// ParseGraph parses a JSON document into a SceneGraph. Surrounding whitespace
// is tolerated. The document must be a JSON object; any shape inside it is
// accepted and decoded permissively, see DecodeGraph.
func ParseGraph(raw string) (*SceneGraph, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &payload); err != nil {
		return nil, fmt.Errorf("parse scene graph: %w", err)
	}
	return DecodeGraph(payload), nil
}

// DecodeGraph materializes a SceneGraph from a generic JSON object. Decoding
// is permissive: missing or mistyped fields fall back to zero values so that
// similarity scoring can degrade field by field instead of failing outright.
// Use Validator to reject malformed payloads up front.
func DecodeGraph(payload map[string]any) *SceneGraph {
	if payload == nil {
		return nil
	}
	graph := &SceneGraph{
		TaskInstruction: stringField(payload, fieldTaskInstruction),
		Nodes:           stringList(payload[fieldNodes]),
		ActionType:      stringField(payload, fieldActionType),
		FunctionType:    stringField(payload, fieldFunctionType),
	}
	items, ok := payload[fieldEdges].([]any)
	if !ok {
		return graph
	}
	graph.Edges = make([]*Edge, 0, len(items))
	for _, item := range items {
		fields, _ := item.(map[string]any)
		graph.Edges = append(graph.Edges, decodeEdge(fields))
	}
	return graph
}

// decodeEdge materializes an Edge with zero-value defaults. A non-object edge
// entry decodes to an empty Edge so that edge counts stay aligned with the
// raw document.
func decodeEdge(fields map[string]any) *Edge {
	if fields == nil {
		return &Edge{}
	}
	return &Edge{
		FunctionalRelationship: stringField(fields, fieldFunctionalRelationship),
		Object1:                stringField(fields, fieldObject1),
		Object2:                stringField(fields, fieldObject2),
		SpatialRelations:       stringList(fields[fieldSpatialRelations]),
		IsTouching:             boolField(fields, fieldIsTouching),
	}
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}

func boolField(fields map[string]any, key string) bool {
	b, _ := fields[key].(bool)
	return b
}

// stringList converts a JSON array into labels. String members are used as
// is. Non-string members keep their compact JSON encoding so that they still
// occupy a distinct set slot without ever colliding with a genuine label.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	labels := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			labels = append(labels, s)
			continue
		}
		encoded, err := json.Marshal(item)
		if err != nil {
			labels = append(labels, fmt.Sprintf("%v", item))
			continue
		}
		labels = append(labels, string(encoded))
	}
	return labels
}

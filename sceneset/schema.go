//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

package sceneset

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"trpc.group/trpc-go/trpc-graph-reward/scenegraph"
)

// graphSchema validates ground truth scene graphs before they are stored.
// Model responses are never validated against it; scoring stays permissive.
var graphSchema = jsonschema.MustCompileString("scenegraph.schema.json", schemaDocument())

// schemaDocument renders the scene graph JSON Schema. The enum members come
// from the scenegraph vocabularies so the schema cannot drift from them.
func schemaDocument() string {
	enumOf := func(values []string) map[string]any {
		members := make([]any, 0, len(values))
		for _, value := range values {
			members = append(members, value)
		}
		return map[string]any{"type": "string", "enum": members}
	}
	edge := map[string]any{
		"type": "object",
		"required": []any{
			"functional_relationship", "object1", "object2",
			"spatial_relations", "is_touching",
		},
		"properties": map[string]any{
			"functional_relationship": enumOf(scenegraph.FunctionalRelationships()),
			"object1":                 map[string]any{"type": "string"},
			"object2":                 map[string]any{"type": "string"},
			"spatial_relations": map[string]any{
				"type":  "array",
				"items": enumOf(scenegraph.SpatialRelations()),
			},
			"is_touching": map[string]any{"type": "boolean"},
		},
	}
	document := map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    "object",
		"required": []any{
			"task_instruction", "nodes", "edges", "action_type", "function_type",
		},
		"properties": map[string]any{
			"task_instruction": map[string]any{"type": "string"},
			"nodes": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"edges": map[string]any{
				"type":  "array",
				"items": edge,
			},
			"action_type":   enumOf(scenegraph.ActionTypes()),
			"function_type": map[string]any{"type": "string"},
		},
	}
	payload, err := json.Marshal(document)
	if err != nil {
		panic(fmt.Sprintf("render scene graph schema: %v", err))
	}
	return string(payload)
}

// NormalizeGroundTruth folds legacy functional relationship spellings onto
// the vocabulary and replaces nil collections with empty ones, in place.
// Normalization happens once at ingest; scoring assumes canonical graphs.
func NormalizeGroundTruth(graph *scenegraph.SceneGraph) {
	if graph == nil {
		return
	}
	if graph.Nodes == nil {
		graph.Nodes = []string{}
	}
	if graph.Edges == nil {
		graph.Edges = []*scenegraph.Edge{}
	}
	for _, edge := range graph.Edges {
		if edge == nil {
			continue
		}
		edge.FunctionalRelationship = scenegraph.CanonicalFunctionalRelationship(edge.FunctionalRelationship)
		if edge.SpatialRelations == nil {
			edge.SpatialRelations = []string{}
		}
	}
}

// ValidateGroundTruth checks a ground truth scene graph against the scene
// graph schema. Call NormalizeGroundTruth first so legacy spellings pass.
func ValidateGroundTruth(graph *scenegraph.SceneGraph) error {
	if graph == nil {
		return errors.New("ground truth is nil")
	}
	payload, err := json.Marshal(graph)
	if err != nil {
		return fmt.Errorf("marshal ground truth: %w", err)
	}
	var document any
	if err := json.Unmarshal(payload, &document); err != nil {
		return fmt.Errorf("unmarshal ground truth: %w", err)
	}
	if err := graphSchema.Validate(document); err != nil {
		return fmt.Errorf("validate ground truth: %w", err)
	}
	return nil
}

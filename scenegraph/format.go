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
	"errors"
	"fmt"
)

var (
	requiredGraphFields = []string{
		fieldTaskInstruction,
		fieldNodes,
		fieldEdges,
		fieldActionType,
		fieldFunctionType,
	}
	requiredEdgeFields = []string{
		fieldFunctionalRelationship,
		fieldObject1,
		fieldObject2,
		fieldSpatialRelations,
		fieldIsTouching,
	}
)

// Validator checks that a response carries a schema-conforming scene graph
// answer. The checks run in a fixed order and stop at the first violation.
type Validator struct {
	extractor *Extractor
}

// NewValidator creates a Validator on top of the given extractor. A nil
// extractor means the default greedy one. Sharing one extractor between the
// validator and the scoring path keeps the two from ever disagreeing on what
// the answer payload is.
func NewValidator(extractor *Extractor) *Validator {
	if extractor == nil {
		extractor = NewExtractor()
	}
	return &Validator{extractor: extractor}
}

// Validate returns nil when the response carries a well-formed answer payload
// and a descriptive error for the first check that fails.
func (v *Validator) Validate(response string) error {
	if !answerLabelPattern.MatchString(response) {
		return errors.New("missing answer label followed by an opening brace")
	}
	payload, ok := v.extractor.Extract(response)
	if !ok {
		return errors.New("answer payload is not a valid JSON object")
	}
	for _, field := range requiredGraphFields {
		if _, ok := payload[field]; !ok {
			return fmt.Errorf("missing required field %q", field)
		}
	}
	if _, ok := payload[fieldNodes].([]any); !ok {
		return fmt.Errorf("field %q must be an array", fieldNodes)
	}
	edges, ok := payload[fieldEdges].([]any)
	if !ok {
		return fmt.Errorf("field %q must be an array", fieldEdges)
	}
	if _, ok := payload[fieldTaskInstruction].(string); !ok {
		return fmt.Errorf("field %q must be a string", fieldTaskInstruction)
	}
	if actionType, ok := payload[fieldActionType].(string); !ok || !ValidActionType(actionType) {
		return fmt.Errorf("field %q must be one of %v", fieldActionType, ActionTypes())
	}
	for i, item := range edges {
		if err := validateEdge(i, item); err != nil {
			return err
		}
	}
	return nil
}

func validateEdge(i int, item any) error {
	edge, ok := item.(map[string]any)
	if !ok {
		return fmt.Errorf("edge %d must be an object", i)
	}
	for _, field := range requiredEdgeFields {
		if _, ok := edge[field]; !ok {
			return fmt.Errorf("edge %d misses required field %q", i, field)
		}
	}
	if rel, ok := edge[fieldFunctionalRelationship].(string); !ok || !ValidFunctionalRelationship(rel) {
		return fmt.Errorf("edge %d field %q must be one of %v",
			i, fieldFunctionalRelationship, FunctionalRelationships())
	}
	relations, ok := edge[fieldSpatialRelations].([]any)
	if !ok {
		return fmt.Errorf("edge %d field %q must be an array", i, fieldSpatialRelations)
	}
	for _, relation := range relations {
		if s, ok := relation.(string); !ok || !ValidSpatialRelation(s) {
			return fmt.Errorf("edge %d carries unsupported spatial relation %v", i, relation)
		}
	}
	if _, ok := edge[fieldIsTouching].(bool); !ok {
		return fmt.Errorf("edge %d field %q must be a boolean", i, fieldIsTouching)
	}
	return nil
}

// FormatScore maps Validate onto the binary format reward: 1.0 for a
// conforming response, 0.0 otherwise.
func (v *Validator) FormatScore(response string) float64 {
	if v.Validate(response) != nil {
		return 0.0
	}
	return 1.0
}

//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

// Package edge scores predicted scene graph edges against reference edges.
package edge

import (
	"trpc.group/trpc-go/trpc-graph-reward/reward/criterion/object"
	"trpc.group/trpc-go/trpc-graph-reward/scenegraph"
)

// components is the number of similarity components an edge pair is scored on.
const components = 4

// Criterion configures edge similarity scoring.
type Criterion struct {
	// Object configures endpoint matching. Nil compares exactly.
	Object *object.Criterion `json:"object,omitempty"`
}

// Similarity scores pred against ref in [0, 1] as the mean of four
// components: endpoint pair match, functional relationship match, spatial
// relation overlap and touching agreement. A nil edge on either side scores 0.
func (c *Criterion) Similarity(pred, ref *scenegraph.Edge) float64 {
	if pred == nil || ref == nil {
		return 0.0
	}
	var obj *object.Criterion
	if c != nil {
		obj = c.Object
	}
	total := 0.0
	if pairMatch(obj, pred, ref) {
		total += 1.0
	}
	if pred.FunctionalRelationship == ref.FunctionalRelationship {
		total += 1.0
	}
	total += spatialOverlap(pred.SpatialRelations, ref.SpatialRelations)
	if pred.IsTouching == ref.IsTouching {
		total += 1.0
	}
	return total / components
}

// pairMatch compares the endpoints as an unordered pair.
func pairMatch(obj *object.Criterion, pred, ref *scenegraph.Edge) bool {
	if obj.Match(pred.Object1, ref.Object1) && obj.Match(pred.Object2, ref.Object2) {
		return true
	}
	return obj.Match(pred.Object1, ref.Object2) && obj.Match(pred.Object2, ref.Object1)
}

// spatialOverlap is the Jaccard index of the two relation sets. An empty
// reference set contributes nothing, regardless of the prediction.
func spatialOverlap(pred, ref []string) float64 {
	refSet := toSet(ref)
	if len(refSet) == 0 {
		return 0.0
	}
	predSet := toSet(pred)
	intersection := 0
	for relation := range predSet {
		if _, ok := refSet[relation]; ok {
			intersection++
		}
	}
	union := len(predSet) + len(refSet) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

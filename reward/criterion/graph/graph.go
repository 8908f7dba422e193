//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

// Package graph scores predicted scene graphs against reference graphs.
package graph

import (
	"trpc.group/trpc-go/trpc-graph-reward/reward/criterion/edge"
	"trpc.group/trpc-go/trpc-graph-reward/scenegraph"
)

// components is the number of similarity components a graph pair is scored on.
const components = 5

// extraEdgePenalty is deducted from the edge component for every predicted
// edge beyond the reference edge count.
const extraEdgePenalty = 0.1

// Criterion configures graph similarity scoring.
type Criterion struct {
	// Edge configures how individual edges are compared. Nil means defaults.
	Edge *edge.Criterion `json:"edge,omitempty"`
}

// Similarity scores pred against ref in [0, 1] as the mean of five
// components: task instruction, action type and function type equality, node
// set overlap and edge set similarity. A nil graph on either side scores 0.
func (c *Criterion) Similarity(pred, ref *scenegraph.SceneGraph) float64 {
	if pred == nil || ref == nil {
		return 0.0
	}
	var edgeCriterion *edge.Criterion
	if c != nil {
		edgeCriterion = c.Edge
	}
	total := 0.0
	if pred.TaskInstruction == ref.TaskInstruction {
		total += 1.0
	}
	if pred.ActionType == ref.ActionType {
		total += 1.0
	}
	if pred.FunctionType == ref.FunctionType {
		total += 1.0
	}
	total += nodeOverlap(pred.Nodes, ref.Nodes)
	total += edgeSetScore(edgeCriterion, pred.Edges, ref.Edges)
	return total / components
}

// nodeOverlap is the Jaccard index of the two node label sets, so both
// missing and extra nodes cost score. An empty reference set contributes
// nothing.
func nodeOverlap(pred, ref []string) float64 {
	refSet := toSet(ref)
	if len(refSet) == 0 {
		return 0.0
	}
	predSet := toSet(pred)
	intersection := 0
	for label := range predSet {
		if _, ok := refSet[label]; ok {
			intersection++
		}
	}
	union := len(predSet) + len(refSet) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// edgeSetScore matches every reference edge with its best predicted
// counterpart and averages over the reference edge count. The match is not
// one-to-one: one predicted edge may serve several reference edges. Predicted
// edges in excess of the reference count are penalized linearly, floored at
// zero. An empty reference edge list contributes nothing.
func edgeSetScore(c *edge.Criterion, pred, ref []*scenegraph.Edge) float64 {
	if len(ref) == 0 {
		return 0.0
	}
	total := 0.0
	for _, refEdge := range ref {
		best := 0.0
		for _, predEdge := range pred {
			if similarity := c.Similarity(predEdge, refEdge); similarity > best {
				best = similarity
			}
		}
		total += best
	}
	score := total / float64(len(ref))
	if extra := len(pred) - len(ref); extra > 0 {
		score -= float64(extra) * extraEdgePenalty
		if score < 0 {
			score = 0.0
		}
	}
	return score
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

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
)

func TestVocabularyPredicates(t *testing.T) {
	assert.True(t, ValidActionType("insert"))
	assert.True(t, ValidActionType("rotate"))
	assert.False(t, ValidActionType("toggle"))
	assert.False(t, ValidActionType(""))

	assert.True(t, ValidFunctionalRelationship("providepower"))
	assert.False(t, ValidFunctionalRelationship("provide power"))

	assert.True(t, ValidSpatialRelation("in_front_of"))
	assert.True(t, ValidSpatialRelation("touching"))
	assert.False(t, ValidSpatialRelation("next_to"))
}

func TestCanonicalFunctionalRelationship(t *testing.T) {
	assert.Equal(t, "openorclose", CanonicalFunctionalRelationship("open or close"))
	assert.Equal(t, "openorclose", CanonicalFunctionalRelationship("openorclose"))
	assert.Equal(t, "providepower", CanonicalFunctionalRelationship("provide power"))
	assert.Equal(t, "adjust", CanonicalFunctionalRelationship("adjust"))
	// Unknown spellings pass through untouched.
	assert.Equal(t, "powers", CanonicalFunctionalRelationship("powers"))
}

func TestVocabularyAccessorsReturnCopies(t *testing.T) {
	actions := ActionTypes()
	assert.Equal(t, []string{"close", "insert", "open", "press", "pull", "push", "rotate"}, actions)
	actions[0] = "mutated"
	assert.Equal(t, []string{"close", "insert", "open", "press", "pull", "push", "rotate"}, ActionTypes())

	assert.Len(t, FunctionalRelationships(), 5)
	assert.Len(t, SpatialRelations(), 9)
}

//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

package scenegraph

import "sort"

// The vocabularies come from the annotated scene dataset. They are fixed at
// process start; callers observe them only through the predicates and the
// copying accessors below.
var (
	validActionTypes = map[string]struct{}{
		"press":  {},
		"rotate": {},
		"pull":   {},
		"open":   {},
		"push":   {},
		"close":  {},
		"insert": {},
	}
	validFunctionalRelationships = map[string]struct{}{
		"openorclose":  {},
		"adjust":       {},
		"control":      {},
		"providepower": {},
		"activate":     {},
	}
	validSpatialRelations = map[string]struct{}{
		"left_of":     {},
		"right_of":    {},
		"in_front_of": {},
		"behind":      {},
		"higher_than": {},
		"lower_than":  {},
		"close":       {},
		"far":         {},
		"touching":    {},
	}
	// canonicalFunctionalRelationships folds legacy multi-word spellings onto
	// the vocabulary members. Canonical members map to themselves.
	canonicalFunctionalRelationships = map[string]string{
		"open or close": "openorclose",
		"openorclose":   "openorclose",
		"adjust":        "adjust",
		"control":       "control",
		"provide power": "providepower",
		"providepower":  "providepower",
		"activate":      "activate",
	}
)

// ValidActionType reports whether s is a supported manipulation action type.
func ValidActionType(s string) bool {
	_, ok := validActionTypes[s]
	return ok
}

// ValidFunctionalRelationship reports whether s is a supported functional
// relationship between two objects.
func ValidFunctionalRelationship(s string) bool {
	_, ok := validFunctionalRelationships[s]
	return ok
}

// ValidSpatialRelation reports whether s is a supported spatial relation.
func ValidSpatialRelation(s string) bool {
	_, ok := validSpatialRelations[s]
	return ok
}

// CanonicalFunctionalRelationship folds legacy spellings such as
// "open or close" onto their vocabulary member. Unknown values pass through
// unchanged.
func CanonicalFunctionalRelationship(s string) string {
	if canonical, ok := canonicalFunctionalRelationships[s]; ok {
		return canonical
	}
	return s
}

// ActionTypes returns the action type vocabulary as a sorted copy.
func ActionTypes() []string {
	return sortedKeys(validActionTypes)
}

// FunctionalRelationships returns the functional relationship vocabulary as a
// sorted copy.
func FunctionalRelationships() []string {
	return sortedKeys(validFunctionalRelationships)
}

// SpatialRelations returns the spatial relation vocabulary as a sorted copy.
func SpatialRelations() []string {
	return sortedKeys(validSpatialRelations)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

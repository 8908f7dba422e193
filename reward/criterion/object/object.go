//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

// Package object matches scene object labels.
//
// Annotators sometimes list several names for one physical object inside a
// single label, separated by a slash, e.g. "faucet / handle". The alias
// strategy treats such a label as matching any of its names.
package object

import "strings"

// MatchStrategy selects how two object labels are compared.
type MatchStrategy string

const (
	// MatchStrategyExact compares labels as opaque strings. This is the
	// default.
	MatchStrategyExact MatchStrategy = "exact"
	// MatchStrategyAlias splits labels on AliasSeparator and matches when the
	// alias sets share a member.
	MatchStrategyAlias MatchStrategy = "alias"
)

// AliasSeparator separates alternative names inside one object label.
const AliasSeparator = "/"

// Criterion configures object label matching.
type Criterion struct {
	// MatchStrategy selects the comparison. Empty falls back to
	// MatchStrategyExact.
	MatchStrategy MatchStrategy `json:"matchStrategy,omitempty"`
	// Compare overrides the built-in strategies entirely. Optional.
	Compare func(a, b string) bool `json:"-"`
}

// Match reports whether the two labels refer to the same object. A nil
// criterion compares exactly.
func (c *Criterion) Match(a, b string) bool {
	if c == nil {
		return a == b
	}
	if c.Compare != nil {
		return c.Compare(a, b)
	}
	switch c.MatchStrategy {
	case MatchStrategyAlias:
		return aliasMatch(a, b)
	default:
		return a == b
	}
}

// aliasMatch reports whether the alias sets of the two labels intersect.
func aliasMatch(a, b string) bool {
	aliases := aliasSet(a)
	for alias := range aliasSet(b) {
		if _, ok := aliases[alias]; ok {
			return true
		}
	}
	return false
}

// aliasSet splits a label on AliasSeparator and trims the whitespace around
// every alias.
func aliasSet(label string) map[string]struct{} {
	parts := strings.Split(label, AliasSeparator)
	set := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		set[strings.TrimSpace(part)] = struct{}{}
	}
	return set
}

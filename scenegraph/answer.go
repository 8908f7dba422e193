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
	"encoding/json"
	"regexp"
	"strings"
)

// ExtractStrategy selects how the answer payload is captured from the
// response text.
type ExtractStrategy string

const (
	// ExtractStrategyGreedy captures from the opening brace after the answer
	// label through the last closing brace of the text, newlines included.
	// This is the default.
	ExtractStrategyGreedy ExtractStrategy = "greedy"
	// ExtractStrategyBalanced captures the first brace-balanced JSON object
	// after the answer label, so trailing prose after the payload does not
	// break the parse.
	ExtractStrategyBalanced ExtractStrategy = "balanced"
)

var (
	// answerPattern captures the payload in greedy mode.
	answerPattern = regexp.MustCompile(`(?s)Answer\s*:\s*(\{.*\})`)
	// answerLabelPattern detects the answer label ahead of an opening brace.
	answerLabelPattern = regexp.MustCompile(`Answer\s*:\s*\{`)
)

// Extractor pulls the structured answer payload out of free-form response
// text. The payload is expected after an "Answer:" label as a JSON object.
type Extractor struct {
	strategy ExtractStrategy
}

// ExtractOption configures an Extractor.
type ExtractOption func(*Extractor)

// WithExtractStrategy sets the capture strategy. Unknown values fall back to
// ExtractStrategyGreedy.
func WithExtractStrategy(strategy ExtractStrategy) ExtractOption {
	return func(e *Extractor) {
		e.strategy = strategy
	}
}

// NewExtractor creates an Extractor. The default strategy is
// ExtractStrategyGreedy.
func NewExtractor(opt ...ExtractOption) *Extractor {
	e := &Extractor{strategy: ExtractStrategyGreedy}
	for _, o := range opt {
		o(e)
	}
	return e
}

// Extract returns the parsed answer object of the response. The second result
// is false when the response carries no answer label, the capture is not a
// JSON object, or the payload does not parse. Those cases are deliberately
// indistinguishable: downstream scoring treats them all as "no answer".
func (e *Extractor) Extract(response string) (map[string]any, bool) {
	raw, ok := e.capture(response)
	if !ok {
		return nil, false
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, false
	}
	return payload, true
}

func (e *Extractor) capture(response string) (string, bool) {
	if e.strategy == ExtractStrategyBalanced {
		return captureBalanced(response)
	}
	match := answerPattern.FindStringSubmatch(response)
	if match == nil {
		return "", false
	}
	return strings.TrimSpace(match[1]), true
}

// captureBalanced scans forward from the first labeled opening brace and
// returns the brace-balanced object, honoring JSON string literals and escape
// sequences. Unbalanced braces yield no capture.
func captureBalanced(response string) (string, bool) {
	loc := answerLabelPattern.FindStringIndex(response)
	if loc == nil {
		return "", false
	}
	start := loc[1] - 1
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(response); i++ {
		c := response[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return response[start : i+1], true
			}
		}
	}
	return "", false
}

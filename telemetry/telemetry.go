//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

// Package telemetry exposes the OpenTelemetry instruments of the reward
// engine. All instruments start as noops; SetMeterProvider rebuilds them on a
// real provider. The package never configures exporters, that stays with the
// embedding application.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// meterName identifies the reward scoring meter.
const meterName = "trpc-graph-reward"

// Metric attribute keys.
const (
	KeyAppName    = "graph_reward_app_name"
	KeySceneSetID = "graph_reward_scene_set_id"
	KeyFormatted  = "graph_reward_formatted"
)

var (
	meterProvider metric.MeterProvider = noop.NewMeterProvider()

	samplesScoredCnt metric.Int64Counter     = noop.Int64Counter{}
	batchesScoredCnt metric.Int64Counter     = noop.Int64Counter{}
	overallReward    metric.Float64Histogram = noop.Float64Histogram{}
	batchDuration    metric.Float64Histogram = noop.Float64Histogram{}
)

// SetMeterProvider installs mp and rebuilds every instrument on it. Call it
// once at startup, before scoring begins.
func SetMeterProvider(mp metric.MeterProvider) error {
	meterProvider = mp
	meter := mp.Meter(meterName)
	var err error
	if samplesScoredCnt, err = meter.Int64Counter(
		"graph_reward_samples_scored",
		metric.WithDescription("Total number of scored samples"),
		metric.WithUnit("1"),
	); err != nil {
		return fmt.Errorf("create samples scored counter: %w", err)
	}
	if batchesScoredCnt, err = meter.Int64Counter(
		"graph_reward_batches_scored",
		metric.WithDescription("Total number of scored batches"),
		metric.WithUnit("1"),
	); err != nil {
		return fmt.Errorf("create batches scored counter: %w", err)
	}
	if overallReward, err = meter.Float64Histogram(
		"graph_reward_overall",
		metric.WithDescription("Overall reward per scored sample"),
		metric.WithUnit("1"),
	); err != nil {
		return fmt.Errorf("create overall reward histogram: %w", err)
	}
	if batchDuration, err = meter.Float64Histogram(
		"graph_reward_batch_duration",
		metric.WithDescription("Wall time per scored batch"),
		metric.WithUnit("s"),
	); err != nil {
		return fmt.Errorf("create batch duration histogram: %w", err)
	}
	return nil
}

// MeterProvider returns the installed meter provider.
func MeterProvider() metric.MeterProvider {
	return meterProvider
}

// RecordSampleScored counts one scored sample and tracks its overall reward.
func RecordSampleScored(ctx context.Context, overall float64, formatted bool) {
	attrs := metric.WithAttributes(attribute.Bool(KeyFormatted, formatted))
	samplesScoredCnt.Add(ctx, 1, attrs)
	overallReward.Record(ctx, overall, attrs)
}

// RecordBatchScored counts one scored batch and its wall time.
func RecordBatchScored(ctx context.Context, appName, sceneSetID string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(KeyAppName, appName),
		attribute.String(KeySceneSetID, sceneSetID),
	)
	batchesScoredCnt.Add(ctx, 1, attrs)
	batchDuration.Record(ctx, duration.Seconds(), attrs)
}

//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRecordWithDefaultInstruments(t *testing.T) {
	// Without SetMeterProvider every instrument is a noop and recording must
	// still be safe to call.
	ctx := context.Background()
	RecordSampleScored(ctx, 1.0, true)
	RecordBatchScored(ctx, "test-app", "test-set", time.Second)
}

func TestSetMeterProviderRebuildsInstruments(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	// Save original and restore after test.
	original := MeterProvider()
	defer func() {
		require.NoError(t, SetMeterProvider(original))
	}()

	require.NoError(t, SetMeterProvider(provider))
	assert.Same(t, provider, MeterProvider())

	ctx := context.Background()
	RecordSampleScored(ctx, 1.0, true)
	RecordSampleScored(ctx, 0.6, true)
	RecordSampleScored(ctx, -0.4, false)
	RecordBatchScored(ctx, "test-app", "kitchen-set", 150*time.Millisecond)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	scope := rm.ScopeMetrics[0]
	assert.Equal(t, meterName, scope.Scope.Name)

	recorded := make(map[string]bool, len(scope.Metrics))
	for _, m := range scope.Metrics {
		recorded[m.Name] = true
	}
	for _, name := range []string{
		"graph_reward_samples_scored",
		"graph_reward_batches_scored",
		"graph_reward_overall",
		"graph_reward_batch_duration",
	} {
		assert.True(t, recorded[name], "metric %s was not recorded", name)
	}
}

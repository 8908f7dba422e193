//
// Tencent is pleased to support the open source community by making trpc-graph-reward available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-graph-reward is licensed under the Apache License Version 2.0.
//
//

package reward

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

type scoreParam struct {
	idx     int
	ctx     context.Context
	engine  *Engine
	sample  Sample
	records []*Record
	wg      *sync.WaitGroup
}

func (p *scoreParam) reset() {
	p.idx = 0
	p.ctx = nil
	p.engine = nil
	p.sample = Sample{}
	p.records = nil
	p.wg = nil
}

var scoreParamPool = &sync.Pool{
	New: func() any { return new(scoreParam) },
}

func newScorePool(size int) (*ants.PoolWithFunc, error) {
	if size <= 0 {
		return nil, errors.New("pool size must be greater than 0")
	}
	pool, err := ants.NewPoolWithFunc(size, func(args any) {
		param, ok := args.(*scoreParam)
		if !ok {
			panic("score pool args type error")
		}
		wg := param.wg
		defer func() {
			wg.Done()
			param.reset()
			scoreParamPool.Put(param)
		}()
		param.records[param.idx] = param.engine.Score(param.ctx, param.sample)
	})
	if err != nil {
		return nil, fmt.Errorf("create score pool: %w", err)
	}
	return pool, nil
}

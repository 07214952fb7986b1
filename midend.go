/*
 * Copyright 2022 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package midend is the optimization middle tier of a small compiler. It
// splits a three-address function into basic blocks, builds its control-flow
// graph, computes reaching definitions, liveness and dominance, and optimizes
// every block locally.
package midend

import (
	"context"

	"github.com/cloudwego/midend/internal/cfg"
	"github.com/cloudwego/midend/internal/dataflow"
	"github.com/cloudwego/midend/internal/dom"
	"github.com/cloudwego/midend/internal/opt"
	"github.com/cloudwego/midend/internal/opts"
	"github.com/cloudwego/midend/internal/pipeline"
	"github.com/cloudwego/midend/ir"
)

type (
	CFG           = cfg.CFG
	BasicBlock    = cfg.BasicBlock
	Definition    = dataflow.Definition
	Liveness      = dataflow.Liveness
	Reaching      = dataflow.Result[dataflow.Definition]
	DominatorTree = dom.Tree
	Result        = pipeline.Result
)

func makeOptions(options []Option) opts.Options {
	o := opts.GetDefaultOptions()
	for _, fn := range options {
		fn(&o)
	}
	return o
}

// Analyze segments fn, builds its CFG, runs every analysis and optimizes
// each block with its live-out names.
func Analyze(ctx context.Context, fn ir.Function, options ...Option) (*Result, error) {
	return pipeline.Analyze(ctx, fn, makeOptions(options))
}

// AnalyzeAll analyzes independent functions in parallel. The results keep
// the order of fns.
func AnalyzeAll(ctx context.Context, fns []ir.Function, options ...Option) ([]*Result, error) {
	return pipeline.AnalyzeAll(ctx, fns, makeOptions(options))
}

// Segment partitions fn into basic blocks.
func Segment(fn ir.Function, options ...Option) [][]ir.Instr {
	if makeOptions(options).SplitAtLabels {
		return cfg.SegmentWith(fn, cfg.SplitAtLabels)
	} else {
		return cfg.Segment(fn)
	}
}

// BuildCFG segments fn and connects its blocks. Unresolved targets are
// recorded in CFG.Unresolved, or reported as an UnresolvedTargetError in
// strict mode.
func BuildCFG(fn ir.Function, options ...Option) (*CFG, error) {
	g := cfg.Build(Segment(fn, options...))
	if len(g.Unresolved) != 0 && makeOptions(options).Strict {
		return nil, UnresolvedTargetError{Function: fn.Name, Targets: g.Unresolved}
	}
	return g, nil
}

// ReachingDefinitions returns the definitions reaching the entry (In) and
// the exit (Out) of every block of g.
func ReachingDefinitions(g *CFG, options ...Option) *Reaching {
	return dataflow.Reaching(g, makeOptions(options).WorklistOrder)
}

// LiveVariables returns the names live at the entry and the exit of every
// block of g.
func LiveVariables(g *CFG, options ...Option) *Liveness {
	return dataflow.Live(g, makeOptions(options).WorklistOrder)
}

// Dominators computes dominator sets, immediate dominators and dominance
// frontiers of g.
func Dominators(g *CFG, options ...Option) *DominatorTree {
	o := makeOptions(options)
	return dom.Build(g, o.IdomStrategy, o.WorklistOrder)
}

// OptimizeBlock runs value numbering, constant folding and dead-code
// elimination on a single block. Names in liveOut are read after the block.
// The input is never modified.
func OptimizeBlock(ins []ir.Instr, liveOut []string, options ...Option) []ir.Instr {
	ret, _ := opt.Optimize(ins, dataflow.NewSet(liveOut...), makeOptions(options).MaxDCERounds)
	return ret
}

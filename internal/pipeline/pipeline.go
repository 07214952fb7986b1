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

package pipeline

import (
	`context`
	`sync/atomic`

	`github.com/cloudwego/midend/internal/cfg`
	`github.com/cloudwego/midend/internal/dataflow`
	`github.com/cloudwego/midend/internal/dom`
	`github.com/cloudwego/midend/internal/opt`
	`github.com/cloudwego/midend/internal/opts`
	`github.com/cloudwego/midend/ir`
	`golang.org/x/sync/errgroup`
	`tlog.app/go/tlog`
)

var (
	FuncCount   uint64 = 0
	BlockCount  uint64 = 0
	VisitCount  uint64 = 0
	RoundCount  uint64 = 0
	RemoveCount uint64 = 0
)

// Result holds every artifact derived from one function. Per-block tables
// are indexed by block id, Optimized is keyed by block name.
type Result struct {
	Function  ir.Function
	Blocks    [][]ir.Instr
	CFG       *cfg.CFG
	Reaching  *dataflow.Result[dataflow.Definition]
	Liveness  *dataflow.Liveness
	Dom       *dom.Tree
	Optimized map[string][]ir.Instr
	Stats     map[string]opt.Stats
}

func segmentMode(o opts.Options) cfg.SegmentMode {
	if o.SplitAtLabels {
		return cfg.SplitAtLabels
	} else {
		return cfg.SplitAtTerminators
	}
}

// Analyze runs every analysis over fn and optimizes each of its blocks.
func Analyze(ctx context.Context, fn ir.Function, o opts.Options) (res *Result, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "midend: analyze", "func", fn.Name, "ins", len(fn.Instrs))
	defer tr.Finish("err", &err)

	/* Step 1: split into blocks and connect them */
	res = &Result{Function: fn}
	res.Blocks = cfg.SegmentWith(fn, segmentMode(o))
	res.CFG = cfg.Build(res.Blocks)
	tr.Printw("cfg", "blocks", res.CFG.Len(), "edges", res.CFG.NumEdges(), "unresolved", len(res.CFG.Unresolved))

	/* missing edges are only fatal in strict mode */
	if len(res.CFG.Unresolved) != 0 {
		if o.Strict {
			return nil, UnresolvedTargetError{Function: fn.Name, Targets: res.CFG.Unresolved}
		}
		tr.Printw("unresolved targets dropped", "targets", res.CFG.Unresolved)
	}

	/* Step 2: global analyses */
	if err = stage(ctx, "dataflow", func(tr tlog.Span) {
		res.Reaching = dataflow.Reaching(res.CFG, o.WorklistOrder)
		res.Liveness = dataflow.Live(res.CFG, o.WorklistOrder)
		atomic.AddUint64(&VisitCount, uint64(res.Reaching.Visits+res.Liveness.Visits))
		tr.Printw("solved", "reaching_visits", res.Reaching.Visits, "liveness_visits", res.Liveness.Visits)
	}); err != nil {
		return nil, err
	}

	/* Step 3: dominance */
	if err = stage(ctx, "dominance", func(tr tlog.Span) {
		res.Dom = dom.Build(res.CFG, o.IdomStrategy, o.WorklistOrder)
		atomic.AddUint64(&VisitCount, uint64(res.Dom.Visits))
		tr.Printw("dominators", "strategy", o.IdomStrategy, "visits", res.Dom.Visits)

		/* dump the annotated graph on demand */
		if tr.If("dump_cfg") {
			tr.Printw("cfg dot", "dot", res.Dom.Dot(res.CFG))
		}
	}); err != nil {
		return nil, err
	}

	/* Step 4: local optimization, fed with the live-out names */
	if err = stage(ctx, "optimize", func(tr tlog.Span) {
		res.Optimized = make(map[string][]ir.Instr, res.CFG.Len())
		res.Stats = make(map[string]opt.Stats, res.CFG.Len())

		/* optimize every block */
		for _, bb := range res.CFG.Blocks {
			ins, st := opt.Optimize(bb.Ins, res.Liveness.LiveOut[bb.Id], o.MaxDCERounds)
			res.Optimized[bb.Name] = ins
			res.Stats[bb.Name] = st
			atomic.AddUint64(&RoundCount, uint64(st.DCERounds))
			atomic.AddUint64(&RemoveCount, uint64(st.Before-st.After))
			tr.Printw("block", "name", bb.Name, "before", st.Before, "after", st.After, "rounds", st.DCERounds)
		}
	}); err != nil {
		return nil, err
	}

	/* record the analyzed function */
	atomic.AddUint64(&FuncCount, 1)
	atomic.AddUint64(&BlockCount, uint64(res.CFG.Len()))
	return res, nil
}

// stage runs fn in its own span, unless ctx is already done.
func stage(ctx context.Context, name string, fn func(tr tlog.Span)) (err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, name)
	defer tr.Finish()
	fn(tr)
	return
}

// AnalyzeAll analyzes independent functions in parallel, at most
// o.Parallelism at a time. Results keep the order of fns. The first error
// cancels the remaining functions.
func AnalyzeAll(ctx context.Context, fns []ir.Function, o opts.Options) ([]*Result, error) {
	ret := make([]*Result, len(fns))
	g, gctx := errgroup.WithContext(ctx)

	/* bound the number of workers */
	if o.Parallelism > 0 {
		g.SetLimit(o.Parallelism)
	}

	/* every function owns its own CFG, results land in distinct slots */
	for i, fn := range fns {
		i, fn := i, fn
		g.Go(func() (err error) {
			ret[i], err = Analyze(gctx, fn, o)
			return
		})
	}

	/* wait for all the workers */
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ret, nil
}

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

package midend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cloudwego/midend/debug"
	"github.com/cloudwego/midend/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diamond() ir.Function {
	return ir.CreateBuilder("diamond").
		Bool("v0", true).
		Br("v0", "then_blk", "else_blk").
		Label("then_blk").
		Int("v1", 10).
		Jmp("merge_blk").
		Label("else_blk").
		Int("v2", 20).
		Jmp("merge_blk").
		Label("merge_blk").
		Ret("v1").
		Build()
}

func TestBuildCFG_Diamond(t *testing.T) {
	g, err := BuildCFG(diamond())
	require.NoError(t, err)
	assert.Equal(t, 4, g.Len())
	assert.Equal(t, 4, g.NumEdges())

	/* each arm stops dominating at the merge block */
	dt := Dominators(g, WithIdomStrategy("lengauer-tarjan"))
	merge, ok := g.Lookup("merge_blk")
	require.True(t, ok)
	assert.Equal(t, []int{merge.Id}, dt.Frontier(1))
	assert.Equal(t, []int{merge.Id}, dt.Frontier(2))
	assert.Empty(t, dt.Frontier(merge.Id))

	/* all three definitions reach the merge block */
	rd := ReachingDefinitions(g, WithWorklistOrder("fifo"))
	assert.Equal(t, 3, rd.In[merge.Id].Len())
	assert.True(t, LiveVariables(g).LiveIn[merge.Id].Has("v1"))
}

func TestBuildCFG_Strict(t *testing.T) {
	fn := ir.CreateBuilder("lost").Jmp("missing").Build()
	g, err := BuildCFG(fn)
	require.NoError(t, err)
	assert.Len(t, g.Unresolved, 1)

	_, err = BuildCFG(fn, WithStrict(true))
	assert.ErrorAs(t, err, new(UnresolvedTargetError))
}

func TestSegment(t *testing.T) {
	fn := ir.CreateBuilder("seg").
		Int("a", 1).
		Label("next").
		Print("a").
		Build()
	assert.Len(t, Segment(fn), 1)
	assert.Len(t, Segment(fn, WithSplitAtLabels(true)), 2)
	assert.Empty(t, Segment(ir.Function{Name: "empty"}))
}

func TestOptimizeBlock(t *testing.T) {
	ins := []ir.Instr{
		ir.Const("a", ir.IntLit(4)),
		ir.Const("b", ir.IntLit(2)),
		ir.Add("s1", "a", "b"),
		ir.Add("s2", "b", "a"),
		ir.Mul("p", "s1", "s2"),
		ir.Print("p"),
	}
	assert.Equal(t, []ir.Instr{ir.Const("p", ir.IntLit(36)), ir.Print("p")}, OptimizeBlock(ins, nil))

	/* a live-out name keeps its definition */
	out := OptimizeBlock(ins, []string{"s1"})
	assert.Equal(t, ir.Const("s1", ir.IntLit(6)), out[0])
	assert.Len(t, out, 3)
}

func TestAnalyze_Stats(t *testing.T) {
	before := debug.GetStats()
	res, err := Analyze(context.Background(), diamond(), WithMaxDCERounds(0), WithParallelism(1))
	require.NoError(t, err)
	assert.Len(t, res.Optimized, 4)

	/* the counters only grow */
	after := debug.GetStats()
	assert.GreaterOrEqual(t, after.Functions, before.Functions+1)
	assert.GreaterOrEqual(t, after.Blocks, before.Blocks+4)
	assert.Greater(t, after.Visits, before.Visits)
	assert.GreaterOrEqual(t, after.DCE.Removed, before.DCE.Removed+1)
}

func TestAnalyzeAll(t *testing.T) {
	res, err := AnalyzeAll(context.Background(), []ir.Function{diamond(), diamond()}, WithParallelism(2))
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, res[0].Optimized, res[1].Optimized)
}

func TestOptions_Invalid(t *testing.T) {
	assert.Panics(t, func() { WithIdomStrategy("guess") })
	assert.Panics(t, func() { WithWorklistOrder("random") })
	assert.Panics(t, func() { WithMaxDCERounds(-1) })
	assert.Panics(t, func() { WithParallelism(0) })
	assert.Panics(t, func() { SetIdomStrategy("guess") })
}

func TestSetMaxDCERounds(t *testing.T) {
	old := SetMaxDCERounds(1)
	defer SetMaxDCERounds(old)
	assert.Equal(t, 1, makeOptions(nil).MaxDCERounds)
}

func TestWithConfigFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "midend.toml")
	require.NoError(t, os.WriteFile(fn, []byte("idom = \"lengauer-tarjan\"\nstrict = true\n"), 0644))
	opt, err := WithConfigFile(fn)
	require.NoError(t, err)

	/* later options still win */
	o := makeOptions([]Option{opt, WithStrict(false)})
	assert.Equal(t, "lengauer-tarjan", o.IdomStrategy.String())
	assert.False(t, o.Strict)

	_, err = WithConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestWithConfigFile_KeepsEarlierOptions(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "midend.toml")
	require.NoError(t, os.WriteFile(fn, []byte("worklist_order = \"fifo\"\n"), 0644))
	opt, err := WithConfigFile(fn)
	require.NoError(t, err)

	/* keys absent from the file keep what was set before it */
	o := makeOptions([]Option{
		WithMaxDCERounds(2),
		WithParallelism(3),
		WithStrict(true),
		WithWorklistOrder("lifo"),
		opt,
	})
	assert.Equal(t, 2, o.MaxDCERounds)
	assert.Equal(t, 3, o.Parallelism)
	assert.True(t, o.Strict)
	assert.Equal(t, "fifo", o.WorklistOrder.String())
}

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

package dataflow

import (
	`testing`

	`github.com/cloudwego/midend/internal/cfg`
	`github.com/cloudwego/midend/internal/testkit`
	`github.com/cloudwego/midend/ir`
	`github.com/davecgh/go-spew/spew`
	`github.com/stretchr/testify/assert`
	`github.com/stretchr/testify/require`
)

func build(fn ir.Function) *cfg.CFG {
	return cfg.Build(cfg.Segment(fn))
}

func TestSet_Ops(t *testing.T) {
	a := NewSet(1, 2, 3)
	b := NewSet(2, 3, 4)
	assert.Equal(t, NewSet(1, 2, 3, 4), a.Union(b))
	assert.Equal(t, NewSet(2, 3), a.Intersect(b))
	assert.Equal(t, NewSet(1), a.Minus(b))
	assert.True(t, a.Equal(NewSet(3, 2, 1)))
	assert.False(t, a.Equal(b))
	assert.True(t, a.Add(5))
	assert.False(t, a.Add(5))
	assert.True(t, a.Remove(5))
	assert.False(t, a.Remove(5))
	assert.Equal(t, "{1, 2, 3}", a.String())
	assert.Equal(t, []int{3, 2, 1}, a.Sorted(func(x int, y int) bool { return x > y }))
	assert.Equal(t, NewSet(2, 3), Intersection([]Set[int]{a, b, NewSet(2, 3, 9)}))
	assert.Equal(t, NewSet(1, 2, 3, 4), Union([]Set[int]{a, b}))
	assert.Empty(t, Union[int](nil))
}

func TestGenKill(t *testing.T) {
	bb := &cfg.BasicBlock{
		Id:   0,
		Name: "b",
		Ins: []ir.Instr{
			ir.Const("a", ir.IntLit(1)),
			ir.Const("b", ir.IntLit(2)),
			ir.Add("a", "a", "b"),
			ir.Print("a"),
		},
	}
	gen, kill := GenKill(bb)
	assert.Equal(t, NewSet(Definition{"a", "b", 2}, Definition{"b", "b", 1}), gen)
	assert.Equal(t, NewSet(Definition{"a", "b", 0}), kill)
}

func TestReaching_Diamond(t *testing.T) {
	g := build(testkit.Diamond())
	rd := Reaching(g, LIFO)

	v0 := Definition{Var: "v0", Block: "block0", Index: 0}
	v1 := Definition{Var: "v1", Block: "then_blk", Index: 1}
	v2 := Definition{Var: "v2", Block: "else_blk", Index: 1}

	assert.Empty(t, rd.In[0])
	assert.Equal(t, NewSet(v0), rd.Out[0])
	assert.Equal(t, NewSet(v0), rd.In[1])
	assert.Equal(t, NewSet(v0, v1), rd.Out[1])
	assert.Equal(t, NewSet(v0), rd.In[2])
	assert.Equal(t, NewSet(v0, v2), rd.Out[2])
	assert.Equal(t, NewSet(v0, v1, v2), rd.In[3])
	assert.Equal(t, NewSet(v0, v1, v2), rd.Out[3], spew.Sdump(rd.Out))
	assert.Equal(t, []Definition{v0, v2, v1}, rd.Out[3].Sorted(DefinitionLess))
}

func TestReaching_LoopKills(t *testing.T) {
	g := build(testkit.Loop())
	rd := Reaching(g, FIFO)

	i0 := Definition{Var: "i", Block: "block0", Index: 0}
	i1 := Definition{Var: "i", Block: "body", Index: 1}

	/* both definitions of i reach the header through the back edge */
	assert.True(t, rd.In[1].Has(i0))
	assert.True(t, rd.In[1].Has(i1))
	assert.True(t, rd.Out[3].Has(i1))
}

func TestReaching_TransferHolds(t *testing.T) {
	for seed := int64(1); seed <= 48; seed++ {
		g := build(testkit.RandomFunction(seed, 2+int(seed%9)))
		p := NewReachingDefinitions(g)
		rd := Solve[Definition](g, p, LIFO)
		for _, bb := range g.Blocks {
			exp := p.Gen(bb.Id).Union(rd.In[bb.Id].Minus(p.Kill(bb.Id)))
			require.True(t, exp.Equal(rd.Out[bb.Id]), "seed %d, block %s: %s != %s", seed, bb.Name, exp, rd.Out[bb.Id])

			/* IN is the union of the predecessors' OUT */
			in := make(Set[Definition])
			for _, p := range g.Predecessors(bb.Id) {
				in = in.Union(rd.Out[p])
			}
			require.True(t, in.Equal(rd.In[bb.Id]), "seed %d, block %s", seed, bb.Name)
		}
	}
}

func TestReaching_OrderIndependent(t *testing.T) {
	for seed := int64(1); seed <= 32; seed++ {
		g := build(testkit.RandomFunction(seed, 3+int(seed%6)))
		a := Reaching(g, LIFO)
		b := Reaching(g, FIFO)
		for i := range g.Blocks {
			require.True(t, a.In[i].Equal(b.In[i]), "seed %d", seed)
			require.True(t, a.Out[i].Equal(b.Out[i]), "seed %d", seed)
		}
	}
}

func TestLive_Loop(t *testing.T) {
	g := build(testkit.Loop())
	lv := Live(g, LIFO)
	assert.Equal(t, NewSet("i", "n", "one"), lv.LiveIn[1])
	assert.Equal(t, NewSet("i", "n", "one"), lv.LiveOut[0])
	assert.Equal(t, NewSet("i", "n", "one"), lv.LiveOut[2])
	assert.Equal(t, NewSet("i"), lv.LiveIn[3])
	assert.Empty(t, lv.LiveOut[3])
	assert.Empty(t, lv.LiveIn[0])
}

func TestUseDef(t *testing.T) {
	bb := &cfg.BasicBlock{Ins: []ir.Instr{
		ir.Add("a", "a", "b"),
		ir.Id("c", "a"),
		ir.Print("d"),
	}}
	use, def := UseDef(bb)
	assert.Equal(t, NewSet("a", "b", "d"), use)
	assert.Equal(t, NewSet("a", "c"), def)
}

func TestConverge(t *testing.T) {
	half := func(x int) int { return x / 2 }
	same := func(a int, b int) bool { return a == b }

	v, n := Converge(100, half, same, 0)
	assert.Equal(t, 0, v)
	assert.Equal(t, 8, n)

	/* bounded rounds */
	v, n = Converge(100, half, same, 2)
	assert.Equal(t, 25, v)
	assert.Equal(t, 2, n)
}

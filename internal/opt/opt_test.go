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

package opt

import (
	`math`
	`testing`

	`github.com/cloudwego/midend/internal/dataflow`
	`github.com/cloudwego/midend/internal/testkit`
	`github.com/cloudwego/midend/ir`
	`github.com/davecgh/go-spew/spew`
	`github.com/stretchr/testify/assert`
	`github.com/stretchr/testify/require`
)

func int64c(dest string, v int64) ir.Instr {
	return ir.Const(dest, ir.IntLit(v))
}

func TestDCE_Scenario(t *testing.T) {
	ins := []ir.Instr{
		int64c("a", 5),
		int64c("b", 10),
		int64c("b", 6),
		ir.Add("c", "a", "b"),
		int64c("a", 7),
		ir.Mul("d", "c", "a"),
		int64c("e", 100),
		ir.Print("d"),
	}
	out, rounds := EliminateDeadCode(ins, nil, 0)
	assert.Equal(t, []ir.Instr{
		int64c("a", 5),
		int64c("b", 6),
		ir.Add("c", "a", "b"),
		int64c("a", 7),
		ir.Mul("d", "c", "a"),
		ir.Print("d"),
	}, out)
	assert.Equal(t, 2, rounds)
	assert.Len(t, ins, 8)
}

func TestDCE_Unused(t *testing.T) {
	ins := []ir.Instr{
		int64c("a", 1),
		int64c("b", 2),
		int64c("c", 3),
		ir.Print("a"),
		ir.Jmp("next"),
	}
	out := DCE{LiveOut: dataflow.NewSet("c")}.Apply(ins)
	assert.Equal(t, []ir.Instr{int64c("a", 1), int64c("c", 3), ir.Print("a"), ir.Jmp("next")}, out)
}

func TestRedefElim(t *testing.T) {
	ins := []ir.Instr{
		int64c("a", 5),
		int64c("a", 10),
		int64c("a", 50),
		ir.Print("a"),
	}
	assert.Equal(t, []ir.Instr{int64c("a", 50), ir.Print("a")}, RedefElim{}.Apply(ins))

	/* the operand is read before the destination is written */
	ins = []ir.Instr{
		int64c("a", 1),
		ir.Add("a", "a", "a"),
		int64c("a", 3),
	}
	assert.Equal(t, ins[:1], RedefElim{}.Apply(ins)[:1])
	assert.Len(t, RedefElim{}.Apply(ins), 2)
}

func TestValueNumbering_FoldCSE(t *testing.T) {
	ins := []ir.Instr{
		int64c("a", 4),
		int64c("b", 2),
		ir.Add("s1", "a", "b"),
		ir.Add("s2", "b", "a"),
		ir.Mul("p", "s1", "s2"),
		ir.Print("p"),
	}

	/* s2 is a copy of s1 through the commutative key */
	vn := ValueNumbering{}.Apply(ins)
	require.Equal(t, []ir.Instr{
		int64c("a", 4),
		int64c("b", 2),
		ir.Add("s1", "a", "b"),
		ir.Id("s2", "s1"),
		ir.Mul("p", "s1", "s1"),
		ir.Print("p"),
	}, vn)

	/* s1 folds to 6, p folds to 36 */
	cf := ConstFold{}.Apply(vn)
	require.Equal(t, int64c("s1", 6), cf[2])
	require.Equal(t, int64c("p", 36), cf[4])

	/* everything but the result disappears */
	out, st := Optimize(ins, nil, 0)
	assert.Equal(t, []ir.Instr{int64c("p", 36), ir.Print("p")}, out, spew.Sdump(out))
	assert.Equal(t, 6, st.Before)
	assert.Equal(t, 2, st.After)
	assert.Equal(t, 3, st.DCERounds)
}

func TestValueNumbering_CopyChain(t *testing.T) {
	ins := []ir.Instr{
		int64c("a", 10),
		ir.Id("b", "a"),
		ir.Id("c", "b"),
		ir.Id("d", "c"),
		ir.Print("d"),
	}
	vn := ValueNumbering{}.Apply(ins)
	assert.Equal(t, []ir.Instr{
		int64c("a", 10),
		int64c("b", 10),
		int64c("c", 10),
		int64c("d", 10),
		ir.Print("a"),
	}, vn)

	out, _ := Optimize(ins, nil, 0)
	assert.Equal(t, []ir.Instr{int64c("a", 10), ir.Print("a")}, out)
}

func TestValueNumbering_Inputs(t *testing.T) {
	ins := []ir.Instr{
		ir.Add("x", "p", "q"),
		ir.Move("y", "x"),
		ir.Id("z", "y"),
		ir.Print("z"),
	}
	vn := ValueNumbering{}.Apply(ins)
	assert.Equal(t, []ir.Instr{
		ir.Add("x", "p", "q"),
		ir.Id("y", "x"),
		ir.Id("z", "x"),
		ir.Print("x"),
	}, vn)

	out, _ := Optimize(ins, nil, 0)
	assert.Equal(t, []ir.Instr{ir.Add("x", "p", "q"), ir.Print("x")}, out)

	/* a live-out copy survives */
	out, _ = Optimize(ins, dataflow.NewSet("z"), 0)
	assert.Equal(t, []ir.Instr{ir.Add("x", "p", "q"), ir.Id("z", "x"), ir.Print("x")}, out)
}

func TestValueNumbering_CanonicalRedefined(t *testing.T) {
	ins := []ir.Instr{
		ir.Add("a", "p", "q"),
		ir.Id("b", "a"),
		int64c("a", 1),
		ir.Add("c", "q", "p"),
		ir.Print("c"),
		ir.Print("a"),
	}
	vn := ValueNumbering{}.Apply(ins)
	assert.Equal(t, []ir.Instr{
		ir.Add("a", "p", "q"),
		ir.Id("b", "a"),
		int64c("a", 1),
		ir.Id("c", "b"),
		ir.Print("b"),
		ir.Print("a"),
	}, vn)
}

func TestValueNumbering_LostHolder(t *testing.T) {
	ins := []ir.Instr{
		ir.Add("x", "p", "q"),
		int64c("x", 0),
		ir.Add("y", "p", "q"),
		ir.Print("y"),
	}

	/* nobody holds p + q anymore, so it is recomputed */
	vn := ValueNumbering{}.Apply(ins)
	assert.Equal(t, ins, vn)
}

func TestValueNumbering_Terminators(t *testing.T) {
	ins := []ir.Instr{
		ir.Eq("c", "a", "b"),
		ir.Eq("d", "b", "a"),
		ir.Eq("e", "a", "b"),
		ir.Br("e", "yes", "no"),
	}
	vn := ValueNumbering{}.Apply(ins)

	/* eq keeps its operand order, only the repeated form is a hit */
	assert.Equal(t, ir.Eq("d", "b", "a"), vn[1])
	assert.Equal(t, ir.Id("e", "c"), vn[2])
	assert.Equal(t, ir.Br("c", "yes", "no"), vn[3])
}

func TestValueNumbering_Idempotent(t *testing.T) {
	for seed := int64(1); seed <= 128; seed++ {
		blk := testkit.RandomBlock(seed, 4+int(seed%12))
		once := ValueNumbering{}.Apply(blk)
		twice := ValueNumbering{}.Apply(once)
		require.Equal(t, once, twice, "seed %d\n%s", seed, spew.Sdump(blk))
	}
}

func TestValueNumbering_InputUntouched(t *testing.T) {
	blk := testkit.RandomBlock(7, 16)
	dup := append([]ir.Instr(nil), blk...)
	_, _ = Optimize(blk, nil, 0)
	assert.Equal(t, dup, blk)
}

func TestConstFold(t *testing.T) {
	ins := []ir.Instr{
		int64c("a", math.MaxInt64),
		int64c("b", 1),
		ir.Add("c", "a", "b"),
		ir.Const("t", ir.BoolLit(true)),
		ir.Add("u", "t", "b"),
		ir.Id("a", "b"),
		ir.Mul("d", "a", "b"),
		ir.Mul("e", "b", "b"),
	}
	out := ConstFold{}.Apply(ins)
	assert.Equal(t, int64c("c", math.MinInt64), out[2])
	assert.Equal(t, ins[4], out[4])
	assert.Equal(t, ins[6], out[6])
	assert.Equal(t, int64c("e", 1), out[7])
}

func TestOptimize_BoundedRounds(t *testing.T) {
	ins := []ir.Instr{
		ir.Add("a", "p", "q"),
		ir.Add("b", "a", "a"),
		ir.Add("c", "b", "b"),
		ir.Print("p"),
	}
	out, st := Optimize(ins, nil, 1)
	assert.Equal(t, 1, st.DCERounds)
	assert.Equal(t, []ir.Instr{ins[0], ins[1], ins[3]}, out)

	out, st = Optimize(ins, nil, 0)
	assert.Equal(t, []ir.Instr{ins[3]}, out)
	assert.Equal(t, 4, st.DCERounds)
}

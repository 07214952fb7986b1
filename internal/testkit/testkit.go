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

// Package testkit holds IR fixtures and invariant checks shared by the
// analysis tests.
package testkit

import (
	`fmt`

	`github.com/brianvoe/gofakeit/v6`
	`github.com/cloudwego/midend/internal/cfg`
	`github.com/cloudwego/midend/ir`
	`tlog.app/go/errors`
)

// Diamond is an entry branching to two arms that both jump to a merge
// block ending in ret.
func Diamond() ir.Function {
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

// Loop is a counting loop: entry -> header <-> body, header -> exit.
func Loop() ir.Function {
	return ir.CreateBuilder("loop").
		Int("i", 0).
		Int("one", 1).
		Int("n", 10).
		Jmp("header").
		Label("header").
		Eq("done", "i", "n").
		Br("done", "exit", "body").
		Label("body").
		Add("i", "i", "one").
		Print("i").
		Jmp("header").
		Label("exit").
		Ret("i").
		Build()
}

var _Vars = []string{"a", "b", "c", "d", "e"}

func label(i int) string {
	return fmt.Sprintf("L%d", i)
}

// RandomFunction generates a well-formed function of nb >= 2 blocks. Block i > 0
// opens with label "L<i>", every jump targets an existing label.
func RandomFunction(seed int64, nb int) ir.Function {
	f := gofakeit.New(seed)
	p := ir.CreateBuilder(fmt.Sprintf("rand%d", seed))

	/* generate every block */
	for i := 0; i < nb; i++ {
		if i != 0 {
			p.Label(label(i))
		}

		/* straight-line body */
		for n := f.Number(0, 4); n > 0; n-- {
			dst := f.RandomString(_Vars)
			switch f.Number(0, 4) {
			case 0:
				p.Int(dst, int64(f.Number(-8, 8)))
			case 1:
				p.Add(dst, f.RandomString(_Vars), f.RandomString(_Vars))
			case 2:
				p.Mul(dst, f.RandomString(_Vars), f.RandomString(_Vars))
			case 3:
				p.Id(dst, f.RandomString(_Vars))
			default:
				p.Print(f.RandomString(_Vars))
			}
		}

		/* every block ends in a terminator, jumps never target the entry */
		switch f.Number(0, 3) {
		case 0:
			p.Jmp(label(f.Number(1, maxint(1, nb-1))))
		case 1:
			p.Br(f.RandomString(_Vars), label(f.Number(1, maxint(1, nb-1))), label(f.Number(1, maxint(1, nb-1))))
		case 2:
			p.Ret(f.RandomString(_Vars))
		default:
			if i == nb-1 {
				p.Ret("")
			} else {
				p.Jmp(label(i + 1))
			}
		}
	}
	return p.Build()
}

// RandomBlock generates a straight-line block of n instructions ending in a
// print, suitable for local optimization.
func RandomBlock(seed int64, n int) []ir.Instr {
	f := gofakeit.New(seed)
	ret := make([]ir.Instr, 0, n+1)

	/* a few constants first so folding has something to work with */
	for _, v := range _Vars[:2] {
		ret = append(ret, ir.Const(v, ir.IntLit(int64(f.Number(0, 3)))))
	}

	/* random body */
	for i := 0; i < n; i++ {
		dst := f.RandomString(_Vars)
		x, y := f.RandomString(_Vars), f.RandomString(_Vars)
		switch f.Number(0, 5) {
		case 0:
			ret = append(ret, ir.Const(dst, ir.IntLit(int64(f.Number(0, 3)))))
		case 1:
			ret = append(ret, ir.Add(dst, x, y))
		case 2:
			ret = append(ret, ir.Mul(dst, x, y))
		case 3:
			ret = append(ret, ir.Eq(dst, x, y))
		case 4:
			ret = append(ret, ir.Id(dst, x))
		default:
			ret = append(ret, ir.Print(x))
		}
	}

	/* keep something alive */
	return append(ret, ir.Print(f.RandomString(_Vars)))
}

func maxint(a int, b int) int {
	if a > b {
		return a
	} else {
		return b
	}
}

// CheckCFG verifies the structural invariants of a freshly built CFG.
func CheckCFG(g *cfg.CFG) error {
	if g.Len() != 0 && g.Root != g.Blocks[0] {
		return errors.New("entry is not the first block")
	}

	/* every block has exactly one terminator at most, and it is the last */
	for _, bb := range g.Blocks {
		if len(bb.Ins) == 0 {
			return errors.New("block %s is empty", bb.Name)
		}
		for i, ins := range bb.Ins[:len(bb.Ins)-1] {
			if ins.IsTerminator() {
				return errors.New("block %s has a terminator at %d", bb.Name, i)
			}
		}
		if n := len(g.Successors(bb.Id)); n > 2 {
			return errors.New("block %s has %d successors", bb.Name, n)
		}
	}

	/* edge count is bounded by twice the node count */
	if g.NumEdges() > 2*g.Len() {
		return errors.New("too many edges: %d > 2 * %d", g.NumEdges(), g.Len())
	}
	return nil
}

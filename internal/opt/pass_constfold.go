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
	`github.com/cloudwego/midend/ir`
)

// ConstFold replaces integer additions and multiplications of known
// constants with the resulting constant. Arithmetic wraps around on
// overflow.
type ConstFold struct{}

func (ConstFold) fold(op ir.OpCode, x int64, y int64) int64 {
	switch op {
	case ir.OP_add:
		return x + y
	case ir.OP_mul:
		return x * y
	default:
		panic("opt: cannot fold " + op.String())
	}
}

func (self ConstFold) Apply(ins []ir.Instr) []ir.Instr {
	lits := make(map[string]ir.Literal)
	ret := make([]ir.Instr, 0, len(ins))

	/* single forward scan */
	for _, v := range ins {
		switch v.Op {
		case ir.OP_const:
			lits[v.Dest] = v.Lit
		case ir.OP_add, ir.OP_mul:
			x, ok1 := intOf(lits, v.X)
			y, ok2 := intOf(lits, v.Y)

			/* both operands known, replace with the result */
			if ok1 && ok2 {
				v = ir.Const(v.Dest, ir.IntLit(self.fold(v.Op, x, y)))
				lits[v.Dest] = v.Lit
				break
			}

			/* not a constant anymore */
			delete(lits, v.Dest)
		default:
			if dest, ok := v.Defines(); ok {
				delete(lits, dest)
			}
		}
		ret = append(ret, v)
	}
	return ret
}

func intOf(lits map[string]ir.Literal, name string) (int64, bool) {
	if lit, ok := lits[name]; !ok {
		return 0, false
	} else {
		return lit.Int()
	}
}

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
	`github.com/cloudwego/midend/internal/dataflow`
	`github.com/cloudwego/midend/ir`
)

type Pass interface {
	Apply([]ir.Instr) []ir.Instr
}

type _PassDescriptor struct {
	pass Pass
	desc string
}

var _passes = [...]_PassDescriptor{
	{desc: "Local Value Numbering", pass: new(ValueNumbering)},
	{desc: "Constant Folding", pass: new(ConstFold)},
}

// Stats records what the optimizer did to one block.
type Stats struct {
	Before    int
	After     int
	DCERounds int
}

func sameBlock(a []ir.Instr, b []ir.Instr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// EliminateDeadCode alternates both dead-code passes until the block stops
// shrinking, or for at most maxRounds rounds when maxRounds is positive.
func EliminateDeadCode(ins []ir.Instr, liveOut dataflow.Set[string], maxRounds int) ([]ir.Instr, int) {
	unused := DCE{LiveOut: liveOut}
	redef := RedefElim{}

	/* one round runs both passes */
	step := func(ins []ir.Instr) []ir.Instr {
		return redef.Apply(unused.Apply(ins))
	}
	return dataflow.Converge(ins, step, sameBlock, maxRounds)
}

// Optimize runs value numbering and constant folding once, then dead-code
// elimination until stable. The input block is never modified.
func Optimize(ins []ir.Instr, liveOut dataflow.Set[string], maxRounds int) ([]ir.Instr, Stats) {
	ret := ins
	st := Stats{Before: len(ins)}

	/* run the single-shot passes */
	for _, p := range _passes {
		ret = p.pass.Apply(ret)
	}

	/* then shrink until nothing changes */
	ret, st.DCERounds = EliminateDeadCode(ret, liveOut, maxRounds)
	st.After = len(ret)
	return ret, st
}

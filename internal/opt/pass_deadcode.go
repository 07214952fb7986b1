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

// DCE removes definitions whose result is never read inside the block.
// Names in LiveOut are read by later blocks and count as used.
type DCE struct {
	LiveOut dataflow.Set[string]
}

func (self DCE) Apply(ins []ir.Instr) []ir.Instr {
	used := make(dataflow.Set[string], len(self.LiveOut))

	/* Phase 1: mark every name read by the block or live on exit */
	for v := range self.LiveOut {
		used.Add(v)
	}
	for _, v := range ins {
		for _, r := range v.Uses() {
			used.Add(r)
		}
	}

	/* Phase 2: keep the instructions without unused results */
	ret := make([]ir.Instr, 0, len(ins))
	for _, v := range ins {
		if dest, ok := v.Defines(); !ok || used.Has(dest) {
			ret = append(ret, v)
		}
	}
	return ret
}

// RedefElim removes definitions overwritten before being read. The last
// definition of every name is always kept.
type RedefElim struct{}

func (RedefElim) Apply(ins []ir.Instr) []ir.Instr {
	last := make(map[string]int)
	keep := make([]bool, len(ins))

	/* forward scan, a read settles the pending definition */
	for i, v := range ins {
		for _, r := range v.Uses() {
			if j, ok := last[r]; ok {
				keep[j] = true
				delete(last, r)
			}
		}
		if dest, ok := v.Defines(); ok {
			last[dest] = i
		} else {
			keep[i] = true
		}
	}

	/* definitions still pending at the end may be read later */
	for _, i := range last {
		keep[i] = true
	}

	/* rebuild the block */
	ret := make([]ir.Instr, 0, len(ins))
	for i, v := range ins {
		if keep[i] {
			ret = append(ret, v)
		}
	}
	return ret
}

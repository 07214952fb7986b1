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

package cfg

import (
	`github.com/cloudwego/midend/ir`
)

type SegmentMode uint8

const (
	// SplitAtTerminators only closes a block after a jmp, br or ret.
	SplitAtTerminators SegmentMode = iota

	// SplitAtLabels also closes the current block before every label, so
	// every label heads its own block.
	SplitAtLabels
)

// Segment partitions the instructions of fn into basic blocks, closing a
// block after every terminator. Labels do not open new blocks.
func Segment(fn ir.Function) [][]ir.Instr {
	return SegmentWith(fn, SplitAtTerminators)
}

func SegmentWith(fn ir.Function, mode SegmentMode) [][]ir.Instr {
	var ret [][]ir.Instr
	var cur []ir.Instr

	/* scan every instruction */
	for _, ins := range fn.Instrs {
		if mode == SplitAtLabels && ins.Op == ir.OP_label && len(cur) != 0 {
			ret = append(ret, cur)
			cur = nil
		}

		/* terminators close the current block */
		if cur = append(cur, ins); ins.IsTerminator() {
			ret = append(ret, cur)
			cur = nil
		}
	}

	/* the remaining instructions form the last block */
	if len(cur) != 0 {
		ret = append(ret, cur)
	}
	return ret
}

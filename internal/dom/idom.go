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

package dom

import (
	`fmt`

	`github.com/cloudwego/midend/internal/cfg`
	`github.com/cloudwego/midend/internal/dataflow`
)

// Strategy selects how immediate dominators are derived.
type Strategy uint8

const (
	// Cardinality picks the strict dominator with the largest dominator set.
	Cardinality Strategy = iota

	// LengauerTarjan runs the Lengauer-Tarjan algorithm over the CFG.
	LengauerTarjan
)

func (self Strategy) String() string {
	switch self {
	case Cardinality:
		return "cardinality"
	case LengauerTarjan:
		return "lengauer-tarjan"
	default:
		return fmt.Sprintf("strategy(%d)", uint8(self))
	}
}

func ParseStrategy(s string) (Strategy, bool) {
	switch s {
	case "cardinality":
		return Cardinality, true
	case "lengauer-tarjan", "lt":
		return LengauerTarjan, true
	default:
		return 0, false
	}
}

// idomByCardinality derives the immediate dominator of every reachable
// non-entry block from its dominator set. Strict dominators of a reachable
// block form a chain, so the largest set belongs to the closest one. Ties
// cannot happen on reachable blocks, they go to the lower id anyway.
func idomByCardinality(g *cfg.CFG, sets []dataflow.Set[int], reachable []bool) []int {
	ret := make([]int, g.Len())
	for i := range ret {
		ret[i] = -1
	}

	/* the entry and the unreachable blocks have no idom */
	for _, bb := range g.Blocks {
		if bb == g.Root || !reachable[bb.Id] {
			continue
		}

		/* scan the strict dominators in id order */
		best, card := -1, -1
		for _, d := range sets[bb.Id].Sorted(intLess) {
			if d != bb.Id && len(sets[d]) > card {
				best, card = d, len(sets[d])
			}
		}
		ret[bb.Id] = best
	}
	return ret
}

func intLess(a int, b int) bool {
	return a < b
}

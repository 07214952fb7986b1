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
	`sort`
	`strings`

	`github.com/cloudwego/midend/internal/cfg`
	`github.com/cloudwego/midend/internal/dataflow`
)

// Tree holds the dominance information of one CFG. Every map is keyed by
// block id.
type Tree struct {
	Root              *cfg.BasicBlock
	Strategy          Strategy
	Visits            int
	Dominators        []dataflow.Set[int]
	DominatedBy       map[int]*cfg.BasicBlock
	DominatorOf       map[int][]*cfg.BasicBlock
	DominanceFrontier map[int][]*cfg.BasicBlock
}

// Build computes dominator sets, immediate dominators and dominance
// frontiers of g.
func Build(g *cfg.CFG, strategy Strategy, order dataflow.Order) *Tree {
	ret := &Tree{
		Root:              g.Root,
		Strategy:          strategy,
		DominatedBy:       make(map[int]*cfg.BasicBlock),
		DominatorOf:       make(map[int][]*cfg.BasicBlock),
		DominanceFrontier: make(map[int][]*cfg.BasicBlock),
	}

	/* empty graphs have no dominance information */
	if g.Len() == 0 {
		return ret
	}

	/* dominator sets are computed with the shared solver */
	var idom []int
	ret.Dominators, ret.Visits = Sets(g, order)
	reachable := g.Reachable()

	/* derive the immediate dominators */
	switch strategy {
	case Cardinality:
		idom = idomByCardinality(g, ret.Dominators, reachable)
	case LengauerTarjan:
		idom = idomByLengauerTarjan(g)
	default:
		panic(fmt.Sprintf("dom: invalid idom strategy: %s", strategy))
	}

	/* map the dominator relations */
	for id, d := range idom {
		if d >= 0 {
			ret.DominatedBy[id] = g.Blocks[d]
			ret.DominatorOf[d] = append(ret.DominatorOf[d], g.Blocks[id])
		}
	}

	/* compute the frontiers */
	for id, fr := range frontiers(g, ret.Dominators, idom, reachable) {
		for _, n := range fr {
			ret.DominanceFrontier[id] = append(ret.DominanceFrontier[id], g.Blocks[n])
		}
	}
	return ret
}

// frontiers walks the idom chain of every predecessor of each join block.
// A runner that does not dominate the join block gets it in its frontier,
// the walk stops at the first runner that does, the join block included.
// Unreachable predecessors are skipped, they have no idom chain.
func frontiers(g *cfg.CFG, sets []dataflow.Set[int], idom []int, reachable []bool) [][]int {
	ret := make([][]int, g.Len())
	seen := make([]dataflow.Set[int], g.Len())

	/* only join blocks have a frontier contribution */
	for _, bb := range g.Blocks {
		n := bb.Id
		preds := g.Predecessors(n)

		/* skip non-join blocks */
		if len(preds) < 2 {
			continue
		}

		/* walk up from every predecessor */
		for _, p := range preds {
			if !reachable[p] {
				continue
			}
			for r := p; r >= 0 && !sets[n].Has(r); r = idom[r] {
				if seen[r] == nil {
					seen[r] = make(dataflow.Set[int])
				}
				if seen[r].Add(n) {
					ret[r] = append(ret[r], n)
				}
			}
		}
	}

	/* stable output order */
	for _, fr := range ret {
		sort.Ints(fr)
	}
	return ret
}

// Idom returns the immediate dominator of block id, or -1.
func (self *Tree) Idom(id int) int {
	if bb, ok := self.DominatedBy[id]; ok {
		return bb.Id
	} else {
		return -1
	}
}

// Dominates reports whether every path from the entry to b passes through a.
func (self *Tree) Dominates(a int, b int) bool {
	return b < len(self.Dominators) && self.Dominators[b].Has(a)
}

func (self *Tree) StrictlyDominates(a int, b int) bool {
	return a != b && self.Dominates(a, b)
}

// Frontier returns the ids in the dominance frontier of block id.
func (self *Tree) Frontier(id int) []int {
	fr := self.DominanceFrontier[id]
	ret := make([]int, len(fr))
	for i, bb := range fr {
		ret[i] = bb.Id
	}
	return ret
}

// Children returns the ids of the blocks immediately dominated by block id.
func (self *Tree) Children(id int) []int {
	ch := self.DominatorOf[id]
	ret := make([]int, len(ch))
	for i, bb := range ch {
		ret[i] = bb.Id
	}
	return ret
}

func (self *Tree) String() string {
	nb := len(self.Dominators)
	ret := make([]string, 0, nb)

	/* one line per block */
	for i := 0; i < nb; i++ {
		ret = append(ret, fmt.Sprintf(
			"bb_%d: dom = %s, idom = %d, df = %v",
			i,
			self.Dominators[i],
			self.Idom(i),
			self.Frontier(i),
		))
	}
	return strings.Join(ret, "\n")
}

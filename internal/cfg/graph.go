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
	`gonum.org/v1/gonum/graph`
	`gonum.org/v1/gonum/graph/multi`
	`gonum.org/v1/gonum/graph/traverse`
)

// Graph returns a gonum view of the CFG. Node ids are block ids and every
// edge becomes a line, so a br with identical targets keeps both.
func (self *CFG) Graph() *multi.DirectedGraph {
	g := multi.NewDirectedGraph()

	/* add every block, including the unreachable ones */
	for _, bb := range self.Blocks {
		g.AddNode(multi.Node(bb.Id))
	}

	/* add every edge */
	for _, e := range self.Edges() {
		g.SetLine(g.NewLine(g.Node(int64(e.From)), g.Node(int64(e.To))))
	}
	return g
}

// Reachable reports which blocks can be reached from the entry.
func (self *CFG) Reachable() []bool {
	ret := make([]bool, len(self.Blocks))

	/* empty graph, nothing is reachable */
	if self.Root == nil {
		return ret
	}

	/* breadth-first walk from the entry */
	g := self.Graph()
	w := traverse.BreadthFirst{
		Visit: func(n graph.Node) { ret[n.ID()] = true },
	}

	/* walk the entire component */
	w.Walk(g, g.Node(int64(self.Root.Id)), nil)
	return ret
}

// Unreachable returns the ids of the blocks that cannot be reached from the
// entry, in ascending order.
func (self *CFG) Unreachable() []int {
	var ret []int
	for i, ok := range self.Reachable() {
		if !ok {
			ret = append(ret, i)
		}
	}
	return ret
}

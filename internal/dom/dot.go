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
	`strings`

	`github.com/cloudwego/midend/internal/cfg`
)

func blockNames(bbs []*cfg.BasicBlock) string {
	ret := make([]string, len(bbs))
	for i, bb := range bbs {
		ret[i] = fmt.Sprintf("bb_%d", bb.Id)
	}
	return strings.Join(ret, ", ")
}

func (self *Tree) meta(g *cfg.CFG) func(bb *cfg.BasicBlock) []string {
	return func(bb *cfg.BasicBlock) []string {
		idom := "∅"
		if d := self.DominatedBy[bb.Id]; d != nil {
			idom = fmt.Sprintf("bb_%d", d.Id)
		}

		/* predecessors, as stored in the graph */
		pred := make([]*cfg.BasicBlock, 0, len(g.Predecessors(bb.Id)))
		for _, p := range g.Predecessors(bb.Id) {
			pred = append(pred, g.Blocks[p])
		}

		/* one line per relation */
		return []string{
			fmt.Sprintf("# pred = {%s}", blockNames(pred)),
			fmt.Sprintf("# idom_by = %s", idom),
			fmt.Sprintf("# idom_of = {%s}", blockNames(self.DominatorOf[bb.Id])),
			fmt.Sprintf("# df = {%s}", blockNames(self.DominanceFrontier[bb.Id])),
		}
	}
}

// Dot renders g in Graphviz format, annotating every block with its
// predecessors, its immediate dominator, the blocks it immediately
// dominates and its dominance frontier.
func (self *Tree) Dot(g *cfg.CFG) string {
	return g.DotWith(self.meta(g))
}

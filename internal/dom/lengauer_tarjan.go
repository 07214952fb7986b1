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
	`github.com/cloudwego/midend/internal/cfg`
	`github.com/oleiade/lane`
)

type _LtFrame struct {
	id     int
	parent int
}

// _LengauerTarjan keeps one slot per reachable block in every slice, indexed
// by depth-first preorder number. A negative ancestor means the vertex is
// not linked into the forest yet.
type _LengauerTarjan struct {
	g        *cfg.CFG
	num      []int
	block    []int
	parent   []int
	semi     []int
	ancestor []int
	label    []int
	idom     []int
	bucket   [][]int
}

func newLengauerTarjan(g *cfg.CFG) *_LengauerTarjan {
	ret := &_LengauerTarjan{
		g:   g,
		num: make([]int, g.Len()),
	}
	for i := range ret.num {
		ret.num[i] = -1
	}
	return ret
}

// number assigns preorder numbers to every block reachable from root and
// records the parent of each one in the depth-first spanning tree.
func (self *_LengauerTarjan) number(root int) {
	stk := lane.NewStack()
	stk.Push(_LtFrame{id: root, parent: -1})

	/* a block is numbered when it is popped for the first time */
	for !stk.Empty() {
		fr := stk.Pop().(_LtFrame)
		if self.num[fr.id] >= 0 {
			continue
		}

		/* allocate the slots of the new vertex */
		v := len(self.block)
		self.num[fr.id] = v
		self.block = append(self.block, fr.id)
		self.parent = append(self.parent, fr.parent)
		self.semi = append(self.semi, v)
		self.ancestor = append(self.ancestor, -1)
		self.label = append(self.label, v)
		self.idom = append(self.idom, -1)
		self.bucket = append(self.bucket, nil)

		/* push in reverse so the first successor is visited first */
		succ := self.g.Successors(fr.id)
		for i := len(succ) - 1; i >= 0; i-- {
			if self.num[succ[i]] < 0 {
				stk.Push(_LtFrame{id: succ[i], parent: v})
			}
		}
	}
}

// eval returns the vertex with the smallest semidominator on the forest
// path above v, or v itself when v is a forest root.
func (self *_LengauerTarjan) eval(v int) int {
	if self.ancestor[v] < 0 {
		return v
	}
	self.compress(v)
	return self.label[v]
}

func (self *_LengauerTarjan) compress(v int) {
	a := self.ancestor[v]
	if self.ancestor[a] < 0 {
		return
	}
	self.compress(a)
	if self.semi[self.label[a]] < self.semi[self.label[v]] {
		self.label[v] = self.label[a]
	}
	self.ancestor[v] = self.ancestor[a]
}

// solve fills idom for every numbered vertex except the root.
func (self *_LengauerTarjan) solve() {
	for w := len(self.block) - 1; w > 0; w-- {
		p := self.parent[w]

		/* semi(w) is the smallest semi over the forest paths of its preds */
		for _, b := range self.g.Predecessors(self.block[w]) {
			if v := self.num[b]; v >= 0 {
				if u := self.eval(v); self.semi[u] < self.semi[w] {
					self.semi[w] = self.semi[u]
				}
			}
		}

		/* defer w until its semidominator is processed */
		self.bucket[self.semi[w]] = append(self.bucket[self.semi[w]], w)
		self.ancestor[w] = p

		/* the parent's subtree is complete, settle its bucket */
		for _, v := range self.bucket[p] {
			if u := self.eval(v); self.semi[u] < self.semi[v] {
				self.idom[v] = u
			} else {
				self.idom[v] = p
			}
		}
		self.bucket[p] = nil
	}

	/* vertices whose idom differs from semi inherit it in preorder */
	for w := 1; w < len(self.block); w++ {
		if self.idom[w] != self.semi[w] {
			self.idom[w] = self.idom[self.idom[w]]
		}
	}
}

// idomByLengauerTarjan computes the immediate dominator of every block
// reachable from the entry. Unreachable blocks and the entry map to -1.
func idomByLengauerTarjan(g *cfg.CFG) []int {
	ret := make([]int, g.Len())
	for i := range ret {
		ret[i] = -1
	}

	/* nothing to do for empty graphs */
	if g.Root == nil {
		return ret
	}

	/* number, solve, then map back to block ids */
	lt := newLengauerTarjan(g)
	lt.number(g.Root.Id)
	lt.solve()
	for w := 1; w < len(lt.block); w++ {
		ret[lt.block[w]] = lt.block[lt.idom[w]]
	}
	return ret
}

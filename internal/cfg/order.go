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
	`github.com/oleiade/lane`
)

type _DfsFrame struct {
	id int
	it int
}

// PostOrder returns the ids of the blocks reachable from the entry in
// depth-first post-order.
func (self *CFG) PostOrder() []int {
	if self.Root == nil {
		return nil
	}

	/* iterative DFS, frames remember the next successor to visit */
	ret := make([]int, 0, len(self.Blocks))
	vis := make([]bool, len(self.Blocks))
	stk := lane.NewStack()

	/* start from the entry */
	vis[self.Root.Id] = true
	stk.Push(&_DfsFrame{id: self.Root.Id})

	/* scan until the stack is empty */
	for !stk.Empty() {
		p := stk.Head().(*_DfsFrame)
		ss := self.succs[p.id]

		/* find the next unvisited successor */
		for p.it < len(ss) && vis[ss[p.it]] {
			p.it++
		}

		/* all the successors are visited, pop the current node */
		if p.it == len(ss) {
			ret = append(ret, p.id)
			stk.Pop()
			continue
		}

		/* descend into the successor */
		vis[ss[p.it]] = true
		stk.Push(&_DfsFrame{id: ss[p.it]})
	}
	return ret
}

// ReversePostOrder returns the reachable blocks in reverse post-order, the
// preferred visiting order of forward problems.
func (self *CFG) ReversePostOrder() []int {
	ret := self.PostOrder()
	for i, j := 0, len(ret)-1; i < j; i, j = i+1, j-1 {
		ret[i], ret[j] = ret[j], ret[i]
	}
	return ret
}

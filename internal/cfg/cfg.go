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
	`fmt`

	`github.com/cloudwego/midend/ir`
)

type Edge struct {
	From int
	To   int
}

// Unresolved records a jump target that names no block.
type Unresolved struct {
	From   int
	Target string
}

func (self Unresolved) String() string {
	return fmt.Sprintf("bb_%d -> .%s", self.From, self.Target)
}

// CFG is the control-flow graph of a single function. Block ids are the
// positions of the blocks in the function and index every per-block table.
type CFG struct {
	Root       *BasicBlock
	Blocks     []*BasicBlock
	Unresolved []Unresolved
	labels     map[string]int
	names      map[string]int
	succs      [][]int
	preds      [][]int
}

// Build names the blocks and connects them according to their terminators.
// Edges to unknown labels are dropped and recorded in Unresolved. Every block
// must be non-empty.
func Build(blocks [][]ir.Instr) *CFG {
	nb := len(blocks)
	ret := &CFG{
		Blocks: make([]*BasicBlock, nb),
		labels: make(map[string]int, nb),
		names:  make(map[string]int, nb),
		succs:  make([][]int, nb),
		preds:  make([][]int, nb),
	}

	/* create all the nodes, the first block owning a label wins it */
	for i, ins := range blocks {
		ret.Blocks[i] = &BasicBlock{Id: i, Ins: ins}
		if lb, ok := leadingLabel(ins); ok {
			if _, dup := ret.labels[lb]; !dup {
				ret.labels[lb] = i
			}
		}
	}

	/* the first block is always the entry */
	if nb != 0 {
		ret.Root = ret.Blocks[0]
	}

	/* give every block a distinct name, then connect them */
	ret.nameBlocks()
	for _, bb := range ret.Blocks {
		ret.connect(bb)
	}
	return ret
}

// nameBlocks names the entry "block0" and every other block after the label
// it owns. Blocks left over get a positional name, suffixed until it no
// longer collides with any other block name.
func (self *CFG) nameBlocks() {
	for _, bb := range self.Blocks {
		name := ""
		if bb.Id == 0 {
			name = positionalName(0)
		} else if lb, ok := leadingLabel(bb.Ins); ok && self.labels[lb] == bb.Id {
			name = lb
		}

		/* taken names fall back to the positional scheme below */
		if _, taken := self.names[name]; name != "" && !taken {
			bb.Name = name
			self.names[name] = bb.Id
		}
	}

	/* positional names for everything else */
	for _, bb := range self.Blocks {
		if bb.Name != "" {
			continue
		}
		name := positionalName(bb.Id)
		for n := 1; ; n++ {
			if _, taken := self.names[name]; !taken {
				break
			}
			name = fmt.Sprintf("%s_%d", positionalName(bb.Id), n)
		}
		bb.Name = name
		self.names[name] = bb.Id
	}
}

func (self *CFG) connect(bb *BasicBlock) {
	term := bb.Term()

	/* terminators name their targets, anything else falls through */
	switch term.Op {
	case ir.OP_jmp, ir.OP_br:
		for _, lb := range term.Targets() {
			if to, ok := self.labels[lb]; ok {
				self.addEdge(bb.Id, to)
			} else {
				self.Unresolved = append(self.Unresolved, Unresolved{From: bb.Id, Target: lb})
			}
		}
	case ir.OP_ret:
		break
	default:
		if bb.Id+1 < len(self.Blocks) {
			self.addEdge(bb.Id, bb.Id+1)
		}
	}
}

func (self *CFG) addEdge(from int, to int) {
	self.succs[from] = append(self.succs[from], to)

	/* predecessors are kept distinct */
	for _, p := range self.preds[to] {
		if p == from {
			return
		}
	}
	self.preds[to] = append(self.preds[to], from)
}

// Len returns the number of blocks.
func (self *CFG) Len() int {
	return len(self.Blocks)
}

// Lookup finds a block by the label it owns, or else by its name.
func (self *CFG) Lookup(name string) (*BasicBlock, bool) {
	if id, ok := self.labels[name]; ok {
		return self.Blocks[id], true
	} else if id, ok = self.names[name]; ok {
		return self.Blocks[id], true
	} else {
		return nil, false
	}
}

// Successors returns the targets of every outgoing edge of block id in
// terminator order. A br with identical targets yields the target twice.
func (self *CFG) Successors(id int) []int {
	return self.succs[id]
}

// Predecessors returns the distinct predecessors of block id.
func (self *CFG) Predecessors(id int) []int {
	return self.preds[id]
}

// Edges returns every edge, grouped by source block.
func (self *CFG) Edges() []Edge {
	ret := make([]Edge, 0, self.NumEdges())
	for i, ss := range self.succs {
		for _, s := range ss {
			ret = append(ret, Edge{From: i, To: s})
		}
	}
	return ret
}

func (self *CFG) NumEdges() int {
	n := 0
	for _, ss := range self.succs {
		n += len(ss)
	}
	return n
}

// Names maps block ids to block names.
func (self *CFG) Names(ids []int) []string {
	ret := make([]string, len(ids))
	for i, id := range ids {
		ret[i] = self.Blocks[id].Name
	}
	return ret
}

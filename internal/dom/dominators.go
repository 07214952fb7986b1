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
	`github.com/cloudwego/midend/internal/dataflow`
)

// Dominators is the forward must-problem computing the dominator set of
// every block. The entry is pinned to {entry}, every other block starts from
// the full node set and shrinks until stable.
type Dominators struct {
	root int
	all  dataflow.Set[int]
}

func NewDominators(g *cfg.CFG) *Dominators {
	ret := &Dominators{
		all: make(dataflow.Set[int], g.Len()),
	}
	for _, bb := range g.Blocks {
		ret.all.Add(bb.Id)
	}
	if g.Root != nil {
		ret.root = g.Root.Id
	}
	return ret
}

func (*Dominators) Direction() dataflow.Direction {
	return dataflow.Forward
}

func (self *Dominators) Bottom(*cfg.BasicBlock) dataflow.Set[int] {
	return self.all.Clone()
}

func (self *Dominators) Init(bb *cfg.BasicBlock) dataflow.Set[int] {
	if bb.Id == self.root {
		return dataflow.NewSet(bb.Id)
	} else {
		return self.all.Clone()
	}
}

func (*Dominators) Meet(in []dataflow.Set[int]) dataflow.Set[int] {
	return dataflow.Intersection(in)
}

// Transfer computes {n} ∪ IN. A back edge into the entry never widens its
// set.
func (self *Dominators) Transfer(bb *cfg.BasicBlock, in dataflow.Set[int]) dataflow.Set[int] {
	if bb.Id == self.root {
		return dataflow.NewSet(bb.Id)
	}
	ret := in.Clone()
	ret.Add(bb.Id)
	return ret
}

// Sets computes the dominator set of every block, indexed by block id.
// Unreachable blocks keep the full node set.
func Sets(g *cfg.CFG, order dataflow.Order) ([]dataflow.Set[int], int) {
	if g.Len() == 0 {
		return nil, 0
	}
	r := dataflow.Solve[int](g, NewDominators(g), order)
	return r.Out, r.Visits
}

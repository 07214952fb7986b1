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

package dataflow

import (
	`fmt`

	`github.com/cloudwego/midend/internal/cfg`
)

// Definition identifies one assignment: the variable, the block holding it
// and its index inside the block.
type Definition struct {
	Var   string
	Block string
	Index int
}

func (self Definition) String() string {
	return fmt.Sprintf("(%s, %s, #%d)", self.Var, self.Block, self.Index)
}

// DefinitionLess orders definitions by block, index, then variable.
func DefinitionLess(a Definition, b Definition) bool {
	if a.Block != b.Block {
		return a.Block < b.Block
	} else if a.Index != b.Index {
		return a.Index < b.Index
	} else {
		return a.Var < b.Var
	}
}

// GenKill computes the local sets of a block. GEN holds the last definition
// of every variable, KILL holds the definitions overwritten later in the
// same block.
func GenKill(bb *cfg.BasicBlock) (gen Set[Definition], kill Set[Definition]) {
	last := make(map[string]Definition)
	kill = make(Set[Definition])

	/* scan every definition in order */
	for i, ins := range bb.Ins {
		if dest, ok := ins.Defines(); ok {
			def := Definition{Var: dest, Block: bb.Name, Index: i}
			if old, ok := last[dest]; ok {
				kill.Add(old)
			}
			last[dest] = def
		}
	}

	/* the surviving definitions are generated */
	gen = make(Set[Definition], len(last))
	for _, def := range last {
		gen.Add(def)
	}
	return
}

// ReachingDefinitions is the forward may-problem over Definitions.
type ReachingDefinitions struct {
	gen  []Set[Definition]
	kill []Set[Definition]
}

func NewReachingDefinitions(g *cfg.CFG) *ReachingDefinitions {
	ret := &ReachingDefinitions{
		gen:  make([]Set[Definition], g.Len()),
		kill: make([]Set[Definition], g.Len()),
	}
	for _, bb := range g.Blocks {
		ret.gen[bb.Id], ret.kill[bb.Id] = GenKill(bb)
	}
	return ret
}

func (self *ReachingDefinitions) Gen(id int) Set[Definition] { return self.gen[id] }
func (self *ReachingDefinitions) Kill(id int) Set[Definition] { return self.kill[id] }

func (*ReachingDefinitions) Direction() Direction {
	return Forward
}

func (*ReachingDefinitions) Bottom(*cfg.BasicBlock) Set[Definition] {
	return make(Set[Definition])
}

func (self *ReachingDefinitions) Init(bb *cfg.BasicBlock) Set[Definition] {
	return self.gen[bb.Id].Clone()
}

func (*ReachingDefinitions) Meet(in []Set[Definition]) Set[Definition] {
	return Union(in)
}

// Transfer computes GEN ∪ (IN − KILL).
func (self *ReachingDefinitions) Transfer(bb *cfg.BasicBlock, in Set[Definition]) Set[Definition] {
	return self.gen[bb.Id].Union(in.Minus(self.kill[bb.Id]))
}

// Reaching runs reaching-definitions analysis over g.
func Reaching(g *cfg.CFG, order Order) *Result[Definition] {
	return Solve[Definition](g, NewReachingDefinitions(g), order)
}

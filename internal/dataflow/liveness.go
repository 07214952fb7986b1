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
	`github.com/cloudwego/midend/internal/cfg`
)

// UseDef computes the names a block reads before writing them, and the
// names it writes.
func UseDef(bb *cfg.BasicBlock) (use Set[string], def Set[string]) {
	use = make(Set[string])
	def = make(Set[string])

	/* operands are read before the destination is written */
	for _, ins := range bb.Ins {
		for _, v := range ins.Uses() {
			if !def.Has(v) {
				use.Add(v)
			}
		}
		if dest, ok := ins.Defines(); ok {
			def.Add(dest)
		}
	}
	return
}

// LiveVariables is the backward may-problem over variable names.
type LiveVariables struct {
	use []Set[string]
	def []Set[string]
}

func NewLiveVariables(g *cfg.CFG) *LiveVariables {
	ret := &LiveVariables{
		use: make([]Set[string], g.Len()),
		def: make([]Set[string], g.Len()),
	}
	for _, bb := range g.Blocks {
		ret.use[bb.Id], ret.def[bb.Id] = UseDef(bb)
	}
	return ret
}

func (*LiveVariables) Direction() Direction {
	return Backward
}

func (*LiveVariables) Bottom(*cfg.BasicBlock) Set[string] {
	return make(Set[string])
}

func (self *LiveVariables) Init(bb *cfg.BasicBlock) Set[string] {
	return self.use[bb.Id].Clone()
}

func (*LiveVariables) Meet(in []Set[string]) Set[string] {
	return Union(in)
}

// Transfer computes USE ∪ (OUT − DEF).
func (self *LiveVariables) Transfer(bb *cfg.BasicBlock, out Set[string]) Set[string] {
	return self.use[bb.Id].Union(out.Minus(self.def[bb.Id]))
}

// Liveness holds the live names at the entry and the exit of every block.
type Liveness struct {
	LiveIn  []Set[string]
	LiveOut []Set[string]
	Visits  int
}

// Live runs live-variables analysis over g.
func Live(g *cfg.CFG, order Order) *Liveness {
	r := Solve[string](g, NewLiveVariables(g), order)
	return &Liveness{
		LiveIn:  r.Out,
		LiveOut: r.In,
		Visits:  r.Visits,
	}
}

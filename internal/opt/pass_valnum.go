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

package opt

import (
	`sort`

	`github.com/cloudwego/midend/ir`
)

// _ValueKey identifies a value independently of the names holding it. A
// key with op OP_id stands for the value number x itself.
type _ValueKey struct {
	op  ir.OpCode
	lit ir.Literal
	x   int
	y   int
}

type _ValueTable struct {
	vars  map[string]int
	keys  map[_ValueKey]int
	canon map[int]string
	expr  map[int]_ValueKey
	konst map[int]ir.Literal
}

func newValueTable() *_ValueTable {
	return &_ValueTable{
		vars:  make(map[string]int),
		keys:  make(map[_ValueKey]int),
		canon: make(map[int]string),
		expr:  make(map[int]_ValueKey),
		konst: make(map[int]ir.Literal),
	}
}

func (self *_ValueTable) mint(key _ValueKey) int {
	n := len(self.expr) + 1
	self.keys[key] = n
	self.expr[n] = key
	return n
}

// number returns the value number of a name. Names not defined earlier in
// the block are block inputs and get a number of their own.
func (self *_ValueTable) number(name string) int {
	if n, ok := self.vars[name]; ok {
		return n
	}
	n := self.mint(_ValueKey{op: ir.OP_id, x: len(self.expr) + 1})
	self.vars[name] = n
	self.canon[n] = name
	return n
}

// canonical returns the name holding the same value as name that every
// later use should read.
func (self *_ValueTable) canonical(name string) string {
	return self.canon[self.number(name)]
}

func (self *_ValueTable) key(ins ir.Instr) _ValueKey {
	switch ins.Op {
	case ir.OP_const:
		return _ValueKey{op: ir.OP_const, lit: ins.Lit}
	case ir.OP_id, ir.OP_move:
		return self.expr[self.number(ins.X)]
	default:
		x, y := self.number(ins.X), self.number(ins.Y)
		if ins.Op.IsCommutative() && x > y {
			x, y = y, x
		}
		return _ValueKey{op: ins.Op, x: x, y: y}
	}
}

// assign makes dest hold value n. When dest was the canonical holder of its
// previous value, another holder takes over, if any is left.
func (self *_ValueTable) assign(dest string, n int) {
	if old, ok := self.vars[dest]; ok && old != n && self.canon[old] == dest {
		var alt []string
		for v, m := range self.vars {
			if m == old && v != dest {
				alt = append(alt, v)
			}
		}
		if len(alt) == 0 {
			delete(self.canon, old)
		} else {
			sort.Strings(alt)
			self.canon[old] = alt[0]
		}
	}

	/* first holder of a value becomes canonical */
	self.vars[dest] = n
	if _, ok := self.canon[n]; !ok {
		self.canon[n] = dest
	}
}

// ValueNumbering performs local value numbering on a block: redundant
// computations become copies of the first name holding the same value and
// every operand is rewritten to that name.
type ValueNumbering struct{}

func (ValueNumbering) Apply(ins []ir.Instr) []ir.Instr {
	vt := newValueTable()
	ret := make([]ir.Instr, 0, len(ins))

	/* scan every instruction */
	for _, v := range ins {
		if !v.Op.Defines() {
			ret = append(ret, v.MapUses(vt.canonical))
			continue
		}

		/* look up the expression key */
		key := vt.key(v)
		num, hit := vt.keys[key]

		/* first time this value is computed */
		if !hit {
			num = vt.mint(key)
			if v.Op == ir.OP_const {
				vt.konst[num] = v.Lit
			}
			ret = append(ret, v.MapUses(vt.canonical))
			vt.assign(v.Dest, num)
			continue
		}

		/* redundant, replay the constant or copy from the holder */
		if lit, ok := vt.konst[num]; ok {
			ret = append(ret, ir.Const(v.Dest, lit))
		} else if src, ok := vt.canon[num]; ok {
			ret = append(ret, ir.Id(v.Dest, src))
		} else {
			ret = append(ret, v.MapUses(vt.canonical))
		}

		/* alias the destination */
		vt.assign(v.Dest, num)
	}
	return ret
}

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

package ir

import (
	`fmt`
)

type OpCode uint8

const (
	OP_const OpCode = iota // Lit -> Dest
	OP_add                 // X + Y -> Dest
	OP_mul                 // X * Y -> Dest
	OP_eq                  // X == Y -> Dest
	OP_move                // X -> Dest
	OP_id                  // X -> Dest
	OP_jmp                 // goto Label
	OP_br                  // if X goto Label else goto Else
	OP_ret                 // return [X]
	OP_label               // Label:
	OP_print               // print X
	_OP_max
)

type _Operand uint8

const (
	_O_none _Operand = iota
	_O_x
	_O_xy
	_O_optx
)

type _OpInfo struct {
	name string
	defs bool
	uses _Operand
	term bool
	pure bool
	comm bool
}

// _OpTable is the only place where opcode capabilities are described, every
// query on an instruction is answered from here.
var _OpTable = [...]_OpInfo{
	OP_const: {name: "const", defs: true, uses: _O_none, pure: true},
	OP_add:   {name: "add", defs: true, uses: _O_xy, pure: true, comm: true},
	OP_mul:   {name: "mul", defs: true, uses: _O_xy, pure: true, comm: true},
	OP_eq:    {name: "eq", defs: true, uses: _O_xy, pure: true},
	OP_move:  {name: "move", defs: true, uses: _O_x, pure: true},
	OP_id:    {name: "id", defs: true, uses: _O_x, pure: true},
	OP_jmp:   {name: "jmp", term: true},
	OP_br:    {name: "br", uses: _O_x, term: true},
	OP_ret:   {name: "ret", uses: _O_optx, term: true},
	OP_label: {name: "label"},
	OP_print: {name: "print", uses: _O_x},
}

func (self OpCode) info() *_OpInfo {
	if self >= _OP_max {
		panic(fmt.Sprintf("ir: invalid opcode: %d", self))
	} else {
		return &_OpTable[self]
	}
}

func (self OpCode) String() string {
	if self >= _OP_max {
		return fmt.Sprintf("op(%d)", uint8(self))
	} else {
		return _OpTable[self].name
	}
}

// Defines reports whether the opcode writes its destination.
func (self OpCode) Defines() bool { return self.info().defs }

// IsTerminator reports whether the opcode ends a basic block.
func (self OpCode) IsTerminator() bool { return self.info().term }

// IsPure reports whether the opcode computes a value without side effects.
func (self OpCode) IsPure() bool { return self.info().pure }

// IsCommutative reports whether the operands can be swapped freely.
func (self OpCode) IsCommutative() bool { return self.info().comm }

// IsCopy reports whether the opcode is a plain copy (move or id).
func (self OpCode) IsCopy() bool { return self == OP_move || self == OP_id }

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

// Instr is a single three-address instruction. Which fields are meaningful
// depends on Op:
//
//	const  Dest, Type, Lit
//	add    Dest, X, Y
//	mul    Dest, X, Y
//	eq     Dest, X, Y
//	move   Dest, X
//	id     Dest, X
//	jmp    Label
//	br     X, Label, Else
//	ret    X (empty when no value is returned)
//	label  Label
//	print  X
//
// Instr is comparable with ==.
type Instr struct {
	Op    OpCode
	Dest  string
	X     string
	Y     string
	Type  Type
	Lit   Literal
	Label string
	Else  string
}

func Const(dest string, lit Literal) Instr {
	return Instr{Op: OP_const, Dest: dest, Type: lit.Type(), Lit: lit}
}

func Add(dest string, x string, y string) Instr {
	return Instr{Op: OP_add, Dest: dest, X: x, Y: y}
}

func Mul(dest string, x string, y string) Instr {
	return Instr{Op: OP_mul, Dest: dest, X: x, Y: y}
}

func Eq(dest string, x string, y string) Instr {
	return Instr{Op: OP_eq, Dest: dest, X: x, Y: y}
}

func Move(dest string, src string) Instr {
	return Instr{Op: OP_move, Dest: dest, X: src}
}

func Id(dest string, src string) Instr {
	return Instr{Op: OP_id, Dest: dest, X: src}
}

func Jmp(label string) Instr {
	return Instr{Op: OP_jmp, Label: label}
}

func Br(cond string, then string, otherwise string) Instr {
	return Instr{Op: OP_br, X: cond, Label: then, Else: otherwise}
}

// Ret creates a return instruction, value may be empty.
func Ret(value string) Instr {
	return Instr{Op: OP_ret, X: value}
}

func Label(name string) Instr {
	return Instr{Op: OP_label, Label: name}
}

func Print(value string) Instr {
	return Instr{Op: OP_print, X: value}
}

// Defines returns the destination of the instruction, if it has one.
func (self Instr) Defines() (string, bool) {
	if self.Op.Defines() {
		return self.Dest, true
	} else {
		return "", false
	}
}

// Uses returns the names read by the instruction, in operand order.
func (self Instr) Uses() []string {
	switch self.Op.info().uses {
	case _O_x:
		return []string{self.X}
	case _O_xy:
		return []string{self.X, self.Y}
	case _O_optx:
		if self.X != "" {
			return []string{self.X}
		}
	}
	return nil
}

// MapUses returns a copy of the instruction with every read name replaced
// by fn(name). The destination is left untouched.
func (self Instr) MapUses(fn func(string) string) Instr {
	switch self.Op.info().uses {
	case _O_x:
		self.X = fn(self.X)
	case _O_xy:
		self.X = fn(self.X)
		self.Y = fn(self.Y)
	case _O_optx:
		if self.X != "" {
			self.X = fn(self.X)
		}
	}
	return self
}

// IsTerminator reports whether the instruction ends a basic block.
func (self Instr) IsTerminator() bool {
	return self.Op.IsTerminator()
}

// Targets returns the labels the instruction may transfer control to, in
// the order they are tried (then before else).
func (self Instr) Targets() []string {
	switch self.Op {
	case OP_jmp:
		return []string{self.Label}
	case OP_br:
		return []string{self.Label, self.Else}
	default:
		return nil
	}
}

func (self Instr) String() string {
	switch self.Op {
	case OP_const:
		return fmt.Sprintf("%s: %s = const %s", self.Dest, self.Type, self.Lit)
	case OP_add, OP_mul, OP_eq:
		return fmt.Sprintf("%s = %s %s %s", self.Dest, self.Op, self.X, self.Y)
	case OP_move, OP_id:
		return fmt.Sprintf("%s = %s %s", self.Dest, self.Op, self.X)
	case OP_jmp:
		return "jmp ." + self.Label
	case OP_br:
		return fmt.Sprintf("br %s .%s .%s", self.X, self.Label, self.Else)
	case OP_ret:
		if self.X == "" {
			return "ret"
		} else {
			return "ret " + self.X
		}
	case OP_label:
		return "." + self.Label + ":"
	case OP_print:
		return "print " + self.X
	default:
		return self.Op.String()
	}
}

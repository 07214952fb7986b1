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
	`strings`
)

// Function is the unit of analysis: a name and a flat instruction sequence.
type Function struct {
	Name   string
	Instrs []Instr
}

func (self Function) String() string {
	buf := make([]string, 0, len(self.Instrs))

	/* labels are flush with the margin, everything else is indented */
	for _, ins := range self.Instrs {
		if ins.Op == OP_label {
			buf = append(buf, ins.String())
		} else {
			buf = append(buf, "    "+ins.String())
		}
	}

	/* join them together */
	return fmt.Sprintf(
		"@%s {\n%s\n}",
		self.Name,
		strings.Join(buf, "\n"),
	)
}

// Builder composes a Function instruction by instruction.
type Builder struct {
	name string
	ins  []Instr
}

func CreateBuilder(name string) *Builder {
	return &Builder{name: name}
}

func (self *Builder) add(ins Instr) *Builder {
	self.ins = append(self.ins, ins)
	return self
}

func (self *Builder) Int(dest string, v int64) *Builder { return self.add(Const(dest, IntLit(v))) }
func (self *Builder) Bool(dest string, v bool) *Builder { return self.add(Const(dest, BoolLit(v))) }
func (self *Builder) Add(dest, x, y string) *Builder { return self.add(Add(dest, x, y)) }
func (self *Builder) Mul(dest, x, y string) *Builder { return self.add(Mul(dest, x, y)) }
func (self *Builder) Eq(dest, x, y string) *Builder { return self.add(Eq(dest, x, y)) }
func (self *Builder) Move(dest, src string) *Builder { return self.add(Move(dest, src)) }
func (self *Builder) Id(dest, src string) *Builder { return self.add(Id(dest, src)) }
func (self *Builder) Jmp(label string) *Builder { return self.add(Jmp(label)) }
func (self *Builder) Br(cond, then, other string) *Builder { return self.add(Br(cond, then, other)) }
func (self *Builder) Ret(value string) *Builder { return self.add(Ret(value)) }
func (self *Builder) Label(name string) *Builder { return self.add(Label(name)) }
func (self *Builder) Print(value string) *Builder { return self.add(Print(value)) }

// Build returns the composed function. The builder can be reused, the
// returned function does not share storage with it.
func (self *Builder) Build() Function {
	ins := make([]Instr, len(self.ins))
	copy(ins, self.ins)
	return Function{Name: self.name, Instrs: ins}
}

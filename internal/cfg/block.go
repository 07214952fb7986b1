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
	`strings`

	`github.com/cloudwego/midend/ir`
)

// BasicBlock is a node of the CFG. Id is the block's position in the
// function, Name is either its leading label or a positional name, and is
// unique within the CFG.
type BasicBlock struct {
	Id   int
	Name string
	Ins  []ir.Instr
}

// Term returns the last instruction of the block. The block must not be empty.
func (self *BasicBlock) Term() ir.Instr {
	if len(self.Ins) == 0 {
		panic(fmt.Sprintf("cfg: basic block %s is empty", self.Name))
	} else {
		return self.Ins[len(self.Ins)-1]
	}
}

func (self *BasicBlock) String() string {
	buf := make([]string, 0, len(self.Ins))

	/* dump every instruction */
	for _, ins := range self.Ins {
		buf = append(buf, "    "+ins.String())
	}

	/* join them together */
	return fmt.Sprintf(
		"bb_%d (%s) {\n%s\n}",
		self.Id,
		self.Name,
		strings.Join(buf, "\n"),
	)
}

func leadingLabel(ins []ir.Instr) (string, bool) {
	if len(ins) != 0 && ins[0].Op == ir.OP_label {
		return ins[0].Label, true
	} else {
		return "", false
	}
}

func positionalName(id int) string {
	return fmt.Sprintf("block%d", id)
}

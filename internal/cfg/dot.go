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
	`html`
	`strings`

	`github.com/cloudwego/midend/ir`
	`github.com/oleiade/lane`
)

func dumpbb(bb *BasicBlock, meta []string) string {
	buf := []string{
		`<table border="1" cellborder="0" cellspacing="0">`,
		fmt.Sprintf(`<tr><td>%s</td></tr>`, html.EscapeString(bb.Name)),
		`<hr/>`,
	}

	/* dump every instruction */
	for _, ins := range bb.Ins {
		vv := strings.ReplaceAll(html.EscapeString(ins.String()), " ", "&nbsp;")
		buf = append(buf, fmt.Sprintf(`<tr><td align="left">%s</td></tr>`, vv))
	}

	/* annotations go below the instructions */
	if len(meta) != 0 {
		buf = append(buf, `<hr/>`)
	}
	for _, m := range meta {
		vv := strings.ReplaceAll(html.EscapeString(m), " ", "&nbsp;")
		buf = append(buf, fmt.Sprintf(`<tr><td align="left">%s</td></tr>`, vv))
	}

	/* close the table */
	buf = append(buf, "</table>")
	return strings.Join(buf, "")
}

func edgeLabel(bb *BasicBlock, i int, n int) string {
	switch term := bb.Term(); term.Op {
	case ir.OP_jmp:
		return "goto"
	case ir.OP_br:
		if n != 2 {
			return "branch"
		} else if i == 0 {
			return "then"
		} else {
			return "else"
		}
	default:
		return "fallthrough"
	}
}

// Dot renders the CFG in Graphviz format. Blocks are emitted breadth-first
// from the entry, unreachable blocks come last.
func (self *CFG) Dot() string {
	return self.DotWith(nil)
}

// DotWith renders the CFG like Dot, with the lines returned by meta added
// under the instructions of every block.
func (self *CFG) DotWith(meta func(bb *BasicBlock) []string) string {
	q := lane.NewQueue()
	n := make([]bool, len(self.Blocks))
	buf := []string{
		"digraph CFG {",
		`    node [ shape = "plaintext" ]`,
	}

	/* seed the queue with the entry */
	if self.Root != nil {
		n[self.Root.Id] = true
		q.Enqueue(self.Root)
		buf = append(buf, `    START [ shape = "circle" ]`, fmt.Sprintf(`    START -> bb_%d`, self.Root.Id))
	}

	/* unreachable blocks are appended after the BFS */
	emit := func(p *BasicBlock) {
		var mm []string
		if meta != nil {
			mm = meta(p)
		}
		buf = append(buf, fmt.Sprintf(`    bb_%d [ label = < %s > ]`, p.Id, dumpbb(p, mm)))
		ss := self.succs[p.Id]
		for i, s := range ss {
			buf = append(buf, fmt.Sprintf(`    bb_%d -> bb_%d [ label = "%s" ]`, p.Id, s, edgeLabel(p, i, len(ss))))
		}
	}

	/* breadth-first from the entry */
	for !q.Empty() {
		p := q.Dequeue().(*BasicBlock)
		emit(p)

		/* enqueue all the unvisited successors */
		for _, s := range self.succs[p.Id] {
			if !n[s] {
				n[s] = true
				q.Enqueue(self.Blocks[s])
			}
		}
	}

	/* dump the rest */
	for i, ok := range n {
		if !ok {
			emit(self.Blocks[i])
		}
	}

	/* close the graph */
	buf = append(buf, "}")
	return strings.Join(buf, "\n")
}

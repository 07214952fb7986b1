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
	`strings`
	`testing`

	`github.com/stretchr/testify/assert`
	`github.com/stretchr/testify/require`
)

func TestOpTable_Complete(t *testing.T) {
	require.Len(t, _OpTable, int(_OP_max))
	for op := OpCode(0); op < _OP_max; op++ {
		assert.NotEmpty(t, _OpTable[op].name, "opcode %d has no table entry", op)
	}
	assert.Panics(t, func() { _OP_max.Defines() })
	assert.Equal(t, "op(200)", OpCode(200).String())
}

func TestInstr_DefsAndUses(t *testing.T) {
	tests := []struct {
		name string
		ins  Instr
		dest string
		defs bool
		uses []string
		term bool
	}{
		{name: "const", ins: Const("a", IntLit(1)), dest: "a", defs: true},
		{name: "add", ins: Add("c", "a", "b"), dest: "c", defs: true, uses: []string{"a", "b"}},
		{name: "mul", ins: Mul("c", "a", "b"), dest: "c", defs: true, uses: []string{"a", "b"}},
		{name: "eq", ins: Eq("c", "a", "b"), dest: "c", defs: true, uses: []string{"a", "b"}},
		{name: "move", ins: Move("b", "a"), dest: "b", defs: true, uses: []string{"a"}},
		{name: "id", ins: Id("b", "a"), dest: "b", defs: true, uses: []string{"a"}},
		{name: "jmp", ins: Jmp("L"), term: true},
		{name: "br", ins: Br("c", "T", "F"), uses: []string{"c"}, term: true},
		{name: "ret value", ins: Ret("v"), uses: []string{"v"}, term: true},
		{name: "ret void", ins: Ret(""), term: true},
		{name: "label", ins: Label("L")},
		{name: "print", ins: Print("v"), uses: []string{"v"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest, ok := tt.ins.Defines()
			assert.Equal(t, tt.defs, ok)
			assert.Equal(t, tt.dest, dest)
			assert.Equal(t, tt.uses, tt.ins.Uses())
			assert.Equal(t, tt.term, tt.ins.IsTerminator())
		})
	}
}

func TestInstr_MapUses(t *testing.T) {
	up := strings.ToUpper
	assert.Equal(t, Add("c", "A", "B"), Add("c", "a", "b").MapUses(up))
	assert.Equal(t, Br("C", "then", "else"), Br("c", "then", "else").MapUses(up))
	assert.Equal(t, Ret(""), Ret("").MapUses(up))
	assert.Equal(t, Const("a", IntLit(3)), Const("a", IntLit(3)).MapUses(up))
}

func TestInstr_Targets(t *testing.T) {
	assert.Equal(t, []string{"T", "F"}, Br("c", "T", "F").Targets())
	assert.Equal(t, []string{"L"}, Jmp("L").Targets())
	assert.Nil(t, Ret("x").Targets())
}

func TestLiteral_Comparable(t *testing.T) {
	m := map[Literal]int{IntLit(1): 1, BoolLit(true): 2}
	assert.Equal(t, 1, m[IntLit(1)])
	assert.Equal(t, 2, m[BoolLit(true)])
	assert.NotEqual(t, IntLit(0), BoolLit(false))
	v, ok := IntLit(42).Int()
	assert.True(t, ok)
	assert.Equal(t, int64(42), v)
	_, ok = BoolLit(true).Int()
	assert.False(t, ok)
	assert.Equal(t, Bool, BoolLit(false).Type())
	assert.Equal(t, Int, IntLit(0).Type())
}

func TestFunction_String(t *testing.T) {
	fn := CreateBuilder("main").
		Bool("v0", true).
		Br("v0", "then", "else").
		Label("then").
		Ret("").
		Build()
	exp := "@main {\n" +
		"    v0: bool = const true\n" +
		"    br v0 .then .else\n" +
		".then:\n" +
		"    ret\n" +
		"}"
	assert.Equal(t, exp, fn.String())
}

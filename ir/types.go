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
	`strconv`
)

// Type is the static tag of a value.
type Type uint8

const (
	Int Type = iota
	Float
	Bool
)

var _TypeNames = [...]string{
	Int:   "int",
	Float: "float",
	Bool:  "bool",
}

func (self Type) String() string {
	if int(self) < len(_TypeNames) {
		return _TypeNames[self]
	} else {
		return fmt.Sprintf("type(%d)", uint8(self))
	}
}

type _LiteralKind uint8

const (
	_L_int _LiteralKind = iota
	_L_bool
)

// Literal is a constant value. It is comparable, so it can be used directly
// as a map key by value numbering and constant folding.
//
// There is no floating point literal, Float values are never produced.
type Literal struct {
	k _LiteralKind
	i int64
	b bool
}

// IntLit creates an integer literal.
func IntLit(v int64) Literal {
	return Literal{k: _L_int, i: v}
}

// BoolLit creates a boolean literal.
func BoolLit(v bool) Literal {
	return Literal{k: _L_bool, b: v}
}

// Type returns the static type of the literal.
func (self Literal) Type() Type {
	if self.k == _L_bool {
		return Bool
	} else {
		return Int
	}
}

// Int returns the integer value and whether the literal is an integer.
func (self Literal) Int() (int64, bool) {
	return self.i, self.k == _L_int
}

// Bool returns the boolean value and whether the literal is a boolean.
func (self Literal) Bool() (bool, bool) {
	return self.b, self.k == _L_bool
}

func (self Literal) String() string {
	if self.k == _L_bool {
		return strconv.FormatBool(self.b)
	} else {
		return strconv.FormatInt(self.i, 10)
	}
}

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
	`sort`
	`strings`
)

type (
	Set[T comparable] map[T]struct{}
)

func NewSet[T comparable](vs ...T) Set[T] {
	ret := make(Set[T], len(vs))
	for _, v := range vs {
		ret[v] = struct{}{}
	}
	return ret
}

func (self Set[T]) Add(v T) bool {
	if _, ok := self[v]; ok {
		return false
	} else {
		self[v] = struct{}{}
		return true
	}
}

func (self Set[T]) Has(v T) bool {
	_, ok := self[v]
	return ok
}

func (self Set[T]) Remove(v T) bool {
	if _, ok := self[v]; !ok {
		return false
	} else {
		delete(self, v)
		return true
	}
}

func (self Set[T]) Len() int {
	return len(self)
}

func (self Set[T]) Clone() Set[T] {
	ret := make(Set[T], len(self))
	for v := range self {
		ret[v] = struct{}{}
	}
	return ret
}

// Union returns a new set holding the elements of both sets.
func (self Set[T]) Union(other Set[T]) Set[T] {
	ret := self.Clone()
	for v := range other {
		ret[v] = struct{}{}
	}
	return ret
}

// Intersect returns a new set holding the elements present in both sets.
func (self Set[T]) Intersect(other Set[T]) Set[T] {
	ret := make(Set[T])
	for v := range self {
		if other.Has(v) {
			ret[v] = struct{}{}
		}
	}
	return ret
}

// Minus returns a new set holding the elements not present in other.
func (self Set[T]) Minus(other Set[T]) Set[T] {
	ret := make(Set[T], len(self))
	for v := range self {
		if !other.Has(v) {
			ret[v] = struct{}{}
		}
	}
	return ret
}

func (self Set[T]) Equal(other Set[T]) bool {
	if len(self) != len(other) {
		return false
	}
	for v := range self {
		if !other.Has(v) {
			return false
		}
	}
	return true
}

// Sorted returns the elements ordered by less.
func (self Set[T]) Sorted(less func(a T, b T) bool) []T {
	ret := make([]T, 0, len(self))
	for v := range self {
		ret = append(ret, v)
	}
	sort.Slice(ret, func(i int, j int) bool {
		return less(ret[i], ret[j])
	})
	return ret
}

func (self Set[T]) String() string {
	rs := make([]string, 0, len(self))

	/* convert every element */
	for v := range self {
		rs = append(rs, fmt.Sprint(v))
	}

	/* sort for a stable representation */
	sort.Strings(rs)
	return fmt.Sprintf(
		"{%s}",
		strings.Join(rs, ", "),
	)
}

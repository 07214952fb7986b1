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

	`github.com/cloudwego/midend/internal/cfg`
	`github.com/oleiade/lane`
)

type Direction uint8

const (
	Forward Direction = iota
	Backward
)

func (self Direction) String() string {
	switch self {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("direction(%d)", uint8(self))
	}
}

// Order selects which end of the worklist is popped. It changes the number
// of visits, never the fixed point.
type Order uint8

const (
	LIFO Order = iota
	FIFO
)

func (self Order) String() string {
	switch self {
	case LIFO:
		return "lifo"
	case FIFO:
		return "fifo"
	default:
		return fmt.Sprintf("order(%d)", uint8(self))
	}
}

// ParseOrder converts "lifo" or "fifo" into an Order.
func ParseOrder(s string) (Order, bool) {
	switch s {
	case "lifo":
		return LIFO, true
	case "fifo":
		return FIFO, true
	default:
		return 0, false
	}
}

// Problem describes a monotone dataflow problem over sets of T.
//
// In and Out are named along the flow direction: for a backward problem, In
// is the meet over successors and Out is the value at the block entry.
type Problem[T comparable] interface {
	Direction() Direction

	// Bottom is the initial In of every block.
	Bottom(bb *cfg.BasicBlock) Set[T]

	// Init is the initial Out of every block. Blocks without flow inputs
	// keep it as their final value.
	Init(bb *cfg.BasicBlock) Set[T]

	// Meet combines the Out sets of the flow inputs of a block.
	Meet(in []Set[T]) Set[T]

	// Transfer computes the Out set of a block from its In set.
	Transfer(bb *cfg.BasicBlock, in Set[T]) Set[T]
}

type Result[T comparable] struct {
	In     []Set[T]
	Out    []Set[T]
	Visits int
}

func (self *Result[T]) String() string {
	buf := make([]byte, 0, 64)
	for i := range self.In {
		buf = append(buf, fmt.Sprintf("bb_%d: in = %s, out = %s\n", i, self.In[i], self.Out[i])...)
	}
	return string(buf)
}

// Solve runs the worklist algorithm until no Out set changes.
func Solve[T comparable](g *cfg.CFG, p Problem[T], order Order) *Result[T] {
	nb := g.Len()
	ins := g.Predecessors
	outs := g.Successors

	/* backward problems flow along the reversed edges */
	if p.Direction() == Backward {
		ins, outs = g.Successors, g.Predecessors
	}

	/* initialize every block */
	ret := &Result[T]{
		In:  make([]Set[T], nb),
		Out: make([]Set[T], nb),
	}
	for _, bb := range g.Blocks {
		ret.In[bb.Id] = p.Bottom(bb)
		ret.Out[bb.Id] = p.Init(bb)
	}

	/* every block starts on the worklist */
	wl := lane.NewDeque()
	queued := make([]bool, nb)
	for i := 0; i < nb; i++ {
		wl.Append(i)
		queued[i] = true
	}

	/* iterate until the worklist drains */
	for !wl.Empty() {
		var b int
		if order == FIFO {
			b = wl.Shift().(int)
		} else {
			b = wl.Pop().(int)
		}

		/* blocks without inputs keep their initial value */
		queued[b] = false
		ret.Visits++
		src := ins(b)
		if len(src) == 0 {
			continue
		}

		/* meet over the flow inputs */
		vals := make([]Set[T], len(src))
		for i, s := range src {
			vals[i] = ret.Out[s]
		}

		/* apply the transfer function */
		bb := g.Blocks[b]
		ret.In[b] = p.Meet(vals)
		nv := p.Transfer(bb, ret.In[b])

		/* nothing changed, successors are not affected */
		if nv.Equal(ret.Out[b]) {
			continue
		}

		/* propagate the change */
		ret.Out[b] = nv
		for _, s := range outs(b) {
			if !queued[s] {
				queued[s] = true
				wl.Append(s)
			}
		}
	}
	return ret
}

// Union is the meet of may-problems.
func Union[T comparable](in []Set[T]) Set[T] {
	ret := make(Set[T])
	for _, s := range in {
		for v := range s {
			ret[v] = struct{}{}
		}
	}
	return ret
}

// Intersection is the meet of must-problems. It expects at least one set.
func Intersection[T comparable](in []Set[T]) Set[T] {
	ret := in[0].Clone()
	for _, s := range in[1:] {
		for v := range ret {
			if !s.Has(v) {
				delete(ret, v)
			}
		}
	}
	return ret
}

// Converge applies step until equal reports that two consecutive values are
// the same, or until max rounds were applied when max is positive. It
// returns the final value and the number of rounds.
func Converge[T any](x T, step func(T) T, equal func(T, T) bool, max int) (T, int) {
	for n := 1; ; n++ {
		y := step(x)
		if equal(x, y) || (max > 0 && n >= max) {
			return y, n
		}
		x = y
	}
}

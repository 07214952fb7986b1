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

package midend

import (
	"fmt"

	"github.com/cloudwego/midend/internal/dataflow"
	"github.com/cloudwego/midend/internal/dom"
	"github.com/cloudwego/midend/internal/opts"
)

// Option is the property setter function for opts.Options.
type Option func(*opts.Options)

// WithWorklistOrder selects which end of the dataflow worklist is popped,
// "lifo" or "fifo". It changes the amount of work, never the results.
//
// The default value of this option is "lifo".
func WithWorklistOrder(order string) Option {
	if v, ok := dataflow.ParseOrder(order); !ok {
		panic(fmt.Sprintf("midend: invalid worklist order: %q", order))
	} else {
		return func(o *opts.Options) { o.WorklistOrder = v }
	}
}

// WithIdomStrategy selects how immediate dominators are derived:
// "cardinality" picks the strict dominator with the largest dominator set,
// "lengauer-tarjan" runs the Lengauer-Tarjan algorithm.
//
// Both agree on every block reachable from the entry. Unreachable blocks
// never have an immediate dominator.
//
// The default value of this option is "cardinality".
func WithIdomStrategy(strategy string) Option {
	if v, ok := dom.ParseStrategy(strategy); !ok {
		panic(fmt.Sprintf("midend: invalid idom strategy: %q", strategy))
	} else {
		return func(o *opts.Options) { o.IdomStrategy = v }
	}
}

// WithMaxDCERounds bounds the number of dead-code elimination rounds run on
// every block.
//
// Set this option to "0" disables this limit, which means running until the
// block stops shrinking.
//
// The default value of this option is "0".
func WithMaxDCERounds(rounds int) Option {
	if rounds < 0 {
		panic(fmt.Sprintf("midend: invalid DCE rounds: %d", rounds))
	} else {
		return func(o *opts.Options) { o.MaxDCERounds = rounds }
	}
}

// WithParallelism sets how many functions AnalyzeAll analyzes at once.
//
// The default value of this option is GOMAXPROCS.
func WithParallelism(n int) Option {
	if n <= 0 {
		panic(fmt.Sprintf("midend: invalid parallelism: %d", n))
	} else {
		return func(o *opts.Options) { o.Parallelism = n }
	}
}

// WithSplitAtLabels makes every label head its own basic block, so every
// label can be the target of an edge.
func WithSplitAtLabels(v bool) Option {
	return func(o *opts.Options) { o.SplitAtLabels = v }
}

// WithStrict turns jumps to unknown labels into an UnresolvedTargetError
// instead of silently dropping the edge.
func WithStrict(v bool) Option {
	return func(o *opts.Options) { o.Strict = v }
}

// WithConfigFile loads options from a TOML file. Only the keys present in
// the file are set: options given before this one keep their value unless
// the file overrides them, options given after this one still apply.
func WithConfigFile(path string) (Option, error) {
	if ov, err := opts.ReadFile(path); err != nil {
		return nil, err
	} else {
		return Option(ov), nil
	}
}

// SetMaxDCERounds sets the default maximum dead-code elimination rounds from
// now on.
//
// This value can also be configured with the `MIDEND_MAX_DCE_ROUNDS`
// environment variable.
//
// Returns the old opts.MaxDCERounds value.
func SetMaxDCERounds(rounds int) int {
	rounds, opts.MaxDCERounds = opts.MaxDCERounds, rounds
	return rounds
}

// SetIdomStrategy sets the default immediate dominator strategy from now on.
//
// This value can also be configured with the `MIDEND_IDOM` environment
// variable.
func SetIdomStrategy(strategy string) {
	if v, ok := dom.ParseStrategy(strategy); !ok {
		panic(fmt.Sprintf("midend: invalid idom strategy: %q", strategy))
	} else {
		opts.IdomStrategy = v
	}
}

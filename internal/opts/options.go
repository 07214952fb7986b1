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

package opts

import (
	`github.com/BurntSushi/toml`
	`github.com/cloudwego/midend/internal/dataflow`
	`github.com/cloudwego/midend/internal/dom`
	`tlog.app/go/errors`
)

type Options struct {
	WorklistOrder dataflow.Order
	IdomStrategy  dom.Strategy
	MaxDCERounds  int
	Parallelism   int
	SplitAtLabels bool
	Strict        bool
}

func GetDefaultOptions() Options {
	return Options{
		WorklistOrder: WorklistOrder,
		IdomStrategy:  IdomStrategy,
		MaxDCERounds:  MaxDCERounds,
		Parallelism:   Parallelism,
		SplitAtLabels: SplitAtLabels,
		Strict:        Strict,
	}
}

type _File struct {
	WorklistOrder string `toml:"worklist_order"`
	Idom          string `toml:"idom"`
	MaxDCERounds  int    `toml:"max_dce_rounds"`
	Parallelism   int    `toml:"parallelism"`
	SplitAtLabels bool   `toml:"split_at_labels"`
	Strict        bool   `toml:"strict"`
}

// Overlay sets the options defined by a file and leaves the others alone.
type Overlay func(o *Options)

// ReadFile decodes and validates a TOML file into an Overlay holding only
// the keys the file defines.
func ReadFile(path string) (Overlay, error) {
	var f _File
	var ret Options
	meta, err := toml.DecodeFile(path, &f)

	/* the file must be valid TOML */
	if err != nil {
		return nil, errors.Wrap(err, "load options %v", path)
	}

	/* every key must be known */
	if keys := meta.Undecoded(); len(keys) != 0 {
		return nil, errors.New("%v: unknown option %v", path, keys[0])
	}

	/* validate every defined key */
	if meta.IsDefined("worklist_order") {
		if ret.WorklistOrder, err = parseOrder(f.WorklistOrder); err != nil {
			return nil, errors.Wrap(err, "%v", path)
		}
	}
	if meta.IsDefined("idom") {
		if ret.IdomStrategy, err = parseStrategy(f.Idom); err != nil {
			return nil, errors.Wrap(err, "%v", path)
		}
	}
	if meta.IsDefined("max_dce_rounds") && f.MaxDCERounds < 0 {
		return nil, errors.New("%v: invalid max_dce_rounds: %d", path, f.MaxDCERounds)
	}
	if meta.IsDefined("parallelism") && f.Parallelism <= 0 {
		return nil, errors.New("%v: invalid parallelism: %d", path, f.Parallelism)
	}

	/* only the defined keys are copied over */
	return func(o *Options) {
		if meta.IsDefined("worklist_order") {
			o.WorklistOrder = ret.WorklistOrder
		}
		if meta.IsDefined("idom") {
			o.IdomStrategy = ret.IdomStrategy
		}
		if meta.IsDefined("max_dce_rounds") {
			o.MaxDCERounds = f.MaxDCERounds
		}
		if meta.IsDefined("parallelism") {
			o.Parallelism = f.Parallelism
		}
		if meta.IsDefined("split_at_labels") {
			o.SplitAtLabels = f.SplitAtLabels
		}
		if meta.IsDefined("strict") {
			o.Strict = f.Strict
		}
	}, nil
}

// LoadFile overrides base with the keys present in a TOML file.
func LoadFile(path string, base Options) (Options, error) {
	if ov, err := ReadFile(path); err != nil {
		return base, err
	} else {
		ov(&base)
		return base, nil
	}
}

func parseOrder(s string) (dataflow.Order, error) {
	if v, ok := dataflow.ParseOrder(s); ok {
		return v, nil
	} else {
		return 0, errors.New("invalid worklist order: %q", s)
	}
}

func parseStrategy(s string) (dom.Strategy, error) {
	if v, ok := dom.ParseStrategy(s); ok {
		return v, nil
	} else {
		return 0, errors.New("invalid idom strategy: %q", s)
	}
}

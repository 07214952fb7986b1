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
	`os`
	`runtime`
	`strconv`

	`github.com/cloudwego/midend/internal/dataflow`
	`github.com/cloudwego/midend/internal/dom`
)

const (
	_DefaultMaxDCERounds = 0 // run dead-code elimination until stable
)

var (
	WorklistOrder = parseOrderOrDefault("MIDEND_WORKLIST_ORDER", dataflow.LIFO)
	IdomStrategy  = parseStrategyOrDefault("MIDEND_IDOM", dom.Cardinality)
	MaxDCERounds  = parseOrDefault("MIDEND_MAX_DCE_ROUNDS", _DefaultMaxDCERounds, -1)
	Parallelism   = parseOrDefault("MIDEND_PARALLELISM", runtime.GOMAXPROCS(0), 0)
	SplitAtLabels = parseBoolOrDefault("MIDEND_SPLIT_AT_LABELS", false)
	Strict        = parseBoolOrDefault("MIDEND_STRICT", false)
)

func parseOrDefault(key string, def int, min int) int {
	if env := os.Getenv(key); env == "" {
		return def
	} else if val, err := strconv.ParseUint(env, 0, 64); err != nil {
		panic("midend: invalid value for " + key)
	} else if ret := int(val); ret <= min {
		panic("midend: value too small for " + key)
	} else {
		return ret
	}
}

func parseBoolOrDefault(key string, def bool) bool {
	if env := os.Getenv(key); env == "" {
		return def
	} else if val, err := strconv.ParseBool(env); err != nil {
		panic("midend: invalid value for " + key)
	} else {
		return val
	}
}

func parseOrderOrDefault(key string, def dataflow.Order) dataflow.Order {
	if env := os.Getenv(key); env == "" {
		return def
	} else if val, ok := dataflow.ParseOrder(env); !ok {
		panic("midend: invalid value for " + key)
	} else {
		return val
	}
}

func parseStrategyOrDefault(key string, def dom.Strategy) dom.Strategy {
	if env := os.Getenv(key); env == "" {
		return def
	} else if val, ok := dom.ParseStrategy(env); !ok {
		panic("midend: invalid value for " + key)
	} else {
		return val
	}
}

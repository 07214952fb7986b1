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

package debug

import (
	"sync/atomic"

	"github.com/cloudwego/midend/internal/pipeline"
)

// A Stats records statistics about the analysis pipeline.
type Stats struct {
	Functions int
	Blocks    int
	Visits    int
	DCE       DCEStats
}

// A DCEStats records statistics about dead-code elimination.
type DCEStats struct {
	Rounds  int
	Removed int
}

// GetStats returns statistics of the analysis pipeline since the program
// started.
func GetStats() Stats {
	return Stats{
		Functions: int(atomic.LoadUint64(&pipeline.FuncCount)),
		Blocks:    int(atomic.LoadUint64(&pipeline.BlockCount)),
		Visits:    int(atomic.LoadUint64(&pipeline.VisitCount)),
		DCE: DCEStats{
			Rounds:  int(atomic.LoadUint64(&pipeline.RoundCount)),
			Removed: int(atomic.LoadUint64(&pipeline.RemoveCount)),
		},
	}
}

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

package pipeline

import (
	`fmt`
	`strings`

	`github.com/cloudwego/midend/internal/cfg`
)

// UnresolvedTargetError occures in strict mode when a jump or a branch names
// a label that does not head any block.
type UnresolvedTargetError struct {
	Function string
	Targets  []cfg.Unresolved
}

func (self UnresolvedTargetError) Error() string {
	ts := make([]string, len(self.Targets))
	for i, v := range self.Targets {
		ts[i] = v.String()
	}
	return fmt.Sprintf("UnresolvedTargetError(@%s): %s", self.Function, strings.Join(ts, ", "))
}

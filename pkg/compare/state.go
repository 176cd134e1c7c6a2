/* Copyright 2025 Dnote Authors
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

package compare

// State is a state of a comparer
type State int

const (
	// Idle means no comparison is running
	Idle State = iota
	// Validating means the inputs are being validated
	Validating
	// ShortCircuit means the texts are identical and nothing is computed
	ShortCircuit
	// Computing means the differences are being computed and rendered
	Computing
	// Done means the comparison has a result
	Done
)

var stateNames = map[State]string{
	Idle:         "idle",
	Validating:   "validating",
	ShortCircuit: "short-circuit",
	Computing:    "computing",
	Done:         "done",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}

	return "unknown"
}

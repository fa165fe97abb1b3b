/*
Copyright 2026 IONOS Cloud.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package uploadservice

import (
	"fmt"

	"github.com/ionos-cloud/pvetmpl/pkg/proxmox"
)

// Outcome is the result of processing a single node.
type Outcome string

// all the node outcomes.
const (
	OutcomeSucceeded = Outcome("Succeeded")
	OutcomeSkipped   = Outcome("Skipped")
	OutcomeFailed    = Outcome("Failed")
)

// ReasonNoStorage is the skip reason for nodes without any storage.
const ReasonNoStorage = "no suitable storage"

// NodeResult is the outcome of one node. Task is set for OutcomeSucceeded,
// Reason for OutcomeSkipped and Err for OutcomeFailed.
type NodeResult struct {
	Node    string
	Storage string
	Outcome Outcome
	Task    proxmox.TaskHandle
	Reason  string
	Err     error
}

func (r NodeResult) String() string {
	switch r.Outcome {
	case OutcomeSucceeded:
		return fmt.Sprintf("%s:%s %s (task %s)", r.Node, r.Storage, r.Outcome, r.Task)
	case OutcomeSkipped:
		return fmt.Sprintf("%s %s (%s)", r.Node, r.Outcome, r.Reason)
	default:
		return fmt.Sprintf("%s %s: %v", r.Node, r.Outcome, r.Err)
	}
}

// Report holds one result per processed node in discovery order.
type Report struct {
	// RunID correlates the log lines of one run.
	RunID   string
	File    string
	Results []NodeResult
}

// Count returns the number of nodes with the given outcome.
func (r *Report) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Summary returns a one-line tally of the outcomes.
func (r *Report) Summary() string {
	return fmt.Sprintf("Summary: %d succeeded, %d skipped, %d failed",
		r.Count(OutcomeSucceeded), r.Count(OutcomeSkipped), r.Count(OutcomeFailed))
}

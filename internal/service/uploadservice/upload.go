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

// Package uploadservice distributes a container template to every node of a
// Proxmox cluster.
package uploadservice

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ionos-cloud/pvetmpl/internal/service/scheduler"
	"github.com/ionos-cloud/pvetmpl/pkg/proxmox"
)

// ErrNoNodes is returned if the cluster reports no nodes.
var ErrNoNodes = errors.New("no Proxmox nodes found")

// Uploader runs the upload workflow: discover nodes, then for every node
// discover storages, pick one and upload the archive.
type Uploader struct {
	client proxmox.Client
	out    io.Writer
	policy Policy
}

// NewUploader returns an Uploader printing progress to out.
func NewUploader(client proxmox.Client, out io.Writer, policy Policy) (*Uploader, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if out == nil {
		out = io.Discard
	}
	return &Uploader{client: client, out: out, policy: policy}, nil
}

// Run uploads the archive at filePath to every node, one node at a time.
//
// The report is returned even when a fatal error ends the run early; it then
// contains the nodes processed so far.
func (u *Uploader) Run(ctx context.Context, filePath string) (*Report, error) {
	report := &Report{RunID: uuid.NewString(), File: filePath}
	logger := logr.FromContextOrDiscard(ctx).WithValues("run", report.RunID)
	ctx = logr.NewContext(ctx, logger)

	u.printf("Starting template upload for: %s", filePath)
	logger.Info("Starting template upload", "file", filePath)

	nodes, err := u.client.ListNodes(ctx)
	if err != nil {
		return report, errors.Wrap(err, "unable to discover nodes")
	}
	if len(nodes) == 0 {
		return report, ErrNoNodes
	}
	u.printf("Found nodes: %s", strings.Join(nodes, ", "))
	logger.V(2).Info("Discovered nodes", "nodes", nodes)

	for _, node := range nodes {
		if err := ctx.Err(); err != nil {
			return report, errors.Wrap(err, "upload interrupted")
		}

		result, err := u.processNode(ctx, node, filePath)
		if err != nil {
			return report, err
		}
		report.Results = append(report.Results, result)
	}

	u.printf("Template upload process finished.")
	logger.Info("Template upload finished",
		"succeeded", report.Count(OutcomeSucceeded),
		"skipped", report.Count(OutcomeSkipped),
		"failed", report.Count(OutcomeFailed),
	)

	return report, nil
}

// processNode returns an error only for failures the policy declares fatal.
func (u *Uploader) processNode(ctx context.Context, node, filePath string) (NodeResult, error) {
	logger := logr.FromContextOrDiscard(ctx).WithValues("node", node)
	u.printf("--- Processing Node: %s ---", node)

	storages, err := u.client.ListStorages(ctx, node)
	if err != nil {
		if u.policy.Disposition(SiteStorageDiscovery) == Fatal {
			return NodeResult{}, errors.Wrapf(err, "unable to discover storages on node %s", node)
		}
		u.printf("Error listing storages on node %s: %v", node, err)
		logger.Error(err, "Storage discovery failed")
		return NodeResult{Node: node, Outcome: OutcomeFailed, Err: err}, nil
	}

	storage, ok := scheduler.SelectStorage(ctx, node, storages)
	if !ok {
		u.printf("Warning: No suitable storage found on node %s. Skipping.", node)
		logger.Info("Skipping node", "reason", ReasonNoStorage)
		return NodeResult{Node: node, Outcome: OutcomeSkipped, Reason: ReasonNoStorage}, nil
	}

	u.printf("Uploading to %s:%s...", node, storage)
	task, err := u.client.UploadTemplate(ctx, node, storage, filePath)
	if err != nil {
		if u.policy.Disposition(SiteUpload) == Fatal {
			return NodeResult{}, errors.Wrapf(err, "unable to upload to %s:%s", node, storage)
		}
		u.printf("Error uploading to %s:%s: %v", node, storage, err)
		logger.Error(err, "Upload failed", "storage", storage)
		return NodeResult{Node: node, Storage: storage, Outcome: OutcomeFailed, Err: err}, nil
	}

	u.printf("Successfully uploaded to %s:%s. Task: %s", node, storage, task)
	logger.V(2).Info("Uploaded template", "storage", storage, "task", task)

	return NodeResult{Node: node, Storage: storage, Outcome: OutcomeSucceeded, Task: task}, nil
}

func (u *Uploader) printf(format string, args ...any) {
	// progress output is best effort
	_, _ = fmt.Fprintf(u.out, format+"\n", args...)
}

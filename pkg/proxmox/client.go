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

// Package proxmox defines the Proxmox client contract used to distribute
// container templates.
package proxmox

import (
	"context"
)

// Client is the subset of the Proxmox VE API needed to push a template
// archive to every node of a cluster.
type Client interface {
	// ListNodes returns the cluster member names in the order reported by the API.
	ListNodes(ctx context.Context) ([]string, error)

	// ListStorages returns the storage names attached to node. An empty result is valid.
	ListStorages(ctx context.Context, node string) ([]string, error)

	// UploadTemplate uploads the archive at filePath as vztmpl content to storage on node.
	UploadTemplate(ctx context.Context, node, storage, filePath string) (TaskHandle, error)
}

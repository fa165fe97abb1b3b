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

// Package scheduler decides where on a node a template archive is placed.
package scheduler

import (
	"context"
	"strings"

	"github.com/go-logr/logr"
)

// preferredStorage is matched case-insensitively as a substring, so
// "local", "local-lvm" and "LOCAL-ZFS" all qualify.
const preferredStorage = "local"

// ChooseDefaultStorage picks the upload destination from the storages of a node.
//
// The first storage whose name contains "local" (case-insensitive) wins, an exact
// "local" included. Without such a storage the first one is used. The boolean is
// false only for an empty list.
func ChooseDefaultStorage(storages []string) (string, bool) {
	for _, s := range storages {
		if s == preferredStorage || strings.Contains(strings.ToLower(s), preferredStorage) {
			return s, true
		}
	}
	if len(storages) == 0 {
		return "", false
	}
	return storages[0], true
}

// SelectStorage is ChooseDefaultStorage with the decision logged at V(4).
func SelectStorage(ctx context.Context, node string, storages []string) (string, bool) {
	storage, ok := ChooseDefaultStorage(storages)

	if logger := logr.FromContextOrDiscard(ctx); logger.V(4).Enabled() {
		logger.Info("Storage decision",
			"node", node,
			"candidates", storages,
			"resultStorage", storage,
			"found", ok,
		)
	}

	return storage, ok
}

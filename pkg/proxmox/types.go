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

package proxmox

import "fmt"

// ContentVZTemplate is the storage content type of container templates.
const ContentVZTemplate = "vztmpl"

// TaskHandle is the identifier (UPID) of the asynchronous task the cluster
// starts for an upload. It is reported as-is and never polled.
type TaskHandle string

// Endpoint is the API location and token credentials of a cluster.
type Endpoint struct {
	// URL is the API base, e.g. https://pve.example.com:8006/api2/json.
	URL         string
	TokenID     string
	TokenSecret string
}

// AuthorizationHeader returns the value of the Authorization header for API token auth.
func (e Endpoint) AuthorizationHeader() string {
	return fmt.Sprintf("PVEAPIToken=%s=%s", e.TokenID, e.TokenSecret)
}

// String hides the token secret.
func (e Endpoint) String() string {
	return fmt.Sprintf("%s (token %s)", e.URL, e.TokenID)
}

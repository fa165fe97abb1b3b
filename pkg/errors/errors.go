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

// Package pvetmplerrors defines the error kinds reported while distributing
// a container template across a Proxmox cluster.
//
// Callers decide whether a failure is fatal for the whole run or isolated to
// a single node by inspecting the kind with the Is* helpers.
package pvetmplerrors

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// TransportError indicates that a request never produced an HTTP response,
// e.g. connection refused, TLS handshake failure or context cancellation.
type TransportError struct {
	// Op names the API operation, e.g. "list nodes".
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError indicates that the cluster answered with a non-2xx status.
//
// StatusCode is zero when the status could not be recovered from the
// underlying client error.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": api error")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	switch {
	case e.Message != "":
		b.WriteString(": ")
		b.WriteString(e.Message)
	case e.Err != nil:
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// FileError indicates that the local template archive cannot be used.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("template archive %q: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// ConfigError lists every configuration key that is missing or invalid.
type ConfigError struct {
	// Problems maps the offending key to a short description.
	Problems map[string]string
}

func (e *ConfigError) Error() string {
	keys := make([]string, 0, len(e.Problems))
	for k := range e.Problems {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Problems[k]))
	}
	return "invalid configuration: " + strings.Join(parts, ", ")
}

// IsTransport reports whether err is or wraps a TransportError.
func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// IsAPI reports whether err is or wraps an APIError.
func IsAPI(err error) bool {
	var target *APIError
	return errors.As(err, &target)
}

// IsFile reports whether err is or wraps a FileError.
func IsFile(err error) bool {
	var target *FileError
	return errors.As(err, &target)
}

// IsConfig reports whether err is or wraps a ConfigError.
func IsConfig(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}

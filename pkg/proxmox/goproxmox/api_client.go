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

// Package goproxmox implements the template upload client on top of go-proxmox.
package goproxmox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/luthermonson/go-proxmox"
	"github.com/pkg/errors"

	pvetmplerrors "github.com/ionos-cloud/pvetmpl/pkg/errors"
	capmox "github.com/ionos-cloud/pvetmpl/pkg/proxmox"
)

var _ capmox.Client = &APIClient{}

// maxResponseBytes bounds how much of a response is read.
const maxResponseBytes = 1 << 20

// APIClient Proxmox API client object.
type APIClient struct {
	logger logr.Logger
	// log receives request traces in the go-proxmox logging scheme.
	log proxmox.LeveledLoggerInterface

	baseURL    string
	authHeader string
	httpClient *http.Client
}

// NewAPIClient initializes a Proxmox API client and probes the server version.
// If the client is misconfigured or the server is unreachable, an error is returned.
func NewAPIClient(ctx context.Context, logger logr.Logger, endpoint capmox.Endpoint, httpClient *http.Client) (*APIClient, error) {
	baseURL := strings.TrimRight(endpoint.URL, "/")
	if u, err := url.Parse(baseURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("invalid proxmox API URL %q", endpoint.URL)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	c := &APIClient{
		logger:     logger,
		log:        capmox.NewLogger(logger),
		baseURL:    baseURL,
		authHeader: endpoint.AuthorizationHeader(),
		httpClient: httpClient,
	}

	var version proxmox.Version
	if err := c.get(ctx, "query version", "/version", &version); err != nil {
		return nil, err
	}
	logger.Info("Proxmox client initialized", "endpoint", endpoint.String())
	logger.Info("Proxmox server", "version", version.Release)

	return c, nil
}

// ListNodes returns the names of all cluster nodes in API order.
func (c *APIClient) ListNodes(ctx context.Context) ([]string, error) {
	var nodes []*proxmox.NodeStatus
	if err := c.get(ctx, "list nodes", "/nodes", &nodes); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			names = append(names, n.Node)
		}
	}
	c.logger.V(4).Info("listed nodes", "nodes", names)

	return names, nil
}

type storageEntry struct {
	Storage string `json:"storage"`
}

// ListStorages returns the names of the storages attached to node.
func (c *APIClient) ListStorages(ctx context.Context, node string) ([]string, error) {
	var entries []storageEntry
	op := fmt.Sprintf("list storages of node %s", node)
	if err := c.get(ctx, op, fmt.Sprintf("/nodes/%s/storage", url.PathEscape(node)), &entries); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Storage)
	}
	c.logger.V(4).Info("listed storages", "node", node, "storages", names)

	return names, nil
}

// UploadTemplate streams the archive at filePath to storage on node as vztmpl content
// and returns the identifier of the task the server started for it.
func (c *APIClient) UploadTemplate(ctx context.Context, node, storage, filePath string) (capmox.TaskHandle, error) {
	op := fmt.Sprintf("upload template to %s:%s", node, storage)

	f, err := os.Open(filePath) //#nosec:G304 // Intended to read the given file
	if err != nil {
		return "", &pvetmplerrors.FileError{Path: filePath, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", &pvetmplerrors.FileError{Path: filePath, Err: err}
	}
	if !info.Mode().IsRegular() {
		return "", &pvetmplerrors.FileError{Path: filePath, Err: ErrNotRegularFile}
	}

	body, contentType, length, err := newUploadBody(f, info.Size(), filepath.Base(filePath))
	if err != nil {
		return "", errors.Wrap(err, "unable to encode upload form")
	}

	endpoint := fmt.Sprintf("%s/nodes/%s/storage/%s/upload", c.baseURL, url.PathEscape(node), url.PathEscape(storage))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", errors.Wrap(err, "unable to build upload request")
	}
	req.ContentLength = length
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	c.logger.V(4).Info("uploading template", "node", node, "storage", storage, "file", filePath, "bytes", info.Size())

	status, payload, err := c.do(op, req)
	if err != nil {
		return "", err
	}

	task, err := decodeTask(payload)
	if err != nil {
		return "", &pvetmplerrors.APIError{Op: op, StatusCode: status, Err: err}
	}

	return task, nil
}

// newUploadBody lays out the multipart form around the archive without buffering it,
// so the request can carry an exact Content-Length.
func newUploadBody(archive io.Reader, size int64, filename string) (io.Reader, string, int64, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("content", capmox.ContentVZTemplate); err != nil {
		return nil, "", 0, err
	}
	if err := mw.WriteField("filename", filename); err != nil {
		return nil, "", 0, err
	}
	if _, err := mw.CreateFormFile("content", filename); err != nil {
		return nil, "", 0, err
	}
	headLen := buf.Len()

	// Close writes the terminating boundary after the file part.
	if err := mw.Close(); err != nil {
		return nil, "", 0, err
	}
	head := buf.Bytes()[:headLen]
	tail := buf.Bytes()[headLen:]

	body := io.MultiReader(bytes.NewReader(head), io.LimitReader(archive, size), bytes.NewReader(tail))
	return body, mw.FormDataContentType(), int64(len(head)) + size + int64(len(tail)), nil
}

// decodeTask extracts the task identifier from a {"data": ...} envelope.
// A JSON string is unquoted, any other value is kept verbatim.
func decodeTask(payload []byte) (capmox.TaskHandle, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return "", errors.Wrap(err, "unable to decode upload response")
	}

	data := bytes.TrimSpace(envelope.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", ErrNoTask
	}

	var upid string
	if err := json.Unmarshal(data, &upid); err == nil {
		return capmox.TaskHandle(upid), nil
	}
	return capmox.TaskHandle(data), nil
}

// responseMessage builds a readable reason for a failed request. Proxmox puts
// the reason into the status line and parameter errors into the body.
func responseMessage(res *http.Response, payload []byte) string {
	msg := strings.TrimSpace(strings.TrimPrefix(res.Status, strconv.Itoa(res.StatusCode)))
	if msg == "" {
		msg = http.StatusText(res.StatusCode)
	}

	var envelope struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil || len(envelope.Errors) == 0 {
		return msg
	}

	fields := make([]string, 0, len(envelope.Errors))
	for field := range envelope.Errors {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	for i, field := range fields {
		fields[i] = fmt.Sprintf("%s: %s", field, strings.TrimSpace(envelope.Errors[field]))
	}

	return msg + " (" + strings.Join(fields, "; ") + ")"
}

// get sends an authenticated GET for path and decodes the data member of the
// response envelope into v. A null or missing data member is an APIError.
func (c *APIClient) get(ctx context.Context, op, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrapf(err, "unable to build request for %s", path)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")

	c.log.Debugf("GET %s", path)

	status, payload, err := c.do(op, req)
	if err != nil {
		return err
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return &pvetmplerrors.APIError{Op: op, StatusCode: status, Err: errors.Wrap(err, "unable to decode response")}
	}

	data := bytes.TrimSpace(envelope.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return &pvetmplerrors.APIError{Op: op, StatusCode: status, Err: ErrNoData}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &pvetmplerrors.APIError{Op: op, StatusCode: status, Err: errors.Wrap(err, "unable to decode response data")}
	}
	return nil
}

// do sends req and returns the status and body of a 2xx response. Requests
// without a response become a TransportError, any other status an APIError.
func (c *APIClient) do(op string, req *http.Request) (int, []byte, error) {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &pvetmplerrors.TransportError{Op: op, Err: err}
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, &pvetmplerrors.TransportError{Op: op, Err: err}
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		c.log.Debugf("%s %s returned %d", req.Method, req.URL.Path, res.StatusCode)
		return 0, nil, &pvetmplerrors.APIError{
			Op:         op,
			StatusCode: res.StatusCode,
			Message:    responseMessage(res, payload),
		}
	}

	return res.StatusCode, payload, nil
}

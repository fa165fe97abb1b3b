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

package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ionos-cloud/pvetmpl/internal/config"
	"github.com/ionos-cloud/pvetmpl/internal/tlshelper"
	pvetmplerrors "github.com/ionos-cloud/pvetmpl/pkg/errors"
	capmox "github.com/ionos-cloud/pvetmpl/pkg/proxmox"
	"github.com/ionos-cloud/pvetmpl/pkg/proxmox/goproxmox"
	"github.com/ionos-cloud/pvetmpl/pkg/proxmox/proxmoxtest"
)

const testAPIURL = "http://pve.local.test:8006/api2/json"

func setEnv(t *testing.T) {
	t.Setenv(config.EnvAPIURL, testAPIURL)
	t.Setenv(config.EnvTokenID, "root@pam!uploader")
	t.Setenv(config.EnvTokenSecret, "secret")
	t.Setenv(config.EnvInsecureSkipTLSVerify, "")
	t.Setenv(config.EnvRootCertFile, "")
	t.Setenv(config.EnvIsolateStorageErrors, "")
}

func writeArchive(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alpine-3.20-default_20240908_amd64.tar.xz")
	require.NoError(t, os.WriteFile(path, []byte("archive"), 0o600))
	return path
}

func runWithClient(t *testing.T, client capmox.Client, args ...string) (int, string) {
	t.Helper()
	var out bytes.Buffer
	o := newUploadOptions(&out)
	o.newClient = func(context.Context, logr.Logger, *config.Config) (capmox.Client, error) {
		if client == nil {
			t.Fatal("client must not be created")
		}
		return client, nil
	}
	code := execute(context.Background(), newRootCommand(o), args)
	return code, out.String()
}

func TestExecute_FileFlagRequired(t *testing.T) {
	setEnv(t)

	code, out := runWithClient(t, nil)
	require.Equal(t, 1, code)
	require.Contains(t, out, `Error: required flag(s) "file" not set`)
}

func TestExecute_ConfigError(t *testing.T) {
	setEnv(t)
	t.Setenv(config.EnvTokenSecret, "")

	code, out := runWithClient(t, nil, "--file", writeArchive(t))
	require.Equal(t, 1, code)
	require.Contains(t, out, "Error: invalid configuration: PROXMOX_TOKEN_SECRET is required")
}

func TestExecute_MissingArchive(t *testing.T) {
	setEnv(t)

	code, out := runWithClient(t, nil, "--file", filepath.Join(t.TempDir(), "missing.tar.xz"))
	require.Equal(t, 1, code)
	require.Contains(t, out, "Error: template archive")
}

func TestExecute_NoNodes(t *testing.T) {
	setEnv(t)
	client := proxmoxtest.NewMockClient(t)
	client.EXPECT().ListNodes(mock.Anything).Return([]string{}, nil)

	code, out := runWithClient(t, client, "--file", writeArchive(t))
	require.Equal(t, 1, code)
	require.Contains(t, out, "Error: no Proxmox nodes found\n")
	require.NotContains(t, out, "Processing Node")
}

func TestExecute_UploadFailureKeepsExitCodeZero(t *testing.T) {
	setEnv(t)
	archive := writeArchive(t)

	client := proxmoxtest.NewMockClient(t)
	client.EXPECT().ListNodes(mock.Anything).Return([]string{"pve1", "pve2"}, nil)
	client.EXPECT().ListStorages(mock.Anything, "pve1").Return([]string{"local"}, nil)
	client.EXPECT().ListStorages(mock.Anything, "pve2").Return([]string{"local"}, nil)
	client.EXPECT().UploadTemplate(mock.Anything, "pve1", "local", archive).
		Return("", &pvetmplerrors.TransportError{Op: "upload template to pve1:local", Err: errors.New("timeout")})
	client.EXPECT().UploadTemplate(mock.Anything, "pve2", "local", archive).Return("UPID:pve2:1", nil)

	code, out := runWithClient(t, client, "--file", archive)
	require.Equal(t, 0, code)
	require.Contains(t, out, "Error uploading to pve1:local")
	require.Contains(t, out, "Successfully uploaded to pve2:local. Task: UPID:pve2:1")
	require.Contains(t, out, "Summary: 1 succeeded, 0 skipped, 1 failed\n")
}

func TestExecute_StorageDiscoveryFailureIsFatal(t *testing.T) {
	setEnv(t)
	archive := writeArchive(t)

	client := proxmoxtest.NewMockClient(t)
	client.EXPECT().ListNodes(mock.Anything).Return([]string{"pve1", "pve2"}, nil)
	client.EXPECT().ListStorages(mock.Anything, "pve1").
		Return(nil, &pvetmplerrors.APIError{Op: "list storages of node pve1", StatusCode: 500})

	code, out := runWithClient(t, client, "--file", archive)
	require.Equal(t, 1, code)
	require.Contains(t, out, "Error: unable to discover storages on node pve1")
}

func TestExecute_StorageDiscoveryFailureIsolated(t *testing.T) {
	setEnv(t)
	t.Setenv(config.EnvIsolateStorageErrors, "true")
	archive := writeArchive(t)

	client := proxmoxtest.NewMockClient(t)
	client.EXPECT().ListNodes(mock.Anything).Return([]string{"pve1", "pve2"}, nil)
	client.EXPECT().ListStorages(mock.Anything, "pve1").
		Return(nil, &pvetmplerrors.APIError{Op: "list storages of node pve1", StatusCode: 500})
	client.EXPECT().ListStorages(mock.Anything, "pve2").Return([]string{}, nil)

	code, out := runWithClient(t, client, "--file", archive)
	require.Equal(t, 0, code)
	require.Contains(t, out, "Summary: 0 succeeded, 1 skipped, 1 failed\n")
}

// TestExecute_OverHTTP drives the real API client against a mocked Proxmox API.
func TestExecute_OverHTTP(t *testing.T) {
	setEnv(t)
	archive := writeArchive(t)

	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	httpmock.RegisterResponder(http.MethodGet, testAPIURL+"/version",
		httpmock.NewJsonResponderOrPanic(200, map[string]any{"data": map[string]any{"release": "8.2"}}))
	httpmock.RegisterResponder(http.MethodGet, testAPIURL+"/nodes",
		httpmock.NewJsonResponderOrPanic(200, map[string]any{"data": []map[string]any{{"node": "pve1"}, {"node": "pve2"}}}))
	httpmock.RegisterResponder(http.MethodGet, testAPIURL+"/nodes/pve1/storage",
		httpmock.NewJsonResponderOrPanic(200, map[string]any{"data": []map[string]any{{"storage": "local-lvm"}, {"storage": "backup"}}}))
	httpmock.RegisterResponder(http.MethodGet, testAPIURL+"/nodes/pve2/storage",
		httpmock.NewJsonResponderOrPanic(200, map[string]any{"data": []map[string]any{}}))
	httpmock.RegisterResponder(http.MethodPost, testAPIURL+"/nodes/pve1/storage/local-lvm/upload",
		httpmock.NewJsonResponderOrPanic(200, map[string]any{"data": "UPID:pve1:0001:0002:0003:imgcopy::root@pam:"}))

	var out bytes.Buffer
	o := newUploadOptions(&out)
	o.newClient = func(ctx context.Context, logger logr.Logger, cfg *config.Config) (capmox.Client, error) {
		return goproxmox.NewAPIClient(ctx, logger, cfg.Endpoint, &http.Client{})
	}

	code := execute(context.Background(), newRootCommand(o), []string{"--file", archive})
	require.Equal(t, 0, code, out.String())
	require.Contains(t, out.String(), "Found nodes: pve1, pve2\n")
	require.Contains(t, out.String(), "Successfully uploaded to pve1:local-lvm. Task: UPID:pve1:0001:0002:0003:imgcopy::root@pam:\n")
	require.Contains(t, out.String(), "Warning: No suitable storage found on node pve2. Skipping.\n")
	require.Equal(t, 1, httpmock.GetCallCountInfo()["POST "+testAPIURL+"/nodes/pve1/storage/local-lvm/upload"])
}

func TestExecute_OverHTTP_UnavailableNodeAborts(t *testing.T) {
	setEnv(t)
	archive := writeArchive(t)

	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	httpmock.RegisterResponder(http.MethodGet, testAPIURL+"/version",
		httpmock.NewJsonResponderOrPanic(200, map[string]any{"data": map[string]any{"release": "8.2"}}))
	httpmock.RegisterResponder(http.MethodGet, testAPIURL+"/nodes",
		httpmock.NewJsonResponderOrPanic(200, map[string]any{"data": []map[string]any{{"node": "pve1"}, {"node": "pve2"}}}))
	httpmock.RegisterResponder(http.MethodGet, testAPIURL+"/nodes/pve1/storage",
		httpmock.NewJsonResponderOrPanic(595, map[string]any{"data": nil}))

	var out bytes.Buffer
	o := newUploadOptions(&out)
	o.newClient = func(ctx context.Context, logger logr.Logger, cfg *config.Config) (capmox.Client, error) {
		return goproxmox.NewAPIClient(ctx, logger, cfg.Endpoint, &http.Client{})
	}

	code := execute(context.Background(), newRootCommand(o), []string{"--file", archive})
	require.Equal(t, 1, code, out.String())
	require.Contains(t, out.String(), "Error: unable to discover storages on node pve1")
	require.Contains(t, out.String(), "(status 595)")
	require.NotContains(t, out.String(), "No suitable storage")
	require.NotContains(t, out.String(), "Processing Node: pve2")
	require.Zero(t, httpmock.GetCallCountInfo()["GET "+testAPIURL+"/nodes/pve2/storage"])
}

func TestExecute_InsecureWarningOnOutput(t *testing.T) {
	setEnv(t)
	t.Setenv(config.EnvInsecureSkipTLSVerify, "true")

	client := proxmoxtest.NewMockClient(t)
	client.EXPECT().ListNodes(mock.Anything).Return([]string{"pve1"}, nil)
	client.EXPECT().ListStorages(mock.Anything, "pve1").Return([]string{}, nil)

	code, out := runWithClient(t, client, "--file", writeArchive(t))
	require.Equal(t, 0, code)
	require.Contains(t, out, "Warning: "+tlshelper.InsecureWarning)
}

func TestExecute_NoInsecureWarningByDefault(t *testing.T) {
	setEnv(t)

	client := proxmoxtest.NewMockClient(t)
	client.EXPECT().ListNodes(mock.Anything).Return([]string{"pve1"}, nil)
	client.EXPECT().ListStorages(mock.Anything, "pve1").Return([]string{}, nil)

	code, out := runWithClient(t, client, "--file", writeArchive(t))
	require.Equal(t, 0, code)
	require.NotContains(t, out, tlshelper.InsecureWarning)
}

func TestSetupProxmoxClient_BadRootCert(t *testing.T) {
	setEnv(t)
	t.Setenv(config.EnvRootCertFile, filepath.Join(t.TempDir(), "missing.pem"))

	cfg, err := config.FromEnv()
	require.NoError(t, err)

	client, err := setupProxmoxClient(context.Background(), logr.Discard(), cfg)
	require.Error(t, err)
	require.Nil(t, client)
}

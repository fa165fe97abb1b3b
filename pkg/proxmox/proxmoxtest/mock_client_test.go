// File: pkg/proxmox/proxmoxtest/mock_client_test.go
// Package: proxmoxtest

package proxmoxtest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ionos-cloud/pvetmpl/pkg/proxmox"
)

var _ proxmox.Client = &MockClient{}

func TestListStorages_Return(t *testing.T) {
	m := NewMockClient(t)
	m.EXPECT().ListStorages(mock.Anything, "pve1").
		Run(func(_ context.Context, _ string) {}).
		Return([]string{"local", "backup"}, nil)

	storages, err := m.ListStorages(context.Background(), "pve1")
	require.NoError(t, err)
	require.Equal(t, []string{"local", "backup"}, storages)
}

func TestListNodes_NilSlice(t *testing.T) {
	m := NewMockClient(t)
	m.EXPECT().ListNodes(mock.Anything).Return(nil, errors.New("boom"))

	nodes, err := m.ListNodes(context.Background())
	require.EqualError(t, err, "boom")
	require.Nil(t, nodes)
}

func TestUploadTemplate_RunAndReturn(t *testing.T) {
	m := NewMockClient(t)
	m.EXPECT().UploadTemplate(mock.Anything, "pve2", "local", "/tmp/t.tar.xz").
		RunAndReturn(func(_ context.Context, node, storage, path string) (proxmox.TaskHandle, error) {
			require.Equal(t, "pve2", node)
			require.Equal(t, "local", storage)
			require.Equal(t, "/tmp/t.tar.xz", path)
			return "UPID:pve2:1", nil
		})

	task, err := m.UploadTemplate(context.Background(), "pve2", "local", "/tmp/t.tar.xz")
	require.NoError(t, err)
	require.Equal(t, proxmox.TaskHandle("UPID:pve2:1"), task)
}

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

// main is the main package for pvetmpl, which uploads an LXC template archive
// to every node of a Proxmox VE cluster.
package main

import (
	"context"
	goflag "flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/ionos-cloud/pvetmpl/internal/config"
	"github.com/ionos-cloud/pvetmpl/internal/service/uploadservice"
	"github.com/ionos-cloud/pvetmpl/internal/tlshelper"
	pvetmplerrors "github.com/ionos-cloud/pvetmpl/pkg/errors"
	capmox "github.com/ionos-cloud/pvetmpl/pkg/proxmox"
	"github.com/ionos-cloud/pvetmpl/pkg/proxmox/goproxmox"
)

const uploadLong = `Upload an LXC template archive to every node of a Proxmox VE cluster.

For every node the first storage whose name contains "local" is used, or the
first storage of the node if there is none. A failed upload is reported and the
remaining nodes are still processed.

The cluster is configured through the environment:
  PROXMOX_API_URL                    API base URL, e.g. https://pve:8006/api2/json
  PROXMOX_TOKEN_ID                   API token id, e.g. root@pam!uploader
  PROXMOX_TOKEN_SECRET               API token secret
  PROXMOX_ROOT_CERT_FILE             optional PEM file trusted in addition to the system roots
  PROXMOX_INSECURE_SKIP_TLS_VERIFY   optional, "true" disables certificate verification
  PROXMOX_ISOLATE_STORAGE_ERRORS     optional, "true" keeps going when a node's storages cannot be listed`

const uploadExample = `  pvetmpl --file ./debian-12-standard_12.7-1_amd64.tar.zst`

// clientFactory builds the Proxmox client from the loaded configuration.
type clientFactory func(ctx context.Context, logger logr.Logger, cfg *config.Config) (capmox.Client, error)

// uploadOptions defines the options of the pvetmpl command.
type uploadOptions struct {
	File string

	out       io.Writer
	newClient clientFactory
}

func newUploadOptions(out io.Writer) *uploadOptions {
	return &uploadOptions{
		out:       out,
		newClient: setupProxmoxClient,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := execute(ctx, newRootCommand(newUploadOptions(os.Stdout)), os.Args[1:])

	stop()
	klog.Flush()
	os.Exit(code)
}

// execute runs cmd and maps its result to the process exit code.
func execute(ctx context.Context, cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCommand(o *uploadOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pvetmpl --file <path>",
		Short:         "Upload an LXC template archive to all Proxmox nodes",
		Long:          uploadLong,
		Example:       uploadExample,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.Run(cmd.Context())
		},
	}
	cmd.SetOut(o.out)

	cmd.Flags().StringVar(&o.File, "file", "", "Path to the .tar.xz template file.")
	_ = cmd.MarkFlagRequired("file")

	initLogFlags(cmd.PersistentFlags())

	return cmd
}

// initLogFlags exposes the klog flags (-v, --logtostderr, ...) on fs.
func initLogFlags(fs *pflag.FlagSet) {
	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	fs.AddGoFlagSet(klogFlags)
}

// Run loads the configuration, checks the archive and uploads it to every node.
func (o *uploadOptions) Run(ctx context.Context) error {
	logger := klog.Background().WithName("pvetmpl")
	ctx = logr.NewContext(ctx, logger)

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	if err := checkArchive(o.File); err != nil {
		return err
	}

	if cfg.TLS.InsecureSkipVerify {
		_, _ = fmt.Fprintf(o.out, "Warning: %s (%s=true)\n", tlshelper.InsecureWarning, config.EnvInsecureSkipTLSVerify)
	}

	client, err := o.newClient(ctx, logger, cfg)
	if err != nil {
		return fmt.Errorf("unable to setup proxmox API client: %w", err)
	}

	policy := uploadservice.DefaultPolicy()
	if cfg.IsolateStorageErrors {
		policy = policy.WithIsolatedStorageErrors()
	}
	uploader, err := uploadservice.NewUploader(client, o.out, policy)
	if err != nil {
		return err
	}

	report, err := uploader.Run(ctx, o.File)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(o.out, report.Summary())

	return nil
}

// checkArchive fails fast on a missing or unreadable archive before any node is contacted.
func checkArchive(path string) error {
	f, err := os.Open(path) //#nosec:G304 // Intended to read the given file
	if err != nil {
		return &pvetmplerrors.FileError{Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return &pvetmplerrors.FileError{Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return &pvetmplerrors.FileError{Path: path, Err: goproxmox.ErrNotRegularFile}
	}
	return nil
}

func setupProxmoxClient(ctx context.Context, logger logr.Logger, cfg *config.Config) (capmox.Client, error) {
	httpClient, err := tlshelper.NewHTTPClient(logger, cfg.TLS)
	if err != nil {
		return nil, err
	}

	client, err := goproxmox.NewAPIClient(ctx, logger, cfg.Endpoint, httpClient)
	if err != nil {
		return nil, err
	}
	return client, nil
}

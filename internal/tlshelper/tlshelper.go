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

// Package tlshelper builds the HTTP client used to talk to the Proxmox API,
// including the root-CA store and the opt-in trust-all mode.
package tlshelper

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"

	"github.com/go-logr/logr"
)

// InsecureWarning is reported whenever certificate verification is disabled.
const InsecureWarning = "TLS certificate verification of the Proxmox API is disabled, " +
	"the connection is vulnerable to interception"

// Options controls certificate verification of the Proxmox API.
type Options struct {
	// RootCertFile is a PEM file appended to the system roots. Empty keeps the system roots.
	RootCertFile string
	// InsecureSkipVerify disables certificate verification entirely.
	InsecureSkipVerify bool
}

// NewHTTPClient returns an HTTP client honouring opts. Skipping verification is
// logged as a warning on every call.
func NewHTTPClient(logger logr.Logger, opts Options) (*http.Client, error) {
	roots, err := SystemRootsWithFile(opts.RootCertFile)
	if err != nil {
		return nil, err
	}

	if opts.InsecureSkipVerify {
		logger.Info("WARNING: " + InsecureWarning)
	}

	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.TLSClientConfig = &tls.Config{
		MinVersion:         tls.VersionTLS12,
		RootCAs:            roots,
		InsecureSkipVerify: opts.InsecureSkipVerify, //nolint:gosec // explicit opt-in
	}

	return &http.Client{Transport: tr}, nil
}

// SystemRootsWithFile reads the pemBlock for SystemRootsWithCert from
// the given file and then calls SystemRootsWithCert.
func SystemRootsWithFile(filepath string) (*x509.CertPool, error) {
	if len(filepath) == 0 {
		// nil lets crypto/tls use the system roots
		return nil, nil
	}

	pemBlock, err := os.ReadFile(filepath) //#nosec:G304 // Intended to read the given file
	if err != nil {
		return nil, fmt.Errorf("loading certificate file: %w", err)
	}

	return SystemRootsWithCert(pemBlock)
}

// SystemRootsWithCert appends the PEM encoded certificates to the system
// root store, or to an empty pool if the system store is unavailable.
func SystemRootsWithCert(pemBlock []byte) (*x509.CertPool, error) {
	if len(pemBlock) == 0 {
		return nil, nil
	}

	rootCerts, err := x509.SystemCertPool()
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading system cert pool: %w", err)
	}
	if rootCerts == nil {
		rootCerts = x509.NewCertPool()
	}

	if !rootCerts.AppendCertsFromPEM(pemBlock) {
		return nil, fmt.Errorf("no certificate found in PEM data")
	}

	return rootCerts, nil
}

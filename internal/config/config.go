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

// Package config loads the uploader configuration from the environment.
package config

import (
	"net/url"
	"strings"

	"k8s.io/utils/env"

	"github.com/ionos-cloud/pvetmpl/internal/tlshelper"
	pvetmplerrors "github.com/ionos-cloud/pvetmpl/pkg/errors"
	"github.com/ionos-cloud/pvetmpl/pkg/proxmox"
)

// Environment variables read by FromEnv.
const (
	// EnvAPIURL defines the Proxmox API base URL, e.g. https://pve:8006/api2/json.
	EnvAPIURL = "PROXMOX_API_URL"
	// EnvTokenID defines the Proxmox API token id, e.g. root@pam!uploader.
	EnvTokenID = "PROXMOX_TOKEN_ID"
	// EnvTokenSecret defines the secret for the given token id.
	EnvTokenSecret = "PROXMOX_TOKEN_SECRET"
	// EnvInsecureSkipTLSVerify disables certificate verification when true.
	EnvInsecureSkipTLSVerify = "PROXMOX_INSECURE_SKIP_TLS_VERIFY"
	// EnvRootCertFile names a PEM file trusted in addition to the system roots.
	EnvRootCertFile = "PROXMOX_ROOT_CERT_FILE"
	// EnvIsolateStorageErrors records storage listing failures per node instead of aborting.
	EnvIsolateStorageErrors = "PROXMOX_ISOLATE_STORAGE_ERRORS"
)

// Config is built once at process start and passed down read-only.
type Config struct {
	Endpoint proxmox.Endpoint
	TLS      tlshelper.Options

	// IsolateStorageErrors turns a failed storage listing into a per-node failure.
	IsolateStorageErrors bool
}

// FromEnv reads the configuration from the process environment. All problems
// are collected into a single ConfigError.
func FromEnv() (*Config, error) {
	problems := map[string]string{}

	cfg := &Config{
		Endpoint: proxmox.Endpoint{
			URL:         strings.TrimSpace(env.GetString(EnvAPIURL, "")),
			TokenID:     strings.TrimSpace(env.GetString(EnvTokenID, "")),
			TokenSecret: env.GetString(EnvTokenSecret, ""),
		},
		TLS: tlshelper.Options{
			RootCertFile: env.GetString(EnvRootCertFile, ""),
		},
	}

	if cfg.Endpoint.URL == "" {
		problems[EnvAPIURL] = "is required"
	} else if reason := validateURL(cfg.Endpoint.URL); reason != "" {
		problems[EnvAPIURL] = reason
	}
	if cfg.Endpoint.TokenID == "" {
		problems[EnvTokenID] = "is required"
	}
	if cfg.Endpoint.TokenSecret == "" {
		problems[EnvTokenSecret] = "is required"
	}

	var err error
	if cfg.TLS.InsecureSkipVerify, err = getBool(EnvInsecureSkipTLSVerify); err != nil {
		problems[EnvInsecureSkipTLSVerify] = "must be a boolean"
	}
	if cfg.IsolateStorageErrors, err = getBool(EnvIsolateStorageErrors); err != nil {
		problems[EnvIsolateStorageErrors] = "must be a boolean"
	}

	if len(problems) > 0 {
		return nil, &pvetmplerrors.ConfigError{Problems: problems}
	}
	return cfg, nil
}

// getBool treats an empty variable like an unset one.
func getBool(key string) (bool, error) {
	if strings.TrimSpace(env.GetString(key, "")) == "" {
		return false, nil
	}
	return env.GetBool(key, false)
}

func validateURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "is not a valid URL"
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return "must use http or https"
	}
	if u.Host == "" {
		return "must include a host"
	}
	return ""
}

// internal/vault/vault.go
//
// Minimal Vault client used by the config loader.
//
// Context
// -------
//   - Wraps the HashiCorp Vault Go SDK for one job: turning a `vault:`
//     reference inside conf/global.yaml into plain secret material.
//   - Reference syntax: `vault:<kv-path>#<field>`, for example
//     `vault:secret/data/labsite#session_key`.
//   - Address and token come from the standard VAULT_ADDR / VAULT_TOKEN
//     environment variables via api.DefaultConfig, so nothing secret ever
//     lands in the YAML tree.
//
// Public workflow
// ---------------
//  1. cli, err := vault.New()                       // during boot.
//  2. pw,  err := cli.Resolve(ctx, "vault:…#key")   // per reference.
package vault

import (
	"context"
	"errors"
	"fmt"
	"strings"

	vaultapi "github.com/hashicorp/vault/api"
)

// RefPrefix marks a config value that must be resolved through Vault.
const RefPrefix = "vault:"

// IsRef reports whether value is a Vault reference.
func IsRef(value string) bool { return strings.HasPrefix(value, RefPrefix) }

// Client is safe for concurrent use.  Zero value is invalid; build with New.
type Client struct {
	api *vaultapi.Client
}

// New builds a client from the process environment.  VAULT_ADDR must be
// set; a missing token surfaces later as a permission error from Vault.
func New() (*Client, error) {
	cfg := vaultapi.DefaultConfig()
	if cfg.Error != nil {
		return nil, cfg.Error
	}
	api, err := vaultapi.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{api: api}, nil
}

// Resolve reads the secret behind ref and returns the requested field.
func (c *Client) Resolve(ctx context.Context, ref string) (string, error) {
	path, field, err := splitRef(ref)
	if err != nil {
		return "", err
	}

	sec, err := c.api.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return "", fmt.Errorf("vault: read %s: %w", path, err)
	}
	if sec == nil || sec.Data == nil {
		return "", fmt.Errorf("vault: no secret at %s", path)
	}

	data := sec.Data
	// KV-v2 nests the payload one level down under "data".
	if inner, ok := sec.Data["data"].(map[string]any); ok {
		data = inner
	}

	val, ok := data[field].(string)
	if !ok {
		return "", fmt.Errorf("vault: %s has no string field %q", path, field)
	}
	return val, nil
}

// splitRef parses `vault:<path>#<field>`.
func splitRef(ref string) (path, field string, err error) {
	body := strings.TrimPrefix(ref, RefPrefix)
	i := strings.LastIndexByte(body, '#')
	if i <= 0 || i == len(body)-1 {
		return "", "", errors.New("vault: reference must look like vault:<path>#<field>")
	}
	return body[:i], body[i+1:], nil
}

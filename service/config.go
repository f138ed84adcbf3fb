package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/scy/cred/secret"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads a startup configuration from a JSON or YAML file, chosen
// by extension (.yaml/.yml selects YAML).
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	path = expandUserPath(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %v: %w", path, err)
	}
	config := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config %v: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config %v: %w", path, err)
		}
	}
	return config, nil
}

// expandUserPath expands a leading ~ to the user home directory.
func expandUserPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/"))
}

// ExpandURLWithSecret resolves secretRef with scy and expands credential
// placeholders in rawURL. An empty secretRef returns rawURL unchanged.
func ExpandURLWithSecret(ctx context.Context, rawURL, secretRef string) (string, error) {
	if secretRef == "" {
		return rawURL, nil
	}
	secrets := secret.New()
	sec, err := secrets.Lookup(ctx, secret.Resource(secretRef))
	if err != nil {
		return "", fmt.Errorf("failed to lookup secret %v: %w", secretRef, err)
	}
	return sec.Expand(rawURL), nil
}

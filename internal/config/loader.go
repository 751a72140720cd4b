package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a raw config from a YAML (.yaml, .yml) or JSON (.json) file,
// applies environment overrides and defaults. It does not validate.
func Load(filePath string) (Raw, error) {
	var raw Raw

	data, err := os.ReadFile(filePath)
	if err != nil {
		return raw, fmt.Errorf("config: read %s: %w", filePath, err)
	}

	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return raw, fmt.Errorf("config: parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return raw, fmt.Errorf("config: parse JSON: %w", err)
		}
	default:
		return raw, fmt.Errorf("config: unsupported file extension %q", ext)
	}

	raw.applyEnv()
	raw.ApplyDefaults()
	slog.Debug("config loaded", "path", filePath, "services", len(raw.Services))
	return raw, nil
}

// LoadAndValidate is Load followed by Validate.
func LoadAndValidate(filePath string) (Config, error) {
	raw, err := Load(filePath)
	if err != nil {
		return Config{}, err
	}
	return raw.Validate()
}

func (r *Raw) applyEnv() {
	r.MicrosoftTeamsWebhook = envOr("UPDOWN_TEAMS_WEBHOOK", r.MicrosoftTeamsWebhook)
	r.SlackWebhook = envOr("UPDOWN_SLACK_WEBHOOK", r.SlackWebhook)
	r.Server.BindAddress = envOr("UPDOWN_BIND_ADDRESS", r.Server.BindAddress)
	r.LogLevel = envOr("UPDOWN_LOG_LEVEL", r.LogLevel)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

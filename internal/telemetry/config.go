// Package telemetry reports anonymous generation events to PostHog.
// It is off unless enabled in configuration and given a project key.
package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// IDFileName holds the persisted anonymous id.
const IDFileName = "telemetry.json"

// Config is the resolved telemetry state.
type Config struct {
	Enabled     bool   `json:"enabled"`
	AnonymousID string `json:"anonymous_id"`
}

// IsEnabled reports whether events should be sent.
func (c *Config) IsEnabled() bool {
	return c != nil && c.Enabled
}

// Load returns the telemetry config, reusing the anonymous id stored in dir
// or minting and saving a new one. The enabled flag always comes from the
// caller's configuration, never from the file.
func Load(fsys afero.Fs, dir string, enabled bool) (*Config, error) {
	cfg := &Config{Enabled: enabled}
	path := filepath.Join(dir, IDFileName)

	data, err := afero.ReadFile(fsys, path)
	switch {
	case err == nil:
		var stored Config
		if err := json.Unmarshal(data, &stored); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		cfg.AnonymousID = stored.AnonymousID
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if cfg.AnonymousID != "" {
		return cfg, nil
	}

	cfg.AnonymousID = uuid.New().String()
	if !enabled {
		// Nothing is sent, so nothing needs to be remembered.
		return cfg, nil
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := afero.WriteFile(fsys, path, out, 0o600); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return cfg, nil
}

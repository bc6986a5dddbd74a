package config

import (
	"os"
	"path/filepath"
)

// AppName is used for the state directory and config file names.
const AppName = "monadgen"

// GetGlobalConfigDir returns ~/.monadgen, where the global config file,
// telemetry id and crash logs live. It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "."+AppName), nil
}

// StateDir returns the global config dir, or a local fallback when the home
// directory cannot be resolved.
func StateDir() string {
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "." + AppName
	}
	return dir
}

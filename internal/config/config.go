// Package config handles configuration loading and library home resolution.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Config types
// ---------------------------------------------------------------------------

// StorageConfig selects where the category document lives.
type StorageConfig struct {
	Backend  string `yaml:"backend"`  // "file" | "sqlite"
	Document string `yaml:"document"` // file name (file) or document key (sqlite)
	Database string `yaml:"database"` // sqlite file name, relative to the library home
}

// LogConfig controls the diagnostic logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `yaml:"format"` // "text" | "json"
}

// Config is the root per-library configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:  "file",
			Document: "categories.json",
			Database: "library.db",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads a per-library config.yaml from path.
// If the file does not exist it returns Default() with no error.
// Missing or empty keys retain their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	// Unmarshal into a plain map so we can apply only the keys that are present.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if st, ok := raw["storage"].(map[string]any); ok {
		setString(&cfg.Storage.Backend, st["backend"])
		setString(&cfg.Storage.Document, st["document"])
		setString(&cfg.Storage.Database, st["database"])
	}
	if lg, ok := raw["log"].(map[string]any); ok {
		setString(&cfg.Log.Level, lg["level"])
		setString(&cfg.Log.Format, lg["format"])
	}

	return cfg, nil
}

func setString(dst *string, v any) {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		*dst = strings.TrimSpace(s)
	}
}

// ---------------------------------------------------------------------------
// Library home resolution
// ---------------------------------------------------------------------------

// globalConfigPath returns the path to the global gameshelf config file.
// This file stores only library_home.
func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gameshelf", "config.yaml"), nil
}

// normalizePath expands ~ and makes the path absolute.
func normalizePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(os.ExpandEnv(path))
}

// ResolveLibraryHome returns the library home path and the source of the resolution.
// Priority: GAMESHELF_HOME env → persisted global config → ~/.gameshelf
// source is one of "env", "config", or "default".
func ResolveLibraryHome() (path, source string) {
	if env := os.Getenv("GAMESHELF_HOME"); env != "" {
		p, err := normalizePath(env)
		if err == nil {
			return p, "env"
		}
	}

	if persisted, ok, _ := GetPersistedLibraryHome(); ok {
		return persisted, "config"
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".gameshelf"), "default"
}

// GetLibraryHome returns the resolved library home path.
func GetLibraryHome() string {
	path, _ := ResolveLibraryHome()
	return path
}

// GetPersistedLibraryHome reads library_home from the global config.
// Returns ("", false, nil) if not set.
func GetPersistedLibraryHome() (string, bool, error) {
	raw, err := readGlobal()
	if err != nil || raw == nil {
		return "", false, err
	}

	val, _ := raw["library_home"].(string)
	val = strings.TrimSpace(val)
	if val == "" {
		return "", false, nil
	}

	p, err := normalizePath(val)
	if err != nil {
		return "", false, err
	}
	return p, true, nil
}

// SetPersistedLibraryHome normalizes path and persists it in the global config.
// Returns the normalized path.
func SetPersistedLibraryHome(path string) (string, error) {
	normalized, err := normalizePath(path)
	if err != nil {
		return "", err
	}

	cfgPath, err := globalConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", err
	}

	// Keep any other keys already in the global config.
	raw, _ := readGlobal()
	if raw == nil {
		raw = make(map[string]any)
	}
	raw["library_home"] = normalized

	out, err := yaml.Marshal(raw)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(cfgPath, out, 0o600); err != nil {
		return "", err
	}
	return normalized, nil
}

// ClearPersistedLibraryHome removes library_home from the global config.
// Returns true if the key was present and removed.
// If the file becomes empty after removal it is deleted.
func ClearPersistedLibraryHome() (bool, error) {
	raw, err := readGlobal()
	if err != nil || raw == nil {
		return false, err
	}
	if _, ok := raw["library_home"]; !ok {
		return false, nil
	}
	delete(raw, "library_home")

	cfgPath, err := globalConfigPath()
	if err != nil {
		return false, err
	}
	if len(raw) == 0 {
		_ = os.Remove(cfgPath)
		return true, nil
	}

	out, err := yaml.Marshal(raw)
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(cfgPath, out, 0o600)
}

// readGlobal parses the global config. A missing or unparseable file yields
// a nil map and no error.
func readGlobal() (map[string]any, error) {
	cfgPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil //nolint:nilerr // a corrupt global config is treated as unset
	}
	return raw, nil
}

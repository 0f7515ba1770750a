// Package setup registers and removes the gameshelf MCP server in the JSON
// config file of an MCP client (any file using the "mcpServers" layout).
package setup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ServerName is the key used under mcpServers.
const ServerName = "gameshelf"

// Result is the return value from Install and Uninstall.
type Result struct {
	Changed bool
	Message string
}

func resultf(changed bool, f string, a ...any) Result {
	return Result{Changed: changed, Message: fmt.Sprintf(f, a...)}
}

// serverEntry builds the stdio entry. A non-empty home is pinned through
// GAMESHELF_HOME so the client opens the same library as the CLI.
func serverEntry(home string) map[string]any {
	entry := map[string]any{
		"command": "gameshelf",
		"args":    []any{"mcp"},
		"type":    "stdio",
	}
	if home != "" {
		entry["env"] = map[string]any{"GAMESHELF_HOME": home}
	}
	return entry
}

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

// readJSON parses path. A missing file yields an empty map; a file that is
// not a JSON object is an error so it is never overwritten.
func readJSON(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return make(map[string]any), nil
	}
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

func writeJSON(path string, data map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644) // #nosec G306 -- MCP client config holds no secrets
}

// ---------------------------------------------------------------------------
// Install / Uninstall
// ---------------------------------------------------------------------------

// Install adds the gameshelf entry to the client config at path, creating
// the file when needed. An existing entry is left untouched unless force
// is set.
func Install(path, home string, force bool) (Result, error) {
	data, err := readJSON(path)
	if err != nil {
		return Result{}, fmt.Errorf("setup.Install: %w", err)
	}
	servers, _ := data["mcpServers"].(map[string]any)
	if servers == nil {
		servers = make(map[string]any)
		data["mcpServers"] = servers
	}
	if _, exists := servers[ServerName]; exists && !force {
		return resultf(false, "Already installed in %s", path), nil
	}
	servers[ServerName] = serverEntry(home)
	if err := writeJSON(path, data); err != nil {
		return Result{}, fmt.Errorf("setup.Install: %w", err)
	}
	return resultf(true, "Installed gameshelf MCP server in %s", path), nil
}

// Uninstall removes the gameshelf entry from the client config at path.
// Empty containers left behind are removed, and so is a file that ends up
// empty.
func Uninstall(path string) (Result, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return resultf(false, "Nothing to remove: %s does not exist", path), nil
	}
	data, err := readJSON(path)
	if err != nil {
		return Result{}, fmt.Errorf("setup.Uninstall: %w", err)
	}
	servers, _ := data["mcpServers"].(map[string]any)
	if _, exists := servers[ServerName]; !exists {
		return resultf(false, "Not installed in %s", path), nil
	}
	delete(servers, ServerName)
	if len(servers) == 0 {
		delete(data, "mcpServers")
	}
	if len(data) == 0 {
		if err := os.Remove(path); err != nil {
			return Result{}, fmt.Errorf("setup.Uninstall: %w", err)
		}
		return resultf(true, "Removed gameshelf MCP server; deleted empty %s", path), nil
	}
	if err := writeJSON(path, data); err != nil {
		return Result{}, fmt.Errorf("setup.Uninstall: %w", err)
	}
	return resultf(true, "Removed gameshelf MCP server from %s", path), nil
}

// Package setup registers and removes the todo MCP server in the config files
// of supported coding agents (Claude Code, Cursor, Codex, OpenCode).
package setup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/go-ports/todo/internal/atomicfile"
)

// ServerName is the key the MCP server is registered under.
const ServerName = "todo"

// Result is the return value from all Setup/Uninstall functions.
type Result struct {
	Changed bool
	Message string
}

func unchanged(msg string) Result        { return Result{Message: msg} }
func changedf(f string, a ...any) Result { return Result{Changed: true, Message: fmt.Sprintf(f, a...)} }

// Entry is the command an agent runs to start the MCP server.
type Entry struct {
	Command string   `json:"command" toml:"command"`
	Args    []string `json:"args" toml:"args"`
}

// NewEntry returns the entry for the todo binary. A non-empty file is pinned
// with --file so the agent always edits that list.
func NewEntry(file string) Entry {
	e := Entry{Command: "todo", Args: []string{"mcp"}}
	if file != "" {
		e.Args = append(e.Args, "--file", file)
	}
	return e
}

func (e Entry) stdioJSON() map[string]any {
	return map[string]any{
		"command": e.Command,
		"args":    toAny(e.Args),
		"type":    "stdio",
	}
}

func (e Entry) opencodeJSON() map[string]any {
	return map[string]any{
		"type":    "local",
		"command": toAny(append([]string{e.Command}, e.Args...)),
	}
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// ---------------------------------------------------------------------------
// Default path helpers
// ---------------------------------------------------------------------------

// DefaultClaudeHome returns the default ~/.claude directory.
func DefaultClaudeHome() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude")
}

// DefaultCursorHome returns the default ~/.cursor directory.
func DefaultCursorHome() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cursor")
}

// DefaultCodexHome returns the default ~/.codex directory.
func DefaultCodexHome() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".codex")
}

//revive:disable:flag-parameter
func claudeMCPPath(claudeHome string, project bool) string {
	if project {
		return filepath.Join(filepath.Dir(claudeHome), ".mcp.json")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude.json")
}

func opencodeMCPPath(project bool) string {
	if project {
		cwd, _ := os.Getwd()
		return filepath.Join(cwd, "opencode.json")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "opencode", "opencode.json")
}

//revive:enable:flag-parameter

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

// readJSON returns the object stored at path, or an empty map when the file
// does not exist. A file that is not a JSON object is an error so it is
// never overwritten.
func readJSON(path string) (map[string]any, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- agent config path chosen by the user
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]any), nil
	}
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if len(bytes.TrimSpace(data)) == 0 {
		return make(map[string]any), nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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
	return atomicfile.WriteFile(path, append(b, '\n'), 0)
}

// installJSON adds value under data[section][ServerName].
func installJSON(path, section string, value map[string]any) (bool, error) {
	data, err := readJSON(path)
	if err != nil {
		return false, err
	}
	servers, _ := data[section].(map[string]any)
	if servers == nil {
		servers = make(map[string]any)
		data[section] = servers
	}
	if _, exists := servers[ServerName]; exists {
		return false, nil
	}
	servers[ServerName] = value
	return true, writeJSON(path, data)
}

// uninstallJSON removes data[section][ServerName], dropping the section and
// the file once they are empty.
func uninstallJSON(path, section string) (bool, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	data, err := readJSON(path)
	if err != nil {
		return false, err
	}
	servers, _ := data[section].(map[string]any)
	if _, exists := servers[ServerName]; !exists {
		return false, nil
	}
	delete(servers, ServerName)
	if len(servers) == 0 {
		delete(data, section)
	}
	if len(data) == 0 {
		return true, os.Remove(path)
	}
	return true, writeJSON(path, data)
}

// ---------------------------------------------------------------------------
// TOML helpers (Codex)
// ---------------------------------------------------------------------------

var tomlHeader = "[mcp_servers." + ServerName + "]"

// hasTOMLEntry reports whether the Codex config already defines the server.
// The file is parsed so a broken config is reported instead of appended to.
func hasTOMLEntry(path string) (bool, error) {
	var doc map[string]any
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", path, err)
	}
	servers, _ := doc["mcp_servers"].(map[string]any)
	_, ok := servers[ServerName]
	return ok, nil
}

// tomlSection renders the table for e. Values go through the encoder so
// paths are quoted and escaped correctly.
func tomlSection(e Entry) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("\n" + tomlHeader + "\n")
	if err := toml.NewEncoder(&buf).Encode(e); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// appendTOMLEntry appends the server table to the file rather than
// re-encoding it, so the user's comments and layout survive.
func appendTOMLEntry(path string, e Entry) (bool, error) {
	has, err := hasTOMLEntry(path)
	if err != nil || has {
		return false, err
	}
	section, err := tomlSection(e)
	if err != nil {
		return false, err
	}
	existing, err := os.ReadFile(path) // #nosec G304 -- agent config path chosen by the user
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	content := strings.TrimRight(string(existing), "\n") + "\n" + section
	if len(existing) == 0 {
		content = strings.TrimPrefix(section, "\n")
	}
	return true, atomicfile.WriteFile(path, []byte(content), 0)
}

// removeTOMLEntry drops the server table header and its keys, up to the next
// table header or EOF.
func removeTOMLEntry(path string) (bool, error) {
	has, err := hasTOMLEntry(path)
	if err != nil || !has {
		return false, err
	}
	data, err := os.ReadFile(path) // #nosec G304 -- agent config path chosen by the user
	if err != nil {
		return false, err
	}

	lines := strings.Split(string(data), "\n")
	kept := make([]string, 0, len(lines))
	inSection := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == tomlHeader {
			inSection = true
			continue
		}
		if inSection && strings.HasPrefix(trimmed, "[") {
			inSection = false
		}
		if !inSection {
			kept = append(kept, line)
		}
	}

	cleaned := strings.TrimRight(strings.Join(kept, "\n"), "\n")
	if strings.TrimSpace(cleaned) == "" {
		return true, os.Remove(path)
	}
	return true, atomicfile.WriteFile(path, []byte(cleaned+"\n"), 0)
}

// ---------------------------------------------------------------------------
// Setup
// ---------------------------------------------------------------------------

// SetupClaudeCode registers the server in ~/.claude.json, or in .mcp.json
// next to claudeHome when project is set. claudeHome defaults to ~/.claude.
//
//revive:disable:flag-parameter
func SetupClaudeCode(claudeHome string, project bool, e Entry) (Result, error) {
	if claudeHome == "" {
		claudeHome = DefaultClaudeHome()
	}
	path := claudeMCPPath(claudeHome, project)
	added, err := installJSON(path, "mcpServers", e.stdioJSON())
	if err != nil {
		return Result{}, fmt.Errorf("setup claude-code: %w", err)
	}
	if !added {
		return unchanged("Already installed"), nil
	}
	return changedf("Installed: mcpServers in %s", path), nil
}

// SetupOpencode registers the server in the global or project opencode.json.
func SetupOpencode(project bool, e Entry) (Result, error) {
	path := opencodeMCPPath(project)
	added, err := installJSON(path, "mcp", e.opencodeJSON())
	if err != nil {
		return Result{}, fmt.Errorf("setup opencode: %w", err)
	}
	if !added {
		return unchanged("Already installed"), nil
	}
	return changedf("Installed: mcp in %s", path), nil
}

//revive:enable:flag-parameter

// SetupCursor registers the server in <cursorHome>/mcp.json.
// cursorHome defaults to ~/.cursor.
func SetupCursor(cursorHome string, e Entry) (Result, error) {
	if cursorHome == "" {
		cursorHome = DefaultCursorHome()
	}
	path := filepath.Join(cursorHome, "mcp.json")
	added, err := installJSON(path, "mcpServers", e.stdioJSON())
	if err != nil {
		return Result{}, fmt.Errorf("setup cursor: %w", err)
	}
	if !added {
		return unchanged("Already installed"), nil
	}
	return changedf("Installed: mcpServers in %s", path), nil
}

// SetupCodex registers the server in <codexHome>/config.toml.
// codexHome defaults to ~/.codex.
func SetupCodex(codexHome string, e Entry) (Result, error) {
	if codexHome == "" {
		codexHome = DefaultCodexHome()
	}
	path := filepath.Join(codexHome, "config.toml")
	added, err := appendTOMLEntry(path, e)
	if err != nil {
		return Result{}, fmt.Errorf("setup codex: %w", err)
	}
	if !added {
		return unchanged("Already installed"), nil
	}
	return changedf("Installed: mcp_servers.%s in %s", ServerName, path), nil
}

// ---------------------------------------------------------------------------
// Uninstall
// ---------------------------------------------------------------------------

// UninstallClaudeCode removes the server entry written by SetupClaudeCode.
//
//revive:disable:flag-parameter
func UninstallClaudeCode(claudeHome string, project bool) (Result, error) {
	if claudeHome == "" {
		claudeHome = DefaultClaudeHome()
	}
	return uninstallResult("claude-code", claudeMCPPath(claudeHome, project), "mcpServers")
}

// UninstallOpencode removes the server entry written by SetupOpencode.
func UninstallOpencode(project bool) (Result, error) {
	return uninstallResult("opencode", opencodeMCPPath(project), "mcp")
}

//revive:enable:flag-parameter

// UninstallCursor removes the server entry written by SetupCursor.
func UninstallCursor(cursorHome string) (Result, error) {
	if cursorHome == "" {
		cursorHome = DefaultCursorHome()
	}
	return uninstallResult("cursor", filepath.Join(cursorHome, "mcp.json"), "mcpServers")
}

// UninstallCodex removes the server table written by SetupCodex.
func UninstallCodex(codexHome string) (Result, error) {
	if codexHome == "" {
		codexHome = DefaultCodexHome()
	}
	path := filepath.Join(codexHome, "config.toml")
	done, err := removeTOMLEntry(path)
	if err != nil {
		return Result{}, fmt.Errorf("uninstall codex: %w", err)
	}
	if !done {
		return unchanged("Nothing to remove"), nil
	}
	return changedf("Removed: mcp_servers.%s from %s", ServerName, path), nil
}

func uninstallResult(agent, path, section string) (Result, error) {
	done, err := uninstallJSON(path, section)
	if err != nil {
		return Result{}, fmt.Errorf("uninstall %s: %w", agent, err)
	}
	if !done {
		return unchanged("Nothing to remove"), nil
	}
	return changedf("Removed: %s from %s", section, path), nil
}

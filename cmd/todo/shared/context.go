// Package shared holds state and helpers used by all CLI commands.
package shared

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// File overrides the activity data file.
	// When empty, resolution falls through to TODO_FILE env → persisted config → ~/.todo/todo.json.
	File string

	// Verbose enables debug logging on stderr.
	Verbose bool
}

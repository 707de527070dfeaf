package config

import "github.com/proxyforge/proxyforge/pkg/units"

// Tool identifies which front-end a surface was built for.
type Tool int

const (
	ToolConsole Tool = iota
	ToolDump
	ToolWeb
)

func (t Tool) String() string {
	switch t {
	case ToolDump:
		return "proxydump"
	case ToolWeb:
		return "proxyweb"
	default:
		return "proxyforge"
	}
}

// RawArgs is the flat bag of values produced by parsing user input against
// an argument surface. Values are keyed by option name and carry the CLI >
// environment > config file > default priority already applied; they are not
// yet cross-validated.
type RawArgs struct {
	Tool       Tool
	StreamFile *units.StreamFile

	values map[string]any
}

// NewRawArgs returns an empty bag for the given tool.
func NewRawArgs(tool Tool) *RawArgs {
	return &RawArgs{Tool: tool, values: make(map[string]any)}
}

// Set stores a value under an option name, replacing any previous one.
func (r *RawArgs) Set(name string, v any) {
	r.values[name] = v
}

// Bool returns the named value, or false when absent.
func (r *RawArgs) Bool(name string) bool {
	v, _ := r.values[name].(bool)
	return v
}

// Int returns the named value, or zero when absent.
func (r *RawArgs) Int(name string) int {
	v, _ := r.values[name].(int)
	return v
}

// String returns the named value, or "" when absent.
func (r *RawArgs) String(name string) string {
	v, _ := r.values[name].(string)
	return v
}

// Strings returns the named list value, or nil when absent. Order and
// duplicates are exactly as supplied.
func (r *RawArgs) Strings(name string) []string {
	v, _ := r.values[name].([]string)
	return v
}

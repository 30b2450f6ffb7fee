// Package mcp provides the model-context-protocol client abstraction
// agents use to call named external knowledge tools. Two backends
// exist: an in-process tool host (the default) and a remote MCP server
// reached over streamable HTTP.
package mcp

import (
	"context"
)

// Known tool names. The tool registry is fixed at process start.
const (
	ToolDictionary    = "dictionary"
	ToolCodeExplainer = "code_explainer"
	ToolPastNotes     = "past_notes"
)

// Result is the uniform outcome of a tool invocation. "No data found"
// is OK=true with empty data, never an error.
type Result struct {
	OK    bool                   `json:"ok"`
	Data  map[string]interface{} `json:"data"`
	Error string                 `json:"error,omitempty"`
}

// Client invokes named knowledge tools. Implementations must return an
// unknown_tool error for names outside the registry and a tool_error
// for execution failures; each call is independent.
type Client interface {
	Call(ctx context.Context, toolName string, params map[string]interface{}) (Result, error)
}

// KnownTools returns the static tool registry names.
func KnownTools() []string {
	return []string{ToolCodeExplainer, ToolDictionary, ToolPastNotes}
}

func isKnownTool(name string) bool {
	switch name {
	case ToolDictionary, ToolCodeExplainer, ToolPastNotes:
		return true
	}
	return false
}

// Package prompts holds the per-agent prompt templates, embedded at
// build time.
package prompts

import (
	"embed"
	"fmt"
	"log/slog"
	"strings"
)

//go:embed templates/*.txt
var templates embed.FS

// Get returns the prompt for the named agent. When no template exists
// a generic fallback is returned so agents always have an instruction.
func Get(agentName string) string {
	data, err := templates.ReadFile(fmt.Sprintf("templates/%s_prompt.txt", agentName))
	if err != nil {
		slog.Warn("Prompt template not found, using fallback", "agent", agentName)
		return fmt.Sprintf("You are the %s agent of a learning platform. Support the learner.", agentName)
	}
	return strings.TrimSpace(string(data))
}

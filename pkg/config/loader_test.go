package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ZeroConfig(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.Equal(t, "memory", cfg.Notes.Backend)
	assert.Equal(t, "local", cfg.MCP.Mode)
	assert.Equal(t, 3, cfg.Quiz.QuestionCount)
	assert.Equal(t, "beginner", cfg.Quiz.DefaultLevel)
	assert.Equal(t, "multiple_choice", cfg.Quiz.DefaultQuestionType)
}

func TestLoad_FileOverrides(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9000
llm:
  provider: openai
  model: gpt-4o
quiz:
  question_count: 5
notes:
  backend: sqlite
  path: /tmp/sensei-notes.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, 5, cfg.Quiz.QuestionCount)
	assert.Equal(t, "sqlite", cfg.Notes.Backend)

	// Untouched sections keep defaults
	assert.Equal(t, "local", cfg.MCP.Mode)
	assert.Equal(t, "beginner", cfg.Quiz.DefaultLevel)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("SENSEI_TEST_API_KEY", "sk-test-123")

	path := writeConfigFile(t, `
llm:
  provider: openai
  api_key: ${SENSEI_TEST_API_KEY}
  base_url: ${SENSEI_TEST_BASE_URL:-https://api.openai.com/v1}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-test-123", cfg.LLM.APIKey)
	assert.Equal(t, "https://api.openai.com/v1", cfg.LLM.BaseURL)
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "unknown llm provider",
			content: `
llm:
  provider: bard
`,
		},
		{
			name: "sqlite without path",
			content: `
notes:
  backend: sqlite
`,
		},
		{
			name: "remote mcp without url",
			content: `
mcp:
  mode: remote
`,
		},
		{
			name: "question count out of range",
			content: `
quiz:
  question_count: 50
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfigFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

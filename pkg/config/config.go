// Package config defines the sensei configuration surface and its
// file/env loading.
package config

import (
	"fmt"
)

// Config is the root configuration.
type Config struct {
	Server ServerConfig `koanf:"server"`
	LLM    LLMConfig    `koanf:"llm"`
	Notes  NotesConfig  `koanf:"notes"`
	MCP    MCPConfig    `koanf:"mcp"`
	Quiz   QuizConfig   `koanf:"quiz"`
	Logger LoggerConfig `koanf:"logger"`
}

// ServerConfig configures the HTTP transport.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// LLMConfig configures the text-generation capability.
type LLMConfig struct {
	// Provider is one of: openai, ollama, mock.
	Provider    string  `koanf:"provider"`
	Model       string  `koanf:"model"`
	APIKey      string  `koanf:"api_key"`
	BaseURL     string  `koanf:"base_url"`
	Temperature float64 `koanf:"temperature"`
	MaxTokens   int     `koanf:"max_tokens"`
	// Timeout bounds every generation call, in seconds.
	Timeout    int `koanf:"timeout"`
	MaxRetries int `koanf:"max_retries"`
	RetryDelay int `koanf:"retry_delay"`
}

// NotesConfig configures the learning-log store.
type NotesConfig struct {
	// Backend is "memory" or "sqlite".
	Backend string `koanf:"backend"`
	// Path is the sqlite database file (sqlite backend only).
	Path string `koanf:"path"`
}

// MCPConfig configures the knowledge-tool client.
type MCPConfig struct {
	// Mode is "local" (in-process tool host) or "remote" (external MCP
	// server reached over streamable HTTP).
	Mode      string `koanf:"mode"`
	ServerURL string `koanf:"server_url"`
	// Timeout bounds every tool call, in seconds.
	Timeout int `koanf:"timeout"`
}

// QuizConfig configures quiz generation defaults.
type QuizConfig struct {
	QuestionCount       int    `koanf:"question_count"`
	DefaultLevel        string `koanf:"default_level"`
	DefaultQuestionType string `koanf:"default_question_type"`
}

// LoggerConfig configures logging output.
type LoggerConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

// SetDefaults fills unset fields and expands ${VAR} references in
// string fields that commonly carry secrets or hosts.
func (c *Config) SetDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}

	if c.LLM.Provider == "" {
		c.LLM.Provider = "mock"
	}
	if c.LLM.Model == "" {
		switch c.LLM.Provider {
		case "openai":
			c.LLM.Model = "gpt-4o-mini"
		case "ollama":
			c.LLM.Model = "llama3"
		}
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 2048
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 60
	}
	if c.LLM.MaxRetries == 0 {
		c.LLM.MaxRetries = 2
	}
	if c.LLM.RetryDelay == 0 {
		c.LLM.RetryDelay = 2
	}
	c.LLM.APIKey = expandEnvVars(c.LLM.APIKey)
	c.LLM.BaseURL = expandEnvVars(c.LLM.BaseURL)

	if c.Notes.Backend == "" {
		c.Notes.Backend = "memory"
	}
	c.Notes.Path = expandEnvVars(c.Notes.Path)

	if c.MCP.Mode == "" {
		c.MCP.Mode = "local"
	}
	if c.MCP.Timeout == 0 {
		c.MCP.Timeout = 30
	}
	c.MCP.ServerURL = expandEnvVars(c.MCP.ServerURL)

	if c.Quiz.QuestionCount == 0 {
		c.Quiz.QuestionCount = 3
	}
	if c.Quiz.DefaultLevel == "" {
		c.Quiz.DefaultLevel = "beginner"
	}
	if c.Quiz.DefaultQuestionType == "" {
		c.Quiz.DefaultQuestionType = "multiple_choice"
	}

	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Format == "" {
		c.Logger.Format = "simple"
	}
}

// Validate checks cross-field constraints after defaults are applied.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch c.LLM.Provider {
	case "openai", "ollama", "mock":
	default:
		return fmt.Errorf("llm.provider must be one of openai, ollama, mock; got %q", c.LLM.Provider)
	}

	switch c.Notes.Backend {
	case "memory":
	case "sqlite":
		if c.Notes.Path == "" {
			return fmt.Errorf("notes.path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("notes.backend must be memory or sqlite, got %q", c.Notes.Backend)
	}

	switch c.MCP.Mode {
	case "local":
	case "remote":
		if c.MCP.ServerURL == "" {
			return fmt.Errorf("mcp.server_url is required for remote mode")
		}
	default:
		return fmt.Errorf("mcp.mode must be local or remote, got %q", c.MCP.Mode)
	}

	if c.Quiz.QuestionCount < 1 || c.Quiz.QuestionCount > 20 {
		return fmt.Errorf("quiz.question_count must be between 1 and 20, got %d", c.Quiz.QuestionCount)
	}

	return nil
}

// Default returns a ready-to-use zero-config setup: mock LLM, local MCP
// tools, in-memory notes.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

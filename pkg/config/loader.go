package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// defaultsMap seeds the koanf tree so a partial YAML file only has to
// state what it overrides.
func defaultsMap() map[string]interface{} {
	return map[string]interface{}{
		"server.host":                "0.0.0.0",
		"server.port":                8000,
		"llm.provider":               "mock",
		"notes.backend":              "memory",
		"mcp.mode":                   "local",
		"quiz.question_count":        3,
		"quiz.default_level":         "beginner",
		"quiz.default_question_type": "multiple_choice",
		"logger.level":               "info",
		"logger.format":              "simple",
	}
}

// Load reads a YAML config file, applies defaults, expands env
// references and validates the result. An empty path yields the
// zero-config defaults.
func Load(path string) (*Config, error) {
	LoadDotEnv()

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

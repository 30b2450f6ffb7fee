// Command sensei runs the learning-agents server: a teacher entry
// point that classifies questions and delegates to quiz and review
// agents over the task-message protocol.
//
// Usage:
//
//	sensei serve --config config.yaml
//	sensei validate --config config.yaml
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/alecthomas/kong"

	"github.com/senseihq/sensei/pkg/config"
	"github.com/senseihq/sensei/pkg/logger"
)

// CLI defines the command-line interface.
type CLI struct {
	Version  VersionCmd  `cmd:"" help:"Show version information."`
	Serve    ServeCmd    `cmd:"" help:"Start the agent server."`
	Validate ValidateCmd `cmd:"" help:"Validate configuration file."`
	Quiz     QuizCmd     `cmd:"" help:"Request a quiz from a running server."`
	Review   ReviewCmd   `cmd:"" help:"Request a review packet from a running server."`

	Config    string `short:"c" help:"Path to config file." type:"path"`
	LogLevel  string `help:"Log level (debug, info, warn, error)." default:"info"`
	LogFile   string `help:"Log file path (empty = stderr)."`
	LogFormat string `help:"Log format (simple or verbose)." default:"simple"`
}

// VersionCmd shows version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	version := "dev"
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			version = info.Main.Version
		}
	}
	fmt.Printf("sensei version %s\n", version)
	return nil
}

// ValidateCmd loads and validates the configuration, then exits.
type ValidateCmd struct{}

func (c *ValidateCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	fmt.Printf("Configuration OK (llm=%s, notes=%s, mcp=%s)\n",
		cfg.LLM.Provider, cfg.Notes.Backend, cfg.MCP.Mode)
	return nil
}

func setupLogging(cli *CLI) error {
	level, err := logger.ParseLevel(cli.LogLevel)
	if err != nil {
		return err
	}

	output := os.Stderr
	if cli.LogFile != "" {
		file, _, err := logger.OpenLogFile(cli.LogFile)
		if err != nil {
			return err
		}
		output = file
	}

	logger.Init(level, output, cli.LogFormat)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("sensei"),
		kong.Description("Learning-agents server: teacher, quiz and review agents over A2A."),
		kong.UsageOnError(),
	)

	if err := setupLogging(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := ctx.Run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

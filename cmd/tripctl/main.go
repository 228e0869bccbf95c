package main

import (
	"fmt"
	"os"

	"triptacticx/internal/logger"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
)

// Global передается во все команды.
type Global struct {
	Logger  *zap.Logger
	EnvFile string
}

// CLI - корневые флаги и команды tripctl.
type CLI struct {
	EnvFile string `name:"env-file" help:"Path to .env file with SMTP and AI settings" default:".env"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Render RenderCmd `cmd:"" help:"Render a plan file (YAML or JSON) into a PDF"`
	Send   SendCmd   `cmd:"" help:"Render a plan file and email the PDF"`
	Plan   PlanCmd   `cmd:"" help:"Run the agent planner for a trip and print the plan as YAML"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("tripctl"),
		kong.Description("Operator tool for TripTacticx travel plans."),
		kong.UsageOnError(),
	)

	level := "info"
	if cli.Verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Config{Level: level, Encoding: "console", OutputPath: "stderr"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	err = ctx.Run(&Global{Logger: log, EnvFile: cli.EnvFile})
	ctx.FatalIfErrorf(err)
}

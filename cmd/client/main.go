package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	config "github.com/mutablelogic/go-assistant/pkg/config"
	log "github.com/mutablelogic/go-assistant/pkg/log"
	tracing "github.com/mutablelogic/go-assistant/pkg/tracing"
	version "github.com/mutablelogic/go-assistant/pkg/version"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug logging"`
	Verbose bool `name:"verbose" help:"Trace language model requests"`

	// Configuration
	EnvFile string `name:"env-file" default:".env" help:"File to read configuration from, before the environment"`

	// Tool host and language model
	Host `embed:""`

	// Context
	ctx      context.Context
	execName string
	config   *config.Config
	tracer   trace.Tracer
}

type CLI struct {
	Globals

	// Commands
	Chat    ChatCmd    `cmd:"" default:"withargs" help:"Chat about the weather (default)"`
	Ask     AskCmd     `cmd:"" help:"Answer a single question"`
	Tools   ToolsCmd   `cmd:"" help:"List the tools published by the tool host"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	serviceName     = "weather-client"
	shutdownTimeout = 5 * time.Second
)

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Weather assistant, answering questions with tools from a tool host"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.execName = execName()

	// Read the configuration
	cfg, err := config.Load(cli.EnvFile)
	cmd.FatalIfErrorf(err)
	cli.Globals.config = cfg

	// Set the log level
	level := cfg.LogLevel
	if cli.Debug {
		level = "debug"
	}
	cmd.FatalIfErrorf(log.Init(level))

	// Export traces when a collector is configured
	if cfg.OTel.Endpoint != "" {
		provider, err := tracing.New(ctx, cfg.OTel.Endpoint, serviceName, version.Version())
		cmd.FatalIfErrorf(err)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := provider.Shutdown(ctx); err != nil {
				log.Warnf(ctx, "trace shutdown: %v", err)
			}
		}()
		cli.Globals.tracer = provider.Tracer()
	}

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
}

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}

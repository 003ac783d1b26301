package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	// Packages
	config "github.com/mutablelogic/go-assistant/pkg/config"
	groq "github.com/mutablelogic/go-assistant/pkg/groq"
	log "github.com/mutablelogic/go-assistant/pkg/log"
	mcpclient "github.com/mutablelogic/go-assistant/pkg/mcp/client"
	orchestrator "github.com/mutablelogic/go-assistant/pkg/orchestrator"
	ui "github.com/mutablelogic/go-assistant/pkg/ui"
	table "github.com/mutablelogic/go-assistant/pkg/ui/table"
	version "github.com/mutablelogic/go-assistant/pkg/version"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type ChatCmd struct{}

type AskCmd struct {
	Text string `arg:"" help:"Question about the weather in a city"`
}

type ToolsCmd struct{}

type VersionCmd struct{}

////////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ChatCmd) Run(ctx *Globals) error {
	term := ui.NewTerm(os.Stdin, os.Stdout)

	// Report the language model and tool host status
	if err := ctx.Preflight(term); err != nil {
		return err
	}

	term.SysPrint("Ask about the weather in any city, like 'What's the weather in London?' or 'How's the weather in Tokyo?'")
	term.SysPrint("Connecting to the tool host at %s...", ctx.Endpoint())
	host, err := ctx.Connect()
	if err != nil {
		term.Errorf("Failed to connect to the tool host: %v", err)
		return err
	}
	defer host.Close()

	// List the tools
	tools, err := host.ListTools(ctx.ctx)
	if err != nil {
		return err
	}
	term.SysPrint("Connected. Type 'quit' to exit.")
	term.Println(table.Render(table.Tools(tools), ui.Width(os.Stdout)))

	// Create the orchestrator
	assistant, err := ctx.Orchestrator(host)
	if err != nil {
		return err
	}

	// Answer utterances until quit or end of input
	for {
		text, err := term.ReadLine(ctx.ctx)
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || orchestrator.IsQuit(text) {
			term.Println("")
			term.SysPrint("Goodbye!")
			return nil
		} else if err != nil {
			return err
		} else if text == "" {
			continue
		}

		reply, err := assistant.Respond(log.WithRequestID(ctx.ctx), text)
		if err != nil {
			term.Println("")
			term.SysPrint("Goodbye!")
			return nil
		}
		term.Reply(reply)
	}
}

func (cmd *AskCmd) Run(ctx *Globals) error {
	host, err := ctx.Connect()
	if err != nil {
		return err
	}
	defer host.Close()

	assistant, err := ctx.Orchestrator(host)
	if err != nil {
		return err
	}
	reply, err := assistant.Respond(log.WithRequestID(ctx.ctx), cmd.Text)
	if err != nil {
		return err
	}
	fmt.Println(reply)
	return nil
}

func (cmd *ToolsCmd) Run(ctx *Globals) error {
	host, err := ctx.Connect()
	if err != nil {
		return err
	}
	defer host.Close()

	tools, err := host.ListTools(ctx.ctx)
	if err != nil {
		return err
	}
	fmt.Println(table.Render(table.Tools(tools), ui.Width(os.Stdout)))
	return nil
}

func (cmd *VersionCmd) Run(ctx *Globals) error {
	fmt.Println(string(version.JSON(ctx.execName)))
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Preflight reports whether the language model is configured and checks
// the tool host responds. Returns an error when the tool host is down.
func (ctx *Globals) Preflight(term *ui.Term) error {
	if groq.IsCredential(ctx.APIKey()) {
		model := ctx.config.Groq.Model
		if ctx.Model != "" {
			model = ctx.Model
		}
		term.SysPrint("✅ Groq API key found, using %s for smart responses", model)
	} else {
		term.SysPrint("ℹ️  No Groq API key found, using pattern matching")
		term.SysPrint("💡 For smarter responses, get a free key from https://console.groq.com and set GROQ_API_KEY in .env")
	}
	term.SysPrint("✅ Weather provider: %s (no signup needed)", ctx.config.Weather.Endpoint)

	// Probe the tool host root
	url, err := config.ProbeURL(ctx.Endpoint())
	if err != nil {
		return err
	}
	switch status, err := mcpclient.Probe(ctx.ctx, url); status {
	case mcpclient.ProbeOK:
		term.SysPrint("✅ Tool host is running")
	case mcpclient.ProbeDegraded:
		term.SysPrint("⚠️  Tool host responded but may have issues: %v", err)
	default:
		term.Errorf("❌ Tool host is not running at %s, start it first with: weather-server run", url)
		return fmt.Errorf("tool host unreachable: %w", err)
	}
	term.Println("")
	return nil
}

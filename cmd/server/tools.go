package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	// Packages
	config "github.com/mutablelogic/go-assistant/pkg/config"
	ui "github.com/mutablelogic/go-assistant/pkg/ui"
	table "github.com/mutablelogic/go-assistant/pkg/ui/table"
	version "github.com/mutablelogic/go-assistant/pkg/version"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type ToolsCmd struct{}

type CallCmd struct {
	Name string   `arg:"" help:"Tool name"`
	Args []string `arg:"" optional:"" help:"Arguments as key=value pairs"`
}

type EnvCmd struct{}

type VersionCmd struct{}

////////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ToolsCmd) Run(ctx *Globals) error {
	toolkit, err := ctx.Toolkit()
	if err != nil {
		return err
	}
	descriptors, err := toolkit.Descriptors()
	if err != nil {
		return err
	}
	fmt.Println(table.Render(table.Tools(descriptors), ui.Width(os.Stdout)))
	return nil
}

func (cmd *CallCmd) Run(ctx *Globals) error {
	srv, err := ctx.Server()
	if err != nil {
		return err
	}

	// Arguments are JSON values where they parse, and strings otherwise
	args := make(map[string]any, len(cmd.Args))
	for _, arg := range cmd.Args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("invalid argument %q, expected key=value", arg)
		}
		var v any
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			v = value
		}
		args[strings.TrimSpace(key)] = v
	}
	input, err := json.Marshal(args)
	if err != nil {
		return err
	}

	result, err := srv.Call(ctx.ctx, cmd.Name, input)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func (cmd *EnvCmd) Run(ctx *Globals) error {
	usage, err := config.Usage()
	if err != nil {
		return err
	}
	fmt.Println(usage)
	return nil
}

func (cmd *VersionCmd) Run(ctx *Globals) error {
	fmt.Println(string(version.JSON(ctx.execName)))
	return nil
}

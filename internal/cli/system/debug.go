package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/cadence/internal/cli"
	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/logger"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show database and log paths."`
	DumpTask     *DebugDumpTaskCmd     `cmd:"" help:"Dump task data as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings, including special periods, as JSON."`
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{
		"path": ctx.Store.GetConfigPath(),
		"log":  logger.Path(),
	})
}

type DebugDumpTaskCmd struct {
	Task string `arg:"" help:"Task ID or name."`
}

func (cmd *DebugDumpTaskCmd) Run(ctx *cli.Context) error {
	task, err := ctx.TaskByRef(cmd.Task)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	return printJSON(task)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	out := map[string]any{"settings": settings}
	for _, key := range []string{constants.SettingSpecialPeriods, constants.SettingPeriodCategories} {
		raw, ok, err := ctx.Store.GetSetting(key)
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", key, err)
		}
		if ok && raw != "" {
			out[key] = json.RawMessage(raw)
		}
	}
	return printJSON(out)
}

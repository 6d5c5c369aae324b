package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdshortcut/internal/configloader"
	"github.com/yaklabco/mdshortcut/internal/logging"
	"github.com/yaklabco/mdshortcut/pkg/config"
)

// commandContext returns the command's context, never nil.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the layered configuration with cliCfg on top, logs
// loader warnings, and applies the resulting log level to the context logger.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return nil, fmt.Errorf("get debug flag: %w", err)
	}
	cliCfg.Debug = cliCfg.Debug || debug

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	cfg := loadResult.Config
	applyLogLevel(logger, cfg)

	for _, path := range loadResult.LoadedFrom {
		logger.Debug("loaded config", logging.FieldPath, path)
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn("config warning", logging.FieldError, warning)
	}

	return cfg, nil
}

// applyLogLevel sets logger's level from cfg; Debug wins over LogLevel.
func applyLogLevel(logger *log.Logger, cfg *config.Config) {
	level := strings.ToLower(cfg.LogLevel)
	if cfg.Debug {
		level = "debug"
	}
	if level == "warning" {
		level = "warn"
	}
	if parsed, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(parsed)
	}
}

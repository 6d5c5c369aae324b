package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdshortcut/internal/configloader"
	"github.com/yaklabco/mdshortcut/internal/logging"
	"github.com/yaklabco/mdshortcut/pkg/config"
	"github.com/yaklabco/mdshortcut/pkg/highlight"
	"github.com/yaklabco/mdshortcut/pkg/keyboard"
	"github.com/yaklabco/mdshortcut/pkg/shortcut"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new mdshortcut configuration file",
		Long: `Create a new .mdshortcut.yml configuration file in the current directory
with sensible defaults. The file can be customized to switch off shortcut
patterns or key bindings, pick the code-block languages labelled on export,
and set the default replay output format.

Examples:
  mdshortcut init                      Create minimal .mdshortcut.yml
  mdshortcut init --full               Create full config listing every pattern
  mdshortcut init --format json        Create .mdshortcut.json instead
  mdshortcut init --output custom.yml  Write to a custom file path
  mdshortcut init --force              Overwrite, keeping a .bak of the old file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every pattern documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: .mdshortcut.yml or .mdshortcut.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	// Validate format
	if flags.format != "yaml" && flags.format != formatJSON {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrInvalidUsage, flags.format)
	}

	// Determine output path
	outputPath := flags.output
	if outputPath == "" {
		if flags.format == formatJSON {
			outputPath = ".mdshortcut.json"
		} else {
			outputPath = ".mdshortcut.yml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := config.GenerateTemplate(templateOptions(flags))
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	backupPath, err := configloader.WriteConfig(commandContext(cmd), absPath, content, flags.force)
	if err != nil {
		return err
	}
	if backupPath != "" {
		logger.Warn("overwrote existing file", logging.FieldPath, outputPath, logging.FieldOutput, backupPath)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	if flags.full {
		logger.Info("full template lists every pattern, binding and language")
	}

	logger.Info("customize your configuration by editing the file")
	logger.Info("run 'mdshortcut patterns' to see all shortcut patterns")

	return nil
}

func templateOptions(flags *initFlags) config.TemplateOptions {
	patterns := shortcut.AllPatterns()
	infos := make([]config.PatternInfo, 0, len(patterns))
	for _, p := range patterns {
		infos = append(infos, config.PatternInfo{Name: p.Name, Description: p.Description})
	}

	return config.TemplateOptions{
		Full:             flags.full,
		Format:           flags.format,
		Patterns:         infos,
		Bindings:         keyboard.Names(),
		Languages:        highlight.Available(),
		DefaultLanguages: highlight.DefaultLanguages,
	}
}

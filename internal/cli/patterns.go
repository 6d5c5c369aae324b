package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdshortcut/internal/configloader"
	"github.com/yaklabco/mdshortcut/internal/logging"
	"github.com/yaklabco/mdshortcut/internal/ui/pretty"
	"github.com/yaklabco/mdshortcut/pkg/config"
	"github.com/yaklabco/mdshortcut/pkg/shortcut"
)

const formatJSON = "json"

type patternsFlags struct {
	format string
}

// patternInfo represents a pattern in JSON output.
type patternInfo struct {
	Name        string   `json:"name"`
	Expression  string   `json:"expression"`
	Description string   `json:"description"`
	Block       bool     `json:"block"`
	Ignored     bool     `json:"ignored"`
	Aliases     []string `json:"aliases,omitempty"`
}

func newPatternsCommand() *cobra.Command {
	flags := &patternsFlags{}

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List the markdown shortcut patterns",
		Long: `List every shortcut pattern in match order with its expression and what
it rewrites. Patterns switched off by configuration are marked as ignored.
Block patterns set a line format and never fire inside table cells.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPatterns(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func runPatterns(cmd *cobra.Command, flags *patternsFlags) error {
	if flags.format != "text" && flags.format != formatJSON {
		return fmt.Errorf("%w: invalid format %q: must be text or json", ErrInvalidUsage, flags.format)
	}

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")
	ctx := logging.WithLogger(commandContext(cmd), logger)

	cfg, err := loadConfig(ctx, cmd, &config.Config{})
	if err != nil {
		return err
	}

	patterns := shortcut.AllPatterns()
	w := cmd.OutOrStdout()

	if flags.format == formatJSON {
		return outputPatternsJSON(w, patterns, cfg.Shortcuts.Ignore)
	}

	rows := make([]pretty.PatternRow, 0, len(patterns))
	for _, p := range patterns {
		rows = append(rows, pretty.PatternRow{
			Name:        p.Name,
			Expression:  p.Expr.String(),
			Description: p.Description,
			Block:       p.Block(),
			Ignored:     slices.Contains(cfg.Shortcuts.Ignore, p.Name),
		})
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), w))
	table := pretty.NewTableFormatter(styles, pretty.TerminalWidth(w))
	if _, err := io.WriteString(w, table.FormatPatterns(rows)); err != nil {
		return fmt.Errorf("write patterns: %w", err)
	}
	return nil
}

// outputPatternsJSON outputs patterns as a JSON array.
func outputPatternsJSON(w io.Writer, patterns []shortcut.Pattern, ignored []string) error {
	infos := make([]patternInfo, 0, len(patterns))
	for _, p := range patterns {
		infos = append(infos, patternInfo{
			Name:        p.Name,
			Expression:  p.Expr.String(),
			Description: p.Description,
			Block:       p.Block(),
			Ignored:     slices.Contains(ignored, p.Name),
			Aliases:     configloader.PatternAliases(p.Name),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding patterns: %w", err)
	}
	return nil
}

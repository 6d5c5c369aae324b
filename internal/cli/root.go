// Package cli provides the Cobra command structure for mdshortcut.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdshortcut/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdshortcut command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdshortcut",
		Short: "Markdown shortcuts for rich-text editing",
		Long: `mdshortcut rewrites markdown-like text into rich formatting as it is typed.

Typing "## " at the start of a line makes it a heading, "**bold** " makes the
word bold, "---" followed by Enter inserts a horizontal rule, and so on. The
replay command types a keystroke script into an in-memory document with the
shortcut engine attached and writes the result as Markdown, HTML, JSON, or a
styled terminal view.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newReplayCommand())
	rootCmd.AddCommand(newPatternsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(&color)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

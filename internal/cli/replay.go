package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdshortcut/internal/logging"
	"github.com/yaklabco/mdshortcut/internal/ui/pretty"
	"github.com/yaklabco/mdshortcut/pkg/config"
	"github.com/yaklabco/mdshortcut/pkg/delta"
	"github.com/yaklabco/mdshortcut/pkg/export"
	"github.com/yaklabco/mdshortcut/pkg/fsutil"
	"github.com/yaklabco/mdshortcut/pkg/highlight"
	"github.com/yaklabco/mdshortcut/pkg/keyboard"
	"github.com/yaklabco/mdshortcut/pkg/replay"
	"github.com/yaklabco/mdshortcut/pkg/shortcut"
	"github.com/yaklabco/mdshortcut/pkg/textdiff"
)

// annotationScriptTokens holds the token table shown in replay's help.
const annotationScriptTokens = "scriptTokens"

type replayFlags struct {
	text      string
	format    string
	output    string
	ignore    []string
	disable   []string
	languages []string
	summary   bool
	diff      bool
}

func newReplayCommand() *cobra.Command {
	flags := &replayFlags{}

	cmd := &cobra.Command{
		Use:   "replay [file]",
		Short: "Type a keystroke script into a document with shortcuts enabled",
		Long:  replayLongDescription,
		Args:  cobra.MaximumNArgs(1),
		Annotations: map[string]string{
			annotationScriptTokens: scriptTokenHelp(),
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, args, flags)
		},
	}

	addReplayFlags(cmd, flags)

	return cmd
}

const replayLongDescription = `Type a keystroke script into an empty document with the markdown
shortcut engine and key bindings attached, then write the document out.

The script is read from the file argument, from --text, or from stdin when
the file is "-" or omitted. Each character is typed as a key press and a
newline presses Enter; named keys are written as <token>.

Examples:
  mdshortcut replay notes.keys                   # Replay a script file
  mdshortcut replay --text $'## Title\nbody'     # Replay inline text
  echo '**bold** ' | mdshortcut replay           # Replay from stdin
  mdshortcut replay notes.keys --format html     # Write HTML
  mdshortcut replay notes.keys --format text     # Show the styled document view
  mdshortcut replay notes.keys --ignore hr -o out.md
  mdshortcut replay notes.keys -o out.md --diff  # Preview changes to out.md`

func addReplayFlags(cmd *cobra.Command, flags *replayFlags) {
	cmd.Flags().StringVarP(&flags.text, "text", "t", "",
		"script to type instead of reading a file")
	cmd.Flags().StringVarP(&flags.format, "format", "f", string(config.FormatMarkdown),
		"output format: "+formatList())
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"write the document to this file instead of stdout")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil,
		"shortcut patterns to switch off (repeatable)")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil,
		"key bindings to switch off (repeatable)")
	cmd.Flags().StringSliceVar(&flags.languages, "languages", nil,
		"code-block languages to label on export")
	cmd.Flags().BoolVar(&flags.summary, "summary", false,
		"print key and shortcut counts to stderr")
	cmd.Flags().BoolVar(&flags.diff, "diff", false,
		"show how --output would change instead of writing it")
}

func formatList() string {
	names := make([]string, 0, len(config.Formats()))
	for _, f := range config.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// scriptTokenHelp lists every script token with the key it presses.
func scriptTokenHelp() string {
	var b strings.Builder
	for _, name := range replay.Tokens() {
		keys, err := replay.ParseScript("<" + name + ">")
		if err != nil || len(keys) != 1 {
			continue
		}
		fmt.Fprintf(&b, "<%s>\t%s\n", name, keys[0])
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func runReplay(cmd *cobra.Command, args []string, flags *replayFlags) error {
	if flags.text != "" && len(args) > 0 {
		return fmt.Errorf("%w: pass a script file or --text, not both", ErrInvalidUsage)
	}

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")
	ctx := logging.WithLogger(commandContext(cmd), logger)

	// Only set values that were explicitly provided via CLI flags.
	cliCfg := &config.Config{Output: flags.output}
	if cmd.Flags().Changed("format") {
		cliCfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("ignore") {
		cliCfg.Shortcuts.Ignore = flags.ignore
	}
	if cmd.Flags().Changed("disable") {
		cliCfg.Keyboard.Disable = flags.disable
	}
	if cmd.Flags().Changed("languages") {
		cliCfg.Highlight.Languages = flags.languages
	}

	cfg, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}
	if flags.diff && (cfg.Output == "" || cfg.Output == fsutil.StdioPath) {
		return fmt.Errorf("%w: --diff needs an --output file to compare against", ErrInvalidUsage)
	}

	script, err := readScript(ctx, cmd, args, flags)
	if err != nil {
		return err
	}

	out := &replayOutput{
		cmd:      cmd,
		cfg:      cfg,
		registry: languageRegistry(cfg, logger),
		logger:   logger,
		diff:     flags.diff,
	}

	var typist *replay.Typist
	saves := 0
	typist = replay.New(replay.Options{
		Shortcuts: shortcut.Options{Ignore: cfg.Shortcuts.Ignore},
		Keyboard: keyboard.Options{
			Disable: cfg.Keyboard.Disable,
			OnSave: func() error {
				saves++
				return out.checkpoint(ctx, typist.Document().Contents())
			},
		},
		Logger: logger,
	})
	defer typist.Close()

	logger.Debug("replaying script",
		logging.FieldInput, scriptSource(args, flags),
		logging.FieldFormat, cfg.Format,
	)

	if err := typist.Type(script); err != nil {
		return fmt.Errorf("%w: %w", ErrReplayFailed, err)
	}

	if err := out.write(ctx, typist.Document().Contents()); err != nil {
		return err
	}

	stats := typist.Engine().Stats()
	logger.Debug("replay finished",
		logging.FieldKeys, typist.Keys(),
		logging.FieldLines, len(typist.Document().Lines()),
		logging.FieldDocument, typist.Document().Length(),
		logging.FieldEdits, stats.Total(),
		logging.FieldSaves, saves,
	)

	if flags.summary {
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.ErrOrStderr()))
		fmt.Fprint(cmd.ErrOrStderr(), styles.FormatReplaySummary(pretty.ReplaySummary{
			Keys:     typist.Keys(),
			Lines:    len(typist.Document().Lines()),
			Applied:  stats.Applied,
			Declined: stats.Declined,
		}))
	}

	return nil
}

// readScript returns the script from --text, the file argument, or stdin.
// Reading an interactive terminal is refused so the command never waits on
// a keyboard that nobody is typing into.
func readScript(ctx context.Context, cmd *cobra.Command, args []string, flags *replayFlags) (string, error) {
	if flags.text != "" {
		return flags.text, nil
	}

	path := fsutil.StdioPath
	if len(args) == 1 {
		path = args[0]
	}

	stdin := cmd.InOrStdin()
	if path == fsutil.StdioPath {
		if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return "", fmt.Errorf("%w: no script given; pass a file, --text, or pipe one on stdin", ErrInvalidUsage)
		}
	}

	content, err := fsutil.ReadInput(ctx, path, stdin)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(content), nil
}

func scriptSource(args []string, flags *replayFlags) string {
	switch {
	case flags.text != "":
		return "--text"
	case len(args) == 1:
		return args[0]
	default:
		return fsutil.StdioPath
	}
}

// languageRegistry builds the highlight registry from config. A nil language
// list keeps the defaults; an empty one labels nothing.
func languageRegistry(cfg *config.Config, logger *log.Logger) *highlight.Registry {
	if cfg.Highlight.Languages == nil {
		return highlight.NewRegistry()
	}
	registry, err := highlight.NewRegistryWith(cfg.Highlight.Languages...)
	if err != nil {
		// Validation already warned; the known languages are still enabled.
		logger.Debug("skipped languages", logging.FieldLanguages, registry.Languages(), logging.FieldError, err)
	}
	return registry
}

func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}

// replayOutput renders the document in the configured format and writes it
// to the output file or the command's stdout.
type replayOutput struct {
	cmd      *cobra.Command
	cfg      *config.Config
	registry *highlight.Registry
	logger   *log.Logger

	// diff prints the change to the output file instead of writing it.
	diff bool
}

func (o *replayOutput) toStdout() bool {
	return o.cfg.Output == "" || o.cfg.Output == fsutil.StdioPath
}

func (o *replayOutput) render(contents *delta.Delta) (string, error) {
	opts := export.Options{Languages: o.registry}

	switch o.cfg.Format {
	case config.FormatHTML:
		return export.HTML(contents, opts)
	case config.FormatJSON:
		data, err := export.JSON(contents)
		return string(data), err
	case config.FormatText:
		var w io.Writer = io.Discard
		if o.toStdout() {
			w = o.cmd.OutOrStdout()
		}
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(o.cmd), w))
		return pretty.NewDocumentView(styles, pretty.TerminalWidth(w)).Render(contents)
	default:
		return export.Markdown(contents, opts)
	}
}

func (o *replayOutput) write(ctx context.Context, contents *delta.Delta) error {
	rendered, err := o.render(contents)
	if err != nil {
		return fmt.Errorf("render %s: %w", o.cfg.Format, err)
	}

	if o.toStdout() {
		if _, err := io.WriteString(o.cmd.OutOrStdout(), rendered); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	if o.diff {
		return o.showDiff([]byte(rendered))
	}

	changed, err := fsutil.WriteIfChanged(ctx, o.cfg.Output, []byte(rendered), fsutil.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if changed {
		o.logger.Info("wrote document", logging.FieldOutput, o.cfg.Output, logging.FieldFormat, o.cfg.Format)
	} else {
		o.logger.Debug("document unchanged", logging.FieldOutput, o.cfg.Output)
	}
	return nil
}

// checkpoint handles the save binding: the document so far is written to the
// output file. Without an output file there is nowhere to save to.
func (o *replayOutput) checkpoint(ctx context.Context, contents *delta.Delta) error {
	if o.toStdout() {
		o.logger.Info("save requested with no output file; ignoring")
		return nil
	}
	if o.diff {
		o.logger.Debug("save skipped while previewing a diff", logging.FieldOutput, o.cfg.Output)
		return nil
	}
	if err := o.write(ctx, contents); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// showDiff prints the unified diff from the current output file to rendered.
// A missing output file diffs against nothing.
func (o *replayOutput) showDiff(rendered []byte) error {
	current, err := os.ReadFile(o.cfg.Output)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read output for diff: %w", err)
	}

	diff := textdiff.Compute(o.cfg.Output, current, rendered)
	if diff == nil {
		o.logger.Info("no changes", logging.FieldOutput, o.cfg.Output)
		return nil
	}

	w := o.cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(o.cmd), w))
	if _, err := io.WriteString(w, styles.FormatDiff(diff)); err != nil {
		return fmt.Errorf("write diff: %w", err)
	}
	return nil
}

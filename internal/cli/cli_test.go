package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/yaklabco/mdshortcut/internal/cli"
	"github.com/yaklabco/mdshortcut/internal/configloader"
	"github.com/yaklabco/mdshortcut/pkg/replay"
)

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}

	cmd := cli.NewRootCommand(info)

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "mdshortcut" {
		t.Errorf("expected Use to be 'mdshortcut', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})

	expectedSubcommands := []string{"replay", "patterns", "init", "version"}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestReplayCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})
	replayCmd, _, err := cmd.Find([]string{"replay"})
	if err != nil {
		t.Fatalf("replay command not found: %v", err)
	}

	expectedFlags := []string{
		"text",
		"format",
		"output",
		"ignore",
		"disable",
		"languages",
		"summary",
		"diff",
	}

	for _, flagName := range expectedFlags {
		flag := replayCmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected flag %q to exist on replay command", flagName)
		}
	}

	if err := replayCmd.Args(replayCmd, []string{"a.keys", "b.keys"}); err == nil {
		t.Error("replay should accept at most one script file")
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})

	expectedFlags := []string{"debug", "config", "color"}

	for _, flagName := range expectedFlags {
		flag := cmd.PersistentFlags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	}

	cmd := cli.NewRootCommand(info)
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	for _, want := range []string{"mdshortcut", "1.2.3", "abc123", "2024-01-01"} {
		if !bytes.Contains(out.Bytes(), []byte(want)) {
			t.Errorf("version output %q missing %q", out.String(), want)
		}
	}
}

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"replay failure", fmt.Errorf("%w: boom", cli.ErrReplayFailed), cli.ExitFailure},
		{"bad token", fmt.Errorf("%w: %w", cli.ErrReplayFailed, replay.ErrBadToken), cli.ExitInvalidUsage},
		{"usage", fmt.Errorf("%w: both", cli.ErrInvalidUsage), cli.ExitInvalidUsage},
		{"config", errors.Join(errors.New("load"), &configloader.ValidationError{Message: "bad"}), cli.ExitConfigError},
		{"io", &os.PathError{Op: "open", Path: "x", Err: os.ErrNotExist}, cli.ExitIOError},
		{"other", errors.New("other"), cli.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cli.ExitCodeFromError(tt.err); got != tt.want {
				t.Errorf("ExitCodeFromError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "root",
			args: []string{"--help", "--color", "never"},
			want: []string{
				"Usage:",
				"Available Commands:",
				"replay",
				"Flags:",
				"--config string   path to config file",
				`Use "mdshortcut [command] --help"`,
			},
		},
		{
			name: "replay",
			args: []string{"replay", "--help", "--color", "never"},
			want: []string{
				"Script Tokens:",
				"-f, --format string   ",
				"Global Flags:",
				"--debug   enable debug logging",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})
			cmd.SetArgs(tt.args)

			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)

			if err := cmd.Execute(); err != nil {
				t.Fatalf("help failed: %v", err)
			}

			for _, want := range tt.want {
				if !bytes.Contains(out.Bytes(), []byte(want)) {
					t.Errorf("help output missing %q:\n%s", want, out.String())
				}
			}
		})
	}
}

package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdshortcut/internal/cli"
	"github.com/yaklabco/mdshortcut/internal/configloader"
	"github.com/yaklabco/mdshortcut/pkg/replay"
)

// testScript types a heading and a paragraph with bold text.
const testScript = "# Title\nsome **bold** text"

// emptyConfig writes an empty config file so each test resolves the same
// settings regardless of project config above the test directory.
func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".mdshortcut.yml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0o644))
	return path
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIntegration_ReplayFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		format       string
		wantContains []string
	}{
		{
			name:         "markdown",
			format:       "markdown",
			wantContains: []string{"# Title\n\nsome **bold** text\n"},
		},
		{
			name:         "html",
			format:       "html",
			wantContains: []string{"<h1>Title</h1>", "<strong>bold</strong>"},
		},
		{
			name:         "json",
			format:       "json",
			wantContains: []string{`"insert": "Title"`, `"header": 1`, `"bold": true`},
		},
		{
			name:         "text",
			format:       "text",
			wantContains: []string{"  1 h1       | Title", "  2          | some bold text"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := execute(t, "",
				"replay",
				"--config", emptyConfig(t),
				"--color", "never",
				"--format", tt.format,
				"--text", testScript,
			)
			require.NoError(t, err)

			for _, want := range tt.wantContains {
				assert.Contains(t, stdout, want, "format=%s", tt.format)
			}
		})
	}
}

func TestIntegration_ReplayJSONIsValid(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "replay", "--config", emptyConfig(t), "--format", "json", "--text", testScript)
	require.NoError(t, err)

	var ops map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &ops))
	assert.Contains(t, ops, "ops")
}

func TestIntegration_ReplayFromFileAndStdin(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	script := filepath.Join(dir, "notes.keys")
	require.NoError(t, os.WriteFile(script, []byte("*x* y<bs>z\r\n"), 0o644))

	fromFile, _, err := execute(t, "", "replay", "--config", emptyConfig(t), script)
	require.NoError(t, err)
	assert.Equal(t, "_x_ z\n", fromFile)

	fromStdin, _, err := execute(t, "*x* y<bs>z\n", "replay", "--config", emptyConfig(t))
	require.NoError(t, err)
	assert.Equal(t, fromFile, fromStdin)

	dash, _, err := execute(t, "*x* y<bs>z\n", "replay", "--config", emptyConfig(t), "-")
	require.NoError(t, err)
	assert.Equal(t, fromFile, dash)
}

func TestIntegration_ReplayIgnore(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "",
		"replay", "--config", emptyConfig(t), "--ignore", "header", "--text", "# x")
	require.NoError(t, err)
	assert.Equal(t, `\# x`+"\n", stdout)
}

func TestIntegration_ReplayConfigAlias(t *testing.T) {
	t.Parallel()

	cfgFile := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("shortcuts:\n  ignore:\n    - heading\n    - Bogus\n"), 0o644))

	stdout, stderr, err := execute(t, "", "replay", "--config", cfgFile, "--text", "# x")
	require.NoError(t, err)
	assert.Equal(t, `\# x`+"\n", stdout, "alias resolves to the header pattern")
	assert.Contains(t, stderr, "unknown pattern")
	assert.Contains(t, stderr, "Bogus")
}

func TestIntegration_ReplayInvalidConfig(t *testing.T) {
	t.Parallel()

	cfgFile := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("format: pdf\n"), 0o644))

	_, _, err := execute(t, "", "replay", "--config", cfgFile, "--text", "x")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))

	var validationErr *configloader.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestIntegration_ReplayOutputFile(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "out.md")

	stdout, stderr, err := execute(t, "",
		"replay", "--config", emptyConfig(t), "--output", out, "--text", testScript)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr, "log level warn hides the write notice")

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nsome **bold** text\n", string(content))
}

func TestIntegration_ReplaySaveCheckpoint(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "out.md")

	// Scripts are parsed before the first key is pressed, so a bad token
	// anywhere means the save binding never runs.
	_, _, err := execute(t, "",
		"replay", "--config", emptyConfig(t), "--output", out, "--text", "**hi** <c-s>more<nope>")
	require.Error(t, err)
	require.ErrorIs(t, err, replay.ErrBadToken)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "bad scripts are rejected before typing starts")

	_, _, err = execute(t, "",
		"replay", "--config", emptyConfig(t), "--output", out, "--text", "**hi** <c-s>more")
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "**hi** more\n", string(content))
}

func TestIntegration_ReplaySaveFailure(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "missing", "out.md")

	_, _, err := execute(t, "",
		"replay", "--config", emptyConfig(t), "--output", out, "--text", "**hi** <c-s>more")
	require.Error(t, err)
	require.ErrorIs(t, err, cli.ErrReplayFailed)
	assert.Contains(t, err.Error(), "save: write output:")
	assert.NotContains(t, err.Error(), "save\n")
	assert.Equal(t, cli.ExitFailure, cli.ExitCodeFromError(err))
}

func TestIntegration_ReplayDiff(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, os.WriteFile(out, []byte("# Title\n\nsome text\n"), 0o644))

	stdout, _, err := execute(t, "",
		"replay", "--config", emptyConfig(t), "--color", "never",
		"--output", out, "--diff", "--text", testScript+"<c-s>")
	require.NoError(t, err)
	assert.Contains(t, stdout, "-some text\n+some **bold** text\n")
	assert.Contains(t, stdout, "+1 -1\n")

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nsome text\n", string(content), "--diff leaves the file alone")

	_, _, err = execute(t, "", "replay", "--config", emptyConfig(t), "--diff", "--text", "x")
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
}

func TestIntegration_ReplaySummary(t *testing.T) {
	t.Parallel()

	_, stderr, err := execute(t, "",
		"replay", "--config", emptyConfig(t), "--color", "never", "--summary", "--text", testScript)
	require.NoError(t, err)
	assert.Contains(t, stderr, "2 lines; 2 shortcuts (bold 1, header 1)")
}

func TestIntegration_ReplayErrors(t *testing.T) {
	t.Parallel()

	script := filepath.Join(t.TempDir(), "a.keys")
	require.NoError(t, os.WriteFile(script, []byte("x"), 0o644))

	_, _, err := execute(t, "", "replay", "--config", emptyConfig(t), "--text", "x", script)
	require.ErrorIs(t, err, cli.ErrInvalidUsage)

	_, _, err = execute(t, "", "replay", "--config", emptyConfig(t), "--text", "a<nope>")
	require.ErrorIs(t, err, cli.ErrReplayFailed)
	require.ErrorIs(t, err, replay.ErrBadToken)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))

	_, _, err = execute(t, "", "replay", "--config", emptyConfig(t), filepath.Join(t.TempDir(), "missing.keys"))
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromError(err))
}

func TestIntegration_ReplayHelpListsTokens(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "replay", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Script Tokens:")
	assert.Contains(t, stdout, "<bs>")
	assert.Contains(t, stdout, "ctrl+s")
}

func TestIntegration_PatternsText(t *testing.T) {
	t.Parallel()

	cfgFile := filepath.Join(t.TempDir(), "cfg.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("shortcuts:\n  ignore: [hr]\n"), 0o644))

	stdout, _, err := execute(t, "", "patterns", "--config", cfgFile, "--color", "never")
	require.NoError(t, err)

	for _, want := range []string{"NAME", "EXPRESSION", "header", "bolditalic", "link", "1 ignored"} {
		assert.Contains(t, stdout, want)
	}
}

func TestIntegration_PatternsJSON(t *testing.T) {
	t.Parallel()

	cfgFile := filepath.Join(t.TempDir(), "cfg.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("shortcuts:\n  ignore: [thematic-break]\n"), 0o644))

	stdout, _, err := execute(t, "", "patterns", "--config", cfgFile, "--format", "json")
	require.NoError(t, err)

	var patterns []struct {
		Name    string   `json:"name"`
		Block   bool     `json:"block"`
		Ignored bool     `json:"ignored"`
		Aliases []string `json:"aliases"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &patterns))
	require.NotEmpty(t, patterns)

	assert.Equal(t, "header", patterns[0].Name, "patterns are listed in match order")
	assert.True(t, patterns[0].Block)
	assert.Contains(t, patterns[0].Aliases, "heading")

	for _, p := range patterns {
		assert.Equal(t, p.Name == "hr", p.Ignored, "pattern %s", p.Name)
	}
}

func TestIntegration_PatternsInvalidFormat(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "patterns", "--format", "xml")
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
}

func TestIntegration_InitRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		file string
	}{
		{"minimal yaml", nil, "cfg.yml"},
		{"full yaml", []string{"--full"}, "cfg.yml"},
		{"json", []string{"--format", "json"}, "cfg.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tt.file)
			args := append([]string{"init", "--output", path}, tt.args...)

			_, stderr, err := execute(t, "", args...)
			require.NoError(t, err)
			assert.Contains(t, stderr, "created configuration file")

			// The generated file must load cleanly and behave like the defaults.
			stdout, stderr, err := execute(t, "", "replay", "--config", path, "--text", testScript)
			require.NoError(t, err)
			assert.NotContains(t, stderr, "config warning")
			assert.Equal(t, "# Title\n\nsome **bold** text\n", stdout)
		})
	}
}

func TestIntegration_InitForce(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".mdshortcut.yml")
	require.NoError(t, os.WriteFile(path, []byte("format: html\n"), 0o644))

	_, _, err := execute(t, "", "init", "--output", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, stderr, err := execute(t, "", "init", "--output", path, "--force")
	require.NoError(t, err)
	assert.Contains(t, stderr, "overwrote existing file")

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "format: html\n", string(backup))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# mdshortcut configuration")
}

func TestIntegration_InitInvalidFormat(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "init", "--format", "toml", "--output", filepath.Join(t.TempDir(), "x"))
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
}

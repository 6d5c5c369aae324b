// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, and validation.
package configloader

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/yaklabco/mdshortcut/pkg/config"
	"github.com/yaklabco/mdshortcut/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (MDSHORTCUT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.mdshortcut.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/mdshortcut/config.yaml)
//  6. System config (/etc/mdshortcut/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name string
		path string
		skip bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}
	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		layerCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = merge(cfg, layerCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	// Validate before normalizing so warnings quote what the user wrote.
	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	cfg.Shortcuts.Ignore = normalizeNames(cfg.Shortcuts.Ignore, ResolvePattern, "pattern", result)
	cfg.Keyboard.Disable = normalizeNames(cfg.Keyboard.Disable, ResolveBinding, "binding", result)

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// WriteConfig writes content to path atomically. An existing file is only
// replaced when force is set, and is first backed up; the backup path is
// returned ("" when nothing was replaced).
func WriteConfig(ctx context.Context, path string, content []byte, force bool) (string, error) {
	if fileExists(path) && !force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	backupPath, err := fsutil.Backup(ctx, path)
	if err != nil {
		return "", err
	}

	if err := fsutil.WriteAtomic(ctx, path, content, configFilePermissions); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return backupPath, nil
}

// normalizeNames rewrites aliases to canonical names and drops repeats.
// Unknown names are kept as-is; validation has already warned about them.
func normalizeNames(
	names []string,
	resolve func(string) (string, bool),
	kind string,
	result *LoadResult,
) []string {
	if names == nil {
		return nil
	}

	normalized := make([]string, 0, len(names))
	seen := make(map[string]string, len(names))

	for _, name := range names {
		canonical, found := resolve(name)
		if !found {
			normalized = append(normalized, name)
			continue
		}

		if original, exists := seen[canonical]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate %s: %q and %q both refer to %s", kind, original, name, canonical))
			continue
		}

		seen[canonical] = name
		normalized = append(normalized, canonical)
	}

	return slices.Clip(normalized)
}

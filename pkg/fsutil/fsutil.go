// Package fsutil reads replay inputs and writes outputs and generated config
// files without leaving partial files behind.
package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFileMode is the default permission mode for newly created files.
const DefaultFileMode os.FileMode = 0o644

// BackupSuffix is appended to a file's path when it is backed up before
// being replaced.
const BackupSuffix = ".bak"

// StdioPath names standard input or output in place of a file path.
const StdioPath = "-"

// ReadInput reads path, or all of stdin when path is StdioPath.
func ReadInput(ctx context.Context, path string, stdin io.Reader) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("read input: %w", ctx.Err())
	default:
	}

	if path == StdioPath {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return content, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return content, nil
}

// WriteAtomic writes content to path through a temp file in the same
// directory and a rename, so readers see either the old or the new file.
// If mode is 0, DefaultFileMode is used. On error the temp file is removed
// and the original file is untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("write atomic: %w", ctx.Err())
	default:
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// WriteIfChanged writes content to path atomically only if it differs from
// what is there. Returns true if the file was written.
func WriteIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	existing, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return false, fmt.Errorf("read existing: %w", err)
	case bytes.Equal(existing, content):
		return false, nil
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}

// Backup copies path to path+BackupSuffix, replacing any older backup, and
// returns the backup path. A missing path is not an error: it returns "".
func Backup(ctx context.Context, path string) (string, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read original for backup: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat original for backup: %w", err)
	}

	backupPath := path + BackupSuffix
	if err := WriteAtomic(ctx, backupPath, content, stat.Mode().Perm()); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return backupPath, nil
}

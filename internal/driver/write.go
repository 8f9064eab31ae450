package driver

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WriteHeader atomically replaces path with content. It reports false when
// the file already held exactly these bytes and was left untouched.
func WriteHeader(path, content string) (written bool, err error) {
	// #nosec G304 -- path is derived from the configured output directory
	old, err := os.ReadFile(path)
	if err == nil && bytes.Equal(old, []byte(content)) {
		return false, nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, ".stub2hdr-*")
	if err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()
	if _, err = f.WriteString(content); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	if err = f.Chmod(0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

// CheckHeader reports whether path exists and holds exactly content.
func CheckHeader(path, content string) (bool, error) {
	// #nosec G304 -- path is derived from the configured output directory
	old, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	return bytes.Equal(old, []byte(content)), nil
}

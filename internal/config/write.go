package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const header = "# stub2hdr configuration.\n# Undefined keys keep their defaults; command-line flags override this file.\n\n"

// Encode renders cfg as TOML with a short comment header.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(header)
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// ErrExists is returned by WriteDefault when the manifest is already there.
var ErrExists = errors.New(FileName + " already exists")

// WriteDefault creates dir/stub2hdr.toml with default settings.
// An existing file is kept unless force is set.
func WriteDefault(dir string, force bool) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return path, ErrExists
	}
	data, err := Encode(Default())
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

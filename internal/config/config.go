// Package config loads stub2hdr.toml, the per-project generator settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"

	"stub2hdr/internal/diag"
	"stub2hdr/internal/emit"
	"stub2hdr/internal/normalize"
)

// FileName is the manifest looked up from the working directory upwards.
const FileName = "stub2hdr.toml"

type Config struct {
	Header HeaderConfig `toml:"header"`
	Parse  ParseConfig  `toml:"parse"`
	Files  FilesConfig  `toml:"files"`
	Run    RunConfig    `toml:"run"`
}

type HeaderConfig struct {
	GuardPrefix  string   `toml:"guard_prefix"`
	GuardSuffix  string   `toml:"guard_suffix"`
	ExternC      bool     `toml:"extern_c"`
	Banner       string   `toml:"banner"`
	Includes     []string `toml:"includes"`
	Directives   bool     `toml:"directives"`
	PassIncludes bool     `toml:"pass_includes"`
	ParenSpacing string   `toml:"paren_spacing"`
}

type ParseConfig struct {
	DuplicatePolicy string   `toml:"duplicate_policy"`
	KeepStatic      bool     `toml:"keep_static"`
	AttributeMacros []string `toml:"attribute_macros"`
}

type FilesConfig struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
	OutDir  string   `toml:"out_dir"`
}

type RunConfig struct {
	Jobs  int  `toml:"jobs"`
	Cache bool `toml:"cache"`
}

// Default returns the settings used when no manifest exists.
func Default() Config {
	return Config{
		Header: HeaderConfig{
			GuardSuffix:  emit.DefaultGuardSuffix,
			Banner:       "generated by stub2hdr; do not edit",
			Includes:     []string{},
			Directives:   true,
			ParenSpacing: emit.SpacingPreserve.String(),
		},
		Parse: ParseConfig{
			DuplicatePolicy: normalize.KeepFirst.String(),
			AttributeMacros: []string{},
		},
		Files: FilesConfig{
			Include: []string{"**/*.c"},
			Exclude: []string{},
			OutDir:  "include",
		},
		Run: RunConfig{Cache: true},
	}
}

// Manifest is a loaded configuration file.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Error reports an invalid configuration value.
type Error struct {
	Path string
	Key  string
	Msg  string
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Key, e.Msg)
}

// Code returns the diagnostic code for configuration errors.
func (e *Error) Code() diag.Code { return diag.ProjInvalidConfig }

// Find walks from startDir up to the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadNearest finds and loads the manifest closest to startDir.
// Without a manifest it returns the defaults and false.
func LoadNearest(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return &Manifest{Root: startDir, Config: Default()}, false, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// Load reads a manifest. Keys that are not set keep their defaults.
func Load(path string) (*Manifest, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, &Error{Path: path, Msg: "unknown keys: " + strings.Join(keys, ", ")}
	}
	if meta.IsDefined("files", "include") && len(cfg.Files.Include) == 0 {
		return nil, &Error{Path: path, Key: "[files].include", Msg: "must list at least one pattern"}
	}
	if err := cfg.Validate(); err != nil {
		var cerr *Error
		if errors.As(err, &cerr) {
			cerr.Path = path
		}
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

// Validate checks enum values, numeric ranges and glob syntax.
func (c *Config) Validate() error {
	if _, err := normalize.ParsePolicy(c.Parse.DuplicatePolicy); err != nil {
		return &Error{Key: "[parse].duplicate_policy", Msg: err.Error()}
	}
	if _, err := emit.ParseParenSpacing(c.Header.ParenSpacing); err != nil {
		return &Error{Key: "[header].paren_spacing", Msg: err.Error()}
	}
	if c.Run.Jobs < 0 {
		return &Error{Key: "[run].jobs", Msg: fmt.Sprintf("must be >= 0, got %d", c.Run.Jobs)}
	}
	for _, p := range c.Files.Include {
		if !doublestar.ValidatePattern(p) {
			return &Error{Key: "[files].include", Msg: fmt.Sprintf("invalid pattern %q", p)}
		}
	}
	for _, p := range c.Files.Exclude {
		if !doublestar.ValidatePattern(p) {
			return &Error{Key: "[files].exclude", Msg: fmt.Sprintf("invalid pattern %q", p)}
		}
	}
	return nil
}

// Policy returns the parsed duplicate policy; Validate must have passed.
func (c *Config) Policy() normalize.Policy {
	p, _ := normalize.ParsePolicy(c.Parse.DuplicatePolicy)
	return p
}

// Spacing returns the parsed paren spacing; Validate must have passed.
func (c *Config) Spacing() emit.ParenSpacing {
	s, _ := emit.ParseParenSpacing(c.Header.ParenSpacing)
	return s
}

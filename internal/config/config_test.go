package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"stub2hdr/internal/diag"
	"stub2hdr/internal/emit"
	"stub2hdr/internal/normalize"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, FileName, `
[header]
extern_c = true
guard_prefix = "LIBC_"

[parse]
duplicate_policy = "last"
attribute_macros = ["__THROW_ATTR"]
`)
	m, err := Load(path)
	require.NoError(t, err)

	cfg := m.Config
	require.True(t, cfg.Header.ExternC)
	require.Equal(t, "LIBC_", cfg.Header.GuardPrefix)
	require.Equal(t, "_H", cfg.Header.GuardSuffix)
	require.True(t, cfg.Header.Directives)
	require.Equal(t, []string{"**/*.c"}, cfg.Files.Include)
	require.Equal(t, "include", cfg.Files.OutDir)
	require.True(t, cfg.Run.Cache)
	require.Equal(t, normalize.KeepLast, cfg.Policy())
	require.Equal(t, emit.SpacingPreserve, cfg.Spacing())
	require.Equal(t, []string{"__THROW_ATTR"}, cfg.Parse.AttributeMacros)
	require.Equal(t, dir, m.Root)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
	}{
		{"policy", "[parse]\nduplicate_policy = \"middle\"\n", "[parse].duplicate_policy"},
		{"spacing", "[header]\nparen_spacing = \"sometimes\"\n", "[header].paren_spacing"},
		{"jobs", "[run]\njobs = -2\n", "[run].jobs"},
		{"glob", "[files]\ninclude = [\"src/[*.c\"]\n", "[files].include"},
		{"empty include", "[files]\ninclude = []\n", "[files].include"},
		{"unknown key", "[header]\nguard = \"X\"\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), FileName, tt.content)
			_, err := Load(path)
			var cerr *Error
			require.True(t, errors.As(err, &cerr), "got %v", err)
			require.Equal(t, tt.key, cerr.Key)
			require.Equal(t, path, cerr.Path)
			require.Equal(t, diag.ProjInvalidConfig, cerr.Code())
		})
	}
}

func TestLoad_BadSyntax(t *testing.T) {
	path := writeFile(t, t.TempDir(), FileName, "[header\n")
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse TOML")
}

func TestFind_WalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, FileName, "")
	deep := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(deep, 0o755))

	got, ok, err := Find(deep)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)

	m, found, err := LoadNearest(deep)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, Default(), m.Config)
}

func TestWriteDefault_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteDefault(dir, false)
	require.NoError(t, err)

	m, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Default(), m.Config)

	_, err = WriteDefault(dir, false)
	require.ErrorIs(t, err, ErrExists)
	_, err = WriteDefault(dir, true)
	require.NoError(t, err)
}

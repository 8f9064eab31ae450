package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stub2hdr/internal/config"
	"stub2hdr/internal/driver"
)

func newGenFlagsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "gen"}
	cmd.Flags().StringP("out-dir", "o", "", "")
	cmd.Flags().Int("jobs", 0, "")
	cmd.Flags().Bool("extern-c", false, "")
	cmd.Flags().String("guard-prefix", "", "")
	cmd.Flags().String("policy", "", "")
	cmd.Flags().Bool("no-cache", false, "")
	cmd.Flags().StringSlice("include", nil, "")
	cmd.Flags().StringSlice("exclude", nil, "")
	return cmd
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := readUIMode("sometimes")
	require.Error(t, err)
	assert.False(t, shouldUseTUI(uiModeOff))
	assert.True(t, shouldUseTUI(uiModeOn))
}

func TestApplyGenFlags(t *testing.T) {
	cmd := newGenFlagsCmd()
	require.NoError(t, cmd.Flags().Parse([]string{
		"--extern-c", "--guard-prefix", "LIB_", "--policy", "last",
		"--include", "src/**/*.c", "--exclude", "src/gen/**", "--jobs", "3", "--no-cache",
	}))

	cfg := config.Default()
	require.NoError(t, applyGenFlags(cmd, &cfg))
	assert.True(t, cfg.Header.ExternC)
	assert.Equal(t, "LIB_", cfg.Header.GuardPrefix)
	assert.Equal(t, "last", cfg.Parse.DuplicatePolicy)
	assert.Equal(t, []string{"src/**/*.c"}, cfg.Files.Include)
	assert.Equal(t, []string{"src/gen/**"}, cfg.Files.Exclude)
	assert.Equal(t, 3, cfg.Run.Jobs)
	assert.False(t, cfg.Run.Cache)
}

func TestApplyGenFlagsKeepsConfigWhenUnset(t *testing.T) {
	cmd := newGenFlagsCmd()
	require.NoError(t, cmd.Flags().Parse(nil))

	cfg := config.Default()
	cfg.Header.GuardPrefix = "CFG_"
	require.NoError(t, applyGenFlags(cmd, &cfg))
	assert.Equal(t, "CFG_", cfg.Header.GuardPrefix)
	assert.Equal(t, config.Default().Run.Cache, cfg.Run.Cache)
}

func TestApplyGenFlagsRejectsBadPolicy(t *testing.T) {
	cmd := newGenFlagsCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--policy", "middle"}))

	cfg := config.Default()
	err := applyGenFlags(cmd, &cfg)
	var cerr *config.Error
	require.True(t, errors.As(err, &cerr), "got %v", err)
}

func TestResolveOutDir(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	cfg.Files.OutDir = "include"

	cmd := newGenFlagsCmd()
	require.NoError(t, cmd.Flags().Parse(nil))
	assert.Equal(t, filepath.Join(root, "include"), resolveOutDir(cmd, cfg, root))

	cmd = newGenFlagsCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"-o", "out"}))
	assert.Equal(t, "out", resolveOutDir(cmd, cfg, root))
}

func TestPrintHeadersAndSummary(t *testing.T) {
	batch := &driver.Batch{Results: []driver.Result{
		{OutputID: "a.h", Header: "/* a */\n"},
		{OutputID: "b.h", Err: errors.New("boom")},
		{OutputID: "c.h", Header: "/* c */\n", Cached: true},
	}}

	var out bytes.Buffer
	printHeaders(&out, batch)
	assert.Equal(t, "/* ==> a.h <== */\n/* a */\n/* ==> c.h <== */\n/* c */\n", out.String())

	out.Reset()
	printSummary(&out, batch, driver.ModeWrite)
	assert.Equal(t, "generated 2 headers (1 cached), 1 failed\n", out.String())

	batch.Results[0].Stale = true
	out.Reset()
	printSummary(&out, batch, driver.ModeCheck)
	assert.Equal(t, "checked 3 headers: 1 stale, 1 failed\n", out.String())
}

func TestPrintHeadersSingleFileHasNoBanner(t *testing.T) {
	batch := &driver.Batch{Results: []driver.Result{{OutputID: "a.h", Header: "/* a */\n"}}}
	var out bytes.Buffer
	printHeaders(&out, batch)
	assert.Equal(t, "/* a */\n", out.String())
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"stub2hdr/internal/config"
	"stub2hdr/internal/logging"
)

// globals are the persistent flags shared by every command.
type globals struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	logger         zerolog.Logger
}

func readGlobals(cmd *cobra.Command) (globals, error) {
	flags := cmd.Root().PersistentFlags()
	var g globals
	var err error

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return g, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(colorFlag) {
	case "on":
		g.color = true
	case "off":
		g.color = false
	case "auto", "":
		g.color = isTerminal(os.Stderr)
	default:
		return g, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	if g.quiet, err = flags.GetBool("quiet"); err != nil {
		return g, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if g.timings, err = flags.GetBool("timings"); err != nil {
		return g, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if g.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return g, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	level, err := flags.GetString("log-level")
	if err != nil {
		return g, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	if _, err := logging.ParseLevel(level); err != nil {
		return g, err
	}
	g.logger = logging.NewWithComponent(logging.Config{
		Level:   level,
		Pretty:  true,
		NoColor: !g.color,
		Output:  os.Stderr,
	}, "cli")
	return g, nil
}

// loadManifest honours --config and otherwise looks upwards from the
// working directory. Without any manifest the defaults are used.
func loadManifest(cmd *cobra.Command, log zerolog.Logger) (*config.Manifest, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	m, found, err := config.LoadNearest(wd)
	if err != nil {
		return nil, err
	}
	if found {
		log.Debug().Str("path", m.Path).Msg("using configuration")
	} else {
		log.Debug().Msg("no configuration file, using defaults")
	}
	return m, nil
}

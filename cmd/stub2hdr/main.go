package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"stub2hdr/internal/prof"
	"stub2hdr/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "stub2hdr",
	Short: "Generate C headers from stub sources",
	Long: `stub2hdr reads C stub files (function definitions with placeholder bodies)
and writes headers holding the matching declarations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errFailed signals that diagnostics were already printed and only the exit
// status is left to set.
var errFailed = errors.New("stub2hdr: failed")

func main() {
	rootCmd.Version = version.Version
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return startProfiling(cmd)
	}

	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(sigsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (trace|debug|info|warn|error|disabled)")
	rootCmd.PersistentFlags().String("config", "", "path to stub2hdr.toml (default: nearest one above the working directory)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write runtime trace to file")

	err := rootCmd.Execute()
	if stopErr := profiling.Stop(); stopErr != nil {
		fmt.Fprintln(os.Stderr, "failed to write profiles:", stopErr)
	}
	if err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// profiling is stopped by main after the command returns.
var profiling *prof.Session

func startProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Enabled() {
		return nil
	}
	profiling, err = prof.Start(opts)
	return err
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

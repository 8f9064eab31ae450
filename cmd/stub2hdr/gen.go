package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"stub2hdr/internal/config"
	"stub2hdr/internal/diagfmt"
	"stub2hdr/internal/driver"
)

var genCmd = &cobra.Command{
	Use:   "gen [flags] [paths...]",
	Short: "Generate headers from stub files",
	Long: `Gen extracts the function declarations of every stub and writes one header
per stub. Directories are searched with the include/exclude globs; without
paths the project root (the directory of stub2hdr.toml) is used.`,
	RunE: runGen,
}

func init() {
	genCmd.Flags().StringP("out-dir", "o", "", "output directory (default: [files].out_dir)")
	genCmd.Flags().Bool("stdout", false, "print headers instead of writing them")
	genCmd.Flags().Bool("check", false, "fail if any header is missing or out of date; write nothing")
	genCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	genCmd.Flags().Bool("extern-c", false, "wrap declarations in extern \"C\" for C++")
	genCmd.Flags().String("guard-prefix", "", "prefix for include guard names")
	genCmd.Flags().String("policy", "", "duplicate policy (first|last)")
	genCmd.Flags().Bool("no-cache", false, "disable the header cache")
	genCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	genCmd.Flags().StringSlice("include", nil, "glob of stubs to process inside directories")
	genCmd.Flags().StringSlice("exclude", nil, "glob of paths to skip inside directories")
}

func runGen(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	manifest, err := loadManifest(cmd, g.logger)
	if err != nil {
		return err
	}
	cfg := manifest.Config
	if err := applyGenFlags(cmd, &cfg); err != nil {
		return err
	}

	toStdout, _ := cmd.Flags().GetBool("stdout")
	check, _ := cmd.Flags().GetBool("check")
	if toStdout && check {
		return fmt.Errorf("--stdout and --check are mutually exclusive")
	}
	mode := driver.ModeWrite
	switch {
	case toStdout:
		mode = driver.ModeStdout
	case check:
		mode = driver.ModeCheck
	}
	uiFlag, _ := cmd.Flags().GetString("ui")
	ui, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{manifest.Root}
	}
	inputs, err := driver.Discover(paths, cfg.Files.Include, cfg.Files.Exclude)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		g.logger.Warn().Strs("paths", paths).Msg("no stub files found")
		return nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	opts := driver.BatchOptions{
		Options: driver.FromConfig(cfg),
		Jobs:    cfg.Run.Jobs,
		Mode:    mode,
		OutDir:  resolveOutDir(cmd, cfg, manifest.Root),
		Logger:  &g.logger,
		BaseDir: wd,
	}
	opts.MaxDiagnostics = g.maxDiagnostics
	if cfg.Run.Cache {
		cache, err := driver.OpenCache("stub2hdr")
		if err != nil {
			g.logger.Warn().Err(err).Msg("header cache disabled")
		} else {
			opts.Cache = cache
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var batch *driver.Batch
	if mode != driver.ModeStdout && !g.quiet && shouldUseTUI(ui) {
		batch, err = runGenWithUI(ctx, inputs, opts)
	} else {
		batch, err = driver.GenerateAll(ctx, inputs, opts)
	}
	if err != nil {
		return err
	}

	printBatchDiagnostics(os.Stderr, batch, g)
	if mode == driver.ModeStdout {
		printHeaders(cmd.OutOrStdout(), batch)
	}
	if !g.quiet {
		printSummary(os.Stderr, batch, mode)
	}
	if g.timings {
		fmt.Fprint(os.Stderr, batch.Timing.Summary())
	}
	if !batch.OK() {
		return errFailed
	}
	return nil
}

// applyGenFlags overrides configuration with explicitly set flags.
func applyGenFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("extern-c") {
		cfg.Header.ExternC, _ = flags.GetBool("extern-c")
	}
	if flags.Changed("guard-prefix") {
		cfg.Header.GuardPrefix, _ = flags.GetString("guard-prefix")
	}
	if flags.Changed("policy") {
		cfg.Parse.DuplicatePolicy, _ = flags.GetString("policy")
	}
	if flags.Changed("include") {
		cfg.Files.Include, _ = flags.GetStringSlice("include")
	}
	if flags.Changed("exclude") {
		cfg.Files.Exclude, _ = flags.GetStringSlice("exclude")
	}
	if flags.Changed("jobs") {
		cfg.Run.Jobs, _ = flags.GetInt("jobs")
	}
	if noCache, _ := flags.GetBool("no-cache"); noCache {
		cfg.Run.Cache = false
	}
	return cfg.Validate()
}

// resolveOutDir prefers --out-dir (relative to the working directory) and
// otherwise resolves [files].out_dir against the project root.
func resolveOutDir(cmd *cobra.Command, cfg config.Config, root string) string {
	if cmd.Flags().Changed("out-dir") {
		dir, _ := cmd.Flags().GetString("out-dir")
		return dir
	}
	if filepath.IsAbs(cfg.Files.OutDir) {
		return cfg.Files.OutDir
	}
	return filepath.Join(root, cfg.Files.OutDir)
}

func printBatchDiagnostics(w io.Writer, batch *driver.Batch, g globals) {
	opts := diagfmt.PrettyOpts{Color: g.color, Context: 1, ShowNotes: true}
	for i := range batch.Results {
		bag := batch.Results[i].Bag
		if bag == nil || bag.Len() == 0 {
			continue
		}
		bag.Sort()
		diagfmt.Pretty(w, bag, batch.FileSet, opts)
	}
}

func printHeaders(w io.Writer, batch *driver.Batch) {
	multi := len(batch.Results) > 1
	for _, res := range batch.Results {
		if res.Failed() {
			continue
		}
		if multi {
			fmt.Fprintf(w, "/* ==> %s <== */\n", res.OutputID)
		}
		io.WriteString(w, res.Header)
	}
}

func printSummary(w io.Writer, batch *driver.Batch, mode driver.Mode) {
	total, cached := len(batch.Results), 0
	for _, res := range batch.Results {
		if res.Cached {
			cached++
		}
	}
	failed := batch.Failed()
	switch mode {
	case driver.ModeCheck:
		fmt.Fprintf(w, "checked %d headers: %d stale, %d failed\n", total, batch.Stale(), failed)
	default:
		fmt.Fprintf(w, "generated %d headers (%d cached), %d failed\n", total-failed, cached, failed)
	}
}

type batchOutcome struct {
	batch *driver.Batch
	err   error
}

func runGenWithUI(ctx context.Context, inputs []driver.Input, opts driver.BatchOptions) (*driver.Batch, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		opts.Sink = driver.ChannelSink{Ch: events}
		b, err := driver.GenerateAll(ctx, inputs, opts)
		outcomeCh <- batchOutcome{batch: b, err: err}
		close(events)
	}()

	files := make([]string, len(inputs))
	for i, in := range inputs {
		files[i] = in.Path
	}
	uiErr := runProgressUI("stub2hdr", files, events)
	// UI мог завершиться раньше: дочитываем события, чтобы воркеры не встали
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.batch, uiErr
	}
	return outcome.batch, outcome.err
}

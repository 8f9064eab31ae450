package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stub2hdr/internal/diagfmt"
	"stub2hdr/internal/driver"
)

var sigsCmd = &cobra.Command{
	Use:   "sigs [flags] file.c",
	Short: "List the declarations extracted from a stub",
	Long: `Sigs runs extraction without writing a header and lists every item that
would be emitted: prototypes with their parameters, and passthrough directives.`,
	Args: cobra.ExactArgs(1),
	RunE: runSigs,
}

func init() {
	sigsCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
}

func runSigs(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "yaml":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	manifest, err := loadManifest(cmd, g.logger)
	if err != nil {
		return err
	}

	opts := driver.FromConfig(manifest.Config)
	opts.MaxDiagnostics = g.maxDiagnostics
	result, err := driver.Signatures(args[0], opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{Color: g.color, Context: 1, ShowNotes: true})
	}
	if result.Err != nil {
		return errFailed
	}

	sigs := diagfmt.BuildSigsOutput(result.File, result.FileSet, result.Items, manifest.Config.Spacing())
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return diagfmt.FormatSigsJSON(out, sigs)
	case "yaml":
		return diagfmt.FormatSigsYAML(out, sigs)
	default:
		return diagfmt.FormatSigsPretty(out, sigs)
	}
}

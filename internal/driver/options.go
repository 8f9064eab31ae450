package driver

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"

	"stub2hdr/internal/config"
	"stub2hdr/internal/emit"
	"stub2hdr/internal/normalize"
	"stub2hdr/internal/parser"
	"stub2hdr/internal/scanner"
)

// Options configure the per-file pipeline. The zero value generates a bare
// header: no banner, no directives, first definition wins.
type Options struct {
	// Directives keeps top-level #if/#else/#endif lines around declarations.
	Directives bool
	// PassIncludes copies top-level #include lines into the header.
	PassIncludes    bool
	AttributeMacros []string
	Policy          normalize.Policy
	KeepStatic      bool

	GuardPrefix  string
	GuardSuffix  string
	Banner       string
	Includes     []string
	ExternC      bool
	ParenSpacing emit.ParenSpacing

	// MaxDiagnostics bounds each file's bag; <= 0 means unbounded.
	MaxDiagnostics int
}

// FromConfig maps validated configuration onto pipeline options.
func FromConfig(cfg config.Config) Options {
	return Options{
		Directives:      cfg.Header.Directives,
		PassIncludes:    cfg.Header.PassIncludes,
		AttributeMacros: cfg.Parse.AttributeMacros,
		Policy:          cfg.Policy(),
		KeepStatic:      cfg.Parse.KeepStatic,
		GuardPrefix:     cfg.Header.GuardPrefix,
		GuardSuffix:     cfg.Header.GuardSuffix,
		Banner:          cfg.Header.Banner,
		Includes:        cfg.Header.Includes,
		ExternC:         cfg.Header.ExternC,
		ParenSpacing:    cfg.Spacing(),
	}
}

func (o Options) scannerOptions() scanner.Options {
	return scanner.Options{Directives: o.Directives, Includes: o.PassIncludes}
}

func (o Options) parserOptions() parser.Options {
	return parser.Options{AttributeMacros: o.AttributeMacros}
}

// EmitOptions returns the emitter settings for the header named outputID.
func (o Options) EmitOptions(outputID string) emit.Options {
	return emit.Options{
		Guard:        emit.GuardName(outputID, o.GuardPrefix, o.GuardSuffix),
		Banner:       o.Banner,
		Includes:     o.Includes,
		ExternC:      o.ExternC,
		ParenSpacing: o.ParenSpacing,
	}
}

// Fingerprint hashes every option that influences the generated text.
// MaxDiagnostics is left out: only clean results are cached.
func (o Options) Fingerprint() uint64 {
	var sb strings.Builder
	fmt.Fprintf(&sb, "dir=%t;inc=%t;static=%t;policy=%s;externc=%t;spacing=%s\n",
		o.Directives, o.PassIncludes, o.KeepStatic, o.Policy, o.ExternC, o.ParenSpacing)
	fmt.Fprintf(&sb, "guard=%q,%q\nbanner=%q\n", o.GuardPrefix, o.GuardSuffix, o.Banner)
	for _, m := range o.AttributeMacros {
		fmt.Fprintf(&sb, "attr=%q\n", m)
	}
	for _, inc := range o.Includes {
		fmt.Fprintf(&sb, "include=%q\n", inc)
	}
	return xxh3.HashString(sb.String())
}

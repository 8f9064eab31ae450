package emit

import (
	"fmt"
	"strings"
)

// ParenSpacing controls the blank between a function name and its '('.
type ParenSpacing uint8

const (
	// SpacingPreserve mirrors the source.
	SpacingPreserve ParenSpacing = iota
	SpacingAlways
	SpacingNever
)

func (p ParenSpacing) String() string {
	switch p {
	case SpacingAlways:
		return "always"
	case SpacingNever:
		return "never"
	default:
		return "preserve"
	}
}

// ParseParenSpacing maps "preserve", "always" and "never" to a mode.
func ParseParenSpacing(s string) (ParenSpacing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "preserve":
		return SpacingPreserve, nil
	case "always":
		return SpacingAlways, nil
	case "never":
		return SpacingNever, nil
	default:
		return SpacingPreserve, fmt.Errorf("unknown paren spacing %q (want preserve, always or never)", s)
	}
}

type Options struct {
	// Guard is the include-guard macro; see GuardName.
	Guard string
	// Banner is written as a leading comment when not empty.
	Banner string
	// Includes are emitted as #include lines; bare names get quotes.
	Includes     []string
	ExternC      bool
	ParenSpacing ParenSpacing
}

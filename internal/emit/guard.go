package emit

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultGuardSuffix is appended to guard names unless configured otherwise.
const DefaultGuardSuffix = "_H"

// GuardName derives an include-guard macro from an output identifier such as
// "sys/stat.h". The extension is dropped, accents are folded, letters are
// upper-cased and every run of other characters becomes one '_'.
// The result is deterministic for a given identifier and affixes.
func GuardName(outputID, prefix, suffix string) string {
	stem := strings.TrimSuffix(outputID, path.Ext(outputID))
	stem = strings.TrimLeft(stem, "./")
	body := fold(prefix + stem)
	if body == "" {
		body = "HEADER"
	}
	guard := body + fold(suffix)
	if strings.HasPrefix(suffix, "_") {
		guard = body + "_" + fold(suffix)
	}
	if guard[0] >= '0' && guard[0] <= '9' {
		guard = "_" + guard
	}
	return guard
}

// fold upper-cases s, strips combining marks after NFKD decomposition and
// collapses non-alphanumeric runs into '_' (trimmed at both ends).
func fold(s string) string {
	var sb strings.Builder
	pendingSep := false
	for _, r := range norm.NFKD.String(s) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingSep && sb.Len() > 0 {
				sb.WriteByte('_')
			}
			pendingSep = false
			sb.WriteRune(unicode.ToUpper(r))
		default:
			pendingSep = true
		}
	}
	return sb.String()
}

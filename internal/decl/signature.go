package decl

import (
	"stub2hdr/internal/source"
	"stub2hdr/internal/token"
)

// Parameter is one comma-separated slot of a parameter list.
type Parameter struct {
	// Type holds every token of the slot except the name.
	Type []token.Token
	Name string
	// NameAt is where Name goes back into Type; -1 for unnamed parameters.
	NameAt int
	// NameTok is the original name token, zero when unnamed.
	NameTok  token.Token
	Variadic bool
}

// Named reports whether the parameter carries a name.
func (p Parameter) Named() bool { return p.NameAt >= 0 }

// Tokens returns the full parameter declarator, name included.
func (p Parameter) Tokens() []token.Token {
	if !p.Named() {
		return p.Type
	}
	at := min(p.NameAt, len(p.Type))
	out := make([]token.Token, 0, len(p.Type)+1)
	out = append(out, p.Type[:at]...)
	out = append(out, p.NameTok)
	out = append(out, p.Type[at:]...)
	return out
}

// String renders the parameter with canonical spacing.
func (p Parameter) String() string {
	if p.Variadic {
		return "..."
	}
	return Render(p.Tokens())
}

// Signature is a function declaration extracted from a definition or prototype.
type Signature struct {
	ReturnType []token.Token
	Name       string
	NameSpan   source.Span
	// Params включает завершающий "...", если он есть.
	Params   []Parameter
	Variadic bool
	// ReturnSuffix closes a nested declarator: ")(int)" in
	// void (*signal(int sig, void (*func)(int)))(int).
	ReturnSuffix []token.Token
	// Trailing are annotations between the parameter list and the body.
	Trailing []token.Token
	// SpaceBeforeParams mirrors whether the source had blanks between name and "(".
	SpaceBeforeParams bool
	// Span covers the whole candidate, body included.
	Span source.Span
}

// Fixed returns the parameters without the variadic marker.
func (s *Signature) Fixed() []Parameter {
	if s.Variadic && len(s.Params) > 0 {
		return s.Params[:len(s.Params)-1]
	}
	return s.Params
}

// ParamTypes renders each parameter's type without its name.
func (s *Signature) ParamTypes() []string {
	out := make([]string, 0, len(s.Params))
	for _, p := range s.Params {
		if p.Variadic {
			out = append(out, "...")
			continue
		}
		out = append(out, Render(p.Type))
	}
	return out
}

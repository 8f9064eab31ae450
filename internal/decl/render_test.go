package decl

import (
	"strings"
	"testing"

	"stub2hdr/internal/source"
	"stub2hdr/internal/token"
)

func toks(words string) []token.Token {
	fields := strings.Fields(words)
	out := make([]token.Token, len(fields))
	for i, f := range fields {
		out[i] = token.Token{Kind: token.Ident, Text: f}
	}
	return out
}

func TestRender(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"const char * __restrict __format", "const char *__restrict __format"},
		{"char * * argv", "char **argv"},
		{"int ( * cmp ) ( const void * , const void * )", "int (*cmp)(const void *, const void *)"},
		{"int a [ 10 ]", "int a[10]"},
		{"FILE *", "FILE *"},
		{"void ( * func ) ( int )", "void (*func)(int)"},
		{"__attribute__ ( ( noreturn ) )", "__attribute__ ((noreturn))"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Render(toks(tt.in)); got != tt.want {
			t.Errorf("Render(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderIdempotent(t *testing.T) {
	in := "void ( * signal ( int sig , void ( * func ) ( int ) ) ) ( int )"
	once := Render(toks(in))
	// повторная токенизация по правилам рендера даёт ту же строку
	again := Render(toks(strings.NewReplacer("(", " ( ", ")", " ) ", "*", " * ", ",", " , ").Replace(once)))
	if once != again {
		t.Fatalf("not idempotent: %q vs %q", once, again)
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		a, b, want string
	}{
		{"char *", "tmpnam", "char *tmpnam"},
		{"int", "remove", "int remove"},
		{"void (*", "signal", "void (*signal"},
		{"int __attribute__((pure))", "f", "int __attribute__((pure)) f"},
		{"", "f", "f"},
		{"f", "", "f"},
	}
	for _, tt := range tests {
		if got := Join(tt.a, tt.b); got != tt.want {
			t.Errorf("Join(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestParameterTokens(t *testing.T) {
	p := Parameter{
		Type:    toks("int ( * ) ( const void * , const void * )"),
		Name:    "cmp",
		NameAt:  3,
		NameTok: token.Token{Kind: token.Ident, Text: "cmp"},
	}
	if got := p.String(); got != "int (*cmp)(const void *, const void *)" {
		t.Fatalf("String() = %q", got)
	}
	unnamed := Parameter{Type: toks("size_t"), NameAt: -1}
	if unnamed.Named() || unnamed.String() != "size_t" {
		t.Fatalf("unnamed = %q", unnamed.String())
	}
	if got := (Parameter{Variadic: true, NameAt: -1}).String(); got != "..." {
		t.Fatalf("variadic = %q", got)
	}
}

func TestItemName(t *testing.T) {
	sig := Signature{Name: "f"}
	if got := FromSignature(sig).Name(); got != "f" {
		t.Fatalf("Name() = %q", got)
	}
	if got := (Item{Kind: ItemDirective, Text: "#endif"}).Name(); got != "" {
		t.Fatalf("directive Name() = %q", got)
	}
	if got := (Item{Kind: ItemPassthrough, Text: "int g(void);"}).Name(); got != "" {
		t.Fatalf("unparsed passthrough Name() = %q", got)
	}
}

func TestRenderSource(t *testing.T) {
	// __attribute__((nonnull(1)))  __wur
	src := []struct {
		text       string
		start, end uint32
	}{
		{"__attribute__", 0, 13}, {"(", 13, 14}, {"(", 14, 15}, {"nonnull", 15, 22},
		{"(", 22, 23}, {"1", 23, 24}, {")", 24, 25}, {")", 25, 26}, {")", 26, 27},
		{"__wur", 29, 34},
	}
	in := make([]token.Token, len(src))
	for i, s := range src {
		in[i] = token.Token{Kind: token.Ident, Text: s.text, Span: source.Span{Start: s.start, End: s.end}}
	}
	if got, want := RenderSource(in), "__attribute__((nonnull(1))) __wur"; got != want {
		t.Fatalf("RenderSource = %q, want %q", got, want)
	}
	if got := RenderSource(nil); got != "" {
		t.Fatalf("RenderSource(nil) = %q", got)
	}
}

package testkit

import (
	"testing"

	"stub2hdr/internal/decl"
	"stub2hdr/internal/lexer"
	"stub2hdr/internal/source"
	"stub2hdr/internal/token"
)

func lexAll(t *testing.T, src string) (*source.File, []token.Token) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("k.c", []byte(src)))
	lx := lexer.New(file, lexer.Options{})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return file, toks
}

func TestCheckTokenSpansOnLexerOutput(t *testing.T) {
	file, toks := lexAll(t, "#include <x.h>\n/* c */ int f(int a) { return 0; }\n")
	if err := CheckTokenSpans(file, toks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckTokenSpansRejectsOverlap(t *testing.T) {
	file, toks := lexAll(t, "int f(void);")
	toks[2].Span.Start = toks[1].Span.Start
	if err := CheckTokenSpans(file, toks); err == nil {
		t.Fatal("expected overlap error")
	}
}

func TestCheckItemSpans(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("k.c", []byte("int f(void) {}")))
	ok := []decl.Item{{Kind: decl.ItemDirective, Text: "#x", Span: source.Span{File: file.ID, Start: 0, End: 3}}}
	if err := CheckItemSpans(file, ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := []decl.Item{{Kind: decl.ItemDirective, Span: source.Span{File: file.ID, Start: 4, End: 99}}}
	if err := CheckItemSpans(file, bad); err == nil {
		t.Fatal("expected out of bounds error")
	}
	empty := []decl.Item{{Kind: decl.ItemDirective, Span: source.Span{File: file.ID, Start: 4, End: 4}}}
	if err := CheckItemSpans(file, empty); err == nil {
		t.Fatal("expected empty span error")
	}
}

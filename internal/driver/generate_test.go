package driver

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"stub2hdr/internal/diag"
	"stub2hdr/internal/emit"
	"stub2hdr/internal/lexer"
	"stub2hdr/internal/normalize"
	"stub2hdr/internal/source"
)

func goldenOptions() Options {
	return Options{
		Banner:      "generated by stub2hdr; do not edit",
		GuardSuffix: emit.DefaultGuardSuffix,
	}
}

func generateString(t *testing.T, src string, opts Options) Result {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte(src))
	return Generate(fs.Get(id), "test.h", opts)
}

func TestGenerate_StdioGolden(t *testing.T) {
	fs := source.NewFileSet()
	id, err := fs.Load("testdata/stdio.c")
	if err != nil {
		t.Fatal(err)
	}
	want, err := os.ReadFile("testdata/stdio.h")
	if err != nil {
		t.Fatal(err)
	}

	res := Generate(fs.Get(id), "stdio.h", goldenOptions())
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", diag.FormatShortDiagnostics(res.Bag.Items(), fs, true))
	}
	if diff := cmp.Diff(string(want), res.Header); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	if res.ItemCount != 82 {
		t.Errorf("ItemCount = %d, want 82", res.ItemCount)
	}
	if res.Timing == nil || len(res.Timing.Phases) == 0 {
		t.Errorf("timing report missing")
	}

	again := Generate(fs.Get(id), "stdio.h", goldenOptions())
	if again.Header != res.Header {
		t.Errorf("output is not deterministic")
	}
}

func TestGenerate_Declarations(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"void params", "int f(void){}\n", []string{"int f(void);"}},
		{"old style", "int f(){ return 0; }\n", []string{"int f(void);"}},
		{"keeps space", "void setlinebuf (FILE *__stream){}\n", []string{"void setlinebuf (FILE *__stream);"}},
		{"pointer return", "char *tmpnam (char *__s){}\n", []string{"char *tmpnam (char *__s);"}},
		{"variadic", "int printf (const char *__restrict __format, ...){}\n",
			[]string{"int printf (const char *__restrict __format, ...);"}},
		{"function pointer param", "int foo(int (*cmp)(const void*, const void*)){}\n",
			[]string{"int foo(int (*cmp)(const void *, const void *));"}},
		{"source order", "int b(void){}\nint a(void){}\nint c(void){}\n",
			[]string{"int b(void);", "int a(void);", "int c(void);"}},
		{"prototype passthrough", "int p(int);\nint d(void){}\n", []string{"int p(int);", "int d(void);"}},
		{"static dropped", "static int hidden(void){}\nint shown(void){}\n", []string{"int shown(void);"}},
		{"comments ignored", "/* c */ int f(int a /* x */) // y\n{ /* } */ }\n", []string{"int f(int a);"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := generateString(t, tt.src, Options{})
			if res.Err != nil {
				t.Fatalf("unexpected error: %v", res.Err)
			}
			got := declLines(res.Header)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("declarations (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerate_Duplicates(t *testing.T) {
	src := "int f(int a){}\nint g(void){}\nint f(long b){}\n"

	first := generateString(t, src, Options{})
	if diff := cmp.Diff([]string{"int f(int a);", "int g(void);"}, declLines(first.Header)); diff != "" {
		t.Errorf("KeepFirst (-want +got):\n%s", diff)
	}
	if first.Bag.Count(diag.SevWarning) != 1 || first.Bag.Items()[0].Code != diag.NrmDuplicateName {
		t.Errorf("expected one duplicate warning, got %+v", first.Bag.Items())
	}

	last := generateString(t, src, Options{Policy: normalize.KeepLast})
	if diff := cmp.Diff([]string{"int g(void);", "int f(long b);"}, declLines(last.Header)); diff != "" {
		t.Errorf("KeepLast (-want +got):\n%s", diff)
	}
}

func TestGenerate_UnterminatedCommentIsFatal(t *testing.T) {
	res := generateString(t, "int a(void){}\n/* never closed\nint b(void){}\n", Options{})
	if res.Err == nil {
		t.Fatal("expected a file-level error")
	}
	var lerr *lexer.Error
	if !errors.As(res.Err, &lerr) || lerr.Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("error = %v, want unterminated block comment", res.Err)
	}
	if res.Header != "" || res.Items != nil {
		t.Errorf("no header expected, got %q", res.Header)
	}
	if !res.Bag.HasErrors() {
		t.Errorf("lexer error not reported")
	}
}

func TestGenerate_ParseErrorsAreLocal(t *testing.T) {
	res := generateString(t, "int ok(void){}\nint (void){}\nint (y);\n", Options{})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if diff := cmp.Diff([]string{"int ok(void);"}, declLines(res.Header)); diff != "" {
		t.Errorf("declarations (-want +got):\n%s", diff)
	}
	if res.Bag.Count(diag.SevError) != 1 {
		t.Errorf("definition error not reported: %+v", res.Bag.Items())
	}
	if res.Bag.Count(diag.SevInfo) != 1 {
		t.Errorf("skipped prototype not reported: %+v", res.Bag.Items())
	}
}

func TestGenerate_NameIsRightmostBeforeParams(t *testing.T) {
	res := generateString(t, "EXPORT(int) f(int x){}\n", Options{})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if diff := cmp.Diff([]string{"EXPORT (int) f(int x);"}, declLines(res.Header)); diff != "" {
		t.Errorf("declarations (-want +got):\n%s", diff)
	}
	if res.Bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %+v", res.Bag.Items())
	}
}

func TestGenerate_TrailingAttributesVerbatim(t *testing.T) {
	res := generateString(t, "int f(const char *s) __attribute__((nonnull(1))){}\n", Options{})
	want := []string{"int f(const char *s) __attribute__((nonnull(1)));"}
	if diff := cmp.Diff(want, declLines(res.Header)); diff != "" {
		t.Errorf("declarations (-want +got):\n%s", diff)
	}
}

func TestGenerate_UnsupportedFormsWarn(t *testing.T) {
	res := generateString(t, "int old(a) int a; { return a; }\nint ok(void){}\n", Options{})
	if diff := cmp.Diff([]string{"int ok(void);"}, declLines(res.Header)); diff != "" {
		t.Errorf("declarations (-want +got):\n%s", diff)
	}
	if res.Bag.Len() != 1 || res.Bag.Items()[0].Code != diag.ScanOldStyleDef {
		t.Errorf("old-style definition not reported: %+v", res.Bag.Items())
	}

	res = generateString(t, "int f(int a,\n#ifdef X\n int b\n#else\n long b\n#endif\n){}\n", Options{})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Bag.Count(diag.SevWarning) != 1 || res.Bag.Items()[0].Code != diag.ScanCondInDecl {
		t.Errorf("merged branches not reported: %+v", res.Bag.Items())
	}
}

func TestGenerate_Directives(t *testing.T) {
	src := "#include <stdio.h>\n#ifdef USE_X\nint x(void){}\n#endif\n"
	res := generateString(t, src, Options{Directives: true, PassIncludes: true})
	want := []string{"#include <stdio.h>", "#ifdef USE_X", "int x(void);", "#endif"}
	if diff := cmp.Diff(want, declLines(res.Header)); diff != "" {
		t.Errorf("declarations (-want +got):\n%s", diff)
	}
}

func TestGenerate_ExternC(t *testing.T) {
	opts := Options{ExternC: true, GuardPrefix: "lib"}
	res := generateString(t, "int f(void){}\n", opts)
	for _, want := range []string{"#ifndef LIBTEST\n", "extern \"C\" {", "int f(void);\n"} {
		if !strings.Contains(res.Header, want) {
			t.Errorf("header lacks %q:\n%s", want, res.Header)
		}
	}
}

// declLines returns the header body without guard, banner and blank lines.
func declLines(header string) []string {
	var out []string
	for _, l := range strings.Split(header, "\n") {
		switch {
		case l == "", strings.HasPrefix(l, "/*"),
			strings.HasPrefix(l, "#ifndef ") && !strings.Contains(l, "USE_"),
			strings.HasPrefix(l, "#define "),
			strings.HasPrefix(l, "#endif /*"):
			continue
		}
		out = append(out, l)
	}
	return out
}

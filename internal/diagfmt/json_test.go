package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"stub2hdr/internal/decl"
	"stub2hdr/internal/diag"
	"stub2hdr/internal/emit"
	"stub2hdr/internal/lexer"
	"stub2hdr/internal/parser"
	"stub2hdr/internal/scanner"
	"stub2hdr/internal/source"
)

func TestJSON(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte(prettySrc))

	var buf bytes.Buffer
	if err := JSON(&buf, stringBag(id), fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "LEX1001" || d.Severity != "ERROR" || d.Location.File != "test.c" {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 11 {
		t.Errorf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.StartCol != 5 {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestJSON_Max(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte(prettySrc))
	bag := stringBag(id)
	bag.Add(diag.NewError(diag.ScanUnclosedBrace, source.Span{File: id}, "x"))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 || out.Diagnostics[0].Notes != nil {
		t.Errorf("output = %+v", out)
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.c", []byte("int f;\n"))
	toks, err := lexer.Tokenize(fs.Get(id), lexer.Options{})
	if err != nil {
		t.Fatal(err)
	}

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(pretty.String(), `"int" at 1:1-1:4`) {
		t.Errorf("pretty tokens:\n%s", pretty.String())
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, toks, fs); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 || out[1].Text != "f" || out[1].Col != 5 {
		t.Errorf("json tokens = %+v", out)
	}
}

func sigsFor(t *testing.T, src string) (SigsOutput, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("s.c", []byte(src))
	sc := scanner.New(lexer.New(fs.Get(id), lexer.Options{}), scanner.Options{})
	var items []decl.Item
	for c, ok := sc.Next(); ok; c, ok = sc.Next() {
		sig, err := parser.Parse(c, parser.Options{})
		if err != nil {
			t.Fatal(err)
		}
		items = append(items, decl.FromSignature(sig))
	}
	return BuildSigsOutput(fs.Get(id), fs, items, emit.SpacingPreserve), fs
}

func TestSigsOutput(t *testing.T) {
	out, _ := sigsFor(t, "int f(void){}\nint printf (const char *fmt, ...){}\n")
	if out.Count != 2 || out.File != "s.c" {
		t.Fatalf("out = %+v", out)
	}
	p := out.Items[1]
	if p.Name != "printf" || p.Line != 2 || p.ReturnType != "int" {
		t.Errorf("item = %+v", p)
	}
	want := []ParamOutput{{Type: "const char *", Name: "fmt"}, {Type: "...", Variadic: true}}
	if len(p.Params) != 2 || p.Params[0] != want[0] || p.Params[1] != want[1] {
		t.Errorf("params = %+v", p.Params)
	}
	if p.Declaration != "int printf (const char *fmt, ...);" {
		t.Errorf("declaration = %q", p.Declaration)
	}

	var pretty bytes.Buffer
	if err := FormatSigsPretty(&pretty, out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(pretty.String(), "s.c:1    signature   int f(void);\n") || !strings.HasSuffix(pretty.String(), "2 items\n") {
		t.Errorf("pretty:\n%s", pretty.String())
	}
}

func TestSigsYAMLAndJSON(t *testing.T) {
	out, _ := sigsFor(t, "int printf (const char *fmt, ...){}\n")

	var y bytes.Buffer
	if err := FormatSigsYAML(&y, out); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"file: s.c\n", "  - kind: signature\n", "    name: printf\n", "        variadic: true\n", "count: 1\n"} {
		if !strings.Contains(y.String(), want) {
			t.Errorf("yaml lacks %q:\n%s", want, y.String())
		}
	}

	var j bytes.Buffer
	if err := FormatSigsJSON(&j, out); err != nil {
		t.Fatal(err)
	}
	var back SigsOutput
	if err := json.Unmarshal(j.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if back.Items[0].Declaration != out.Items[0].Declaration {
		t.Errorf("json round trip: %+v", back)
	}
}

package normalize

import (
	"strings"
	"testing"

	"stub2hdr/internal/decl"
	"stub2hdr/internal/diag"
	"stub2hdr/internal/source"
	"stub2hdr/internal/token"
)

func words(s string) []token.Token {
	var out []token.Token
	for _, f := range strings.Fields(s) {
		k := token.Ident
		switch f {
		case "(":
			k = token.LParen
		case ")":
			k = token.RParen
		case "*":
			k = token.Star
		}
		out = append(out, token.Token{Kind: k, Text: f})
	}
	return out
}

func sigItem(ret, name string, at uint32) decl.Item {
	return decl.FromSignature(decl.Signature{
		ReturnType: words(ret),
		Name:       name,
		NameSpan:   source.Span{Start: at, End: at + uint32(len(name))},
		Span:       source.Span{Start: at, End: at + 10},
	})
}

func names(items []decl.Item) string {
	var out []string
	for _, it := range items {
		if it.Kind == decl.ItemDirective {
			out = append(out, it.Text)
			continue
		}
		out = append(out, it.Name())
	}
	return strings.Join(out, ",")
}

func TestNormalizer_KeepFirst(t *testing.T) {
	bag := diag.NewBag(10)
	n := New(Options{Reporter: diag.BagReporter{Bag: bag}})
	n.Add(sigItem("int", "a", 0))
	n.Add(sigItem("int", "b", 20))
	if n.Add(sigItem("long", "a", 40)) {
		t.Fatal("duplicate must be dropped")
	}
	n.Add(sigItem("int", "c", 60))

	items := n.Items()
	if got := names(items); got != "a,b,c" {
		t.Fatalf("names = %q", got)
	}
	if got := decl.Render(items[0].Sig.ReturnType); got != "int" {
		t.Fatalf("first occurrence not kept: %q", got)
	}
	if bag.Count(diag.SevWarning) != 1 {
		t.Fatalf("warnings = %d", bag.Count(diag.SevWarning))
	}
	d := bag.Items()[0]
	if d.Code != diag.NrmDuplicateName || d.Primary.Start != 40 {
		t.Fatalf("diagnostic = %+v", d)
	}
	if len(d.Notes) != 1 || d.Notes[0].Span.Start != 0 {
		t.Fatalf("notes = %+v", d.Notes)
	}
}

func TestNormalizer_KeepLast(t *testing.T) {
	bag := diag.NewBag(10)
	n := New(Options{Policy: KeepLast, Reporter: diag.BagReporter{Bag: bag}})
	n.Add(sigItem("int", "a", 0))
	n.Add(sigItem("int", "b", 20))
	if !n.Add(sigItem("long", "a", 40)) {
		t.Fatal("last occurrence must be kept")
	}
	items := n.Items()
	if got := names(items); got != "b,a" {
		t.Fatalf("names = %q", got)
	}
	if got := decl.Render(items[1].Sig.ReturnType); got != "long" {
		t.Fatalf("kept return = %q", got)
	}
	if n.Len() != 2 {
		t.Fatalf("Len = %d", n.Len())
	}
	d := bag.Items()[0]
	if d.Primary.Start != 0 || d.Notes[0].Span.Start != 40 {
		t.Fatalf("diagnostic points at %d, note at %d", d.Primary.Start, d.Notes[0].Span.Start)
	}
}

func TestNormalizer_DuplicateAcrossKinds(t *testing.T) {
	n := New(Options{})
	proto := sigItem("int", "f", 0)
	proto.Kind = decl.ItemPassthrough
	proto.Text = "int f(int);"
	n.Add(proto)
	n.Add(sigItem("int", "f", 30))
	items := n.Items()
	if len(items) != 1 || items[0].Kind != decl.ItemPassthrough {
		t.Fatalf("items = %+v", items)
	}
}

func TestNormalizer_DirectivesAndUnnamed(t *testing.T) {
	n := New(Options{})
	n.Add(decl.Item{Kind: decl.ItemDirective, Text: "#ifdef X"})
	n.Add(sigItem("int", "a", 0))
	n.Add(decl.Item{Kind: decl.ItemPassthrough, Text: "MACRO(int);"})
	n.Add(decl.Item{Kind: decl.ItemPassthrough, Text: "MACRO(int);"})
	n.Add(decl.Item{Kind: decl.ItemDirective, Text: "#endif"})
	if got := names(n.Items()); got != "#ifdef X,a,,,#endif" {
		t.Fatalf("names = %q", got)
	}
}

func TestNormalizer_Static(t *testing.T) {
	bag := diag.NewBag(10)
	n := New(Options{Reporter: diag.BagReporter{Bag: bag}})
	if n.Add(sigItem("static int", "helper", 0)) {
		t.Fatal("static must be skipped")
	}
	n.Add(sigItem("int __attribute__ ( ( static ) )", "odd", 10))
	if got := names(n.Items()); got != "odd" {
		t.Fatalf("names = %q", got)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.NrmStaticSkipped || bag.Items()[0].Severity != diag.SevInfo {
		t.Fatalf("diagnostics = %+v", bag.Items())
	}

	keep := New(Options{KeepStatic: true})
	if !keep.Add(sigItem("inline static int", "helper", 0)) {
		t.Fatal("KeepStatic must keep static")
	}
	if got := decl.Render(keep.Items()[0].Sig.ReturnType); got != "static inline int" {
		t.Fatalf("return = %q", got)
	}
}

func TestSpecifiers(t *testing.T) {
	tests := []struct{ in, want string }{
		{"int", "int"},
		{"const char *", "const char *"},
		{"__inline__ extern int", "extern __inline__ int"},
		{"int inline static", "static inline int"},
		{"_Noreturn extern void", "extern _Noreturn void"},
		{"inline inline int", "inline int"},
		{"void static ( *", "static void (*"},
	}
	for _, tt := range tests {
		if got := decl.Render(Specifiers(words(tt.in))); got != tt.want {
			t.Errorf("Specifiers(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]Policy{"": KeepFirst, "first": KeepFirst, "LAST": KeepLast} {
		got, err := ParsePolicy(in)
		if err != nil || got != want {
			t.Errorf("ParsePolicy(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePolicy("middle"); err == nil {
		t.Error("expected error")
	}
}

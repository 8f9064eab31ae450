package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("stdio.c", []byte("int getchar (void){}"), 0)
	id2 := fs.Add("stdio.c", []byte("int putchar (int __c){}"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	// GetByPath отдаёт последнюю версию
	f, ok := fs.GetByPath("./stdio.c")
	if !ok || f.ID != id2 {
		t.Fatalf("GetByPath returned %v, %v; want id %d", f, ok, id2)
	}
	if string(fs.Get(id1).Content) != "int getchar (void){}" {
		t.Fatalf("old version must stay reachable")
	}
	if fs.Get(id1).Hash == fs.Get(id2).Hash {
		t.Fatalf("different content must hash differently")
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stub.c")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFint f(void)\r\n{}\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "int f(void)\n{}\n" {
		t.Fatalf("content not normalized: %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags not recorded: %b", f.Flags)
	}
	if got := fs.RelPath(f); got != "stub.c" {
		t.Fatalf("RelPath = %q", got)
	}
}

func TestRelPathOutsideBaseStaysAbsolute(t *testing.T) {
	tmp := t.TempDir()
	fs := NewFileSetWithBase(filepath.Join(tmp, "base"))
	target := filepath.Join(tmp, "other", "stub.c")
	id := fs.Add(target, nil, 0)
	if got := fs.RelPath(fs.Get(id)); got != filepath.ToSlash(target) {
		t.Fatalf("RelPath = %q, want %q", got, target)
	}
}

func TestGetLineAndResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("v.c", []byte("int a;\nint f(void){}\n"))
	f := fs.Get(id)

	if got := f.GetLine(2); got != "int f(void){}" {
		t.Fatalf("GetLine(2) = %q", got)
	}
	if got := f.GetLine(9); got != "" {
		t.Fatalf("GetLine(9) = %q", got)
	}
	start, end := fs.Resolve(Span{File: id, Start: 11, End: 12})
	if start != (LineCol{Line: 2, Col: 5}) || end != (LineCol{Line: 2, Col: 6}) {
		t.Fatalf("Resolve = %+v %+v", start, end)
	}
}

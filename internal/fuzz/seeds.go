package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // ограничение для тестового корпуса

var inlineSeeds = []string{
	"",
	"int f(void) {}\n",
	"#include <stdio.h>\nint printf(const char *format, ...) { return 0; }\n",
	"static int (*handler(int sig, void (*fn)(int)))(int) { return 0; }\n",
	"int a[3];\nint f(void);\n",
	"extern \"C\" { int g(void) {} }\n",
	"/* unterminated",
	"int f(\n",
	"}}}{{{",
	"#define X(a) \\\n  a\nchar *s = \"\\\"\";\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	root := filepath.Join("..", "driver", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".c" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

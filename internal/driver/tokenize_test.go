package driver

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"stub2hdr/internal/decl"
	"stub2hdr/internal/token"
)

func TestTokenize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.c")
	writeFile(t, path, "int a(void){}\n")

	res, err := Tokenize(path, 10)
	require.NoError(t, err)
	require.Len(t, res.Tokens, 8)
	require.Equal(t, token.EOF, res.Tokens[len(res.Tokens)-1].Kind)
	require.Zero(t, res.Bag.Len())

	_, err = Tokenize(filepath.Join(t.TempDir(), "missing.c"), 10)
	require.Error(t, err)
}

func TestTokenize_StopsAtError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.c")
	writeFile(t, path, "int a; \"open\n")

	res, err := Tokenize(path, 10)
	require.NoError(t, err)
	require.Len(t, res.Tokens, 3)
	require.True(t, res.Bag.HasErrors())
}

func TestSignatures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.c")
	writeFile(t, path, "#if X\nint a(int n){}\n#endif\nint b(void);\n")

	res, err := Signatures(path, Options{Directives: true})
	require.NoError(t, err)
	require.NoError(t, res.Err)
	kinds := make([]decl.ItemKind, 0, len(res.Items))
	for _, it := range res.Items {
		kinds = append(kinds, it.Kind)
	}
	require.Equal(t, []decl.ItemKind{decl.ItemDirective, decl.ItemSignature, decl.ItemDirective, decl.ItemPassthrough}, kinds)
	require.Equal(t, "a", res.Items[1].Name())
	require.Equal(t, "b", res.Items[3].Name())
}

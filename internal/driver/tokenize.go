package driver

import (
	"stub2hdr/internal/decl"
	"stub2hdr/internal/diag"
	"stub2hdr/internal/lexer"
	"stub2hdr/internal/source"
	"stub2hdr/internal/token"
)

// TokenizeResult содержит результат токенизации одного файла.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and lexes it to the end or to the first error.
// The token slice ends with EOF unless lexing failed.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(id)
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: (&lexer.ReporterAdapter{Bag: bag}).Reporter()})

	var toks []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.Invalid {
			break
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return &TokenizeResult{FileSet: fs, File: file, Tokens: toks, Bag: bag}, nil
}

// SignaturesResult holds the normalized items of one file.
type SignaturesResult struct {
	FileSet *source.FileSet
	File    *source.File
	Items   []decl.Item
	Bag     *diag.Bag
	// Err is the file-level error, as in Result.
	Err error
}

// Signatures loads path and runs the pipeline up to normalization.
func Signatures(path string, opts Options) (*SignaturesResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(id)
	bag := diag.NewBag(opts.MaxDiagnostics)
	items, err := Extract(file, opts, (&lexer.ReporterAdapter{Bag: bag}).Reporter())
	return &SignaturesResult{FileSet: fs, File: file, Items: items, Bag: bag, Err: err}, nil
}

package driver

import (
	"errors"
	"time"

	"stub2hdr/internal/decl"
	"stub2hdr/internal/diag"
	"stub2hdr/internal/emit"
	"stub2hdr/internal/lexer"
	"stub2hdr/internal/normalize"
	"stub2hdr/internal/observ"
	"stub2hdr/internal/parser"
	"stub2hdr/internal/scanner"
	"stub2hdr/internal/source"
)

// Result is the outcome of processing one stub.
type Result struct {
	// Path is the input path as given (or discovered).
	Path string
	// OutputID is the header path relative to the output directory.
	OutputID string
	// OutPath is where the header is written; empty for stdout and Generate.
	OutPath string
	FileID  source.FileID
	Header  string
	// Items is nil for cache hits; ItemCount is always set.
	Items     []decl.Item
	ItemCount int
	Bag       *diag.Bag
	// Err is set when the file could not be processed at all.
	// No header is produced then.
	Err error
	// Stale is set in check mode when the header on disk differs.
	Stale  bool
	Cached bool
	Timing *observ.Report
}

// Failed reports whether the file produced no usable header.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// Generate runs the extraction pipeline over one loaded file.
// Lexical and structural errors abort the file; declarator errors only
// drop the offending declaration.
func Generate(file *source.File, outputID string, opts Options) (res Result) {
	timer := observ.NewTimer()
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := (&lexer.ReporterAdapter{Bag: bag}).Reporter()

	res = Result{Path: file.Path, OutputID: outputID, FileID: file.ID, Bag: bag}
	defer func() {
		report := timer.Report()
		res.Timing = &report
	}()

	items, err := extract(file, opts, reporter, timer)
	if err != nil {
		res.Err = err
		return res
	}
	res.Items = items
	res.ItemCount = len(items)

	emitIdx := timer.Begin("emit")
	res.Header = emit.Render(items, opts.EmitOptions(outputID))
	timer.End(emitIdx, "")
	return res
}

// Extract returns the normalized items of file without rendering them.
func Extract(file *source.File, opts Options, reporter diag.Reporter) ([]decl.Item, error) {
	return extract(file, opts, reporter, observ.NewTimer())
}

func extract(file *source.File, opts Options, reporter diag.Reporter, timer *observ.Timer) ([]decl.Item, error) {
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	sopts := opts.scannerOptions()
	sopts.Reporter = reporter
	sc := scanner.New(lx, sopts)
	norm := normalize.New(normalize.Options{
		Policy:     opts.Policy,
		KeepStatic: opts.KeepStatic,
		Reporter:   reporter,
	})
	popts := opts.parserOptions()

	// сканер ленивый: лексер и сканер меряются вместе, остальное копится отдельно
	var st stageClock
	for {
		st.resume(&st.scan)
		c, ok := sc.Next()
		st.pause()
		if !ok {
			break
		}

		switch c.Kind {
		case scanner.Directive:
			st.resume(&st.norm)
			norm.Add(decl.Item{Kind: decl.ItemDirective, Text: c.Text(file), Span: c.Span})
			st.pause()

		case scanner.Definition:
			st.resume(&st.parse)
			sig, err := parser.Parse(c, popts)
			st.pause()
			if err != nil {
				reportParseError(reporter, err, diag.SevError, "definition skipped")
				continue
			}
			st.resume(&st.norm)
			norm.Add(decl.FromSignature(sig))
			st.pause()

		case scanner.Prototype:
			st.resume(&st.parse)
			sig, err := parser.Parse(c, popts)
			st.pause()
			if err != nil {
				// не функция: объявление переменной или typedef
				reportParseError(reporter, err, diag.SevInfo, "prototype skipped")
				continue
			}
			st.resume(&st.norm)
			norm.Add(decl.Item{
				Kind:   decl.ItemPassthrough,
				Sig:    &sig,
				Text:   c.Text(file),
				Tokens: c.Tokens,
				Span:   c.Span,
			})
			st.pause()
		}
	}
	timer.Add("lex+scan", st.scan)
	timer.Add("parse", st.parse)
	timer.Add("normalize", st.norm)

	if err := sc.Err(); err != nil {
		return nil, err
	}
	return norm.Items(), nil
}

// reportParseError turns a declarator error into a diagnostic of severity sev.
func reportParseError(r diag.Reporter, err error, sev diag.Severity, what string) {
	var perr *parser.Error
	if !errors.As(err, &perr) {
		return
	}
	msg := perr.Msg + "; " + what
	switch sev {
	case diag.SevError:
		diag.ReportError(r, perr.Code, perr.Span, msg).Emit()
	default:
		diag.ReportInfo(r, perr.Code, perr.Span, msg).Emit()
	}
}

// stageClock accumulates wall time per stage across interleaved calls.
type stageClock struct {
	scan, parse, norm time.Duration

	cur   *time.Duration
	start time.Time
}

func (c *stageClock) resume(d *time.Duration) {
	c.cur = d
	c.start = time.Now()
}

func (c *stageClock) pause() {
	if c.cur != nil {
		*c.cur += time.Since(c.start)
		c.cur = nil
	}
}

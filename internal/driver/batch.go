package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"stub2hdr/internal/diag"
	"stub2hdr/internal/observ"
	"stub2hdr/internal/source"
)

// Mode selects what happens to a generated header.
type Mode uint8

const (
	// ModeWrite writes headers under OutDir.
	ModeWrite Mode = iota
	// ModeCheck compares headers with the files under OutDir.
	ModeCheck
	// ModeStdout leaves headers in the results for the caller to print.
	ModeStdout
)

func (m Mode) String() string {
	switch m {
	case ModeWrite:
		return "write"
	case ModeCheck:
		return "check"
	case ModeStdout:
		return "stdout"
	default:
		return "unknown"
	}
}

type BatchOptions struct {
	Options
	// Jobs bounds concurrency; <= 0 uses GOMAXPROCS.
	Jobs   int
	Mode   Mode
	OutDir string
	// Cache may be nil.
	Cache *HeaderCache
	Sink  ProgressSink
	// Logger may be nil.
	Logger *zerolog.Logger
	// BaseDir is used to report paths; empty means the working directory.
	BaseDir string
}

// Batch holds the results of GenerateAll in input order.
type Batch struct {
	FileSet *source.FileSet
	Results []Result
	Timing  observ.Report
}

// Failed counts files without a usable header.
func (b *Batch) Failed() int {
	n := 0
	for i := range b.Results {
		if b.Results[i].Failed() {
			n++
		}
	}
	return n
}

// Stale counts headers that check mode found missing or out of date.
func (b *Batch) Stale() int {
	n := 0
	for i := range b.Results {
		if b.Results[i].Stale {
			n++
		}
	}
	return n
}

// OK reports whether every file succeeded and, in check mode, is current.
func (b *Batch) OK() bool {
	return b.Failed() == 0 && b.Stale() == 0
}

// GenerateAll processes inputs concurrently. A failing file never stops the
// others; the returned error is only set when ctx is cancelled.
func GenerateAll(ctx context.Context, inputs []Input, opts BatchOptions) (*Batch, error) {
	log := loggerOr(opts.Logger)
	fileSet := source.NewFileSetWithBase(opts.BaseDir)
	batch := &Batch{FileSet: fileSet, Results: make([]Result, len(inputs))}
	if len(inputs) == 0 {
		return batch, nil
	}

	// FileSet не потокобезопасен: все файлы грузятся заранее, по порядку
	fileIDs := make([]source.FileID, len(inputs))
	pending := make([]preError, len(inputs))
	owners := make(map[string]string, len(inputs))
	for i, in := range inputs {
		emitEvent(opts.Sink, Event{File: in.Path, Stage: StageLoad, Status: StatusQueued})
		id, err := fileSet.Load(in.Path)
		if err != nil {
			// пустой виртуальный файл, чтобы диагностика указывала на путь
			fileIDs[i] = fileSet.AddVirtual(in.Path, nil)
			pending[i] = preError{diag.IOLoadFileError, fmt.Errorf("load %s: %w", in.Path, err)}
			continue
		}
		fileIDs[i] = id
		if prev, ok := owners[in.OutputID]; ok {
			pending[i] = preError{diag.IOWriteError, fmt.Errorf("output %s is already generated from %s", in.OutputID, prev)}
			continue
		}
		owners[in.OutputID] = in.Path
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	fingerprint := opts.Fingerprint()
	var agg observ.Aggregate

	// индексы уникальны для каждой горутины, мьютекс не нужен
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(inputs)))

	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if pre := pending[i]; pre.err != nil {
				err := pre.err
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(pre.code, source.Span{File: fileIDs[i]}, err.Error()))
				batch.Results[i] = Result{Path: in.Path, OutputID: in.OutputID, FileID: fileIDs[i], Bag: bag, Err: err}
				emitEvent(opts.Sink, Event{File: in.Path, Stage: StageLoad, Status: StatusError, Err: err})
				log.Warn().Str("file", in.Path).Err(err).Msg("file skipped")
				return nil
			}

			started := time.Now()
			file := fileSet.Get(fileIDs[i])
			emitEvent(opts.Sink, Event{File: in.Path, Stage: StageGenerate, Status: StatusWorking})

			res := generateCached(file, in, fingerprint, opts, log)
			res.Path = in.Path
			status := StatusDone
			if res.Cached {
				status = StatusCached
			}
			if res.Failed() {
				batch.Results[i] = res
				emitEvent(opts.Sink, Event{File: in.Path, Stage: StageGenerate, Status: StatusError, Err: res.Err, Elapsed: time.Since(started)})
				log.Warn().Str("file", in.Path).Err(res.Err).Msg("no header generated")
				return nil
			}
			emitEvent(opts.Sink, Event{File: in.Path, Stage: StageGenerate, Status: status, Elapsed: time.Since(started)})

			writeStart := time.Now()
			deliver(&res, file, opts)
			if res.Timing != nil {
				res.Timing.Phases = append(res.Timing.Phases, observ.PhaseReport{
					Name:       "write",
					DurationMS: float64(time.Since(writeStart)) / float64(time.Millisecond),
				})
				res.Timing.TotalMS += res.Timing.Phases[len(res.Timing.Phases)-1].DurationMS
				agg.Merge(*res.Timing)
			}
			batch.Results[i] = res

			elapsed := time.Since(started)
			if res.Failed() {
				emitEvent(opts.Sink, Event{File: in.Path, Stage: StageWrite, Status: StatusError, Err: res.Err, Elapsed: elapsed})
				log.Warn().Str("file", in.Path).Err(res.Err).Msg("header not written")
				return nil
			}
			emitEvent(opts.Sink, Event{File: in.Path, Stage: StageWrite, Status: status, Elapsed: elapsed, Items: res.ItemCount})
			log.Debug().
				Str("file", in.Path).
				Int("items", res.ItemCount).
				Bool("cached", res.Cached).
				Bool("stale", res.Stale).
				Dur("elapsed", elapsed).
				Msg("header generated")
			return nil
		})
	}

	err := g.Wait()
	batch.Timing = agg.Report()
	return batch, err
}

// preError is a failure detected before the pipeline runs.
type preError struct {
	code diag.Code
	err  error
}

// generateCached consults the cache before running the pipeline.
// Only results without any diagnostics are stored.
func generateCached(file *source.File, in Input, fingerprint uint64, opts BatchOptions, log *zerolog.Logger) Result {
	key := CacheKey(file.Hash, in.OutputID, fingerprint)
	if opts.Cache != nil {
		entry, ok, err := opts.Cache.Get(key)
		switch {
		case err != nil:
			log.Debug().Str("file", in.Path).Err(err).Msg("cache read failed")
		case ok:
			return Result{
				Path:      in.Path,
				OutputID:  in.OutputID,
				FileID:    file.ID,
				Header:    entry.Header,
				ItemCount: entry.Items,
				Bag:       diag.NewBag(opts.MaxDiagnostics),
				Cached:    true,
				Timing:    &observ.Report{},
			}
		}
	}

	res := Generate(file, in.OutputID, opts.Options)
	if opts.Cache == nil || res.Failed() || res.Bag.Len() > 0 {
		return res
	}
	if err := opts.Cache.Put(key, &HeaderEntry{Header: res.Header, Items: res.ItemCount}); err != nil {
		diag.ReportWarning(diag.BagReporter{Bag: res.Bag}, diag.IOCacheError, source.Span{File: file.ID},
			"cannot store header in cache: "+err.Error()).Emit()
	}
	return res
}

// deliver writes or checks the header according to the mode.
func deliver(res *Result, file *source.File, opts BatchOptions) {
	if opts.Mode == ModeStdout {
		return
	}
	outDir := opts.OutDir
	if outDir == "" {
		outDir = "."
	}
	res.OutPath = filepath.Join(outDir, filepath.FromSlash(res.OutputID))
	at := source.Span{File: file.ID}

	switch opts.Mode {
	case ModeCheck:
		ok, err := CheckHeader(res.OutPath, res.Header)
		if err != nil {
			res.Err = err
			res.Bag.Add(diag.NewError(diag.IOWriteError, at, err.Error()))
			return
		}
		if !ok {
			res.Stale = true
			res.Bag.Add(diag.NewError(diag.IOStaleHeader, at,
				fmt.Sprintf("header %s is missing or out of date", res.OutPath)))
		}
	default:
		if _, err := WriteHeader(res.OutPath, res.Header); err != nil {
			res.Err = err
			res.Bag.Add(diag.NewError(diag.IOWriteError, at, err.Error()))
		}
	}
}

func loggerOr(l *zerolog.Logger) *zerolog.Logger {
	if l != nil {
		return l
	}
	nop := zerolog.Nop()
	return &nop
}

package pipeline

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/multierr"
)

var (
	// ErrInvalidThreads is returned for a negative thread count.
	ErrInvalidThreads = errors.New("thread count must be >= 0")
	// ErrNoInputs is returned when no input files are given.
	ErrNoInputs = errors.New("no input files")
)

// DedupOptions configures Deduplicate.
type DedupOptions struct {
	Inputs []string
	Output string
	Mode   KeyMode

	// Threads bounds the number of files processed at once. Zero uses
	// runtime.GOMAXPROCS(0).
	Threads int
	// LineWidth wraps written sequences. Zero means DefaultLineWidth and
	// NoWrap disables wrapping.
	LineWidth int
	// Shards is the number of lock stripes in the key set. Zero means one.
	Shards int

	Log logrus.FieldLogger
}

// FileOutcome reports what happened to one input file.
type FileOutcome struct {
	Path     string
	Records  int // records parsed
	Accepted int // records written
	Err      error
}

// DedupResult is the result of a Deduplicate call.
type DedupResult struct {
	Count int
	Files []FileOutcome
}

// Err combines the errors of every file that failed, or nil.
func (r *DedupResult) Err() error {
	var err error
	for _, f := range r.Files {
		if f.Err != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", f.Path, f.Err))
		}
	}
	return err
}

// Deduplicate writes the first record seen for every distinct key across
// all inputs to a single output. Files are spread over a worker pool owned
// by this call; each file is read sequentially by one worker, so records
// from one file keep their relative order. The key set is shared by all
// files.
//
// Only setup failures are returned as an error. A file that cannot be
// opened or read, or whose records cannot be written, is logged and
// reported in its FileOutcome while the other files carry on.
func Deduplicate(opts DedupOptions) (*DedupResult, error) {
	if len(opts.Inputs) == 0 {
		return nil, ErrNoInputs
	}
	threads, err := poolSize(opts.Threads)
	if err != nil {
		return nil, err
	}
	width, err := lineWidth(opts.LineWidth)
	if err != nil {
		return nil, err
	}
	log := logger(opts.Log)

	sink, err := CreateSink(opts.Output, width)
	if err != nil {
		return nil, err
	}

	d := &deduper{
		mode: opts.Mode,
		seen: NewSeenSet(opts.Shards),
		sink: sink,
		log:  log,
	}
	res := &DedupResult{Files: make([]FileOutcome, len(opts.Inputs))}

	p := pool.New().WithMaxGoroutines(threads)
	for i, path := range opts.Inputs {
		i, path := i, path
		p.Go(func() {
			res.Files[i] = d.file(path)
		})
	}
	p.Wait()

	res.Count = sink.Count()
	if err := sink.Close(); err != nil {
		return res, fmt.Errorf("close output %s: %w", opts.Output, err)
	}
	log.WithFields(logrus.Fields{
		"files":    len(opts.Inputs),
		"mode":     opts.Mode,
		"threads":  threads,
		"written":  res.Count,
		"distinct": d.seen.Len(),
	}).Debug("dedup finished")
	return res, nil
}

type deduper struct {
	mode KeyMode
	seen *SeenSet
	sink *Sink
	log  logrus.FieldLogger
}

// file runs one input end to end. Open and read failures end the file
// with whatever was accepted so far; a write failure stops the file at
// the failing record.
func (d *deduper) file(path string) FileOutcome {
	out := FileOutcome{Path: path}
	flog := d.log.WithField("file", path)

	r, err := OpenInput(path)
	if err != nil {
		flog.WithError(err).Warn("skipping input file")
		out.Err = fmt.Errorf("open: %w", err)
		return out
	}
	defer r.Close()

	p := NewParser(r)
	for p.Next() {
		rec := p.Record()
		out.Records++
		if !d.seen.Add(d.mode.Key(rec)) {
			continue
		}
		if err := d.sink.WriteRecord(rec); err != nil {
			flog.WithError(err).Warn("write failed, abandoning input file")
			out.Err = err
			return out
		}
		out.Accepted++
	}
	if err := p.Err(); err != nil {
		flog.WithError(err).Warn("read failed, input file truncated")
		out.Err = fmt.Errorf("read: %w", err)
		return out
	}
	flog.WithFields(logrus.Fields{
		"records":  out.Records,
		"accepted": out.Accepted,
	}).Debug("input file done")
	return out
}

// poolSize validates a requested thread count, substituting the number of
// CPUs for zero.
func poolSize(threads int) (int, error) {
	switch {
	case threads < 0:
		return 0, fmt.Errorf("configure worker pool: %w", ErrInvalidThreads)
	case threads == 0:
		return runtime.GOMAXPROCS(0), nil
	}
	return threads, nil
}

func logger(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return logrus.StandardLogger()
	}
	return l
}

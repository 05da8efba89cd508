package pipeline

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// TransformFunc rewrites one record. Returning an error aborts the run.
type TransformFunc func(Record) (Record, error)

// TransformOptions configures Transform.
type TransformOptions struct {
	Input     string
	Output    string
	LineWidth int

	Log logrus.FieldLogger
}

// Transform streams the records of one input through fn, in order, and
// writes each result. Records that come back with an empty sequence are
// dropped.
func Transform(opts TransformOptions, fn TransformFunc) (int, error) {
	width, err := lineWidth(opts.LineWidth)
	if err != nil {
		return 0, err
	}
	sink, err := CreateSink(opts.Output, width)
	if err != nil {
		return 0, err
	}
	err = transformInto(sink, opts.Input, fn)
	if cerr := sink.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close output %s: %w", opts.Output, cerr)
	}
	logger(opts.Log).WithFields(logrus.Fields{
		"file":    opts.Input,
		"written": sink.Count(),
	}).Debug("transform finished")
	return sink.Count(), err
}

func transformInto(sink *Sink, input string, fn TransformFunc) error {
	r, err := OpenInput(input)
	if err != nil {
		return fmt.Errorf("open input %s: %w", input, err)
	}
	defer r.Close()

	p := NewParser(r)
	for p.Next() {
		rec, err := fn(p.Record())
		if err != nil {
			return fmt.Errorf("%s line %d: %w", input, p.Line(), err)
		}
		if rec.Seq == "" {
			continue
		}
		if err := sink.WriteRecord(rec); err != nil {
			return err
		}
	}
	if err := p.Err(); err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	return nil
}

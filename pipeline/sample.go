package pipeline

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// ErrInvalidProportion is returned for a proportion outside (0, 1].
var ErrInvalidProportion = errors.New("proportion must be in (0, 1]")

// SampleOptions configures Sample. Exactly one of N and Proportion is
// used; Proportion wins when non-zero.
type SampleOptions struct {
	Input      string
	Output     string
	N          int
	Proportion float64
	// Seed fixes the random choice. Zero draws from the global source.
	Seed      uint64
	LineWidth int

	Log logrus.FieldLogger
}

// Sample writes a uniform random subset of the input's records, without
// replacement, keeping their input order. Asking for more records than
// the input holds writes all of them.
func Sample(opts SampleOptions) (int, error) {
	if opts.Proportion != 0 && (opts.Proportion < 0 || opts.Proportion > 1) {
		return 0, ErrInvalidProportion
	}
	if opts.N < 0 {
		return 0, fmt.Errorf("sample size must be >= 0, got %d", opts.N)
	}
	width, err := lineWidth(opts.LineWidth)
	if err != nil {
		return 0, err
	}

	recs, err := ReadFile(opts.Input)
	if err != nil {
		return 0, fmt.Errorf("read input %s: %w", opts.Input, err)
	}

	n := opts.N
	if opts.Proportion != 0 {
		n = int(math.Round(float64(len(recs)) * opts.Proportion))
	}
	chosen := choose(len(recs), n, opts.Seed)

	sink, err := CreateSink(opts.Output, width)
	if err != nil {
		return 0, err
	}
	for _, i := range chosen {
		if err = sink.WriteRecord(recs[i]); err != nil {
			break
		}
	}
	if cerr := sink.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close output %s: %w", opts.Output, cerr)
	}
	logger(opts.Log).WithFields(logrus.Fields{
		"file":    opts.Input,
		"records": len(recs),
		"written": sink.Count(),
	}).Debug("sample finished")
	return sink.Count(), err
}

// choose returns min(n, total) distinct indices in [0, total), sorted.
func choose(total, n int, seed uint64) []int {
	if n > total {
		n = total
	}
	idx := make([]int, n)
	if n == 0 {
		return idx
	}
	var src rand.Source
	if seed != 0 {
		src = rand.NewSource(seed)
	}
	sampleuv.WithoutReplacement(idx, total, src)
	sort.Ints(idx)
	return idx
}

package pipeline

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Matcher selects records by header substring.
type Matcher struct {
	Patterns   []string
	Invert     bool
	IgnoreCase bool
}

// NewMatcher prepares a matcher; with ignoreCase the patterns are folded
// once up front.
func NewMatcher(patterns []string, invert, ignoreCase bool) *Matcher {
	m := &Matcher{Invert: invert, IgnoreCase: ignoreCase}
	m.Patterns = make([]string, len(patterns))
	for i, pat := range patterns {
		if ignoreCase {
			pat = strings.ToLower(pat)
		}
		m.Patterns[i] = pat
	}
	return m
}

// Matches reports whether any pattern occurs in header.
func (m *Matcher) Matches(header string) bool {
	if m.IgnoreCase {
		header = strings.ToLower(header)
	}
	for _, pat := range m.Patterns {
		if strings.Contains(header, pat) {
			return true
		}
	}
	return false
}

// Keep is Matches xor Invert.
func (m *Matcher) Keep(header string) bool {
	return m.Matches(header) != m.Invert
}

// FilterOptions configures Filter.
type FilterOptions struct {
	Input      string
	Output     string
	Patterns   []string
	Invert     bool
	IgnoreCase bool

	// Threads is validated like DedupOptions.Threads but a single input is
	// always scanned sequentially to keep record order.
	Threads   int
	LineWidth int

	Log logrus.FieldLogger
}

// Filter copies the records of one input whose header matches any of the
// patterns (or none of them, when inverted) to the output, in input order.
// Any read or write failure aborts the call.
func Filter(opts FilterOptions) (int, error) {
	if _, err := poolSize(opts.Threads); err != nil {
		return 0, err
	}
	width, err := lineWidth(opts.LineWidth)
	if err != nil {
		return 0, err
	}
	log := logger(opts.Log)

	sink, err := CreateSink(opts.Output, width)
	if err != nil {
		return 0, err
	}
	n, err := filterInto(sink, opts)
	if cerr := sink.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close output %s: %w", opts.Output, cerr)
	}
	if err != nil {
		return n, err
	}
	log.WithFields(logrus.Fields{
		"file":     opts.Input,
		"patterns": len(opts.Patterns),
		"invert":   opts.Invert,
		"written":  n,
	}).Debug("filter finished")
	return n, nil
}

func filterInto(sink *Sink, opts FilterOptions) (int, error) {
	r, err := OpenInput(opts.Input)
	if err != nil {
		return 0, fmt.Errorf("open input %s: %w", opts.Input, err)
	}
	defer r.Close()

	m := NewMatcher(opts.Patterns, opts.Invert, opts.IgnoreCase)
	p := NewParser(r)
	for p.Next() {
		rec := p.Record()
		if !m.Keep(rec.Header) {
			continue
		}
		if err := sink.WriteRecord(rec); err != nil {
			return sink.Count(), err
		}
	}
	if err := p.Err(); err != nil {
		return sink.Count(), fmt.Errorf("read %s: %w", opts.Input, err)
	}
	return sink.Count(), nil
}

package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/xopen"
	"go.uber.org/atomic"
)

const (
	// DefaultLineWidth is the sequence wrap width used when none is given.
	DefaultLineWidth = 60
	// NoWrap in an options LineWidth writes each sequence on one line.
	NoWrap = -1
)

// ErrInvalidWidth is returned for a negative line width.
var ErrInvalidWidth = errors.New("line width must be >= 0")

// Sink serializes whole records onto one writer. Each WriteRecord call
// holds the sink lock for the header and every sequence line, so records
// from different goroutines never interleave.
type Sink struct {
	mu    sync.Mutex
	w     io.Writer
	c     io.Closer
	width int
	count atomic.Int64
}

// NewSink wraps w. A width of 0 writes each sequence on a single line.
func NewSink(w io.Writer, width int) (*Sink, error) {
	if width < 0 {
		return nil, ErrInvalidWidth
	}
	s := &Sink{w: w, width: width}
	if c, ok := w.(io.Closer); ok {
		s.c = c
	}
	return s, nil
}

// CreateSink creates (or truncates) the file at path. "-" is stdout and a
// compression suffix such as .gz selects a compressed stream.
func CreateSink(path string, width int) (*Sink, error) {
	if width < 0 {
		return nil, ErrInvalidWidth
	}
	// xopen creates missing parent directories; an output whose
	// directory does not exist is a setup error here.
	if path != "-" {
		dir := filepath.Dir(path)
		fi, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("create output %s: %w", path, err)
		}
		if !fi.IsDir() {
			return nil, fmt.Errorf("create output %s: %s is not a directory", path, dir)
		}
	}
	w, err := xopen.Wopen(path)
	if err != nil {
		return nil, fmt.Errorf("create output %s: %w", path, err)
	}
	return NewSink(w, width)
}

// WriteRecord appends rec and increments the record count on success.
func (s *Sink) WriteRecord(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.w, "%c%s\n", Marker, rec.Header); err != nil {
		return fmt.Errorf("write header %q: %w", rec.Header, err)
	}
	if _, err := s.w.Write(append(formatSeq(rec.Seq, s.width), '\n')); err != nil {
		return fmt.Errorf("write sequence of %q: %w", rec.Header, err)
	}
	s.count.Inc()
	return nil
}

// Count returns the number of records written.
func (s *Sink) Count() int { return int(s.count.Load()) }

// Close flushes and closes the underlying writer when it is closable.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c == nil {
		return nil
	}
	c := s.c
	s.c = nil
	return c.Close()
}

// lineWidth maps an options LineWidth onto a sink width: zero is the
// default, NoWrap is unwrapped.
func lineWidth(w int) (int, error) {
	switch {
	case w == 0:
		return DefaultLineWidth, nil
	case w == NoWrap:
		return 0, nil
	case w < 0:
		return 0, ErrInvalidWidth
	}
	return w, nil
}

// formatSeq returns seq with a newline every width bytes and no trailing
// newline. Width 0 returns seq whole. Non-ASCII sequences are cut on
// character boundaries.
func formatSeq(s string, width int) []byte {
	if width == 0 || len(s) <= width {
		return []byte(s)
	}
	if !isASCII(s) {
		return []byte(strings.Join(wrap(s, width), "\n"))
	}
	sq := &seq.Seq{Alphabet: seq.Unlimit, Seq: []byte(s)}
	return bytes.TrimSuffix(sq.FormatSeq(width), []byte{'\n'})
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// wrap splits s into chunks of at most width bytes without splitting a
// character. A character wider than width gets a chunk of its own.
func wrap(s string, width int) []string {
	if width == 0 || len(s) <= width {
		return []string{s}
	}
	chunks := make([]string, 0, (len(s)+width-1)/width)
	for len(s) > width {
		cut := width
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		if cut == 0 {
			_, cut = utf8.DecodeRuneInString(s)
		}
		chunks = append(chunks, s[:cut])
		s = s[cut:]
	}
	if len(s) > 0 {
		chunks = append(chunks, s)
	}
	return chunks
}

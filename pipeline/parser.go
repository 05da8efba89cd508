package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Marker starts every header line.
const Marker = '>'

// ErrInvalidUTF8 is returned by a Parser that reads a line that is not
// valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 in input")

// Record is one header/sequence pair. The header has the marker stripped.
type Record struct {
	Header string
	Seq    string
}

// ID returns the first whitespace-delimited token of the header, or the
// empty string if the header has none.
func (r Record) ID() string {
	if f := strings.Fields(r.Header); len(f) > 0 {
		return f[0]
	}
	return ""
}

// Parser reconstructs records from a line stream. A record is only
// emitted once its sequence is non-empty; sequence lines seen before the
// first header are ignored.
//
// Usage mirrors bufio.Scanner:
//
//	p := NewParser(r)
//	for p.Next() {
//		rec := p.Record()
//	}
//	if err := p.Err(); err != nil { ... }
type Parser struct {
	r    *bufio.Reader
	line int

	open   bool
	header string
	seq    strings.Builder

	rec  Record
	err  error
	done bool
}

func NewParser(r io.Reader) *Parser {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Parser{r: br}
}

// Next advances to the next complete record. It returns false at end of
// input or on a read error.
func (p *Parser) Next() bool {
	for !p.done {
		line, err := p.r.ReadString('\n')
		if len(line) > 0 {
			p.line++
			if !utf8.ValidString(line) {
				p.err = fmt.Errorf("line %d: %w", p.line, ErrInvalidUTF8)
				p.done = true
				return false
			}
			if p.consume(line) {
				if err != nil {
					p.finish(err)
				}
				return true
			}
		}
		if err != nil {
			p.finish(err)
			if p.emit() {
				return true
			}
		}
	}
	return false
}

// Record returns the most recent record produced by Next.
func (p *Parser) Record() Record { return p.rec }

// Err returns the first non-EOF error encountered.
func (p *Parser) Err() error { return p.err }

// Line returns the number of lines read so far.
func (p *Parser) Line() int { return p.line }

// consume feeds one line to the state machine and reports whether a
// record became ready.
func (p *Parser) consume(line string) bool {
	if line[0] == Marker {
		ready := p.emit()
		p.open = true
		p.header = strings.TrimSpace(line[1:])
		p.seq.Reset()
		return ready
	}
	if p.open {
		p.seq.WriteString(strings.TrimSpace(line))
	}
	return false
}

// emit closes the open record, if any, and publishes it when its sequence
// is non-empty.
func (p *Parser) emit() bool {
	if !p.open {
		return false
	}
	p.open = false
	if p.seq.Len() == 0 {
		return false
	}
	p.rec = Record{Header: p.header, Seq: p.seq.String()}
	p.seq.Reset()
	return true
}

func (p *Parser) finish(err error) {
	p.done = true
	if err != io.EOF {
		p.err = err
	}
}

// ReadAll parses every record from r.
func ReadAll(r io.Reader) ([]Record, error) {
	var recs []Record
	p := NewParser(r)
	for p.Next() {
		recs = append(recs, p.Record())
	}
	return recs, p.Err()
}

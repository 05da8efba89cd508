package seqmath

import (
	"fmt"
	"strings"

	"github.com/shenwei356/bio/seq"
)

// ReverseComplement upper-cases s and returns its reverse complement over
// the IUPAC DNA alphabet. Letters outside that alphabet are an error.
func ReverseComplement(s string) (string, error) {
	sq, err := seq.NewSeq(seq.DNAredundant, []byte(strings.ToUpper(s)))
	if err != nil {
		return "", fmt.Errorf("reverse complement: %w", err)
	}
	return string(sq.RevCom().Seq), nil
}

// Translate translates a nucleotide sequence with the NCBI genetic code
// table in reading frame 1, 2, 3 or -1, -2, -3. Stop codons are kept as
// '*'.
func Translate(s string, table, frame int) (string, error) {
	if frame == 0 || frame < -3 || frame > 3 {
		return "", fmt.Errorf("translate: invalid frame %d", frame)
	}
	if _, ok := seq.CodonTables[table]; !ok {
		return "", fmt.Errorf("translate: unknown genetic code %d", table)
	}
	sq, err := seq.NewSeq(seq.DNAredundant, []byte(strings.ToUpper(s)))
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	p, err := sq.Translate(table, frame, false, false, true, false)
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	return string(p.Seq), nil
}

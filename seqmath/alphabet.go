package seqmath

import (
	"github.com/biogo/biogo/alphabet"
)

// Class is the narrowest alphabet a sequence fits in.
type Class string

const (
	DNA       Class = "dna"
	RNA       Class = "rna"
	Ambiguous Class = "dna-iupac"
	Protein   Class = "protein"
	Unknown   Class = "unknown"
)

var classes = []struct {
	class Class
	alpha alphabet.Alphabet
}{
	{DNA, alphabet.DNA},
	{RNA, alphabet.RNA},
	{Ambiguous, alphabet.DNAredundant},
	{Protein, alphabet.Protein},
}

// Classify returns the first of dna, rna, dna-iupac and protein whose
// alphabet accepts every letter of s, ignoring case.
func Classify(s string) Class {
	if len(s) == 0 {
		return Unknown
	}
	l := alphabet.BytesToLetters([]byte(s))
	for _, c := range classes {
		if ok, _ := c.alpha.AllValid(l); ok {
			return c.class
		}
	}
	return Unknown
}

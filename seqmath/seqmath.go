package seqmath

import (
	"sort"
	"strings"

	"github.com/shenwei356/bio/seq"
)

// Counts holds per-base tallies, case-folded. Other letters are ignored.
type Counts struct {
	A, C, G, T, U, N int
}

// Total is the number of counted bases.
func (c Counts) Total() int { return c.A + c.C + c.G + c.T + c.U + c.N }

// Add accumulates o into c.
func (c *Counts) Add(o Counts) {
	c.A += o.A
	c.C += o.C
	c.G += o.G
	c.T += o.T
	c.U += o.U
	c.N += o.N
}

func CountBases(s string) (c Counts) {
	for i := 0; i < len(s); i++ {
		switch s[i] | 0x20 {
		case 'a':
			c.A++
		case 'c':
			c.C++
		case 'g':
			c.G++
		case 't':
			c.T++
		case 'u':
			c.U++
		case 'n':
			c.N++
		}
	}
	return c
}

// GC returns the fraction of G and C over the whole sequence length, or 0
// for an empty sequence.
func GC(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	sq := &seq.Seq{Alphabet: seq.Unlimit, Seq: []byte(strings.ToUpper(s))}
	return sq.BaseContent("GC")
}

// Nxx returns N0..N99 for the given sequence lengths: nxx[x] is the length
// of the shortest sequence among the longest ones that together cover at
// least x percent of total. seqLens is left untouched.
func Nxx(seqLens []int, total int) []int {
	nxx := make([]int, 100)
	desc := append([]int(nil), seqLens...)
	sort.Sort(sort.Reverse(sort.IntSlice(desc)))

	cum, x := 0, 1
	for _, l := range desc {
		cum += l
		for ; x < len(nxx) && cum*100 >= x*total; x++ {
			nxx[x] = l
		}
	}
	return nxx
}

// Median of a sorted slice of lengths; 0 when empty.
func Median(seqLens []int) (median int) {
	var n = len(seqLens)

	switch {
	case n == 0:
		return 0
	case n&1 == 1:
		return seqLens[n/2]
	default:
		return (seqLens[n/2] + seqLens[n/2-1]) / 2
	}
}

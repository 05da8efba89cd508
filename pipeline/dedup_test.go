package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	check "gopkg.in/check.v1"
)

func (s *S) dedup(c *check.C, mode KeyMode, threads int, inputs ...string) *DedupResult {
	res, err := Deduplicate(DedupOptions{
		Inputs:  inputs,
		Output:  s.path("out.fa"),
		Mode:    mode,
		Threads: threads,
		Log:     s.log,
	})
	c.Assert(err, check.IsNil)
	return res
}

func (s *S) TestDedupBySequence(c *check.C) {
	in := s.write(c, "in.fa", ">a\nACGT\n>b\nacgt\n>c\nACGG\n")
	res := s.dedup(c, BySequence, 1, in)
	c.Check(res.Count, check.Equals, 2)
	c.Check(s.read(c, "out.fa"), check.Equals, ">a\nACGT\n>c\nACGG\n")
	c.Check(res.Err(), check.IsNil)
	c.Check(res.Files, check.DeepEquals, []FileOutcome{{Path: in, Records: 3, Accepted: 2}})
}

func (s *S) TestDedupByIDIsCaseSensitive(c *check.C) {
	in := s.write(c, "in.fa", ">seq1 first\nAAAA\n>seq1 second\nCCCC\n>SEQ1\nGGGG\n>seq2\nAAAA\n")
	res := s.dedup(c, ByID, 1, in)
	c.Check(res.Count, check.Equals, 3)
	c.Check(s.read(c, "out.fa"), check.Equals, ">seq1 first\nAAAA\n>SEQ1\nGGGG\n>seq2\nAAAA\n")
}

func (s *S) TestDedupAcrossFiles(c *check.C) {
	a := s.write(c, "a.fa", ">a1\nAAAA\n>a2\nCCCC\n")
	b := s.write(c, "b.fa", ">b1\ncccc\n>b2\nGGGG\n")
	res := s.dedup(c, BySequence, 2, a, b)
	c.Check(res.Count, check.Equals, 3)

	pos := make(map[string]int)
	for i, r := range s.records(c, "out.fa") {
		pos[r.Header] = i
	}
	c.Assert(pos, check.HasLen, 3)
	_, hasA2 := pos["a2"]
	_, hasB1 := pos["b1"]
	// CCCC and cccc share a key: exactly one of them survives.
	c.Check(hasA2 != hasB1, check.Equals, true)
	if hasA2 {
		c.Check(pos["a1"] < pos["a2"], check.Equals, true)
	} else {
		c.Check(pos["b1"] < pos["b2"], check.Equals, true)
	}
}

func (s *S) TestDedupMissingFileIsSkipped(c *check.C) {
	a := s.write(c, "a.fa", ">a1\nAAAA\n")
	missing := s.path("nope.fa")
	b := s.write(c, "b.fa", ">b1\nTTTT\n")
	res := s.dedup(c, BySequence, 0, a, missing, b)

	c.Check(res.Count, check.Equals, 2)
	c.Check(res.Files[0].Err, check.IsNil)
	c.Check(res.Files[1].Err, check.NotNil)
	c.Check(res.Files[1].Records, check.Equals, 0)
	c.Check(res.Files[2].Accepted, check.Equals, 1)
	c.Check(res.Err(), check.ErrorMatches, ".*nope.fa: open: .*")
	c.Check(s.records(c, "out.fa"), check.HasLen, 2)
}

func (s *S) TestDedupPermutationInvariant(c *check.C) {
	// 40 records over 20 distinct sequences, the second half lower-cased.
	var all []Record
	for i := 0; i < 40; i++ {
		seq := "ACGT" + baseFour(i%20, 5)
		if i >= 20 {
			seq = strings.ToLower(seq)
		}
		all = append(all, Record{fmt.Sprintf("r%d", i), seq})
	}

	for _, split := range []int{1, 3, 7} {
		for _, threads := range []int{1, 2, 8} {
			files := make([]string, split)
			parts := make([]strings.Builder, split)
			for i, r := range all {
				fmt.Fprintf(&parts[(i*7)%split], ">%s\n%s\n", r.Header, r.Seq)
			}
			for i := range files {
				files[i] = s.write(c, fmt.Sprintf("part%d_%d_%d.fa", split, threads, i), parts[i].String())
			}
			res := s.dedup(c, BySequence, threads, files...)
			recs := s.records(c, "out.fa")
			comment := check.Commentf("split=%d threads=%d", split, threads)
			c.Check(res.Count, check.Equals, 20, comment)
			c.Check(recs, check.HasLen, res.Count, comment)

			keys := make(map[string]bool)
			for _, r := range recs {
				k := strings.ToUpper(r.Seq)
				c.Check(keys[k], check.Equals, false, comment)
				keys[k] = true
			}
			c.Check(keys, check.HasLen, 20, comment)
		}
	}
}

func (s *S) TestDedupSetupErrors(c *check.C) {
	in := s.write(c, "in.fa", ">a\nAC\n")

	_, err := Deduplicate(DedupOptions{Inputs: []string{in}, Output: s.path("o.fa"), Threads: -1, Log: s.log})
	c.Check(errors.Is(err, ErrInvalidThreads), check.Equals, true)
	_, statErr := os.Stat(s.path("o.fa"))
	c.Check(os.IsNotExist(statErr), check.Equals, true)

	_, err = Deduplicate(DedupOptions{Output: s.path("o.fa"), Log: s.log})
	c.Check(err, check.Equals, ErrNoInputs)

	_, err = Deduplicate(DedupOptions{Inputs: []string{in}, Output: s.path("no/such/dir/o.fa"), Log: s.log})
	c.Check(err, check.ErrorMatches, "create output .*")
	_, statErr = os.Stat(s.path("no"))
	c.Check(os.IsNotExist(statErr), check.Equals, true)

	_, err = Deduplicate(DedupOptions{Inputs: []string{in}, Output: filepath.Join(in, "o.fa"), Log: s.log})
	c.Check(err, check.ErrorMatches, "create output .*")
}

func (s *S) TestPoolSize(c *check.C) {
	n, err := poolSize(0)
	c.Check(err, check.IsNil)
	c.Check(n, check.Equals, runtime.GOMAXPROCS(0))
	n, err = poolSize(3)
	c.Check(err, check.IsNil)
	c.Check(n, check.Equals, 3)
}

func (s *S) TestDedupWriteFailure(c *check.C) {
	if _, err := os.Stat("/dev/full"); err != nil {
		c.Skip("no /dev/full")
	}
	var b strings.Builder
	for i := 0; i < 400; i++ {
		fmt.Fprintf(&b, ">r%d\n%s%d\n", i, strings.Repeat("ACGT", 1250), i)
	}
	a := s.write(c, "a.fa", b.String())
	res, err := Deduplicate(DedupOptions{
		Inputs: []string{a},
		Output: "/dev/full",
		Mode:   ByID,
		Log:    s.log,
	})
	c.Check(err, check.NotNil)
	c.Assert(res, check.NotNil)
	c.Check(res.Files[0].Err, check.NotNil)
	c.Check(res.Files[0].Accepted < 400, check.Equals, true)
}

// baseFour spells n in base four over ACGT, zero-padded to width letters.
func baseFour(n, width int) string {
	b := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		b[i] = "ACGT"[n%4]
		n /= 4
	}
	return string(b)
}

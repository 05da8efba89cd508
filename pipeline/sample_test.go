package pipeline

import (
	"fmt"
	"strings"

	check "gopkg.in/check.v1"
)

func (s *S) sampleInput(c *check.C, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, ">s%03d\n%s\n", i, baseFour(i, 6))
	}
	return s.write(c, "in.fa", b.String())
}

func (s *S) TestSampleCount(c *check.C) {
	in := s.sampleInput(c, 50)
	n, err := Sample(SampleOptions{Input: in, Output: s.path("out.fa"), N: 10, Seed: 7, Log: s.log})
	c.Assert(err, check.IsNil)
	c.Check(n, check.Equals, 10)

	recs := s.records(c, "out.fa")
	c.Assert(recs, check.HasLen, 10)
	for i := 1; i < len(recs); i++ {
		c.Check(recs[i-1].Header < recs[i].Header, check.Equals, true)
	}

	// Same seed, same sample.
	_, err = Sample(SampleOptions{Input: in, Output: s.path("again.fa"), N: 10, Seed: 7, Log: s.log})
	c.Assert(err, check.IsNil)
	c.Check(s.read(c, "again.fa"), check.Equals, s.read(c, "out.fa"))
}

func (s *S) TestSampleClampsToInput(c *check.C) {
	in := s.sampleInput(c, 5)
	n, err := Sample(SampleOptions{Input: in, Output: s.path("out.fa"), N: 100, Log: s.log})
	c.Assert(err, check.IsNil)
	c.Check(n, check.Equals, 5)
	c.Check(s.read(c, "out.fa"), check.Equals, s.read(c, "in.fa"))
}

func (s *S) TestSampleProportion(c *check.C) {
	in := s.sampleInput(c, 9)
	n, err := Sample(SampleOptions{Input: in, Output: s.path("out.fa"), Proportion: 0.5, Seed: 1, Log: s.log})
	c.Assert(err, check.IsNil)
	c.Check(n, check.Equals, 5)
	c.Check(s.records(c, "out.fa"), check.HasLen, 5)

	for _, p := range []float64{-0.1, 1.5} {
		_, err = Sample(SampleOptions{Input: in, Output: s.path("bad.fa"), Proportion: p, Log: s.log})
		c.Check(err, check.Equals, ErrInvalidProportion)
	}
}

func (s *S) TestChoose(c *check.C) {
	c.Check(choose(0, 3, 1), check.HasLen, 0)
	idx := choose(100, 30, 42)
	c.Assert(idx, check.HasLen, 30)
	for i, v := range idx {
		c.Check(v >= 0 && v < 100, check.Equals, true)
		if i > 0 {
			c.Check(idx[i-1] < v, check.Equals, true)
		}
	}
}

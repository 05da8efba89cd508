package pipeline

import (
	"fmt"
	"sync"

	check "gopkg.in/check.v1"
	"go.uber.org/atomic"
)

func (s *S) TestSeenSetAdd(c *check.C) {
	set := NewSeenSet(0)
	c.Check(set.Add("ACGT"), check.Equals, true)
	c.Check(set.Add("ACGT"), check.Equals, false)
	c.Check(set.Add("acgt"), check.Equals, true)
	c.Check(set.Add(""), check.Equals, true)
	c.Check(set.Add(""), check.Equals, false)
	c.Check(set.Len(), check.Equals, 3)
}

func (s *S) TestSeenSetConcurrent(c *check.C) {
	const (
		workers = 32
		keys    = 500
	)
	for _, shards := range []int{1, 4, 17} {
		set := NewSeenSet(shards)
		var won atomic.Int64
		var wg sync.WaitGroup
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()
				for k := 0; k < keys; k++ {
					if set.Add(fmt.Sprint("key", k)) {
						won.Inc()
					}
				}
			}()
		}
		wg.Wait()
		c.Check(won.Load(), check.Equals, int64(keys), check.Commentf("shards=%d", shards))
		c.Check(set.Len(), check.Equals, keys, check.Commentf("shards=%d", shards))
	}
}

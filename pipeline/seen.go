package pipeline

import (
	"hash/maphash"
	"sync"
)

// SeenSet is a set of keys shared by concurrent workers. Keys are
// striped across shards, each behind its own mutex; a single shard gives
// one coarse lock.
type SeenSet struct {
	seed   maphash.Seed
	shards []seenShard
}

type seenShard struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

// NewSeenSet returns an empty set with the given number of shards. Values
// below one are treated as one.
func NewSeenSet(shards int) *SeenSet {
	if shards < 1 {
		shards = 1
	}
	s := &SeenSet{seed: maphash.MakeSeed(), shards: make([]seenShard, shards)}
	for i := range s.shards {
		s.shards[i].keys = make(map[string]struct{})
	}
	return s
}

// Add inserts key and reports whether it was absent. The lookup and the
// insert happen under the same lock, so exactly one caller wins a key.
func (s *SeenSet) Add(key string) bool {
	sh := s.shard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if _, ok := sh.keys[key]; ok {
		return false
	}
	sh.keys[key] = struct{}{}
	return true
}

// Len returns the number of distinct keys inserted so far.
func (s *SeenSet) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		n += len(sh.keys)
		sh.mu.Unlock()
	}
	return n
}

func (s *SeenSet) shard(key string) *seenShard {
	if len(s.shards) == 1 {
		return &s.shards[0]
	}
	return &s.shards[maphash.String(s.seed, key)%uint64(len(s.shards))]
}

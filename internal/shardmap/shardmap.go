// Package shardmap implements a sharded keyed multimap: a mapping keyed by
// discriminator, partitioned across a fixed number of shards, each guarded
// by its own mutex, so that many concurrent workers regrouping candidates by
// size, partial digest, or full digest don't contend on a single lock.
package shardmap

import (
	"sync"

	"golang.org/x/exp/maps"
)

// shardCount is the number of independent partitions. A power of two keeps
// the modulo a cheap mask.
const shardCount = 32

// HashFunc maps a key to a shard-distributing hash. Callers own collision
// behavior: two distinct keys hashing identically just share a shard, which
// only costs a little extra lock contention, never correctness, since the
// shard's own map still distinguishes keys by equality.
type HashFunc[K comparable] func(K) uint64

// Map is a concurrency-safe multimap from K to a slice of V, sharded by
// HashFunc(K). The zero value is not usable; use [New].
type Map[K comparable, V any] struct {
	hash   HashFunc[K]
	shards [shardCount]shard[K, V]
}

type shard[K comparable, V any] struct {
	mu   sync.Mutex
	data map[K][]V
}

// New returns an empty Map sharded by hash.
func New[K comparable, V any](hash HashFunc[K]) *Map[K, V] {
	m := &Map[K, V]{hash: hash}
	for i := range m.shards {
		m.shards[i].data = make(map[K][]V)
	}
	return m
}

// Append adds v to the slice stored under key, creating it if necessary.
func (m *Map[K, V]) Append(key K, v V) {
	s := &m.shards[m.hash(key)%shardCount]
	s.mu.Lock()
	s.data[key] = append(s.data[key], v)
	s.mu.Unlock()
}

// Groups returns every stored slice with length >= minSize. The order of
// the returned slice is unspecified; callers that need determinism must sort
// afterward.
func (m *Map[K, V]) Groups(minSize int) [][]V {
	var out [][]V
	for _, e := range m.Entries(minSize) {
		out = append(out, e.Values)
	}
	return out
}

// Entry pairs a discriminator key with every value stored under it.
type Entry[K comparable, V any] struct {
	Key    K
	Values []V
}

// Entries returns every (key, values) pair with len(values) >= minSize. The
// order is unspecified; callers that need determinism must sort afterward.
func (m *Map[K, V]) Entries(minSize int) []Entry[K, V] {
	var out []Entry[K, V]
	for i := range m.shards {
		s := &m.shards[i]
		s.mu.Lock()
		for key, values := range s.data {
			if len(values) >= minSize {
				out = append(out, Entry[K, V]{Key: key, Values: values})
			}
		}
		s.mu.Unlock()
	}
	return out
}

// Keys returns every distinct key currently stored, across all shards,
// regardless of its group's size.
func (m *Map[K, V]) Keys() []K {
	var out []K
	for i := range m.shards {
		s := &m.shards[i]
		s.mu.Lock()
		out = append(out, maps.Keys(s.data)...)
		s.mu.Unlock()
	}
	return out
}

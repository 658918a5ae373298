// Package sizegroup buckets FileEntry values by exact byte size, discarding
// buckets with fewer than two members, using a sharded aggregator rather
// than a single goroutine draining one channel.
package sizegroup

import (
	"sort"

	"github.com/filetools/dupfind/internal/metrics"
	"github.com/filetools/dupfind/internal/model"
	"github.com/filetools/dupfind/internal/shardmap"
)

// Group buckets entries by size and returns every bucket with cardinality
// >= 2. m.total_files and m.total_bytes are updated to reflect every entry
// seen, survivors or not.
func Group(entries []model.FileEntry, m *metrics.Metrics) []model.CandidateGroup {
	m.AddTotalFiles(uint64(len(entries)))

	bySize := shardmap.New[int64, model.FileEntry](func(size int64) uint64 { return uint64(size) })
	for _, e := range entries {
		m.AddTotalBytes(uint64(e.Size))
		bySize.Append(e.Size, e)
	}

	buckets := bySize.Groups(2)
	groups := make([]model.CandidateGroup, 0, len(buckets))
	for _, files := range buckets {
		groups = append(groups, model.CandidateGroup{Files: files})
	}
	m.AddCandidateGroups(uint64(len(groups)))

	// Deterministic ordering isn't required by this stage's contract (only
	// the final report must sort deterministically), but a stable order
	// makes downstream stage dispatch reproducible for tests and avoids
	// depending on map iteration order leaking through.
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Size() < groups[j].Size()
	})

	return groups
}

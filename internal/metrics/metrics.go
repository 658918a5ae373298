// Package metrics accumulates the monotonic counters produced during a
// pipeline run, using a cache-line-padded atomic-counter layout so that the
// hot counters incremented from many goroutines (bytes hashed, errors)
// don't false share a cache line.
package metrics

import (
	"sync/atomic"
	"time"
)

// minCacheLineSize is the minimum cache line size, used to prevent false
// sharing. Smaller values have an insignificant effect on memory usage.
// Larger values help separate values into separate cache lines.
const minCacheLineSize = 128

// Metrics holds every counter produced while a scan runs. All counters are
// independent and updated with ordinary atomic adds; no cross-counter
// coordination is required because a [Report] only observes them after every
// stage has quiesced.
type Metrics struct {
	totalFiles uint64
	_          [minCacheLineSize - 8]byte
	totalBytes uint64
	_          [minCacheLineSize - 8]byte
	candidateGroups uint64
	_               [minCacheLineSize - 8]byte
	partialGroups uint64
	_             [minCacheLineSize - 8]byte
	duplicateGroups uint64
	_               [minCacheLineSize - 8]byte
	duplicateFiles uint64
	_              [minCacheLineSize - 8]byte
	reclaimableBytes uint64
	_                [minCacheLineSize - 8]byte
	bytesHashedPartial uint64
	_                  [minCacheLineSize - 8]byte
	bytesHashedFull uint64
	_               [minCacheLineSize - 8]byte
	errors uint64
	_      [minCacheLineSize - 8]byte

	// Stage timers are written exactly once each, by the single pipeline
	// goroutine that owns that stage, after the stage has fully drained.
	// They don't need atomics, but storing them as atomics keeps the type
	// safe to read concurrently from a progress callback mid-run.
	stage1Nanos atomic.Int64
	stage2Nanos atomic.Int64
	stage3Nanos atomic.Int64
	totalNanos  atomic.Int64
}

func (m *Metrics) AddTotalFiles(n uint64)         { atomic.AddUint64(&m.totalFiles, n) }
func (m *Metrics) AddTotalBytes(n uint64)         { atomic.AddUint64(&m.totalBytes, n) }
func (m *Metrics) AddCandidateGroups(n uint64)    { atomic.AddUint64(&m.candidateGroups, n) }
func (m *Metrics) AddPartialGroups(n uint64)      { atomic.AddUint64(&m.partialGroups, n) }
func (m *Metrics) AddDuplicateGroups(n uint64)    { atomic.AddUint64(&m.duplicateGroups, n) }
func (m *Metrics) AddDuplicateFiles(n uint64)     { atomic.AddUint64(&m.duplicateFiles, n) }
func (m *Metrics) AddReclaimableBytes(n uint64)   { atomic.AddUint64(&m.reclaimableBytes, n) }
func (m *Metrics) AddBytesHashedPartial(n uint64) { atomic.AddUint64(&m.bytesHashedPartial, n) }
func (m *Metrics) AddBytesHashedFull(n uint64)    { atomic.AddUint64(&m.bytesHashedFull, n) }
func (m *Metrics) AddErrors(n uint64)             { atomic.AddUint64(&m.errors, n) }

func (m *Metrics) SetStage1(d time.Duration) { m.stage1Nanos.Store(int64(d)) }
func (m *Metrics) SetStage2(d time.Duration) { m.stage2Nanos.Store(int64(d)) }
func (m *Metrics) SetStage3(d time.Duration) { m.stage3Nanos.Store(int64(d)) }
func (m *Metrics) SetTotal(d time.Duration)  { m.totalNanos.Store(int64(d)) }

// Snapshot returns a consistent-enough point-in-time copy. Called only after
// all stages have quiesced for the final report, or periodically by a
// progress callback mid-run (in which case counters may be read out of
// lock-step with each other, which is fine: they are purely observational).
type Snapshot struct {
	TotalFiles         uint64
	TotalBytes         uint64
	CandidateGroups    uint64
	PartialGroups      uint64
	DuplicateGroups    uint64
	DuplicateFiles     uint64
	ReclaimableBytes   uint64
	BytesHashedPartial uint64
	BytesHashedFull    uint64
	Errors             uint64
	Stage1             time.Duration
	Stage2             time.Duration
	Stage3             time.Duration
	Total              time.Duration
}

func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		TotalFiles:         atomic.LoadUint64(&m.totalFiles),
		TotalBytes:         atomic.LoadUint64(&m.totalBytes),
		CandidateGroups:    atomic.LoadUint64(&m.candidateGroups),
		PartialGroups:      atomic.LoadUint64(&m.partialGroups),
		DuplicateGroups:    atomic.LoadUint64(&m.duplicateGroups),
		DuplicateFiles:     atomic.LoadUint64(&m.duplicateFiles),
		ReclaimableBytes:   atomic.LoadUint64(&m.reclaimableBytes),
		BytesHashedPartial: atomic.LoadUint64(&m.bytesHashedPartial),
		BytesHashedFull:    atomic.LoadUint64(&m.bytesHashedFull),
		Errors:             atomic.LoadUint64(&m.errors),
		Stage1:             time.Duration(m.stage1Nanos.Load()),
		Stage2:             time.Duration(m.stage2Nanos.Load()),
		Stage3:             time.Duration(m.stage3Nanos.Load()),
		Total:              time.Duration(m.totalNanos.Load()),
	}
}

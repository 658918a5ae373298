// Package model holds the data types shared across the duplicate-finding
// pipeline: file entries, digests, candidate groups, and the final report.
package model

import "encoding/hex"

// DigestSize is the width in bytes of a [Digest].
const DigestSize = 32

// FileEntry describes a regular file discovered by the walker. It is
// immutable once created.
type FileEntry struct {
	Path string
	Size int64
}

// Digest is a fixed-width cryptographic hash value.
type Digest [DigestSize]byte

// String returns the lowercase hex encoding of d.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// CandidateGroup is an unordered set of file entries that currently share a
// stage discriminator (size, partial digest, or full digest).
type CandidateGroup struct {
	Files []FileEntry
}

// Size returns the common size of every member of g. Callers must not call
// Size on an empty group.
func (g CandidateGroup) Size() int64 {
	return g.Files[0].Size
}

// DuplicateGroup is a CandidateGroup that survived full-digest confirmation,
// i.e. cardinality >= 2 after stage D.
type DuplicateGroup struct {
	Size   int64
	Digest Digest
	Paths  []string // sorted lexicographically ascending
}

// Reclaimable returns the bytes freed by keeping a single copy of g.
func (g DuplicateGroup) Reclaimable() int64 {
	return g.Size * int64(len(g.Paths)-1)
}

// Report is the final output of a pipeline run.
type Report struct {
	Groups  []DuplicateGroup
	Metrics Snapshot
}

// Snapshot is a point-in-time, plain-value copy of Metrics suitable for
// rendering and JSON serialization.
type Snapshot struct {
	TotalFiles         uint64  `json:"total_files"`
	TotalBytes         uint64  `json:"total_bytes"`
	CandidateGroups    uint64  `json:"candidate_groups"`
	PartialGroups      uint64  `json:"partial_groups"`
	DuplicateGroups    uint64  `json:"duplicate_groups"`
	DuplicateFiles     uint64  `json:"duplicate_files"`
	ReclaimableBytes   uint64  `json:"reclaimable_bytes"`
	BytesHashedPartial uint64  `json:"bytes_hashed_partial"`
	BytesHashedFull    uint64  `json:"bytes_hashed_full"`
	TimeStage1Secs     float64 `json:"time_stage1_secs"`
	TimeStage2Secs     float64 `json:"time_stage2_secs"`
	TimeStage3Secs     float64 `json:"time_stage3_secs"`
	TimeTotalSecs      float64 `json:"time_total_secs"`
	Errors             uint64  `json:"errors"`
}

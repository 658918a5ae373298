// Package partialhash computes a fingerprint over the first and last
// up-to-4KiB of each candidate and regroups them by (size, partial_digest),
// fanning per-file hashing out across a github.com/sourcegraph/conc pool.
package partialhash

import (
	"encoding/binary"
	"errors"
	"io"
	"os"

	"github.com/sourcegraph/conc/pool"
	"github.com/zeebo/blake3"

	"github.com/filetools/dupfind/internal/errsink"
	"github.com/filetools/dupfind/internal/metrics"
	"github.com/filetools/dupfind/internal/model"
	"github.com/filetools/dupfind/internal/shardmap"
)

// H and T are the head and tail window sizes for the partial fingerprint.
// Must not change without documenting a compatibility break.
const (
	H = 4096
	T = 4096
)

type discriminator struct {
	size   int64
	digest model.Digest
}

// shardHash combines size and the leading bytes of digest into a shard
// index; it need not be collision-free, only well-distributed.
func shardHash(d discriminator) uint64 {
	return uint64(d.size) ^ binary.LittleEndian.Uint64(d.digest[:8])
}

// Hash computes partial fingerprints for every file across groups and
// regroups by (size, partial_digest), dropping groups that fall below
// cardinality 2. Groups may be processed concurrently; within a group, every
// file is hashed independently.
func Hash(groups []model.CandidateGroup, threads int, sink errsink.Sink, m *metrics.Metrics) []model.CandidateGroup {
	byDiscriminator := shardmap.New[discriminator, model.FileEntry](shardHash)

	p := pool.New().WithMaxGoroutines(threads)
	for _, group := range groups {
		for _, file := range group.Files {
			file := file
			p.Go(func() {
				digest, n, err := fingerprint(file)
				if err != nil {
					m.AddErrors(1)
					if sink != nil {
						sink.Warn(errsink.HashWarning, file.Path, err)
					}
					return
				}
				m.AddBytesHashedPartial(uint64(n))
				byDiscriminator.Append(discriminator{size: file.Size, digest: digest}, file)
			})
		}
	}
	p.Wait()

	buckets := byDiscriminator.Groups(2)
	survivors := make([]model.CandidateGroup, 0, len(buckets))
	for _, files := range buckets {
		survivors = append(survivors, model.CandidateGroup{Files: files})
	}
	m.AddPartialGroups(uint64(len(survivors)))
	return survivors
}

// fingerprint reads up to H bytes from offset 0, and — only when
// size > H+T — seeks to size-T and reads up to T more bytes. The two buffers
// are concatenated and hashed with a single 256-bit BLAKE3 call. It returns
// the digest and h+t, the number of bytes actually read (for
// bytes_hashed_partial accounting).
func fingerprint(file model.FileEntry) (model.Digest, int64, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return model.Digest{}, 0, err
	}
	defer f.Close()

	head := make([]byte, H)
	h, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return model.Digest{}, 0, err
	}
	head = head[:h]

	var tail []byte
	var t int
	if file.Size > H+T {
		if _, err := f.Seek(file.Size-T, io.SeekStart); err != nil {
			return model.Digest{}, 0, err
		}
		tail = make([]byte, T)
		t, err = io.ReadFull(f, tail)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			return model.Digest{}, 0, err
		}
		tail = tail[:t]
	}

	sum := blake3.Sum256(append(head, tail...))
	return model.Digest(sum), int64(h + t), nil
}

// Package fullhash computes a streaming BLAKE3 digest over each candidate's
// entire contents and regroups them by (size, full_digest) to produce the
// final duplicate groups. Work is flattened across every surviving group
// before dispatch so a work-stealing pool can saturate all workers even when
// individual groups are small.
package fullhash

import (
	"encoding/binary"
	"io"
	"os"
	"sort"

	"github.com/sourcegraph/conc/pool"
	"github.com/zeebo/blake3"

	"github.com/filetools/dupfind/internal/errsink"
	"github.com/filetools/dupfind/internal/metrics"
	"github.com/filetools/dupfind/internal/model"
	"github.com/filetools/dupfind/internal/shardmap"
)

// ChunkSize is the streaming read size used while computing the full digest.
const ChunkSize = 65536

type discriminator struct {
	size   int64
	digest model.Digest
}

// shardHash combines size and the leading bytes of digest into a shard
// index; it need not be collision-free, only well-distributed.
func shardHash(d discriminator) uint64 {
	return uint64(d.size) ^ binary.LittleEndian.Uint64(d.digest[:8])
}

// Hash streams every file across every surviving group, regroups by
// (size, full_digest), drops groups below cardinality 2, and returns the
// final duplicate groups sorted: paths ascending within a group, groups by
// reclaimable bytes descending then by the group's first path ascending.
func Hash(groups []model.CandidateGroup, threads int, sink errsink.Sink, m *metrics.Metrics) []model.DuplicateGroup {
	var candidates []model.FileEntry
	for _, g := range groups {
		candidates = append(candidates, g.Files...)
	}

	byDiscriminator := shardmap.New[discriminator, model.FileEntry](shardHash)

	p := pool.New().WithMaxGoroutines(threads)
	for _, file := range candidates {
		file := file
		p.Go(func() {
			digest, n, err := digestFile(file.Path)
			if err != nil {
				m.AddErrors(1)
				if sink != nil {
					sink.Warn(errsink.HashWarning, file.Path, err)
				}
				return
			}
			m.AddBytesHashedFull(uint64(n))
			byDiscriminator.Append(discriminator{size: file.Size, digest: digest}, file)
		})
	}
	p.Wait()

	entries := byDiscriminator.Entries(2)
	result := make([]model.DuplicateGroup, 0, len(entries))
	for _, e := range entries {
		paths := make([]string, len(e.Values))
		for i, f := range e.Values {
			paths[i] = f.Path
		}
		sort.Strings(paths)
		result = append(result, model.DuplicateGroup{
			Size:   e.Key.size,
			Digest: e.Key.digest,
			Paths:  paths,
		})
	}

	for _, g := range result {
		m.AddDuplicateGroups(1)
		m.AddDuplicateFiles(uint64(len(g.Paths)))
		m.AddReclaimableBytes(uint64(g.Reclaimable()))
	}

	sortGroups(result)
	return result
}

func sortGroups(groups []model.DuplicateGroup) {
	sort.Slice(groups, func(i, j int) bool {
		ri, rj := groups[i].Reclaimable(), groups[j].Reclaimable()
		if ri != rj {
			return ri > rj
		}
		return groups[i].Paths[0] < groups[j].Paths[0]
	})
}

// digestFile streams path's contents through a BLAKE3 hasher in ChunkSize
// reads and returns the finalized digest along with the number of bytes
// actually read (which equals the file's size on success).
func digestFile(path string) (model.Digest, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Digest{}, 0, err
	}
	defer f.Close()

	h := blake3.New()
	buf := make([]byte, ChunkSize)
	// Wrapping both ends hides *os.File's WriterTo (and any ReaderFrom on
	// the hasher), which would otherwise make io.CopyBuffer ignore buf.
	n, err := io.CopyBuffer(struct{ io.Writer }{h}, struct{ io.Reader }{f}, buf)
	if err != nil {
		return model.Digest{}, 0, err
	}

	var digest model.Digest
	copy(digest[:], h.Sum(nil))
	return digest, n, nil
}

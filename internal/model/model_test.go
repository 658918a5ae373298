package model_test

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/filetools/dupfind/internal/model"
)

func TestDuplicateGroupReclaimable(t *testing.T) {
	g := model.DuplicateGroup{Size: 10, Paths: []string{"a", "b", "c"}}
	assert.Equal(t, int64(20), g.Reclaimable())
}

func TestDigestString(t *testing.T) {
	var d model.Digest
	d[0] = 0xab
	d[1] = 0xcd
	assert.True(t, len(d.String()) == model.DigestSize*2)
	assert.Equal(t, "abcd", d.String()[:4])
}

func TestCandidateGroupSize(t *testing.T) {
	g := model.CandidateGroup{Files: []model.FileEntry{{Path: "a", Size: 42}}}
	assert.Equal(t, int64(42), g.Size())
}

package metrics_test

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/filetools/dupfind/internal/metrics"
)

func TestMetricsAccumulate(t *testing.T) {
	m := &metrics.Metrics{}
	m.AddTotalFiles(3)
	m.AddTotalBytes(300)
	m.AddCandidateGroups(1)
	m.AddPartialGroups(1)
	m.AddDuplicateGroups(1)
	m.AddDuplicateFiles(2)
	m.AddReclaimableBytes(100)
	m.AddBytesHashedPartial(64)
	m.AddBytesHashedFull(200)
	m.AddErrors(1)
	m.SetStage1(time.Second)
	m.SetStage2(2 * time.Second)
	m.SetStage3(3 * time.Second)
	m.SetTotal(6 * time.Second)

	snap := m.Snapshot()
	assert.Equal(t, uint64(3), snap.TotalFiles)
	assert.Equal(t, uint64(300), snap.TotalBytes)
	assert.Equal(t, uint64(1), snap.CandidateGroups)
	assert.Equal(t, uint64(1), snap.PartialGroups)
	assert.Equal(t, uint64(1), snap.DuplicateGroups)
	assert.Equal(t, uint64(2), snap.DuplicateFiles)
	assert.Equal(t, uint64(100), snap.ReclaimableBytes)
	assert.Equal(t, uint64(64), snap.BytesHashedPartial)
	assert.Equal(t, uint64(200), snap.BytesHashedFull)
	assert.Equal(t, uint64(1), snap.Errors)
	assert.Equal(t, time.Second, snap.Stage1)
	assert.Equal(t, 6*time.Second, snap.Total)
}

func TestMetricsConcurrentAdds(t *testing.T) {
	m := &metrics.Metrics{}
	done := make(chan struct{})
	for i := 0; i < 16; i++ {
		go func() {
			for j := 0; j < 1000; j++ {
				m.AddTotalFiles(1)
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 16; i++ {
		<-done
	}
	assert.Equal(t, uint64(16000), m.Snapshot().TotalFiles)
}

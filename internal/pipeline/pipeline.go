// Package pipeline sequences the four scan stages — walk, size-group,
// partial-hash, full-hash — tracking per-stage wall time and assembling the
// final Report. Stages are strictly staged and fully draining: stage N+1
// begins only after stage N has finished.
package pipeline

import (
	"time"

	"github.com/filetools/dupfind/internal/config"
	"github.com/filetools/dupfind/internal/errsink"
	"github.com/filetools/dupfind/internal/fullhash"
	"github.com/filetools/dupfind/internal/metrics"
	"github.com/filetools/dupfind/internal/model"
	"github.com/filetools/dupfind/internal/partialhash"
	"github.com/filetools/dupfind/internal/sizegroup"
	"github.com/filetools/dupfind/internal/walk"
)

// Run drives the full pipeline over cfg.Roots and returns the assembled
// Report. The only error it returns is fatal (a *walk.RootAccessError or a
// worker-pool bootstrap failure); per-file and per-directory problems are
// reported to sink and do not abort the scan.
func Run(cfg *config.Config, sink errsink.Sink) (*model.Report, error) {
	m := &metrics.Metrics{}
	totalStart := time.Now()

	// Stage 1: walk + size-group. There is no separate timer for size
	// grouping; time_stage1 brackets walk+group together since grouping is
	// a pure in-memory pass over the walker's output.
	stage1Start := time.Now()
	w := &walk.Walker{
		Threads:        cfg.Threads,
		FollowSymlinks: cfg.FollowSymlinks,
		Sink:           sink,
		Metrics:        m,
	}
	entries, err := w.Walk(cfg.Roots)
	if err != nil {
		return nil, err
	}
	candidates := sizegroup.Group(entries, m)
	m.SetStage1(time.Since(stage1Start))
	report(cfg, config.StageWalk, m)

	// Stage 2: partial hash.
	stage2Start := time.Now()
	partialGroups := partialhash.Hash(candidates, cfg.Threads, sink, m)
	m.SetStage2(time.Since(stage2Start))
	report(cfg, config.StagePartialHash, m)

	// Stage 3: full hash.
	stage3Start := time.Now()
	duplicateGroups := fullhash.Hash(partialGroups, cfg.Threads, sink, m)
	m.SetStage3(time.Since(stage3Start))
	report(cfg, config.StageFullHash, m)

	m.SetTotal(time.Since(totalStart))

	return &model.Report{
		Groups:  duplicateGroups,
		Metrics: snapshotToModel(m.Snapshot()),
	}, nil
}

func report(cfg *config.Config, stage config.Stage, m *metrics.Metrics) {
	if cfg.OnProgress != nil {
		cfg.OnProgress(stage, m.Snapshot())
	}
}

func snapshotToModel(s metrics.Snapshot) model.Snapshot {
	return model.Snapshot{
		TotalFiles:         s.TotalFiles,
		TotalBytes:         s.TotalBytes,
		CandidateGroups:    s.CandidateGroups,
		PartialGroups:      s.PartialGroups,
		DuplicateGroups:    s.DuplicateGroups,
		DuplicateFiles:     s.DuplicateFiles,
		ReclaimableBytes:   s.ReclaimableBytes,
		BytesHashedPartial: s.BytesHashedPartial,
		BytesHashedFull:    s.BytesHashedFull,
		TimeStage1Secs:     s.Stage1.Seconds(),
		TimeStage2Secs:     s.Stage2.Seconds(),
		TimeStage3Secs:     s.Stage3.Seconds(),
		TimeTotalSecs:      s.Total.Seconds(),
		Errors:             s.Errors,
	}
}

// dupfind finds duplicate files, concurrently.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/pflag"

	"github.com/filetools/dupfind/internal/config"
	"github.com/filetools/dupfind/internal/errsink"
	"github.com/filetools/dupfind/internal/metrics"
	"github.com/filetools/dupfind/internal/pipeline"
	"github.com/filetools/dupfind/internal/render"
)

func run() error {
	threads := pflag.IntP("threads", "t", runtime.NumCPU(), "worker pool size")
	followSymlinks := pflag.Bool("follow-symlinks", false, "follow symbolic links to directories")
	format := pflag.StringP("format", "f", "txt", "output format: txt, csv, json")
	output := pflag.StringP("output", "o", "", "output file (default stdout)")
	quiet := pflag.BoolP("quiet", "q", false, "suppress the stderr progress bar and summary")
	pflag.Parse()

	var roots []string
	if pflag.NArg() == 0 {
		roots = []string{"."}
	} else {
		roots = pflag.Args()
	}

	var bar *progressbar.ProgressBar
	if !*quiet {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("scanning"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSpinnerType(14),
		)
	}

	onProgress := func(stage config.Stage, snap metrics.Snapshot) {
		if bar == nil {
			return
		}
		_ = bar.Set64(int64(snap.BytesHashedPartial + snap.BytesHashedFull))
		bar.Describe(stage.String())
	}

	cfg, err := config.New(
		config.WithRoots(roots...),
		config.WithThreads(*threads),
		config.WithFollowSymlinks(*followSymlinks),
		config.WithFormat(*format),
		config.WithOutputPath(*output),
		config.WithOnProgress(onProgress),
	)
	if err != nil {
		return fmt.Errorf("dupfind: %w", err)
	}

	sink := errsink.NewSlog(nil)

	report, err := pipeline.Run(cfg, sink)
	if err != nil {
		return fmt.Errorf("dupfind: %w", err)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	var outputFile *os.File
	if *output == "" || *output == "-" {
		outputFile = os.Stdout
	} else {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("dupfind: opening output file: %w", err)
		}
		defer f.Close()
		outputFile = f
	}

	if err := render.Render(outputFile, report, *format); err != nil {
		return fmt.Errorf("dupfind: writing report: %w", err)
	}

	if !*quiet {
		fmt.Fprintf(os.Stderr, "scanned %s files (%s), found %s duplicate group(s), %s reclaimable\n",
			humanize.Comma(int64(report.Metrics.TotalFiles)),
			humanize.IBytes(report.Metrics.TotalBytes),
			humanize.Comma(int64(report.Metrics.DuplicateGroups)),
			humanize.IBytes(report.Metrics.ReclaimableBytes),
		)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Package render serializes a Report to one of three formats: plain text,
// CSV, and JSON. It never imports internal/pipeline; it is a pure function
// of a model.Report.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/filetools/dupfind/internal/model"
)

// Format names accepted by Render, matching Config.Format's valid values.
const (
	FormatText = "txt"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Render writes report to w in format. An unrecognized format is a
// programmer error: callers are expected to have validated it already via
// config.New, so Render returns an error rather than panicking.
func Render(w io.Writer, report *model.Report, format string) error {
	switch format {
	case FormatText:
		return renderText(w, report)
	case FormatCSV:
		return renderCSV(w, report)
	case FormatJSON:
		return renderJSON(w, report)
	default:
		return fmt.Errorf("render: unrecognized format %q", format)
	}
}

// renderText writes groups separated by a blank line, each headed by
// "# group N  size=S  count=C  reclaimable=R" followed by one path per line.
func renderText(w io.Writer, report *model.Report) error {
	for i, g := range report.Groups {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "# group %d  size=%d  count=%d  reclaimable=%d\n",
			i+1, g.Size, len(g.Paths), g.Reclaimable()); err != nil {
			return err
		}
		for _, path := range g.Paths {
			if _, err := fmt.Fprintln(w, path); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderCSV writes header "group,size,path" followed by one row per file;
// group is the 1-based group index.
func renderCSV(w io.Writer, report *model.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"group", "size", "path"}); err != nil {
		return err
	}
	for i, g := range report.Groups {
		for _, path := range g.Paths {
			row := []string{fmt.Sprintf("%d", i+1), fmt.Sprintf("%d", g.Size), path}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// jsonGroup and jsonDoc shape the JSON format exactly: a single object with
// "metrics" and "groups" keys.
type jsonGroup struct {
	Size  int64    `json:"size"`
	Paths []string `json:"paths"`
}

type jsonDoc struct {
	Metrics model.Snapshot `json:"metrics"`
	Groups  []jsonGroup    `json:"groups"`
}

func renderJSON(w io.Writer, report *model.Report) error {
	doc := jsonDoc{
		Metrics: report.Metrics,
		Groups:  make([]jsonGroup, len(report.Groups)),
	}
	for i, g := range report.Groups {
		doc.Groups[i] = jsonGroup{Size: g.Size, Paths: g.Paths}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

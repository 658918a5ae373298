package render_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/filetools/dupfind/internal/model"
	"github.com/filetools/dupfind/internal/render"
)

func sampleReport() *model.Report {
	return &model.Report{
		Groups: []model.DuplicateGroup{
			{Size: 10, Paths: []string{"/a", "/b"}},
		},
		Metrics: model.Snapshot{TotalFiles: 2, DuplicateGroups: 1},
	}
}

func TestRenderTextFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, render.Render(&buf, sampleReport(), render.FormatText))
	want := "# group 1  size=10  count=2  reclaimable=10\n/a\n/b\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderTextFormatSeparatesGroupsWithBlankLine(t *testing.T) {
	report := &model.Report{Groups: []model.DuplicateGroup{
		{Size: 10, Paths: []string{"/a", "/b"}},
		{Size: 5, Paths: []string{"/c", "/d"}},
	}}
	var buf bytes.Buffer
	assert.NoError(t, render.Render(&buf, report, render.FormatText))
	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "", lines[3])
}

func TestRenderCSVFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, render.Render(&buf, sampleReport(), render.FormatCSV))
	want := "group,size,path\n1,10,/a\n1,10,/b\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, render.Render(&buf, sampleReport(), render.FormatJSON))

	var doc map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	groups := doc["groups"].([]any)
	assert.Equal(t, 1, len(groups))
	g := groups[0].(map[string]any)
	assert.Equal(t, float64(10), g["size"])

	metrics := doc["metrics"].(map[string]any)
	assert.Equal(t, float64(2), metrics["total_files"])
}

func TestRenderUnrecognizedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := render.Render(&buf, sampleReport(), "xml")
	assert.Error(t, err)
}

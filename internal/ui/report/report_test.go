package report_test

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fcache/internal/core/domain"
	"go.trai.ch/fcache/internal/ui/report"
)

const root = "/work/proj"

func TestRenderer_Status(t *testing.T) {
	statuses := []domain.FileStatus{
		{Path: root + "/a.txt", ModTime: 10, State: domain.FileNew},
		{Path: root + "/b.go", ModTime: 20, State: domain.FileChanged},
		{Path: root + "/c.md", ModTime: 5, State: domain.FileUnchanged},
		{Path: root + "/sub/d.txt", State: domain.FileRemoved},
	}

	tests := []struct {
		name          string
		statuses      []domain.FileStatus
		showUnchanged bool
		goldenName    string
	}{
		{name: "changes only", statuses: statuses, goldenName: "status"},
		{name: "including unchanged", statuses: statuses, showUnchanged: true, goldenName: "status_all"},
		{
			name: "nothing changed",
			statuses: []domain.FileStatus{
				{Path: root + "/a.txt", State: domain.FileUnchanged},
				{Path: root + "/b.txt", State: domain.FileUnchanged},
			},
			goldenName: "status_clean",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			require.NoError(t, report.New(buf).Status(root, tt.statuses, tt.showUnchanged))

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestRenderer_Status_ForcedColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CLICOLOR_FORCE", "1")

	buf := &bytes.Buffer{}
	require.NoError(t, report.New(buf).Status(root, []domain.FileStatus{
		{Path: root + "/a.txt", State: domain.FileNew},
	}, false))

	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "+ new       a.txt")
}

func TestRenderer_Snapshot(t *testing.T) {
	tests := []struct {
		name       string
		snapshot   domain.Snapshot
		goldenName string
	}{
		{
			name: "markers",
			snapshot: domain.Snapshot{
				root + "/a.txt":   1700000000,
				root + "/new.txt": domain.Unconfirmed,
				"/elsewhere/x":    0,
			},
			goldenName: "snapshot",
		},
		{name: "empty", snapshot: domain.Snapshot{}, goldenName: "snapshot_empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			require.NoError(t, report.New(buf).Snapshot(root, tt.snapshot))

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestSummarize(t *testing.T) {
	got := report.Summarize([]domain.FileStatus{
		{State: domain.FileNew},
		{State: domain.FileNew},
		{State: domain.FileChanged},
		{State: domain.FileUnchanged},
	})

	assert.Equal(t, report.Summary{New: 2, Changed: 1, Unchanged: 1}, got)
	assert.Equal(t, "2 new, 1 changed, 0 removed, 1 unchanged", got.String())
}

func TestFormatMarker(t *testing.T) {
	assert.Equal(t, "unconfirmed", report.FormatMarker(domain.Unconfirmed))
	assert.Equal(t, "1970-01-01T00:00:00Z", report.FormatMarker(0))
	assert.Equal(t, "2023-11-14T22:13:20Z", report.FormatMarker(1700000000))
}

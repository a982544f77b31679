// Package report renders scan results and cache snapshots for the terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/fcache/internal/core/domain"
	"go.trai.ch/fcache/internal/ui/output"
	"go.trai.ch/fcache/internal/ui/style"
)

// Renderer writes human-readable reports.
type Renderer struct {
	w      io.Writer
	styles styles
}

type styles struct {
	added     lipgloss.Style
	changed   lipgloss.Style
	removed   lipgloss.Style
	muted     lipgloss.Style
	ok        lipgloss.Style
	unconfirm lipgloss.Style
}

// New creates a Renderer writing to w. A nil writer means os.Stdout.
func New(w io.Writer) *Renderer {
	if w == nil {
		w = os.Stdout
	}
	r := output.NewRenderer(w)
	return &Renderer{
		w: w,
		styles: styles{
			added:     r.NewStyle().Foreground(style.Green),
			changed:   r.NewStyle().Foreground(style.Yellow),
			removed:   r.NewStyle().Foreground(style.Red),
			muted:     r.NewStyle().Foreground(style.Slate),
			ok:        r.NewStyle().Foreground(style.Green).Bold(true),
			unconfirm: r.NewStyle().Foreground(style.Iris).Italic(true),
		},
	}
}

// Summary counts scan results per state.
type Summary struct {
	New       int
	Changed   int
	Removed   int
	Unchanged int
}

// Summarize counts statuses per state.
func Summarize(statuses []domain.FileStatus) Summary {
	var s Summary
	for _, st := range statuses {
		switch st.State {
		case domain.FileNew:
			s.New++
		case domain.FileChanged:
			s.Changed++
		case domain.FileRemoved:
			s.Removed++
		case domain.FileUnchanged:
			s.Unchanged++
		}
	}
	return s
}

// String formats the summary as a single line.
func (s Summary) String() string {
	return fmt.Sprintf("%d new, %d changed, %d removed, %d unchanged", s.New, s.Changed, s.Removed, s.Unchanged)
}

// Status writes one line per non-unchanged file followed by a summary line.
// Unchanged files are listed too when showUnchanged is set. Paths are shown
// relative to root.
func (r *Renderer) Status(root string, statuses []domain.FileStatus, showUnchanged bool) error {
	var b strings.Builder

	for _, st := range statuses {
		if st.State == domain.FileUnchanged && !showUnchanged {
			continue
		}
		icon, lineStyle := r.stateStyle(st.State)
		line := fmt.Sprintf("%s %-9s %s", icon, st.State, relPath(root, st.Path))
		b.WriteString(lineStyle.Render(line))
		b.WriteByte('\n')
	}

	summary := Summarize(statuses)
	if summary.New+summary.Changed+summary.Removed == 0 {
		b.WriteString(r.styles.ok.Render(style.Check + " nothing changed"))
		b.WriteByte('\n')
	}
	b.WriteString(r.styles.muted.Render(summary.String()))
	b.WriteByte('\n')

	_, err := io.WriteString(r.w, b.String())
	return err
}

// Snapshot writes one line per tracked path with the time it was last confirmed
// unchanged. Paths are shown relative to root.
func (r *Renderer) Snapshot(root string, snapshot domain.Snapshot) error {
	var b strings.Builder

	if len(snapshot) == 0 {
		b.WriteString(r.styles.muted.Render(style.Circle + " no files tracked"))
		b.WriteByte('\n')
	}

	for _, path := range snapshot.Paths() {
		marker := snapshot[path]
		lineStyle := r.styles.muted
		if marker == domain.Unconfirmed {
			lineStyle = r.styles.unconfirm
		}
		line := fmt.Sprintf("%-20s %s", FormatMarker(marker), relPath(root, path))
		b.WriteString(lineStyle.Render(line))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

// FormatMarker renders a marker as an RFC 3339 UTC time, or "unconfirmed" for the sentinel.
func FormatMarker(marker int64) string {
	if marker == domain.Unconfirmed {
		return "unconfirmed"
	}
	return time.Unix(marker, 0).UTC().Format(time.RFC3339)
}

func (r *Renderer) stateStyle(state domain.FileState) (string, lipgloss.Style) {
	switch state {
	case domain.FileNew:
		return style.Plus, r.styles.added
	case domain.FileChanged:
		return style.Tilde, r.styles.changed
	case domain.FileRemoved:
		return style.Minus, r.styles.removed
	default:
		return " ", r.styles.muted
	}
}

func relPath(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

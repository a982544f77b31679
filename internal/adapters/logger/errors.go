package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrorEntry is one link of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// zerrLink is satisfied by *zerr.Error.
type zerrLink interface {
	Message() string
	Metadata() map[string]any
}

// collectErrorEntries walks the error chain. zerr links contribute their own message
// and metadata; the first non-zerr error ends the walk with its full text.
// A zerr link without a message only carries metadata, which is merged into the
// nearest entry that has one.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var pending map[string]any

	for current := err; current != nil; current = errors.Unwrap(current) {
		link, ok := current.(zerrLink)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: pending})
			break
		}

		meta := link.Metadata()
		if link.Message() == "" {
			if len(entries) > 0 {
				last := &entries[len(entries)-1]
				if last.Metadata == nil {
					last.Metadata = map[string]any{}
				}
				maps.Copy(last.Metadata, meta)
				continue
			}
			if pending == nil {
				pending = map[string]any{}
			}
			maps.Copy(pending, meta)
			continue
		}

		if pending != nil {
			maps.Copy(meta, pending)
			pending = nil
		}
		entries = append(entries, ErrorEntry{Message: link.Message(), Metadata: meta})
	}

	return entries
}

// chainStyles colors the lines of a rendered error chain. The zero value renders plain text.
type chainStyles struct {
	head  lipgloss.Style
	cause lipgloss.Style
	meta  lipgloss.Style
}

// formatErrorEntries renders entries as a main error followed by its causes.
func formatErrorEntries(entries []ErrorEntry, st chainStyles) string {
	lines := make([]string, 0, len(entries)*2)

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		head, indent, msgStyle := "Error: ", "       ", st.head
		if i > 0 {
			if i == 1 {
				lines = append(lines, "", st.meta.Render("  Caused by:"))
			}
			head, indent, msgStyle = "    → ", "      ", st.cause
		}

		lines = append(lines, msgStyle.Render(head+msgLines[0]))
		for _, line := range msgLines[1:] {
			lines = append(lines, msgStyle.Render(indent+line))
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, st.meta.Render(fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key])))
		}
	}

	return strings.Join(lines, "\n")
}

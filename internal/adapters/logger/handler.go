package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/fcache/internal/ui/output"
	"go.trai.ch/fcache/internal/ui/style"
)

// errorChainKey carries the collected error chain from Logger.Error to the handler.
const errorChainKey = "error_chain"

// PrettyHandler is a slog.Handler that writes styled records for a terminal.
// Records carrying an error chain are printed with one cause per line.
type PrettyHandler struct {
	w      io.Writer
	mu     *sync.Mutex
	styles handlerStyles
	level  slog.Leveler
	attrs  []slog.Attr
	group  string
}

type handlerStyles struct {
	info  lipgloss.Style
	warn  lipgloss.Style
	err   lipgloss.Style
	attr  lipgloss.Style
	chain chainStyles
}

func newHandlerStyles(r *lipgloss.Renderer) handlerStyles {
	return handlerStyles{
		info: r.NewStyle().Foreground(style.Slate),
		warn: r.NewStyle().Foreground(style.Yellow),
		err:  r.NewStyle().Foreground(style.Red),
		attr: r.NewStyle().Foreground(style.Slate).Faint(true),
		chain: chainStyles{
			head:  r.NewStyle().Foreground(style.Red).Bold(true),
			cause: r.NewStyle().Foreground(style.Red),
			meta:  r.NewStyle().Foreground(style.Slate),
		},
	}
}

// NewPrettyHandler creates a PrettyHandler writing to w. A nil writer means os.Stderr.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level.Level()
	}

	levelVar := &slog.LevelVar{}
	levelVar.Set(level)

	return &PrettyHandler{
		w:      w,
		mu:     &sync.Mutex{},
		styles: newHandlerStyles(output.NewRenderer(w)),
		level:  levelVar,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var chain []ErrorEntry
	attrParts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, attr := range h.attrs {
		attrParts = append(attrParts, formatAttr(h.group, attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		if entries, ok := attr.Value.Any().([]ErrorEntry); ok && attr.Key == errorChainKey {
			chain = entries
			return true
		}
		attrParts = append(attrParts, formatAttr(h.group, attr))
		return true
	})

	var icon string
	lineStyle := h.styles.info
	switch r.Level {
	case slog.LevelWarn:
		icon, lineStyle = style.Warning, h.styles.warn
	case slog.LevelError:
		icon, lineStyle = style.Cross, h.styles.err
	}

	var body string
	if len(chain) > 0 {
		body = formatErrorEntries(chain, h.styles.chain)
	} else {
		body = renderLines(lineStyle, r.Message)
	}
	if icon != "" {
		body = lineStyle.Render(icon+" ") + body
	}
	if len(attrParts) > 0 {
		body += " " + h.styles.attr.Render(strings.Join(attrParts, " "))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, body+"\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(slices.Clone(h.attrs), attrs...)
	return &clone
}

// WithGroup returns a new Handler with the given group name. Nested groups are
// joined with dots and an empty name returns h unchanged.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.group = name
	if h.group != "" {
		clone.group = h.group + "." + name
	}
	return &clone
}

func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	return key + "=" + attr.Value.String()
}

// renderLines styles every line of text on its own so lipgloss does not pad
// shorter lines to the widest one.
func renderLines(s lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = s.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

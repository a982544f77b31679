// Package output creates termenv outputs and lipgloss renderers with a consistent
// color profile.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorProfile returns termenv.Ascii when NO_COLOR is set and the detected
// terminal profile otherwise.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a termenv.Output for w using ColorProfile. A nil writer means os.Stderr.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	return NewWithProfile(w, ColorProfile, opts...)
}

// NewWithProfile creates a termenv.Output for w with a custom profile selector.
func NewWithProfile(w io.Writer, profileFn func() termenv.Profile, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(profileFn()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}

// NewRenderer creates a lipgloss renderer for w using ColorProfile.
func NewRenderer(w io.Writer) *lipgloss.Renderer {
	return rendererFor(New(w))
}

// NewRendererWithProfile creates a lipgloss renderer for w with a custom profile selector.
func NewRendererWithProfile(w io.Writer, profileFn func() termenv.Profile) *lipgloss.Renderer {
	return rendererFor(NewWithProfile(w, profileFn))
}

// rendererFor pins the renderer to the profile of out, so styles emit colors
// only when out supports them.
func rendererFor(out *termenv.Output) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(out)
	r.SetOutput(out)
	r.SetColorProfile(out.Profile)
	return r
}

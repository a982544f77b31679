package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/fcache/internal/ui/output"
	"go.trai.ch/fcache/internal/ui/style"
)

func TestColorProfile_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfile())
}

func TestNew_PlainOutputWithoutColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	out := output.New(buf)

	styled := out.String("hello").Foreground(termenv.RGBColor("#22A06B"))
	_, err := out.WriteString(styled.String())

	assert.NoError(t, err)
	assert.Equal(t, "hello", buf.String())
}

func TestNewWithProfile(t *testing.T) {
	out := output.NewWithProfile(nil, func() termenv.Profile { return termenv.ANSI })
	assert.Equal(t, termenv.ANSI, out.Profile)
}

func TestNewRenderer_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	r := output.NewRenderer(&bytes.Buffer{})

	assert.Equal(t, termenv.Ascii, r.ColorProfile())
	assert.Equal(t, "hello", r.NewStyle().Foreground(style.Green).Render("hello"))
}

func TestNewRendererWithProfile_Colors(t *testing.T) {
	r := output.NewRendererWithProfile(&bytes.Buffer{}, func() termenv.Profile { return termenv.TrueColor })

	got := r.NewStyle().Foreground(style.Green).Render("hello")

	assert.Equal(t, termenv.TrueColor, r.ColorProfile())
	assert.Contains(t, got, "\x1b[")
	assert.Contains(t, got, "hello")
}

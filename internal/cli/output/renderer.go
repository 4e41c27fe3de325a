// Package output renders CLI results as styled terminal text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Mode selects the output format.
type Mode string

// Output modes.
const (
	ModeText Mode = "text"
	ModeJSON Mode = "json"
)

// Styles used for terminal output.
var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleDim     = lipgloss.NewStyle().Faint(true)
)

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
}

// NewRenderer creates a renderer. An empty or unknown mode falls back to text.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode != ModeJSON {
		mode = ModeText
	}
	return &Renderer{out: out, errOut: errOut, mode: mode}
}

// Mode returns the effective output mode.
func (r *Renderer) Mode() Mode { return r.mode }

// JSON marshals v to the output writer with indentation.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Printf writes plain formatted text to the output writer.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Println writes a plain line to the output writer.
func (r *Renderer) Println(args ...any) {
	fmt.Fprintln(r.out, args...)
}

// Success writes a styled success line.
func (r *Renderer) Success(msg string) {
	fmt.Fprintln(r.out, styleSuccess.Render(msg))
}

// Errorf writes a styled error line to the error writer.
func (r *Renderer) Errorf(format string, args ...any) {
	fmt.Fprintln(r.errOut, styleError.Render(fmt.Sprintf(format, args...)))
}

// SeverityStyle returns the style for a severity name.
func SeverityStyle(severity string) lipgloss.Style {
	switch severity {
	case "error":
		return styleError
	case "warning":
		return styleWarning
	case "info", "hint":
		return styleInfo
	default:
		return styleDim
	}
}

// Dim returns text in the de-emphasized style.
func Dim(text string) string { return styleDim.Render(text) }

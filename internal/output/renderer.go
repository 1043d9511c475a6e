package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/walexbarnes/nosey-web-sdk/internal/model"
)

// Renderer writes result messages to an output stream.
type Renderer interface {
	Render(msg *model.ResultMessage) error
}

// ---------------------------------------------------------------------------
// Text Renderer (colorized terminal output)
// ---------------------------------------------------------------------------

var (
	styleMethod  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true) // cyan
	styleURL     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
	stylePath    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))            // yellow
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))             // green
	styleErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // red bold
	stylePending = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))            // gray
)

// TextRenderer prints matched requests to the terminal, one block per
// message: a request line followed by the extracted path/value pairs in
// extraction order.
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer returns a Renderer that writes colorized text to stdout.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{w: os.Stdout}
}

func (r *TextRenderer) Render(msg *model.ResultMessage) error {
	header := fmt.Sprintf("%s %s %s",
		styleMethod.Render(msg.RequestInfo.Method),
		styleStatus(msg.RequestInfo.StatusCode),
		styleURL.Render(truncate(msg.URL, 96)),
	)
	if _, err := fmt.Fprintln(r.w, header); err != nil {
		return err
	}

	for _, p := range msg.Results.Paths() {
		v, _ := msg.Results.Get(p)
		line := fmt.Sprintf("  %s = %v", stylePath.Render(p), v)
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}

	return nil
}

// styleStatus colorizes a status code; absent codes render as pending.
func styleStatus(code *int) string {
	if code == nil {
		return stylePending.Render("---")
	}
	tag := fmt.Sprintf("%d", *code)
	if *code >= 400 {
		return styleErr.Render(tag)
	}
	return styleOK.Render(tag)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

// ---------------------------------------------------------------------------
// JSON Renderer (structured output for piping)
// ---------------------------------------------------------------------------

// JSONRenderer prints each result message as a single JSON object per line.
type JSONRenderer struct {
	enc *json.Encoder
}

// NewJSONRenderer returns a Renderer that writes JSON lines to stdout.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{enc: json.NewEncoder(os.Stdout)}
}

func (r *JSONRenderer) Render(msg *model.ResultMessage) error {
	return r.enc.Encode(msg)
}

package printers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
)

// Markdown renders md for the terminal with the glamour style matching the
// stored theme ("dark" or "light") and writes it to color.Output.
func Markdown(md, style string, width int) error {
	if style != "dark" {
		style = "light"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		return fmt.Errorf("printers: markdown renderer: %w", err)
	}
	out, err := renderer.Render(strings.TrimSpace(md))
	if err != nil {
		return fmt.Errorf("printers: render markdown: %w", err)
	}
	_, _ = fmt.Fprint(color.Output, out)
	return nil
}

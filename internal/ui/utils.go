package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// fder is satisfied by *os.File.
type fder interface {
	Fd() uintptr
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fder)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// IsInteractive checks if stdout is a terminal.
func IsInteractive() bool {
	return IsTerminal(os.Stdout)
}

// RenderPageHeader writes a consistent styled header for commands.
func RenderPageHeader(w io.Writer, title, subtitle string) {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		MarginBottom(1)

	fmt.Fprintln(w, titleStyle.Render(title))
	if subtitle != "" {
		fmt.Fprintf(w, "  %s\n", StyleSubtle.Render(subtitle))
	}
}

// Panel is a bordered box with an optional title.
type Panel struct {
	Title       string
	Content     string
	BorderColor lipgloss.Color
	Width       int
}

// NewPanel creates a new panel with default styling.
func NewPanel(title, content string) *Panel {
	return &Panel{
		Title:       title,
		Content:     content,
		BorderColor: ColorSecondary,
	}
}

// WithBorderColor sets the border color and returns the panel.
func (p *Panel) WithBorderColor(color lipgloss.Color) *Panel {
	p.BorderColor = color
	return p
}

// WithWidth sets the panel width and returns the panel.
func (p *Panel) WithWidth(width int) *Panel {
	p.Width = width
	return p
}

// Render returns the styled panel as a string.
func (p *Panel) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.BorderColor).
		Padding(0, 1)

	if p.Width > 0 {
		style = style.Width(p.Width)
	}

	content := p.Content
	if p.Title != "" {
		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
		content = titleStyle.Render(p.Title) + "\n" + p.Content
	}
	return style.Render(content)
}

// RenderSuccessPanel renders a panel with a green border.
func RenderSuccessPanel(title, content string) string {
	return NewPanel(title, content).WithBorderColor(ColorSuccess).Render()
}

// RenderErrorPanel renders a panel with a red border.
func RenderErrorPanel(title, content string) string {
	return NewPanel(title, content).WithBorderColor(ColorError).Render()
}

// RenderWarningPanel renders a panel with a yellow border.
func RenderWarningPanel(title, content string) string {
	return NewPanel(title, content).WithBorderColor(ColorWarning).Render()
}

// Truncate shortens s to maxLen runes, ending in "..." when cut.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen <= 0 || len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// HumanSize formats a byte count for listings.
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

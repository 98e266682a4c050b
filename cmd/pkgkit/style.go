// ABOUTME: Terminal-aware status styling with lipgloss
// ABOUTME: Colors only when writing to a TTY so piped output stays plain

package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

type styles struct {
	color bool
	ok    lipgloss.Style
	warn  lipgloss.Style
	bad   lipgloss.Style
	dim   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	f, isFile := w.(*os.File)
	return styles{
		color: isFile && term.IsTerminal(int(f.Fd())),
		ok:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		bad:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		dim:   lipgloss.NewStyle().Faint(true),
	}
}

func (s styles) render(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return style.Render(text)
}

func (s styles) Good(text string) string { return s.render(s.ok, text) }
func (s styles) Warn(text string) string { return s.render(s.warn, text) }
func (s styles) Bad(text string) string  { return s.render(s.bad, text) }
func (s styles) Dim(text string) string  { return s.render(s.dim, text) }

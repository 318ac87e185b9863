package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/slidex/internal/color"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
	bar   lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
		bar:   NewStyle(h).PaddingLeft(1),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// paintBackdrop centers content on a top-to-bottom gradient of width x height cells.
// Content lines wider than the area are left as they are.
func paintBackdrop(content string, top, bottom color.Sample, width, height int) string {
	if width <= 0 || height <= 0 {
		return content
	}

	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}
	offset := max(0, (height-len(lines))/2)

	var sb strings.Builder
	for i, row := range color.Rows(top, bottom, height) {
		if i > 0 {
			sb.WriteByte('\n')
		}
		bg := lipgloss.NewStyle().Background(lipgloss.Color(row.Hex()))

		j := i - offset
		if j < 0 || j >= len(lines) {
			sb.WriteString(bg.Render(strings.Repeat(" ", width)))
			continue
		}

		line := lines[j]
		pad := max(0, width-lipgloss.Width(line))
		left := pad / 2
		sb.WriteString(bg.Render(strings.Repeat(" ", left)))
		sb.WriteString(line)
		sb.WriteString(bg.Render(strings.Repeat(" ", pad-left)))
	}
	return sb.String()
}

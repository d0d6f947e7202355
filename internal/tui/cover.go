package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderCover draws img with the upper half block, two pixel rows per
// terminal line: the foreground paints the top pixel and the background
// the bottom one.
func renderCover(img image.Image) string {
	if img == nil {
		return ""
	}
	b := img.Bounds()

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hexColor(img.At(x, y)))
			if y+1 < b.Max.Y {
				style = style.Background(hexColor(img.At(x, y+1)))
			}
			sb.WriteString(style.Render("▀"))
		}
		if y+2 < b.Max.Y {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// placeholderCover is shown while the cover loads or when there is none.
func placeholderCover(size int) string {
	if size <= 0 {
		return ""
	}
	rows := (size + 1) / 2
	line := strings.Repeat("░", size)
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = line
	}
	return dimStyle.Render(strings.Join(lines, "\n"))
}

func hexColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

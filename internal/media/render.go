package media

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/slidex/internal/color"
	"golang.org/x/image/draw"
)

// halfBlock paints the upper pixel as foreground and the lower pixel as background.
const halfBlock = "▀"

// Fit scales an iw x ih image into at most w x h while keeping its aspect ratio.
// Both results are at least 1 when the inputs are positive.
func Fit(iw, ih, w, h int) (int, int) {
	if iw <= 0 || ih <= 0 || w <= 0 || h <= 0 {
		return 0, 0
	}
	scale := min(float64(w)/float64(iw), float64(h)/float64(ih))
	return max(1, int(float64(iw)*scale)), max(1, int(float64(ih)*scale))
}

// RenderHalfBlocks draws img into a grid of width x height terminal cells, two pixel rows per
// cell. The image is scaled with nearest neighbour sampling and is never stretched.
func RenderHalfBlocks(img image.Image, width, height int) string {
	if img == nil || width <= 0 || height <= 0 {
		return ""
	}
	b := img.Bounds()
	tw, th := Fit(b.Dx(), b.Dy(), width, height*2)
	if tw == 0 || th == 0 {
		return ""
	}

	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	var sb strings.Builder
	for y := 0; y < th; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < tw; x++ {
			style := lipgloss.NewStyle().Foreground(hexAt(dst, x, y))
			if y+1 < th {
				style = style.Background(hexAt(dst, x, y+1))
			}
			sb.WriteString(style.Render(halfBlock))
		}
	}
	return sb.String()
}

func hexAt(img *image.NRGBA, x, y int) lipgloss.Color {
	c := img.NRGBAAt(x, y)
	return lipgloss.Color(color.Sample{R: int(c.R), G: int(c.G), B: int(c.B)}.Hex())
}

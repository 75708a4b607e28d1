// Package display encodes the chart raster into terminal escape sequences.
// It wraps go-termimg for the pixel protocols (kitty, iTerm2, sixel) and
// falls back to a pure-Go halfblock renderer on terminals without graphics
// support.
package display

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/blacktop/go-termimg"
	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/pulse-spark/pkg/terminal"
)

// Renderer converts an image.Image to a terminal escape string at a given
// cell size, dispatching on the selected graphics protocol.
type Renderer struct {
	protocol terminal.GraphicsProtocol
	cellW    int
	cellH    int
	profile  termenv.Profile
}

// NewRenderer builds a Renderer from detected capabilities and an optional
// protocol override from configuration.
func NewRenderer(caps *terminal.Capabilities, override string) *Renderer {
	cellW, cellH := caps.Size.CellPixels()
	return &Renderer{
		protocol: terminal.SelectProtocolWithOverride(caps.Term, override),
		cellW:    cellW,
		cellH:    cellH,
		profile:  termenv.ColorProfile(),
	}
}

// Protocol returns the active rendering protocol.
func (r *Renderer) Protocol() terminal.GraphicsProtocol {
	return r.protocol
}

// Render encodes img to fit within widthCells x heightCells. A nil image or
// disabled protocol returns an error; callers treat that as "skip the frame"
// rather than a fatal condition.
func (r *Renderer) Render(img image.Image, widthCells, heightCells int) (string, error) {
	if img == nil {
		return "", fmt.Errorf("image is nil")
	}
	if r.protocol == terminal.ProtocolNone {
		return "", fmt.Errorf("image rendering is disabled (protocol=none)")
	}

	fitted := FitToCells(img, widthCells, heightCells, r.cellW, r.cellH)

	switch r.protocol {
	case terminal.ProtocolKitty:
		return r.renderTermimg(fitted, termimg.Kitty, widthCells, heightCells)
	case terminal.ProtocolITerm2:
		return r.renderTermimg(fitted, termimg.ITerm2, widthCells, heightCells)
	case terminal.ProtocolSixel:
		return r.renderTermimg(fitted, termimg.Sixel, widthCells, heightCells)
	default:
		return r.renderHalfblocks(fitted, widthCells, heightCells)
	}
}

// renderTermimg delegates to go-termimg for the pixel protocols.
func (r *Renderer) renderTermimg(img image.Image, proto termimg.Protocol, widthCells, heightCells int) (string, error) {
	ti := termimg.New(img)
	if ti == nil {
		return "", fmt.Errorf("go-termimg: failed to create image wrapper")
	}
	ti.Protocol(proto).Size(widthCells, heightCells).Scale(termimg.ScaleFit)
	return ti.Render()
}

// renderHalfblocks renders with unicode upper-half-block characters. Each
// cell encodes two vertical pixels: top as foreground over U+2580, bottom as
// background. Colors degrade through the detected termenv profile on
// terminals without true color.
func (r *Renderer) renderHalfblocks(img image.Image, widthCells, heightCells int) (string, error) {
	// The fitted image is expected at widthCells x (heightCells*2) pixels;
	// re-fit defensively in case the caller passed a raw raster.
	px := ResampleNRGBA(img, widthCells, heightCells*2)
	bounds := px.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return "", nil
	}

	var b strings.Builder
	b.Grow(w * (h / 2) * 30)

	for y := 0; y < h; y += 2 {
		if y > 0 {
			b.WriteString("\x1b[0m\n")
		}
		for x := 0; x < w; x++ {
			top := px.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y)
			var bot color.NRGBA
			if y+1 < h {
				bot = px.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y+1)
			}

			switch {
			case top.A == 0 && bot.A == 0:
				b.WriteString("\x1b[0m ")
			case top.A == 0:
				b.WriteString(r.fg(bot.R, bot.G, bot.B))
				b.WriteString("\x1b[49m▄")
			case bot.A == 0 || y+1 >= h:
				b.WriteString(r.fg(top.R, top.G, top.B))
				b.WriteString("\x1b[49m▀")
			default:
				b.WriteString(r.fg(top.R, top.G, top.B))
				b.WriteString(r.bg(bot.R, bot.G, bot.B))
				b.WriteString("▀")
			}
		}
	}

	b.WriteString("\x1b[0m")
	return b.String(), nil
}

// fg returns a foreground escape for the renderer's color profile.
func (r *Renderer) fg(red, green, blue uint8) string {
	c := r.profile.Convert(termenv.RGBColor(fmt.Sprintf("#%02x%02x%02x", red, green, blue)))
	return termenv.CSI + c.Sequence(false) + "m"
}

// bg returns a background escape for the renderer's color profile.
func (r *Renderer) bg(red, green, blue uint8) string {
	c := r.profile.Convert(termenv.RGBColor(fmt.Sprintf("#%02x%02x%02x", red, green, blue)))
	return termenv.CSI + c.Sequence(true) + "m"
}

package display

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"gitlab.com/tinyland/lab/pulse-spark/pkg/terminal"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func halfblockRenderer() *Renderer {
	caps := &terminal.Capabilities{
		Term:     terminal.TermGeneric,
		Protocol: terminal.ProtocolHalfblocks,
		Size:     terminal.Size{Cols: 80, Rows: 24},
	}
	return NewRenderer(caps, "halfblocks")
}

func TestFitToCellsNoUpscale(t *testing.T) {
	img := solidImage(40, 20, color.NRGBA{R: 255, A: 255})
	got := FitToCells(img, 20, 10, 8, 16)
	if got != image.Image(img) {
		t.Error("image that already fits should be returned unmodified")
	}
}

func TestFitToCellsDownscales(t *testing.T) {
	img := solidImage(800, 400, color.NRGBA{R: 255, A: 255})
	got := FitToCells(img, 20, 10, 8, 16)
	b := got.Bounds()
	if b.Dx() > 20*8 || b.Dy() > 10*16 {
		t.Errorf("fitted size %dx%d exceeds cell area %dx%d", b.Dx(), b.Dy(), 20*8, 10*16)
	}
	if b.Dx() <= 0 || b.Dy() <= 0 {
		t.Errorf("fitted size %dx%d collapsed", b.Dx(), b.Dy())
	}
}

func TestFitToCellsClampsDegenerateArgs(t *testing.T) {
	img := solidImage(100, 100, color.NRGBA{R: 255, A: 255})
	got := FitToCells(img, 0, -1, 0, 0)
	if got == nil {
		t.Fatal("nil result for degenerate cell args")
	}
	if FitToCells(nil, 10, 10, 8, 16) != nil {
		t.Error("nil image should pass through as nil")
	}
}

func TestResampleNRGBA(t *testing.T) {
	img := solidImage(64, 32, color.NRGBA{G: 200, A: 255})
	got := ResampleNRGBA(img, 16, 8)
	b := got.Bounds()
	if b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("resampled to %dx%d, want 16x8", b.Dx(), b.Dy())
	}

	same := ResampleNRGBA(img, 64, 32)
	if same != img {
		t.Error("NRGBA image at target size should be returned as-is")
	}

	floored := ResampleNRGBA(img, 0, -2)
	b = floored.Bounds()
	if b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("degenerate target = %dx%d, want 1x1", b.Dx(), b.Dy())
	}
}

func TestRendererRejectsNilImage(t *testing.T) {
	r := halfblockRenderer()
	if _, err := r.Render(nil, 10, 5); err == nil {
		t.Error("expected error for nil image")
	}
}

func TestRendererProtocolNone(t *testing.T) {
	caps := &terminal.Capabilities{Term: terminal.TermGeneric}
	r := NewRenderer(caps, "none")
	if r.Protocol() != terminal.ProtocolNone {
		t.Fatalf("protocol = %v, want none", r.Protocol())
	}
	img := solidImage(10, 10, color.NRGBA{R: 255, A: 255})
	if _, err := r.Render(img, 10, 5); err == nil {
		t.Error("expected error with protocol none")
	}
}

func TestRenderHalfblocksShape(t *testing.T) {
	r := halfblockRenderer()
	img := solidImage(20, 20, color.NRGBA{R: 16, G: 185, B: 129, A: 255})

	out, err := r.Render(img, 10, 5)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Errorf("got %d rows, want 5 (two pixels per cell row)", len(lines))
	}
	if !strings.Contains(out, "▀") {
		t.Error("no halfblock characters in output")
	}
	if !strings.HasSuffix(out, "\x1b[0m") {
		t.Error("output does not reset attributes at the end")
	}
}

func TestRenderHalfblocksTransparency(t *testing.T) {
	r := halfblockRenderer()

	// Fully transparent raster renders as blank cells, no block glyphs.
	img := solidImage(8, 8, color.NRGBA{})
	out, err := r.Render(img, 4, 2)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.ContainsAny(out, "▀▄") {
		t.Error("transparent image produced block glyphs")
	}

	// Bottom-only pixels use the lower halfblock.
	split := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		split.SetNRGBA(x, 3, color.NRGBA{R: 255, A: 255})
	}
	out, err = r.Render(split, 4, 2)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "▄") {
		t.Error("bottom-only pixels should use the lower halfblock")
	}
}

func TestLuminance(t *testing.T) {
	if got := Luminance(color.NRGBA{}); got != 0 {
		t.Errorf("transparent luminance = %v, want 0", got)
	}
	white := Luminance(color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	if white < 0.99 {
		t.Errorf("white luminance = %v, want ~1", white)
	}
	green := Luminance(color.NRGBA{G: 185, A: 255})
	red := Luminance(color.NRGBA{R: 185, A: 255})
	if green <= red {
		t.Errorf("green should read brighter than red: %v vs %v", green, red)
	}
}

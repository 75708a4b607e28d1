package terminal

import (
	"os"
	"strconv"

	xterm "github.com/charmbracelet/x/term"
	"golang.org/x/sys/unix"
)

// Size represents terminal dimensions in both character cells and pixels.
type Size struct {
	Cols   int // character columns
	Rows   int // character rows
	PixelW int // total pixel width (0 if unknown)
	PixelH int // total pixel height (0 if unknown)
	CellW  int // pixel width per cell (0 if unknown)
	CellH  int // pixel height per cell (0 if unknown)
}

// Fallback cell pixel dimensions when the terminal does not report pixel
// sizes (common under multiplexers).
const (
	DefaultCellW = 8
	DefaultCellH = 16
)

// GetSize returns the current terminal dimensions. Strategies, in order:
//
//  1. TIOCGWINSZ ioctl on stdout, then stderr (cells and pixels)
//  2. x/term size query on stdout (cells only)
//  3. COLUMNS/LINES environment variables
//  4. 80x24 fallback
func GetSize() Size {
	for _, fd := range []uintptr{os.Stdout.Fd(), os.Stderr.Fd()} {
		if s := sizeFromIoctl(fd); s.Cols > 0 && s.Rows > 0 {
			return s
		}
	}
	if w, h, err := xterm.GetSize(os.Stdout.Fd()); err == nil && w > 0 && h > 0 {
		return Size{Cols: w, Rows: h}
	}
	return sizeFromEnv()
}

// CellPixels returns the per-cell pixel dimensions, substituting defaults
// when the terminal did not report pixel sizes.
func (s Size) CellPixels() (w, h int) {
	w, h = s.CellW, s.CellH
	if w <= 0 {
		w = DefaultCellW
	}
	if h <= 0 {
		h = DefaultCellH
	}
	return w, h
}

// Density derives a pixel-density scale for the chart raster from the cell
// height: a 16px cell renders at 1x, a 32px (retina) cell at 2x. The result
// is floored at 1 so degenerate reports never shrink the raster.
func (s Size) Density() float64 {
	_, cellH := s.CellPixels()
	d := float64(cellH) / float64(DefaultCellH)
	if d < 1 {
		return 1
	}
	return d
}

func sizeFromIoctl(fd uintptr) Size {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil {
		return Size{}
	}
	s := Size{
		Cols:   int(ws.Col),
		Rows:   int(ws.Row),
		PixelW: int(ws.Xpixel),
		PixelH: int(ws.Ypixel),
	}
	if s.PixelW > 0 && s.Cols > 0 {
		s.CellW = s.PixelW / s.Cols
	}
	if s.PixelH > 0 && s.Rows > 0 {
		s.CellH = s.PixelH / s.Rows
	}
	return s
}

func sizeFromEnv() Size {
	return Size{Cols: envInt("COLUMNS", 80), Rows: envInt("LINES", 24)}
}

func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

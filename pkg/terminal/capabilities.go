package terminal

import (
	"os"
	"sync"
)

// Capabilities is the cached capability summary for the current session:
// detected emulator, selected graphics protocol, size, and color support.
type Capabilities struct {
	Term      Terminal
	Protocol  GraphicsProtocol
	Size      Size
	TrueColor bool
	SSH       bool
	Mux       bool // inside tmux or screen
}

var (
	cached     *Capabilities
	detectOnce sync.Once
)

// DetectCapabilities performs full detection and caches the result.
// Detection runs exactly once; subsequent calls return the cached value.
func DetectCapabilities() *Capabilities {
	detectOnce.Do(func() {
		cached = detectAll()
	})
	return cached
}

func detectAll() *Capabilities {
	term := Detect()
	trueColor := term.SupportsTrueColor()
	if !trueColor {
		ct := os.Getenv("COLORTERM")
		trueColor = ct == "truecolor" || ct == "24bit"
	}
	return &Capabilities{
		Term:      term,
		Protocol:  SelectProtocol(term),
		Size:      GetSize(),
		TrueColor: trueColor,
		SSH:       isSSH(),
		Mux:       os.Getenv("TMUX") != "" || os.Getenv("STY") != "",
	}
}

package terminal

import "strings"

// GraphicsProtocol identifies which image rendering protocol to use for the
// chart raster.
type GraphicsProtocol int

const (
	ProtocolNone       GraphicsProtocol = iota // raster output disabled
	ProtocolKitty                              // kitty graphics protocol
	ProtocolITerm2                             // iTerm2 inline images
	ProtocolSixel                              // sixel graphics
	ProtocolHalfblocks                         // unicode half blocks with ANSI color
)

var protocolNames = [...]string{
	ProtocolNone:       "none",
	ProtocolKitty:      "kitty",
	ProtocolITerm2:     "iterm2",
	ProtocolSixel:      "sixel",
	ProtocolHalfblocks: "halfblocks",
}

// String returns the human-readable name of the graphics protocol.
func (p GraphicsProtocol) String() string {
	if int(p) < len(protocolNames) {
		return protocolNames[p]
	}
	return "unknown"
}

// SelectProtocol returns the best graphics protocol for the detected
// terminal. SSH sessions fall back to halfblocks: pixel protocols over SSH
// are unreliable, and a frozen half-drawn chart is worse than a coarse one.
func SelectProtocol(term Terminal) GraphicsProtocol {
	proto := baseProtocol(term)
	if isSSH() && proto != ProtocolHalfblocks {
		return ProtocolHalfblocks
	}
	return proto
}

func baseProtocol(term Terminal) GraphicsProtocol {
	switch term {
	case TermGhostty, TermKitty, TermWezTerm:
		return ProtocolKitty
	case TermITerm2:
		return ProtocolITerm2
	default:
		return ProtocolHalfblocks
	}
}

// SelectProtocolWithOverride lets configuration force a specific protocol.
// Empty or "auto" proceeds with detection; unknown values also fall back to
// detection rather than failing.
func SelectProtocolWithOverride(term Terminal, override string) GraphicsProtocol {
	switch strings.ToLower(override) {
	case "", "auto":
		return SelectProtocol(term)
	case "kitty":
		return ProtocolKitty
	case "iterm2":
		return ProtocolITerm2
	case "sixel":
		return ProtocolSixel
	case "halfblocks", "unicode", "half-blocks":
		return ProtocolHalfblocks
	case "none", "off", "disabled":
		return ProtocolNone
	default:
		return SelectProtocol(term)
	}
}

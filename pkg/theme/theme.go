// Package theme defines named color palettes for the sparkline display.
// The chart stroke is an rgba() string consumed by the engine's color
// parser; chrome colors are hex strings for lipgloss styling.
package theme

import (
	"sort"
	"strings"
	"sync"
)

// Theme is a complete palette for one rendering of the chart and its chrome.
type Theme struct {
	Name string

	// Stroke is the chart line color as an "rgba(r,g,b,a)" string, passed
	// through to the engine (which owns parsing and fallback).
	Stroke string

	// Chrome colors (hex) for the text around the raster.
	Foreground string
	Dim        string
	Accent     string
	TooltipFG  string
	TooltipBG  string
	HelpKey    string
	HelpDesc   string
}

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	for _, t := range builtins() {
		registry[strings.ToLower(t.Name)] = t
	}
}

// Get returns a named theme, falling back to "default" if not found.
func Get(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t
	}
	return registry["default"]
}

// Register adds or replaces a theme under its lowercased name.
func Register(t Theme) {
	if t.Name == "" {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(t.Name)] = t
}

// Names returns all available theme names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// builtins returns the compiled-in palettes. "crimson" exists specifically
// to exercise the red glow signature; the others glow green.
func builtins() []Theme {
	return []Theme{
		{
			Name:       "default",
			Stroke:     "rgba(16,185,129,1)",
			Foreground: "#E5E7EB",
			Dim:        "#6B7280",
			Accent:     "#34D399",
			TooltipFG:  "#0B1120",
			TooltipBG:  "#34D399",
			HelpKey:    "#A78BFA",
			HelpDesc:   "#9CA3AF",
		},
		{
			Name:       "crimson",
			Stroke:     "rgba(239,68,68,0.9)",
			Foreground: "#E5E7EB",
			Dim:        "#6B7280",
			Accent:     "#F87171",
			TooltipFG:  "#1F0A0A",
			TooltipBG:  "#F87171",
			HelpKey:    "#FCA5A5",
			HelpDesc:   "#9CA3AF",
		},
		{
			Name:       "sky",
			Stroke:     "rgba(56,189,248,1)",
			Foreground: "#E0F2FE",
			Dim:        "#64748B",
			Accent:     "#38BDF8",
			TooltipFG:  "#082F49",
			TooltipBG:  "#7DD3FC",
			HelpKey:    "#BAE6FD",
			HelpDesc:   "#94A3B8",
		},
	}
}

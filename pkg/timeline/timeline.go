// Package timeline loads the milestone entries whose growth metrics the
// chart visualizes. The loader follows the engine's degradation policy: a
// malformed entry field falls back to a default rather than rejecting the
// file, so a partially-edited timeline still renders.
package timeline

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry is one timeline milestone.
type Entry struct {
	// Title names the milestone and doubles as the accessible label when
	// no explicit one is configured.
	Title string `yaml:"title"`

	// Metric is the growth value in [0,1000] (tenths of a percent). Nil
	// or non-finite values render as the engine default.
	Metric *float64 `yaml:"metric"`

	// Color optionally overrides the theme stroke, as an rgba() string.
	Color string `yaml:"color"`

	// SpanStart / SpanEnd are the axis labels ("2019", "2026"). Both
	// empty omits axis text for this entry.
	SpanStart string `yaml:"span_start"`
	SpanEnd   string `yaml:"span_end"`

	// Compact renders this entry with the tight style.
	Compact bool `yaml:"compact"`
}

// MetricValue returns the entry's metric, or NaN when absent so the engine
// substitutes its default.
func (e Entry) MetricValue() float64 {
	if e.Metric == nil {
		return math.NaN()
	}
	return *e.Metric
}

// Labels returns the axis label pair and whether any text is present.
func (e Entry) Labels() (left, right string, ok bool) {
	if e.SpanStart == "" && e.SpanEnd == "" {
		return "", "", false
	}
	return e.SpanStart, e.SpanEnd, true
}

// document is the YAML file shape.
type document struct {
	Entries []Entry `yaml:"entries"`
}

// Load parses a timeline YAML file. File-level errors (missing file, bad
// YAML) are returned; entry-level oddities are left for the engine's
// defaults to absorb.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read timeline %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes timeline YAML from memory.
func Parse(data []byte) ([]Entry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse timeline: %w", err)
	}
	for i := range doc.Entries {
		if doc.Entries[i].Title == "" {
			doc.Entries[i].Title = fmt.Sprintf("milestone %d", i+1)
		}
	}
	return doc.Entries, nil
}

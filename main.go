// pulse-spark renders an animated growth sparkline in the terminal.
//
// It visualizes a single growth metric (0-1000, shown as "+NN%") over a
// labeled time span, animating the line from its baseline to the metric's
// height with cosine easing. Milestones come from a timeline YAML file, a
// -metric flag, or a live system collector.
//
// Usage:
//
//	pulse-spark [flags]
//
// Flags:
//
//	-metric float    Growth metric (0-1000); omit to use the timeline file
//	-timeline string Path to timeline YAML (default from config)
//	-color string    Stroke color as rgba(r,g,b,a)
//	-compact         Tighter paddings and thinner stroke
//	-duration int    Animation duration in ms (clamped to 200-4000)
//	-labels string   Axis labels as "left,right"
//	-theme string    Theme name (default, crimson, sky)
//	-protocol string Graphics protocol override (kitty|iterm2|sixel|halfblocks|none)
//	-live            Animate a live system metric instead of the timeline
//	-once            Render the final frame to stdout and exit
//	-config string   Path to configuration file
//	-verbose         Enable debug logging
//	-version         Print version and exit
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"gitlab.com/tinyland/lab/pulse-spark/pkg/app"
	"gitlab.com/tinyland/lab/pulse-spark/pkg/collectors"
	"gitlab.com/tinyland/lab/pulse-spark/pkg/config"
	"gitlab.com/tinyland/lab/pulse-spark/pkg/display"
	"gitlab.com/tinyland/lab/pulse-spark/pkg/raster"
	"gitlab.com/tinyland/lab/pulse-spark/pkg/spark"
	"gitlab.com/tinyland/lab/pulse-spark/pkg/terminal"
	"gitlab.com/tinyland/lab/pulse-spark/pkg/theme"
	"gitlab.com/tinyland/lab/pulse-spark/pkg/timeline"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		metricFlag  = flag.Float64("metric", math.NaN(), "Growth metric (0-1000)")
		timelineP   = flag.String("timeline", "", "Path to timeline YAML file")
		colorFlag   = flag.String("color", "", "Stroke color as rgba(r,g,b,a)")
		compactFlag = flag.Bool("compact", false, "Tighter paddings and thinner stroke")
		durationMs  = flag.Int("duration", 0, "Animation duration in ms (clamped to 200-4000)")
		labelsFlag  = flag.String("labels", "", `Axis labels as "left,right"`)
		themeFlag   = flag.String("theme", "", "Theme name")
		protoFlag   = flag.String("protocol", "", "Graphics protocol override")
		liveFlag    = flag.Bool("live", false, "Animate a live system metric")
		onceFlag    = flag.Bool("once", false, "Render the final frame and exit")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("pulse-spark %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg, *colorFlag, *compactFlag, *durationMs, *labelsFlag, *themeFlag, *protoFlag)

	th := theme.Get(cfg.Theme.Name)
	if cfg.Theme.Path != "" {
		custom, err := theme.LoadFile(cfg.Theme.Path)
		if err != nil {
			logger.Warn("custom theme ignored", "err", err)
		} else {
			th = custom
		}
	}

	entries := loadEntries(cfg, *timelineP, *metricFlag, logger)

	caps := terminal.DetectCapabilities()
	renderer := display.NewRenderer(caps, cfg.Image.Protocol)
	logger.Debug("terminal detected",
		"term", caps.Term, "protocol", renderer.Protocol(), "density", caps.Size.Density())

	if *onceFlag {
		if err := renderOnce(cfg, th, entries, renderer, caps.Size); err != nil {
			fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "stdout is not a terminal; use -once for non-interactive output")
		os.Exit(1)
	}

	var collector collectors.Collector
	if *liveFlag || cfg.Collector.Enabled {
		collector = collectors.NewGrowth(cfg.Collector.Source, cfg.Collector.Interval.Duration)
	}

	program := tea.NewProgram(
		app.New(app.Options{
			Cfg:       cfg,
			Theme:     th,
			Entries:   entries,
			Renderer:  renderer,
			Size:      caps.Size,
			Collector: collector,
			Logger:    logger,
		}),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to the search path when no
// explicit path is given.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// applyFlags layers command-line flags over the loaded configuration.
func applyFlags(cfg *config.Config, color string, compact bool, durationMs int, labels, themeName, proto string) {
	if color != "" {
		cfg.Spark.Color = color
	}
	if compact {
		cfg.Spark.Compact = true
	}
	if durationMs > 0 {
		cfg.Spark.Duration.Duration = time.Duration(durationMs) * time.Millisecond
	}
	if labels != "" {
		parts := strings.SplitN(labels, ",", 2)
		cfg.Spark.LabelLeft = strings.TrimSpace(parts[0])
		if len(parts) > 1 {
			cfg.Spark.LabelRight = strings.TrimSpace(parts[1])
		}
	}
	if themeName != "" {
		cfg.Theme.Name = themeName
	}
	if proto != "" {
		cfg.Image.Protocol = proto
	}
}

// loadEntries resolves the milestone list: -metric wins, then the timeline
// file, then a single default entry.
func loadEntries(cfg *config.Config, timelinePath string, metric float64, logger *slog.Logger) []timeline.Entry {
	if !math.IsNaN(metric) {
		m := metric
		return []timeline.Entry{{Title: "growth", Metric: &m}}
	}

	path := timelinePath
	if path == "" {
		path = cfg.Timeline.Path
	}
	if path != "" {
		entries, err := timeline.Load(path)
		if err != nil {
			logger.Warn("timeline file ignored", "err", err)
		} else if len(entries) > 0 {
			return entries
		}
	}

	return []timeline.Entry{{Title: "growth"}}
}

// renderOnce paints the final frame (progress 1) at the current terminal
// size and writes it to stdout.
func renderOnce(cfg *config.Config, th theme.Theme, entries []timeline.Entry, renderer *display.Renderer, size terminal.Size) error {
	cols := size.Cols - 2
	rows := size.Rows - 4
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	cellW, cellH := size.CellPixels()
	density := size.Density()

	entry := entries[0]
	stroke := th.Stroke
	if entry.Color != "" {
		stroke = entry.Color
	}
	if cfg.Spark.Color != "" {
		stroke = cfg.Spark.Color
	}

	ov := spark.Unset()
	ov.LineWidth = config.Override(cfg.Spark.LineWidth)
	ov.GlowRadius = config.Override(cfg.Spark.GlowRadius)
	ov.AreaAlpha = config.Override(cfg.Spark.AreaAlpha)
	if cfg.Spark.Duration.Duration > 0 {
		ov.DurationMs = float64(cfg.Spark.Duration.Duration.Milliseconds())
	}

	logicalW := int(float64(cols*cellW) / density)
	logicalH := int(float64(rows*cellH) / density)
	model := spark.Build(entry.MetricValue(), spark.Size{Width: logicalW, Height: logicalH}, spark.Style{
		Color:   stroke,
		Compact: cfg.Spark.Compact || entry.Compact,
	}, ov)

	surface := raster.NewSurface(model.Width, model.Height, density)
	var labels *raster.AxisLabels
	if cfg.Spark.LabelLeft != "" || cfg.Spark.LabelRight != "" {
		labels = &raster.AxisLabels{Left: cfg.Spark.LabelLeft, Right: cfg.Spark.LabelRight}
	} else if left, right, ok := entry.Labels(); ok {
		labels = &raster.AxisLabels{Left: left, Right: right}
	}
	raster.Paint(surface, model, 1, labels)

	frame, err := renderer.Render(surface.Image(), cols, rows)
	if err != nil {
		return err
	}
	fmt.Println(frame)
	fmt.Printf("chart: %s, %s growth\n", entry.Title, model.Label)
	return nil
}

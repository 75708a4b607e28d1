package app

import (
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/pulse-spark/pkg/collectors"
	"gitlab.com/tinyland/lab/pulse-spark/pkg/config"
	"gitlab.com/tinyland/lab/pulse-spark/pkg/display"
	"gitlab.com/tinyland/lab/pulse-spark/pkg/raster"
	"gitlab.com/tinyland/lab/pulse-spark/pkg/spark"
	"gitlab.com/tinyland/lab/pulse-spark/pkg/terminal"
	"gitlab.com/tinyland/lab/pulse-spark/pkg/theme"
	"gitlab.com/tinyland/lab/pulse-spark/pkg/timeline"
)

// chartZone is the bubblezone id for the chart raster area.
const chartZone = "pulse-spark/chart"

// Options configures a new App.
type Options struct {
	Cfg       *config.Config
	Theme     theme.Theme
	Entries   []timeline.Entry
	Renderer  *display.Renderer
	Size      terminal.Size
	Collector collectors.Collector // nil disables live mode
	Logger    *slog.Logger
}

// App is the Bubbletea model. It owns the cached spark.Model handle: the
// handle is only ever replaced wholesale by the rebuild path (resize, entry
// change, metric update, visibility re-entry), and only the frame path
// reads it, so readers never observe a partial write.
type App struct {
	opts   Options
	zones  *zone.Manager
	keys   keyMap
	help   help.Model
	logger *slog.Logger

	// Terminal geometry, in cells and pixels-per-cell.
	width, height int
	cellW, cellH  int
	density       float64

	// Chart placement within the view, in cells.
	chartCols, chartRows int

	entry  int     // index into opts.Entries
	metric float64 // current metric input (NaN = engine default)

	model    spark.Model
	hasModel bool
	driver   *spark.Driver
	gen      int // build generation; FrameMsg from older gens is stale
	surface  *raster.Surface
	frame    string // encoded raster of the last painted frame

	visible  bool
	hover    *spark.Projection
	hoverCol int
	showHelp bool
	lastErr  error
}

// New builds the App model.
func New(opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	cellW, cellH := opts.Size.CellPixels()
	a := &App{
		opts:    opts,
		zones:   zone.New(),
		keys:    defaultKeyMap(),
		help:    help.New(),
		logger:  opts.Logger,
		cellW:   cellW,
		cellH:   cellH,
		density: opts.Size.Density(),
		driver:  spark.NewDriver(),
		visible: true,
		metric:  math.NaN(),
	}
	if len(opts.Entries) > 0 {
		a.metric = opts.Entries[0].MetricValue()
	}
	return a
}

// Init implements tea.Model. The first WindowSizeMsg triggers the initial
// build, so Init only has to start the collector loop.
func (a *App) Init() tea.Cmd {
	if a.opts.Collector != nil {
		return CollectCmd(a.opts.Collector)
	}
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a, a.onResize(msg)

	case tea.FocusMsg:
		return a, a.onVisible()

	case tea.BlurMsg:
		a.onHidden()
		return a, nil

	case FrameMsg:
		return a, a.onFrame(msg)

	case tea.MouseMsg:
		a.onMouse(msg)
		return a, nil

	case MetricMsg:
		return a, a.onMetric(msg)

	case sampleMsg:
		if a.opts.Collector != nil {
			return a, CollectCmd(a.opts.Collector)
		}
		return a, nil

	case tea.KeyMsg:
		return a.onKey(msg)
	}
	return a, nil
}

// onResize is the resize coordinator: re-measure, rebuild the model with
// the new logical size, and restart the animation.
func (a *App) onResize(msg tea.WindowSizeMsg) tea.Cmd {
	a.width = msg.Width
	a.height = msg.Height

	// Chart area: full width minus a one-cell margin each side; leave rows
	// for title, label line, tooltip, and help.
	a.chartCols = msg.Width - 2
	if a.chartCols < 1 {
		a.chartCols = 1
	}
	a.chartRows = msg.Height - 6
	if a.chartRows < 1 {
		a.chartRows = 1
	}

	return a.rebuild(time.Now())
}

// onVisible handles the visibility gate's on transition: a full rebuild
// with a restart from progress zero, never a resume.
func (a *App) onVisible() tea.Cmd {
	if a.visible {
		return nil
	}
	a.visible = true
	a.logger.Debug("visibility regained, restarting animation")
	return a.rebuild(time.Now())
}

// onHidden suspends the animation without erasing the last frame.
func (a *App) onHidden() {
	if !a.visible {
		return
	}
	a.visible = false
	a.driver.Suspend()
	a.logger.Debug("visibility lost, animation suspended")
}

// onFrame advances the animation. Frames from a superseded build
// generation are dropped: the rebuild path bumped gen, which cancels the
// old chain.
func (a *App) onFrame(msg FrameMsg) tea.Cmd {
	if msg.Gen != a.gen || !a.hasModel {
		return nil
	}
	eased, done := a.driver.Tick(msg.Time)
	a.paint(eased)
	if !done && a.visible {
		return FrameCmd(a.gen)
	}
	return nil
}

// onMouse feeds the hover projector. The projection reads the cached model
// and is purely advisory: it renders a tooltip and nothing else.
func (a *App) onMouse(msg tea.MouseMsg) {
	if !a.hasModel {
		return
	}
	info := a.zones.Get(chartZone)
	if info.IsZero() || !info.InBounds(msg) {
		a.hover = nil
		return
	}
	col, _ := info.Pos(msg)
	proj := spark.Project(a.model, a.chartPx(col))
	a.hover = &proj
	a.hoverCol = col
}

// chartPx converts a zone-relative column to the logical pixel at the center
// of that raster cell. The frame is indented one cell inside the zone, so
// column 0 is the left margin and raster cell i sits at column i+1.
func (a *App) chartPx(col int) float64 {
	return (float64(col-1) + 0.5) * float64(a.cellW) / a.density
}

// onMetric replaces the metric input and rebuilds, then schedules the next
// sample. A failed sample keeps the previous metric on screen.
func (a *App) onMetric(msg MetricMsg) tea.Cmd {
	var cmds []tea.Cmd
	if a.opts.Collector != nil {
		cmds = append(cmds, NextSampleCmd(a.opts.Collector))
	}
	if msg.Err != nil {
		a.lastErr = msg.Err
		a.logger.Warn("metric sample failed", "source", msg.Source, "err", msg.Err)
		return tea.Batch(cmds...)
	}
	a.lastErr = nil
	a.metric = msg.Value
	cmds = append(cmds, a.rebuild(time.Now()))
	return tea.Batch(cmds...)
}

func (a *App) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := a.keys
	switch {
	case key.Matches(msg, k.Quit):
		return a, tea.Quit
	case key.Matches(msg, k.Next):
		return a, a.switchEntry(a.entry + 1)
	case key.Matches(msg, k.Prev):
		return a, a.switchEntry(a.entry - 1)
	case key.Matches(msg, k.Replay):
		return a, a.rebuild(time.Now())
	case key.Matches(msg, k.Theme):
		return a, a.cycleTheme()
	case key.Matches(msg, k.Help):
		a.showHelp = !a.showHelp
		return a, nil
	}
	return a, nil
}

// switchEntry moves to another timeline milestone, wrapping at the ends,
// and rebuilds. Ignored in live collector mode.
func (a *App) switchEntry(idx int) tea.Cmd {
	n := len(a.opts.Entries)
	if n == 0 || a.opts.Collector != nil {
		return nil
	}
	a.entry = ((idx % n) + n) % n
	a.metric = a.opts.Entries[a.entry].MetricValue()
	return a.rebuild(time.Now())
}

// cycleTheme advances through the registered themes. Names() returns
// lowercased registry keys, so the current name is lowercased for the match.
func (a *App) cycleTheme() tea.Cmd {
	names := theme.Names()
	current := strings.ToLower(a.opts.Theme.Name)
	for i, name := range names {
		if name == current {
			a.opts.Theme = theme.Get(names[(i+1)%len(names)])
			return a.rebuild(time.Now())
		}
	}
	if len(names) > 0 {
		a.opts.Theme = theme.Get(names[0])
		return a.rebuild(time.Now())
	}
	return nil
}

// rebuild is the single writer of the cached model handle. It derives the
// logical surface size from the chart cell area, builds a fresh Model,
// replaces the handle wholesale, restarts the driver, paints frame zero,
// and bumps the generation so in-flight frame chains die.
func (a *App) rebuild(now time.Time) tea.Cmd {
	if a.chartCols <= 0 || a.chartRows <= 0 {
		return nil
	}
	a.gen++

	logicalW := int(float64(a.chartCols*a.cellW) / a.density)
	logicalH := int(float64(a.chartRows*a.cellH) / a.density)

	entry := a.currentEntry()
	sp := a.opts.Cfg.Spark

	// Stroke precedence: explicit config color, then the entry's own color,
	// then the theme.
	stroke := a.opts.Theme.Stroke
	if entry.Color != "" {
		stroke = entry.Color
	}
	if sp.Color != "" {
		stroke = sp.Color
	}

	ov := spark.Unset()
	ov.LineWidth = config.Override(sp.LineWidth)
	ov.GlowRadius = config.Override(sp.GlowRadius)
	ov.AreaAlpha = config.Override(sp.AreaAlpha)
	if sp.Duration.Duration > 0 {
		ov.DurationMs = float64(sp.Duration.Duration.Milliseconds())
	}

	a.model = spark.Build(a.metric, spark.Size{Width: logicalW, Height: logicalH}, spark.Style{
		Color:   stroke,
		Compact: sp.Compact || entry.Compact,
	}, ov)
	a.hasModel = true
	a.surface = raster.NewSurface(a.model.Width, a.model.Height, a.density)
	a.hover = nil

	a.driver.Start(now, a.model.Duration)
	a.paint(0)

	a.logger.Debug("model rebuilt",
		"gen", a.gen,
		"size", spark.Size{Width: logicalW, Height: logicalH},
		"metric", a.model.Value,
		"duration", a.model.Duration,
	)

	if a.visible {
		return FrameCmd(a.gen)
	}
	return nil
}

// paint renders the current model at the given eased progress and encodes
// the raster for the terminal.
func (a *App) paint(progress float64) {
	if a.surface == nil {
		return
	}
	labels := a.axisLabels()
	raster.Paint(a.surface, a.model, progress, labels)
	frame, err := a.opts.Renderer.Render(a.surface.Image(), a.chartCols, a.chartRows)
	if err != nil {
		// Keep the previous frame; a skipped encode is invisible compared
		// to a blanked chart.
		a.logger.Debug("frame encode skipped", "err", err)
		return
	}
	a.frame = frame
}

// axisLabels resolves the label pair: config wins, then the timeline entry.
func (a *App) axisLabels() *raster.AxisLabels {
	sp := a.opts.Cfg.Spark
	if sp.LabelLeft != "" || sp.LabelRight != "" {
		return &raster.AxisLabels{Left: sp.LabelLeft, Right: sp.LabelRight}
	}
	if left, right, ok := a.currentEntry().Labels(); ok {
		return &raster.AxisLabels{Left: left, Right: right}
	}
	return nil
}

func (a *App) currentEntry() timeline.Entry {
	if a.entry >= 0 && a.entry < len(a.opts.Entries) {
		return a.opts.Entries[a.entry]
	}
	return timeline.Entry{}
}

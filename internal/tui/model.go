package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/akyairhashvil/sandglass/internal/config"
	"github.com/akyairhashvil/sandglass/internal/database"
	"github.com/akyairhashvil/sandglass/internal/engine"
	"github.com/akyairhashvil/sandglass/internal/models"
	"github.com/akyairhashvil/sandglass/internal/util"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode selects which bindings and which input are active.
type Mode int

const (
	ModeTimer Mode = iota
	ModeCustomDuration
	ModeAlertTimes
)

// AlertPlayer plays engine alerts and owns the audio resource.
type AlertPlayer interface {
	engine.AlertSink
	Close() error
}

// Options configures NewModel. Zero values fall back to defaults.
type Options struct {
	Presets      []int // seconds
	TickInterval time.Duration
	// Duration overrides the stored duration for this run when positive.
	Duration  time.Duration
	ReportDir string
	Now       func() time.Time
}

// sessionTracker follows one countdown from its first start to its end.
type sessionTracker struct {
	active    bool
	startedAt time.Time
	ran       time.Duration
	flips     int
}

// Model is the root bubbletea model.
type Model struct {
	ctx      context.Context
	store    database.Repository
	engine   *engine.Engine
	player   AlertPlayer
	prefs    models.Preferences
	registry *HandlerRegistry

	presets   []int
	interval  time.Duration
	reportDir string
	now       func() time.Time

	mode     Mode
	input    textinput.Model
	progress progress.Model
	showHelp bool
	width    int
	height   int

	tickGen  int
	lastTick time.Time
	session  sessionTracker

	bellGen int
	ringing bool

	message  string
	inputErr string
	quitting bool
}

// NewModel loads preferences from store and builds a stopped timer.
func NewModel(ctx context.Context, store database.Repository, player AlertPlayer, opts Options) (Model, error) {
	prefs := store.LoadPreferences(ctx)
	duration := prefs.DurationValue()
	if opts.Duration > 0 {
		duration = opts.Duration
	}

	var sink engine.AlertSink
	if player != nil {
		sink = player
	}
	eng, err := engine.New(duration, sink)
	if err != nil {
		return Model{}, fmt.Errorf("create timer: %w", err)
	}

	m := Model{
		ctx:       ctx,
		store:     store,
		engine:    eng,
		player:    player,
		prefs:     prefs,
		registry:  NewHandlerRegistry(),
		presets:   opts.Presets,
		interval:  opts.TickInterval,
		reportDir: opts.ReportDir,
		now:       opts.Now,
		progress:  progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	if len(m.presets) == 0 {
		m.presets = config.DefaultPresets
	}
	if m.interval <= 0 {
		m.interval = config.TickInterval
	}
	if m.reportDir == "" {
		m.reportDir = util.ReportsDir(config.AppName)
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.progress.Width = config.MinProgressWidth

	ti := textinput.New()
	ti.Prompt = "> "
	m.input = ti

	m.applyAlertConfig()
	m.registerBindings()
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Snapshot exposes the engine state for tests and the CLI.
func (m Model) Snapshot() engine.Snapshot {
	return m.engine.Snapshot()
}

func (m Model) Preferences() models.Preferences {
	return m.prefs
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil
	case TickMsg:
		return m.handleTick(msg)
	case BellMsg:
		return m.handleBell()
	case bellDoneMsg:
		if msg.gen == m.bellGen {
			m.ringing = false
		}
		return m, nil
	case reportDoneMsg:
		if msg.err != nil {
			util.LogError("export report", msg.err)
			m.message = "Report failed: " + msg.err.Error()
		} else {
			m.message = "Report saved to " + msg.path
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		if m.mode != ModeTimer {
			return m.handleInputMode(msg)
		}
		if next, cmd, handled := m.registry.Handle(m, msg.String()); handled {
			return next, cmd
		}
	}
	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	m.width, m.height = msg.Width, msg.Height
	m.progress.Width = util.Clamp(m.width-8, config.MinProgressWidth, config.MaxProgressWidth)
	return m
}

func (m Model) handleTick(msg TickMsg) (Model, tea.Cmd) {
	if msg.Gen != m.tickGen || !m.engine.Snapshot().Running {
		return m, nil
	}
	delta := msg.At.Sub(m.lastTick)
	m.lastTick = msg.At
	if delta > config.MaxTickDelta {
		delta = config.MaxTickDelta
	}
	if delta < 0 {
		delta = 0
	}
	before := m.engine.Snapshot().Remaining
	for _, a := range m.engine.Tick(delta) {
		if a.Kind == engine.AlertThreshold {
			m.message = util.FormatClock(a.Threshold) + " left"
		}
	}
	m.session.ran += before - m.engine.Snapshot().Remaining

	if !m.engine.Snapshot().Running {
		m.message = "Time's up"
		m.endSession(true)
		m.stopTicking()
		return m, nil
	}
	return m, tickCmd(m.tickGen, m.interval)
}

// startTicking begins a fresh tick loop; earlier loops are invalidated.
func (m *Model) startTicking() tea.Cmd {
	m.tickGen++
	m.lastTick = m.now()
	return tickCmd(m.tickGen, m.interval)
}

func (m *Model) stopTicking() {
	m.tickGen++
}

func (m *Model) applyAlertConfig() {
	m.engine.SetAlertConfig(engine.AlertConfig{
		Enabled:     m.prefs.SoundsEnabled,
		AlertTimes:  m.prefs.AlertDurations(),
		AlertFinish: m.prefs.AlertFinish,
	})
}

func (m *Model) savePreferences() {
	if err := m.store.SavePreferences(m.ctx, m.prefs); err != nil {
		util.LogError("save preferences", err)
		m.message = "Could not save preferences"
	}
}

// endSession records the tracked countdown, if any time ran.
func (m *Model) endSession(completed bool) {
	s := m.session
	m.session = sessionTracker{}
	if !s.active || s.ran <= 0 {
		return
	}
	rec := models.Session{
		StartedAt: s.startedAt,
		EndedAt:   m.now(),
		Duration:  m.engine.Snapshot().Total,
		Elapsed:   s.ran,
		Flips:     s.flips,
		Completed: completed,
	}
	if _, err := m.store.RecordSession(m.ctx, rec); err != nil {
		util.LogError("record session", err)
	}
}

func (m Model) quit() (Model, tea.Cmd) {
	m.engine.Pause()
	m.stopTicking()
	m.endSession(false)
	if m.player != nil {
		util.LogError("close audio", m.player.Close())
	}
	m.quitting = true
	return m, tea.Quit
}

package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/akyairhashvil/sandglass/internal/config"
	"github.com/akyairhashvil/sandglass/internal/util"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) registerBindings() {
	timer := []Mode{ModeTimer}
	m.registry.Register(KeyBinding{Key: " ", Label: "space", Handler: handleStartPause, Description: "start/pause", Modes: timer, Priority: 10})
	m.registry.Register(KeyBinding{Key: "r", Handler: handleReset, Description: "reset", Modes: timer, Priority: 9})
	m.registry.Register(KeyBinding{Key: "f", Handler: handleFlip, Description: "flip", Modes: timer, Priority: 9})
	for i := range m.presets {
		if i >= 9 {
			break
		}
		key := strconv.Itoa(i + 1)
		desc := ""
		if i == 0 {
			desc = "presets"
		}
		label := ""
		if len(m.presets) > 1 {
			label = fmt.Sprintf("1-%d", min(len(m.presets), 9))
		}
		m.registry.Register(KeyBinding{Key: key, Label: label, Handler: handlePreset, Description: desc, Modes: timer, Priority: 8})
	}
	m.registry.Register(KeyBinding{Key: "c", Handler: handleCustomStart, Description: "custom", Modes: timer, Priority: 7})
	m.registry.Register(KeyBinding{Key: "e", Handler: handleAlertTimesStart, Description: "alert times", Modes: timer, Priority: 6})
	m.registry.Register(KeyBinding{Key: "s", Handler: handleToggleSound, Description: "sound", Modes: timer, Priority: 5})
	m.registry.Register(KeyBinding{Key: "a", Handler: handleToggleFinish, Description: "finish alert", Modes: timer, Priority: 5})
	m.registry.Register(KeyBinding{Key: "p", Handler: handleExportReport, Description: "report", Modes: timer, Priority: 4})
	m.registry.Register(KeyBinding{Key: "?", Handler: handleToggleHelp, Description: "help", Modes: timer, Priority: 1})
	m.registry.Register(KeyBinding{Key: "q", Handler: handleQuit, Description: "quit", Modes: timer, Priority: 0})
}

func handleStartPause(m Model, _ string) (Model, tea.Cmd, bool) {
	if m.engine.Snapshot().Running {
		m.engine.Pause()
		m.stopTicking()
		m.message = "Paused"
		return m, nil, true
	}
	if !m.engine.Start() {
		m.message = "Nothing left to count; reset or flip"
		return m, nil, true
	}
	if !m.session.active {
		m.session = sessionTracker{active: true, startedAt: m.now()}
	}
	m.message = ""
	return m, m.startTicking(), true
}

func handleReset(m Model, _ string) (Model, tea.Cmd, bool) {
	m.endSession(false)
	m.engine.Reset()
	m.stopTicking()
	m.message = "Reset"
	return m, nil, true
}

func handleFlip(m Model, _ string) (Model, tea.Cmd, bool) {
	m.engine.Flip()
	if m.session.active {
		m.session.flips++
	}
	if !m.engine.Snapshot().Running {
		m.stopTicking()
	}
	m.message = "Flipped"
	return m, nil, true
}

func handlePreset(m Model, key string) (Model, tea.Cmd, bool) {
	idx, err := strconv.Atoi(key)
	if err != nil || idx < 1 || idx > len(m.presets) {
		return m, nil, false
	}
	m.setDuration(time.Duration(m.presets[idx-1]) * time.Second)
	return m, nil, true
}

// setDuration replaces the countdown and persists it as the last used duration.
func (m *Model) setDuration(d time.Duration) {
	m.endSession(false)
	if err := m.engine.SetDuration(d); err != nil {
		m.message = err.Error()
		return
	}
	m.stopTicking()
	m.prefs.Duration = int(d / time.Second)
	m.savePreferences()
	m.message = "Duration " + util.FormatClock(d)
}

func handleCustomStart(m Model, _ string) (Model, tea.Cmd, bool) {
	m.mode = ModeCustomDuration
	m.inputErr = ""
	m.input.Reset()
	m.input.Placeholder = "minutes"
	m.input.CharLimit = 5
	m.input.Width = 10
	return m, m.input.Focus(), true
}

func handleAlertTimesStart(m Model, _ string) (Model, tea.Cmd, bool) {
	m.mode = ModeAlertTimes
	m.inputErr = ""
	m.input.Reset()
	m.input.Placeholder = "seconds, e.g. 30, 5"
	m.input.CharLimit = config.MaxAlertTimesLength
	m.input.Width = 30
	m.input.SetValue(util.JoinInts(m.prefs.AlertTimes))
	m.input.CursorEnd()
	return m, m.input.Focus(), true
}

func handleToggleSound(m Model, _ string) (Model, tea.Cmd, bool) {
	m.prefs.SoundsEnabled = !m.prefs.SoundsEnabled
	m.applyAlertConfig()
	m.savePreferences()
	m.message = "Sound " + onOff(m.prefs.SoundsEnabled)
	return m, nil, true
}

func handleToggleFinish(m Model, _ string) (Model, tea.Cmd, bool) {
	m.prefs.AlertFinish = !m.prefs.AlertFinish
	m.applyAlertConfig()
	m.savePreferences()
	m.message = "Finish alert " + onOff(m.prefs.AlertFinish)
	return m, nil, true
}

func handleExportReport(m Model, _ string) (Model, tea.Cmd, bool) {
	store, prefs, ctx := m.store, m.prefs, m.ctx
	now := m.now()
	path := filepath.Join(m.reportDir, "sandglass-"+now.Format("20060102-150405")+".pdf")
	m.message = "Exporting report..."
	return m, func() tea.Msg {
		sessions, err := store.ListSessions(ctx, config.MaxReportSessions)
		if err != nil {
			return reportDoneMsg{err: err}
		}
		if err := GeneratePDFReport(path, sessions, prefs, now); err != nil {
			return reportDoneMsg{err: err}
		}
		return reportDoneMsg{path: path}
	}, true
}

func handleToggleHelp(m Model, _ string) (Model, tea.Cmd, bool) {
	m.showHelp = !m.showHelp
	return m, nil, true
}

func handleQuit(m Model, _ string) (Model, tea.Cmd, bool) {
	next, cmd := m.quit()
	return next, cmd, true
}

func (m Model) handleInputMode(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeTimer
		m.inputErr = ""
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		var err error
		switch m.mode {
		case ModeCustomDuration:
			err = m.submitCustomDuration(m.input.Value())
		case ModeAlertTimes:
			err = m.submitAlertTimes(m.input.Value())
		}
		if err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.mode = ModeTimer
		m.inputErr = ""
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

var errCustomMinutes = errors.New("enter a whole number of minutes")

func (m *Model) submitCustomDuration(raw string) error {
	minutes, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || minutes <= 0 {
		return errCustomMinutes
	}
	if minutes > config.MaxCustomMinutes {
		return fmt.Errorf("at most %d minutes", config.MaxCustomMinutes)
	}
	m.setDuration(time.Duration(minutes) * time.Minute)
	return nil
}

func (m *Model) submitAlertTimes(raw string) error {
	times, err := util.ParsePositiveInts(raw)
	if err != nil {
		return err
	}
	m.prefs.AlertTimes = times
	m.applyAlertConfig()
	m.savePreferences()
	if len(times) == 0 {
		m.message = "Threshold alerts cleared"
	} else {
		m.message = "Alerts at " + util.JoinInts(times) + " s"
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

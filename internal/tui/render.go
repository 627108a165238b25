package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/akyairhashvil/sandglass/internal/config"
	"github.com/akyairhashvil/sandglass/internal/engine"
	"github.com/akyairhashvil/sandglass/internal/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	sandCell  = "█"
	emptyCell = " "
	grainCell = "•"
)

func truncateLabel(text string, max int) string {
	if max <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= max {
		return text
	}
	return ansi.Truncate(text, max, "…")
}

// bulbWidths returns the interior width of each top-bulb row, widest first.
func bulbWidths() []int {
	widths := make([]int, config.BulbRows)
	for i := range widths {
		widths[i] = (config.BulbRows-i)*2 + 1
	}
	return widths
}

// fillRows distributes filled cells over rows, starting from the row at
// index len-1 and moving towards index 0. Each entry is the filled count.
func fillRows(widths []int, filled int) []int {
	out := make([]int, len(widths))
	for i := len(widths) - 1; i >= 0 && filled > 0; i-- {
		n := min(widths[i], filled)
		out[i] = n
		filled -= n
	}
	return out
}

func bulbRow(width, filled int, theme Theme) string {
	empty := width - filled
	left := empty / 2
	right := empty - left
	return strings.Repeat(emptyCell, left) +
		theme.Sand.Render(strings.Repeat(sandCell, filled)) +
		strings.Repeat(emptyCell, right)
}

// renderHourglass draws the glass for snap. The top bulb holds the remaining
// share of sand, settled against the neck; the bottom bulb holds the rest.
func renderHourglass(snap engine.Snapshot, theme Theme) string {
	widths := bulbWidths()
	capacity := 0
	for _, w := range widths {
		capacity += w
	}
	topCells := int(math.Round(snap.Fraction() * float64(capacity)))
	topCells = util.Clamp(topCells, 0, capacity)

	// Top bulb settles towards the neck (last row); the bottom bulb piles
	// up from its base, which is the widest row.
	top := fillRows(widths, topCells)
	reversed := make([]int, len(widths))
	for i, w := range widths {
		reversed[len(widths)-1-i] = w
	}
	bottom := fillRows(reversed, capacity-topCells)

	outer := widths[0] + 2
	rim := theme.Glass.Render(strings.Repeat("═", outer))
	var b strings.Builder
	b.WriteString(rim + "\n")
	for i, w := range widths {
		pad := strings.Repeat(" ", (outer-w-2)/2)
		b.WriteString(pad + theme.Glass.Render(`\`) + bulbRow(w, top[i], theme) + theme.Glass.Render("/") + pad + "\n")
	}

	neck := emptyCell
	if snap.Running && topCells > 0 {
		neck = theme.Grain.Render(grainCell)
	}
	neckPad := strings.Repeat(" ", (outer-3)/2)
	b.WriteString(neckPad + theme.Glass.Render(")") + neck + theme.Glass.Render("(") + neckPad + "\n")

	for i, w := range reversed {
		pad := strings.Repeat(" ", (outer-w-2)/2)
		b.WriteString(pad + theme.Glass.Render("/") + bulbRow(w, bottom[i], theme) + theme.Glass.Render(`\`) + pad + "\n")
	}
	b.WriteString(rim)
	return b.String()
}

func (m Model) renderStatus(snap engine.Snapshot) string {
	theme := CurrentTheme
	state := theme.Dim.Render("paused")
	switch {
	case snap.Running:
		state = theme.Running.Render("running")
	case snap.Remaining == 0:
		state = theme.Alert.Render("finished")
	case snap.Remaining == snap.Total:
		state = theme.Dim.Render("ready")
	}
	parts := []string{state}
	if snap.Flipped {
		parts = append(parts, theme.Flipped.Render("flipped"))
	}
	sound := "sound " + onOff(m.prefs.SoundsEnabled)
	alerts := "alerts none"
	if len(m.prefs.AlertTimes) > 0 {
		alerts = "alerts " + util.JoinInts(m.prefs.AlertTimes) + " s"
	}
	finish := "finish " + onOff(m.prefs.AlertFinish)
	parts = append(parts, theme.Dim.Render(strings.Join([]string{sound, alerts, finish}, " · ")))
	return strings.Join(parts, "  ")
}

func (m Model) renderPresets(snap engine.Snapshot) string {
	theme := CurrentTheme
	var parts []string
	for i, p := range m.presets {
		if i >= 9 {
			break
		}
		label := fmt.Sprintf("[%d] %s", i+1, util.FormatMinutes(p))
		if snap.Total == secondsDuration(p) {
			parts = append(parts, theme.Focused.Render(label))
		} else {
			parts = append(parts, theme.Highlight.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderInput() string {
	theme := CurrentTheme
	title := "Custom duration (minutes)"
	if m.mode == ModeAlertTimes {
		title = "Alert at seconds remaining"
	}
	content := theme.Header.Render(title) + "\n" + m.input.View()
	if m.inputErr != "" {
		content += "\n" + theme.Alert.Render(m.inputErr)
	}
	content += "\n" + theme.Dim.Render("[enter] save [esc] cancel")
	return theme.Input.Render(content)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	theme := CurrentTheme
	snap := m.engine.Snapshot()
	width := m.width
	if width <= 0 {
		width = 60
	}

	var sections []string
	sections = append(sections, theme.Header.Render("Sandglass Timer"))
	if m.height == 0 || m.height >= config.CompactModeThreshold {
		sections = append(sections, renderHourglass(snap, theme))
	}
	clock := theme.Clock
	if snap.Running {
		clock = theme.Running
	}
	sections = append(sections,
		clock.Render(util.FormatClock(snap.Remaining)),
		m.progress.ViewAs(1-snap.Fraction()),
		truncateLabel(m.renderStatus(snap), width-4),
		truncateLabel(m.renderPresets(snap), width-4),
	)
	if m.mode != ModeTimer {
		sections = append(sections, m.renderInput())
	}
	if m.message != "" {
		sections = append(sections, theme.Highlight.Render(truncateLabel(m.message, width-4)))
	}
	if m.showHelp {
		sections = append(sections, theme.Dim.Render(lipgloss.NewStyle().Width(width-4).Render(m.registry.HelpForMode(ModeTimer))))
	} else {
		sections = append(sections, theme.Dim.Render("[?] help [q] quit"))
	}

	body := lipgloss.JoinVertical(lipgloss.Center, sections...)
	view := theme.Base.Render(lipgloss.PlaceHorizontal(width-4, lipgloss.Center, body))
	if m.ringing {
		// The renderer only rewrites changed lines, so the bell sounds once.
		view = "\a" + view
	}
	return view
}

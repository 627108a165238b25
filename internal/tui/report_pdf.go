package tui

import (
	"fmt"
	"time"

	"github.com/akyairhashvil/sandglass/internal/models"
	"github.com/akyairhashvil/sandglass/internal/util"
	"github.com/go-pdf/fpdf"
)

// GeneratePDFReport writes the session history to path as an A4 PDF.
func GeneratePDFReport(path string, sessions []models.Session, prefs models.Preferences, generated time.Time) error {
	if err := util.EnsureParentDir(path); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Sandglass Timer Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Generated "+generated.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	// Preferences
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Preferences")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	alerts := "none"
	if len(prefs.AlertTimes) > 0 {
		alerts = util.JoinInts(prefs.AlertTimes) + " s"
	}
	lines := []string{
		"Duration: " + util.FormatMinutes(prefs.Duration),
		"Sound: " + onOff(prefs.SoundsEnabled),
		"Alerts at: " + alerts,
		"Finish alert: " + onOff(prefs.AlertFinish),
	}
	for _, l := range lines {
		pdf.Cell(0, 6, "  "+l)
		pdf.Ln(6)
	}
	pdf.Ln(6)

	// Sessions
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Sessions")
	pdf.Ln(8)
	if len(sessions) == 0 {
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 8, "No sessions recorded.")
		pdf.Ln(8)
		return pdf.OutputFileAndClose(path)
	}

	cols := []struct {
		title string
		width float64
	}{
		{"Started", 45}, {"Duration", 30}, {"Elapsed", 30}, {"Flips", 20}, {"Status", 35},
	}
	pdf.SetFont("Arial", "B", 10)
	for _, c := range cols {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	var totalElapsed time.Duration
	completed := 0
	for _, s := range sessions {
		row := []string{
			s.StartedAt.Local().Format("2006-01-02 15:04"),
			formatElapsed(s.Duration),
			formatElapsed(s.Elapsed),
			fmt.Sprintf("%d", s.Flips),
			s.Status(),
		}
		for i, c := range cols {
			pdf.CellFormat(c.width, 6, row[i], "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		totalElapsed += s.Elapsed
		if s.Completed {
			completed++
		}
	}

	// Summary
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Sessions: %d   Completed: %d   Time counted: %s", len(sessions), completed, formatElapsed(totalElapsed)))
	pdf.Ln(8)

	return pdf.OutputFileAndClose(path)
}

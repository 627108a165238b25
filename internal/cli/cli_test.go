package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/akyairhashvil/sandglass/internal/database"
	"github.com/akyairhashvil/sandglass/internal/models"
	"github.com/akyairhashvil/sandglass/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every XDG directory at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_DOCUMENTS_DIR", filepath.Join(dir, "docs"))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := BuildCLI()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func seedPrefs(t *testing.T, dbPath string, prefs models.Preferences) {
	t.Helper()
	db, err := database.Open(context.Background(), dbPath)
	require.NoError(t, err)
	require.NoError(t, db.SavePreferences(context.Background(), prefs))
	require.NoError(t, db.Close())
}

func TestBuildCLI(t *testing.T) {
	cmd := BuildCLI()

	assert.Equal(t, "sandglass", cmd.Use)
	assert.Equal(t, "dev", cmd.Version)

	names := make(map[string]bool)
	for _, c := range cmd.Commands() {
		names[c.Use] = true
	}
	assert.True(t, names["run"], "Should have 'run' command")
	assert.True(t, names["report"], "Should have 'report' command")
	assert.True(t, names["prefs"], "Should have 'prefs' command")

	for _, flag := range []string{"config", "db", "duration"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "Should have --%s flag", flag)
	}
	assert.NotNil(t, cmd.Flags().Lookup("theme"))
}

func TestBuildReportCommand(t *testing.T) {
	cmd := buildReportCommand(&options{})

	output := cmd.Flags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "o", output.Shorthand)
	limit := cmd.Flags().Lookup("limit")
	require.NotNil(t, limit)
	assert.Equal(t, "200", limit.DefValue)
}

func TestVersionLabel(t *testing.T) {
	orig := GitCommit
	t.Cleanup(func() { GitCommit = orig })

	assert.Equal(t, "dev", versionLabel())
	GitCommit = "abc123"
	assert.Equal(t, "dev (abc123 unknown)", versionLabel())
}

func TestPrefsCommandDefaults(t *testing.T) {
	dir := isolate(t)
	dbPath := filepath.Join(dir, "prefs.db")

	out, err := execute(t, "prefs", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "duration:      3 min")
	assert.Contains(t, out, "sound:         on")
	assert.Contains(t, out, "alerts at:     30, 5 s")
	assert.Contains(t, out, "finish alert:  on")
	assert.Contains(t, out, dbPath)
}

func TestLogFileCreated(t *testing.T) {
	dir := isolate(t)
	_, err := execute(t, "prefs", "--db", filepath.Join(dir, "log.db"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "data", "sandglass", "sandglass.log"))
	assert.NoError(t, err)
}

func TestInvalidConfigFails(t *testing.T) {
	dir := isolate(t)
	cfg := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("presets: []\n"), 0o644))

	_, err := execute(t, "prefs", "--config", cfg, "--db", filepath.Join(dir, "x.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestReportCommandWritesPDF(t *testing.T) {
	dir := isolate(t)
	dbPath := filepath.Join(dir, "report.db")
	db, err := database.Open(context.Background(), dbPath)
	require.NoError(t, err)
	_, err = db.RecordSession(context.Background(), testutil.NewSession().WithDuration(time.Minute).Completed().Build())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	pdfPath := filepath.Join(dir, "out", "history.pdf")
	out, err := execute(t, "report", "--db", dbPath, "-o", pdfPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Report saved to "+pdfPath+" (1 sessions)")

	data, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestReportCommandRejectsBadLimit(t *testing.T) {
	dir := isolate(t)
	_, err := execute(t, "report", "--db", filepath.Join(dir, "r.db"), "--limit", "0")
	assert.Error(t, err)
}

func TestRunPlainCountsDown(t *testing.T) {
	dir := isolate(t)
	dbPath := filepath.Join(dir, "run.db")
	seedPrefs(t, dbPath, testutil.NewPreferences().WithSounds(false).WithDuration(60).Build())

	out, err := execute(t, "run", "--plain", "--db", dbPath, "--duration", "1500ms")
	require.NoError(t, err)
	assert.Contains(t, out, "0:01.5")
	assert.Contains(t, out, "0:00.")
	assert.Contains(t, out, "finished")

	db, err := database.Open(context.Background(), dbPath)
	require.NoError(t, err)
	defer db.Close()
	sessions, err := db.ListSessions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].Completed)
	assert.Equal(t, 1500*time.Millisecond, sessions[0].Duration)
}

func TestRunPlainWithSoundRingsBell(t *testing.T) {
	dir := isolate(t)
	dbPath := filepath.Join(dir, "bell.db")
	seedPrefs(t, dbPath, testutil.NewPreferences().WithSounds(true).WithAlertTimes(1).WithFinish(true).WithDuration(60).Build())

	out, err := execute(t, "run", "--plain", "--db", dbPath, "--duration", "1500ms")
	require.NoError(t, err)
	assert.Contains(t, out, "alert: 0:01.0 left")
	assert.Contains(t, out, "finished")
	assert.Equal(t, 5, strings.Count(out, "\a"), "two threshold tones and three finish tones")
}

func TestRootFallsBackToPlainWithoutTerminal(t *testing.T) {
	dir := isolate(t)
	dbPath := filepath.Join(dir, "root.db")
	seedPrefs(t, dbPath, testutil.NewPreferences().WithSounds(false).WithDuration(60).Build())

	out, err := execute(t, "--db", dbPath, "--duration", "300ms")
	require.NoError(t, err)
	assert.Contains(t, out, "finished")
}

func TestRunRejectsNegativeDuration(t *testing.T) {
	dir := isolate(t)
	_, err := execute(t, "run", "--plain", "--db", filepath.Join(dir, "n.db"), "--duration", "-5s")
	assert.Error(t, err)
}

func TestPrintPreferencesNoAlerts(t *testing.T) {
	var buf bytes.Buffer
	printPreferences(&buf, testutil.NewPreferences().WithAlertTimes().WithDuration(90).Build(), "x.db")
	assert.Contains(t, buf.String(), "alerts at:     none")
	assert.Contains(t, buf.String(), "duration:      90 s")
}

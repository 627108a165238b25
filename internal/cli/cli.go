// Package cli wires configuration, storage, audio and the two front ends
// (TUI and plain text) behind a cobra command tree:
//
//	sandglass                 interactive timer (plain output when not a terminal)
//	sandglass run --plain     plain countdown printing one line per second
//	sandglass report -o FILE  PDF export of recorded sessions
//	sandglass prefs           print stored preferences
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/akyairhashvil/sandglass/internal/audio"
	"github.com/akyairhashvil/sandglass/internal/clock"
	"github.com/akyairhashvil/sandglass/internal/config"
	"github.com/akyairhashvil/sandglass/internal/database"
	"github.com/akyairhashvil/sandglass/internal/engine"
	"github.com/akyairhashvil/sandglass/internal/headless"
	"github.com/akyairhashvil/sandglass/internal/models"
	"github.com/akyairhashvil/sandglass/internal/tui"
	"github.com/akyairhashvil/sandglass/internal/util"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// drainTimeout bounds how long a finished plain run waits for queued tones.
const drainTimeout = 2 * time.Second

type options struct {
	configPath string
	dbPath     string
	duration   time.Duration
	theme      string
}

// app holds the resources shared by every command.
type app struct {
	cfg     config.File
	db      *database.Database
	logFile *os.File
}

func (a *app) Close() error {
	err := a.db.Close()
	if a.logFile != nil {
		err = errors.Join(err, a.logFile.Close())
	}
	return err
}

func BuildCLI() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Sandglass: a terminal countdown timer shaped like an hourglass",
		Long: `Sandglass counts down a chosen duration, can be flipped like a real
hourglass, and sounds the terminal bell at configurable thresholds.`,
		Version:       versionLabel(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file path (default $XDG_CONFIG_HOME/sandglass/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "database file path")
	rootCmd.PersistentFlags().DurationVarP(&opts.duration, "duration", "d", 0, "countdown length for this run, e.g. 90s or 5m (default: last used)")
	rootCmd.Flags().StringVar(&opts.theme, "theme", "", "color theme: default or dracula")

	rootCmd.AddCommand(buildRunCommand(opts))
	rootCmd.AddCommand(buildReportCommand(opts))
	rootCmd.AddCommand(buildPrefsCommand(opts))

	return rootCmd
}

func buildRunCommand(opts *options) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start a countdown immediately",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !plain && isTerminal(cmd.OutOrStdout()) {
				return runInteractive(cmd.Context(), opts, cmd.OutOrStdout())
			}
			a, err := setup(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { util.LogError("close app", a.Close()) }()
			return runPlain(cmd.Context(), a, opts.duration, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print the countdown as plain lines instead of the TUI")
	return cmd
}

func buildReportCommand(opts *options) *cobra.Command {
	var output string
	var limit int
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export recorded sessions as a PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}
			a, err := setup(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { util.LogError("close app", a.Close()) }()

			ctx := cmd.Context()
			sessions, err := a.db.ListSessions(ctx, limit)
			if err != nil {
				return fmt.Errorf("list sessions: %w", err)
			}
			now := time.Now()
			path := output
			if path == "" {
				path = filepath.Join(util.ReportsDir(config.AppName), "sandglass-"+now.Format("20060102-150405")+".pdf")
			}
			if err := tui.GeneratePDFReport(path, sessions, a.db.LoadPreferences(ctx), now); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			util.Logger().Info().Str("path", path).Int("sessions", len(sessions)).Msg("report exported")
			fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s (%d sessions)\n", path, len(sessions))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "PDF file to write (default: Documents/SANDGLASS)")
	cmd.Flags().IntVar(&limit, "limit", config.MaxReportSessions, "maximum number of sessions, newest first")
	return cmd
}

func buildPrefsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "prefs",
		Short: "Print stored preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { util.LogError("close app", a.Close()) }()
			printPreferences(cmd.OutOrStdout(), a.db.LoadPreferences(cmd.Context()), a.db.Path())
			return nil
		},
	}
}

func printPreferences(w io.Writer, p models.Preferences, dbPath string) {
	alerts := "none"
	if len(p.AlertTimes) > 0 {
		alerts = util.JoinInts(p.AlertTimes) + " s"
	}
	fmt.Fprintf(w, "duration:      %s\n", util.FormatMinutes(p.Duration))
	fmt.Fprintf(w, "sound:         %s\n", onOff(p.SoundsEnabled))
	fmt.Fprintf(w, "alerts at:     %s\n", alerts)
	fmt.Fprintf(w, "finish alert:  %s\n", onOff(p.AlertFinish))
	fmt.Fprintf(w, "database:      %s\n", dbPath)
}

// setup loads the config file, starts file logging and opens the database.
func setup(ctx context.Context, opts *options) (*app, error) {
	if opts.duration < 0 {
		return nil, fmt.Errorf("--duration must be positive, got %s", opts.duration)
	}
	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = filepath.Join(util.ConfigDir(config.AppName), config.ConfigFile)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	a := &app{cfg: cfg}
	logPath := filepath.Join(util.DataDir(config.AppName), config.LogFileName)
	if f, err := util.OpenLogFile(logPath); err == nil {
		a.logFile = f
		util.SetupLogging(f, cfg.LogLevel)
	} else {
		fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
	}

	dbPath := opts.dbPath
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if dbPath == "" {
		dbPath = filepath.Join(util.DataDir(config.AppName), config.DBFileName)
	}
	db, err := database.Open(ctx, dbPath)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.db = db
	util.Logger().Info().Str("db", dbPath).Str("config", cfgPath).Msg("sandglass started")
	return a, nil
}

func runInteractive(ctx context.Context, opts *options, out io.Writer) error {
	a, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { util.LogError("close app", a.Close()) }()

	if !isTerminal(out) {
		util.Logger().Info().Msg("output is not a terminal, using plain mode")
		return runPlain(ctx, a, opts.duration, out)
	}

	theme := a.cfg.Theme
	if opts.theme != "" {
		theme = opts.theme
	}
	if !tui.SetTheme(theme) {
		return fmt.Errorf("unknown theme %q", theme)
	}

	bell := &tui.ProgramBell{}
	player := audio.NewPlayer(clock.System, bell)
	model, err := tui.NewModel(ctx, a.db, player, tui.Options{
		Presets:      a.cfg.Presets,
		TickInterval: a.cfg.TickInterval,
		Duration:     opts.duration,
	})
	if err != nil {
		_ = player.Close()
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithOutput(out))
	bell.Attach(p)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run interface: %w", err)
	}
	// Close is idempotent; the model already closes it on a normal quit.
	return player.Close()
}

// runPlain counts down without the TUI until the timer finishes or the
// process receives SIGINT or SIGTERM.
func runPlain(ctx context.Context, a *app, override time.Duration, out io.Writer) error {
	prefs := a.db.LoadPreferences(ctx)
	duration := prefs.DurationValue()
	if override > 0 {
		duration = override
	}

	// Bells fire from timer goroutines while the runner prints status lines.
	out = zerolog.SyncWriter(out)
	player := audio.NewPlayer(clock.System, audio.NewBell(out))
	defer func() { util.LogError("close audio", player.Close()) }()
	eng, err := engine.New(duration, player)
	if err != nil {
		return err
	}
	eng.SetAlertConfig(engine.AlertConfig{
		Enabled:     prefs.SoundsEnabled,
		AlertTimes:  prefs.AlertDurations(),
		AlertFinish: prefs.AlertFinish,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ticker := time.NewTicker(a.cfg.TickInterval)
	defer ticker.Stop()

	startedAt := time.Now()
	runner := &headless.Runner{Engine: eng, Out: out, MaxDelta: config.MaxTickDelta}
	runErr := runner.Run(ctx, ticker.C, startedAt)

	snap := eng.Snapshot()
	if elapsed := snap.Elapsed(); elapsed > 0 {
		rec := models.Session{
			StartedAt: startedAt,
			EndedAt:   time.Now(),
			Duration:  snap.Total,
			Elapsed:   elapsed,
			Completed: snap.Remaining == 0,
		}
		// The interrupt cancelled ctx; the record must still be written.
		if _, err := a.db.RecordSession(context.Background(), rec); err != nil {
			util.LogError("record session", err)
		}
	}

	if errors.Is(runErr, context.Canceled) {
		fmt.Fprintln(out, "interrupted")
		return nil
	}
	if runErr == nil {
		drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		defer cancel()
		if err := player.Wait(drainCtx); err != nil {
			util.Logger().Warn().Err(err).Int("tones", player.Pending()).Msg("tones still queued")
		}
	}
	return runErr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

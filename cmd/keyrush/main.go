// Package main provides the CLI entrypoint for keyrush.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/keyrush/internal/config"
	"github.com/verte-zerg/keyrush/internal/game"
	"github.com/verte-zerg/keyrush/internal/generator"
	"github.com/verte-zerg/keyrush/internal/logging"
	"github.com/verte-zerg/keyrush/internal/model"
	"github.com/verte-zerg/keyrush/internal/stats"
	"github.com/verte-zerg/keyrush/internal/store"
	"github.com/verte-zerg/keyrush/internal/tui"
)

const (
	defaultDuration = game.DefaultDurationSeconds
	defaultFlashMs  = 100
	stderrLogTarget = "-"
)

var defaultDurations = []int{15, 30, 60}

var (
	gameDuration         int
	gameDurations        []int
	gameIgnoreNonLetters bool
	gameFlashMs          int
	gameSummary          bool

	logLevel string
	logFile  string
)

func main() {
	_ = godotenv.Load()
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keyrush",
		Short:         "Letter typing speed game",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runGameCmd,
	}

	rootCmd.Flags().IntVar(&gameDuration, "duration", defaultDuration, "round length in seconds")
	rootCmd.Flags().IntSliceVar(&gameDurations, "durations", defaultDurations, "round lengths offered on the setup screen")
	rootCmd.Flags().BoolVar(&gameIgnoreNonLetters, "ignore-non-letters", false, "ignore keys outside A-Z instead of counting them as errors")
	rootCmd.Flags().IntVar(&gameFlashMs, "flash-ms", defaultFlashMs, "error flash length in milliseconds")
	rootCmd.Flags().BoolVar(&gameSummary, "summary", true, "print a summary of this run's rounds on exit")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOr("KEYRUSH_LOG_LEVEL", logging.DefaultLevel), "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", envOr("KEYRUSH_LOG_FILE", config.DefaultLogPath()), "log file path, or - for stderr")

	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runGameCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "duration", &gameDuration, fileCfg.Game.Duration)
	applyIntSliceConfig(cmd, "durations", &gameDurations, fileCfg.Game.Durations)
	applyBoolConfig(cmd, "ignore-non-letters", &gameIgnoreNonLetters, fileCfg.Game.IgnoreNonLetters)
	applyIntConfig(cmd, "flash-ms", &gameFlashMs, fileCfg.Game.FlashMs)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)

	closer, err := setupLogging(logLevel, logFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()

	cfg := model.Config{
		DurationSeconds:  gameDuration,
		Durations:        gameDurations,
		IgnoreNonLetters: gameIgnoreNonLetters,
		FlashDuration:    time.Duration(gameFlashMs) * time.Millisecond,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("keyrush needs an interactive terminal")
	}

	st, err := store.Open()
	if err != nil {
		return fmt.Errorf("failed to open round history: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to close round history")
		}
	}()

	g, err := game.New(cfg, generator.New())
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	log.Debug().Int("duration", cfg.DurationSeconds).Ints("durations", cfg.Durations).Msg("starting keyrush")

	program := tea.NewProgram(tui.NewModel(cfg, g, st), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if !gameSummary {
		return nil
	}
	return printSummary(cmd.Context(), cmd.OutOrStdout(), st)
}

func printSummary(ctx context.Context, w io.Writer, st *store.Store) error {
	if ctx == nil {
		ctx = context.Background()
	}
	report, err := stats.BuildReport(ctx, st)
	if err != nil {
		return fmt.Errorf("failed to build summary: %w", err)
	}
	if len(report.Rounds) == 0 {
		return nil
	}
	if err := report.Render(w); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func setupLogging(level, path string) (io.Closer, error) {
	if path == stderrLogTarget {
		path = ""
	}
	closer, err := logging.Setup(level, path)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return closer, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeConfigTemplate(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeConfigTemplate creates the config file unless it already exists.
func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntSliceConfig(cmd *cobra.Command, name string, target *[]int, value []int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]int(nil), value...)
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# keyrush configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# duration = %d                # Round length in seconds
# durations = %s          # Round lengths offered on the setup screen
# ignore-non-letters = false    # Ignore keys outside A-Z instead of counting errors
# flash-ms = %d                # Error flash length in milliseconds

[log]
# level = %q               # debug, info, warn, error
# file = %q
`,
		defaultDuration,
		formatInts(defaultDurations),
		defaultFlashMs,
		logging.DefaultLevel,
		config.DefaultLogPath(),
	)
}

func formatInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func validateConfig(cfg model.Config) error {
	if cfg.DurationSeconds <= 0 {
		return fmt.Errorf("--duration must be > 0")
	}
	if len(cfg.Durations) == 0 {
		return fmt.Errorf("--durations must not be empty")
	}
	for _, d := range cfg.Durations {
		if d <= 0 {
			return fmt.Errorf("--durations values must be > 0, got %d", d)
		}
	}
	if cfg.FlashDuration <= 0 {
		return fmt.Errorf("--flash-ms must be > 0")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

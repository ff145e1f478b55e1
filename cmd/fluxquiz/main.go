// Package main provides the CLI entrypoint for fluxquiz.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mirova/fluxquiz/internal/config"
	"github.com/mirova/fluxquiz/internal/model"
	"github.com/mirova/fluxquiz/internal/quiz"
	"github.com/mirova/fluxquiz/internal/stats"
	"github.com/mirova/fluxquiz/internal/statsui"
	"github.com/mirova/fluxquiz/internal/store"
	"github.com/mirova/fluxquiz/internal/synth"
	"github.com/mirova/fluxquiz/internal/task"
	"github.com/mirova/fluxquiz/internal/tui"
)

const (
	defaultPanels      = 3
	defaultLength      = 300
	defaultNoiseMin    = 0.004
	defaultNoiseMax    = 0.008
	defaultCurveWindow = 20
	defaultCurveNoise  = 0.006
)

var (
	quizPanels   int
	quizLength   int
	quizNoiseMin float64
	quizNoiseMax float64
	quizSeed     int64

	curveLength  int
	curveNoise   float64
	curveTransit bool
	curveSeed    int64
	curveWidth   int

	statsSince  string
	statsLast   int
	statsWindow int
	statsPlain  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fluxquiz",
		Short:         "TUI transit-spotting trainer for synthetic light curves",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runQuizCmd,
	}

	rootCmd.Flags().IntVar(&quizPanels, "panels", defaultPanels, "light-curve panels per round")
	rootCmd.Flags().IntVar(&quizLength, "length", defaultLength, "samples per light curve")
	rootCmd.Flags().Float64Var(&quizNoiseMin, "noise-min", defaultNoiseMin, "lower bound of per-panel noise amplitude")
	rootCmd.Flags().Float64Var(&quizNoiseMax, "noise-max", defaultNoiseMax, "upper bound of per-panel noise amplitude")
	rootCmd.Flags().Int64Var(&quizSeed, "seed", 0, "random seed (0: time-based)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCurveCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runQuizCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "panels", &quizPanels, fileCfg.Quiz.Panels)
	applyIntConfig(cmd, "length", &quizLength, fileCfg.Quiz.Length)
	applyFloatConfig(cmd, "noise-min", &quizNoiseMin, fileCfg.Quiz.NoiseMin)
	applyFloatConfig(cmd, "noise-max", &quizNoiseMax, fileCfg.Quiz.NoiseMax)

	cfg := model.Config{
		Panels:       quizPanels,
		SeriesLength: quizLength,
		NoiseMin:     quizNoiseMin,
		NoiseMax:     quizNoiseMax,
		Seed:         quizSeed,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	factory := task.New(newRand(cfg.Seed),
		task.WithSeriesLength(cfg.SeriesLength),
		task.WithNoiseRange(cfg.NoiseMin, cfg.NoiseMax))

	model := tui.NewModel(cfg, st, factory, quiz.NewSession())
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newCurveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Print one synthetic light curve",
		Args:  cobra.NoArgs,
		RunE:  runCurveCmd,
	}
	cmd.Flags().IntVar(&curveLength, "length", defaultLength, "samples per light curve")
	cmd.Flags().Float64Var(&curveNoise, "noise", defaultCurveNoise, "noise amplitude")
	cmd.Flags().BoolVar(&curveTransit, "transit", false, "inject a transit dip")
	cmd.Flags().Int64Var(&curveSeed, "seed", 0, "random seed (0: time-based)")
	cmd.Flags().IntVar(&curveWidth, "width", 0, "plot width (0: terminal width)")
	return cmd
}

func runCurveCmd(cmd *cobra.Command, _ []string) error {
	series, err := synth.Synthesize(model.SynthesisParams{
		Length:         curveLength,
		NoiseAmplitude: curveNoise,
		HasTransit:     curveTransit,
	}, newRand(curveSeed))
	if err != nil {
		return err
	}
	name := "Flux"
	if curveTransit {
		name = "Flux (transit)"
	}
	return stats.PlotSeries(cmd.OutOrStdout(), "Synthetic Light Curve", []stats.Series{
		{Name: name, Values: series.Values()},
	}, curveWidth, 0)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show round history stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N rounds")
	cmd.Flags().IntVar(&statsWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print stats to stdout instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain {
		return runPlainStats(cmd, st, cfg)
	}

	model := statsui.NewModel(st, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func runPlainStats(cmd *cobra.Command, st *store.Store, cfg model.StatsConfig) error {
	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report); err != nil {
		return err
	}
	if err := stats.RenderCurves(out, report.Rounds, cfg.CurveWindow); err != nil {
		return err
	}
	return stats.RenderHistory(out, report.Rounds)
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
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
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

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func validateConfig(cfg model.Config) error {
	if cfg.Panels < 2 {
		return fmt.Errorf("--panels must be >= 2")
	}
	if cfg.SeriesLength <= 0 {
		return fmt.Errorf("--length must be > 0")
	}
	if cfg.NoiseMin < 0 {
		return fmt.Errorf("--noise-min must be >= 0")
	}
	if cfg.NoiseMax < cfg.NoiseMin {
		return fmt.Errorf("--noise-max must be >= --noise-min")
	}
	return nil
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

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# fluxquiz configuration
# Uncomment a value to enable it. CLI flags override config values.

[quiz]
# panels = %d        # Light-curve panels per round
# length = %d      # Samples per light curve
# noise-min = %.3f   # Lower bound of per-panel noise amplitude
# noise-max = %.3f   # Upper bound of per-panel noise amplitude
`,
		defaultPanels,
		defaultLength,
		defaultNoiseMin,
		defaultNoiseMax,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

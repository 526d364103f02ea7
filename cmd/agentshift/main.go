// Package main provides the CLI entrypoint for agentshift.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/agentshift/internal/config"
	"github.com/verte-zerg/agentshift/internal/content"
	"github.com/verte-zerg/agentshift/internal/demoui"
	"github.com/verte-zerg/agentshift/internal/logging"
	"github.com/verte-zerg/agentshift/internal/model"
	"github.com/verte-zerg/agentshift/internal/quizui"
	"github.com/verte-zerg/agentshift/internal/report"
	"github.com/verte-zerg/agentshift/internal/roi"
	"github.com/verte-zerg/agentshift/internal/roiui"
	"github.com/verte-zerg/agentshift/internal/score"
	"github.com/verte-zerg/agentshift/internal/theme"
)

const (
	defaultFrequency  = string(roi.Weekly)
	defaultTask       = "custom"
	defaultHourlyRate = 50.0
	defaultDemoID     = "weekly-report"
	defaultTick       = 50 * time.Millisecond
	defaultLogLevel   = "info"
	projectionWeeks   = 52
	plotHeight        = 8
)

var (
	quizShuffle bool
	quizBank    string
	quizAnswers string
	quizPlain   bool

	roiMinutes   float64
	roiFrequency string
	roiRate      float64
	roiToolCost  float64
	roiTask      string
	roiSavings   float64
	roiPlain     bool
	roiList      bool

	demoID    string
	demoTick  time.Duration
	demoPlain bool
	demoList  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "agentshift",
		Short:         "Agent Shift self-assessment, savings calculator and demos",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runQuizCmd,
	}
	addQuizFlags(rootCmd)

	rootCmd.AddCommand(newQuizCmd())
	rootCmd.AddCommand(newROICmd())
	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// app carries what every command needs after config is loaded.
type app struct {
	cfg    config.FileConfig
	theme  theme.Theme
	logger *zap.Logger
	bundle *content.Bundle
}

func setup(command string) (*app, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logCfg := model.LogSettings{Level: defaultLogLevel, File: config.DefaultLogPath()}
	if fileCfg.Log.Level != nil {
		logCfg.Level = *fileCfg.Log.Level
	}
	if fileCfg.Log.File != nil {
		logCfg.File = *fileCfg.Log.File
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logger = logger.With(zap.String("run", uuid.NewString()), zap.String("command", command))

	bundle, err := content.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	accent := ""
	if fileCfg.UI.Accent != nil {
		accent = *fileCfg.UI.Accent
	}
	return &app{cfg: fileCfg, theme: theme.New(accent), logger: logger, bundle: bundle}, nil
}

func (a *app) close() {
	// Sync fails on some file types; there is nowhere left to report it.
	_ = a.logger.Sync()
}

func interactive(cmd *cobra.Command, plain bool) bool {
	return !plain && report.IsTerminal(cmd.OutOrStdout())
}

func runProgram(m tea.Model) error {
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func addQuizFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&quizShuffle, "shuffle", false, "shuffle answer options")
	cmd.Flags().StringVar(&quizBank, "bank", "", "path to a replacement quiz bank (YAML)")
	cmd.Flags().StringVar(&quizAnswers, "answers", "", "score comma separated option numbers without prompting")
	cmd.Flags().BoolVar(&quizPlain, "plain", false, "plain text mode")
}

func newQuizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Take the doer / delegator / orchestrator self-assessment",
		Args:  cobra.NoArgs,
		RunE:  runQuizCmd,
	}
	addQuizFlags(cmd)
	return cmd
}

func runQuizCmd(cmd *cobra.Command, _ []string) error {
	a, err := setup("quiz")
	if err != nil {
		return err
	}
	defer a.close()

	applyBoolConfig(cmd, "shuffle", &quizShuffle, a.cfg.Quiz.Shuffle)
	applyStringConfig(cmd, "bank", &quizBank, a.cfg.Quiz.Bank)

	settings := model.QuizSettings{Shuffle: quizShuffle, BankPath: quizBank}
	if quizAnswers != "" {
		settings.Answers, err = quizui.ParseAnswers(quizAnswers)
		if err != nil {
			return err
		}
	}

	quiz := a.bundle.Quiz
	if settings.BankPath != "" {
		quiz, err = content.LoadQuizFile(settings.BankPath)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if len(settings.Answers) > 0 {
		board, err := quizui.ScoreAnswers(quiz, settings.Answers)
		if err != nil {
			return err
		}
		return renderScore(out, quiz, board)
	}
	if !interactive(cmd, quizPlain) {
		board, err := quizui.RunPlain(cmd.InOrStdin(), out, quiz)
		if err != nil {
			return fmt.Errorf("quiz aborted: %w", err)
		}
		if _, err := fmt.Fprintln(out); err != nil {
			return err
		}
		return renderScore(out, quiz, board)
	}

	m := quizui.NewModel(quiz, a.theme, a.logger, quizui.Options{Shuffle: settings.Shuffle})
	if err := runProgram(m); err != nil {
		return fmt.Errorf("failed to run quiz TUI: %w", err)
	}
	return nil
}

func renderScore(w io.Writer, quiz content.Quiz, board score.Board) error {
	profile, _ := quiz.Profile(score.Dominant(board))
	return report.RenderScore(w, board, profile)
}

func newROICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roi",
		Short: "Estimate time and money saved by delegating a task to an agent",
		Args:  cobra.NoArgs,
		RunE:  runROICmd,
	}
	cmd.Flags().Float64Var(&roiMinutes, "minutes", 0, "manual minutes per task")
	cmd.Flags().StringVar(&roiFrequency, "frequency", defaultFrequency, "how often the task happens ("+frequencyNames()+")")
	cmd.Flags().Float64Var(&roiRate, "rate", defaultHourlyRate, "hourly rate")
	cmd.Flags().Float64Var(&roiToolCost, "tool-cost", 0, "monthly tool cost")
	cmd.Flags().StringVar(&roiTask, "task", defaultTask, "task preset (see --list-tasks)")
	cmd.Flags().Float64Var(&roiSavings, "savings", 0, "override the preset savings percent (0-100)")
	cmd.Flags().BoolVar(&roiPlain, "plain", false, "plain text mode")
	cmd.Flags().BoolVar(&roiList, "list-tasks", false, "list task presets and exit")
	return cmd
}

func runROICmd(cmd *cobra.Command, _ []string) error {
	a, err := setup("roi")
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()
	if roiList {
		return report.RenderPresets(out, a.bundle.Presets)
	}

	applyFloatConfig(cmd, "rate", &roiRate, a.cfg.ROI.HourlyRate)
	applyFloatConfig(cmd, "tool-cost", &roiToolCost, a.cfg.ROI.ToolCost)
	applyStringConfig(cmd, "frequency", &roiFrequency, a.cfg.ROI.Frequency)
	applyStringConfig(cmd, "task", &roiTask, a.cfg.ROI.Task)

	settings := model.ROISettings{
		ManualMinutes:   roiMinutes,
		Frequency:       roiFrequency,
		HourlyRate:      roiRate,
		MonthlyToolCost: roiToolCost,
		Task:            roiTask,
	}
	if cmd.Flags().Changed("savings") {
		savings := roiSavings
		settings.SavingsPercent = &savings
	}
	if _, err := roi.ParseFrequency(settings.Frequency); err != nil {
		return err
	}
	if _, ok := a.bundle.Preset(settings.Task); !ok {
		return fmt.Errorf("unknown task %q (see agentshift roi --list-tasks)", settings.Task)
	}

	if interactive(cmd, roiPlain) {
		m := roiui.NewModel(a.bundle.Presets, settings, a.theme, a.logger)
		if err := runProgram(m); err != nil {
			return fmt.Errorf("failed to run calculator TUI: %w", err)
		}
		return nil
	}

	req, err := buildROIRequest(a.bundle, settings)
	if err != nil {
		return err
	}
	res, err := roi.Calculate(req)
	if err != nil {
		return err
	}
	a.logger.Info("savings calculated",
		zap.Float64("net_value", res.NetValue),
		zap.String("break_even", res.BreakEven.String()))
	if err := report.RenderSavings(out, req, res); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	width := report.TerminalWidth() - 12
	if err := report.PlotProjection(out, roi.Project(res, projectionWeeks), width, plotHeight, false); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func buildROIRequest(bundle *content.Bundle, s model.ROISettings) (roi.Request, error) {
	freq, err := roi.ParseFrequency(s.Frequency)
	if err != nil {
		return roi.Request{}, err
	}
	preset, ok := bundle.Preset(s.Task)
	if !ok {
		return roi.Request{}, fmt.Errorf("unknown task %q", s.Task)
	}
	savings := preset.Savings
	if s.SavingsPercent != nil {
		savings = *s.SavingsPercent
	}
	return roi.Request{
		ManualMinutes:   s.ManualMinutes,
		Frequency:       freq,
		HourlyRate:      s.HourlyRate,
		MonthlyToolCost: s.MonthlyToolCost,
		SavingsPercent:  savings,
	}, nil
}

func frequencyNames() string {
	freqs := roi.Frequencies()
	names := make([]string, 0, len(freqs))
	for _, f := range freqs {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Watch a doer and an orchestrator race through the same task",
		Args:  cobra.NoArgs,
		RunE:  runDemoCmd,
	}
	cmd.Flags().StringVar(&demoID, "id", defaultDemoID, "demo to run (see --list)")
	cmd.Flags().DurationVar(&demoTick, "tick", defaultTick, "timer tick interval")
	cmd.Flags().BoolVar(&demoPlain, "plain", false, "plain text mode")
	cmd.Flags().BoolVar(&demoList, "list", false, "list demos and exit")
	return cmd
}

func runDemoCmd(cmd *cobra.Command, _ []string) error {
	a, err := setup("demo")
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()
	if demoList {
		for _, d := range a.bundle.Demos {
			if _, err := fmt.Fprintf(out, "%-16s %s\n", d.ID, d.Title); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		return nil
	}

	applyStringConfig(cmd, "id", &demoID, a.cfg.Demo.ID)
	if a.cfg.Demo.Tick != nil && !cmd.Flags().Changed("tick") {
		tick, err := time.ParseDuration(*a.cfg.Demo.Tick)
		if err != nil {
			return fmt.Errorf("invalid demo.tick in config: %w", err)
		}
		demoTick = tick
	}
	settings := model.DemoSettings{ID: demoID, Tick: demoTick}
	if settings.Tick <= 0 {
		return fmt.Errorf("--tick must be > 0")
	}
	demo, ok := a.bundle.Demo(settings.ID)
	if !ok {
		return fmt.Errorf("unknown demo %q (see agentshift demo --list)", settings.ID)
	}
	opts := demoui.Options{Tick: settings.Tick}

	if !interactive(cmd, demoPlain) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err := demoui.RunPlain(ctx, out, demo, opts, a.logger)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	m, err := demoui.NewModel(demo, a.theme, a.logger, opts)
	if err != nil {
		return err
	}
	if err := runProgram(m); err != nil {
		return fmt.Errorf("failed to run demo TUI: %w", err)
	}
	return nil
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
	path, err := ensureConfigFile()
	if err != nil {
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

func ensureConfigFile() (string, error) {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return "", fmt.Errorf("failed to write config: %w", err)
		}
	}
	return path, nil
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

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
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
	return fmt.Sprintf(`# agentshift configuration
# Uncomment a value to enable it. CLI flags override config values.

[quiz]
# shuffle = false          # Shuffle answer options
# bank = "/path/quiz.yaml" # Replacement quiz bank

[roi]
# hourly-rate = %.0f         # Hourly rate used to value saved time
# tool-cost = 0            # Monthly tool cost
# frequency = %q       # %s
# task = %q            # Task preset, see: agentshift roi --list-tasks

[demo]
# id = %q     # Demo to run, see: agentshift demo --list
# tick = %q            # Timer tick interval

[ui]
# accent = %q       # Accent color

[log]
# level = %q             # debug, info, warn, error or off
# file = %q
`,
		defaultHourlyRate,
		defaultFrequency,
		frequencyNames(),
		defaultTask,
		defaultDemoID,
		defaultTick.String(),
		theme.DefaultAccent,
		defaultLogLevel,
		config.DefaultLogPath(),
	)
}

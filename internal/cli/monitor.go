package cli

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/tegratop/internal/config"
	"github.com/rileyhilliard/tegratop/internal/monitor"
)

// Dashboard flags, shared by the root and monitor commands.
var (
	intervalFlag time.Duration
	noColorFlag  bool
)

// monitorCmd starts the TUI dashboard
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Live dashboard (the default command)",
	Long: `Start a full-screen dashboard that refreshes every interval.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  r           Refresh now
  ?           Show help

Examples:
  tegratop monitor
  tegratop monitor --interval 500ms
  tegratop monitor --no-color`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand(cmd)
	},
}

func init() {
	addMonitorFlags(monitorCmd)
	rootCmd.AddCommand(monitorCmd)
}

func addMonitorFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&intervalFlag, "interval", 0, "refresh interval (e.g., 1s, 500ms; default from config)")
	cmd.Flags().BoolVar(&noColorFlag, "no-color", false, "disable colors")
}

// intervalOverride applies --interval when it was given.
func intervalOverride(cmd *cobra.Command) func(*config.Config) {
	return func(cfg *config.Config) {
		if flagChanged(cmd, "interval") {
			cfg.Interval = intervalFlag
		}
	}
}

// monitorCommand discovers sources and runs the dashboard until the user quits.
func monitorCommand(cmd *cobra.Command) error {
	s, err := loadSession(cmd, intervalOverride(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	applyColor(s.cfg, noColorFlag, os.Stdout)

	sampler := s.newSampler()
	defer sampler.Close()

	model := monitor.NewModel(sampler, s.cfg.Interval)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// applyColor picks the color profile for out. Color is off when asked for
// or when out isn't a terminal in auto mode.
func applyColor(cfg *config.Config, noColor bool, out *os.File) {
	isTerminal := term.IsTerminal(int(out.Fd()))
	monitor.SetColorProfile(colorProfile(cfg, noColor, isTerminal, termenv.NewOutput(out).EnvColorProfile()))
}

func colorProfile(cfg *config.Config, noColor, isTerminal bool, detected termenv.Profile) termenv.Profile {
	if noColor || !cfg.UseColor(isTerminal) {
		return termenv.Ascii
	}
	if detected == termenv.Ascii {
		// Forced color on a pipe: the environment reports no support.
		return termenv.ANSI256
	}
	return detected
}

// terminalWidth returns the width of out, or 0 when it isn't a terminal.
func terminalWidth(out *os.File) int {
	width, _, err := term.GetSize(int(out.Fd()))
	if err != nil {
		return 0
	}
	return width
}

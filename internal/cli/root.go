package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/tegratop/internal/config"
	"github.com/rileyhilliard/tegratop/internal/errors"
	"github.com/rileyhilliard/tegratop/internal/logger"
	"github.com/rileyhilliard/tegratop/internal/telemetry"
)

// Global flags
var (
	configFlag  string
	envFileFlag string
	logFileFlag string
	debugFlag   bool
)

// rootCmd runs the dashboard when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "tegratop",
	Short: "Live telemetry dashboard for NVIDIA Jetson boards",
	Long: `tegratop samples CPU, memory, GPU, engine, power, thermal, fan, disk and
network metrics straight from the kernel's pseudo-files and shows them in a
terminal dashboard.

Metric sources are discovered once at startup. Anything the board doesn't
expose is shown as "-". Run 'tegratop sources' to see what was found.

Examples:
  tegratop
  tegratop --interval 2s
  tegratop snapshot --json
  tegratop sources`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default: ./tegratop.yaml, ~/.config/tegratop/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env-file", config.DefaultEnvFile, "file of TEGRATOP_* variables to load")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "log file (default: "+config.DefaultLogFile+")")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write debug lines to the log file")

	addMonitorFlags(rootCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

// formatError renders err for the terminal, pointing unknown commands at
// the help text.
func formatError(err error) string {
	if isUnknownCommandError(err) {
		hint := "Run 'tegratop --help' to see available commands."
		if name := extractUnknownCommand(err); name != "" {
			return errors.New(errors.ErrConfig, fmt.Sprintf("Unknown command '%s'", name), hint).Error()
		}
		return errors.New(errors.ErrConfig, err.Error(), hint).Error()
	}

	msg := err.Error()
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	return msg
}

func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

// extractUnknownCommand pulls the name out of cobra's
// `unknown command "foo" for "tegratop"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

// session is the resolved configuration and log file shared by the
// commands that sample the board.
type session struct {
	cfg  *config.Config
	path string
	log  logger.Logger
	file *logger.FileLogger
}

// loadSession resolves configuration in order: env file, config file and
// environment, global flags, then the command's own overrides. The result
// is validated before the log file is opened.
func loadSession(cmd *cobra.Command, override func(*config.Config)) (*session, error) {
	if err := config.LoadEnvFile(envFileFlag, flagChanged(cmd, "env-file")); err != nil {
		return nil, err
	}

	cfg, path, err := config.LoadOrDefault(configFlag)
	if err != nil {
		return nil, err
	}

	if logFileFlag != "" {
		cfg.Log.File = config.ExpandTilde(logFileFlag)
	}
	if debugFlag {
		cfg.Log.Debug = true
	}
	if override != nil {
		override(cfg)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	file, err := logger.NewFileLogger(cfg.Log.File, cfg.Log.Debug)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to open log file: %s", cfg.Log.File),
			"Pick a writable location with --log-file or log.file")
	}
	logger.SetDefault(file)

	if path != "" {
		file.Info("loaded config from %s", path)
	} else {
		file.Info("no config file found, using defaults")
	}

	return &session{cfg: cfg, path: path, log: file, file: file}, nil
}

// samplerOptions maps the configuration onto sampler options.
func (s *session) samplerOptions() telemetry.Options {
	timeout := s.cfg.ReadTimeout
	if timeout == 0 {
		// Zero in the config means unbounded reads.
		timeout = -1
	}
	return telemetry.Options{
		Root:        s.cfg.Root,
		ReadTimeout: timeout,
		Disabled:    s.cfg.Disable,
		Logger:      s.log,
	}
}

// newSampler builds a sampler and runs discovery.
func (s *session) newSampler() *telemetry.Sampler {
	sampler := telemetry.NewSampler(s.samplerOptions())
	sampler.Discover()
	return sampler
}

// Close flushes and closes the log file.
func (s *session) Close() error {
	logger.SetDefault(logger.Noop())
	return s.file.Close()
}

// flagChanged reports whether a flag was set on the command line, looking
// at both local and inherited flags.
func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Changed
	}
	return false
}

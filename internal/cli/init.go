package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/tegratop/internal/config"
	"github.com/rileyhilliard/tegratop/internal/errors"
	"github.com/rileyhilliard/tegratop/internal/telemetry"
	"github.com/rileyhilliard/tegratop/internal/ui"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Path      string // Where to write; defaults to ./tegratop.yaml
	Overwrite bool   // Overwrite existing config without asking
	Defaults  bool   // Skip prompts, write the defaults
}

var (
	initPathFlag     string
	initForceFlag    bool
	initDefaultsFlag bool
)

// initCmd writes a config file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a tegratop.yaml config file",
	Long: `Create a config file, asking for the refresh interval, color mode and
subsystems to skip. With --defaults no questions are asked.

Examples:
  tegratop init
  tegratop init --defaults
  tegratop init --path ~/.config/tegratop/config.yaml --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(InitOptions{
			Path:      initPathFlag,
			Overwrite: initForceFlag,
			Defaults:  initDefaultsFlag,
		}, cmd.OutOrStdout())
	},
}

func init() {
	initCmd.Flags().StringVar(&initPathFlag, "path", "", "config file to write (default ./"+config.ConfigFileName+")")
	initCmd.Flags().BoolVarP(&initForceFlag, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initDefaultsFlag, "defaults", false, "write defaults without prompting")
	rootCmd.AddCommand(initCmd)
}

// promptConfig fills cfg from interactive prompts. Replaced in tests.
var promptConfig = runInitForm

// confirmOverwrite asks before replacing an existing file. Replaced in tests.
var confirmOverwrite = runOverwriteForm

// Init creates a new config file.
func Init(opts InitOptions, out io.Writer) error {
	path := opts.Path
	if path == "" {
		path = config.ConfigFileName
	}
	path = config.ExpandTilde(path)

	overwrite := opts.Overwrite
	if _, err := os.Stat(path); err == nil && !overwrite && !opts.Defaults {
		ok, err := confirmOverwrite(path)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
		overwrite = true
	}

	cfg := config.DefaultConfig()
	if !opts.Defaults {
		if err := promptConfig(cfg); err != nil {
			return err
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.Write(path, cfg, overwrite); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s Created %s\n\n", ui.SymbolSuccess, path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  tegratop sources  - See which metric sources this board has")
	fmt.Fprintln(out, "  tegratop          - Start the dashboard")
	return nil
}

func runOverwriteForm(path string) (bool, error) {
	var overwrite bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
				Value(&overwrite),
		),
	)
	if err := form.Run(); err != nil {
		return false, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Try running with --force to overwrite")
	}
	return overwrite, nil
}

func runInitForm(cfg *config.Config) error {
	interval := cfg.Interval.String()
	disabled := append([]string(nil), cfg.Disable...)

	subsystems := telemetry.Subsystems()
	options := make([]huh.Option[string], len(subsystems))
	for i, name := range subsystems {
		options[i] = huh.NewOption(name, name)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Refresh interval").
				Description(fmt.Sprintf("How often to sample, e.g. 1s or 500ms (minimum %s)", config.MinInterval)).
				Value(&interval).
				Validate(validateInterval),
			huh.NewSelect[string]().
				Title("Colors").
				Options(huh.NewOptions(config.ColorAuto, config.ColorAlways, config.ColorNever)...).
				Value(&cfg.Color),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Subsystems to skip").
				Description("Disabled subsystems are never probed").
				Options(options...).
				Value(&disabled),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Log file").
				Value(&cfg.Log.File).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("log file is required")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Write debug lines to the log?").
				Value(&cfg.Log.Debug),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --defaults")
	}

	// validateInterval already accepted it.
	cfg.Interval, _ = time.ParseDuration(strings.TrimSpace(interval))
	cfg.Disable = disabled
	cfg.Log.File = config.ExpandTilde(strings.TrimSpace(cfg.Log.File))
	return nil
}

func validateInterval(s string) error {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a duration: use a value like 1s or 500ms")
	}
	if d < config.MinInterval {
		return fmt.Errorf("must be at least %s", config.MinInterval)
	}
	return nil
}

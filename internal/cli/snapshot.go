package cli

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/tegratop/internal/errors"
	"github.com/rileyhilliard/tegratop/internal/monitor"
	"github.com/rileyhilliard/tegratop/internal/telemetry"
)

// Output formats for one-shot commands.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	snapshotJSON bool
	snapshotYAML bool
)

// sleep is swapped out in tests.
var sleep = time.Sleep

// snapshotCmd prints a single sample
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print one sample and exit",
	Long: `Discover metric sources, wait one interval so counters have two samples,
then print the dashboard once.

Examples:
  tegratop snapshot
  tegratop snapshot --json
  tegratop snapshot --yaml --interval 2s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCommand(cmd, outputFormat(snapshotJSON, snapshotYAML))
	},
}

func init() {
	snapshotCmd.Flags().BoolVar(&snapshotJSON, "json", false, "print the snapshot as JSON")
	snapshotCmd.Flags().BoolVar(&snapshotYAML, "yaml", false, "print the snapshot as YAML")
	snapshotCmd.MarkFlagsMutuallyExclusive("json", "yaml")
	addMonitorFlags(snapshotCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func outputFormat(asJSON, asYAML bool) string {
	switch {
	case asJSON:
		return formatJSON
	case asYAML:
		return formatYAML
	default:
		return formatText
	}
}

func snapshotCommand(cmd *cobra.Command, format string) error {
	s, err := loadSession(cmd, intervalOverride(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	sampler := s.newSampler()
	defer sampler.Close()

	// Rates and utilization need a second sample.
	sleep(s.cfg.Interval)
	snap := sampler.Refresh()

	width := 0
	if format == formatText {
		applyColor(s.cfg, noColorFlag, os.Stdout)
		width = terminalWidth(os.Stdout)
	}
	return writeSnapshot(cmd.OutOrStdout(), snap, format, width)
}

// writeSnapshot encodes snap in the given format.
func writeSnapshot(w io.Writer, snap telemetry.Snapshot, format string, width int) error {
	switch format {
	case formatJSON:
		return writeJSON(w, snap)
	case formatYAML:
		return writeYAML(w, snap)
	default:
		_, err := io.WriteString(w, monitor.Render(snap, width)+"\n")
		return err
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "Failed to encode JSON")
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "Failed to encode YAML")
	}
	return enc.Close()
}

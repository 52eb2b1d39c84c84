package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/tegratop/internal/telemetry"
	"github.com/rileyhilliard/tegratop/internal/ui"
)

var sourcesJSON bool

// sourcesCmd prints the discovery report
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Show which metric sources were found on this board",
	Long: `Run discovery once and list every probed source with its path, whether it
was found, and why not when it wasn't.

Examples:
  tegratop sources
  tegratop sources --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return sourcesCommand(cmd, sourcesJSON)
	},
}

func init() {
	sourcesCmd.Flags().BoolVar(&sourcesJSON, "json", false, "print the report as JSON")
	sourcesCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "disable colors")
	rootCmd.AddCommand(sourcesCmd)
}

func sourcesCommand(cmd *cobra.Command, asJSON bool) error {
	s, err := loadSession(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	sampler := s.newSampler()
	defer sampler.Close()

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), sampler.Report())
	}
	applyColor(s.cfg, noColorFlag, os.Stdout)
	return writeSources(cmd.OutOrStdout(), sampler.Report(), s.cfg.Disable)
}

// writeSources prints the report table followed by a one-line summary.
func writeSources(w io.Writer, report []telemetry.SourceStatus, disabled []string) error {
	present, absent := ui.SourcesSummary(report)
	if _, err := fmt.Fprintln(w, ui.RenderSourcesTable(report)); err != nil {
		return err
	}
	summary := fmt.Sprintf("%d found, %d absent", present, absent)
	if len(disabled) > 0 {
		summary += ", disabled by config: " + strings.Join(disabled, ", ")
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}

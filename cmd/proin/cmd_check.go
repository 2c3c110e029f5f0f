package main

import (
	"fmt"
	"os"

	"github.com/mwessel/proin/config"
	"github.com/mwessel/proin/prosim/workspace"
	"github.com/spf13/cobra"
)

func newCheckCmd(configPath *string) *cobra.Command {
	var reportSkipped bool
	var reportUnused bool

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Analyze input decks and report diagnostics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("report-skipped") {
				cfg.Diagnostics.ReportSkipped = reportSkipped
			}
			if cmd.Flags().Changed("report-unused") {
				cfg.Diagnostics.ReportUnusedStreams = reportUnused
			}

			ws := workspace.New(cfg)
			findings := 0

			for _, filename := range args {
				data, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read input file: %w", err)
				}

				doc := ws.Update(filename, string(data))
				for _, d := range ws.Diagnostics(doc) {
					findings++
					fmt.Printf("%s:%d:%d: %s: %s\n",
						filename, d.Span.Start.Line, d.Span.Start.Column,
						severityLabel(d.Severity), d.Message)
				}
			}

			if findings > 0 {
				return fmt.Errorf("%d finding(s)", findings)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&reportSkipped, "report-skipped", false, "report lines the parser ignored")
	cmd.Flags().BoolVar(&reportUnused, "report-unused", true, "report streams not connected to any unit")

	return cmd
}

func severityLabel(s workspace.Severity) string {
	switch s {
	case workspace.SeverityError:
		return "error"
	case workspace.SeverityWarning:
		return "warning"
	case workspace.SeverityInformation:
		return "info"
	default:
		return "hint"
	}
}

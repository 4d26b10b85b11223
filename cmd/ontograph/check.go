package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-ontograph/pkg/algorithms"
	"github.com/dd0wney/cluso-ontograph/pkg/logging"
	"github.com/dd0wney/cluso-ontograph/pkg/metrics"
	"github.com/dd0wney/cluso-ontograph/pkg/ontology"
)

// errCyclesFound makes check exit non-zero after the report is printed.
var errCyclesFound = errors.New("hierarchy has cycles")

type checkOptions struct {
	ontologyPath  string
	relationships []string
	metricsFile   string
	logLevel      string
}

func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check --ontology FILE",
		Short: "Report cycles in an ontology's parent hierarchy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.ontologyPath, "ontology", "", "OBO file to check")
	flags.StringArrayVar(&opts.relationships, "relationship", nil, "relationship type followed as a parent edge, repeatable")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write check metrics in Prometheus text format")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level")
	_ = cmd.MarkFlagRequired("ontology")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *checkOptions) error {
	logger := commandLogger(cmd, opts.logLevel)
	reg := metrics.NewRegistry()

	timer := logging.StartTimer(logger, "ontology loaded", logging.Path(opts.ontologyPath))
	o, err := ontology.LoadFile(opts.ontologyPath, ontology.ParseOptions{Relationships: opts.relationships})
	if err != nil {
		timer.EndError(err)
		return err
	}
	timer.End(logging.Count(o.Len()))
	dangling := o.Dangling()
	reg.UpdateOntologyMetrics(o.Len(), len(dangling))

	cycles, err := algorithms.DetectCycles(o)
	if err != nil {
		return fmt.Errorf("cycle detection failed: %w", err)
	}
	reg.RecordCycles(len(cycles))

	if opts.metricsFile != "" {
		if err := reg.WriteTextfile(opts.metricsFile); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if len(dangling) > 0 {
		fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("%d terms reference undefined parents", len(dangling))))
	}
	if len(cycles) == 0 {
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("No cycles in %d terms", o.Len())))
		return nil
	}

	stats := algorithms.AnalyzeCycles(cycles)
	fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf(
		"%d cycles found (shortest %d, longest %d, self loops %d)",
		stats.TotalCycles, stats.ShortestCycle, stats.LongestCycle, stats.SelfLoops)))
	for _, c := range cycles {
		fmt.Fprintln(out, "  "+strings.Join(c, " -> "))
	}
	return errCyclesFound
}

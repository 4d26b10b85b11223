package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-ontograph/pkg/export"
	"github.com/dd0wney/cluso-ontograph/pkg/logging"
	"github.com/dd0wney/cluso-ontograph/pkg/metrics"
	"github.com/dd0wney/cluso-ontograph/pkg/pipeline"
	"github.com/dd0wney/cluso-ontograph/pkg/profile"
)

type buildOptions struct {
	profilePath string
	roots       []string
	mode        string
	delimiters  []string
	inclusive   bool
	maxDepth    int
	output      string
	format      string
	metricsFile string
}

func newBuildCmd() *cobra.Command {
	opts := &buildOptions{}
	cmd := &cobra.Command{
		Use:   "build --profile FILE",
		Short: "Build, annotate and export a graph from a profile",
		Long: `Build runs the profile's builder for every root into one graph,
applies the annotation table if the profile names one and writes the
result to the output path. Flags override the matching profile fields.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.profilePath, "profile", "p", "", "build profile (YAML)")
	flags.StringArrayVarP(&opts.roots, "root", "r", nil, "root term ID, repeatable; replaces the profile roots")
	flags.StringVarP(&opts.mode, "mode", "m", "", "build mode: descendants, ancestors, ancestors-bounded or closure")
	flags.StringArrayVarP(&opts.delimiters, "delimiter", "d", nil, "delimiter term ID, repeatable; replaces the profile delimiters")
	flags.BoolVar(&opts.inclusive, "inclusive", false, "keep reached delimiters in a closure build")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "depth bound for tree builds, 0 for none")
	flags.StringVarP(&opts.output, "output", "o", "", "output path; a .sz suffix compresses the file")
	flags.StringVar(&opts.format, "format", "", "output format: graphml or json")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write run metrics in Prometheus text format")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

// apply copies the flags that were set on the command line over the
// profile.
func (o *buildOptions) apply(cmd *cobra.Command, p *profile.Profile) {
	flags := cmd.Flags()
	if flags.Changed("root") {
		p.Build.Roots = o.roots
	}
	if flags.Changed("mode") {
		p.Build.Mode = profile.Mode(o.mode)
	}
	if flags.Changed("delimiter") {
		p.Build.Delimiters = o.delimiters
	}
	if flags.Changed("inclusive") {
		p.Build.Inclusive = o.inclusive
	}
	if flags.Changed("max-depth") {
		p.Build.MaxDepth = o.maxDepth
	}
	if flags.Changed("output") {
		p.Output.Path = o.output
		if !flags.Changed("format") {
			p.Output.Format = string(export.FormatForPath(o.output))
		}
	}
	if flags.Changed("format") {
		p.Output.Format = o.format
	}
	if flags.Changed("metrics-file") {
		p.MetricsFile = o.metricsFile
	}
}

func runBuild(cmd *cobra.Command, opts *buildOptions) error {
	p, err := profile.Load(opts.profilePath)
	if err != nil {
		return err
	}
	opts.apply(cmd, p)
	if err := p.Validate(); err != nil {
		return err
	}

	logger := commandLogger(cmd, p.LogLevel)
	reg := metrics.NewRegistry()

	o, err := pipeline.LoadOntology(p, logger, reg)
	if err != nil {
		return err
	}
	rows, err := pipeline.LoadAnnotations(cmd.Context(), p, logger)
	if err != nil {
		return err
	}

	res, runErr := pipeline.Run(cmd.Context(), pipeline.Config{
		Profile:   p,
		Hierarchy: o,
		Rows:      rows,
		Logger:    logger,
		Metrics:   reg,
	})
	if runErr == nil {
		if err := pipeline.Export(res, o, p.Output); err != nil {
			runErr = err
		} else if p.Output.Path != "" {
			logger.Info("graph exported", logging.Path(p.Output.Path), logging.String("format", p.Output.Format))
		}
	}

	// Metrics are written for failed runs too.
	if p.MetricsFile != "" {
		if err := reg.WriteTextfile(p.MetricsFile); err != nil {
			logger.Error("failed to write metrics", logging.Path(p.MetricsFile), logging.Error(err))
			if runErr == nil {
				runErr = err
			}
		}
	}
	if runErr != nil {
		return runErr
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(res, p.Output.Path))
	return nil
}

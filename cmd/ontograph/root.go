package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-ontograph/pkg/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ontograph",
		Short: "Build working graphs from OBO term hierarchies",
		Long: `ontograph expands an OBO term hierarchy into an undirected graph
around a set of root terms, overlays tabular annotations on the
resulting nodes and exports the graph as GraphML or node-link JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newBuildCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ontograph version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ontograph %s\n", version)
		},
	}
}

// commandLogger writes JSON logs to the command's stderr. LOG_LEVEL
// overrides the configured level.
func commandLogger(cmd *cobra.Command, level string) logging.Logger {
	return logging.NewFromEnv(cmd.ErrOrStderr(), level).With(logging.Component(cmd.Name()))
}

package main

import (
	"github.com/spf13/cobra"

	"cmreport/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

type rootFlags struct {
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	cmd := &cobra.Command{
		Use:   "cmreport",
		Short: "Confusion-matrix reports for classifier evaluation",
		Long: `cmreport builds row-normalized confusion matrices from true and
predicted labels and renders them side by side as a heatmap image,
a text table or a CSV export.`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := logging.ParseLevel(flags.logLevel)
			if err != nil {
				return err
			}
			logging.Init(level, flags.logFormat, cmd.ErrOrStderr())
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFormat, "log-format", "text", "Log format (text, json)")

	cmd.AddCommand(newReportCmd())
	cmd.AddCommand(newDemoCmd())
	cmd.AddCommand(newVersionCmd())
	cmd.Version = version
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cmreport version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("cmreport " + version)
		},
	}
}

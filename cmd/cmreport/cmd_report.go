package main

import (
	"github.com/spf13/cobra"

	"cmreport/internal/display"
	"cmreport/internal/logging"
	"cmreport/internal/suite"
)

type reportFlags struct {
	file string
	out  outputFlags
}

func newReportCmd() *cobra.Command {
	var flags reportFlags
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render confusion matrices from a labels file",
		Long: `Report reads a YAML or JSON labels file with a class count and one
(title, y_true, y_pred) entry per classifier, row-normalizes each confusion
matrix and renders all of them side by side.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "Labels file (YAML or JSON, required)")
	_ = cmd.MarkFlagRequired("file")
	flags.out.bind(cmd)
	return cmd
}

func runReport(cmd *cobra.Command, flags reportFlags) error {
	s, err := suite.LoadFromPath(flags.file)
	if err != nil {
		return err
	}
	panels, err := s.Panels()
	if err != nil {
		return err
	}
	logging.New("cli").Debug("labels loaded",
		"file", flags.file, "reports", len(panels), "classes", display.ClassList(s.Classes, s.ClassNames))
	return writeReport(cmd, flags.out, panels)
}

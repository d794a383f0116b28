package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cmreport/internal/config"
	"cmreport/internal/dataset"
	"cmreport/internal/display"
	"cmreport/internal/evaluate"
	"cmreport/internal/format"
	"cmreport/internal/logging"
)

type demoFlags struct {
	config    string
	samples   int
	features  int
	classes   int
	seed      uint64
	testSize  float64
	splitSeed uint64
	parallel  int
	summary   string
	out       outputFlags
}

func newDemoCmd() *cobra.Command {
	var flags demoFlags
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Evaluate baseline classifiers on synthetic data and render their confusion matrices",
		Long: `Demo generates a seeded Gaussian dataset with uniform labels, splits it
into train and test sets, fits one baseline classifier per configured
strategy concurrently and renders one confusion-matrix panel per classifier.

Settings come from built-in defaults, then --config, then explicit flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, flags)
		},
	}
	def := config.Default()
	f := cmd.Flags()
	f.StringVar(&flags.config, "config", "", "YAML run configuration")
	f.IntVar(&flags.samples, "samples", def.Dataset.Samples, "Number of samples")
	f.IntVar(&flags.features, "features", def.Dataset.Features, "Features (series length) per sample")
	f.IntVar(&flags.classes, "classes", def.Dataset.Classes, "Number of classes")
	f.Uint64Var(&flags.seed, "seed", def.Dataset.Seed, "Dataset seed")
	f.Float64Var(&flags.testSize, "test-size", def.Split.TestSize, "Fraction of samples held out for testing")
	f.Uint64Var(&flags.splitSeed, "split-seed", def.Split.Seed, "Train/test split seed")
	f.IntVar(&flags.parallel, "parallel", def.Parallel, "Classifiers evaluated concurrently")
	f.StringVar(&flags.summary, "summary", "ascii", "Summary table mode printed after the run (ascii, markdown, none)")
	flags.out.bind(cmd)
	return cmd
}

// loadDemoConfig layers defaults, the config file and explicitly set flags.
func loadDemoConfig(cmd *cobra.Command, flags demoFlags) (*config.Config, error) {
	cfg := config.Default()
	if flags.config != "" {
		c, err := config.LoadFromPath(flags.config)
		if err != nil {
			return nil, err
		}
		cfg = c
	}

	set := cmd.Flags().Changed
	if set("samples") {
		cfg.Dataset.Samples = flags.samples
	}
	if set("features") {
		cfg.Dataset.Features = flags.features
	}
	if set("classes") {
		cfg.Dataset.Classes = flags.classes
	}
	if set("seed") {
		cfg.Dataset.Seed = flags.seed
	}
	if set("test-size") {
		cfg.Split.TestSize = flags.testSize
	}
	if set("split-seed") {
		cfg.Split.Seed = flags.splitSeed
	}
	if set("parallel") {
		cfg.Parallel = flags.parallel
	}
	if set("output") {
		cfg.Output.Path = flags.out.path
	}
	if set("format") {
		cfg.Output.Format = flags.out.format
	}
	if set("panel-size") {
		cfg.Output.PanelSize = flags.out.panelSize
	}
	return cfg, cfg.Validate()
}

func runDemo(cmd *cobra.Command, flags demoFlags) error {
	cfg, err := loadDemoConfig(cmd, flags)
	if err != nil {
		return err
	}
	if flags.config != "" && !cmd.Flags().Changed("log-level") && !cmd.Flags().Changed("log-format") {
		level, _ := logging.ParseLevel(cfg.Log.Level)
		logging.Init(level, cfg.Log.Format, cmd.ErrOrStderr())
	}
	logger := logging.New("cli")

	ds, err := dataset.Synthetic(cfg.Dataset)
	if err != nil {
		return err
	}
	split, err := dataset.TrainTestSplit(ds, cfg.Split.TestSize, cfg.Split.Seed)
	if err != nil {
		return err
	}
	logger.Info("dataset ready",
		"samples", ds.Len(), "features", ds.Features(), "classes", ds.Classes,
		"train", split.Train.Len(), "test", split.Test.Len())

	classifiers, err := cfg.NamedClassifiers()
	if err != nil {
		return err
	}
	for _, c := range cfg.Classifiers {
		logger.Debug("classifier configured", "name", c.Name, "strategy", display.StrategyWithCode(c.Strategy), "seed", c.Seed)
	}
	results, err := evaluate.Run(cmd.Context(), split, classifiers, evaluate.Options{
		Parallel: cfg.Parallel,
		Classes:  cfg.Dataset.Classes,
	})
	if err != nil {
		return err
	}

	if err := writeReport(cmd, outputFlags{
		path:      cfg.Output.Path,
		format:    cfg.Output.Format,
		panelSize: cfg.Output.PanelSize,
	}, results.Panels()); err != nil {
		return err
	}

	if flags.summary == "none" {
		return nil
	}
	mode, err := format.ParseMode(flags.summary)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), evaluate.FormatSummary(results, mode))
	return nil
}

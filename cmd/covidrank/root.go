package main

import (
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/covidrank/config"
	"github.com/YuminosukeSato/covidrank/pkg/log"
)

// app carries the settings shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "covidrank",
		Short: "Relate state reopening ranks to COVID-19 outcomes",
		Long: "covidrank scrapes state reopening ranks, joins them with case data and " +
			"selects the predictors that best explain an outcome by backward elimination " +
			"with k-fold cross-validated OLS.",
		SilenceUsage:      true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error { return a.setup() },
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newScrapeCmd(a),
		newJoinCmd(a),
		newSelectCmd(a),
		newPlotCmd(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if err := log.SetupLogger(cfg.Log.Level); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/covidrank/dataset"
)

func newScrapeCmd(a *app) *cobra.Command {
	var (
		out string
		url string
	)
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Download the state reopening ranks",
		Long:  "Fetches the reopening guide page and writes its rank table (Rank, State, Score) as CSV.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if url != "" {
				a.cfg.Scrape.URL = url
			}
			ranks, err := a.cfg.Scraper().FetchRanks(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" {
				return dataset.WriteCSV(cmd.OutOrStdout(), ranks)
			}
			return dataset.WriteCSVFile(out, ranks)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output CSV path (default stdout)")
	cmd.Flags().StringVar(&url, "url", "", "Page to scrape (overrides scrape.url)")
	return cmd
}

package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/covidrank/core/table"
	"github.com/YuminosukeSato/covidrank/dataset"
	"github.com/YuminosukeSato/covidrank/pkg/errors"
)

type joinFlags struct {
	left      string
	right     string
	key       string
	rightKey  string
	rank      string
	perCapita []string
	out       string
}

func newJoinCmd(a *app) *cobra.Command {
	var f joinFlags
	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join a state table with the reopening ranks",
		Long: "Inner-joins two CSV files on the normalised state name, optionally parses a " +
			"parenthesised rank column and adds per-capita rate columns.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.key == "" {
				f.key = a.cfg.Data.ID
			}
			joined, err := runJoin(f)
			if err != nil {
				return err
			}
			if f.out == "" {
				return dataset.WriteCSV(cmd.OutOrStdout(), joined)
			}
			return dataset.WriteCSVFile(f.out, joined)
		},
	}
	cmd.Flags().StringVarP(&f.left, "left", "l", "", "Left CSV file, e.g. case counts (required)")
	cmd.Flags().StringVarP(&f.right, "right", "r", "", "Right CSV file with one row per state (required)")
	cmd.Flags().StringVarP(&f.key, "key", "k", "", "State column of the left file (default data.id)")
	cmd.Flags().StringVar(&f.rightKey, "right-key", "", "State column of the right file (default --key)")
	cmd.Flags().StringVar(&f.rank, "rank-column", "", "Column holding ranks printed as \"(12)\"")
	cmd.Flags().StringSliceVar(&f.perCapita, "per-capita", nil,
		"Rate columns as column:population:per[:name], e.g. cases:population:100000")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Output CSV path (default stdout)")
	markRequired(cmd, "left", "right")
	return cmd
}

func runJoin(f joinFlags) (*table.Table, error) {
	left, err := dataset.LoadCSVFile(f.left, dataset.Options{Categorical: []string{f.key}})
	if err != nil {
		return nil, err
	}
	rightKey := f.rightKey
	if rightKey == "" {
		rightKey = f.key
	}
	right, err := dataset.LoadCSVFile(f.right, dataset.Options{Categorical: nonEmpty(rightKey, f.rank)})
	if err != nil {
		return nil, err
	}
	if rightKey != f.key {
		if right, err = renameColumn(right, rightKey, f.key); err != nil {
			return nil, err
		}
	}
	if f.rank != "" {
		if right, err = dataset.ParseRankColumn(right, f.rank); err != nil {
			return nil, err
		}
	}

	joined, err := dataset.JoinOnState(left, right, f.key)
	if err != nil {
		return nil, err
	}
	for _, spec := range f.perCapita {
		rate, err := parsePerCapita(spec)
		if err != nil {
			return nil, err
		}
		if joined, err = dataset.PerCapita(joined, rate.column, rate.population, rate.per, rate.name); err != nil {
			return nil, err
		}
	}
	return joined, nil
}

type perCapitaSpec struct {
	column     string
	population string
	per        float64
	name       string
}

// parsePerCapita reads "column:population:per[:name]". The name defaults
// to "<column>_per_<per>".
func parsePerCapita(s string) (perCapitaSpec, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 && len(parts) != 4 {
		return perCapitaSpec{}, errors.NewValidationError("per-capita", "want column:population:per[:name]", s)
	}
	per, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || per <= 0 {
		return perCapitaSpec{}, errors.NewValidationError("per-capita", "per must be a positive number", parts[2])
	}
	spec := perCapitaSpec{column: parts[0], population: parts[1], per: per}
	if len(parts) == 4 {
		spec.name = parts[3]
	} else {
		spec.name = spec.column + "_per_" + parts[2]
	}
	return spec, nil
}

func renameColumn(tbl *table.Table, from, to string) (*table.Table, error) {
	if !tbl.Has(from) {
		return nil, errors.NewValueError("renameColumn", "unknown column '"+from+"'")
	}
	cols := tbl.Columns()
	for i, c := range cols {
		if c.Name == from {
			cols[i] = c.Rename(to)
		}
	}
	return table.New(cols...)
}

func nonEmpty(names ...string) []string {
	var out []string
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

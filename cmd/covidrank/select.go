package main

import (
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/covidrank/dataset"
	"github.com/YuminosukeSato/covidrank/model_selection"
	"github.com/YuminosukeSato/covidrank/pkg/errors"
	"github.com/YuminosukeSato/covidrank/preprocessing"
)

func newSelectCmd(a *app) *cobra.Command {
	var (
		data     string
		target   string
		id       string
		exclude  []string
		features []string
		encode   []string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select predictors by backward elimination",
		Long: "Loads a CSV table, drops predictors one at a time while the k-fold " +
			"cross-validated OLS error keeps falling, then reports a train/test " +
			"evaluation of the selected set.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := &a.cfg.Data
			override(&d.Path, data)
			override(&d.Target, target)
			override(&d.ID, id)
			if cmd.Flags().Changed("exclude") {
				d.Exclude = exclude
			}
			if cmd.Flags().Changed("features") {
				d.Features = features
			}
			if cmd.Flags().Changed("encode") {
				d.Encode = encode
			}
			out, err := runSelect(a)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			return writeSelectText(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVarP(&data, "data", "d", "", "Input CSV file (overrides data.path)")
	cmd.Flags().StringVarP(&target, "target", "t", "", "Target column (overrides data.target)")
	cmd.Flags().StringVar(&id, "id", "", "Identifier column left out of the predictors (overrides data.id)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Further columns left out of the predictors")
	cmd.Flags().StringSliceVarP(&features, "features", "f", nil, "Candidate predictors (default every numeric column)")
	cmd.Flags().StringSliceVar(&encode, "encode", nil, "Categorical columns to one-hot encode")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write the report as JSON")
	return cmd
}

// selection is the outcome of the select command.
type selection struct {
	Target  string
	Result  *model_selection.SelectionResult
	Holdout *model_selection.HoldoutMetrics
	// Folds and Seed describe the cross-validation partition.
	Folds int
	Seed  uint64
}

func runSelect(a *app) (*selection, error) {
	d := a.cfg.Data
	if d.Path == "" {
		return nil, errors.NewValidationError("data.path", "no input file", d.Path)
	}
	if d.Target == "" {
		return nil, errors.NewValidationError("data.target", "no target column", d.Target)
	}

	tbl, err := dataset.LoadCSVFile(d.Path, dataset.Options{Categorical: d.Encode})
	if err != nil {
		return nil, err
	}
	var enc *preprocessing.OneHotEncoder
	if len(d.Encode) > 0 {
		enc = preprocessing.NewOneHotEncoder(d.Encode...)
		if tbl, err = enc.FitTransform(tbl); err != nil {
			return nil, err
		}
	}

	exclude := append([]string(nil), d.Exclude...)
	if d.ID != "" && d.ID != d.Target && tbl.Has(d.ID) {
		exclude = append(exclude, d.ID)
	}
	ds, err := model_selection.FromTable(tbl, d.Target, exclude...)
	if err != nil {
		return nil, err
	}

	features := ds.Predictors().NumericNames()
	if len(d.Features) > 0 {
		features = expandEncoded(d.Features, enc)
	}

	scorer, err := model_selection.NewCVScorer(ds, a.cfg.CVOptions()...)
	if err != nil {
		return nil, err
	}
	result, err := model_selection.BackwardEliminate(scorer, features)
	if err != nil {
		return nil, err
	}
	holdout, err := model_selection.EvaluateHoldout(ds, result.Features, a.cfg.HoldoutOptions()...)
	if err != nil {
		return nil, errors.Wrap(err, "holdout evaluation")
	}
	return &selection{
		Target:  d.Target,
		Result:  result,
		Holdout: holdout,
		Folds:   len(scorer.Folds()),
		Seed:    a.cfg.CV.Seed,
	}, nil
}

// expandEncoded replaces each one-hot encoded column among features with
// its dummy columns.
func expandEncoded(features []string, enc *preprocessing.OneHotEncoder) []string {
	if enc == nil {
		return features
	}
	encoded := make(map[string]bool, len(enc.Columns))
	for _, c := range enc.Columns {
		encoded[c] = true
	}
	var out []string
	for _, f := range features {
		if encoded[f] {
			out = append(out, enc.DummyNames(f)...)
			continue
		}
		out = append(out, f)
	}
	return out
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}


// Package covidrank relates US state reopening ranks to COVID-19 outcomes
// and picks the state attributes that best explain an outcome.
//
// The core is a greedy backward feature selector. Starting from every
// candidate predictor, it scores each subset by k-fold cross-validated
// mean squared error of an ordinary least squares fit, drops the single
// predictor whose removal lowers that error the most, and stops when no
// removal helps. The selected set is then evaluated once on a seeded
// train/test split.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/covidrank/dataset"
//	    "github.com/YuminosukeSato/covidrank/model_selection"
//	)
//
//	func main() {
//	    tbl, err := dataset.LoadCSVFile("joined.csv", dataset.Options{})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    data, err := model_selection.FromTable(tbl, "cases_per_100k", "state")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    scorer, err := model_selection.NewCVScorer(data)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    result, err := model_selection.BackwardEliminate(scorer, data.Features())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("selected:", result.Features, "cv mse:", result.Score)
//	}
//
// # Packages
//
//   - model_selection: k-fold partition, subset scorer, backward elimination, holdout
//   - linear: OLS linear regression (SVD least squares)
//   - metrics: MSE, RMSE, MAE, R²
//   - preprocessing: one-hot encoding of categorical columns
//   - dataset: CSV loading, state normalisation, joins and reshaping
//   - scrape: the reopening rank table scraper
//   - report: scatter and grouped bar charts
//   - config: YAML and .env configuration
//   - core/table: the typed observation table
//   - core/model: estimator interfaces and fitted state
//   - pkg/errors, pkg/log: structured errors and logging
//
// The covidrank command in cmd/covidrank wires these together.
package covidrank

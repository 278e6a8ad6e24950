package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// selectReport is the JSON form of a selection. R² values that are
// undefined (zero-variance target) are written as null.
type selectReport struct {
	Target     string        `json:"target"`
	NSplits    int           `json:"n_splits"`
	Seed       uint64        `json:"seed"`
	Features   []string      `json:"features"`
	Removed    []string      `json:"removed"`
	Baseline   float64       `json:"baseline_mse"`
	Score      float64       `json:"cv_mse"`
	Iterations int           `json:"iterations"`
	History    []stepReport  `json:"history"`
	Holdout    holdoutReport `json:"holdout"`
}

type stepReport struct {
	Iteration  int               `json:"iteration"`
	Candidates []candidateReport `json:"candidates"`
	Accepted   bool              `json:"accepted"`
	Remaining  []string          `json:"remaining"`
}

type candidateReport struct {
	Removed string  `json:"removed"`
	MSE     float64 `json:"mse"`
}

type holdoutReport struct {
	TrainR2      *float64           `json:"train_r2"`
	TestR2       *float64           `json:"test_r2"`
	TrainMSE     float64            `json:"train_mse"`
	TestMSE      float64            `json:"test_mse"`
	NTrain       int                `json:"n_train"`
	NTest        int                `json:"n_test"`
	Coefficients map[string]float64 `json:"coefficients,omitempty"`
	Intercept    float64            `json:"intercept"`
}

func newSelectReport(s *selection) selectReport {
	r := s.Result
	rep := selectReport{
		Target:     s.Target,
		NSplits:    s.Folds,
		Seed:       s.Seed,
		Features:   r.Features,
		Removed:    r.Removed,
		Baseline:   r.Baseline,
		Score:      r.Score,
		Iterations: r.Iterations,
	}
	if rep.Removed == nil {
		rep.Removed = []string{}
	}
	for _, step := range r.History {
		sr := stepReport{Iteration: step.Iteration, Accepted: step.Accepted, Remaining: step.Remaining}
		for _, c := range step.Candidates {
			sr.Candidates = append(sr.Candidates, candidateReport{Removed: c.Removed, MSE: c.Score})
		}
		rep.History = append(rep.History, sr)
	}
	h := s.Holdout
	rep.Holdout = holdoutReport{
		TrainR2:      finite(h.TrainR2),
		TestR2:       finite(h.TestR2),
		TrainMSE:     h.TrainMSE,
		TestMSE:      h.TestMSE,
		NTrain:       h.NTrain,
		NTest:        h.NTest,
		Coefficients: h.Coefficients,
		Intercept:    h.Intercept,
	}
	return rep
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func writeJSON(w io.Writer, s *selection) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newSelectReport(s))
}

func writeSelectText(w io.Writer, s *selection) error {
	r := s.Result
	fmt.Fprintf(w, "Target:    %s\n", s.Target)
	fmt.Fprintf(w, "CV:        %d folds, seed %d\n", s.Folds, s.Seed)
	fmt.Fprintf(w, "Baseline:  %s\n", formatFloat(r.Baseline))
	fmt.Fprintf(w, "Selected:  %s\n", strings.Join(r.Features, ", "))
	fmt.Fprintf(w, "CV MSE:    %s after %d round(s)\n\n", formatFloat(r.Score), r.Iterations)

	rounds := tablewriter.NewWriter(w)
	rounds.SetHeader([]string{"Round", "Removed", "CV MSE", "Accepted"})
	for _, step := range r.History {
		for i, c := range step.Candidates {
			mark := ""
			if i == step.Best && step.Accepted {
				mark = "yes"
			}
			rounds.Append([]string{fmt.Sprint(step.Iteration), c.Removed, formatFloat(c.Score), mark})
		}
	}
	rounds.Render()
	fmt.Fprintln(w)

	h := s.Holdout
	holdout := tablewriter.NewWriter(w)
	holdout.SetHeader([]string{"Split", "Rows", "R2", "MSE"})
	holdout.Append([]string{"train", fmt.Sprint(h.NTrain), formatFloat(h.TrainR2), formatFloat(h.TrainMSE)})
	holdout.Append([]string{"test", fmt.Sprint(h.NTest), formatFloat(h.TestR2), formatFloat(h.TestMSE)})
	holdout.Render()

	if len(h.Coefficients) > 0 {
		fmt.Fprintln(w)
		coef := tablewriter.NewWriter(w)
		coef.SetHeader([]string{"Term", "Coefficient"})
		coef.Append([]string{"(intercept)", formatFloat(h.Intercept)})
		names := make([]string, 0, len(h.Coefficients))
		for name := range h.Coefficients {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			coef.Append([]string{name, formatFloat(h.Coefficients[name])})
		}
		coef.Render()
	}
	return nil
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "undefined"
	}
	return fmt.Sprintf("%.6g", v)
}

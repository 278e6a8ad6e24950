package dataset

import (
	"strings"

	"github.com/YuminosukeSato/covidrank/core/table"
)

// stateNames maps USPS codes to canonical upper-case names.
var stateNames = map[string]string{
	"AL": "ALABAMA", "AK": "ALASKA", "AZ": "ARIZONA", "AR": "ARKANSAS",
	"CA": "CALIFORNIA", "CO": "COLORADO", "CT": "CONNECTICUT", "DE": "DELAWARE",
	"DC": "DISTRICT OF COLUMBIA", "FL": "FLORIDA", "GA": "GEORGIA", "HI": "HAWAII",
	"ID": "IDAHO", "IL": "ILLINOIS", "IN": "INDIANA", "IA": "IOWA",
	"KS": "KANSAS", "KY": "KENTUCKY", "LA": "LOUISIANA", "ME": "MAINE",
	"MD": "MARYLAND", "MA": "MASSACHUSETTS", "MI": "MICHIGAN", "MN": "MINNESOTA",
	"MS": "MISSISSIPPI", "MO": "MISSOURI", "MT": "MONTANA", "NE": "NEBRASKA",
	"NV": "NEVADA", "NH": "NEW HAMPSHIRE", "NJ": "NEW JERSEY", "NM": "NEW MEXICO",
	"NY": "NEW YORK", "NC": "NORTH CAROLINA", "ND": "NORTH DAKOTA", "OH": "OHIO",
	"OK": "OKLAHOMA", "OR": "OREGON", "PA": "PENNSYLVANIA", "RI": "RHODE ISLAND",
	"SC": "SOUTH CAROLINA", "SD": "SOUTH DAKOTA", "TN": "TENNESSEE", "TX": "TEXAS",
	"UT": "UTAH", "VT": "VERMONT", "VA": "VIRGINIA", "WA": "WASHINGTON",
	"WV": "WEST VIRGINIA", "WI": "WISCONSIN", "WY": "WYOMING",
	"AS": "AMERICAN SAMOA", "GU": "GUAM", "MP": "NORTHERN MARIANA ISLANDS",
	"PR": "PUERTO RICO", "VI": "VIRGIN ISLANDS",
}

var knownStates = func() map[string]bool {
	m := make(map[string]bool, len(stateNames))
	for _, name := range stateNames {
		m[name] = true
	}
	return m
}()

// NormalizeState maps a USPS code or a full state name in any case to the
// upper-case full name. Inner whitespace is collapsed. The bool reports
// whether the result is a known state or territory; unknown input is
// still upper-cased.
func NormalizeState(s string) (string, bool) {
	upper := strings.ToUpper(strings.Join(strings.Fields(s), " "))
	if name, ok := stateNames[upper]; ok {
		return name, true
	}
	return upper, knownStates[upper]
}

// NormalizeStateColumn rewrites a categorical column with NormalizeState.
func NormalizeStateColumn(tbl *table.Table, column string) (*table.Table, error) {
	labels, err := categoricalLabels(tbl, "NormalizeStateColumn", column)
	if err != nil {
		return nil, err
	}
	for i, l := range labels {
		labels[i], _ = NormalizeState(l)
	}
	return tbl.With(table.NewCategorical(column, labels))
}

func categoricalLabels(tbl *table.Table, op, column string) ([]string, error) {
	c, err := tbl.Column(column)
	if err != nil {
		return nil, err
	}
	if c.Kind != table.Categorical {
		return nil, typeMismatch(op, c)
	}
	return c.Strings(), nil
}

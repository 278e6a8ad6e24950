// Package preprocessing turns raw table columns into model-ready predictors.
package preprocessing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/YuminosukeSato/covidrank/core/model"
	"github.com/YuminosukeSato/covidrank/core/table"
	"github.com/YuminosukeSato/covidrank/pkg/errors"
)

// OneHotEncoder はカテゴリ列を 0/1 のダミー列に展開する。
// カテゴリごとに "<列名><Sep><カテゴリ>" という名前の列を1本作り、元の列は削除する。
type OneHotEncoder struct {
	model.BaseEstimator

	// Columns は展開するカテゴリ列
	Columns []string

	// DropFirst は各列の先頭カテゴリを落とすかどうか (デフォルト: false)。
	// 切片付きモデルでダミー変数の共線性を避けたい場合に使う。
	DropFirst bool

	// Sep は列名とカテゴリの区切り (デフォルト: "_")
	Sep string

	// categories は列ごとの学習済みカテゴリ（昇順）
	categories map[string][]string
}

var _ model.TableTransformer = (*OneHotEncoder)(nil)

// NewOneHotEncoder は新しいOneHotEncoderを作成する
//
// 使用例:
//
//	enc := preprocessing.NewOneHotEncoder("state")
//	expanded, err := enc.FitTransform(tbl)
func NewOneHotEncoder(columns ...string) *OneHotEncoder {
	return &OneHotEncoder{
		Columns: columns,
		Sep:     "_",
	}
}

// Fit は各列の取りうるカテゴリを学習する
func (e *OneHotEncoder) Fit(t *table.Table) error {
	if t == nil || t.Rows() == 0 {
		return errors.NewModelError("OneHotEncoder.Fit", "empty data", errors.ErrEmptyData)
	}
	if len(e.Columns) == 0 {
		return errors.NewValueError("OneHotEncoder.Fit", "no columns to encode")
	}

	categories := make(map[string][]string, len(e.Columns))
	for _, name := range e.Columns {
		col, err := t.Column(name)
		if err != nil {
			return err
		}
		if col.Kind != table.Categorical {
			return errors.NewTypeMismatchError("OneHotEncoder.Fit", name,
				table.Categorical.String(), col.Kind.String())
		}

		seen := make(map[string]bool)
		var cats []string
		for _, v := range col.Strings() {
			if !seen[v] {
				seen[v] = true
				cats = append(cats, v)
			}
		}
		sort.Strings(cats)
		categories[name] = cats
	}

	e.categories = categories
	e.SetFitted(len(e.Columns))
	return nil
}

// Transform は学習済みカテゴリでダミー列を作る。
// 学習時に無かったカテゴリは ValidationError になる。
func (e *OneHotEncoder) Transform(t *table.Table) (*table.Table, error) {
	if err := e.CheckFitted("OneHotEncoder", "Transform", len(e.Columns)); err != nil {
		return nil, err
	}

	var dummies []table.Column
	for _, name := range e.Columns {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cats := e.categories[name]
		index := make(map[string]int, len(cats))
		for i, c := range cats {
			index[c] = i
		}

		flags := make([][]bool, len(cats))
		for i := range flags {
			flags[i] = make([]bool, t.Rows())
		}
		for row, v := range col.Strings() {
			i, ok := index[v]
			if !ok {
				return nil, errors.NewValidationError(name, "unknown category", v)
			}
			flags[i][row] = true
		}

		start := 0
		if e.DropFirst {
			start = 1
		}
		for i := start; i < len(cats); i++ {
			dummies = append(dummies, table.NewIndicator(e.dummyName(name, cats[i]), flags[i]))
		}
	}

	encoded := make(map[string]bool, len(e.Columns))
	for _, name := range e.Columns {
		encoded[name] = true
	}
	var cols []table.Column
	for _, c := range t.Columns() {
		if !encoded[c.Name] {
			cols = append(cols, c)
		}
	}
	return table.New(append(cols, dummies...)...)
}

// FitTransform は学習と変換を同時に行う
func (e *OneHotEncoder) FitTransform(t *table.Table) (*table.Table, error) {
	if err := e.Fit(t); err != nil {
		return nil, err
	}
	return e.Transform(t)
}

// Categories は列の学習済みカテゴリを返す
func (e *OneHotEncoder) Categories(column string) []string {
	return append([]string(nil), e.categories[column]...)
}

// FeatureNames は Transform が追加するダミー列名を順に返す
func (e *OneHotEncoder) FeatureNames() []string {
	var names []string
	for _, name := range e.Columns {
		names = append(names, e.DummyNames(name)...)
	}
	return names
}

// DummyNames は1つの列から作られるダミー列名を返す
func (e *OneHotEncoder) DummyNames(column string) []string {
	cats := e.categories[column]
	if e.DropFirst && len(cats) > 0 {
		cats = cats[1:]
	}
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, e.dummyName(column, c))
	}
	return names
}

func (e *OneHotEncoder) dummyName(column, category string) string {
	return column + e.Sep + strings.ReplaceAll(category, " ", "_")
}

// String はエンコーダの文字列表現を返す
func (e *OneHotEncoder) String() string {
	if !e.IsFitted() {
		return fmt.Sprintf("OneHotEncoder(columns=%v, drop_first=%t)", e.Columns, e.DropFirst)
	}
	return fmt.Sprintf("OneHotEncoder(columns=%v, drop_first=%t, n_dummies=%d)",
		e.Columns, e.DropFirst, len(e.FeatureNames()))
}

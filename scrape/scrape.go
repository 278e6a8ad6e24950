// Package scrape fetches the state reopening ranks from the reopening
// guide web page.
package scrape

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/YuminosukeSato/covidrank/core/table"
	"github.com/YuminosukeSato/covidrank/dataset"
	"github.com/YuminosukeSato/covidrank/pkg/errors"
	"github.com/YuminosukeSato/covidrank/pkg/log"
)

const (
	RanksURL        = "https://www.multistate.us/issues/covid-19-state-reopening-guide"
	UserAgent       = "covidrank/1.0"
	Timeout         = 30 * time.Second
	DefaultPerBlock = 3
	RankColumn      = "Rank"
	StateColumn     = "State"
	ScoreColumn     = "Score"
)

// Scraper handles fetching and parsing the reopening rank table
type Scraper struct {
	client    *http.Client
	url       string
	userAgent string
	perBlock  int
	logger    log.Logger
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithURL sets the page to scrape.
func WithURL(url string) Option {
	return func(s *Scraper) { s.url = url }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *Scraper) { s.userAgent = ua }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) { s.client.Timeout = d }
}

// WithColumnsPerBlock sets how many columns one side-by-side block spans.
func WithColumnsPerBlock(n int) Option {
	return func(s *Scraper) { s.perBlock = n }
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client:    &http.Client{Timeout: Timeout},
		url:       RanksURL,
		userAgent: UserAgent,
		perBlock:  DefaultPerBlock,
		logger:    log.GetLoggerWithName("scrape"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchRanks downloads the page and parses its rank table.
func (s *Scraper) FetchRanks(ctx context.Context) (*table.Table, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching page")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("unexpected status code: %d", resp.StatusCode)
	}

	tbl, err := ParseRanks(resp.Body, s.perBlock)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Ranks scraped",
		log.OperationKey, log.OperationScrape,
		log.SourceKey, s.url,
		log.SamplesKey, tbl.Rows(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return tbl, nil
}

// ParseGrid returns the text of every th/td cell of the first <table>,
// one slice per row.
func ParseGrid(r io.Reader) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing HTML")
	}
	tbl := doc.Find("table").First()
	if tbl.Length() == 0 {
		return nil, errors.New("no table found")
	}

	var grid [][]string
	tbl.Find("tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		grid = append(grid, cells)
	})
	return grid, nil
}

// StackBlocks treats the first row as the header and stacks side-by-side
// blocks of perBlock columns vertically: every row's first block, then
// every row's second block, and so on. Blank block rows are skipped.
func StackBlocks(grid [][]string, perBlock int) (header []string, rows [][]string, err error) {
	if perBlock <= 0 {
		return nil, nil, errors.NewValidationError("columns_per_block", "must be positive", perBlock)
	}
	if len(grid) == 0 || len(grid[0]) < perBlock {
		return nil, nil, errors.NewModelError("StackBlocks", "table has no header block", errors.ErrEmptyData)
	}
	header = grid[0][:perBlock]

	width := 0
	for _, row := range grid {
		width = max(width, len(row))
	}
	blocks := (width + perBlock - 1) / perBlock

	for b := 0; b < blocks; b++ {
		for _, row := range grid[1:] {
			cells := make([]string, perBlock)
			blank := true
			for j := range cells {
				if k := b*perBlock + j; k < len(row) {
					cells[j] = row[k]
				}
				blank = blank && cells[j] == ""
			}
			if !blank {
				rows = append(rows, cells)
			}
		}
	}
	return header, rows, nil
}

// ParseRanks parses the first table into Rank, State and Score columns.
// Header cells are matched case-insensitively.
func ParseRanks(r io.Reader, perBlock int) (*table.Table, error) {
	grid, err := ParseGrid(r)
	if err != nil {
		return nil, err
	}
	header, rows, err := StackBlocks(grid, perBlock)
	if err != nil {
		return nil, err
	}

	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToLower(h)] = i
	}
	idx := make(map[string]int, 3)
	for _, name := range []string{RankColumn, StateColumn, ScoreColumn} {
		i, ok := pos[strings.ToLower(name)]
		if !ok {
			return nil, errors.NewValidationError("header", "missing column", name)
		}
		idx[name] = i
	}

	ranks := make([]float64, len(rows))
	states := make([]string, len(rows))
	scores := make([]float64, len(rows))
	for i, row := range rows {
		rank, err := dataset.ParseRank(row[idx[RankColumn]])
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i+1)
		}
		score, err := parseScore(row[idx[ScoreColumn]])
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i+1)
		}
		ranks[i] = float64(rank)
		states[i] = row[idx[StateColumn]]
		scores[i] = score
	}

	return table.New(
		table.NewNumeric(RankColumn, ranks),
		table.NewCategorical(StateColumn, states),
		table.NewNumeric(ScoreColumn, scores),
	)
}

func parseScore(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
	if err != nil {
		return 0, errors.NewValueError("parseScore", "invalid score "+strconv.Quote(s))
	}
	return v, nil
}

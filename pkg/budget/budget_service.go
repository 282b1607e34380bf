package budget

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/budgetbook/budgetbook/internal/config"
	log "github.com/sirupsen/logrus"
)

// SaveMonthInput is the full payload of a monthly budget upsert.
type SaveMonthInput struct {
	Month         string
	IncomePlanned float64
	IncomeActual  *float64
	Expenses      []ExpenseInput
	// Notes overwrites the stored notes only when non-nil.
	Notes *string
	// Merge controls whether incoming expenses are merged by category
	// (true) or replace the stored list wholesale (false).
	Merge bool
}

type SaveConfirmation struct {
	Status string `json:"status"`
	Month  string `json:"month"`
}

type MonthBudget struct {
	Month string `json:"month"`
	Rollup
	Notes string `json:"notes"`
}

type YearOverview struct {
	Year   int            `json:"year"`
	Months []YearMonthRow `json:"months"`
}

// YearMonthRow carries the top-line figures of one calendar month. Months
// without a saved record get a zero planned side and absent actuals.
type YearMonthRow struct {
	Month          string   `json:"month"`
	IncomePlanned  float64  `json:"incomePlanned"`
	IncomeActual   *float64 `json:"incomeActual"`
	ExpensePlanned float64  `json:"expensePlanned"`
	ExpenseActual  *float64 `json:"expenseActual"`
	NetPlanned     float64  `json:"netPlanned"`
	NetActual      *float64 `json:"netActual"`
}

type Series struct {
	From   string        `json:"from"`
	To     string        `json:"to"`
	Points []SeriesPoint `json:"series"`
}

// SeriesPoint is one month of the savings series. CumulativeActual only
// advances on months whose actual net is known; other months repeat the
// previous cumulative value.
type SeriesPoint struct {
	Month            string   `json:"month"`
	NetPlanned       *float64 `json:"netPlanned"`
	NetActual        *float64 `json:"netActual"`
	CumulativeActual float64  `json:"cumulativeActual"`
}

type BudgetService interface {
	SaveMonth(ctx context.Context, input SaveMonthInput) (SaveConfirmation, error)
	GetMonth(ctx context.Context, month string) (MonthBudget, error)
	YearOverview(ctx context.Context, year int) (YearOverview, error)
	Series(ctx context.Context, fromMonth, toMonth string) (Series, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type BudgetServiceImpl struct {
	repo          BudgetRepo
	allowNegative bool
}

func NewBudgetServiceImpl(repo BudgetRepo, cfg config.Budget) *BudgetServiceImpl {
	return &BudgetServiceImpl{repo: repo, allowNegative: cfg.AllowNegative}
}

// SaveMonth upserts the budget of one month. Income figures are always
// overwritten; notes only when supplied; expenses are merged by category
// unless input.Merge is false. All validation happens before the document
// is touched, so a validation failure never mutates the store.
func (s *BudgetServiceImpl) SaveMonth(ctx context.Context, input SaveMonthInput) (SaveConfirmation, error) {
	month, err := NormalizeMonth(input.Month)
	if err != nil {
		return SaveConfirmation{}, err
	}
	ip, err := cleanAmount(&input.IncomePlanned, s.allowNegative)
	if err != nil {
		return SaveConfirmation{}, fmt.Errorf("invalid planned income: %w", err)
	}
	incomePlanned := *ip
	incomeActual, err := cleanAmount(input.IncomeActual, s.allowNegative)
	if err != nil {
		return SaveConfirmation{}, fmt.Errorf("invalid actual income: %w", err)
	}

	incoming := make([]ExpenseInput, 0, len(input.Expenses))
	normalized := make([]ExpenseItem, 0, len(input.Expenses))
	for _, in := range input.Expenses {
		category := strings.TrimSpace(in.Category)
		if category == "" {
			return SaveConfirmation{}, ErrMissingCategory
		}
		planned, err := cleanAmount(in.Planned, s.allowNegative)
		if err != nil {
			return SaveConfirmation{}, fmt.Errorf("invalid planned amount for %q: %w", category, err)
		}
		actual, err := cleanAmount(in.Actual, s.allowNegative)
		if err != nil {
			return SaveConfirmation{}, fmt.Errorf("invalid actual amount for %q: %w", category, err)
		}
		item := ExpenseItem{Category: category, Actual: actual}
		if planned != nil {
			item.Planned = *planned
		}
		normalized = append(normalized, item)
		incoming = append(incoming, ExpenseInput{Category: category, Planned: planned, Actual: actual})
	}

	err = s.repo.Update(ctx, func(doc *Document) error {
		existing, ok := doc.Months[month]
		if !ok {
			notes := ""
			if input.Notes != nil {
				notes = *input.Notes
			}
			doc.Months[month] = MonthRecord{
				Income:   Income{Planned: incomePlanned, Actual: incomeActual},
				Expenses: normalized,
				Notes:    notes,
			}
			return nil
		}

		existing.Income.Planned = incomePlanned
		existing.Income.Actual = incomeActual
		if input.Notes != nil {
			existing.Notes = *input.Notes
		}
		if input.Merge {
			merged, err := mergeExpenses(existing.Expenses, incoming, s.allowNegative)
			if err != nil {
				return err
			}
			existing.Expenses = merged
		} else {
			existing.Expenses = normalized
		}
		doc.Months[month] = existing
		return nil
	})
	if err != nil {
		return SaveConfirmation{}, err
	}

	log.Debugf("saved budget for %s (%d expense items)", month, len(normalized))
	return SaveConfirmation{Status: "ok", Month: month}, nil
}

// GetMonth returns the rollup, notes, and category rows of one month. The
// category rows are re-sorted here so the ordering contract holds even for
// records written with Merge disabled.
func (s *BudgetServiceImpl) GetMonth(ctx context.Context, month string) (MonthBudget, error) {
	m, err := NormalizeMonth(month)
	if err != nil {
		return MonthBudget{}, err
	}

	var result MonthBudget
	err = s.repo.View(ctx, func(doc *Document) error {
		rec, ok := doc.Months[m]
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotFound, m)
		}
		roll := computeRollup(rec)
		sortCategoryRollups(roll.Categories)
		result = MonthBudget{Month: m, Rollup: roll, Notes: rec.Notes}
		return nil
	})
	if err != nil {
		return MonthBudget{}, err
	}
	return result, nil
}

// YearOverview returns one row per calendar month of the given year. Months
// without a record are represented, not errored.
func (s *BudgetServiceImpl) YearOverview(ctx context.Context, year int) (YearOverview, error) {
	overview := YearOverview{Year: year, Months: make([]YearMonthRow, 0, 12)}
	err := s.repo.View(ctx, func(doc *Document) error {
		for _, m := range monthsOfYear(year) {
			rec, ok := doc.Months[m]
			if !ok {
				overview.Months = append(overview.Months, YearMonthRow{Month: m})
				continue
			}
			roll := computeRollup(rec)
			overview.Months = append(overview.Months, YearMonthRow{
				Month:          m,
				IncomePlanned:  roll.Income.Planned,
				IncomeActual:   roll.Income.Actual,
				ExpensePlanned: roll.ExpensesTotal.Planned,
				ExpenseActual:  roll.ExpensesTotal.Actual,
				NetPlanned:     roll.NetSavings.Planned,
				NetActual:      roll.NetSavings.Actual,
			})
		}
		return nil
	})
	if err != nil {
		return YearOverview{}, err
	}
	return overview, nil
}

// Series returns the monthly net savings between two months inclusive,
// with a running total of actual net savings.
func (s *BudgetServiceImpl) Series(ctx context.Context, fromMonth, toMonth string) (Series, error) {
	months, err := monthRange(fromMonth, toMonth)
	if err != nil {
		return Series{}, err
	}

	series := Series{
		From:   months[0],
		To:     months[len(months)-1],
		Points: make([]SeriesPoint, 0, len(months)),
	}
	cumulative := 0.0
	err = s.repo.View(ctx, func(doc *Document) error {
		for _, m := range months {
			point := SeriesPoint{Month: m}
			if rec, ok := doc.Months[m]; ok {
				roll := computeRollup(rec)
				point.NetPlanned = f64(roll.NetSavings.Planned)
				point.NetActual = roll.NetSavings.Actual
				if roll.NetSavings.Actual != nil {
					cumulative += *roll.NetSavings.Actual
				}
			}
			point.CumulativeActual = round2(cumulative)
			series.Points = append(series.Points, point)
		}
		return nil
	})
	if err != nil {
		return Series{}, err
	}
	return series, nil
}

// ListCategories returns every distinct expense category across all months,
// sorted case-insensitively. Deduplication is by exact trimmed string, so
// "Food" and "food" both appear if both were ever written.
func (s *BudgetServiceImpl) ListCategories(ctx context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	err := s.repo.View(ctx, func(doc *Document) error {
		for _, rec := range doc.Months {
			for _, e := range rec.Expenses {
				name := strings.TrimSpace(e.Category)
				if name == "" {
					continue
				}
				seen[name] = struct{}{}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(seen))
	for name := range seen {
		categories = append(categories, name)
	}
	sort.SliceStable(categories, func(i, j int) bool {
		a, b := strings.ToLower(categories[i]), strings.ToLower(categories[j])
		if a == b {
			return categories[i] < categories[j]
		}
		return a < b
	})
	return categories, nil
}

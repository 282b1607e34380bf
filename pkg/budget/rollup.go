package budget

import (
	"sort"
	"strings"
)

type AmountPair struct {
	Planned float64  `json:"planned"`
	Actual  *float64 `json:"actual"`
}

type CategoryRollup struct {
	Category string   `json:"category"`
	Planned  float64  `json:"planned"`
	Actual   *float64 `json:"actual"`
	Variance *float64 `json:"variance"`
}

type NetSavings struct {
	Planned  float64  `json:"planned"`
	Actual   *float64 `json:"actual"`
	Variance *float64 `json:"variance"`
}

type SavingsRate struct {
	Planned *float64 `json:"planned"`
	Actual  *float64 `json:"actual"`
}

// Rollup is the derived per-month aggregate. It is computed on read and
// never persisted. Monetary figures are rounded to 2 decimals, rates to 4.
type Rollup struct {
	Income        AmountPair       `json:"income"`
	ExpensesTotal AmountPair       `json:"expensesTotal"`
	Categories    []CategoryRollup `json:"categories"`
	NetSavings    NetSavings       `json:"netSavings"`
	SavingsRate   SavingsRate      `json:"savingsRate"`
}

// computeRollup derives the aggregate figures for a single month record.
// An expense line without an actual counts as 0 toward the actual total but
// keeps its per-category actual and variance absent. Savings rates are
// absent rather than infinite when the corresponding income is not positive.
func computeRollup(rec MonthRecord) Rollup {
	var expPlanned, expActual float64
	categories := make([]CategoryRollup, 0, len(rec.Expenses))
	for _, e := range rec.Expenses {
		expPlanned += e.Planned
		row := CategoryRollup{Category: e.Category, Planned: e.Planned}
		if e.Actual != nil {
			expActual += *e.Actual
			row.Actual = f64(*e.Actual)
			row.Variance = f64(round2(*e.Actual - e.Planned))
		}
		categories = append(categories, row)
	}

	incomePlanned := rec.Income.Planned
	netPlanned := incomePlanned - expPlanned

	roll := Rollup{
		Income:        AmountPair{Planned: round2(incomePlanned)},
		ExpensesTotal: AmountPair{Planned: round2(expPlanned), Actual: f64(round2(expActual))},
		Categories:    categories,
		NetSavings:    NetSavings{Planned: round2(netPlanned)},
	}

	if rec.Income.Actual != nil {
		incomeActual := *rec.Income.Actual
		netActual := incomeActual - expActual
		roll.Income.Actual = f64(round2(incomeActual))
		roll.NetSavings.Actual = f64(round2(netActual))
		roll.NetSavings.Variance = f64(round2(netActual - netPlanned))
		if incomeActual > 0 {
			roll.SavingsRate.Actual = f64(round4(netActual / incomeActual))
		}
	}
	if incomePlanned > 0 {
		roll.SavingsRate.Planned = f64(round4(netPlanned / incomePlanned))
	}

	return roll
}

func sortCategoryRollups(rows []CategoryRollup) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := strings.ToLower(rows[i].Category), strings.ToLower(rows[j].Category)
		if a == b {
			return rows[i].Category < rows[j].Category
		}
		return a < b
	})
}

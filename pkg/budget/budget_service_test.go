package budget

import (
	"context"
	"testing"

	"github.com/budgetbook/budgetbook/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var budgetRepoStub = NewStubBudgetRepo()

var service BudgetService

func setup(t *testing.T) func() {
	service = NewBudgetServiceImpl(budgetRepoStub, config.Budget{})
	return func() {
		t.Log("Teardown after test")
		budgetRepoStub.Cleanup()
	}
}

func TestBudgetServiceImpl_SaveMonth(t *testing.T) {
	t.Run("should save and read back a month budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		confirmation, err := service.SaveMonth(ctx, SaveMonthInput{
			Month:         "2026-02",
			IncomePlanned: 5000,
			IncomeActual:  f64(4800),
			Expenses: []ExpenseInput{
				{Category: "Rent", Planned: f64(2000), Actual: f64(2100)},
				{Category: "Food", Planned: f64(500.556)},
			},
			Merge: true,
		})
		require.NoError(t, err)
		assert.Equal(t, SaveConfirmation{Status: "ok", Month: "2026-02"}, confirmation)

		// when
		result, err := service.GetMonth(ctx, "2026-02")

		// then
		require.NoError(t, err)
		assert.Equal(t, "2026-02", result.Month)
		assert.Equal(t, 5000.0, result.Income.Planned)
		require.Len(t, result.Categories, 2)
		assert.Equal(t, "Food", result.Categories[0].Category)
		assert.Equal(t, 500.56, result.Categories[0].Planned)
		assert.Equal(t, "Rent", result.Categories[1].Category)
	})

	t.Run("should fail on an invalid month key", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.SaveMonth(ctx, SaveMonthInput{Month: "2026-2", Merge: true})

		// then
		assert.ErrorIs(t, err, ErrInvalidMonthFormat)
	})

	t.Run("should fail on an expense item without category", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.SaveMonth(ctx, SaveMonthInput{
			Month:    "2026-02",
			Expenses: []ExpenseInput{{Category: " ", Planned: f64(10)}},
			Merge:    true,
		})

		// then
		assert.ErrorIs(t, err, ErrMissingCategory)
	})

	t.Run("should not clear a recorded actual when saving without one", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.SaveMonth(ctx, SaveMonthInput{
			Month:         "2026-02",
			IncomePlanned: 1000,
			Expenses:      []ExpenseInput{{Category: "Food", Planned: f64(100), Actual: f64(50)}},
			Merge:         true,
		})
		require.NoError(t, err)

		// when
		_, err = service.SaveMonth(ctx, SaveMonthInput{
			Month:         "2026-02",
			IncomePlanned: 1000,
			Expenses:      []ExpenseInput{{Category: "Food", Planned: f64(120)}},
			Merge:         true,
		})
		require.NoError(t, err)

		// then
		result, err := service.GetMonth(ctx, "2026-02")
		require.NoError(t, err)
		require.Len(t, result.Categories, 1)
		assert.Equal(t, 120.0, result.Categories[0].Planned)
		require.NotNil(t, result.Categories[0].Actual)
		assert.Equal(t, 50.0, *result.Categories[0].Actual)
	})

	t.Run("should replace expenses wholesale when merge is disabled", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.SaveMonth(ctx, SaveMonthInput{
			Month:         "2026-02",
			IncomePlanned: 1000,
			Expenses: []ExpenseInput{
				{Category: "Rent", Planned: f64(600)},
				{Category: "Food", Planned: f64(200)},
			},
			Merge: true,
		})
		require.NoError(t, err)

		// when
		_, err = service.SaveMonth(ctx, SaveMonthInput{
			Month:         "2026-02",
			IncomePlanned: 1000,
			Expenses:      []ExpenseInput{{Category: "Travel", Planned: f64(300)}},
			Merge:         false,
		})
		require.NoError(t, err)

		// then
		result, err := service.GetMonth(ctx, "2026-02")
		require.NoError(t, err)
		require.Len(t, result.Categories, 1)
		assert.Equal(t, "Travel", result.Categories[0].Category)
	})

	t.Run("should keep prior notes when notes are absent", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		notes := "tight month"
		_, err := service.SaveMonth(ctx, SaveMonthInput{Month: "2026-02", Notes: &notes, Merge: true})
		require.NoError(t, err)

		// when
		_, err = service.SaveMonth(ctx, SaveMonthInput{Month: "2026-02", Merge: true})
		require.NoError(t, err)

		// then
		result, err := service.GetMonth(ctx, "2026-02")
		require.NoError(t, err)
		assert.Equal(t, "tight month", result.Notes)
	})

	t.Run("should keep negative amounts when configured to", func(t *testing.T) {
		signedService := NewBudgetServiceImpl(budgetRepoStub, config.Budget{AllowNegative: true})
		defer budgetRepoStub.Cleanup()

		// when
		_, err := signedService.SaveMonth(ctx, SaveMonthInput{
			Month:         "2026-02",
			IncomePlanned: 1000,
			Expenses:      []ExpenseInput{{Category: "Refunds", Planned: f64(0), Actual: f64(-50)}},
			Merge:         true,
		})
		require.NoError(t, err)

		// then
		result, err := signedService.GetMonth(ctx, "2026-02")
		require.NoError(t, err)
		require.NotNil(t, result.Categories[0].Actual)
		assert.Equal(t, -50.0, *result.Categories[0].Actual)
	})
}

func TestBudgetServiceImpl_GetMonth(t *testing.T) {
	t.Run("should fail when the month has no record", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.GetMonth(ctx, "2026-05")

		// then
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should fail on an invalid month key", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.GetMonth(ctx, "05-2026")

		// then
		assert.ErrorIs(t, err, ErrInvalidMonthFormat)
	})
}

func TestBudgetServiceImpl_YearOverview(t *testing.T) {
	t.Run("should return twelve rows with zero rows for missing months", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.SaveMonth(ctx, SaveMonthInput{
			Month:         "2026-03",
			IncomePlanned: 3000,
			IncomeActual:  f64(2900),
			Expenses:      []ExpenseInput{{Category: "Rent", Planned: f64(1000), Actual: f64(1000)}},
			Merge:         true,
		})
		require.NoError(t, err)

		// when
		overview, err := service.YearOverview(ctx, 2026)

		// then
		require.NoError(t, err)
		assert.Equal(t, 2026, overview.Year)
		require.Len(t, overview.Months, 12)

		march := overview.Months[2]
		assert.Equal(t, "2026-03", march.Month)
		assert.Equal(t, 3000.0, march.IncomePlanned)
		require.NotNil(t, march.NetActual)
		assert.Equal(t, 1900.0, *march.NetActual)

		january := overview.Months[0]
		assert.Equal(t, "2026-01", january.Month)
		assert.Equal(t, 0.0, january.IncomePlanned)
		assert.Nil(t, january.IncomeActual)
		assert.Equal(t, 0.0, january.NetPlanned)
		assert.Nil(t, january.NetActual)
	})
}

func TestBudgetServiceImpl_Series(t *testing.T) {
	t.Run("should carry the cumulative actual over months without actuals", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given only January has a known actual net of 200
		_, err := service.SaveMonth(ctx, SaveMonthInput{
			Month:         "2026-01",
			IncomePlanned: 400,
			IncomeActual:  f64(400),
			Expenses:      []ExpenseInput{{Category: "Groceries", Planned: f64(150), Actual: f64(200)}},
			Merge:         true,
		})
		require.NoError(t, err)

		// when
		series, err := service.Series(ctx, "2026-01", "2026-03")

		// then
		require.NoError(t, err)
		assert.Equal(t, "2026-01", series.From)
		assert.Equal(t, "2026-03", series.To)
		require.Len(t, series.Points, 3)

		require.NotNil(t, series.Points[0].NetActual)
		assert.Equal(t, 200.0, *series.Points[0].NetActual)
		assert.Equal(t, 200.0, series.Points[0].CumulativeActual)
		assert.Equal(t, 200.0, series.Points[1].CumulativeActual)
		assert.Equal(t, 200.0, series.Points[2].CumulativeActual)

		assert.Nil(t, series.Points[1].NetPlanned)
		assert.Nil(t, series.Points[1].NetActual)
	})

	t.Run("should fail when the range is reversed", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Series(ctx, "2026-03", "2026-01")

		// then
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestBudgetServiceImpl_ListCategories(t *testing.T) {
	t.Run("should deduplicate exact names and sort case-insensitively", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.SaveMonth(ctx, SaveMonthInput{
			Month:         "2026-01",
			IncomePlanned: 1000,
			Expenses: []ExpenseInput{
				{Category: "rent", Planned: f64(600)},
				{Category: "Food", Planned: f64(200)},
			},
			Merge: true,
		})
		require.NoError(t, err)
		_, err = service.SaveMonth(ctx, SaveMonthInput{
			Month:         "2026-02",
			IncomePlanned: 1000,
			Expenses: []ExpenseInput{
				{Category: "Food", Planned: f64(250)},
				{Category: "Car", Planned: f64(100)},
			},
			Merge: true,
		})
		require.NoError(t, err)

		// when
		categories, err := service.ListCategories(ctx)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"Car", "Food", "rent"}, categories)
	})

	t.Run("should never contain empty strings", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given a record written around the save validation
		err := budgetRepoStub.Update(ctx, func(doc *Document) error {
			doc.Months["2026-01"] = MonthRecord{
				Expenses: []ExpenseItem{
					{Category: "   ", Planned: 10},
					{Category: "Food", Planned: 20},
				},
			}
			return nil
		})
		require.NoError(t, err)

		// when
		categories, err := service.ListCategories(ctx)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"Food"}, categories)
	})
}

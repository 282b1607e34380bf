package budget

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/budgetbook/budgetbook/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ExpenseItemDTO struct {
	Category string   `json:"category"`
	Planned  *float64 `json:"planned,omitempty"`
	Actual   *float64 `json:"actual,omitempty"`
}

type SaveMonthRequest struct {
	IncomePlanned float64          `json:"incomePlanned"`
	IncomeActual  *float64         `json:"incomeActual"`
	Expenses      []ExpenseItemDTO `json:"expenses"`
	Notes         *string          `json:"notes"`
	Merge         *bool            `json:"merge"`
}

type BudgetHandler struct {
	budgetService BudgetService
}

func NewBudgetHandler(budgetService BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService}
}

func (handler *BudgetHandler) SaveMonth(w http.ResponseWriter, r *http.Request) {
	log.Debug("Saving month budget")
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	var request SaveMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	input := SaveMonthInput{
		Month:         vars["month"],
		IncomePlanned: request.IncomePlanned,
		IncomeActual:  request.IncomeActual,
		Notes:         request.Notes,
		Merge:         request.Merge == nil || *request.Merge,
	}
	for _, item := range request.Expenses {
		input.Expenses = append(input.Expenses, ExpenseInput{
			Category: item.Category,
			Planned:  item.Planned,
			Actual:   item.Actual,
		})
	}

	confirmation, err := handler.budgetService.SaveMonth(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(confirmation); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BudgetHandler) GetMonth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	monthBudget, err := handler.budgetService.GetMonth(r.Context(), vars["month"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(monthBudget); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BudgetHandler) GetYearOverview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	yearString := r.URL.Query().Get("year")
	year, err := strconv.Atoi(yearString)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid year",
			Details: "'year' must be an integer",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	overview, err := handler.budgetService.YearOverview(r.Context(), year)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(overview); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BudgetHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	series, err := handler.budgetService.Series(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(series); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BudgetHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	categories, err := handler.budgetService.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(categories); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "Budget not found", err)
	case errors.Is(err, ErrInvalidMonthFormat),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrAmountTooLarge),
		errors.Is(err, ErrMissingCategory),
		errors.Is(err, ErrInvalidRange):
		writeError(w, http.StatusBadRequest, "Invalid request", err)
	default:
		log.Errorf("budget operation failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	w.WriteHeader(status)
	encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
		Error:   message,
		Details: err.Error(),
	})
	if encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}

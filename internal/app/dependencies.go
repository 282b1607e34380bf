package app

import (
	"github.com/budgetbook/budgetbook/internal/config"
	"github.com/budgetbook/budgetbook/pkg/budget"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	BudgetRepo    budget.BudgetRepo
	BudgetService *budget.BudgetServiceImpl
	BudgetHandler *budget.BudgetHandler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	repo, err := budget.NewFileBudgetRepo(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	deps.BudgetRepo = repo
	deps.BudgetService = budget.NewBudgetServiceImpl(deps.BudgetRepo, cfg.Budget)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetService)

	return deps, nil
}

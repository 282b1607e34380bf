package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Monthly budget
	r.HandleFunc("/api/budget/{month}", deps.BudgetHandler.SaveMonth).Methods("PUT")
	r.HandleFunc("/api/budget/{month}", deps.BudgetHandler.GetMonth).Methods("GET")

	// Reporting
	r.HandleFunc("/api/budget-overview", deps.BudgetHandler.GetYearOverview).Queries("year", "{year}").Methods("GET")
	r.HandleFunc("/api/budget-series", deps.BudgetHandler.GetSeries).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/categories", deps.BudgetHandler.ListCategories).Methods("GET")
}

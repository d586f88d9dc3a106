package handlers

import (
	"hisab/backend/middleware"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all API routes on r. Everything except /health goes
// through auth and then locale detection.
func (h *Handler) RegisterRoutes(r *mux.Router, auth mux.MiddlewareFunc) {
	// Public routes (no auth required)
	r.HandleFunc("/health", h.Health).Methods("GET")

	// Create a subrouter for authenticated routes
	protectedRouter := r.PathPrefix("").Subrouter()
	protectedRouter.Use(auth, middleware.Locale)

	// Protected category routes; selection must precede {id}
	protectedRouter.HandleFunc("/categories", h.GetCategories).Methods("GET")
	protectedRouter.HandleFunc("/categories", h.AddCategory).Methods("POST")
	protectedRouter.HandleFunc("/categories/selection", h.GetCategorySelection).Methods("GET")
	protectedRouter.HandleFunc("/categories/{id}", h.GetCategory).Methods("GET")
	protectedRouter.HandleFunc("/categories/{id}", h.UpdateCategory).Methods("PUT")
	protectedRouter.HandleFunc("/categories/{id}", h.DeleteCategory).Methods("DELETE")

	// Protected transaction routes
	protectedRouter.HandleFunc("/transactions", h.GetTransactions).Methods("GET")
	protectedRouter.HandleFunc("/transactions", h.AddTransaction).Methods("POST")
	protectedRouter.HandleFunc("/transactions/{id}", h.GetTransaction).Methods("GET")
	protectedRouter.HandleFunc("/transactions/{id}", h.UpdateTransaction).Methods("PUT")
	protectedRouter.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods("DELETE")

	// Protected dashboard routes
	protectedRouter.HandleFunc("/dashboard/monthly-stats", h.GetMonthlyStats).Methods("GET")
	protectedRouter.HandleFunc("/dashboard/monthly-stats/chart", h.GetMonthlyStatsChart).Methods("GET")
}

package handlers

import (
	"context"
	"net/http"

	"hisab/backend/database"
	"hisab/backend/locale"
	"hisab/backend/middleware"
	"hisab/backend/services"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

// Handler serves the category, transaction and dashboard endpoints.
type Handler struct {
	db           pinger
	limits       services.PageLimits
	categories   *services.CategoryService
	transactions *services.TransactionService
	stats        *services.StatsService
}

// NewHandler wires the services for db.
func NewHandler(db *database.DB, limits services.PageLimits) *Handler {
	return &Handler{
		db:           db,
		limits:       limits,
		categories:   services.NewCategoryService(db, limits),
		transactions: services.NewTransactionService(db, limits),
		stats:        services.NewStatsService(db),
	}
}

// getUserIDFromContext extracts the user ID from the request context
func getUserIDFromContext(r *http.Request) string {
	return middleware.GetUserIDFromContext(r)
}

func getLocale(r *http.Request) locale.Locale {
	return middleware.GetLocaleFromContext(r)
}

// pageRequest reads page and limit from the query string.
func (h *Handler) pageRequest(r *http.Request) services.PageRequest {
	q := r.URL.Query()
	return h.limits.ParsePageRequest(q.Get("page"), q.Get("limit"))
}

package services

import (
	"strconv"
	"strings"

	"hisab/backend/models"
)

// PageLimits bounds the page size a caller may request.
type PageLimits struct {
	Default int
	Max     int
}

// DefaultPageLimits matches the configuration defaults.
var DefaultPageLimits = PageLimits{Default: 30, Max: 100}

// PageRequest is a normalized page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset is the number of rows to skip.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePageRequest reads raw page and limit values. Missing, non-numeric or
// non-positive values fall back to page 1 and the default limit; the limit is
// capped at the maximum.
func (l PageLimits) ParsePageRequest(page, limit string) PageRequest {
	return l.Normalize(atoiOr(page, 1), atoiOr(limit, l.Default))
}

// Normalize applies the same fallbacks as ParsePageRequest to numeric input.
func (l PageLimits) Normalize(page, limit int) PageRequest {
	def := l.Default
	if def < 1 {
		def = DefaultPageLimits.Default
	}
	ceiling := l.Max
	if ceiling < def {
		ceiling = def
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = def
	}
	if limit > ceiling {
		limit = ceiling
	}
	return PageRequest{Page: page, Limit: limit}
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

func totalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

func newPage[T any](items []T, total int, req PageRequest) *models.Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := totalPages(total, req.Limit)
	return &models.Page[T]{
		Data:       items,
		Next:       req.Page < pages,
		Total:      total,
		TotalPages: pages,
		Page:       req.Page,
		Limit:      req.Limit,
	}
}

// ListFilter narrows a listing beyond the owner.
type ListFilter struct {
	Type models.TransactionType
}

// where builds the conjunctive filter for a listing, always scoped to userID.
func (f ListFilter) where(alias, userID string) (string, []any) {
	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}
	clause := prefix + "user_id = ?"
	args := []any{userID}
	if f.Type != "" {
		clause += " AND " + prefix + "type = ?"
		args = append(args, string(f.Type))
	}
	return clause, args
}

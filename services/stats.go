package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hisab/backend/database"
	"hisab/backend/models"

	"github.com/shopspring/decimal"
)

// StatsService aggregates a user's transactions by calendar month.
type StatsService struct {
	db *database.DB
}

func NewStatsService(db *database.DB) *StatsService {
	return &StatsService{db: db}
}

// ParseYear reads a four-digit-or-less year, falling back to now's year when
// the value is missing, malformed or outside 1..9999.
func ParseYear(s string, now time.Time) int {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || year < 1 || year > 9999 {
		return now.UTC().Year()
	}
	return year
}

// MonthlyStats returns twelve zero-filled monthly buckets for year plus the
// year's totals. Dates are compared in UTC over [Jan 1 00:00:00, Dec 31 23:59:59].
func (s *StatsService) MonthlyStats(ctx context.Context, userID string, year int) (*models.MonthlyStats, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if year < 1 || year > 9999 {
		year = time.Now().UTC().Year()
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

	month := s.db.Dialect.MonthOf("date")
	q := s.db.Rebind(`
		SELECT ` + month + ` AS month, type, COALESCE(SUM(amount), 0) AS total
		FROM transactions
		WHERE user_id = ? AND date >= ? AND date <= ?
		GROUP BY ` + month + `, type`)

	rows, err := s.db.QueryContext(ctx, q, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query monthly stats: %w", err)
	}
	defer rows.Close()

	buckets := make([]models.MonthlyBucket, 12)
	for i := range buckets {
		m := time.Month(i + 1)
		buckets[i] = models.MonthlyBucket{Month: int(m), MonthName: m.String()[:3]}
	}

	for rows.Next() {
		var (
			m     int
			typ   string
			total *float64
		)
		if err := rows.Scan(&m, &typ, &total); err != nil {
			return nil, fmt.Errorf("scan monthly stats: %w", err)
		}
		if m < 1 || m > 12 {
			continue
		}
		sum := 0.0
		if total != nil {
			sum = *total
		}
		switch models.TransactionType(typ) {
		case models.TypeIncome:
			buckets[m-1].Income = sum
		case models.TypeExpense:
			buckets[m-1].Expense = sum
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read monthly stats: %w", err)
	}

	return &models.MonthlyStats{
		Year:    year,
		Data:    buckets,
		Summary: summarize(buckets),
	}, nil
}

func summarize(buckets []models.MonthlyBucket) models.StatsSummary {
	income, expense := decimal.Zero, decimal.Zero
	for _, b := range buckets {
		income = income.Add(decimal.NewFromFloat(b.Income))
		expense = expense.Add(decimal.NewFromFloat(b.Expense))
	}
	return models.StatsSummary{
		TotalIncome:  income.InexactFloat64(),
		TotalExpense: expense.InexactFloat64(),
		Balance:      income.Sub(expense).InexactFloat64(),
	}
}

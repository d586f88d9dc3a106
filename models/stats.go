package models

// MonthlyBucket holds one calendar month's income and expense sums.
type MonthlyBucket struct {
	Month     int     `json:"month"`
	MonthName string  `json:"monthName"`
	Income    float64 `json:"income"`
	Expense   float64 `json:"expense"`
}

type StatsSummary struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	Balance      float64 `json:"balance"`
}

// MonthlyStats is a year of buckets, January first, plus the year's totals.
type MonthlyStats struct {
	Year    int             `json:"year"`
	Data    []MonthlyBucket `json:"data"`
	Summary StatsSummary    `json:"summary"`
}

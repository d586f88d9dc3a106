package migrations

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"hisab/backend/database"

	"github.com/google/uuid"
)

const (
	seedCategoryCount    = 10
	seedTransactionCount = 100
)

type seedCategory struct {
	en, ar, ckb string
	kind        string
}

var seedCategories = []seedCategory{
	{"Salary", "راتب", "مووچە", "INCOME"},
	{"Freelance", "عمل حر", "کاری ئازاد", "INCOME"},
	{"Gifts", "هدايا", "دیاری", "INCOME"},
	{"Investments", "استثمارات", "وەبەرهێنان", "INCOME"},
	{"Groceries", "بقالة", "خواردەمەنی", "EXPENSE"},
	{"Rent", "إيجار", "کرێ", "EXPENSE"},
	{"Transport", "مواصلات", "گواستنەوە", "EXPENSE"},
	{"Utilities", "خدمات", "خزمەتگوزاری", "EXPENSE"},
	{"Health", "صحة", "تەندروستی", "EXPENSE"},
	{"Entertainment", "ترفيه", "کات بەسەربردن", "EXPENSE"},
}

var seedDescriptions = [][3]string{
	{"Monthly payment", "دفعة شهرية", "پارەدانی مانگانە"},
	{"Weekly shopping", "تسوق أسبوعي", "بازاڕکردنی هەفتانە"},
	{"One-off purchase", "شراء لمرة واحدة", "کڕینی یەکجاری"},
	{"Project invoice", "فاتورة مشروع", "پسوڵەی پرۆژە"},
	{"Family expense", "مصروف عائلي", "خەرجی خێزان"},
}

// SeedDemoData replaces userID's categories and transactions with a demo set
// of 10 categories and 100 transactions spread over the past year.
func SeedDemoData(ctx context.Context, db *database.DB, userID string, rng *rand.Rand) error {
	if userID == "" {
		return fmt.Errorf("seed: user id is required")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin: %w", err)
	}
	defer tx.Rollback()

	// transactions go with their categories through the cascade
	if _, err := tx.ExecContext(ctx, db.Rebind(`DELETE FROM transactions WHERE user_id = ?`), userID); err != nil {
		return fmt.Errorf("seed: reset transactions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, db.Rebind(`DELETE FROM categories WHERE user_id = ?`), userID); err != nil {
		return fmt.Errorf("seed: reset categories: %w", err)
	}

	now := time.Now().UTC()
	ids := make([]string, 0, seedCategoryCount)
	kinds := make([]string, 0, seedCategoryCount)

	insertCategory := db.Rebind(`
		INSERT INTO categories (id, en_name, ar_name, ckb_name, type, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	for i, c := range seedCategories[:seedCategoryCount] {
		id := uuid.NewString()
		created := now.Add(-time.Duration(seedCategoryCount-i) * time.Minute)
		if _, err := tx.ExecContext(ctx, insertCategory, id, c.en, c.ar, c.ckb, c.kind, userID, created, created); err != nil {
			return fmt.Errorf("seed: insert category %s: %w", c.en, err)
		}
		ids = append(ids, id)
		kinds = append(kinds, c.kind)
	}

	insertTransaction := db.Rebind(`
		INSERT INTO transactions (id, amount, type, en_desc, ar_desc, ckb_desc, category_id, user_id, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for i := 0; i < seedTransactionCount; i++ {
		c := rng.Intn(len(ids))
		d := seedDescriptions[rng.Intn(len(seedDescriptions))]
		amount := math.Round((10+rng.Float64()*4990)*100) / 100
		date := today.AddDate(0, 0, -rng.Intn(365))
		created := now.Add(-time.Duration(seedTransactionCount-i) * time.Second)

		if _, err := tx.ExecContext(ctx, insertTransaction,
			uuid.NewString(), amount, kinds[c], d[0], d[1], d[2], ids[c], userID, date, created, created,
		); err != nil {
			return fmt.Errorf("seed: insert transaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	return nil
}

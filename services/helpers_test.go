package services

import (
	"context"
	"path/filepath"
	"testing"

	"hisab/backend/database"
	"hisab/backend/locale"
	"hisab/backend/migrations"
	"hisab/backend/models"
)

const (
	userA = "user-a"
	userB = "user-b"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "hisab.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.RunMigrations(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return db
}

func mustCreateCategory(t *testing.T, svc *CategoryService, userID, name string, typ models.TransactionType) *models.Category {
	t.Helper()
	c, err := svc.Create(context.Background(), userID, models.CategoryInput{
		EnName:  name,
		ArName:  name + " (ar)",
		CkbName: name + " (ckb)",
		Type:    typ,
	}, locale.En)
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return c
}

func mustCreateTransaction(t *testing.T, svc *TransactionService, userID string, c *models.Category, amount float64, date string) *models.Transaction {
	t.Helper()
	d, err := models.ParseDate(date)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	tx, err := svc.Create(context.Background(), userID, models.TransactionInput{
		Amount:     models.FlexibleFloat(amount),
		Type:       c.Type,
		EnDesc:     "desc",
		ArDesc:     "وصف",
		CkbDesc:    "وەسف",
		CategoryID: c.ID,
		Date:       &d,
	}, locale.En)
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	return tx
}

func ptr[T any](v T) *T { return &v }

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"hisab/backend/locale"
	"hisab/backend/models"
)

func TestTransactionService_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryService(db, DefaultPageLimits)
	svc := NewTransactionService(db, DefaultPageLimits)
	ctx := context.Background()

	c := mustCreateCategory(t, categories, userA, "Food", models.TypeExpense)

	created, err := svc.Create(ctx, userA, models.TransactionInput{
		Amount:     12.5,
		Type:       models.TypeExpense,
		EnDesc:     "Lunch",
		ArDesc:     "غداء",
		CkbDesc:    "",
		CategoryID: c.ID,
	}, locale.Ckb)
	if !IsValidation(err) {
		t.Fatalf("expected validation error for empty ckbDesc, got %v", err)
	}

	created, err = svc.Create(ctx, userA, models.TransactionInput{
		Amount:     12.5,
		Type:       models.TypeExpense,
		EnDesc:     "Lunch",
		ArDesc:     "غداء",
		CkbDesc:    "نانی نیوەڕۆ",
		CategoryID: c.ID,
	}, locale.Ar)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.ID == "" || created.UserID != userA || created.Amount != 12.5 {
		t.Errorf("unexpected transaction: %+v", created)
	}
	if created.Desc != "غداء" {
		t.Errorf("expected Arabic desc, got %q", created.Desc)
	}
	if created.Category == nil || created.Category.Name != "Food (ar)" {
		t.Errorf("expected embedded localized category, got %+v", created.Category)
	}

	today := models.Today()
	if !created.Date.Equal(today.Time) {
		t.Errorf("expected default date %v, got %v", today.Time, created.Date)
	}

	got, err := svc.Get(ctx, userA, created.ID, locale.En)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Desc != "Lunch" || got.CategoryID != c.ID {
		t.Errorf("unexpected fetched transaction: %+v", got)
	}
}

func TestTransactionService_CreateCategoryRules(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryService(db, DefaultPageLimits)
	svc := NewTransactionService(db, DefaultPageLimits)
	ctx := context.Background()

	income := mustCreateCategory(t, categories, userA, "salary", models.TypeIncome)
	foreign := mustCreateCategory(t, categories, userB, "theirs", models.TypeExpense)

	base := models.TransactionInput{
		Amount:  10,
		Type:    models.TypeExpense,
		EnDesc:  "a",
		ArDesc:  "b",
		CkbDesc: "c",
	}

	tests := []struct {
		name       string
		categoryID string
		field      string
	}{
		{"type differs from category", income.ID, "type"},
		{"category of another user", foreign.ID, "categoryId"},
		{"unknown category", "does-not-exist", "categoryId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			in.CategoryID = tt.categoryID
			_, err := svc.Create(ctx, userA, in, locale.En)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}

	page, err := svc.List(ctx, userA, ListFilter{}, PageRequest{}, locale.En)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 0 {
		t.Errorf("expected no transactions to be stored, got %d", page.Total)
	}
}

func TestTransactionService_CreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db, DefaultPageLimits)

	tests := []struct {
		name  string
		in    models.TransactionInput
		field string
	}{
		{"zero amount", models.TransactionInput{Amount: 0, Type: models.TypeIncome, EnDesc: "a", ArDesc: "b", CkbDesc: "c", CategoryID: "x"}, "amount"},
		{"negative amount", models.TransactionInput{Amount: -3, Type: models.TypeIncome, EnDesc: "a", ArDesc: "b", CkbDesc: "c", CategoryID: "x"}, "amount"},
		{"bad type", models.TransactionInput{Amount: 3, Type: "OTHER", EnDesc: "a", ArDesc: "b", CkbDesc: "c", CategoryID: "x"}, "type"},
		{"missing category", models.TransactionInput{Amount: 3, Type: models.TypeIncome, EnDesc: "a", ArDesc: "b", CkbDesc: "c"}, "categoryId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), userA, tt.in, locale.En)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}
}

func TestTransactionService_List(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryService(db, DefaultPageLimits)
	svc := NewTransactionService(db, DefaultPageLimits)
	ctx := context.Background()

	salary := mustCreateCategory(t, categories, userA, "salary", models.TypeIncome)
	rent := mustCreateCategory(t, categories, userA, "rent", models.TypeExpense)
	other := mustCreateCategory(t, categories, userB, "other", models.TypeIncome)

	var incomes []*models.Transaction
	for i := 0; i < 5; i++ {
		incomes = append(incomes, mustCreateTransaction(t, svc, userA, salary, float64(100+i), "2024-01-10"))
	}
	mustCreateTransaction(t, svc, userA, rent, 50, "2024-01-11")
	mustCreateTransaction(t, svc, userB, other, 999, "2024-01-12")

	page, err := svc.List(ctx, userA, ListFilter{Type: models.TypeIncome}, PageRequest{Page: 2, Limit: 2}, locale.Ar)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 5 || page.TotalPages != 3 || !page.Next || len(page.Data) != 2 {
		t.Fatalf("unexpected page: total=%d pages=%d next=%v len=%d", page.Total, page.TotalPages, page.Next, len(page.Data))
	}
	if page.Data[0].ID != incomes[2].ID || page.Data[1].ID != incomes[1].ID {
		t.Errorf("unexpected order on page 2")
	}
	for _, tx := range page.Data {
		if tx.UserID != userA {
			t.Errorf("listing leaked transaction of %s", tx.UserID)
		}
		if tx.Category == nil || tx.Category.Name != "salary (ar)" {
			t.Errorf("expected localized nested category, got %+v", tx.Category)
		}
		if tx.Desc != "وصف" {
			t.Errorf("expected Arabic desc, got %q", tx.Desc)
		}
	}

	all, err := svc.List(ctx, userA, ListFilter{}, PageRequest{}, locale.En)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if all.Total != 6 || all.Next || all.TotalPages != 1 {
		t.Errorf("unexpected unfiltered page: %+v", all)
	}

	if _, err := svc.List(ctx, userA, ListFilter{Type: "expense"}, PageRequest{}, locale.En); !IsValidation(err) {
		t.Errorf("expected validation error for lowercase type, got %v", err)
	}
}

func TestTransactionService_Update(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryService(db, DefaultPageLimits)
	svc := NewTransactionService(db, DefaultPageLimits)
	ctx := context.Background()

	food := mustCreateCategory(t, categories, userA, "food", models.TypeExpense)
	rent := mustCreateCategory(t, categories, userA, "rent", models.TypeExpense)
	salary := mustCreateCategory(t, categories, userA, "salary", models.TypeIncome)
	foreign := mustCreateCategory(t, categories, userB, "theirs", models.TypeExpense)
	tx := mustCreateTransaction(t, svc, userA, food, 20, "2024-03-01")

	amount := models.FlexibleFloat(42)
	date, _ := models.ParseDate("2024-04-02")
	got, err := svc.Update(ctx, userA, tx.ID, models.TransactionPatch{Amount: &amount, Date: &date}, locale.En)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Amount != 42 || !got.Date.Equal(time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)) || got.EnDesc != "desc" {
		t.Errorf("unexpected partial update: %+v", got)
	}

	got, err = svc.Update(ctx, userA, tx.ID, models.TransactionPatch{CategoryID: ptr(rent.ID)}, locale.En)
	if err != nil {
		t.Fatalf("move to same-type category: %v", err)
	}
	if got.CategoryID != rent.ID || got.Category == nil || got.Category.EnName != "rent" {
		t.Errorf("category not moved: %+v", got)
	}

	tests := []struct {
		name  string
		patch models.TransactionPatch
		field string
	}{
		{"type no longer matches category", models.TransactionPatch{Type: ptr(models.TypeIncome)}, "type"},
		{"category of other type", models.TransactionPatch{CategoryID: ptr(salary.ID)}, "type"},
		{"category of another user", models.TransactionPatch{CategoryID: ptr(foreign.ID)}, "categoryId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(ctx, userA, tx.ID, tt.patch, locale.En)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}

	// Type and category changed together stay consistent.
	got, err = svc.Update(ctx, userA, tx.ID, models.TransactionPatch{Type: ptr(models.TypeIncome), CategoryID: ptr(salary.ID)}, locale.En)
	if err != nil {
		t.Fatalf("switch type and category: %v", err)
	}
	if got.Type != models.TypeIncome || got.CategoryID != salary.ID {
		t.Errorf("unexpected result: %+v", got)
	}

	if _, err := svc.Update(ctx, userB, tx.ID, models.TransactionPatch{Amount: &amount}, locale.En); !errors.Is(err, ErrNotFound) {
		t.Errorf("update by other user: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Update(ctx, userB, tx.ID, models.TransactionPatch{CategoryID: ptr(foreign.ID)}, locale.En); !errors.Is(err, ErrNotFound) {
		t.Errorf("guarded update by other user: expected ErrNotFound, got %v", err)
	}
}

func TestTransactionService_Delete(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryService(db, DefaultPageLimits)
	svc := NewTransactionService(db, DefaultPageLimits)
	ctx := context.Background()

	c := mustCreateCategory(t, categories, userA, "food", models.TypeExpense)
	tx := mustCreateTransaction(t, svc, userA, c, 20, "2024-03-01")

	if err := svc.Delete(ctx, userB, tx.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete by other user: expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, userA, tx.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, userA, tx.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}

	// The category is free again.
	if err := categories.Delete(ctx, userA, c.ID, false); err != nil {
		t.Errorf("expected category delete to succeed, got %v", err)
	}
}

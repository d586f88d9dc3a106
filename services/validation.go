package services

import (
	"math"
	"strings"
	"unicode/utf8"

	"hisab/backend/models"
)

func validateType(field string, t models.TransactionType) error {
	if !t.Valid() {
		return newValidationError(field, "must be %s or %s", models.TypeIncome, models.TypeExpense)
	}
	return nil
}

// validateFilterType accepts an empty type (no filter) or a valid one.
func validateFilterType(t models.TransactionType) error {
	if t == "" {
		return nil
	}
	return validateType("type", t)
}

func validateText(field, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return newValidationError(field, "is required")
	}
	if utf8.RuneCountInString(value) > max {
		return newValidationError(field, "must be at most %d characters", max)
	}
	return nil
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return newValidationError("amount", "must be greater than 0")
	}
	return nil
}

func validateCategoryInput(in models.CategoryInput) error {
	if err := validateText("enName", in.EnName, models.MaxNameLength); err != nil {
		return err
	}
	if err := validateText("arName", in.ArName, models.MaxNameLength); err != nil {
		return err
	}
	if err := validateText("ckbName", in.CkbName, models.MaxNameLength); err != nil {
		return err
	}
	return validateType("type", in.Type)
}

func validateCategoryPatch(p models.CategoryPatch) error {
	names := []struct {
		field string
		value *string
	}{
		{"enName", p.EnName},
		{"arName", p.ArName},
		{"ckbName", p.CkbName},
	}
	for _, n := range names {
		if n.value == nil {
			continue
		}
		if err := validateText(n.field, *n.value, models.MaxNameLength); err != nil {
			return err
		}
	}
	if p.Type != nil {
		return validateType("type", *p.Type)
	}
	return nil
}

func validateTransactionInput(in models.TransactionInput) error {
	if err := validateAmount(float64(in.Amount)); err != nil {
		return err
	}
	if err := validateType("type", in.Type); err != nil {
		return err
	}
	for _, d := range []struct{ field, value string }{
		{"enDesc", in.EnDesc},
		{"arDesc", in.ArDesc},
		{"ckbDesc", in.CkbDesc},
	} {
		if err := validateText(d.field, d.value, models.MaxDescLength); err != nil {
			return err
		}
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		return newValidationError("categoryId", "is required")
	}
	return nil
}

func validateTransactionPatch(p models.TransactionPatch) error {
	if p.Amount != nil {
		if err := validateAmount(float64(*p.Amount)); err != nil {
			return err
		}
	}
	if p.Type != nil {
		if err := validateType("type", *p.Type); err != nil {
			return err
		}
	}
	for _, d := range []struct {
		field string
		value *string
	}{
		{"enDesc", p.EnDesc},
		{"arDesc", p.ArDesc},
		{"ckbDesc", p.CkbDesc},
	} {
		if d.value == nil {
			continue
		}
		if err := validateText(d.field, *d.value, models.MaxDescLength); err != nil {
			return err
		}
	}
	if p.CategoryID != nil && strings.TrimSpace(*p.CategoryID) == "" {
		return newValidationError("categoryId", "cannot be empty")
	}
	return nil
}

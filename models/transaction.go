package models

import (
	"time"

	"hisab/backend/locale"
)

type Transaction struct {
	ID         string          `json:"id"`
	Amount     float64         `json:"amount"`
	Type       TransactionType `json:"type"`
	EnDesc     string          `json:"enDesc"`
	ArDesc     string          `json:"arDesc"`
	CkbDesc    string          `json:"ckbDesc"`
	CategoryID string          `json:"categoryId"`
	UserID     string          `json:"userId"`
	Date       time.Time       `json:"date"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`

	// Desc is the description in the request's locale.
	Desc     string    `json:"desc"`
	Category *Category `json:"category"`
}

// Field implements locale.Record.
func (t *Transaction) Field(key string) string {
	if t == nil {
		return ""
	}
	switch key {
	case "enDesc":
		return t.EnDesc
	case "arDesc":
		return t.ArDesc
	case "ckbDesc":
		return t.CkbDesc
	}
	return ""
}

// Localize sets Desc, and the nested category's Name, for loc.
func (t *Transaction) Localize(loc locale.Locale) {
	if t == nil {
		return
	}
	t.Desc = locale.Resolve(t, loc, FieldDesc)
	t.Category.Localize(loc)
}

// TransactionInput is the body of a create request.
type TransactionInput struct {
	Amount     FlexibleFloat   `json:"amount"`
	Type       TransactionType `json:"type"`
	EnDesc     string          `json:"enDesc"`
	ArDesc     string          `json:"arDesc"`
	CkbDesc    string          `json:"ckbDesc"`
	CategoryID string          `json:"categoryId"`
	Date       *Date           `json:"date"`
}

// TransactionPatch carries the fields of a partial update; nil means unchanged.
type TransactionPatch struct {
	Amount     *FlexibleFloat   `json:"amount"`
	Type       *TransactionType `json:"type"`
	EnDesc     *string          `json:"enDesc"`
	ArDesc     *string          `json:"arDesc"`
	CkbDesc    *string          `json:"ckbDesc"`
	CategoryID *string          `json:"categoryId"`
	Date       *Date            `json:"date"`
}

// Empty reports whether the patch changes nothing.
func (p TransactionPatch) Empty() bool {
	return p.Amount == nil && p.Type == nil && p.EnDesc == nil && p.ArDesc == nil &&
		p.CkbDesc == nil && p.CategoryID == nil && p.Date == nil
}

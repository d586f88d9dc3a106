package models

import (
	"time"

	"hisab/backend/locale"
)

type Category struct {
	ID        string          `json:"id"`
	EnName    string          `json:"enName"`
	ArName    string          `json:"arName"`
	CkbName   string          `json:"ckbName"`
	Type      TransactionType `json:"type"`
	UserID    string          `json:"userId"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`

	// Name is the display name in the request's locale.
	Name string `json:"name"`
}

// Field implements locale.Record.
func (c *Category) Field(key string) string {
	if c == nil {
		return ""
	}
	switch key {
	case "enName":
		return c.EnName
	case "arName":
		return c.ArName
	case "ckbName":
		return c.CkbName
	}
	return ""
}

// Localize sets Name for loc.
func (c *Category) Localize(loc locale.Locale) {
	if c == nil {
		return
	}
	c.Name = locale.Resolve(c, loc, FieldName)
}

// CategoryOption is a lightweight category used to populate pickers.
type CategoryOption struct {
	ID      string `json:"id"`
	EnName  string `json:"enName"`
	ArName  string `json:"arName"`
	CkbName string `json:"ckbName"`
	Name    string `json:"name"`
}

// CategoryInput is the body of a create request.
type CategoryInput struct {
	EnName  string          `json:"enName"`
	ArName  string          `json:"arName"`
	CkbName string          `json:"ckbName"`
	Type    TransactionType `json:"type"`
}

// CategoryPatch carries the fields of a partial update; nil means unchanged.
type CategoryPatch struct {
	EnName  *string          `json:"enName"`
	ArName  *string          `json:"arName"`
	CkbName *string          `json:"ckbName"`
	Type    *TransactionType `json:"type"`
}

// Empty reports whether the patch changes nothing.
func (p CategoryPatch) Empty() bool {
	return p.EnName == nil && p.ArName == nil && p.CkbName == nil && p.Type == nil
}

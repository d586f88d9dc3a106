package models

// TransactionType classifies categories and transactions as money in or out.
type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Localized field bases, combined with a locale prefix ("en", "ar", "ckb").
const (
	FieldName = "Name"
	FieldDesc = "Desc"
)

// Field length limits
const (
	MaxNameLength = 100
	MaxDescLength = 255
)

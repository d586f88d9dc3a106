package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hisab/backend/database"
	"hisab/backend/locale"
	"hisab/backend/logging"
	"hisab/backend/models"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// transactionSelect joins each transaction to its category. The join is a
// LEFT JOIN so a transaction is still listed if its category cannot be read.
const transactionSelect = `
	SELECT t.id, t.amount, t.type, t.en_desc, t.ar_desc, t.ckb_desc, t.category_id, t.user_id,
		t.date, t.created_at, t.updated_at,
		c.id, c.en_name, c.ar_name, c.ckb_name, c.type, c.user_id, c.created_at, c.updated_at
	FROM transactions t
	LEFT JOIN categories c ON c.id = t.category_id AND c.user_id = t.user_id`

// TransactionService reads and writes a user's transactions. Every statement
// is scoped to the calling user, and a transaction's type always equals the
// type of the category it is filed under.
type TransactionService struct {
	db     *database.DB
	limits PageLimits
}

func NewTransactionService(db *database.DB, limits PageLimits) *TransactionService {
	return &TransactionService{db: db, limits: limits}
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var (
		t                           models.Transaction
		cid, en, ar, ckb, typ, user sql.NullString
		created, updated            sql.NullTime
	)
	err := row.Scan(
		&t.ID, &t.Amount, &t.Type, &t.EnDesc, &t.ArDesc, &t.CkbDesc, &t.CategoryID, &t.UserID,
		&t.Date, &t.CreatedAt, &t.UpdatedAt,
		&cid, &en, &ar, &ckb, &typ, &user, &created, &updated,
	)
	if err != nil {
		return nil, err
	}
	t.Date = t.Date.UTC()
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()

	if cid.Valid {
		t.Category = &models.Category{
			ID:        cid.String,
			EnName:    en.String,
			ArName:    ar.String,
			CkbName:   ckb.String,
			Type:      models.TransactionType(typ.String),
			UserID:    user.String,
			CreatedAt: created.Time.UTC(),
			UpdatedAt: updated.Time.UTC(),
		}
	}
	return &t, nil
}

// List returns one page of the user's transactions, newest first, each with
// its localized category.
func (s *TransactionService) List(ctx context.Context, userID string, filter ListFilter, req PageRequest, loc locale.Locale) (*models.Page[models.Transaction], error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if err := validateFilterType(filter.Type); err != nil {
		return nil, err
	}
	req = s.limits.Normalize(req.Page, req.Limit)

	var (
		total int
		items []models.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		where, args := filter.where("", userID)
		q := s.db.Rebind("SELECT COUNT(*) FROM transactions WHERE " + where)
		if err := s.db.QueryRowContext(gctx, q, args...).Scan(&total); err != nil {
			return fmt.Errorf("count transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		where, args := filter.where("t", userID)
		q := s.db.Rebind(transactionSelect + " WHERE " + where +
			" ORDER BY t.created_at DESC, t.id DESC LIMIT ? OFFSET ?")
		args = append(args, req.Limit, req.Offset())

		rows, err := s.db.QueryContext(gctx, q, args...)
		if err != nil {
			return fmt.Errorf("query transactions: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			t, err := scanTransaction(rows)
			if err != nil {
				return fmt.Errorf("scan transaction: %w", err)
			}
			t.Localize(loc)
			items = append(items, *t)
		}
		return rows.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return newPage(items, total, req), nil
}

// Get returns a single transaction owned by userID, with its category.
func (s *TransactionService) Get(ctx context.Context, userID, id string, loc locale.Locale) (*models.Transaction, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	q := s.db.Rebind(transactionSelect + " WHERE t.id = ? AND t.user_id = ?")
	t, err := scanTransaction(s.db.QueryRowContext(ctx, q, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	t.Localize(loc)
	return t, nil
}

// Create stores a new transaction. The insert only happens when the category
// belongs to userID and has the same type.
func (s *TransactionService) Create(ctx context.Context, userID string, in models.TransactionInput, loc locale.Locale) (*models.Transaction, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if err := validateTransactionInput(in); err != nil {
		return nil, err
	}

	date := models.Today()
	if in.Date != nil {
		date = *in.Date
	}
	id := uuid.NewString()
	now := timestamp()

	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO transactions (id, amount, type, en_desc, ar_desc, ckb_desc, category_id, user_id, date, created_at, updated_at)
		SELECT ?, ?, c.type, ?, ?, ?, c.id, c.user_id, ?, ?, ?
		FROM categories c
		WHERE c.id = ? AND c.user_id = ? AND c.type = ?
	`), id, float64(in.Amount), in.EnDesc, in.ArDesc, in.CkbDesc, date.Time, now, now,
		in.CategoryID, userID, string(in.Type))
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	if n == 0 {
		return nil, s.categoryMismatch(ctx, s.db, userID, in.CategoryID)
	}

	logging.FromContext(ctx).WithComponent(logging.ComponentTxn).InfoContext(ctx, "transaction created",
		logging.NewFields().WithOperation(logging.OpCreate).WithEntity("transaction", id).WithUser(userID).ToSlice()...)

	return s.Get(ctx, userID, id, loc)
}

// Update applies the supplied fields of p. When the category or type changes,
// the update is conditional on the resulting category belonging to userID and
// matching the resulting type.
func (s *TransactionService) Update(ctx context.Context, userID, id string, p models.TransactionPatch, loc locale.Locale) (*models.Transaction, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if err := validateTransactionPatch(p); err != nil {
		return nil, err
	}

	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if p.Amount != nil {
		set("amount", float64(*p.Amount))
	}
	if p.Type != nil {
		set("type", string(*p.Type))
	}
	if p.EnDesc != nil {
		set("en_desc", *p.EnDesc)
	}
	if p.ArDesc != nil {
		set("ar_desc", *p.ArDesc)
	}
	if p.CkbDesc != nil {
		set("ckb_desc", *p.CkbDesc)
	}
	if p.CategoryID != nil {
		set("category_id", *p.CategoryID)
	}
	if p.Date != nil {
		set("date", p.Date.Time)
	}
	set("updated_at", timestamp())

	q := "UPDATE transactions SET " + strings.Join(sets, ", ") + " WHERE id = ? AND user_id = ?"
	args = append(args, id, userID)

	guarded := p.CategoryID != nil || p.Type != nil
	if guarded {
		var categoryID, typ any
		if p.CategoryID != nil {
			categoryID = *p.CategoryID
		}
		if p.Type != nil {
			typ = string(*p.Type)
		}
		q += ` AND EXISTS (
			SELECT 1 FROM categories c
			WHERE c.id = COALESCE(?, transactions.category_id)
				AND c.user_id = ?
				AND c.type = COALESCE(?, transactions.type)
		)`
		args = append(args, categoryID, userID, typ)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction update: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, s.db.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}

	if n == 0 {
		if !guarded {
			return nil, ErrNotFound
		}
		var currentCategory string
		err := tx.QueryRowContext(ctx, s.db.Rebind("SELECT category_id FROM transactions WHERE id = ? AND user_id = ?"), id, userID).
			Scan(&currentCategory)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("check transaction: %w", err)
		}
		if p.CategoryID != nil {
			currentCategory = *p.CategoryID
		}
		return nil, s.categoryMismatch(ctx, tx, userID, currentCategory)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction update: %w", err)
	}

	logging.FromContext(ctx).WithComponent(logging.ComponentTxn).InfoContext(ctx, "transaction updated",
		logging.NewFields().WithOperation(logging.OpUpdate).WithEntity("transaction", id).WithUser(userID).ToSlice()...)

	return s.Get(ctx, userID, id, loc)
}

// Delete removes a transaction owned by userID.
func (s *TransactionService) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUnauthorized
	}

	res, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM transactions WHERE id = ? AND user_id = ?"), id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	logging.FromContext(ctx).WithComponent(logging.ComponentTxn).InfoContext(ctx, "transaction deleted",
		logging.NewFields().WithOperation(logging.OpDelete).WithEntity("transaction", id).WithUser(userID).ToSlice()...)
	return nil
}

// categoryMismatch explains why a conditional write on categoryID matched
// nothing: the category is missing (or someone else's), or its type differs.
func (s *TransactionService) categoryMismatch(ctx context.Context, q querier, userID, categoryID string) error {
	ok, err := exists(ctx, q, s.db.Rebind("SELECT 1 FROM categories WHERE id = ? AND user_id = ?"), categoryID, userID)
	if err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if !ok {
		return newValidationError("categoryId", "category not found")
	}
	return newValidationError("type", "must match the category type")
}

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

const categoryColumns = "id, en_name, ar_name, ckb_name, type, user_id, created_at, updated_at"

// CategoryService reads and writes a user's categories. Every statement is
// scoped to the calling user.
type CategoryService struct {
	db     *database.DB
	limits PageLimits
}

func NewCategoryService(db *database.DB, limits PageLimits) *CategoryService {
	return &CategoryService{db: db, limits: limits}
}

func scanCategory(row rowScanner) (*models.Category, error) {
	var c models.Category
	if err := row.Scan(&c.ID, &c.EnName, &c.ArName, &c.CkbName, &c.Type, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}

// List returns one page of the user's categories, newest first.
func (s *CategoryService) List(ctx context.Context, userID string, filter ListFilter, req PageRequest, loc locale.Locale) (*models.Page[models.Category], error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if err := validateFilterType(filter.Type); err != nil {
		return nil, err
	}
	req = s.limits.Normalize(req.Page, req.Limit)
	where, args := filter.where("", userID)

	var (
		total int
		items []models.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q := s.db.Rebind("SELECT COUNT(*) FROM categories WHERE " + where)
		if err := s.db.QueryRowContext(gctx, q, args...).Scan(&total); err != nil {
			return fmt.Errorf("count categories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		q := s.db.Rebind("SELECT " + categoryColumns + " FROM categories WHERE " + where +
			" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?")
		pageArgs := append(append([]any{}, args...), req.Limit, req.Offset())

		rows, err := s.db.QueryContext(gctx, q, pageArgs...)
		if err != nil {
			return fmt.Errorf("query categories: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			c, err := scanCategory(rows)
			if err != nil {
				return fmt.Errorf("scan category: %w", err)
			}
			c.Localize(loc)
			items = append(items, *c)
		}
		return rows.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return newPage(items, total, req), nil
}

// Get returns a single category owned by userID.
func (s *CategoryService) Get(ctx context.Context, userID, id string, loc locale.Locale) (*models.Category, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	q := s.db.Rebind("SELECT " + categoryColumns + " FROM categories WHERE id = ? AND user_id = ?")
	c, err := scanCategory(s.db.QueryRowContext(ctx, q, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	c.Localize(loc)
	return c, nil
}

// Create stores a new category for userID.
func (s *CategoryService) Create(ctx context.Context, userID string, in models.CategoryInput, loc locale.Locale) (*models.Category, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if err := validateCategoryInput(in); err != nil {
		return nil, err
	}

	now := timestamp()
	c := &models.Category{
		ID:        uuid.NewString(),
		EnName:    in.EnName,
		ArName:    in.ArName,
		CkbName:   in.CkbName,
		Type:      in.Type,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO categories (id, en_name, ar_name, ckb_name, type, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), c.ID, c.EnName, c.ArName, c.CkbName, string(c.Type), c.UserID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}

	logging.FromContext(ctx).WithComponent(logging.ComponentCategory).InfoContext(ctx, "category created",
		logging.NewFields().WithOperation(logging.OpCreate).WithEntity("category", c.ID).WithUser(userID).ToSlice()...)

	c.Localize(loc)
	return c, nil
}

// Update applies the supplied fields of p in one conditional statement. A
// type change is refused while transactions of the old type reference the
// category.
func (s *CategoryService) Update(ctx context.Context, userID, id string, p models.CategoryPatch, loc locale.Locale) (*models.Category, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if err := validateCategoryPatch(p); err != nil {
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
	if p.EnName != nil {
		set("en_name", *p.EnName)
	}
	if p.ArName != nil {
		set("ar_name", *p.ArName)
	}
	if p.CkbName != nil {
		set("ckb_name", *p.CkbName)
	}
	if p.Type != nil {
		set("type", string(*p.Type))
	}
	set("updated_at", timestamp())

	q := "UPDATE categories SET " + strings.Join(sets, ", ") + " WHERE id = ? AND user_id = ?"
	args = append(args, id, userID)
	if p.Type != nil {
		q += " AND NOT EXISTS (SELECT 1 FROM transactions t WHERE t.category_id = categories.id AND t.type <> ?)"
		args = append(args, string(*p.Type))
	}
	q += " RETURNING " + categoryColumns

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin category update: %w", err)
	}
	defer tx.Rollback()

	c, err := scanCategory(tx.QueryRowContext(ctx, s.db.Rebind(q), args...))
	if errors.Is(err, sql.ErrNoRows) {
		if p.Type == nil {
			return nil, ErrNotFound
		}
		owned, err := s.owned(ctx, tx, userID, id)
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, ErrNotFound
		}
		return nil, newValidationError("type", "cannot change while transactions of another type use this category")
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit category update: %w", err)
	}

	logging.FromContext(ctx).WithComponent(logging.ComponentCategory).InfoContext(ctx, "category updated",
		logging.NewFields().WithOperation(logging.OpUpdate).WithEntity("category", id).WithUser(userID).ToSlice()...)

	c.Localize(loc)
	return c, nil
}

// Delete removes a category. Unless cascade is set, a category that
// transactions still reference is left in place and ErrCategoryInUse is
// returned; with cascade its transactions are removed with it.
func (s *CategoryService) Delete(ctx context.Context, userID, id string, cascade bool) error {
	if userID == "" {
		return ErrUnauthorized
	}

	q := "DELETE FROM categories WHERE id = ? AND user_id = ?"
	if !cascade {
		q += " AND NOT EXISTS (SELECT 1 FROM transactions t WHERE t.category_id = categories.id)"
	}

	res, err := s.db.ExecContext(ctx, s.db.Rebind(q), id, userID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if n == 0 {
		if cascade {
			return ErrNotFound
		}
		owned, err := s.owned(ctx, s.db, userID, id)
		if err != nil {
			return err
		}
		if owned {
			return ErrCategoryInUse
		}
		return ErrNotFound
	}

	logging.FromContext(ctx).WithComponent(logging.ComponentCategory).InfoContext(ctx, "category deleted",
		logging.NewFields().WithOperation(logging.OpDelete).WithEntity("category", id).WithUser(userID).ToSlice()...)
	return nil
}

// Selection lists the user's categories of one type for pickers, newest first.
func (s *CategoryService) Selection(ctx context.Context, userID string, t models.TransactionType, loc locale.Locale) ([]models.CategoryOption, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if t == "" {
		return nil, newValidationError("type", "is required")
	}
	if err := validateType("type", t); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(`
		SELECT id, en_name, ar_name, ckb_name
		FROM categories
		WHERE user_id = ? AND type = ?
		ORDER BY created_at DESC, id DESC
	`), userID, string(t))
	if err != nil {
		return nil, fmt.Errorf("query category selection: %w", err)
	}
	defer rows.Close()

	options := []models.CategoryOption{}
	for rows.Next() {
		var o models.CategoryOption
		if err := rows.Scan(&o.ID, &o.EnName, &o.ArName, &o.CkbName); err != nil {
			return nil, fmt.Errorf("scan category selection: %w", err)
		}
		o.Name = locale.Resolve(locale.Map{
			"enName":  o.EnName,
			"arName":  o.ArName,
			"ckbName": o.CkbName,
		}, loc, models.FieldName)
		options = append(options, o)
	}
	return options, rows.Err()
}

func (s *CategoryService) owned(ctx context.Context, q querier, userID, id string) (bool, error) {
	ok, err := exists(ctx, q, s.db.Rebind("SELECT 1 FROM categories WHERE id = ? AND user_id = ?"), id, userID)
	if err != nil {
		return false, fmt.Errorf("check category: %w", err)
	}
	return ok, nil
}

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/screenbox/watchlist/internal/domain"
	"github.com/screenbox/watchlist/internal/repository"
	"github.com/screenbox/watchlist/pkg/database"
	apperrors "github.com/screenbox/watchlist/pkg/errors"
)

// ListRepository implements repository.ListRepository using PostgreSQL.
type ListRepository struct {
	db database.DBTX
}

// NewListRepository creates a new PostgreSQL-backed list repository.
func NewListRepository(db database.DBTX) *ListRepository {
	return &ListRepository{db: db}
}

// isUniqueViolation reports whether the error is a PostgreSQL unique
// constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}

// Insert adds an entry to the user's list and populates the item's
// CreatedAt and UpdatedAt from the database. A concurrent duplicate insert
// surfaces as a conflict.
func (r *ListRepository) Insert(ctx context.Context, q database.Querier, item *domain.ListItem) error {
	query := `
		INSERT INTO list_items (user_id, item_id, item_type)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	err := q.QueryRow(ctx, query, item.UserID, item.ItemID, string(item.ItemType)).
		Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("item already in list")
		}
		return fmt.Errorf("insert list item: %w", err)
	}

	return nil
}

// Exists checks whether an item is already in the user's list.
func (r *ListRepository) Exists(ctx context.Context, q database.Querier, userID, itemID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM list_items WHERE user_id = $1 AND item_id = $2)`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, itemID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check list item exists: %w", err)
	}

	return exists, nil
}

// Delete removes an entry from the user's list.
func (r *ListRepository) Delete(ctx context.Context, userID, itemID string) error {
	query := `DELETE FROM list_items WHERE user_id = $1 AND item_id = $2`

	ct, err := r.db.Exec(ctx, query, userID, itemID)
	if err != nil {
		return fmt.Errorf("delete list item: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("list item", itemID)
	}

	return nil
}

// List returns one page of the user's list, most recently added first.
func (r *ListRepository) List(ctx context.Context, filter repository.ListFilter) ([]domain.ListItem, error) {
	query := `
		SELECT user_id, item_id, item_type, created_at, updated_at
		FROM list_items
		WHERE user_id = $1`

	args := []any{filter.UserID}
	if filter.ItemType != nil {
		query += ` AND item_type = $2`
		args = append(args, string(*filter.ItemType))
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []domain.ListItem
	for rows.Next() {
		var item domain.ListItem
		if err := rows.Scan(&item.UserID, &item.ItemID, &item.ItemType, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan list item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate list rows: %w", err)
	}

	if items == nil {
		items = []domain.ListItem{}
	}

	return items, nil
}

// Count returns the number of entries matching the filter.
func (r *ListRepository) Count(ctx context.Context, filter repository.ListFilter) (int, error) {
	query := `SELECT COUNT(*) FROM list_items WHERE user_id = $1`

	args := []any{filter.UserID}
	if filter.ItemType != nil {
		query += ` AND item_type = $2`
		args = append(args, string(*filter.ItemType))
	}

	var total int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count list items: %w", err)
	}

	return total, nil
}

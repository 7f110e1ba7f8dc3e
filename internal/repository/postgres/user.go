package postgres

import (
	"context"
	"fmt"

	"github.com/screenbox/watchlist/pkg/database"
)

// UserDirectory implements repository.UserDirectory against the users table.
type UserDirectory struct {
	db database.DBTX
}

// NewUserDirectory creates a new PostgreSQL-backed user directory.
func NewUserDirectory(db database.DBTX) *UserDirectory {
	return &UserDirectory{db: db}
}

// Exists checks whether the user is present in the directory.
func (r *UserDirectory) Exists(ctx context.Context, q database.Querier, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	if err := q.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}

	return exists, nil
}

package repository

import (
	"context"

	"github.com/screenbox/watchlist/internal/domain"
	"github.com/screenbox/watchlist/pkg/database"
)

// ListFilter narrows List and Count queries.
type ListFilter struct {
	UserID   string
	ItemType *domain.ItemType
	Limit    int
	Offset   int
}

// ListRepository provides access to watchlist entries. Methods that take a
// database.Querier participate in a caller-managed transaction; the caller
// passes either the pool or an open pgx.Tx.
type ListRepository interface {
	Insert(ctx context.Context, q database.Querier, item *domain.ListItem) error
	Exists(ctx context.Context, q database.Querier, userID, itemID string) (bool, error)
	Delete(ctx context.Context, userID, itemID string) error
	List(ctx context.Context, filter ListFilter) ([]domain.ListItem, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// UserDirectory checks user existence against the user store.
type UserDirectory interface {
	Exists(ctx context.Context, q database.Querier, userID string) (bool, error)
}

// CatalogResolver checks item existence against one catalog (movies or tv shows).
type CatalogResolver interface {
	Kind() domain.ItemType
	Exists(ctx context.Context, q database.Querier, itemID string) (bool, error)
}

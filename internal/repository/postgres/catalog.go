package postgres

import (
	"context"
	"fmt"

	"github.com/screenbox/watchlist/internal/domain"
	"github.com/screenbox/watchlist/pkg/database"
)

// CatalogRepository implements repository.CatalogResolver for one catalog
// table. The table name is fixed at construction, never taken from input.
type CatalogRepository struct {
	db    database.DBTX
	table string
	kind  domain.ItemType
}

// NewMovieCatalog creates a resolver backed by the movies table.
func NewMovieCatalog(db database.DBTX) *CatalogRepository {
	return &CatalogRepository{db: db, table: "movies", kind: domain.ItemTypeMovie}
}

// NewTVShowCatalog creates a resolver backed by the tv_shows table.
func NewTVShowCatalog(db database.DBTX) *CatalogRepository {
	return &CatalogRepository{db: db, table: "tv_shows", kind: domain.ItemTypeTVShow}
}

// Kind returns the item type this catalog resolves.
func (r *CatalogRepository) Kind() domain.ItemType {
	return r.kind
}

// Exists checks whether the item is present in the catalog.
func (r *CatalogRepository) Exists(ctx context.Context, q database.Querier, itemID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)`, r.table)

	var exists bool
	if err := q.QueryRow(ctx, query, itemID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check %s exists: %w", r.kind, err)
	}

	return exists, nil
}

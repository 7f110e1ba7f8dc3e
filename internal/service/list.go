package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/screenbox/watchlist/internal/cache"
	"github.com/screenbox/watchlist/internal/domain"
	"github.com/screenbox/watchlist/internal/repository"
	"github.com/screenbox/watchlist/pkg/database"
	apperrors "github.com/screenbox/watchlist/pkg/errors"
	"github.com/screenbox/watchlist/pkg/logger"
	"github.com/screenbox/watchlist/pkg/pagination"
)

// EventPublisher emits domain events after successful writes. Implementations
// must not fail the calling operation.
type EventPublisher interface {
	PublishItemAdded(ctx context.Context, item *domain.ListItem)
	PublishItemRemoved(ctx context.Context, userID, itemID string)
}

// ListService implements the watchlist operations: add, remove, and paginated
// listing of a user's catalog items.
type ListService struct {
	db       database.DBTX
	lists    repository.ListRepository
	users    repository.UserDirectory
	catalogs map[domain.ItemType]repository.CatalogResolver
	cache    *cache.ListCache
	events   EventPublisher
	logger   *slog.Logger
}

// NewListService creates the watchlist service. The cache and event publisher
// are optional; pass nil to disable them.
func NewListService(
	db database.DBTX,
	lists repository.ListRepository,
	users repository.UserDirectory,
	resolvers []repository.CatalogResolver,
	pageCache *cache.ListCache,
	events EventPublisher,
	log *slog.Logger,
) *ListService {
	catalogs := make(map[domain.ItemType]repository.CatalogResolver, len(resolvers))
	for _, r := range resolvers {
		catalogs[r.Kind()] = r
	}

	return &ListService{
		db:       db,
		lists:    lists,
		users:    users,
		catalogs: catalogs,
		cache:    pageCache,
		events:   events,
		logger:   log,
	}
}

// AddToList adds a catalog item to the user's list. The user lookup, catalog
// lookup, duplicate check, and insert run in one transaction so a concurrent
// add of the same item cannot slip between the check and the write.
func (s *ListService) AddToList(ctx context.Context, userID, itemID, itemType string) (*domain.ListItem, error) {
	if !domain.IsValidItemType(itemType) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid item type %q, must be one of: movie, tvshow", itemType))
	}
	kind := domain.ItemType(itemType)

	resolver, ok := s.catalogs[kind]
	if !ok {
		return nil, apperrors.InvalidInput(fmt.Sprintf("no catalog registered for item type %q", itemType))
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin add transaction: %w", err)
	}
	// Rollback after a successful commit is a no-op error that pgx reports
	// as ErrTxClosed; it is safe to ignore.
	defer func() { _ = tx.Rollback(ctx) }()

	userExists, err := s.users.Exists(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if !userExists {
		return nil, apperrors.NotFound("user", userID)
	}

	itemExists, err := resolver.Exists(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}
	if !itemExists {
		return nil, apperrors.NotFound(itemType, itemID)
	}

	inList, err := s.lists.Exists(ctx, tx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if inList {
		return nil, apperrors.Conflict("item already in list")
	}

	item := &domain.ListItem{
		UserID:   userID,
		ItemID:   itemID,
		ItemType: kind,
	}
	if err := s.lists.Insert(ctx, tx, item); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit add transaction: %w", err)
	}

	s.afterWrite(ctx, userID)
	if s.events != nil {
		s.events.PublishItemAdded(ctx, item)
	}

	logger.WithContext(ctx, s.logger).InfoContext(ctx, "item added to list",
		slog.String("user_id", userID),
		slog.String("item_id", itemID),
		slog.String("item_type", itemType),
	)

	return item, nil
}

// RemoveFromList removes a catalog item from the user's list. Removing an
// item that is not in the list is a not found error, so a second identical
// remove fails the same way regardless of how the item disappeared.
func (s *ListService) RemoveFromList(ctx context.Context, userID, itemID string) error {
	if err := s.lists.Delete(ctx, userID, itemID); err != nil {
		return err
	}

	s.afterWrite(ctx, userID)
	if s.events != nil {
		s.events.PublishItemRemoved(ctx, userID, itemID)
	}

	logger.WithContext(ctx, s.logger).InfoContext(ctx, "item removed from list",
		slog.String("user_id", userID),
		slog.String("item_id", itemID),
	)

	return nil
}

// ListItems returns one page of the user's list together with pagination
// metadata. The count and the page query run concurrently. An unknown user or
// an offset past the end both yield an empty page, never an error.
func (s *ListService) ListItems(ctx context.Context, userID string, itemType *domain.ItemType, params pagination.Params) (*pagination.Result[domain.ListItem], error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, userID, itemType, params.Limit, params.Offset); ok {
			return cached, nil
		}
	}

	filter := repository.ListFilter{
		UserID:   userID,
		ItemType: itemType,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}

	var (
		items []domain.ListItem
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.lists.Count(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.lists.List(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := pagination.NewResult(items, total, params.Limit, params.Offset)

	if s.cache != nil {
		s.cache.Set(ctx, userID, itemType, params.Limit, params.Offset, &result)
	}

	return &result, nil
}

func (s *ListService) afterWrite(ctx context.Context, userID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
}

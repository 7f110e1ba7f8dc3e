package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenbox/watchlist/internal/domain"
	"github.com/screenbox/watchlist/internal/repository"
	"github.com/screenbox/watchlist/pkg/database"
	apperrors "github.com/screenbox/watchlist/pkg/errors"
)

const (
	testUserID = "64f1b2c3d4e5f6a7b8c9d0e1"
	testItemID = "64a0b1c2d3e4f5a6b7c8d9e0"
)

func newListTestFixture(t *testing.T) (*ListRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewListRepository(mock)
	return repo, mock
}

// ---------------------------------------------------------------------------
// Insert
// ---------------------------------------------------------------------------

func TestListRepository_Insert_Success(t *testing.T) {
	repo, mock := newListTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO list_items").
		WithArgs(testUserID, testItemID, "movie").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	item := &domain.ListItem{UserID: testUserID, ItemID: testItemID, ItemType: domain.ItemTypeMovie}
	err := repo.Insert(context.Background(), mock, item)

	require.NoError(t, err)
	assert.Equal(t, now, item.CreatedAt)
	assert.Equal(t, now, item.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRepository_Insert_UniqueViolation(t *testing.T) {
	repo, mock := newListTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO list_items").
		WithArgs(testUserID, testItemID, "movie").
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "list_items_user_id_item_id_key" (SQLSTATE 23505)`))

	item := &domain.ListItem{UserID: testUserID, ItemID: testItemID, ItemType: domain.ItemTypeMovie}
	err := repo.Insert(context.Background(), mock, item)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRepository_Insert_QueryError(t *testing.T) {
	repo, mock := newListTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO list_items").
		WithArgs(testUserID, testItemID, "tvshow").
		WillReturnError(errors.New("connection refused"))

	item := &domain.ListItem{UserID: testUserID, ItemID: testItemID, ItemType: domain.ItemTypeTVShow}
	err := repo.Insert(context.Background(), mock, item)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert list item")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// Exists
// ---------------------------------------------------------------------------

func TestListRepository_Exists(t *testing.T) {
	repo, mock := newListTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(testUserID, testItemID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), mock, testUserID, testItemID)

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestListRepository_Delete_Success(t *testing.T) {
	repo, mock := newListTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM list_items WHERE user_id =").
		WithArgs(testUserID, testItemID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), testUserID, testItemID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newListTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM list_items WHERE user_id =").
		WithArgs(testUserID, testItemID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), testUserID, testItemID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// List / Count
// ---------------------------------------------------------------------------

func TestListRepository_List_NoFilter(t *testing.T) {
	repo, mock := newListTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"user_id", "item_id", "item_type", "created_at", "updated_at"}).
		AddRow(testUserID, testItemID, domain.ItemTypeMovie, now, now).
		AddRow(testUserID, "64b1c2d3e4f5a6b7c8d9e0f1", domain.ItemTypeTVShow, now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery("SELECT user_id, item_id, item_type, created_at, updated_at").
		WithArgs(testUserID, 10, 0).
		WillReturnRows(rows)

	items, err := repo.List(context.Background(), repository.ListFilter{UserID: testUserID, Limit: 10, Offset: 0})

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, testItemID, items[0].ItemID)
	assert.Equal(t, domain.ItemTypeMovie, items[0].ItemType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRepository_List_WithTypeFilter(t *testing.T) {
	repo, mock := newListTestFixture(t)
	defer mock.Close()

	movie := domain.ItemTypeMovie
	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"user_id", "item_id", "item_type", "created_at", "updated_at"}).
		AddRow(testUserID, testItemID, movie, now, now)

	mock.ExpectQuery("SELECT user_id, item_id, item_type, created_at, updated_at").
		WithArgs(testUserID, "movie", 5, 10).
		WillReturnRows(rows)

	items, err := repo.List(context.Background(), repository.ListFilter{
		UserID:   testUserID,
		ItemType: &movie,
		Limit:    5,
		Offset:   10,
	})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRepository_List_EmptyPageReturnsEmptySlice(t *testing.T) {
	repo, mock := newListTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT user_id, item_id, item_type, created_at, updated_at").
		WithArgs(testUserID, 10, 100).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "item_id", "item_type", "created_at", "updated_at"}))

	items, err := repo.List(context.Background(), repository.ListFilter{UserID: testUserID, Limit: 10, Offset: 100})

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRepository_Count(t *testing.T) {
	repo, mock := newListTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(testUserID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(25))

	total, err := repo.Count(context.Background(), repository.ListFilter{UserID: testUserID})

	require.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRepository_Count_WithTypeFilter(t *testing.T) {
	repo, mock := newListTestFixture(t)
	defer mock.Close()

	tvshow := domain.ItemTypeTVShow
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(testUserID, "tvshow").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	total, err := repo.Count(context.Background(), repository.ListFilter{UserID: testUserID, ItemType: &tvshow})

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

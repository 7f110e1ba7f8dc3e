package postgres

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenbox/watchlist/internal/domain"
	"github.com/screenbox/watchlist/pkg/database"
)

func TestMovieCatalog_Exists(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	catalog := NewMovieCatalog(mock)
	assert.Equal(t, domain.ItemTypeMovie, catalog.Kind())

	mock.ExpectQuery("SELECT EXISTS\\(SELECT 1 FROM movies").
		WithArgs(testItemID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := catalog.Exists(context.Background(), mock, testItemID)

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTVShowCatalog_Exists_Missing(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	catalog := NewTVShowCatalog(mock)
	assert.Equal(t, domain.ItemTypeTVShow, catalog.Kind())

	mock.ExpectQuery("SELECT EXISTS\\(SELECT 1 FROM tv_shows").
		WithArgs(testItemID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := catalog.Exists(context.Background(), mock, testItemID)

	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

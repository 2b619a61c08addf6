package queries_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/history"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func unreachableDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "host=127.0.0.1 port=1 user=freight password=freight dbname=freight sslmode=disable connect_timeout=1"
	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestQueryHandlers_UnreachableStore(t *testing.T) {
	ctx := context.Background()
	db := unreachableDB(t)

	t.Run("track should fail with a storage error", func(t *testing.T) {
		query, err := queries.NewGetTrackQuery(kernel.NewUUID())
		require.NoError(t, err)

		_, err = queries.NewGetTrackQueryHandler(db).Handle(ctx, query)

		assert.ErrorIs(t, err, errs.ErrStorageUnavailable)
		assert.NotErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("trip by listing should fail with a storage error", func(t *testing.T) {
		query, err := queries.NewGetTripByListingQuery(kernel.NewUUID())
		require.NoError(t, err)

		_, err = queries.NewGetTripByListingQueryHandler(db).Handle(ctx, query)

		assert.ErrorIs(t, err, errs.ErrStorageUnavailable)
	})

	t.Run("listing should fail with a storage error", func(t *testing.T) {
		query, err := queries.NewGetListingQuery(kernel.NewUUID())
		require.NoError(t, err)

		_, err = queries.NewGetListingQueryHandler(db).Handle(ctx, query)

		assert.ErrorIs(t, err, errs.ErrStorageUnavailable)
	})

	t.Run("history should fail with a storage error", func(t *testing.T) {
		aggregator, err := history.NewAggregator(time.UTC)
		require.NoError(t, err)
		query, err := queries.NewGetHistoryQuery(kernel.NewUUID())
		require.NoError(t, err)

		_, err = queries.NewGetHistoryQueryHandler(db, aggregator).Handle(ctx, query)

		assert.ErrorIs(t, err, errs.ErrStorageUnavailable)
	})
}

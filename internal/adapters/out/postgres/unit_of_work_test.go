package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "freight/internal/adapters/out/postgres"
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

func TestGormUnitOfWork_Begin(t *testing.T) {
	t.Run("should report an unreachable database as a storage failure", func(t *testing.T) {
		uow := postgres_adapter.NewGormUnitOfWorkFactory(unreachableDB(t), nil).Create()

		err := uow.Begin(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrStorageUnavailable)
		var storageErr *errs.StorageError
		require.ErrorAs(t, err, &storageErr)
		assert.Equal(t, "begin transaction", storageErr.Operation)
	})

	t.Run("should leave no transaction behind after a failed begin", func(t *testing.T) {
		uow := postgres_adapter.NewGormUnitOfWorkFactory(unreachableDB(t), nil).Create()

		require.Error(t, uow.Begin(context.Background()))

		assert.Error(t, uow.Commit(context.Background()))
	})
}

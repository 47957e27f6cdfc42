package counter_test

import (
	"context"
	"errors"
	"testing"

	"go-hris-leave/internal/shared/counter"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupCounterRepo(t *testing.T) (counter.Repository, sqlmock.Sqlmock, func()) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	assert.NoError(t, err)

	return counter.NewRepository(gdb), mock, func() { _ = sqlDB.Close() }
}

func TestCounterRepository_GetNextValue(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo, mock, done := setupCounterRepo(t)
		defer done()

		mock.ExpectQuery(`INSERT INTO tenant_counters .* RETURNING last_value`).
			WithArgs("tenant-1", "leave_request_number").
			WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(int64(42)))

		v, err := repo.GetNextValue(ctx, "tenant-1", "leave_request_number")

		assert.NoError(t, err)
		assert.Equal(t, int64(42), v)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative db error", func(t *testing.T) {
		repo, mock, done := setupCounterRepo(t)
		defer done()

		mock.ExpectQuery(`INSERT INTO tenant_counters`).
			WillReturnError(errors.New("db down"))

		v, err := repo.GetNextValue(ctx, "tenant-1", "leave_request_number")

		assert.Error(t, err)
		assert.Zero(t, v)
	})
}

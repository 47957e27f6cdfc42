package connection_test

import (
	"context"
	"testing"

	"go-hris-leave/internal/shared/connection"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestSession_RunsOnTransaction(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer sqlDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE employees SET vacation_balance = 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := sqlDB.BeginTx(context.Background(), nil)
	assert.NoError(t, err)

	err = connection.Session(context.Background(), gdb, tx).
		Exec("UPDATE employees SET vacation_balance = 1").Error
	assert.NoError(t, err)
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresConfig_DSN(t *testing.T) {
	cfg := connection.PostgresConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", DBName: "hris", SSLMode: "disable",
	}
	assert.Equal(t, "host=db user=u password=p dbname=hris port=5432 sslmode=disable", cfg.DSN())
}

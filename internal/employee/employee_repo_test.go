package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-hris-leave/internal/employee"
	employeeerrors "go-hris-leave/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type repoDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	repo    employee.Repository
}

func setupRepoTest(t *testing.T) *repoDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	return &repoDeps{db: db, sqlMock: sqlMock, repo: employee.NewRepository(gdb)}
}

var employeeColumns = []string{
	"id", "tenant_id", "full_name", "email",
	"vacation_balance", "sick_balance", "personal_balance",
}

func TestEmployeeRepository_FindByIDAndTenant(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupRepoTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectQuery(`SELECT \* FROM "employees" WHERE .*tenant_id = \$\d`).
			WillReturnRows(sqlmock.NewRows(employeeColumns).
				AddRow(id.String(), tenantID.String(), "Jane Doe", "jane@example.com", "10.00", "3.50", "0"))

		e, err := deps.repo.FindByIDAndTenant(ctx, tenantID.String(), id.String())

		assert.NoError(t, err)
		assert.Equal(t, id, e.ID)
		assert.True(t, decimal.NewFromInt(10).Equal(e.VacationBalance))
		assert.True(t, decimal.RequireFromString("3.5").Equal(e.SickBalance))
		assert.True(t, e.PersonalBalance.IsZero())
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupRepoTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectQuery(`SELECT \* FROM "employees"`).
			WillReturnRows(sqlmock.NewRows(employeeColumns))

		e, err := deps.repo.FindByIDAndTenant(ctx, tenantID.String(), id.String())

		assert.Nil(t, e)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeRepository_FindByIDAndTenantForUpdate(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	id := uuid.New()

	deps := setupRepoTest(t)
	defer deps.db.Close()

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectQuery(`SELECT \* FROM "employees" WHERE .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(employeeColumns).
			AddRow(id.String(), tenantID.String(), "Jane Doe", "jane@example.com", "10", "5", "2"))
	deps.sqlMock.ExpectCommit()

	tx, err := deps.db.BeginTx(ctx, nil)
	assert.NoError(t, err)

	e, err := deps.repo.WithTx(tx).FindByIDAndTenantForUpdate(ctx, tenantID.String(), id.String())

	assert.NoError(t, err)
	assert.Equal(t, tenantID, e.TenantID)
	assert.NoError(t, tx.Commit())
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestEmployeeRepository_UpdateLeaveBalances(t *testing.T) {
	ctx := context.Background()
	e := &employee.Employee{
		ID:              uuid.New(),
		TenantID:        uuid.New(),
		VacationBalance: decimal.NewFromInt(5),
		SickBalance:     decimal.NewFromInt(3),
		PersonalBalance: decimal.Zero,
	}

	t.Run("success inside transaction", func(t *testing.T) {
		deps := setupRepoTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectExec(`UPDATE "employees" SET .*"personal_balance"=.*"sick_balance"=.*"vacation_balance"=`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		deps.sqlMock.ExpectCommit()

		tx, err := deps.db.BeginTx(ctx, nil)
		assert.NoError(t, err)

		err = deps.repo.WithTx(tx).UpdateLeaveBalances(ctx, e)

		assert.NoError(t, err)
		assert.NoError(t, tx.Commit())
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative no row updated", func(t *testing.T) {
		deps := setupRepoTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectExec(`UPDATE "employees"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		deps.sqlMock.ExpectRollback()

		tx, err := deps.db.BeginTx(ctx, nil)
		assert.NoError(t, err)

		err = deps.repo.WithTx(tx).UpdateLeaveBalances(ctx, e)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, tx.Rollback())
	})

	t.Run("negative check constraint", func(t *testing.T) {
		deps := setupRepoTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectExec(`UPDATE "employees"`).
			WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "ck_employees_leave_balances_non_negative"})
		deps.sqlMock.ExpectRollback()

		tx, err := deps.db.BeginTx(ctx, nil)
		assert.NoError(t, err)

		err = deps.repo.WithTx(tx).UpdateLeaveBalances(ctx, e)

		assert.ErrorIs(t, err, employeeerrors.ErrNegativeBalance)
		assert.False(t, errors.Is(err, employeeerrors.ErrEmployeeNotFound))
		assert.NoError(t, tx.Rollback())
	})
}

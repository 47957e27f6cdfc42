package employee

import (
	"errors"

	employeeerrors "go-hris-leave/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgCheckViolation = "23514"

	ckNonNegativeBalance = "ck_employees_leave_balances_non_negative"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgCheckViolation && pgErr.ConstraintName == ckNonNegativeBalance {
		return employeeerrors.ErrNegativeBalance
	}

	return err
}

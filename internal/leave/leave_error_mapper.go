package leave

import (
	"errors"

	leaveerrors "go-hris-leave/internal/leave/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgExclusionViolation = "23P01"

	exNoOverlap = "ex_leave_requests_no_overlap"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrRequestNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation && pgErr.ConstraintName == exNoOverlap {
		return leaveerrors.ErrOverlapConflict
	}

	return err
}

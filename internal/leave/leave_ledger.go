package leave

import (
	"go-hris-leave/internal/employee"
	leaveerrors "go-hris-leave/internal/leave/errors"

	"github.com/shopspring/decimal"
)

// Balance reads the balance backing t. It only looks at the value handed in.
func Balance(e *employee.Employee, t LeaveType) (decimal.Decimal, error) {
	switch t {
	case LeaveTypeVacation:
		return e.VacationBalance, nil
	case LeaveTypeSick:
		return e.SickBalance, nil
	case LeaveTypePersonal:
		return e.PersonalBalance, nil
	default:
		return decimal.Zero, leaveerrors.ErrInvalidLeaveType
	}
}

// SetBalance overwrites the balance backing t on e. Callers persist e through
// employee.Repository.UpdateLeaveBalances and keep the value non-negative.
func SetBalance(e *employee.Employee, t LeaveType, v decimal.Decimal) error {
	switch t {
	case LeaveTypeVacation:
		e.VacationBalance = v
	case LeaveTypeSick:
		e.SickBalance = v
	case LeaveTypePersonal:
		e.PersonalBalance = v
	default:
		return leaveerrors.ErrInvalidLeaveType
	}
	return nil
}

package leave

import (
	"strings"

	leaveerrors "go-hris-leave/internal/leave/errors"
)

type LeaveType string

const (
	LeaveTypeVacation LeaveType = "Vacation"
	LeaveTypeSick     LeaveType = "Sick"
	LeaveTypePersonal LeaveType = "Personal"
)

var leaveTypes = []LeaveType{LeaveTypeVacation, LeaveTypeSick, LeaveTypePersonal}

// ParseLeaveType accepts any casing and returns the canonical value.
func ParseLeaveType(v string) (LeaveType, error) {
	v = strings.TrimSpace(v)
	for _, t := range leaveTypes {
		if strings.EqualFold(v, string(t)) {
			return t, nil
		}
	}
	return "", leaveerrors.ErrInvalidLeaveType
}

func (t LeaveType) String() string {
	return string(t)
}

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

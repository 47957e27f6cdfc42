package leaveerrors

import (
	"fmt"
	"net/http"

	"go-hris-leave/internal/shared/apperror"

	"github.com/shopspring/decimal"
)

const (
	CodeInvalidDate         = "INVALID_DATE"
	CodeInvalidRange        = "INVALID_RANGE"
	CodePastDate            = "PAST_DATE"
	CodeEmptyRange          = "EMPTY_RANGE"
	CodeOverlapConflict     = "OVERLAP_CONFLICT"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeInvalidLeaveType    = "INVALID_LEAVE_TYPE"
	CodeRequestNotFound     = "REQUEST_NOT_FOUND"
	CodeAlreadyDecided      = "ALREADY_DECIDED"
)

var (
	ErrInvalidTenantID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid tenant id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		CodeInvalidDate,
		"invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidRange = apperror.New(
		CodeInvalidRange,
		"endDate must be on or after startDate",
		http.StatusBadRequest,
	)
	ErrPastDate = apperror.New(
		CodePastDate,
		"startDate cannot be in the past",
		http.StatusBadRequest,
	)
	ErrEmptyRange = apperror.New(
		CodeEmptyRange,
		"leave request must cover at least one day",
		http.StatusBadRequest,
	)
	ErrOverlapConflict = apperror.New(
		CodeOverlapConflict,
		"leave request overlaps an existing pending or approved request",
		http.StatusConflict,
	)
	ErrInsufficientBalance = apperror.New(
		CodeInsufficientBalance,
		"insufficient leave balance",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidLeaveType = apperror.New(
		CodeInvalidLeaveType,
		"leave type must be one of Vacation, Sick, Personal",
		http.StatusBadRequest,
	)
	ErrRequestNotFound = apperror.New(
		CodeRequestNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrAlreadyDecided = apperror.New(
		CodeAlreadyDecided,
		"leave request has already been decided",
		http.StatusConflict,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"decision must be Approved or Rejected",
		http.StatusBadRequest,
	)
)

type InsufficientBalanceDetails struct {
	Type      string          `json:"type"`
	Available decimal.Decimal `json:"available"`
	Requested int             `json:"requested"`
}

func InsufficientBalance(leaveType string, available decimal.Decimal, requested int) error {
	return ErrInsufficientBalance.WithDetails(
		fmt.Sprintf("insufficient %s balance: %s available, %d requested", leaveType, available.String(), requested),
		InsufficientBalanceDetails{Type: leaveType, Available: available, Requested: requested},
	)
}

type AlreadyDecidedDetails struct {
	Status string `json:"status"`
}

func AlreadyDecided(status string) error {
	return ErrAlreadyDecided.WithDetails(
		fmt.Sprintf("leave request is already %s", status),
		AlreadyDecidedDetails{Status: status},
	)
}

func InvalidDate(field, value string) error {
	return ErrInvalidDate.WithDetails(
		fmt.Sprintf("invalid %s %q, expected YYYY-MM-DD", field, value),
		map[string]string{"field": field, "value": value},
	)
}

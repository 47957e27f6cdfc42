package employeeerrors

import (
	"go-hris-leave/internal/shared/apperror"
	"net/http"
)

const CodeEmployeeNotFound = "EMPLOYEE_NOT_FOUND"

var (
	ErrEmployeeNotFound = apperror.New(
		CodeEmployeeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrNegativeBalance = apperror.New(
		apperror.CodeInvalidState,
		"leave balance cannot become negative",
		http.StatusConflict,
	)
)

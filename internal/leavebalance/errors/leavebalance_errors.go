package leavebalanceerrors

import (
	"net/http"

	"github.com/nirzaf/gohrms/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type id",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"year is out of range",
		http.StatusBadRequest,
	)
	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"days must be a positive decimal",
		http.StatusBadRequest,
	)
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found",
		http.StatusNotFound,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeConflict,
		"insufficient remaining leave balance",
		http.StatusConflict,
	)
	ErrPendingUnderflow = apperror.New(
		apperror.CodeInvalidState,
		"pending balance is less than the requested days",
		http.StatusBadRequest,
	)
	ErrInvariantViolated = apperror.New(
		apperror.CodeInvalidInput,
		"balance components do not satisfy remaining = allocated - used - pending",
		http.StatusBadRequest,
	)
)

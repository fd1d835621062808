package response

import (
	"errors"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/approval"
	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/company"
	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/domain/leave"
	"github.com/attendly/attendance-backend-go/internal/domain/ledger"
	"github.com/attendly/attendance-backend-go/internal/domain/makeup"
	"github.com/attendly/attendance-backend-go/internal/domain/overtime"
	"github.com/attendly/attendance-backend-go/internal/domain/schedule"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in today")
	case errors.Is(err, attendance.ErrNotClockedIn):
		BadRequest(w, "No clock-in recorded for today", nil)
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Already clocked out today")
	case errors.Is(err, attendance.ErrLocationOutOfRange):
		BadRequest(w, "Location is outside the company area", nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, company.ErrInvalidQRCode):
		BadRequest(w, "QR code does not match any registered company", nil)
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Work schedule not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrRelationNotFound):
		NotFound(w, "Employment relation not found")

	// Ledger domain errors
	case errors.Is(err, ledger.ErrInsufficientBalance):
		BadRequest(w, "Insufficient balance", nil)
	case errors.Is(err, ledger.ErrQuotaExceeded):
		BadRequest(w, "Makeup quota exceeded", nil)
	case errors.Is(err, ledger.ErrAccountNotFound):
		NotFound(w, "Ledger account not found")

	// Approval domain errors
	case errors.Is(err, approval.ErrStepNotFound):
		NotFound(w, "Approval step not found")
	case errors.Is(err, approval.ErrNotStepApprover):
		Forbidden(w, "You are not the approver for this step")
	case errors.Is(err, approval.ErrStepNotPending):
		Conflict(w, "Approval step already processed")
	case errors.Is(err, approval.ErrCommentRequired):
		BadRequest(w, "A comment is required when rejecting", nil)
	case errors.Is(err, approval.ErrNoApproverResolved):
		BadRequest(w, "No approver could be resolved for this request", nil)
	case errors.Is(err, approval.ErrPolicyNotFound):
		NotFound(w, "Approval policy not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidRange):
		BadRequest(w, "Invalid leave time range", nil)
	case errors.Is(err, leave.ErrInvalidCategory):
		BadRequest(w, "Unknown leave category", nil)
	case errors.Is(err, leave.ErrNotRequester):
		Forbidden(w, "Only the requester may act on this leave request")

	// Overtime domain errors
	case errors.Is(err, overtime.ErrRequestNotFound):
		NotFound(w, "Overtime request not found")
	case errors.Is(err, overtime.ErrAlreadyProcessed):
		Conflict(w, "Overtime request already processed")
	case errors.Is(err, overtime.ErrInvalidRange):
		BadRequest(w, "Invalid overtime time range", nil)
	case errors.Is(err, overtime.ErrInvalidSplit):
		BadRequest(w, "Pay and compensatory hours must sum to the overtime total", nil)
	case errors.Is(err, overtime.ErrNotRequester):
		Forbidden(w, "Only the requester may act on this overtime request")

	// Makeup domain errors
	case errors.Is(err, makeup.ErrRequestNotFound):
		NotFound(w, "Makeup request not found")
	case errors.Is(err, makeup.ErrAlreadyProcessed):
		Conflict(w, "Makeup request already processed")
	case errors.Is(err, makeup.ErrInvalidDate):
		BadRequest(w, "Makeup date must be within the last 7 days", nil)
	case errors.Is(err, makeup.ErrMissingTime):
		BadRequest(w, "Requested time is required for the makeup type", nil)
	case errors.Is(err, makeup.ErrNotRequester):
		Forbidden(w, "Only the requester may act on this makeup request")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

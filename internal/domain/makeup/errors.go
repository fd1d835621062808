package makeup

import "errors"

var (
	ErrRequestNotFound  = errors.New("makeup clock request not found")
	ErrAlreadyProcessed = errors.New("makeup clock request already processed")

	// ErrInvalidDate means the target date falls outside the eligibility
	// window or in the future.
	ErrInvalidDate = errors.New("makeup date must be within the last 7 days")

	ErrMissingTime  = errors.New("requested time is required for the makeup type")
	ErrNotRequester = errors.New("only the requester may cancel this makeup request")
)

package leave

import "errors"

var (
	ErrRequestNotFound  = errors.New("leave request not found")
	ErrInvalidCategory  = errors.New("unknown leave category")
	ErrAlreadyProcessed = errors.New("leave request already processed")
	ErrInvalidRange     = errors.New("leave end time must be after start time")
	ErrNotRequester     = errors.New("only the requester may cancel this leave request")
)

package overtime

import "errors"

var (
	ErrRequestNotFound  = errors.New("overtime request not found")
	ErrAlreadyProcessed = errors.New("overtime request already processed")
	ErrInvalidRange     = errors.New("overtime end time must be after start time")
	ErrInvalidSplit     = errors.New("pay and compensatory hours must sum to total overtime hours")
	ErrNotRequester     = errors.New("only the requester may cancel this overtime request")
)

package approval

import "errors"

var (
	ErrStepNotFound = errors.New("approval step not found")
	// ErrNotStepApprover means the acting employee is not the approver the
	// step is bound to.
	ErrNotStepApprover = errors.New("not the approver for this step")
	// ErrStepNotPending guards terminal steps against re-processing.
	ErrStepNotPending = errors.New("approval step is not pending")
	// ErrCommentRequired is returned when a rejection carries no comment.
	ErrCommentRequired = errors.New("rejection comment is required")
	// ErrNoApproverResolved means every configured level failed to resolve
	// to an approver. The request is refused rather than self-approved.
	ErrNoApproverResolved = errors.New("no approver could be resolved for this request")
	ErrPolicyNotFound     = errors.New("approval policy not found")
)

package notification

import "time"

type Type string

const (
	TypeApprovalPending  Type = "approval_pending"
	TypeLeaveApproved    Type = "leave_approved"
	TypeLeaveRejected    Type = "leave_rejected"
	TypeOvertimeApproved Type = "overtime_approved"
	TypeOvertimeRejected Type = "overtime_rejected"
	TypeMakeupApproved   Type = "makeup_approved"
	TypeMakeupRejected   Type = "makeup_rejected"
	TypeRequestCancelled Type = "request_cancelled"
)

// Notification is an informational record only; it carries no workflow
// effect and delivery is best-effort.
type Notification struct {
	ID          string
	RecipientID string
	Type        Type
	Title       string
	Content     string
	RelatedKind *string
	RelatedID   *string
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}

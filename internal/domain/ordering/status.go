package ordering

// ApprovalStatus represents the lifecycle state of a submitted order.
// PENDING is only observable in the window between the durable order
// write and the fulfillment gateway outcome; SEND_FAILED orders keep
// their failure reason and wait for external reconciliation.
type ApprovalStatus string

const (
	ApprovalStatusPending    ApprovalStatus = "PENDING"
	ApprovalStatusApproved   ApprovalStatus = "APPROVED"
	ApprovalStatusSendFailed ApprovalStatus = "SEND_FAILED"
	ApprovalStatusResend     ApprovalStatus = "RESEND"
)

// IsValid checks if the status is a valid ApprovalStatus
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusSendFailed, ApprovalStatusResend:
		return true
	}
	return false
}

// String returns the string representation of ApprovalStatus
func (s ApprovalStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// SEND_FAILED to RESEND is reserved for the reconciliation workflow;
// nothing in this service performs it.
func (s ApprovalStatus) CanTransitionTo(target ApprovalStatus) bool {
	switch s {
	case ApprovalStatusPending:
		return target == ApprovalStatusApproved || target == ApprovalStatusSendFailed
	case ApprovalStatusSendFailed:
		return target == ApprovalStatusResend
	case ApprovalStatusApproved, ApprovalStatusResend:
		return false // Terminal states
	}
	return false
}

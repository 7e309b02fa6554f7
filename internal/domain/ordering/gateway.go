package ordering

import "context"

// SubmissionResult is the fulfillment system's verdict on an order
type SubmissionResult struct {
	Accepted bool
	Reason   string // Rejection reason, empty when accepted
}

// SubmissionGateway hands a durable order to the external fulfillment
// system. The protocol behind it is opaque to this service.
//
// Implementations return an error only for transport-level failures
// (timeouts, connection errors, malformed responses); a reachable
// fulfillment system that declines the order is a non-error
// SubmissionResult with Accepted=false.
type SubmissionGateway interface {
	Submit(ctx context.Context, order *Order) (*SubmissionResult, error)
}

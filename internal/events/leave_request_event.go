package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	LeaveRequestSubmitted = "leave_request_submitted"
	LeaveRequestApproved  = "leave_request_approved"
	LeaveRequestRejected  = "leave_request_rejected"
	LeaveRequestRemoved   = "leave_request_removed"
)

// LeaveRequestEvent is published for every state change of a leave request.
type LeaveRequestEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	LeaveRequestID string    `json:"leave_request_id"`
	RequestNumber  string    `json:"request_number,omitempty"`
	TenantID       string    `json:"tenant_id"`
	EmployeeID     string    `json:"employee_id"`
	ActorID        string    `json:"actor_id,omitempty"`
	LeaveType      string    `json:"leave_type"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	DurationDays   int       `json:"duration_days"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

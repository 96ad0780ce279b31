package events

import "time"

const LeaveStatusChangedTopic = "agency.leave.status.v1"

const (
	EventLeaveCreated  = "leave_created"
	EventLeaveApproved = "leave_approved"
	EventLeaveRejected = "leave_rejected"
)

type LeaveStatusChangedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	LeaveID    string    `json:"leave_id"`
	AgencyID   string    `json:"agency_id"`
	EmployeeID string    `json:"employee_id"`
	LeaveType  string    `json:"leave_type"`
	FromStatus string    `json:"from_status,omitempty"`
	Status     string    `json:"status"`
	ActorID    string    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

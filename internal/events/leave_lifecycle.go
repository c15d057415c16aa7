package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	LeaveSubmittedEventType = "leave.submitted"
	LeaveApprovedEventType  = "leave.approved"
	LeaveRejectedEventType  = "leave.rejected"
	LeaveCancelledEventType = "leave.cancelled"
)

type LeaveStatusChangedEvent struct {
	EventType      string    `json:"event_type"`
	LeaveRequestID string    `json:"leave_request_id"`
	EmployeeID     string    `json:"employee_id"`
	LeaveTypeID    string    `json:"leave_type_id"`
	Status         string    `json:"status"`
	DurationInDays string    `json:"duration_in_days"`
	OccurredAt     time.Time `json:"occurred_at"`
}

package events

const (
	EventAdvanceApproved = "advance.approved"
	EventAdvanceRejected = "advance.rejected"

	EventIncrementApproved = "increment.approved"
	EventIncrementRejected = "increment.rejected"
	EventIncrementApplied  = "increment.applied"
)

func NewAdvanceApproved(advanceID, employeeID, approverID int64) BaseEvent {
	return NewBaseEvent(EventAdvanceApproved, map[string]interface{}{
		"advance_id":  advanceID,
		"employee_id": employeeID,
		"approver_id": approverID,
	})
}

func NewAdvanceRejected(advanceID, employeeID, rejectorID int64, reason string) BaseEvent {
	return NewBaseEvent(EventAdvanceRejected, map[string]interface{}{
		"advance_id":  advanceID,
		"employee_id": employeeID,
		"rejector_id": rejectorID,
		"reason":      reason,
	})
}

func NewIncrementApproved(incrementID, employeeID, approverID int64) BaseEvent {
	return NewBaseEvent(EventIncrementApproved, map[string]interface{}{
		"increment_id": incrementID,
		"employee_id":  employeeID,
		"approver_id":  approverID,
	})
}

func NewIncrementRejected(incrementID, employeeID, rejectorID int64, reason string) BaseEvent {
	return NewBaseEvent(EventIncrementRejected, map[string]interface{}{
		"increment_id": incrementID,
		"employee_id":  employeeID,
		"rejector_id":  rejectorID,
		"reason":       reason,
	})
}

func NewIncrementApplied(incrementID, employeeID int64) BaseEvent {
	return NewBaseEvent(EventIncrementApplied, map[string]interface{}{
		"increment_id": incrementID,
		"employee_id":  employeeID,
	})
}

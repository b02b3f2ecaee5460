package assignment

import (
	"time"

	"github.com/hrops/backoffice/internal"
)

// CreateAssignmentDTO is the request payload for recording a new assignment.
type CreateAssignmentDTO struct {
	EmployeeID int64     `json:"employee_id" validate:"required"`
	Type       string    `json:"type" validate:"required,oneof=project rental leave manual"`
	Name       string    `json:"name" validate:"required"`
	Location   *string   `json:"location,omitempty"`
	StartDate  time.Time `json:"start_date" validate:"required"`
	Notes      *string   `json:"notes,omitempty"`
}

func (dto CreateAssignmentDTO) Validate() error {
	if dto.EmployeeID <= 0 {
		return internal.NewValidationFieldError("employee_id", "employee_id is required", internal.ErrCodeValidationFailed)
	}
	if !ValidType(dto.Type) {
		return internal.NewValidationFieldError("type", "type must be one of project, rental, leave, manual", internal.ErrCodeValidationFailed)
	}
	if dto.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if dto.StartDate.IsZero() {
		return internal.NewValidationFieldError("start_date", "start_date is required", internal.ErrCodeInvalidDate)
	}
	return nil
}

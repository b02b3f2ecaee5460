package assignment

import (
	"time"

	assignmentDatamodel "github.com/hrops/backoffice/internal/core/datamodel/assignment"
)

// Assignment statuses. Records are never deleted; the reconciler keeps exactly
// one active open-ended row per employee.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Assignment types.
const (
	TypeProject = "project"
	TypeRental  = "rental"
	TypeLeave   = "leave"
	TypeManual  = "manual"
)

type Assignment struct {
	ID         int64      `json:"id"`
	EmployeeID int64      `json:"employee_id"`
	Type       string     `json:"type"`
	Name       string     `json:"name"`
	Location   *string    `json:"location,omitempty"`
	Status     string     `json:"status"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	AssignedBy *int64     `json:"assigned_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (a *Assignment) IsActive() bool {
	return a.Status == StatusActive && a.EndDate == nil
}

func ValidType(t string) bool {
	switch t {
	case TypeProject, TypeRental, TypeLeave, TypeManual:
		return true
	}
	return false
}

func ToDataModel(a *Assignment) *assignmentDatamodel.Assignment {
	return &assignmentDatamodel.Assignment{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Type:       a.Type,
		Name:       a.Name,
		Location:   a.Location,
		Status:     a.Status,
		StartDate:  a.StartDate,
		EndDate:    a.EndDate,
		Notes:      a.Notes,
		AssignedBy: a.AssignedBy,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func FromDataModel(a *assignmentDatamodel.Assignment) *Assignment {
	return &Assignment{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Type:       a.Type,
		Name:       a.Name,
		Location:   a.Location,
		Status:     a.Status,
		StartDate:  a.StartDate,
		EndDate:    a.EndDate,
		Notes:      a.Notes,
		AssignedBy: a.AssignedBy,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*assignmentDatamodel.Assignment) []*Assignment {
	result := make([]*Assignment, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}

package assignment

import "time"

// Assignment is one row of an employee's append-only placement history.
type Assignment struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	EmployeeID int64      `json:"employee_id" gorm:"column:employee_id;not null;index"`
	Type       string     `json:"type" gorm:"column:type;not null"`
	Name       string     `json:"name" gorm:"column:name"`
	Location   *string    `json:"location,omitempty" gorm:"column:location"`
	Status     string     `json:"status" gorm:"column:status;default:active"`
	StartDate  time.Time  `json:"start_date" gorm:"column:start_date;type:date;not null"`
	EndDate    *time.Time `json:"end_date,omitempty" gorm:"column:end_date;type:date"`
	Notes      *string    `json:"notes,omitempty" gorm:"column:notes"`
	AssignedBy *int64     `json:"assigned_by,omitempty" gorm:"column:assigned_by"`
	CreatedAt  time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Assignment) TableName() string {
	return "employee_assignments"
}

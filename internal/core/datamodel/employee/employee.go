package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the HR master record the lifecycle managers hang off of.
type Employee struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	FileNumber  string          `json:"file_number" gorm:"column:file_number;uniqueIndex"`
	FirstName   string          `json:"first_name" gorm:"column:first_name;not null"`
	LastName    string          `json:"last_name" gorm:"column:last_name;not null"`
	Email       string          `json:"email" gorm:"column:email"`
	BasicSalary decimal.Decimal `json:"basic_salary" gorm:"column:basic_salary;type:numeric(12,2);not null"`
	Status      string          `json:"status" gorm:"column:status;default:active"`
	CreatedAt   time.Time       `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Employee) TableName() string {
	return "employees"
}

// EmployeeSalary is one row of the effective-dated compensation history.
// The row whose [effective_from, effective_to] window contains today and whose
// status is approved is the authoritative salary.
type EmployeeSalary struct {
	ID                 int64           `json:"id" gorm:"primaryKey"`
	EmployeeID         int64           `json:"employee_id" gorm:"column:employee_id;not null;index"`
	BaseSalary         decimal.Decimal `json:"base_salary" gorm:"column:base_salary;type:numeric(12,2);not null"`
	FoodAllowance      decimal.Decimal `json:"food_allowance" gorm:"column:food_allowance;type:numeric(12,2)"`
	HousingAllowance   decimal.Decimal `json:"housing_allowance" gorm:"column:housing_allowance;type:numeric(12,2)"`
	TransportAllowance decimal.Decimal `json:"transport_allowance" gorm:"column:transport_allowance;type:numeric(12,2)"`
	Status             string          `json:"status" gorm:"column:status;default:approved"`
	EffectiveFrom      time.Time       `json:"effective_from" gorm:"column:effective_from;type:date;not null"`
	EffectiveTo        *time.Time      `json:"effective_to,omitempty" gorm:"column:effective_to;type:date"`
	CreatedAt          time.Time       `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt          time.Time       `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (EmployeeSalary) TableName() string {
	return "employee_salaries"
}

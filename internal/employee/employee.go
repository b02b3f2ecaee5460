package employee

import (
	"time"

	employeeDatamodel "github.com/hrops/backoffice/internal/core/datamodel/employee"
	"github.com/shopspring/decimal"
)

const (
	SalaryStatusApproved = "approved"
)

type Employee struct {
	ID          int64           `json:"id"`
	FileNumber  string          `json:"file_number"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Email       string          `json:"email"`
	BasicSalary decimal.Decimal `json:"basic_salary"`
	Status      string          `json:"status"`
}

// SalaryRecord is one effective-dated compensation row. A nil EffectiveTo
// means the record is still open.
type SalaryRecord struct {
	ID                 int64           `json:"id"`
	EmployeeID         int64           `json:"employee_id"`
	BaseSalary         decimal.Decimal `json:"base_salary"`
	FoodAllowance      decimal.Decimal `json:"food_allowance"`
	HousingAllowance   decimal.Decimal `json:"housing_allowance"`
	TransportAllowance decimal.Decimal `json:"transport_allowance"`
	Status             string          `json:"status"`
	EffectiveFrom      time.Time       `json:"effective_from"`
	EffectiveTo        *time.Time      `json:"effective_to,omitempty"`
}

// Repository defines the employee collaborator consumed by the increment
// processor: master-record lookup and the effective-dated salary history.
type Repository interface {
	GetByID(id int64) (*Employee, error)
	// CurrentSalary returns the latest approved salary record whose effective
	// window contains asOf, or nil when the employee has none.
	CurrentSalary(employeeID int64, asOf time.Time) (*SalaryRecord, error)
	SalaryHistory(employeeID int64) ([]*SalaryRecord, error)
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:          e.ID,
		FileNumber:  e.FileNumber,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Email:       e.Email,
		BasicSalary: e.BasicSalary,
		Status:      e.Status,
	}
}

func SalaryFromDataModel(s *employeeDatamodel.EmployeeSalary) *SalaryRecord {
	return &SalaryRecord{
		ID:                 s.ID,
		EmployeeID:         s.EmployeeID,
		BaseSalary:         s.BaseSalary,
		FoodAllowance:      s.FoodAllowance,
		HousingAllowance:   s.HousingAllowance,
		TransportAllowance: s.TransportAllowance,
		Status:             s.Status,
		EffectiveFrom:      s.EffectiveFrom,
		EffectiveTo:        s.EffectiveTo,
	}
}

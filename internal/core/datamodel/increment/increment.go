package increment

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryIncrement captures a proposed compensation change: the baseline
// snapshot taken at request time, the proposed values, and the approval trail.
type SalaryIncrement struct {
	ID                        int64            `json:"id" gorm:"primaryKey"`
	EmployeeID                int64            `json:"employee_id" gorm:"column:employee_id;not null;index"`
	CurrentBaseSalary         decimal.Decimal  `json:"current_base_salary" gorm:"column:current_base_salary;type:numeric(12,2);not null"`
	CurrentFoodAllowance      decimal.Decimal  `json:"current_food_allowance" gorm:"column:current_food_allowance;type:numeric(12,2)"`
	CurrentHousingAllowance   decimal.Decimal  `json:"current_housing_allowance" gorm:"column:current_housing_allowance;type:numeric(12,2)"`
	CurrentTransportAllowance decimal.Decimal  `json:"current_transport_allowance" gorm:"column:current_transport_allowance;type:numeric(12,2)"`
	NewBaseSalary             decimal.Decimal  `json:"new_base_salary" gorm:"column:new_base_salary;type:numeric(12,2);not null"`
	NewFoodAllowance          decimal.Decimal  `json:"new_food_allowance" gorm:"column:new_food_allowance;type:numeric(12,2)"`
	NewHousingAllowance       decimal.Decimal  `json:"new_housing_allowance" gorm:"column:new_housing_allowance;type:numeric(12,2)"`
	NewTransportAllowance     decimal.Decimal  `json:"new_transport_allowance" gorm:"column:new_transport_allowance;type:numeric(12,2)"`
	IncrementType             string           `json:"increment_type" gorm:"column:increment_type;not null"`
	IncrementPercentage       *decimal.Decimal `json:"increment_percentage,omitempty" gorm:"column:increment_percentage;type:numeric(5,2)"`
	IncrementAmount           *decimal.Decimal `json:"increment_amount,omitempty" gorm:"column:increment_amount;type:numeric(12,2)"`
	Reason                    string           `json:"reason" gorm:"column:reason"`
	EffectiveDate             time.Time        `json:"effective_date" gorm:"column:effective_date;type:date;not null"`
	Status                    string           `json:"status" gorm:"column:status;default:pending"`
	RequestedBy               int64            `json:"requested_by" gorm:"column:requested_by"`
	RequestedAt               time.Time        `json:"requested_at" gorm:"column:requested_at;default:now()"`
	ApprovedBy                *int64           `json:"approved_by,omitempty" gorm:"column:approved_by"`
	ApprovedAt                *time.Time       `json:"approved_at,omitempty" gorm:"column:approved_at"`
	RejectedBy                *int64           `json:"rejected_by,omitempty" gorm:"column:rejected_by"`
	RejectedAt                *time.Time       `json:"rejected_at,omitempty" gorm:"column:rejected_at"`
	RejectionReason           *string          `json:"rejection_reason,omitempty" gorm:"column:rejection_reason"`
	Notes                     *string          `json:"notes,omitempty" gorm:"column:notes"`
	AppliedAt                 *time.Time       `json:"applied_at,omitempty" gorm:"column:applied_at"`
	CreatedAt                 time.Time        `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt                 time.Time        `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (SalaryIncrement) TableName() string {
	return "salary_increments"
}

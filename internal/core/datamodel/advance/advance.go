package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Advance is a cash advance recovered through scheduled payroll deductions.
// Amount is the immutable principal; RemainingAmount only ever decreases and
// stays within [0, Amount].
type Advance struct {
	ID                 int64           `json:"id" gorm:"primaryKey"`
	EmployeeID         int64           `json:"employee_id" gorm:"column:employee_id;not null;index"`
	Amount             decimal.Decimal `json:"amount" gorm:"column:amount;type:numeric(12,2);not null"`
	RemainingAmount    decimal.Decimal `json:"remaining_amount" gorm:"column:remaining_amount;type:numeric(12,2);not null"`
	Reason             *string         `json:"reason,omitempty" gorm:"column:reason"`
	DeductionAmount    decimal.Decimal `json:"deduction_amount" gorm:"column:deduction_amount;type:numeric(12,2)"`
	DeductionFrequency string          `json:"deduction_frequency" gorm:"column:deduction_frequency;default:monthly"`
	DeductionStartDate time.Time       `json:"deduction_start_date" gorm:"column:deduction_start_date;type:date"`
	DeductionEndDate   *time.Time      `json:"deduction_end_date,omitempty" gorm:"column:deduction_end_date;type:date"`
	Status             string          `json:"status" gorm:"column:status;default:pending"`
	RequestedBy        int64           `json:"requested_by" gorm:"column:requested_by"`
	RequestedAt        time.Time       `json:"requested_at" gorm:"column:requested_at;default:now()"`
	ApprovedBy         *int64          `json:"approved_by,omitempty" gorm:"column:approved_by"`
	ApprovedAt         *time.Time      `json:"approved_at,omitempty" gorm:"column:approved_at"`
	RejectedBy         *int64          `json:"rejected_by,omitempty" gorm:"column:rejected_by"`
	RejectedAt         *time.Time      `json:"rejected_at,omitempty" gorm:"column:rejected_at"`
	RejectionReason    *string         `json:"rejection_reason,omitempty" gorm:"column:rejection_reason"`
	Notes              *string         `json:"notes,omitempty" gorm:"column:notes"`
	CreatedAt          time.Time       `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt          time.Time       `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Advance) TableName() string {
	return "salary_advances"
}

// Repayment is one recorded recovery against an advance.
type Repayment struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	AdvanceID   int64           `json:"advance_id" gorm:"column:advance_id;not null;index"`
	Amount      decimal.Decimal `json:"amount" gorm:"column:amount;type:numeric(12,2);not null"`
	PaymentDate time.Time       `json:"payment_date" gorm:"column:payment_date;type:date;not null"`
	Notes       *string         `json:"notes,omitempty" gorm:"column:notes"`
	RecordedBy  int64           `json:"recorded_by" gorm:"column:recorded_by"`
	CreatedAt   time.Time       `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Repayment) TableName() string {
	return "advance_repayments"
}

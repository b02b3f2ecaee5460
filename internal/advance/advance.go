package advance

import (
	"time"

	advanceDatamodel "github.com/hrops/backoffice/internal/core/datamodel/advance"
	"github.com/shopspring/decimal"
)

// Advance statuses. rejected and paid are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusActive   = "active"
	StatusPaid     = "paid"
)

// Deduction frequencies.
const (
	FrequencyWeekly   = "weekly"
	FrequencyBiweekly = "biweekly"
	FrequencyMonthly  = "monthly"
)

type Advance struct {
	ID                 int64           `json:"id"`
	EmployeeID         int64           `json:"employee_id"`
	Amount             decimal.Decimal `json:"amount"`
	RemainingAmount    decimal.Decimal `json:"remaining_amount"`
	Reason             *string         `json:"reason,omitempty"`
	DeductionAmount    decimal.Decimal `json:"deduction_amount"`
	DeductionFrequency string          `json:"deduction_frequency"`
	DeductionStartDate time.Time       `json:"deduction_start_date"`
	DeductionEndDate   *time.Time      `json:"deduction_end_date,omitempty"`
	Status             string          `json:"status"`
	RequestedBy        int64           `json:"requested_by"`
	RequestedAt        time.Time       `json:"requested_at"`
	ApprovedBy         *int64          `json:"approved_by,omitempty"`
	ApprovedAt         *time.Time      `json:"approved_at,omitempty"`
	RejectedBy         *int64          `json:"rejected_by,omitempty"`
	RejectedAt         *time.Time      `json:"rejected_at,omitempty"`
	RejectionReason    *string         `json:"rejection_reason,omitempty"`
	Notes              *string         `json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func (a *Advance) CanBeApproved() bool {
	return a.Status == StatusPending
}

func (a *Advance) CanBeRejected() bool {
	return a.Status == StatusPending
}

// AcceptsDeductions reports whether the advance balance may still be drawn down.
func (a *Advance) AcceptsDeductions() bool {
	return a.Status == StatusApproved || a.Status == StatusActive
}

func (a *Advance) IsFullyRepaid() bool {
	return a.RemainingAmount.IsZero()
}

func ValidFrequency(f string) bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return true
	}
	return false
}

type Repayment struct {
	ID          int64           `json:"id"`
	AdvanceID   int64           `json:"advance_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Notes       *string         `json:"notes,omitempty"`
	RecordedBy  int64           `json:"recorded_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

func ToDataModel(a *Advance) *advanceDatamodel.Advance {
	return &advanceDatamodel.Advance{
		ID:                 a.ID,
		EmployeeID:         a.EmployeeID,
		Amount:             a.Amount,
		RemainingAmount:    a.RemainingAmount,
		Reason:             a.Reason,
		DeductionAmount:    a.DeductionAmount,
		DeductionFrequency: a.DeductionFrequency,
		DeductionStartDate: a.DeductionStartDate,
		DeductionEndDate:   a.DeductionEndDate,
		Status:             a.Status,
		RequestedBy:        a.RequestedBy,
		RequestedAt:        a.RequestedAt,
		ApprovedBy:         a.ApprovedBy,
		ApprovedAt:         a.ApprovedAt,
		RejectedBy:         a.RejectedBy,
		RejectedAt:         a.RejectedAt,
		RejectionReason:    a.RejectionReason,
		Notes:              a.Notes,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func FromDataModel(a *advanceDatamodel.Advance) *Advance {
	return &Advance{
		ID:                 a.ID,
		EmployeeID:         a.EmployeeID,
		Amount:             a.Amount,
		RemainingAmount:    a.RemainingAmount,
		Reason:             a.Reason,
		DeductionAmount:    a.DeductionAmount,
		DeductionFrequency: a.DeductionFrequency,
		DeductionStartDate: a.DeductionStartDate,
		DeductionEndDate:   a.DeductionEndDate,
		Status:             a.Status,
		RequestedBy:        a.RequestedBy,
		RequestedAt:        a.RequestedAt,
		ApprovedBy:         a.ApprovedBy,
		ApprovedAt:         a.ApprovedAt,
		RejectedBy:         a.RejectedBy,
		RejectedAt:         a.RejectedAt,
		RejectionReason:    a.RejectionReason,
		Notes:              a.Notes,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*advanceDatamodel.Advance) []*Advance {
	result := make([]*Advance, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}

func RepaymentFromDataModel(r *advanceDatamodel.Repayment) *Repayment {
	return &Repayment{
		ID:          r.ID,
		AdvanceID:   r.AdvanceID,
		Amount:      r.Amount,
		PaymentDate: r.PaymentDate,
		Notes:       r.Notes,
		RecordedBy:  r.RecordedBy,
		CreatedAt:   r.CreatedAt,
	}
}

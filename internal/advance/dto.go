package advance

import (
	"time"

	"github.com/hrops/backoffice/internal"
	"github.com/shopspring/decimal"
)

// CreateAdvanceDTO is the request payload for a new advance. The deduction
// plan is optional at request time; approvers may adjust it before approval.
type CreateAdvanceDTO struct {
	EmployeeID         int64           `json:"employee_id" validate:"required"`
	Amount             decimal.Decimal `json:"amount" validate:"required"`
	Reason             *string         `json:"reason,omitempty"`
	DeductionAmount    decimal.Decimal `json:"deduction_amount"`
	DeductionFrequency string          `json:"deduction_frequency"`
	DeductionStartDate time.Time       `json:"deduction_start_date"`
	DeductionEndDate   *time.Time      `json:"deduction_end_date,omitempty"`
	Notes              *string         `json:"notes,omitempty"`
}

func (dto CreateAdvanceDTO) Validate() error {
	if dto.EmployeeID <= 0 {
		return internal.NewValidationFieldError("employee_id", "employee_id is required", internal.ErrCodeValidationFailed)
	}
	if dto.Amount.LessThanOrEqual(decimal.Zero) {
		return internal.NewValidationFieldError("amount", "amount must be greater than 0", internal.ErrCodeInvalidAmount)
	}
	if dto.DeductionAmount.IsNegative() {
		return internal.NewValidationFieldError("deduction_amount", "deduction_amount cannot be negative", internal.ErrCodeInvalidAmount)
	}
	if dto.DeductionFrequency != "" && !ValidFrequency(dto.DeductionFrequency) {
		return internal.NewValidationFieldError("deduction_frequency", "deduction_frequency must be one of weekly, biweekly, monthly", internal.ErrCodeInvalidFrequency)
	}
	if dto.DeductionEndDate != nil && !dto.DeductionStartDate.IsZero() && dto.DeductionEndDate.Before(dto.DeductionStartDate) {
		return internal.NewValidationFieldError("deduction_end_date", "deduction_end_date cannot precede deduction_start_date", internal.ErrCodeInvalidDate)
	}
	return nil
}

// RejectAdvanceDTO carries the mandatory rejection reason.
type RejectAdvanceDTO struct {
	Reason string `json:"reason" validate:"required"`
}

func (dto RejectAdvanceDTO) Validate() error {
	if dto.Reason == "" {
		return internal.NewValidationFieldError("reason", "reason is required when rejecting an advance", internal.ErrCodeValidationFailed)
	}
	return nil
}

// ApproveAdvanceDTO carries optional approver notes.
type ApproveAdvanceDTO struct {
	Notes *string `json:"notes,omitempty"`
}

// DeductionDTO is the payload for processing a payroll deduction.
type DeductionDTO struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

func (dto DeductionDTO) Validate() error {
	if dto.Amount.LessThanOrEqual(decimal.Zero) {
		return internal.NewValidationFieldError("amount", "amount must be greater than 0", internal.ErrCodeInvalidAmount)
	}
	return nil
}

// RecordRepaymentDTO is the payload for recording a manual repayment.
type RecordRepaymentDTO struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	PaymentDate time.Time       `json:"payment_date" validate:"required"`
	Notes       *string         `json:"notes,omitempty"`
}

func (dto RecordRepaymentDTO) Validate() error {
	if dto.Amount.LessThanOrEqual(decimal.Zero) {
		return internal.NewValidationFieldError("amount", "amount must be greater than 0", internal.ErrCodeInvalidAmount)
	}
	if dto.PaymentDate.IsZero() {
		return internal.NewValidationFieldError("payment_date", "payment_date is required", internal.ErrCodeInvalidDate)
	}
	return nil
}

// ListFilter narrows advance listings.
type ListFilter struct {
	EmployeeID *int64
	Status     *string
	DateFrom   *time.Time
	DateTo     *time.Time
	AmountMin  *decimal.Decimal
	AmountMax  *decimal.Decimal
	Limit      int
	Offset     int
}

// BalanceSummary aggregates an employee's outstanding advances.
type BalanceSummary struct {
	EmployeeID            int64           `json:"employee_id"`
	TotalRemaining        decimal.Decimal `json:"total_remaining"`
	TotalMonthlyDeduction decimal.Decimal `json:"total_monthly_deduction"`
	OpenAdvances          int             `json:"open_advances"`
}

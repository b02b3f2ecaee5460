package increment

import (
	"time"

	"github.com/hrops/backoffice/internal"
	"github.com/shopspring/decimal"
)

// CreateIncrementDTO is the request payload for proposing a salary change.
// Formula variants read Percentage/Amount; manual-override variants read the
// New* fields, each falling back to the baseline when omitted.
type CreateIncrementDTO struct {
	EmployeeID            int64            `json:"employee_id" validate:"required"`
	IncrementType         Type             `json:"increment_type" validate:"required"`
	IncrementPercentage   *decimal.Decimal `json:"increment_percentage,omitempty"`
	IncrementAmount       *decimal.Decimal `json:"increment_amount,omitempty"`
	ApplyToAllowances     bool             `json:"apply_to_allowances,omitempty"`
	NewBaseSalary         *decimal.Decimal `json:"new_base_salary,omitempty"`
	NewFoodAllowance      *decimal.Decimal `json:"new_food_allowance,omitempty"`
	NewHousingAllowance   *decimal.Decimal `json:"new_housing_allowance,omitempty"`
	NewTransportAllowance *decimal.Decimal `json:"new_transport_allowance,omitempty"`
	Reason                string           `json:"reason" validate:"required"`
	EffectiveDate         time.Time        `json:"effective_date" validate:"required"`
	Notes                 *string          `json:"notes,omitempty"`
}

func (dto CreateIncrementDTO) Validate() error {
	if dto.EmployeeID <= 0 {
		return internal.NewValidationFieldError("employee_id", "employee_id is required", internal.ErrCodeValidationFailed)
	}
	if !dto.IncrementType.Valid() {
		return internal.NewValidationFieldError("increment_type",
			"increment_type must be one of percentage, amount, promotion, annual_review, performance, market_adjustment",
			internal.ErrCodeInvalidIncrementType)
	}
	if dto.IncrementType == TypePercentage {
		if dto.IncrementPercentage == nil {
			return internal.NewValidationFieldError("increment_percentage",
				"increment_percentage is required for percentage increments", internal.ErrCodeValidationFailed)
		}
		if dto.IncrementPercentage.LessThanOrEqual(decimal.Zero) {
			return internal.NewValidationFieldError("increment_percentage",
				"increment_percentage must be greater than 0", internal.ErrCodeInvalidAmount)
		}
	}
	if dto.IncrementType == TypeAmount {
		if dto.IncrementAmount == nil {
			return internal.NewValidationFieldError("increment_amount",
				"increment_amount is required for amount increments", internal.ErrCodeValidationFailed)
		}
		if dto.IncrementAmount.LessThanOrEqual(decimal.Zero) {
			return internal.NewValidationFieldError("increment_amount",
				"increment_amount must be greater than 0", internal.ErrCodeInvalidAmount)
		}
	}
	if dto.Reason == "" {
		return internal.NewValidationFieldError("reason", "reason is required", internal.ErrCodeValidationFailed)
	}
	if dto.EffectiveDate.IsZero() {
		return internal.NewValidationFieldError("effective_date", "effective_date is required", internal.ErrCodeInvalidDate)
	}
	return nil
}

// RejectIncrementDTO carries the mandatory rejection reason.
type RejectIncrementDTO struct {
	Reason string `json:"reason" validate:"required"`
}

func (dto RejectIncrementDTO) Validate() error {
	if dto.Reason == "" {
		return internal.NewValidationFieldError("reason", "reason is required when rejecting a salary increment", internal.ErrCodeValidationFailed)
	}
	return nil
}

// ListFilter narrows increment listings.
type ListFilter struct {
	EmployeeID        *int64
	Status            *string
	IncrementType     *Type
	EffectiveDateFrom *time.Time
	EffectiveDateTo   *time.Time
	RequestedBy       *int64
	Limit             int
	Offset            int
}

// Statistics summarizes increments over an optional creation-date window.
// Averages over zero matching rows are 0, never an error.
type Statistics struct {
	TotalIncrements            int64                    `json:"total_increments"`
	PendingIncrements          int64                    `json:"pending_increments"`
	ApprovedIncrements         int64                    `json:"approved_increments"`
	RejectedIncrements         int64                    `json:"rejected_increments"`
	AppliedIncrements          int64                    `json:"applied_increments"`
	TotalIncrementAmount       decimal.Decimal          `json:"total_increment_amount"`
	AverageIncrementPercentage decimal.Decimal          `json:"average_increment_percentage"`
	ByType                     map[Type]TypeBreakdown   `json:"by_type"`
}

type TypeBreakdown struct {
	Count             int64           `json:"count"`
	AveragePercentage decimal.Decimal `json:"avg_percentage"`
}

// ProjectedAnnualCost estimates the yearly cost of all pending increments
// (monthly delta x 12).
type ProjectedAnnualCost struct {
	TotalPendingRequests int64                       `json:"total_pending_requests"`
	TotalAnnualIncrease  decimal.Decimal             `json:"total_annual_increase"`
	ByType               map[Type]AnnualCostByType   `json:"by_type"`
}

type AnnualCostByType struct {
	Count           int64           `json:"count"`
	TotalAnnualCost decimal.Decimal `json:"total_annual_cost"`
}

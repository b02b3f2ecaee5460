package increment

import (
	"time"

	"github.com/hrops/backoffice/internal"
	incrementDatamodel "github.com/hrops/backoffice/internal/core/datamodel/increment"
	"github.com/shopspring/decimal"
)

// SalaryIncrement statuses. applied and rejected are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusApplied  = "applied"
)

// Type is the closed set of increment variants. Each variant has exactly one
// salary computation strategy.
type Type string

const (
	TypePercentage       Type = "percentage"
	TypeAmount           Type = "amount"
	TypePromotion        Type = "promotion"
	TypeAnnualReview     Type = "annual_review"
	TypePerformance      Type = "performance"
	TypeMarketAdjustment Type = "market_adjustment"
)

func (t Type) Valid() bool {
	switch t {
	case TypePercentage, TypeAmount, TypePromotion, TypeAnnualReview, TypePerformance, TypeMarketAdjustment:
		return true
	}
	return false
}

// IsManualOverride reports whether the variant takes its new values directly
// from the request instead of a formula.
func (t Type) IsManualOverride() bool {
	switch t {
	case TypePromotion, TypeAnnualReview, TypePerformance, TypeMarketAdjustment:
		return true
	}
	return false
}

// SalarySnapshot is one complete compensation tuple.
type SalarySnapshot struct {
	BaseSalary         decimal.Decimal `json:"base_salary"`
	FoodAllowance      decimal.Decimal `json:"food_allowance"`
	HousingAllowance   decimal.Decimal `json:"housing_allowance"`
	TransportAllowance decimal.Decimal `json:"transport_allowance"`
}

func (s SalarySnapshot) Total() decimal.Decimal {
	return s.BaseSalary.Add(s.FoodAllowance).Add(s.HousingAllowance).Add(s.TransportAllowance)
}

// ComputeNewSalary derives the proposed compensation from the baseline
// according to the increment variant:
//
//   - percentage: base scaled by (1 + pct/100); allowances scaled too only
//     when apply_to_allowances is set, otherwise carried over.
//   - amount: flat addition to base; allowances carried over.
//   - promotion/annual_review/performance/market_adjustment: new values come
//     from the request, falling back to the baseline per field.
func ComputeNewSalary(baseline SalarySnapshot, dto CreateIncrementDTO) (SalarySnapshot, error) {
	switch dto.IncrementType {
	case TypePercentage:
		if dto.IncrementPercentage == nil {
			return SalarySnapshot{}, internal.NewValidationFieldError("increment_percentage",
				"increment_percentage is required for percentage increments", internal.ErrCodeValidationFailed)
		}
		return applyPercentage(baseline, *dto.IncrementPercentage, dto.ApplyToAllowances), nil

	case TypeAmount:
		if dto.IncrementAmount == nil {
			return SalarySnapshot{}, internal.NewValidationFieldError("increment_amount",
				"increment_amount is required for amount increments", internal.ErrCodeValidationFailed)
		}
		return applyAmount(baseline, *dto.IncrementAmount), nil

	case TypePromotion, TypeAnnualReview, TypePerformance, TypeMarketAdjustment:
		return applyOverride(baseline, dto), nil

	default:
		return SalarySnapshot{}, internal.NewValidationFieldError("increment_type",
			"unknown increment type", internal.ErrCodeInvalidIncrementType)
	}
}

func applyPercentage(baseline SalarySnapshot, pct decimal.Decimal, applyToAllowances bool) SalarySnapshot {
	factor := decimal.NewFromInt(1).Add(pct.Div(decimal.NewFromInt(100)))

	next := SalarySnapshot{
		BaseSalary:         baseline.BaseSalary.Mul(factor).Round(2),
		FoodAllowance:      baseline.FoodAllowance,
		HousingAllowance:   baseline.HousingAllowance,
		TransportAllowance: baseline.TransportAllowance,
	}
	if applyToAllowances {
		next.FoodAllowance = baseline.FoodAllowance.Mul(factor).Round(2)
		next.HousingAllowance = baseline.HousingAllowance.Mul(factor).Round(2)
		next.TransportAllowance = baseline.TransportAllowance.Mul(factor).Round(2)
	}
	return next
}

func applyAmount(baseline SalarySnapshot, amount decimal.Decimal) SalarySnapshot {
	next := baseline
	next.BaseSalary = baseline.BaseSalary.Add(amount)
	return next
}

func applyOverride(baseline SalarySnapshot, dto CreateIncrementDTO) SalarySnapshot {
	next := baseline
	if dto.NewBaseSalary != nil {
		next.BaseSalary = *dto.NewBaseSalary
	}
	if dto.NewFoodAllowance != nil {
		next.FoodAllowance = *dto.NewFoodAllowance
	}
	if dto.NewHousingAllowance != nil {
		next.HousingAllowance = *dto.NewHousingAllowance
	}
	if dto.NewTransportAllowance != nil {
		next.TransportAllowance = *dto.NewTransportAllowance
	}
	return next
}

type SalaryIncrement struct {
	ID              int64            `json:"id"`
	EmployeeID      int64            `json:"employee_id"`
	CurrentSalary   SalarySnapshot   `json:"current_salary"`
	NewSalary       SalarySnapshot   `json:"new_salary"`
	IncrementType   Type             `json:"increment_type"`
	Percentage      *decimal.Decimal `json:"increment_percentage,omitempty"`
	Amount          *decimal.Decimal `json:"increment_amount,omitempty"`
	Reason          string           `json:"reason"`
	EffectiveDate   time.Time        `json:"effective_date"`
	Status          string           `json:"status"`
	RequestedBy     int64            `json:"requested_by"`
	RequestedAt     time.Time        `json:"requested_at"`
	ApprovedBy      *int64           `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time       `json:"approved_at,omitempty"`
	RejectedBy      *int64           `json:"rejected_by,omitempty"`
	RejectedAt      *time.Time       `json:"rejected_at,omitempty"`
	RejectionReason *string          `json:"rejection_reason,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	AppliedAt       *time.Time       `json:"applied_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (i *SalaryIncrement) CanBeApproved() bool {
	return i.Status == StatusPending
}

func (i *SalaryIncrement) CanBeRejected() bool {
	return i.Status == StatusPending
}

func (i *SalaryIncrement) CanBeApplied() bool {
	return i.Status == StatusApproved
}

// MonthlyIncrease is the total compensation delta introduced by the increment.
func (i *SalaryIncrement) MonthlyIncrease() decimal.Decimal {
	return i.NewSalary.Total().Sub(i.CurrentSalary.Total())
}

func ToDataModel(i *SalaryIncrement) *incrementDatamodel.SalaryIncrement {
	return &incrementDatamodel.SalaryIncrement{
		ID:                        i.ID,
		EmployeeID:                i.EmployeeID,
		CurrentBaseSalary:         i.CurrentSalary.BaseSalary,
		CurrentFoodAllowance:      i.CurrentSalary.FoodAllowance,
		CurrentHousingAllowance:   i.CurrentSalary.HousingAllowance,
		CurrentTransportAllowance: i.CurrentSalary.TransportAllowance,
		NewBaseSalary:             i.NewSalary.BaseSalary,
		NewFoodAllowance:          i.NewSalary.FoodAllowance,
		NewHousingAllowance:       i.NewSalary.HousingAllowance,
		NewTransportAllowance:     i.NewSalary.TransportAllowance,
		IncrementType:             string(i.IncrementType),
		IncrementPercentage:       i.Percentage,
		IncrementAmount:           i.Amount,
		Reason:                    i.Reason,
		EffectiveDate:             i.EffectiveDate,
		Status:                    i.Status,
		RequestedBy:               i.RequestedBy,
		RequestedAt:               i.RequestedAt,
		ApprovedBy:                i.ApprovedBy,
		ApprovedAt:                i.ApprovedAt,
		RejectedBy:                i.RejectedBy,
		RejectedAt:                i.RejectedAt,
		RejectionReason:           i.RejectionReason,
		Notes:                     i.Notes,
		AppliedAt:                 i.AppliedAt,
		CreatedAt:                 i.CreatedAt,
		UpdatedAt:                 i.UpdatedAt,
	}
}

func FromDataModel(i *incrementDatamodel.SalaryIncrement) *SalaryIncrement {
	return &SalaryIncrement{
		ID:         i.ID,
		EmployeeID: i.EmployeeID,
		CurrentSalary: SalarySnapshot{
			BaseSalary:         i.CurrentBaseSalary,
			FoodAllowance:      i.CurrentFoodAllowance,
			HousingAllowance:   i.CurrentHousingAllowance,
			TransportAllowance: i.CurrentTransportAllowance,
		},
		NewSalary: SalarySnapshot{
			BaseSalary:         i.NewBaseSalary,
			FoodAllowance:      i.NewFoodAllowance,
			HousingAllowance:   i.NewHousingAllowance,
			TransportAllowance: i.NewTransportAllowance,
		},
		IncrementType:   Type(i.IncrementType),
		Percentage:      i.IncrementPercentage,
		Amount:          i.IncrementAmount,
		Reason:          i.Reason,
		EffectiveDate:   i.EffectiveDate,
		Status:          i.Status,
		RequestedBy:     i.RequestedBy,
		RequestedAt:     i.RequestedAt,
		ApprovedBy:      i.ApprovedBy,
		ApprovedAt:      i.ApprovedAt,
		RejectedBy:      i.RejectedBy,
		RejectedAt:      i.RejectedAt,
		RejectionReason: i.RejectionReason,
		Notes:           i.Notes,
		AppliedAt:       i.AppliedAt,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*incrementDatamodel.SalaryIncrement) []*SalaryIncrement {
	result := make([]*SalaryIncrement, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}

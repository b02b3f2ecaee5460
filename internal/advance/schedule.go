package advance

import (
	"time"

	"github.com/hrops/backoffice/pkg/timeutil"
	"github.com/shopspring/decimal"
)

// ScheduleEntry is one projected deduction installment.
type ScheduleEntry struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// CalculateDeductionSchedule projects the remaining installments for an
// advance. It is a pure function over the advance's current state: each call
// walks forward from deduction_start_date against remaining_amount, so a
// schedule requested after repayments reflects them automatically.
//
// Each entry emits min(deduction_amount, remaining). The walk stops when the
// balance is exhausted or, when an end date is set, before the first date past
// it. Absent end-date truncation the emitted amounts sum to the remaining
// balance exactly.
func CalculateDeductionSchedule(a *Advance) []ScheduleEntry {
	if a.DeductionAmount.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	remaining := a.RemainingAmount
	date := timeutil.DateOnly(a.DeductionStartDate)

	var entries []ScheduleEntry
	for remaining.GreaterThan(decimal.Zero) {
		if a.DeductionEndDate != nil && date.After(timeutil.DateOnly(*a.DeductionEndDate)) {
			break
		}

		amount := decimal.Min(a.DeductionAmount, remaining)
		entries = append(entries, ScheduleEntry{Date: date, Amount: amount})
		remaining = remaining.Sub(amount)

		date = nextDeductionDate(date, a.DeductionFrequency)
	}

	return entries
}

func nextDeductionDate(date time.Time, frequency string) time.Time {
	switch frequency {
	case FrequencyWeekly:
		return timeutil.AddDays(date, 7)
	case FrequencyBiweekly:
		return timeutil.AddDays(date, 14)
	default:
		return timeutil.AddMonths(date, 1)
	}
}

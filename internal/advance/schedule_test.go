package advance_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/hrops/backoffice/internal/advance"
)

var _ = Describe("CalculateDeductionSchedule", func() {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	money := func(s string) decimal.Decimal {
		d, err := decimal.NewFromString(s)
		Expect(err).ToNot(HaveOccurred())
		return d
	}

	Context("with a monthly plan that divides evenly", func() {
		It("should emit equal installments summing to the balance", func() {
			a := &advance.Advance{
				Amount:             money("3000"),
				RemainingAmount:    money("3000"),
				DeductionAmount:    money("500"),
				DeductionFrequency: advance.FrequencyMonthly,
				DeductionStartDate: date(2024, time.January, 1),
			}

			schedule := advance.CalculateDeductionSchedule(a)
			Expect(schedule).To(HaveLen(6))
			Expect(schedule[0].Date).To(Equal(date(2024, time.January, 1)))
			Expect(schedule[5].Date).To(Equal(date(2024, time.June, 1)))

			total := decimal.Zero
			for _, entry := range schedule {
				Expect(entry.Amount).To(Equal(money("500")))
				total = total.Add(entry.Amount)
			}
			Expect(total).To(Equal(money("3000")))
		})
	})

	Context("with a balance that does not divide evenly", func() {
		It("should emit a smaller final installment", func() {
			a := &advance.Advance{
				Amount:             money("1250"),
				RemainingAmount:    money("1250"),
				DeductionAmount:    money("500"),
				DeductionFrequency: advance.FrequencyMonthly,
				DeductionStartDate: date(2024, time.January, 1),
			}

			schedule := advance.CalculateDeductionSchedule(a)
			Expect(schedule).To(HaveLen(3))
			Expect(schedule[2].Amount).To(Equal(money("250")))
		})
	})

	Context("with weekly and biweekly frequencies", func() {
		It("should step 7 days for weekly", func() {
			a := &advance.Advance{
				RemainingAmount:    money("300"),
				DeductionAmount:    money("100"),
				DeductionFrequency: advance.FrequencyWeekly,
				DeductionStartDate: date(2024, time.January, 1),
			}

			schedule := advance.CalculateDeductionSchedule(a)
			Expect(schedule).To(HaveLen(3))
			Expect(schedule[1].Date).To(Equal(date(2024, time.January, 8)))
			Expect(schedule[2].Date).To(Equal(date(2024, time.January, 15)))
		})

		It("should step 14 days for biweekly", func() {
			a := &advance.Advance{
				RemainingAmount:    money("200"),
				DeductionAmount:    money("100"),
				DeductionFrequency: advance.FrequencyBiweekly,
				DeductionStartDate: date(2024, time.January, 1),
			}

			schedule := advance.CalculateDeductionSchedule(a)
			Expect(schedule).To(HaveLen(2))
			Expect(schedule[1].Date).To(Equal(date(2024, time.January, 15)))
		})
	})

	Context("with an end date before the balance is exhausted", func() {
		It("should truncate the schedule at the end date", func() {
			end := date(2024, time.March, 1)
			a := &advance.Advance{
				RemainingAmount:    money("3000"),
				DeductionAmount:    money("500"),
				DeductionFrequency: advance.FrequencyMonthly,
				DeductionStartDate: date(2024, time.January, 1),
				DeductionEndDate:   &end,
			}

			schedule := advance.CalculateDeductionSchedule(a)
			Expect(schedule).To(HaveLen(3))
			Expect(schedule[2].Date).To(Equal(end))
		})
	})

	Context("with no deduction amount configured", func() {
		It("should return an empty schedule", func() {
			a := &advance.Advance{
				RemainingAmount:    money("3000"),
				DeductionFrequency: advance.FrequencyMonthly,
				DeductionStartDate: date(2024, time.January, 1),
			}

			Expect(advance.CalculateDeductionSchedule(a)).To(BeEmpty())
		})
	})

	Context("with strictly increasing dates", func() {
		It("should never emit out-of-order or oversized entries", func() {
			a := &advance.Advance{
				RemainingAmount:    money("1700"),
				DeductionAmount:    money("400"),
				DeductionFrequency: advance.FrequencyMonthly,
				DeductionStartDate: date(2024, time.October, 31),
			}

			schedule := advance.CalculateDeductionSchedule(a)
			for i, entry := range schedule {
				Expect(entry.Amount.GreaterThan(money("400"))).To(BeFalse())
				if i > 0 {
					Expect(entry.Date.After(schedule[i-1].Date)).To(BeTrue())
				}
			}
		})
	})
})

package increment_test

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/hrops/backoffice/internal"
	"github.com/hrops/backoffice/internal/core/events"
	"github.com/hrops/backoffice/internal/employee"
	"github.com/hrops/backoffice/internal/increment"
	"github.com/hrops/backoffice/pkg/timeutil"
)

func TestIncrementService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Increment Service Suite")
}

// mockIncrementRepository enforces the same guarded transitions as the
// postgres store: Approve/Reject require pending, Apply requires approved.
type mockIncrementRepository struct {
	increments map[int64]*increment.SalaryIncrement
	nextID     int64

	createError  error
	getError     error
	dueError     error
	pendingError error
	applyErrors  map[int64]error
}

func newMockIncrementRepository() *mockIncrementRepository {
	return &mockIncrementRepository{
		increments:  make(map[int64]*increment.SalaryIncrement),
		nextID:      1,
		applyErrors: make(map[int64]error),
	}
}

func (m *mockIncrementRepository) seed(inc *increment.SalaryIncrement) *increment.SalaryIncrement {
	inc.ID = m.nextID
	m.nextID++
	m.increments[inc.ID] = inc
	return inc
}

func (m *mockIncrementRepository) Create(inc *increment.SalaryIncrement) error {
	if m.createError != nil {
		return m.createError
	}
	m.seed(inc)
	return nil
}

func (m *mockIncrementRepository) GetByID(id int64) (*increment.SalaryIncrement, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	inc, ok := m.increments[id]
	if !ok {
		return nil, internal.ErrIncrementNotFound
	}
	copied := *inc
	return &copied, nil
}

func (m *mockIncrementRepository) GetByEmployeeID(employeeID int64) ([]*increment.SalaryIncrement, error) {
	var result []*increment.SalaryIncrement
	for _, inc := range m.increments {
		if inc.EmployeeID == employeeID {
			result = append(result, inc)
		}
	}
	return result, nil
}

func (m *mockIncrementRepository) List(filter increment.ListFilter) ([]*increment.SalaryIncrement, error) {
	var result []*increment.SalaryIncrement
	for _, inc := range m.increments {
		result = append(result, inc)
	}
	return result, nil
}

func (m *mockIncrementRepository) GetDue(asOf time.Time) ([]*increment.SalaryIncrement, error) {
	if m.dueError != nil {
		return nil, m.dueError
	}
	var due []*increment.SalaryIncrement
	for _, inc := range m.increments {
		if inc.Status == increment.StatusApproved && timeutil.OnOrBefore(inc.EffectiveDate, asOf) {
			due = append(due, inc)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].EffectiveDate.Equal(due[j].EffectiveDate) {
			return due[i].EffectiveDate.Before(due[j].EffectiveDate)
		}
		return due[i].ID < due[j].ID
	})
	return due, nil
}

func (m *mockIncrementRepository) GetPending() ([]*increment.SalaryIncrement, error) {
	if m.pendingError != nil {
		return nil, m.pendingError
	}
	var pending []*increment.SalaryIncrement
	for _, inc := range m.increments {
		if inc.Status == increment.StatusPending {
			pending = append(pending, inc)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID < pending[j].ID })
	return pending, nil
}

func (m *mockIncrementRepository) Approve(id, approverID int64, at time.Time) error {
	inc, ok := m.increments[id]
	if !ok {
		return internal.ErrIncrementNotFound
	}
	if inc.Status != increment.StatusPending {
		return internal.ErrInvalidIncrementStatus
	}
	inc.Status = increment.StatusApproved
	inc.ApprovedBy = &approverID
	inc.ApprovedAt = &at
	return nil
}

func (m *mockIncrementRepository) Reject(id, rejectorID int64, reason string, at time.Time) error {
	inc, ok := m.increments[id]
	if !ok {
		return internal.ErrIncrementNotFound
	}
	if inc.Status != increment.StatusPending {
		return internal.ErrInvalidIncrementStatus
	}
	inc.Status = increment.StatusRejected
	inc.RejectedBy = &rejectorID
	inc.RejectedAt = &at
	inc.RejectionReason = &reason
	return nil
}

func (m *mockIncrementRepository) Apply(id int64, at time.Time) error {
	if err, ok := m.applyErrors[id]; ok {
		return err
	}
	inc, ok := m.increments[id]
	if !ok {
		return internal.ErrIncrementNotFound
	}
	if inc.Status != increment.StatusApproved {
		return internal.ErrInvalidIncrementStatus
	}
	inc.Status = increment.StatusApplied
	inc.AppliedAt = &at
	return nil
}

func (m *mockIncrementRepository) Statistics(from, to *time.Time) (*increment.Statistics, error) {
	return &increment.Statistics{ByType: map[increment.Type]increment.TypeBreakdown{}}, nil
}

type mockEmployeeReader struct {
	employees map[int64]*employee.Employee
	salaries  map[int64]*employee.SalaryRecord
	history   map[int64][]*employee.SalaryRecord

	salaryError error
}

func newMockEmployeeReader() *mockEmployeeReader {
	return &mockEmployeeReader{
		employees: make(map[int64]*employee.Employee),
		salaries:  make(map[int64]*employee.SalaryRecord),
		history:   make(map[int64][]*employee.SalaryRecord),
	}
}

func (m *mockEmployeeReader) GetByID(id int64) (*employee.Employee, error) {
	emp, ok := m.employees[id]
	if !ok {
		return nil, internal.ErrEmployeeNotFound
	}
	return emp, nil
}

func (m *mockEmployeeReader) CurrentSalary(employeeID int64, asOf time.Time) (*employee.SalaryRecord, error) {
	if m.salaryError != nil {
		return nil, m.salaryError
	}
	return m.salaries[employeeID], nil
}

func (m *mockEmployeeReader) SalaryHistory(employeeID int64) ([]*employee.SalaryRecord, error) {
	return m.history[employeeID], nil
}

var _ = Describe("Increment Service", func() {
	var (
		repo      *mockIncrementRepository
		employees *mockEmployeeReader
		service   *increment.Service
		clock     timeutil.FixedClock
		ctx       context.Context
	)

	money := func(s string) decimal.Decimal {
		d, err := decimal.NewFromString(s)
		Expect(err).NotTo(HaveOccurred())
		return d
	}

	snapshot := func(base, food, housing, transport string) increment.SalarySnapshot {
		return increment.SalarySnapshot{
			BaseSalary:         money(base),
			FoodAllowance:      money(food),
			HousingAllowance:   money(housing),
			TransportAllowance: money(transport),
		}
	}

	seedApproved := func(employeeID int64, effective time.Time, newBase string) *increment.SalaryIncrement {
		approver := int64(9)
		now := clock.Now()
		return repo.seed(&increment.SalaryIncrement{
			EmployeeID:    employeeID,
			CurrentSalary: snapshot("1000", "100", "300", "50"),
			NewSalary:     snapshot(newBase, "100", "300", "50"),
			IncrementType: increment.TypeAmount,
			Reason:        "annual adjustment",
			EffectiveDate: effective,
			Status:        increment.StatusApproved,
			RequestedBy:   7,
			RequestedAt:   now,
			ApprovedBy:    &approver,
			ApprovedAt:    &now,
		})
	}

	BeforeEach(func() {
		repo = newMockIncrementRepository()
		employees = newMockEmployeeReader()
		clock = timeutil.NewFixedClock(2024, time.March, 15)
		ctx = context.Background()

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus := events.NewEventBus(logger)
		service = increment.NewService(repo, employees, bus, clock, logger)

		employees.employees[1] = &employee.Employee{
			ID:          1,
			FileNumber:  "EMP-0001",
			FirstName:   "Amira",
			LastName:    "Hassan",
			BasicSalary: money("1000"),
			Status:      "active",
		}
	})

	Describe("CreateIncrement", func() {
		Context("percentage increments", func() {
			It("Given a 10 percent raise on a 1000 base, When created, Then the new base is 1100 and allowances are untouched", func() {
				employees.salaries[1] = &employee.SalaryRecord{
					EmployeeID:         1,
					BaseSalary:         money("1000"),
					FoodAllowance:      money("100"),
					HousingAllowance:   money("300"),
					TransportAllowance: money("50"),
				}

				pct := money("10")
				inc, err := service.CreateIncrement(increment.CreateIncrementDTO{
					EmployeeID:          1,
					IncrementType:       increment.TypePercentage,
					IncrementPercentage: &pct,
					Reason:              "merit raise",
					EffectiveDate:       time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
				}, 7)

				Expect(err).NotTo(HaveOccurred())
				Expect(inc.Status).To(Equal(increment.StatusPending))
				Expect(inc.NewSalary.BaseSalary.Equal(money("1100"))).To(BeTrue())
				Expect(inc.NewSalary.FoodAllowance.Equal(money("100"))).To(BeTrue())
				Expect(inc.NewSalary.HousingAllowance.Equal(money("300"))).To(BeTrue())
				Expect(inc.NewSalary.TransportAllowance.Equal(money("50"))).To(BeTrue())
				Expect(inc.CurrentSalary.BaseSalary.Equal(money("1000"))).To(BeTrue())
				Expect(inc.RequestedBy).To(Equal(int64(7)))
			})

			It("scales allowances too when apply_to_allowances is set", func() {
				employees.salaries[1] = &employee.SalaryRecord{
					EmployeeID:         1,
					BaseSalary:         money("2000"),
					FoodAllowance:      money("200"),
					HousingAllowance:   money("600"),
					TransportAllowance: money("100"),
				}

				pct := money("5")
				inc, err := service.CreateIncrement(increment.CreateIncrementDTO{
					EmployeeID:          1,
					IncrementType:       increment.TypePercentage,
					IncrementPercentage: &pct,
					ApplyToAllowances:   true,
					Reason:              "cost of living",
					EffectiveDate:       time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
				}, 7)

				Expect(err).NotTo(HaveOccurred())
				Expect(inc.NewSalary.BaseSalary.Equal(money("2100"))).To(BeTrue())
				Expect(inc.NewSalary.FoodAllowance.Equal(money("210"))).To(BeTrue())
				Expect(inc.NewSalary.HousingAllowance.Equal(money("630"))).To(BeTrue())
				Expect(inc.NewSalary.TransportAllowance.Equal(money("105"))).To(BeTrue())
			})

			It("rejects a percentage increment without a percentage", func() {
				_, err := service.CreateIncrement(increment.CreateIncrementDTO{
					EmployeeID:    1,
					IncrementType: increment.TypePercentage,
					Reason:        "merit raise",
					EffectiveDate: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
				}, 7)

				Expect(err).To(HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			})
		})

		Context("baseline resolution", func() {
			It("falls back to the employee's basic salary with zero allowances when no salary record exists", func() {
				amount := money("500")
				inc, err := service.CreateIncrement(increment.CreateIncrementDTO{
					EmployeeID:      1,
					IncrementType:   increment.TypeAmount,
					IncrementAmount: &amount,
					Reason:          "retention",
					EffectiveDate:   time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
				}, 7)

				Expect(err).NotTo(HaveOccurred())
				Expect(inc.CurrentSalary.BaseSalary.Equal(money("1000"))).To(BeTrue())
				Expect(inc.CurrentSalary.FoodAllowance.IsZero()).To(BeTrue())
				Expect(inc.CurrentSalary.HousingAllowance.IsZero()).To(BeTrue())
				Expect(inc.CurrentSalary.TransportAllowance.IsZero()).To(BeTrue())
				Expect(inc.NewSalary.BaseSalary.Equal(money("1500"))).To(BeTrue())
			})

			It("propagates a salary lookup failure", func() {
				employees.salaryError = internal.NewInternalError("salary query failed", nil)

				amount := money("500")
				_, err := service.CreateIncrement(increment.CreateIncrementDTO{
					EmployeeID:      1,
					IncrementType:   increment.TypeAmount,
					IncrementAmount: &amount,
					Reason:          "retention",
					EffectiveDate:   time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
				}, 7)

				Expect(err).To(HaveOccurred())
			})
		})

		Context("manual override increments", func() {
			It("takes new values from the request and falls back to the baseline per field", func() {
				employees.salaries[1] = &employee.SalaryRecord{
					EmployeeID:         1,
					BaseSalary:         money("1000"),
					FoodAllowance:      money("100"),
					HousingAllowance:   money("300"),
					TransportAllowance: money("50"),
				}

				newBase := money("1400")
				newHousing := money("450")
				inc, err := service.CreateIncrement(increment.CreateIncrementDTO{
					EmployeeID:          1,
					IncrementType:       increment.TypePromotion,
					NewBaseSalary:       &newBase,
					NewHousingAllowance: &newHousing,
					Reason:              "promotion to senior",
					EffectiveDate:       time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
				}, 7)

				Expect(err).NotTo(HaveOccurred())
				Expect(inc.NewSalary.BaseSalary.Equal(money("1400"))).To(BeTrue())
				Expect(inc.NewSalary.HousingAllowance.Equal(money("450"))).To(BeTrue())
				Expect(inc.NewSalary.FoodAllowance.Equal(money("100"))).To(BeTrue())
				Expect(inc.NewSalary.TransportAllowance.Equal(money("50"))).To(BeTrue())
			})
		})

		It("rejects an unknown increment type", func() {
			_, err := service.CreateIncrement(increment.CreateIncrementDTO{
				EmployeeID:    1,
				IncrementType: increment.Type("bonus"),
				Reason:        "none",
				EffectiveDate: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
			}, 7)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("fails for an unknown employee", func() {
			amount := money("500")
			_, err := service.CreateIncrement(increment.CreateIncrementDTO{
				EmployeeID:      99,
				IncrementType:   increment.TypeAmount,
				IncrementAmount: &amount,
				Reason:          "retention",
				EffectiveDate:   time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
			}, 7)

			Expect(err).To(MatchError(internal.ErrEmployeeNotFound))
		})
	})

	Describe("ApproveIncrement", func() {
		It("Given a future effective date, When approved, Then the increment waits as approved", func() {
			inc := repo.seed(&increment.SalaryIncrement{
				EmployeeID:    1,
				CurrentSalary: snapshot("1000", "100", "300", "50"),
				NewSalary:     snapshot("1100", "100", "300", "50"),
				IncrementType: increment.TypePercentage,
				Reason:        "merit raise",
				EffectiveDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
				Status:        increment.StatusPending,
				RequestedBy:   7,
				RequestedAt:   clock.Now(),
			})

			result, err := service.ApproveIncrement(ctx, inc.ID, 9)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Status).To(Equal(increment.StatusApproved))
			Expect(result.AppliedAt).To(BeNil())
			Expect(*result.ApprovedBy).To(Equal(int64(9)))
		})

		It("Given an effective date that already passed, When approved, Then it is applied in the same call", func() {
			inc := repo.seed(&increment.SalaryIncrement{
				EmployeeID:    1,
				CurrentSalary: snapshot("1000", "100", "300", "50"),
				NewSalary:     snapshot("1100", "100", "300", "50"),
				IncrementType: increment.TypePercentage,
				Reason:        "merit raise",
				EffectiveDate: time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC),
				Status:        increment.StatusPending,
				RequestedBy:   7,
				RequestedAt:   clock.Now(),
			})

			result, err := service.ApproveIncrement(ctx, inc.ID, 9)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Status).To(Equal(increment.StatusApplied))
			Expect(result.AppliedAt).NotTo(BeNil())
		})

		It("applies immediately when the effective date is today", func() {
			inc := repo.seed(&increment.SalaryIncrement{
				EmployeeID:    1,
				CurrentSalary: snapshot("1000", "100", "300", "50"),
				NewSalary:     snapshot("1100", "100", "300", "50"),
				IncrementType: increment.TypePercentage,
				Reason:        "merit raise",
				EffectiveDate: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
				Status:        increment.StatusPending,
				RequestedBy:   7,
				RequestedAt:   clock.Now(),
			})

			result, err := service.ApproveIncrement(ctx, inc.ID, 9)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Status).To(Equal(increment.StatusApplied))
		})

		It("refuses to approve an already applied increment", func() {
			inc := seedApproved(1, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), "1500")
			inc.Status = increment.StatusApplied

			_, err := service.ApproveIncrement(ctx, inc.ID, 9)

			Expect(err).To(MatchError(internal.ErrInvalidIncrementStatus))
		})

		It("fails when the increment does not exist", func() {
			_, err := service.ApproveIncrement(ctx, 42, 9)

			Expect(err).To(MatchError(internal.ErrIncrementNotFound))
		})
	})

	Describe("RejectIncrement", func() {
		It("records the rejector and reason", func() {
			inc := repo.seed(&increment.SalaryIncrement{
				EmployeeID:    1,
				CurrentSalary: snapshot("1000", "100", "300", "50"),
				NewSalary:     snapshot("1100", "100", "300", "50"),
				IncrementType: increment.TypePercentage,
				Reason:        "merit raise",
				EffectiveDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
				Status:        increment.StatusPending,
				RequestedBy:   7,
				RequestedAt:   clock.Now(),
			})

			result, err := service.RejectIncrement(ctx, inc.ID, 9, increment.RejectIncrementDTO{Reason: "budget freeze"})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Status).To(Equal(increment.StatusRejected))
			Expect(*result.RejectedBy).To(Equal(int64(9)))
			Expect(*result.RejectionReason).To(Equal("budget freeze"))
		})

		It("requires a reason", func() {
			_, err := service.RejectIncrement(ctx, 1, 9, increment.RejectIncrementDTO{})

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("refuses to reject an approved increment", func() {
			inc := seedApproved(1, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), "1500")

			_, err := service.RejectIncrement(ctx, inc.ID, 9, increment.RejectIncrementDTO{Reason: "late"})

			Expect(err).To(MatchError(internal.ErrInvalidIncrementStatus))
		})
	})

	Describe("Apply", func() {
		It("refuses to re-apply an applied increment", func() {
			inc := seedApproved(1, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), "1500")

			_, err := service.Apply(ctx, inc.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Apply(ctx, inc.ID)
			Expect(err).To(MatchError(internal.ErrInvalidIncrementStatus))
		})

		It("refuses to apply a pending increment", func() {
			inc := repo.seed(&increment.SalaryIncrement{
				EmployeeID:    1,
				CurrentSalary: snapshot("1000", "100", "300", "50"),
				NewSalary:     snapshot("1100", "100", "300", "50"),
				IncrementType: increment.TypePercentage,
				Reason:        "merit raise",
				EffectiveDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
				Status:        increment.StatusPending,
				RequestedBy:   7,
				RequestedAt:   clock.Now(),
			})

			_, err := service.Apply(ctx, inc.ID)

			Expect(err).To(MatchError(internal.ErrInvalidIncrementStatus))
		})
	})

	Describe("ApplyDueIncrements", func() {
		It("Given three due increments with one failing, When swept, Then the other two are applied and the failure is skipped", func() {
			first := seedApproved(1, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), "1500")
			second := seedApproved(2, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), "1600")
			third := seedApproved(3, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), "1700")
			repo.applyErrors[second.ID] = internal.NewInternalError("salary write failed", nil)

			applied, err := service.ApplyDueIncrements(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(applied).To(HaveLen(2))
			Expect(repo.increments[first.ID].Status).To(Equal(increment.StatusApplied))
			Expect(repo.increments[second.ID].Status).To(Equal(increment.StatusApproved))
			Expect(repo.increments[third.ID].Status).To(Equal(increment.StatusApplied))
		})

		It("skips increments whose effective date has not arrived", func() {
			due := seedApproved(1, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), "1500")
			future := seedApproved(2, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), "1600")

			applied, err := service.ApplyDueIncrements(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(applied).To(HaveLen(1))
			Expect(applied[0].ID).To(Equal(due.ID))
			Expect(repo.increments[future.ID].Status).To(Equal(increment.StatusApproved))
		})

		It("returns an empty slice when nothing is due", func() {
			applied, err := service.ApplyDueIncrements(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(applied).To(BeEmpty())
		})

		It("propagates a load failure", func() {
			repo.dueError = internal.NewInternalError("query failed", nil)

			_, err := service.ApplyDueIncrements(ctx)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetProjectedAnnualCost", func() {
		It("sums twelve months of each pending delta and groups by type", func() {
			repo.seed(&increment.SalaryIncrement{
				EmployeeID:    1,
				CurrentSalary: snapshot("1000", "100", "300", "50"),
				NewSalary:     snapshot("1100", "100", "300", "50"),
				IncrementType: increment.TypePercentage,
				Status:        increment.StatusPending,
				EffectiveDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			})
			repo.seed(&increment.SalaryIncrement{
				EmployeeID:    2,
				CurrentSalary: snapshot("2000", "0", "0", "0"),
				NewSalary:     snapshot("2250", "0", "0", "0"),
				IncrementType: increment.TypePromotion,
				Status:        increment.StatusPending,
				EffectiveDate: time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
			})
			// applied increments do not count
			seedApproved(3, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), "1500").Status = increment.StatusApplied

			cost, err := service.GetProjectedAnnualCost()

			Expect(err).NotTo(HaveOccurred())
			Expect(cost.TotalPendingRequests).To(Equal(int64(2)))
			Expect(cost.TotalAnnualIncrease.Equal(money("4200"))).To(BeTrue())
			Expect(cost.ByType[increment.TypePercentage].Count).To(Equal(int64(1)))
			Expect(cost.ByType[increment.TypePercentage].TotalAnnualCost.Equal(money("1200"))).To(BeTrue())
			Expect(cost.ByType[increment.TypePromotion].Count).To(Equal(int64(1)))
			Expect(cost.ByType[increment.TypePromotion].TotalAnnualCost.Equal(money("3000"))).To(BeTrue())
		})
	})

	Describe("GetSalaryHistory", func() {
		It("fails for an unknown employee", func() {
			_, err := service.GetSalaryHistory(99)

			Expect(err).To(MatchError(internal.ErrEmployeeNotFound))
		})

		It("returns the employee's effective-dated records", func() {
			to := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
			employees.history[1] = []*employee.SalaryRecord{
				{EmployeeID: 1, BaseSalary: money("1100"), EffectiveFrom: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
				{EmployeeID: 1, BaseSalary: money("1000"), EffectiveFrom: time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC), EffectiveTo: &to},
			}

			history, err := service.GetSalaryHistory(1)

			Expect(err).NotTo(HaveOccurred())
			Expect(history).To(HaveLen(2))
			Expect(history[0].EffectiveTo).To(BeNil())
		})
	})
})

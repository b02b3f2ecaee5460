package increment

import (
	"context"
	"log/slog"
	"time"

	"github.com/hrops/backoffice/internal"
	"github.com/hrops/backoffice/internal/core/events"
	"github.com/hrops/backoffice/internal/employee"
	"github.com/hrops/backoffice/pkg/timeutil"
	"github.com/shopspring/decimal"
)

// Repository defines the data access methods for salary increments. Approve,
// Reject and Apply are guarded transitions executed transactionally by the
// store; Apply also commits the new authoritative salary record.
type Repository interface {
	Create(i *SalaryIncrement) error
	GetByID(id int64) (*SalaryIncrement, error)
	GetByEmployeeID(employeeID int64) ([]*SalaryIncrement, error)
	List(filter ListFilter) ([]*SalaryIncrement, error)
	// GetDue returns approved increments whose effective date is on or before asOf.
	GetDue(asOf time.Time) ([]*SalaryIncrement, error)
	GetPending() ([]*SalaryIncrement, error)
	Approve(id, approverID int64, at time.Time) error
	Reject(id, rejectorID int64, reason string, at time.Time) error
	// Apply atomically marks an approved increment applied and writes the new
	// salary record, closing the previous one.
	Apply(id int64, at time.Time) error
	Statistics(from, to *time.Time) (*Statistics, error)
}

// EmployeeReader is the slice of the employee collaborator the processor needs.
type EmployeeReader interface {
	GetByID(id int64) (*employee.Employee, error)
	CurrentSalary(employeeID int64, asOf time.Time) (*employee.SalaryRecord, error)
	SalaryHistory(employeeID int64) ([]*employee.SalaryRecord, error)
}

// Service handles the salary increment lifecycle: baseline resolution,
// computation, approval, and effective-dated application.
type Service struct {
	repo      Repository
	employees EmployeeReader
	bus       *events.EventBus
	clock     timeutil.Clock
	logger    *slog.Logger
}

func NewService(repo Repository, employees EmployeeReader, bus *events.EventBus, clock timeutil.Clock, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
		bus:       bus,
		clock:     clock,
		logger:    logger,
	}
}

// CreateIncrement resolves the employee's baseline salary, computes the
// proposed compensation for the requested variant, and persists a pending
// increment carrying both snapshots.
func (s *Service) CreateIncrement(dto CreateIncrementDTO, requestedBy int64) (*SalaryIncrement, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("increment validation failed", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	emp, err := s.employees.GetByID(dto.EmployeeID)
	if err != nil {
		s.logger.Error("employee not found for increment", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	baseline, err := s.resolveBaseline(emp)
	if err != nil {
		return nil, err
	}

	newSalary, err := ComputeNewSalary(baseline, dto)
	if err != nil {
		s.logger.Error("failed to compute new salary",
			"error", err,
			"employee_id", dto.EmployeeID,
			"increment_type", dto.IncrementType)
		return nil, err
	}

	now := s.clock.Now()
	inc := &SalaryIncrement{
		EmployeeID:    dto.EmployeeID,
		CurrentSalary: baseline,
		NewSalary:     newSalary,
		IncrementType: dto.IncrementType,
		Percentage:    dto.IncrementPercentage,
		Amount:        dto.IncrementAmount,
		Reason:        dto.Reason,
		EffectiveDate: timeutil.DateOnly(dto.EffectiveDate),
		Status:        StatusPending,
		RequestedBy:   requestedBy,
		RequestedAt:   now,
		Notes:         dto.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(inc); err != nil {
		s.logger.Error("failed to create increment", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	s.logger.Info("salary increment requested",
		"increment_id", inc.ID,
		"employee_id", inc.EmployeeID,
		"increment_type", inc.IncrementType,
		"effective_date", inc.EffectiveDate,
		"requested_by", requestedBy)

	return inc, nil
}

// resolveBaseline prefers the approved salary record in effect today and
// falls back to the employee's basic salary with zero allowances.
func (s *Service) resolveBaseline(emp *employee.Employee) (SalarySnapshot, error) {
	current, err := s.employees.CurrentSalary(emp.ID, s.clock.Today())
	if err != nil {
		s.logger.Error("failed to resolve current salary", "error", err, "employee_id", emp.ID)
		return SalarySnapshot{}, err
	}

	if current != nil {
		return SalarySnapshot{
			BaseSalary:         current.BaseSalary,
			FoodAllowance:      current.FoodAllowance,
			HousingAllowance:   current.HousingAllowance,
			TransportAllowance: current.TransportAllowance,
		}, nil
	}

	return SalarySnapshot{
		BaseSalary:         emp.BasicSalary,
		FoodAllowance:      decimal.Zero,
		HousingAllowance:   decimal.Zero,
		TransportAllowance: decimal.Zero,
	}, nil
}

// ApproveIncrement transitions a pending increment to approved. When the
// effective date is already due the increment is applied in the same call;
// otherwise it waits for the sweep.
func (s *Service) ApproveIncrement(ctx context.Context, incrementID, approverID int64) (*SalaryIncrement, error) {
	inc, err := s.repo.GetByID(incrementID)
	if err != nil {
		s.logger.Error("increment not found for approval", "error", err, "increment_id", incrementID)
		return nil, err
	}

	if !inc.CanBeApproved() {
		s.logger.Warn("cannot approve increment in current status",
			"increment_id", incrementID,
			"current_status", inc.Status)
		return nil, internal.ErrInvalidIncrementStatus
	}

	if err := s.repo.Approve(incrementID, approverID, s.clock.Now()); err != nil {
		s.logger.Error("failed to approve increment", "error", err, "increment_id", incrementID, "approver_id", approverID)
		return nil, err
	}

	s.logger.Info("salary increment approved", "increment_id", incrementID, "approver_id", approverID)
	s.bus.Publish(ctx, events.NewIncrementApproved(incrementID, inc.EmployeeID, approverID))

	if timeutil.OnOrBefore(inc.EffectiveDate, s.clock.Today()) {
		if _, err := s.Apply(ctx, incrementID); err != nil {
			return nil, err
		}
	}

	return s.repo.GetByID(incrementID)
}

// RejectIncrement transitions a pending increment to rejected. Terminal.
func (s *Service) RejectIncrement(ctx context.Context, incrementID, rejectorID int64, dto RejectIncrementDTO) (*SalaryIncrement, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	inc, err := s.repo.GetByID(incrementID)
	if err != nil {
		s.logger.Error("increment not found for rejection", "error", err, "increment_id", incrementID)
		return nil, err
	}

	if !inc.CanBeRejected() {
		s.logger.Warn("cannot reject increment in current status",
			"increment_id", incrementID,
			"current_status", inc.Status)
		return nil, internal.ErrInvalidIncrementStatus
	}

	if err := s.repo.Reject(incrementID, rejectorID, dto.Reason, s.clock.Now()); err != nil {
		s.logger.Error("failed to reject increment", "error", err, "increment_id", incrementID, "rejector_id", rejectorID)
		return nil, err
	}

	s.logger.Info("salary increment rejected", "increment_id", incrementID, "rejector_id", rejectorID, "reason", dto.Reason)
	s.bus.Publish(ctx, events.NewIncrementRejected(incrementID, inc.EmployeeID, rejectorID, dto.Reason))

	return s.repo.GetByID(incrementID)
}

// Apply commits the increment's new values as the employee's authoritative
// salary and marks the increment applied. Re-applying an already-applied
// increment fails with a state conflict and never double-commits.
func (s *Service) Apply(ctx context.Context, incrementID int64) (*SalaryIncrement, error) {
	inc, err := s.repo.GetByID(incrementID)
	if err != nil {
		return nil, err
	}

	if !inc.CanBeApplied() {
		s.logger.Warn("cannot apply increment in current status",
			"increment_id", incrementID,
			"current_status", inc.Status)
		return nil, internal.ErrInvalidIncrementStatus
	}

	if err := s.repo.Apply(incrementID, s.clock.Now()); err != nil {
		s.logger.Error("failed to apply increment",
			"error", err,
			"increment_id", incrementID,
			"employee_id", inc.EmployeeID,
			"new_base_salary", inc.NewSalary.BaseSalary)
		return nil, err
	}

	s.logger.Info("salary increment applied",
		"increment_id", incrementID,
		"employee_id", inc.EmployeeID,
		"effective_date", inc.EffectiveDate)
	s.bus.Publish(ctx, events.NewIncrementApplied(incrementID, inc.EmployeeID))

	return s.repo.GetByID(incrementID)
}

// ApplyDueIncrements sweeps all approved increments whose effective date has
// arrived. Each is applied independently: a failure is logged and skipped,
// never aborting the rest of the batch.
func (s *Service) ApplyDueIncrements(ctx context.Context) ([]*SalaryIncrement, error) {
	due, err := s.repo.GetDue(s.clock.Today())
	if err != nil {
		s.logger.Error("failed to load due increments", "error", err)
		return nil, err
	}

	applied := []*SalaryIncrement{}
	for _, inc := range due {
		result, err := s.Apply(ctx, inc.ID)
		if err != nil {
			s.logger.Error("failed to apply due increment, continuing",
				"error", err,
				"increment_id", inc.ID,
				"employee_id", inc.EmployeeID)
			continue
		}
		applied = append(applied, result)
	}

	s.logger.Info("due increments sweep finished",
		"due", len(due),
		"applied", len(applied))

	return applied, nil
}

func (s *Service) GetIncrement(incrementID int64) (*SalaryIncrement, error) {
	return s.repo.GetByID(incrementID)
}

func (s *Service) GetEmployeeIncrements(employeeID int64) ([]*SalaryIncrement, error) {
	return s.repo.GetByEmployeeID(employeeID)
}

func (s *Service) ListIncrements(filter ListFilter) ([]*SalaryIncrement, error) {
	return s.repo.List(filter)
}

func (s *Service) GetSalaryHistory(employeeID int64) ([]*employee.SalaryRecord, error) {
	if _, err := s.employees.GetByID(employeeID); err != nil {
		return nil, err
	}
	return s.employees.SalaryHistory(employeeID)
}

// GetStatistics aggregates increment counts and amounts, optionally windowed
// by creation date.
func (s *Service) GetStatistics(from, to *time.Time) (*Statistics, error) {
	return s.repo.Statistics(from, to)
}

// GetProjectedAnnualCost estimates the yearly payroll impact of all pending
// increments.
func (s *Service) GetProjectedAnnualCost() (*ProjectedAnnualCost, error) {
	pending, err := s.repo.GetPending()
	if err != nil {
		return nil, err
	}

	twelve := decimal.NewFromInt(12)
	result := &ProjectedAnnualCost{
		TotalPendingRequests: int64(len(pending)),
		TotalAnnualIncrease:  decimal.Zero,
		ByType:               make(map[Type]AnnualCostByType),
	}

	for _, inc := range pending {
		annual := inc.MonthlyIncrease().Mul(twelve)
		result.TotalAnnualIncrease = result.TotalAnnualIncrease.Add(annual)

		entry := result.ByType[inc.IncrementType]
		entry.Count++
		entry.TotalAnnualCost = entry.TotalAnnualCost.Add(annual)
		result.ByType[inc.IncrementType] = entry
	}

	return result, nil
}

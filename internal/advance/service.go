package advance

import (
	"context"
	"log/slog"
	"time"

	"github.com/hrops/backoffice/internal"
	"github.com/hrops/backoffice/internal/core/events"
	"github.com/hrops/backoffice/pkg/timeutil"
	"github.com/shopspring/decimal"
)

// Repository defines the data access methods for advances. Mutations that
// depend on current state (approve, reject, deduct, repay) are executed by the
// store inside a transaction with a row lock and return typed state errors.
type Repository interface {
	Create(a *Advance) error
	GetByID(id int64) (*Advance, error)
	GetByEmployeeID(employeeID int64) ([]*Advance, error)
	List(filter ListFilter) ([]*Advance, error)
	GetPending(limit, offset int) ([]*Advance, error)
	// GetOpen returns approved or active advances with a positive remaining
	// balance. A zero employeeID means all employees.
	GetOpen(employeeID int64) ([]*Advance, error)
	Approve(id, approverID int64, notes *string, at time.Time) error
	Reject(id, rejectorID int64, reason string, at time.Time) error
	Deduct(id int64, amount decimal.Decimal) error
	RecordRepayment(rep *Repayment) error
	GetRepayments(advanceID int64) ([]*Repayment, error)
	UpdateDeductionPlan(id int64, amount decimal.Decimal, frequency string, startDate time.Time, endDate *time.Time) error
}

// DueDeduction pairs a projected installment with its advance, for the
// upcoming/overdue queries consumed by payroll.
type DueDeduction struct {
	AdvanceID  int64           `json:"advance_id"`
	EmployeeID int64           `json:"employee_id"`
	Date       time.Time       `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
}

// Service handles the advance payment ledger: request, approval, deductions,
// repayments, and schedule projections.
type Service struct {
	repo   Repository
	bus    *events.EventBus
	clock  timeutil.Clock
	logger *slog.Logger
}

func NewService(repo Repository, bus *events.EventBus, clock timeutil.Clock, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		clock:  clock,
		logger: logger,
	}
}

// RequestAdvance creates a pending advance. The remaining balance starts equal
// to the principal. Omitted deduction-plan fields get conservative defaults:
// monthly frequency starting on the first of the next month.
func (s *Service) RequestAdvance(dto CreateAdvanceDTO, requestedBy int64) (*Advance, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("advance validation failed", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	now := s.clock.Now()

	frequency := dto.DeductionFrequency
	if frequency == "" {
		frequency = FrequencyMonthly
	}
	startDate := timeutil.DateOnly(dto.DeductionStartDate)
	if dto.DeductionStartDate.IsZero() {
		startDate = timeutil.AddDays(timeutil.EndOfMonth(s.clock.Today()), 1)
	}

	a := &Advance{
		EmployeeID:         dto.EmployeeID,
		Amount:             dto.Amount,
		RemainingAmount:    dto.Amount,
		Reason:             dto.Reason,
		DeductionAmount:    dto.DeductionAmount,
		DeductionFrequency: frequency,
		DeductionStartDate: startDate,
		DeductionEndDate:   dto.DeductionEndDate,
		Status:             StatusPending,
		RequestedBy:        requestedBy,
		RequestedAt:        now,
		Notes:              dto.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(a); err != nil {
		s.logger.Error("failed to create advance", "error", err, "employee_id", dto.EmployeeID, "amount", dto.Amount)
		return nil, err
	}

	s.logger.Info("advance requested",
		"advance_id", a.ID,
		"employee_id", a.EmployeeID,
		"amount", a.Amount,
		"requested_by", requestedBy)

	return a, nil
}

// ApproveAdvance transitions a pending advance to approved.
func (s *Service) ApproveAdvance(ctx context.Context, advanceID, approverID int64, dto ApproveAdvanceDTO) (*Advance, error) {
	a, err := s.repo.GetByID(advanceID)
	if err != nil {
		s.logger.Error("advance not found for approval", "error", err, "advance_id", advanceID)
		return nil, err
	}

	if !a.CanBeApproved() {
		s.logger.Warn("cannot approve advance in current status",
			"advance_id", advanceID,
			"current_status", a.Status)
		return nil, internal.ErrInvalidAdvanceStatus
	}

	if err := s.repo.Approve(advanceID, approverID, dto.Notes, s.clock.Now()); err != nil {
		s.logger.Error("failed to approve advance", "error", err, "advance_id", advanceID, "approver_id", approverID)
		return nil, err
	}

	s.logger.Info("advance approved", "advance_id", advanceID, "approver_id", approverID, "amount", a.Amount)
	s.bus.Publish(ctx, events.NewAdvanceApproved(advanceID, a.EmployeeID, approverID))

	return s.repo.GetByID(advanceID)
}

// RejectAdvance transitions a pending advance to rejected. Terminal.
func (s *Service) RejectAdvance(ctx context.Context, advanceID, rejectorID int64, dto RejectAdvanceDTO) (*Advance, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(advanceID)
	if err != nil {
		s.logger.Error("advance not found for rejection", "error", err, "advance_id", advanceID)
		return nil, err
	}

	if !a.CanBeRejected() {
		s.logger.Warn("cannot reject advance in current status",
			"advance_id", advanceID,
			"current_status", a.Status)
		return nil, internal.ErrInvalidAdvanceStatus
	}

	if err := s.repo.Reject(advanceID, rejectorID, dto.Reason, s.clock.Now()); err != nil {
		s.logger.Error("failed to reject advance", "error", err, "advance_id", advanceID, "rejector_id", rejectorID)
		return nil, err
	}

	s.logger.Info("advance rejected", "advance_id", advanceID, "rejector_id", rejectorID, "reason", dto.Reason)
	s.bus.Publish(ctx, events.NewAdvanceRejected(advanceID, a.EmployeeID, rejectorID, dto.Reason))

	return s.repo.GetByID(advanceID)
}

// ProcessDeduction draws down the remaining balance by the given amount. The
// store enforces 0 < amount <= remaining_amount under a row lock; a violation
// leaves the advance untouched.
func (s *Service) ProcessDeduction(advanceID int64, dto DeductionDTO) (*Advance, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Deduct(advanceID, dto.Amount); err != nil {
		s.logger.Error("failed to process deduction",
			"error", err,
			"advance_id", advanceID,
			"amount", dto.Amount)
		return nil, err
	}

	s.logger.Info("deduction processed", "advance_id", advanceID, "amount", dto.Amount)
	return s.repo.GetByID(advanceID)
}

// RecordRepayment applies a manual repayment: same balance constraint as
// ProcessDeduction plus an appended repayment row, in one transaction.
func (s *Service) RecordRepayment(advanceID int64, dto RecordRepaymentDTO, recordedBy int64) (*Advance, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	rep := &Repayment{
		AdvanceID:   advanceID,
		Amount:      dto.Amount,
		PaymentDate: timeutil.DateOnly(dto.PaymentDate),
		Notes:       dto.Notes,
		RecordedBy:  recordedBy,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.repo.RecordRepayment(rep); err != nil {
		s.logger.Error("failed to record repayment",
			"error", err,
			"advance_id", advanceID,
			"amount", dto.Amount,
			"payment_date", dto.PaymentDate)
		return nil, err
	}

	s.logger.Info("repayment recorded",
		"advance_id", advanceID,
		"repayment_id", rep.ID,
		"amount", dto.Amount,
		"recorded_by", recordedBy)

	return s.repo.GetByID(advanceID)
}

// GetDeductionSchedule projects the remaining installments for one advance.
func (s *Service) GetDeductionSchedule(advanceID int64) ([]ScheduleEntry, error) {
	a, err := s.repo.GetByID(advanceID)
	if err != nil {
		return nil, err
	}
	return CalculateDeductionSchedule(a), nil
}

func (s *Service) GetAdvance(advanceID int64) (*Advance, error) {
	return s.repo.GetByID(advanceID)
}

func (s *Service) GetEmployeeAdvances(employeeID int64) ([]*Advance, error) {
	return s.repo.GetByEmployeeID(employeeID)
}

func (s *Service) ListAdvances(filter ListFilter) ([]*Advance, error) {
	return s.repo.List(filter)
}

func (s *Service) GetPendingAdvances(limit, offset int) ([]*Advance, error) {
	return s.repo.GetPending(limit, offset)
}

func (s *Service) GetRepayments(advanceID int64) ([]*Repayment, error) {
	if _, err := s.repo.GetByID(advanceID); err != nil {
		return nil, err
	}
	return s.repo.GetRepayments(advanceID)
}

// GetEmployeeBalance summarizes an employee's outstanding advances. All
// totals are zero when nothing is open.
func (s *Service) GetEmployeeBalance(employeeID int64) (*BalanceSummary, error) {
	open, err := s.repo.GetOpen(employeeID)
	if err != nil {
		return nil, err
	}

	summary := &BalanceSummary{
		EmployeeID:            employeeID,
		TotalRemaining:        decimal.Zero,
		TotalMonthlyDeduction: decimal.Zero,
	}
	for _, a := range open {
		summary.TotalRemaining = summary.TotalRemaining.Add(a.RemainingAmount)
		summary.TotalMonthlyDeduction = summary.TotalMonthlyDeduction.Add(a.DeductionAmount)
		summary.OpenAdvances++
	}
	return summary, nil
}

// UpdateDeductionPlan adjusts the recovery terms of a not-yet-settled advance.
func (s *Service) UpdateDeductionPlan(advanceID int64, amount decimal.Decimal, frequency string, startDate time.Time, endDate *time.Time) (*Advance, error) {
	if amount.IsNegative() {
		return nil, internal.NewValidationFieldError("deduction_amount", "deduction_amount cannot be negative", internal.ErrCodeInvalidAmount)
	}
	if !ValidFrequency(frequency) {
		return nil, internal.NewValidationFieldError("deduction_frequency", "deduction_frequency must be one of weekly, biweekly, monthly", internal.ErrCodeInvalidFrequency)
	}

	a, err := s.repo.GetByID(advanceID)
	if err != nil {
		return nil, err
	}
	if a.Status == StatusRejected || a.Status == StatusPaid {
		s.logger.Warn("cannot update deduction plan on settled advance", "advance_id", advanceID, "status", a.Status)
		return nil, internal.ErrInvalidAdvanceStatus
	}

	if err := s.repo.UpdateDeductionPlan(advanceID, amount, frequency, timeutil.DateOnly(startDate), endDate); err != nil {
		s.logger.Error("failed to update deduction plan", "error", err, "advance_id", advanceID)
		return nil, err
	}

	return s.repo.GetByID(advanceID)
}

// UpcomingDeductions projects installments falling within the next withinDays
// days across all open advances.
func (s *Service) UpcomingDeductions(withinDays int) ([]DueDeduction, error) {
	return s.projectDeductions(func(today, date time.Time) bool {
		return timeutil.OnOrAfter(date, today) && timeutil.DaysBetween(today, date) <= withinDays
	})
}

// OverdueDeductions projects installments dated before today that are still
// uncollected according to the current balance.
func (s *Service) OverdueDeductions() ([]DueDeduction, error) {
	return s.projectDeductions(func(today, date time.Time) bool {
		return date.Before(today)
	})
}

func (s *Service) projectDeductions(include func(today, date time.Time) bool) ([]DueDeduction, error) {
	open, err := s.repo.GetOpen(0)
	if err != nil {
		return nil, err
	}

	today := s.clock.Today()
	due := []DueDeduction{}
	for _, a := range open {
		for _, entry := range CalculateDeductionSchedule(a) {
			if include(today, entry.Date) {
				due = append(due, DueDeduction{
					AdvanceID:  a.ID,
					EmployeeID: a.EmployeeID,
					Date:       entry.Date,
					Amount:     entry.Amount,
				})
			}
		}
	}
	return due, nil
}

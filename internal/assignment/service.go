package assignment

import (
	"log/slog"
	"sync"
	"time"

	"github.com/hrops/backoffice/pkg/timeutil"
)

// StatusUpdate is one corrective write the reconciler wants applied.
type StatusUpdate struct {
	AssignmentID int64
	Status       string
	EndDate      *time.Time
}

// Repository defines the data access methods for assignments.
type Repository interface {
	Create(a *Assignment) error
	GetByID(id int64) (*Assignment, error)
	GetByEmployeeID(employeeID int64) ([]*Assignment, error)
	GetActiveByEmployeeID(employeeID int64) (*Assignment, error)
	// ApplyUpdates persists all status corrections in a single transaction.
	ApplyUpdates(employeeID int64, updates []StatusUpdate) error
}

// Service keeps each employee's assignment history consistent: one active
// open-ended row, everything earlier closed the day before the current one starts.
type Service struct {
	repo   Repository
	clock  timeutil.Clock
	logger *slog.Logger

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewService(repo Repository, clock timeutil.Clock, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		clock:  clock,
		logger: logger,
		locks:  make(map[int64]*sync.Mutex),
	}
}

// employeeLock serializes reconciliations per employee. Two concurrent runs
// would otherwise both compute the same "current" row and race on writes.
func (s *Service) employeeLock(employeeID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[employeeID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[employeeID] = lock
	}
	return lock
}

// CreateAssignment records a new assignment and reconciles the employee's
// history so the new row becomes the single active one when it is the latest.
func (s *Service) CreateAssignment(dto CreateAssignmentDTO, assignedBy int64) (*Assignment, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("assignment validation failed", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	now := s.clock.Now()
	a := &Assignment{
		EmployeeID: dto.EmployeeID,
		Type:       dto.Type,
		Name:       dto.Name,
		Location:   dto.Location,
		Status:     StatusActive,
		StartDate:  timeutil.DateOnly(dto.StartDate),
		Notes:      dto.Notes,
		AssignedBy: &assignedBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(a); err != nil {
		s.logger.Error("failed to create assignment", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	if err := s.Reconcile(dto.EmployeeID); err != nil {
		return nil, err
	}

	created, err := s.repo.GetByID(a.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("assignment created",
		"assignment_id", created.ID,
		"employee_id", created.EmployeeID,
		"type", created.Type,
		"status", created.Status)

	return created, nil
}

// Reconcile enforces the timeline invariant for one employee: the assignment
// with the maximum start date is active with no end date, every other row is
// completed with end date = current start − 1 day. Idempotent; a second call
// issues no writes.
func (s *Service) Reconcile(employeeID int64) error {
	lock := s.employeeLock(employeeID)
	lock.Lock()
	defer lock.Unlock()

	all, err := s.repo.GetByEmployeeID(employeeID)
	if err != nil {
		s.logger.Error("failed to load assignments for reconcile", "error", err, "employee_id", employeeID)
		return err
	}
	if len(all) == 0 {
		return nil
	}

	// Rows arrive ordered by (start_date, id); the current assignment is the
	// one with the maximum start date.
	current := all[0]
	for _, a := range all[1:] {
		if a.StartDate.After(current.StartDate) {
			current = a
		}
	}

	previousEnd := timeutil.AddDays(timeutil.DateOnly(current.StartDate), -1)

	var updates []StatusUpdate
	for _, a := range all {
		if a.ID == current.ID {
			if a.Status != StatusActive || a.EndDate != nil {
				updates = append(updates, StatusUpdate{AssignmentID: a.ID, Status: StatusActive, EndDate: nil})
			}
			continue
		}
		if a.Status != StatusCompleted || a.EndDate == nil || !timeutil.SameDay(*a.EndDate, previousEnd) {
			end := previousEnd
			updates = append(updates, StatusUpdate{AssignmentID: a.ID, Status: StatusCompleted, EndDate: &end})
		}
	}

	if len(updates) == 0 {
		return nil
	}

	if err := s.repo.ApplyUpdates(employeeID, updates); err != nil {
		s.logger.Error("failed to apply assignment reconciliation",
			"error", err,
			"employee_id", employeeID,
			"updates", len(updates))
		return err
	}

	s.logger.Info("assignment timeline reconciled",
		"employee_id", employeeID,
		"current_assignment_id", current.ID,
		"updates", len(updates))

	return nil
}

// GetEmployeeAssignments lists an employee's full assignment history.
func (s *Service) GetEmployeeAssignments(employeeID int64) ([]*Assignment, error) {
	return s.repo.GetByEmployeeID(employeeID)
}

// GetActiveAssignment returns the employee's current assignment, if any.
func (s *Service) GetActiveAssignment(employeeID int64) (*Assignment, error) {
	return s.repo.GetActiveByEmployeeID(employeeID)
}

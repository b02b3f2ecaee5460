package postgres

import (
	"time"

	"github.com/hrops/backoffice/internal"
	"github.com/hrops/backoffice/internal/assignment"
	assignmentDatamodel "github.com/hrops/backoffice/internal/core/datamodel/assignment"
	"gorm.io/gorm"
)

// AssignmentRepository implements assignment.Repository using GORM.
type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) assignment.Repository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(a *assignment.Assignment) error {
	row := assignment.ToDataModel(a)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	a.ID = row.ID
	return nil
}

func (r *AssignmentRepository) GetByID(id int64) (*assignment.Assignment, error) {
	var row assignmentDatamodel.Assignment
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment.FromDataModel(&row), nil
}

func (r *AssignmentRepository) GetByEmployeeID(employeeID int64) ([]*assignment.Assignment, error) {
	var rows []*assignmentDatamodel.Assignment
	err := r.db.Where("employee_id = ?", employeeID).
		Order("start_date ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return assignment.FromDataModelSlice(rows), nil
}

func (r *AssignmentRepository) GetActiveByEmployeeID(employeeID int64) (*assignment.Assignment, error) {
	var row assignmentDatamodel.Assignment
	err := r.db.Where("employee_id = ? AND status = ? AND end_date IS NULL", employeeID, assignment.StatusActive).
		Order("start_date DESC").
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment.FromDataModel(&row), nil
}

// ApplyUpdates writes all reconciliation corrections atomically.
func (r *AssignmentRepository) ApplyUpdates(employeeID int64, updates []assignment.StatusUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			values := map[string]interface{}{
				"status":     u.Status,
				"end_date":   u.EndDate,
				"updated_at": time.Now(),
			}
			if err := tx.Model(&assignmentDatamodel.Assignment{}).
				Where("id = ? AND employee_id = ?", u.AssignmentID, employeeID).
				Updates(values).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

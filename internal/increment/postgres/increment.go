package postgres

import (
	"time"

	"github.com/hrops/backoffice/internal"
	employeeDatamodel "github.com/hrops/backoffice/internal/core/datamodel/employee"
	incrementDatamodel "github.com/hrops/backoffice/internal/core/datamodel/increment"
	"github.com/hrops/backoffice/internal/employee"
	"github.com/hrops/backoffice/internal/increment"
	"github.com/hrops/backoffice/pkg/timeutil"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IncrementRepository implements increment.Repository using GORM.
type IncrementRepository struct {
	db *gorm.DB
}

func NewIncrementRepository(db *gorm.DB) increment.Repository {
	return &IncrementRepository{db: db}
}

func (r *IncrementRepository) Create(i *increment.SalaryIncrement) error {
	row := increment.ToDataModel(i)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	i.ID = row.ID
	return nil
}

func (r *IncrementRepository) GetByID(id int64) (*increment.SalaryIncrement, error) {
	var row incrementDatamodel.SalaryIncrement
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrIncrementNotFound
		}
		return nil, err
	}
	return increment.FromDataModel(&row), nil
}

func (r *IncrementRepository) GetByEmployeeID(employeeID int64) ([]*increment.SalaryIncrement, error) {
	var rows []*incrementDatamodel.SalaryIncrement
	err := r.db.Where("employee_id = ?", employeeID).
		Order("effective_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return increment.FromDataModelSlice(rows), nil
}

func (r *IncrementRepository) List(filter increment.ListFilter) ([]*increment.SalaryIncrement, error) {
	query := r.db.Model(&incrementDatamodel.SalaryIncrement{})

	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.IncrementType != nil {
		query = query.Where("increment_type = ?", string(*filter.IncrementType))
	}
	if filter.EffectiveDateFrom != nil {
		query = query.Where("effective_date >= ?", *filter.EffectiveDateFrom)
	}
	if filter.EffectiveDateTo != nil {
		query = query.Where("effective_date <= ?", *filter.EffectiveDateTo)
	}
	if filter.RequestedBy != nil {
		query = query.Where("requested_by = ?", *filter.RequestedBy)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var rows []*incrementDatamodel.SalaryIncrement
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return increment.FromDataModelSlice(rows), nil
}

func (r *IncrementRepository) GetDue(asOf time.Time) ([]*increment.SalaryIncrement, error) {
	var rows []*incrementDatamodel.SalaryIncrement
	err := r.db.Where("status = ? AND effective_date <= ?", increment.StatusApproved, asOf).
		Order("effective_date ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return increment.FromDataModelSlice(rows), nil
}

func (r *IncrementRepository) GetPending() ([]*increment.SalaryIncrement, error) {
	var rows []*incrementDatamodel.SalaryIncrement
	err := r.db.Where("status = ?", increment.StatusPending).
		Order("requested_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return increment.FromDataModelSlice(rows), nil
}

func (r *IncrementRepository) Approve(id, approverID int64, at time.Time) error {
	res := r.db.Model(&incrementDatamodel.SalaryIncrement{}).
		Where("id = ? AND status = ?", id, increment.StatusPending).
		Updates(map[string]interface{}{
			"status":      increment.StatusApproved,
			"approved_by": approverID,
			"approved_at": at,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.stateError(id)
	}
	return nil
}

func (r *IncrementRepository) Reject(id, rejectorID int64, reason string, at time.Time) error {
	res := r.db.Model(&incrementDatamodel.SalaryIncrement{}).
		Where("id = ? AND status = ?", id, increment.StatusPending).
		Updates(map[string]interface{}{
			"status":           increment.StatusRejected,
			"rejected_by":      rejectorID,
			"rejected_at":      at,
			"rejection_reason": reason,
			"updated_at":       time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.stateError(id)
	}
	return nil
}

// Apply commits the increment in one transaction: the guarded status flip
// from approved to applied, closing the currently-open salary record the day
// before the effective date, and inserting the new approved record. A
// concurrent or repeated apply sees zero rows on the status flip and rolls
// back without touching the salary history.
func (r *IncrementRepository) Apply(id int64, at time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var row incrementDatamodel.SalaryIncrement
		if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return internal.ErrIncrementNotFound
			}
			return err
		}

		res := tx.Model(&incrementDatamodel.SalaryIncrement{}).
			Where("id = ? AND status = ?", id, increment.StatusApproved).
			Updates(map[string]interface{}{
				"status":     increment.StatusApplied,
				"applied_at": at,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrInvalidIncrementStatus
		}

		closeDate := timeutil.AddDays(timeutil.DateOnly(row.EffectiveDate), -1)
		if err := tx.Model(&employeeDatamodel.EmployeeSalary{}).
			Where("employee_id = ? AND status = ? AND effective_to IS NULL",
				row.EmployeeID, employee.SalaryStatusApproved).
			Updates(map[string]interface{}{
				"effective_to": closeDate,
				"updated_at":   time.Now(),
			}).Error; err != nil {
			return err
		}

		newRecord := &employeeDatamodel.EmployeeSalary{
			EmployeeID:         row.EmployeeID,
			BaseSalary:         row.NewBaseSalary,
			FoodAllowance:      row.NewFoodAllowance,
			HousingAllowance:   row.NewHousingAllowance,
			TransportAllowance: row.NewTransportAllowance,
			Status:             employee.SalaryStatusApproved,
			EffectiveFrom:      timeutil.DateOnly(row.EffectiveDate),
			CreatedAt:          time.Now(),
			UpdatedAt:          time.Now(),
		}
		return tx.Create(newRecord).Error
	})
}

type statsRow struct {
	Total    int64
	Pending  int64
	Approved int64
	Rejected int64
	Applied  int64
}

type typeRow struct {
	IncrementType string
	Count         int64
	AvgPercentage decimal.NullDecimal
}

func (r *IncrementRepository) Statistics(from, to *time.Time) (*increment.Statistics, error) {
	base := r.db.Model(&incrementDatamodel.SalaryIncrement{})
	if from != nil {
		base = base.Where("created_at >= ?", *from)
	}
	if to != nil {
		base = base.Where("created_at <= ?", *to)
	}

	var counts statsRow
	err := base.Session(&gorm.Session{}).
		Select(`COUNT(*) as total,
			COUNT(CASE WHEN status = 'pending' THEN 1 END) as pending,
			COUNT(CASE WHEN status = 'approved' THEN 1 END) as approved,
			COUNT(CASE WHEN status = 'rejected' THEN 1 END) as rejected,
			COUNT(CASE WHEN status = 'applied' THEN 1 END) as applied`).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	var totalAmount decimal.NullDecimal
	err = base.Session(&gorm.Session{}).
		Where("status = ?", increment.StatusApplied).
		Select(`SUM(new_base_salary + new_food_allowance + new_housing_allowance + new_transport_allowance
			- current_base_salary - current_food_allowance - current_housing_allowance - current_transport_allowance)`).
		Scan(&totalAmount).Error
	if err != nil {
		return nil, err
	}

	var avgPct decimal.NullDecimal
	err = base.Session(&gorm.Session{}).
		Where("status = ?", increment.StatusApplied).
		Select("AVG(increment_percentage)").
		Scan(&avgPct).Error
	if err != nil {
		return nil, err
	}

	var byType []typeRow
	err = base.Session(&gorm.Session{}).
		Where("status = ?", increment.StatusApplied).
		Select("increment_type, COUNT(*) as count, AVG(increment_percentage) as avg_percentage").
		Group("increment_type").
		Scan(&byType).Error
	if err != nil {
		return nil, err
	}

	stats := &increment.Statistics{
		TotalIncrements:            counts.Total,
		PendingIncrements:          counts.Pending,
		ApprovedIncrements:         counts.Approved,
		RejectedIncrements:         counts.Rejected,
		AppliedIncrements:          counts.Applied,
		TotalIncrementAmount:       decimalOrZero(totalAmount),
		AverageIncrementPercentage: decimalOrZero(avgPct),
		ByType:                     make(map[increment.Type]increment.TypeBreakdown),
	}
	for _, row := range byType {
		stats.ByType[increment.Type(row.IncrementType)] = increment.TypeBreakdown{
			Count:             row.Count,
			AveragePercentage: decimalOrZero(row.AvgPercentage),
		}
	}
	return stats, nil
}

func decimalOrZero(d decimal.NullDecimal) decimal.Decimal {
	if d.Valid {
		return d.Decimal
	}
	return decimal.Zero
}

func (r *IncrementRepository) stateError(id int64) error {
	var row incrementDatamodel.SalaryIncrement
	if err := r.db.Select("id").Where("id = ?", id).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return internal.ErrIncrementNotFound
		}
		return err
	}
	return internal.ErrInvalidIncrementStatus
}

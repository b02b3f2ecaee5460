package postgres

import (
	"time"

	"github.com/hrops/backoffice/internal"
	employeeDatamodel "github.com/hrops/backoffice/internal/core/datamodel/employee"
	"github.com/hrops/backoffice/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements employee.Repository using GORM.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	var row employeeDatamodel.Employee
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee.FromDataModel(&row), nil
}

// CurrentSalary resolves the authoritative compensation as of a date: the
// latest approved record whose effective window contains asOf. Returns
// (nil, nil) when the employee has no salary history yet.
func (r *EmployeeRepository) CurrentSalary(employeeID int64, asOf time.Time) (*employee.SalaryRecord, error) {
	var row employeeDatamodel.EmployeeSalary
	err := r.db.Where("employee_id = ? AND status = ? AND effective_from <= ?",
		employeeID, employee.SalaryStatusApproved, asOf).
		Where("effective_to IS NULL OR effective_to >= ?", asOf).
		Order("effective_from DESC").
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return employee.SalaryFromDataModel(&row), nil
}

func (r *EmployeeRepository) SalaryHistory(employeeID int64) ([]*employee.SalaryRecord, error) {
	var rows []*employeeDatamodel.EmployeeSalary
	err := r.db.Where("employee_id = ?", employeeID).
		Order("effective_from DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]*employee.SalaryRecord, len(rows))
	for i, row := range rows {
		result[i] = employee.SalaryFromDataModel(row)
	}
	return result, nil
}

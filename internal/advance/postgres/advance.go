package postgres

import (
	"time"

	"github.com/hrops/backoffice/internal"
	"github.com/hrops/backoffice/internal/advance"
	advanceDatamodel "github.com/hrops/backoffice/internal/core/datamodel/advance"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AdvanceRepository implements advance.Repository using GORM. State-dependent
// mutations use guarded updates (status and balance checked in the WHERE
// clause) so concurrent writers cannot both consume the same balance.
type AdvanceRepository struct {
	db *gorm.DB
}

func NewAdvanceRepository(db *gorm.DB) advance.Repository {
	return &AdvanceRepository{db: db}
}

func (r *AdvanceRepository) Create(a *advance.Advance) error {
	row := advance.ToDataModel(a)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	a.ID = row.ID
	return nil
}

func (r *AdvanceRepository) GetByID(id int64) (*advance.Advance, error) {
	var row advanceDatamodel.Advance
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrAdvanceNotFound
		}
		return nil, err
	}
	return advance.FromDataModel(&row), nil
}

func (r *AdvanceRepository) GetByEmployeeID(employeeID int64) ([]*advance.Advance, error) {
	var rows []*advanceDatamodel.Advance
	err := r.db.Where("employee_id = ?", employeeID).
		Order("requested_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return advance.FromDataModelSlice(rows), nil
}

func (r *AdvanceRepository) List(filter advance.ListFilter) ([]*advance.Advance, error) {
	query := r.db.Model(&advanceDatamodel.Advance{})

	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("requested_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("requested_at <= ?", *filter.DateTo)
	}
	if filter.AmountMin != nil {
		query = query.Where("amount >= ?", *filter.AmountMin)
	}
	if filter.AmountMax != nil {
		query = query.Where("amount <= ?", *filter.AmountMax)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var rows []*advanceDatamodel.Advance
	if err := query.Order("requested_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return advance.FromDataModelSlice(rows), nil
}

func (r *AdvanceRepository) GetPending(limit, offset int) ([]*advance.Advance, error) {
	var rows []*advanceDatamodel.Advance
	err := r.db.Where("status = ?", advance.StatusPending).
		Order("requested_at ASC"). // FIFO for approvals
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return advance.FromDataModelSlice(rows), nil
}

func (r *AdvanceRepository) GetOpen(employeeID int64) ([]*advance.Advance, error) {
	query := r.db.Where("status IN ? AND remaining_amount > 0",
		[]string{advance.StatusApproved, advance.StatusActive})
	if employeeID > 0 {
		query = query.Where("employee_id = ?", employeeID)
	}

	var rows []*advanceDatamodel.Advance
	if err := query.Order("remaining_amount ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return advance.FromDataModelSlice(rows), nil
}

func (r *AdvanceRepository) Approve(id, approverID int64, notes *string, at time.Time) error {
	values := map[string]interface{}{
		"status":      advance.StatusApproved,
		"approved_by": approverID,
		"approved_at": at,
		"updated_at":  time.Now(),
	}
	if notes != nil {
		values["notes"] = *notes
	}

	res := r.db.Model(&advanceDatamodel.Advance{}).
		Where("id = ? AND status = ?", id, advance.StatusPending).
		Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.stateError(id)
	}
	return nil
}

func (r *AdvanceRepository) Reject(id, rejectorID int64, reason string, at time.Time) error {
	res := r.db.Model(&advanceDatamodel.Advance{}).
		Where("id = ? AND status = ?", id, advance.StatusPending).
		Updates(map[string]interface{}{
			"status":           advance.StatusRejected,
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

// Deduct decrements the remaining balance in one guarded update. The balance
// check sits in the WHERE clause, so two racing deductions cannot both read
// the same balance: the second sees zero rows affected and fails cleanly.
func (r *AdvanceRepository) Deduct(id int64, amount decimal.Decimal) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return r.deductTx(tx, id, amount)
	})
}

// RecordRepayment applies the balance decrement and the repayment row in one
// transaction. If the decrement fails the row is never written.
func (r *AdvanceRepository) RecordRepayment(rep *advance.Repayment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := r.deductTx(tx, rep.AdvanceID, rep.Amount); err != nil {
			return err
		}

		row := &advanceDatamodel.Repayment{
			AdvanceID:   rep.AdvanceID,
			Amount:      rep.Amount,
			PaymentDate: rep.PaymentDate,
			Notes:       rep.Notes,
			RecordedBy:  rep.RecordedBy,
			CreatedAt:   rep.CreatedAt,
		}
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		rep.ID = row.ID
		return nil
	})
}

func (r *AdvanceRepository) deductTx(tx *gorm.DB, id int64, amount decimal.Decimal) error {
	res := tx.Model(&advanceDatamodel.Advance{}).
		Where("id = ? AND status IN ? AND remaining_amount >= ?",
			id, []string{advance.StatusApproved, advance.StatusActive}, amount).
		Updates(map[string]interface{}{
			"remaining_amount": gorm.Expr("remaining_amount - ?", amount),
			"status": gorm.Expr("CASE WHEN remaining_amount - ? <= 0 THEN ? ELSE ? END",
				amount, advance.StatusPaid, advance.StatusActive),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.balanceError(tx, id, amount)
	}
	return nil
}

func (r *AdvanceRepository) GetRepayments(advanceID int64) ([]*advance.Repayment, error) {
	var rows []*advanceDatamodel.Repayment
	err := r.db.Where("advance_id = ?", advanceID).
		Order("payment_date ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]*advance.Repayment, len(rows))
	for i, row := range rows {
		result[i] = advance.RepaymentFromDataModel(row)
	}
	return result, nil
}

func (r *AdvanceRepository) UpdateDeductionPlan(id int64, amount decimal.Decimal, frequency string, startDate time.Time, endDate *time.Time) error {
	res := r.db.Model(&advanceDatamodel.Advance{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deduction_amount":     amount,
			"deduction_frequency":  frequency,
			"deduction_start_date": startDate,
			"deduction_end_date":   endDate,
			"updated_at":           time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrAdvanceNotFound
	}
	return nil
}

// stateError distinguishes a missing row from a status conflict after a
// guarded update matched nothing.
func (r *AdvanceRepository) stateError(id int64) error {
	var row advanceDatamodel.Advance
	if err := r.db.Select("id").Where("id = ?", id).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return internal.ErrAdvanceNotFound
		}
		return err
	}
	return internal.ErrInvalidAdvanceStatus
}

func (r *AdvanceRepository) balanceError(tx *gorm.DB, id int64, amount decimal.Decimal) error {
	var row advanceDatamodel.Advance
	if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return internal.ErrAdvanceNotFound
		}
		return err
	}
	if row.Status != advance.StatusApproved && row.Status != advance.StatusActive {
		return internal.ErrInvalidAdvanceStatus
	}
	if row.RemainingAmount.LessThan(amount) {
		return internal.ErrInsufficientBalance
	}
	return internal.ErrInvalidAdvanceStatus
}

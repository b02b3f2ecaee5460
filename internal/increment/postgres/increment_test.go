package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hrops/backoffice/internal"
	"github.com/hrops/backoffice/internal/employee"
	"github.com/hrops/backoffice/internal/increment"
)

func TestIncrementRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "IncrementRepository Suite")
}

type SQLiteSalaryIncrement struct {
	ID                        int64            `gorm:"primaryKey"`
	EmployeeID                int64            `gorm:"column:employee_id;not null"`
	CurrentBaseSalary         decimal.Decimal  `gorm:"column:current_base_salary;type:numeric"`
	CurrentFoodAllowance      decimal.Decimal  `gorm:"column:current_food_allowance;type:numeric"`
	CurrentHousingAllowance   decimal.Decimal  `gorm:"column:current_housing_allowance;type:numeric"`
	CurrentTransportAllowance decimal.Decimal  `gorm:"column:current_transport_allowance;type:numeric"`
	NewBaseSalary             decimal.Decimal  `gorm:"column:new_base_salary;type:numeric"`
	NewFoodAllowance          decimal.Decimal  `gorm:"column:new_food_allowance;type:numeric"`
	NewHousingAllowance       decimal.Decimal  `gorm:"column:new_housing_allowance;type:numeric"`
	NewTransportAllowance     decimal.Decimal  `gorm:"column:new_transport_allowance;type:numeric"`
	IncrementType             string           `gorm:"column:increment_type"`
	IncrementPercentage       *decimal.Decimal `gorm:"column:increment_percentage;type:numeric"`
	IncrementAmount           *decimal.Decimal `gorm:"column:increment_amount;type:numeric"`
	Reason                    string           `gorm:"column:reason"`
	EffectiveDate             time.Time        `gorm:"column:effective_date"`
	Status                    string           `gorm:"column:status"`
	RequestedBy               int64            `gorm:"column:requested_by"`
	RequestedAt               time.Time        `gorm:"column:requested_at"`
	ApprovedBy                *int64           `gorm:"column:approved_by"`
	ApprovedAt                *time.Time       `gorm:"column:approved_at"`
	RejectedBy                *int64           `gorm:"column:rejected_by"`
	RejectedAt                *time.Time       `gorm:"column:rejected_at"`
	RejectionReason           *string          `gorm:"column:rejection_reason"`
	Notes                     *string          `gorm:"column:notes"`
	AppliedAt                 *time.Time       `gorm:"column:applied_at"`
	CreatedAt                 time.Time        `gorm:"column:created_at"`
	UpdatedAt                 time.Time        `gorm:"column:updated_at"`
}

func (SQLiteSalaryIncrement) TableName() string {
	return "salary_increments"
}

type SQLiteEmployeeSalary struct {
	ID                 int64           `gorm:"primaryKey"`
	EmployeeID         int64           `gorm:"column:employee_id;not null"`
	BaseSalary         decimal.Decimal `gorm:"column:base_salary;type:numeric"`
	FoodAllowance      decimal.Decimal `gorm:"column:food_allowance;type:numeric"`
	HousingAllowance   decimal.Decimal `gorm:"column:housing_allowance;type:numeric"`
	TransportAllowance decimal.Decimal `gorm:"column:transport_allowance;type:numeric"`
	Status             string          `gorm:"column:status"`
	EffectiveFrom      time.Time       `gorm:"column:effective_from"`
	EffectiveTo        *time.Time      `gorm:"column:effective_to"`
	CreatedAt          time.Time       `gorm:"column:created_at"`
	UpdatedAt          time.Time       `gorm:"column:updated_at"`
}

func (SQLiteEmployeeSalary) TableName() string {
	return "employee_salaries"
}

var _ = Describe("IncrementRepository", func() {
	var (
		db   *gorm.DB
		repo increment.Repository
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

	newIncrement := func(status string, effective time.Time) *increment.SalaryIncrement {
		return &increment.SalaryIncrement{
			EmployeeID:    1,
			CurrentSalary: snapshot("1000", "100", "300", "50"),
			NewSalary:     snapshot("1100", "100", "300", "50"),
			IncrementType: increment.TypeAmount,
			Reason:        "annual adjustment",
			EffectiveDate: effective,
			Status:        status,
			RequestedBy:   7,
			RequestedAt:   time.Now(),
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}
	}

	openSalaryRow := func(employeeID int64) {
		err := db.Create(&SQLiteEmployeeSalary{
			EmployeeID:         employeeID,
			BaseSalary:         money("1000"),
			FoodAllowance:      money("100"),
			HousingAllowance:   money("300"),
			TransportAllowance: money("50"),
			Status:             employee.SalaryStatusApproved,
			EffectiveFrom:      time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC),
		}).Error
		Expect(err).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteSalaryIncrement{}, &SQLiteEmployeeSalary{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewIncrementRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create and GetByID", func() {
		It("persists both salary snapshots", func() {
			inc := newIncrement(increment.StatusPending, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))

			err := repo.Create(inc)
			Expect(err).NotTo(HaveOccurred())
			Expect(inc.ID).To(BeNumerically(">", 0))

			retrieved, err := repo.GetByID(inc.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.CurrentSalary.BaseSalary.Equal(money("1000"))).To(BeTrue())
			Expect(retrieved.NewSalary.BaseSalary.Equal(money("1100"))).To(BeTrue())
			Expect(retrieved.Status).To(Equal(increment.StatusPending))
		})

		It("returns ErrIncrementNotFound for a missing id", func() {
			retrieved, err := repo.GetByID(99999)
			Expect(err).To(Equal(internal.ErrIncrementNotFound))
			Expect(retrieved).To(BeNil())
		})
	})

	Describe("Approve and Reject", func() {
		It("approves only pending increments", func() {
			inc := newIncrement(increment.StatusPending, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))
			Expect(repo.Create(inc)).To(Succeed())

			Expect(repo.Approve(inc.ID, 9, time.Now())).To(Succeed())

			err := repo.Approve(inc.ID, 10, time.Now())
			Expect(err).To(Equal(internal.ErrInvalidIncrementStatus))

			retrieved, err := repo.GetByID(inc.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.Status).To(Equal(increment.StatusApproved))
			Expect(*retrieved.ApprovedBy).To(Equal(int64(9)))
		})

		It("refuses to reject an approved increment", func() {
			inc := newIncrement(increment.StatusApproved, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))
			Expect(repo.Create(inc)).To(Succeed())

			err := repo.Reject(inc.ID, 9, "too late", time.Now())
			Expect(err).To(Equal(internal.ErrInvalidIncrementStatus))
		})

		It("returns ErrIncrementNotFound for a missing id", func() {
			err := repo.Approve(99999, 9, time.Now())
			Expect(err).To(Equal(internal.ErrIncrementNotFound))
		})
	})

	Describe("Apply", func() {
		effective := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

		It("closes the open salary record and inserts the new one", func() {
			openSalaryRow(1)
			inc := newIncrement(increment.StatusApproved, effective)
			Expect(repo.Create(inc)).To(Succeed())

			err := repo.Apply(inc.ID, time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC))
			Expect(err).NotTo(HaveOccurred())

			retrieved, err := repo.GetByID(inc.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.Status).To(Equal(increment.StatusApplied))
			Expect(retrieved.AppliedAt).NotTo(BeNil())

			var rows []SQLiteEmployeeSalary
			err = db.Where("employee_id = ?", 1).Order("effective_from ASC").Find(&rows).Error
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))

			Expect(rows[0].EffectiveTo).NotTo(BeNil())
			Expect(rows[0].EffectiveTo.Format("2006-01-02")).To(Equal("2024-02-29"))

			Expect(rows[1].EffectiveTo).To(BeNil())
			Expect(rows[1].BaseSalary.Equal(money("1100"))).To(BeTrue())
			Expect(rows[1].EffectiveFrom.Format("2006-01-02")).To(Equal("2024-03-01"))
		})

		It("refuses a second apply and leaves a single open salary record", func() {
			openSalaryRow(1)
			inc := newIncrement(increment.StatusApproved, effective)
			Expect(repo.Create(inc)).To(Succeed())
			Expect(repo.Apply(inc.ID, time.Now())).To(Succeed())

			err := repo.Apply(inc.ID, time.Now())
			Expect(err).To(Equal(internal.ErrInvalidIncrementStatus))

			var count int64
			err = db.Model(&SQLiteEmployeeSalary{}).
				Where("employee_id = ? AND effective_to IS NULL", 1).
				Count(&count).Error
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})

		It("refuses to apply a pending increment without touching salary history", func() {
			openSalaryRow(1)
			inc := newIncrement(increment.StatusPending, effective)
			Expect(repo.Create(inc)).To(Succeed())

			err := repo.Apply(inc.ID, time.Now())
			Expect(err).To(Equal(internal.ErrInvalidIncrementStatus))

			var count int64
			err = db.Model(&SQLiteEmployeeSalary{}).Where("employee_id = ?", 1).Count(&count).Error
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})

		It("returns ErrIncrementNotFound for a missing id", func() {
			err := repo.Apply(99999, time.Now())
			Expect(err).To(Equal(internal.ErrIncrementNotFound))
		})
	})

	Describe("GetDue", func() {
		It("returns approved increments effective on or before the cutoff, oldest first", func() {
			march := newIncrement(increment.StatusApproved, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
			february := newIncrement(increment.StatusApproved, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))
			april := newIncrement(increment.StatusApproved, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))
			pending := newIncrement(increment.StatusPending, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))
			for _, inc := range []*increment.SalaryIncrement{march, february, april, pending} {
				Expect(repo.Create(inc)).To(Succeed())
			}

			due, err := repo.GetDue(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
			Expect(err).NotTo(HaveOccurred())
			Expect(due).To(HaveLen(2))
			Expect(due[0].ID).To(Equal(february.ID))
			Expect(due[1].ID).To(Equal(march.ID))
		})
	})

	Describe("Statistics", func() {
		It("returns zero values over an empty table", func() {
			stats, err := repo.Statistics(nil, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TotalIncrements).To(Equal(int64(0)))
			Expect(stats.AppliedIncrements).To(Equal(int64(0)))
			Expect(stats.TotalIncrementAmount.IsZero()).To(BeTrue())
			Expect(stats.AverageIncrementPercentage.IsZero()).To(BeTrue())
			Expect(stats.ByType).To(BeEmpty())
		})

		It("counts by status and sums applied deltas", func() {
			applied := newIncrement(increment.StatusApplied, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))
			pct := money("10")
			applied.IncrementType = increment.TypePercentage
			applied.Percentage = &pct
			pending := newIncrement(increment.StatusPending, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))
			rejected := newIncrement(increment.StatusRejected, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))
			for _, inc := range []*increment.SalaryIncrement{applied, pending, rejected} {
				Expect(repo.Create(inc)).To(Succeed())
			}

			stats, err := repo.Statistics(nil, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TotalIncrements).To(Equal(int64(3)))
			Expect(stats.PendingIncrements).To(Equal(int64(1)))
			Expect(stats.RejectedIncrements).To(Equal(int64(1)))
			Expect(stats.AppliedIncrements).To(Equal(int64(1)))
			Expect(stats.TotalIncrementAmount.Equal(money("100"))).To(BeTrue())
			Expect(stats.AverageIncrementPercentage.Equal(money("10"))).To(BeTrue())
			Expect(stats.ByType).To(HaveKey(increment.TypePercentage))
			Expect(stats.ByType[increment.TypePercentage].Count).To(Equal(int64(1)))
		})
	})
})

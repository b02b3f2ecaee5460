package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			tables := []string{
				"advance_repayments",
				"salary_advances",
				"salary_increments",
				"employee_assignments",
				"employee_salaries",
				"employees",
				"hr_users",
			}
			for _, table := range tables {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		hrUsers := []struct {
			Email string
			Name  string
		}{
			{"dina.hr@mail.com", "Dina HR"},
			{"marwan.payroll@mail.com", "Marwan Payroll"},
		}

		for _, u := range hrUsers {
			var exists int
			row := db.Raw("SELECT 1 FROM hr_users WHERE email = ?", u.Email).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Println("hr user already exists:", u.Email)
				continue
			}

			if err := db.Exec("INSERT INTO hr_users (email, name, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())", u.Email, u.Name, string(hash)).Error; err != nil {
				log.Fatalf("failed to insert hr user %s: %v", u.Email, err)
			}
			fmt.Println("Seeded hr user:", u.Email)
		}

		employees := []struct {
			FileNumber  string
			FirstName   string
			LastName    string
			Email       string
			BasicSalary string
		}{
			{"EMP-0001", "Ahmed", "Saleh", "ahmed.saleh@mail.com", "4500.00"},
			{"EMP-0002", "Fatima", "Khan", "fatima.khan@mail.com", "5200.00"},
			{"EMP-0003", "Jose", "Rivera", "jose.rivera@mail.com", "3800.00"},
		}

		for _, e := range employees {
			var exists int
			row := db.Raw("SELECT 1 FROM employees WHERE file_number = ?", e.FileNumber).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Println("employee already exists:", e.FileNumber)
				continue
			}

			if err := db.Exec("INSERT INTO employees (file_number, first_name, last_name, email, basic_salary, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, 'active', now(), now())",
				e.FileNumber, e.FirstName, e.LastName, e.Email, e.BasicSalary).Error; err != nil {
				log.Fatalf("failed to insert employee %s: %v", e.FileNumber, err)
			}

			var employeeID int64
			if err := db.Raw("SELECT id FROM employees WHERE file_number = ?", e.FileNumber).Row().Scan(&employeeID); err != nil {
				log.Fatalf("failed to lookup employee id for %s: %v", e.FileNumber, err)
			}

			if err := db.Exec("INSERT INTO employee_salaries (employee_id, base_salary, food_allowance, housing_allowance, transport_allowance, status, effective_from, created_at, updated_at) VALUES (?, ?, 200.00, 600.00, 150.00, 'approved', date_trunc('month', now()), now(), now())",
				employeeID, e.BasicSalary).Error; err != nil {
				log.Fatalf("failed to insert salary for %s: %v", e.FileNumber, err)
			}

			if err := db.Exec("INSERT INTO employee_assignments (employee_id, type, name, status, start_date, created_at, updated_at) VALUES (?, 'manual', 'Head Office', 'active', date_trunc('month', now()), now(), now())",
				employeeID).Error; err != nil {
				log.Fatalf("failed to insert assignment for %s: %v", e.FileNumber, err)
			}

			fmt.Println("Seeded employee:", e.FileNumber)
		}

		fmt.Println("Seeding complete")
	},
}

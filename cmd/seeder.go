package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with reference data",
	Long:  `Seed roles, departments, extra hour types and the initial accounts.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			log.Fatalf("failed to open gorm connection: %v", err)
		}

		if clearData {
			for _, table := range []string{"approvals", "extra_hours", "users", "extra_hour_types", "departments", "roles"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		roles := []string{"administrator", "employee"}
		for _, name := range roles {
			var exists int
			if err := db.Raw("SELECT 1 FROM roles WHERE name = ?", name).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO roles (name) VALUES (?)", name).Error; err != nil {
				log.Fatalf("failed to insert role %s: %v", name, err)
			}
			fmt.Println("Seeded role:", name)
		}

		departments := []struct {
			Name     string
			Location string
		}{
			{"Technology", "Main building, tower 2, floor 7"},
			{"Administration", "Corporate building, management"},
		}
		for _, d := range departments {
			var exists int
			if err := db.Raw("SELECT 1 FROM departments WHERE name = ?", d.Name).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO departments (name, location, created_at) VALUES (?, ?, now())", d.Name, d.Location).Error; err != nil {
				log.Fatalf("failed to insert department %s: %v", d.Name, err)
			}
			fmt.Println("Seeded department:", d.Name)
		}

		types := []string{
			"Diurna",
			"Nocturna",
			"Dominical Diurna",
			"Dominical Nocturna",
			"Festiva Diurna",
			"Festiva Nocturna",
		}
		for _, name := range types {
			var exists int
			if err := db.Raw("SELECT 1 FROM extra_hour_types WHERE name = ?", name).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO extra_hour_types (name, created_at) VALUES (?, now())", name).Error; err != nil {
				log.Fatalf("failed to insert extra hour type %s: %v", name, err)
			}
			fmt.Println("Seeded extra hour type:", name)
		}

		var adminRoleID, employeeRoleID int64
		if err := db.Raw("SELECT id FROM roles WHERE name = ?", "administrator").Row().Scan(&adminRoleID); err != nil {
			log.Fatalf("administrator role not found after seeding: %v", err)
		}
		if err := db.Raw("SELECT id FROM roles WHERE name = ?", "employee").Row().Scan(&employeeRoleID); err != nil {
			log.Fatalf("employee role not found after seeding: %v", err)
		}

		var techDeptID int64
		if err := db.Raw("SELECT id FROM departments WHERE name = ?", "Technology").Row().Scan(&techDeptID); err != nil {
			log.Fatalf("technology department not found after seeding: %v", err)
		}
		var adminDeptID int64
		if err := db.Raw("SELECT id FROM departments WHERE name = ?", "Administration").Row().Scan(&adminDeptID); err != nil {
			log.Fatalf("administration department not found after seeding: %v", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		accounts := []struct {
			Name         string
			Email        string
			Salary       int64
			RoleID       int64
			DepartmentID int64
		}{
			{"admin", cfg.Security.PrincipalAdminEmail, 20000000, adminRoleID, adminDeptID},
			{"dante", "dante@empleado.com", 8000000, employeeRoleID, techDeptID},
		}
		for _, a := range accounts {
			var exists int
			if err := db.Raw("SELECT 1 FROM users WHERE email = ?", a.Email).Row().Scan(&exists); err == nil {
				fmt.Println("user already exists:", a.Email)
				continue
			}
			if err := db.Exec(
				"INSERT INTO users (name, email, password_hash, salary, role_id, department_id, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, true, now(), now())",
				a.Name, a.Email, string(hash), a.Salary, a.RoleID, a.DepartmentID,
			).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", a.Email, err)
			}
			fmt.Println("Seeded user:", a.Email)
		}

		fmt.Println("Seeding completed")
	},
}

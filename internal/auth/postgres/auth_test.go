package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cloudnative-amadeus/extrahours/internal/auth"
	authPostgres "github.com/cloudnative-amadeus/extrahours/internal/auth/postgres"
)

func TestAuthPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Postgres Suite")
}

// SQLite-compatible models for testing
type SQLiteUser struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Salary       int64     `gorm:"column:salary"`
	RoleID       int64     `gorm:"column:role_id;not null"`
	DepartmentID int64     `gorm:"column:department_id"`
	IsActive     bool      `gorm:"column:is_active"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (SQLiteUser) TableName() string { return "users" }

type SQLiteRole struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"column:name;uniqueIndex;not null"`
}

func (SQLiteRole) TableName() string { return "roles" }

var _ = Describe("Auth PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo auth.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteUser{}, &SQLiteRole{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.Create(&SQLiteRole{ID: 1, Name: auth.RoleAdministrator}).Error).To(Succeed())
		Expect(db.Create(&SQLiteRole{ID: 2, Name: auth.RoleEmployee}).Error).To(Succeed())
		Expect(db.Create(&SQLiteUser{
			Name: "Alice", Email: "alice@example.com",
			PasswordHash: "$2a$10$somehash", RoleID: 2, IsActive: true,
		}).Error).To(Succeed())
		Expect(db.Create(&SQLiteUser{
			Name: "Gone", Email: "gone@example.com",
			PasswordHash: "$2a$10$otherhash", RoleID: 2, IsActive: false,
		}).Error).To(Succeed())

		repo = authPostgres.NewRepository(db)
	})

	Describe("GetCredentials", func() {
		It("should return the stored hash for an active user", func() {
			hash, userID, err := repo.GetCredentials("alice@example.com")

			Expect(err).NotTo(HaveOccurred())
			Expect(hash).To(Equal("$2a$10$somehash"))
			Expect(userID).To(BeNumerically(">", 0))
		})

		It("should not return credentials for a deactivated user", func() {
			_, _, err := repo.GetCredentials("gone@example.com")

			Expect(err).To(HaveOccurred())
		})

		It("should error for an unknown email", func() {
			_, _, err := repo.GetCredentials("nobody@example.com")

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetUserWithRole", func() {
		It("should resolve the role name through the join", func() {
			_, userID, err := repo.GetCredentials("alice@example.com")
			Expect(err).NotTo(HaveOccurred())

			user, err := repo.GetUserWithRole(userID)

			Expect(err).NotTo(HaveOccurred())
			Expect(user.Email).To(Equal("alice@example.com"))
			Expect(user.Role).To(Equal(auth.RoleEmployee))
		})

		It("should error for a deactivated user", func() {
			var row SQLiteUser
			Expect(db.Where("email = ?", "gone@example.com").First(&row).Error).To(Succeed())

			_, err := repo.GetUserWithRole(row.ID)

			Expect(err).To(HaveOccurred())
		})
	})
})

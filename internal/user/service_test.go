package user_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/cloudnative-amadeus/extrahours/internal"
	"github.com/cloudnative-amadeus/extrahours/internal/auth"
	userDatamodel "github.com/cloudnative-amadeus/extrahours/internal/core/datamodel/user"
	"github.com/cloudnative-amadeus/extrahours/internal/user"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

type mockUserRepository struct {
	users  map[int64]*userDatamodel.User
	roles  map[int64]*userDatamodel.Role
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[int64]*userDatamodel.User),
		roles: map[int64]*userDatamodel.Role{
			1: {ID: 1, Name: auth.RoleAdministrator},
			2: {ID: 2, Name: auth.RoleEmployee},
		},
		nextID: 1,
	}
}

func (m *mockUserRepository) Create(ctx context.Context, row *userDatamodel.User) error {
	row.ID = m.nextID
	m.nextID++
	m.users[row.ID] = row
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
	row, exists := m.users[id]
	if !exists || !row.IsActive {
		return nil, apperrors.ErrUserNotFound
	}
	return row, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	for _, row := range m.users {
		if row.Email == email {
			return row, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *mockUserRepository) GetAll(ctx context.Context) ([]*userDatamodel.User, error) {
	var out []*userDatamodel.User
	for _, row := range m.users {
		if row.IsActive {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *mockUserRepository) Update(ctx context.Context, row *userDatamodel.User) error {
	m.users[row.ID] = row
	return nil
}

func (m *mockUserRepository) Deactivate(ctx context.Context, id int64) error {
	if row, exists := m.users[id]; exists {
		row.IsActive = false
		row.UpdatedAt = time.Now()
	}
	return nil
}

func (m *mockUserRepository) GetRoleByName(ctx context.Context, name string) (*userDatamodel.Role, error) {
	for _, role := range m.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *mockUserRepository) GetRoleByID(ctx context.Context, id int64) (*userDatamodel.Role, error) {
	role, exists := m.roles[id]
	if !exists {
		return nil, apperrors.ErrUserNotFound
	}
	return role, nil
}

var _ = Describe("UserService", func() {
	var (
		service  *user.Service
		mockRepo *mockUserRepository
		guard    *auth.Guard

		admin    *auth.User
		employee *auth.User
	)

	registerDTO := func(email string) user.RegisterUserDTO {
		return user.RegisterUserDTO{
			Name:     "Alice",
			Email:    email,
			Password: "correct-horse",
			Salary:   42000,
		}
	}

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		guard = auth.NewGuard("admin@admin.com", logger)
		service = user.NewService(mockRepo, guard, bcrypt.MinCost, logger)

		admin = &auth.User{ID: 1, Email: "admin@admin.com", Role: auth.RoleAdministrator}
		employee = &auth.User{ID: 2, Email: "alice@example.com", Role: auth.RoleEmployee}
	})

	Describe("Register", func() {
		It("should create an active employee by default", func() {
			created, err := service.Register(context.Background(), registerDTO("alice@example.com"))

			Expect(err).ToNot(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.Role).To(Equal(auth.RoleEmployee))
			Expect(created.IsActive).To(BeTrue())
		})

		It("should hash the password with bcrypt", func() {
			created, err := service.Register(context.Background(), registerDTO("alice@example.com"))
			Expect(err).ToNot(HaveOccurred())

			stored := mockRepo.users[created.ID]
			Expect(stored.PasswordHash).ToNot(Equal("correct-horse"))
			Expect(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse"))).To(Succeed())
		})

		It("should normalize the email to lowercase", func() {
			created, err := service.Register(context.Background(), registerDTO("Alice@Example.COM"))

			Expect(err).ToNot(HaveOccurred())
			Expect(created.Email).To(Equal("alice@example.com"))
		})

		It("should reject a duplicate email", func() {
			_, err := service.Register(context.Background(), registerDTO("alice@example.com"))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Register(context.Background(), registerDTO("alice@example.com"))

			Expect(err).To(MatchError(apperrors.ErrDuplicateEmail))
		})

		It("should reject a short password", func() {
			dto := registerDTO("alice@example.com")
			dto.Password = "short"

			_, err := service.Register(context.Background(), dto)

			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})

		It("should reject an unknown role name", func() {
			dto := registerDTO("alice@example.com")
			dto.Role = "superuser"

			_, err := service.Register(context.Background(), dto)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Update", func() {
		var created *user.User

		BeforeEach(func() {
			var err error
			created, err = service.Register(context.Background(), registerDTO("alice@example.com"))
			Expect(err).ToNot(HaveOccurred())
		})

		It("should change the name", func() {
			updated, err := service.Update(context.Background(), created.ID, user.UpdateUserDTO{Name: "Alice B"})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Name).To(Equal("Alice B"))
		})

		It("should change the salary", func() {
			salary := int64(50000)
			updated, err := service.Update(context.Background(), created.ID, user.UpdateUserDTO{Salary: &salary})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Salary).To(Equal(salary))
		})

		It("should reject an empty update", func() {
			_, err := service.Update(context.Background(), created.ID, user.UpdateUserDTO{})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Delete", func() {
		var target *user.User

		BeforeEach(func() {
			var err error
			target, err = service.Register(context.Background(), registerDTO("alice@example.com"))
			Expect(err).ToNot(HaveOccurred())
		})

		It("should deactivate a regular user when called by an administrator", func() {
			err := service.Delete(context.Background(), admin, target.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.users[target.ID].IsActive).To(BeFalse())
		})

		It("should deny deletion by an employee", func() {
			err := service.Delete(context.Background(), employee, target.ID)

			Expect(err).To(MatchError(apperrors.ErrInsufficientRole))
			Expect(mockRepo.users[target.ID].IsActive).To(BeTrue())
		})

		It("should never delete the principal administrator", func() {
			dto := registerDTO("admin@admin.com")
			dto.Role = auth.RoleAdministrator
			principal, err := service.Register(context.Background(), dto)
			Expect(err).ToNot(HaveOccurred())

			err = service.Delete(context.Background(), admin, principal.ID)

			Expect(err).To(MatchError(apperrors.ErrProtectedUser))
			Expect(mockRepo.users[principal.ID].IsActive).To(BeTrue())
		})

		It("should deny the principal administrator deletion regardless of email case", func() {
			dto := registerDTO("Admin@Admin.com")
			dto.Role = auth.RoleAdministrator
			principal, err := service.Register(context.Background(), dto)
			Expect(err).ToNot(HaveOccurred())

			err = service.Delete(context.Background(), admin, principal.ID)

			Expect(err).To(MatchError(apperrors.ErrProtectedUser))
		})
	})
})

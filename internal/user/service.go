package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloudnative-amadeus/extrahours/internal"
	"github.com/cloudnative-amadeus/extrahours/internal/auth"
	userDatamodel "github.com/cloudnative-amadeus/extrahours/internal/core/datamodel/user"
)

type Repository interface {
	Create(ctx context.Context, row *userDatamodel.User) error
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	GetAll(ctx context.Context) ([]*userDatamodel.User, error)
	Update(ctx context.Context, row *userDatamodel.User) error
	Deactivate(ctx context.Context, id int64) error
	GetRoleByName(ctx context.Context, name string) (*userDatamodel.Role, error)
	GetRoleByID(ctx context.Context, id int64) (*userDatamodel.Role, error)
}

// Service manages the employee roster. Deletion runs through the guard so
// the principal administrator account can never be removed.
type Service struct {
	repo         Repository
	guard        *auth.Guard
	logger       *slog.Logger
	bcryptCost   int
	storeTimeout time.Duration
}

func NewService(repo Repository, guard *auth.Guard, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		guard:        guard,
		logger:       logger,
		bcryptCost:   bcryptCost,
		storeTimeout: internal.DefaultStoreTimeout,
	}
}

func (s *Service) Register(ctx context.Context, dto RegisterUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	existing, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil && err != internal.ErrUserNotFound {
		return nil, internal.WrapStoreError(err)
	}
	if existing != nil {
		s.logger.Warn("registration rejected: email taken", "email", dto.Email)
		return nil, internal.ErrDuplicateEmail
	}

	role, err := s.repo.GetRoleByName(ctx, dto.Role)
	if err != nil {
		return nil, internal.WrapStoreError(err)
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("failed to process password", err)
	}

	now := time.Now()
	row := &userDatamodel.User{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
		Salary:       dto.Salary,
		RoleID:       role.ID,
		DepartmentID: dto.DepartmentID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, internal.WrapStoreError(err)
	}

	s.logger.Info("user registered", "user_id", row.ID, "email", row.Email, "role", role.Name)
	return FromDataModel(row, role.Name), nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.WrapStoreError(err)
	}
	role, err := s.repo.GetRoleByID(ctx, row.RoleID)
	if err != nil {
		return nil, internal.WrapStoreError(err)
	}
	return FromDataModel(row, role.Name), nil
}

func (s *Service) GetAll(ctx context.Context) ([]*User, error) {
	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.WrapStoreError(err)
	}

	roleNames := make(map[int64]string)
	out := make([]*User, 0, len(rows))
	for _, row := range rows {
		name, ok := roleNames[row.RoleID]
		if !ok {
			role, err := s.repo.GetRoleByID(ctx, row.RoleID)
			if err != nil {
				return nil, internal.WrapStoreError(err)
			}
			name = role.Name
			roleNames[row.RoleID] = name
		}
		out = append(out, FromDataModel(row, name))
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.WrapStoreError(err)
	}

	if dto.Name != "" {
		row.Name = dto.Name
	}
	if dto.Salary != nil {
		row.Salary = *dto.Salary
	}
	if dto.DepartmentID != nil {
		row.DepartmentID = *dto.DepartmentID
	}
	row.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, internal.WrapStoreError(err)
	}

	role, err := s.repo.GetRoleByID(ctx, row.RoleID)
	if err != nil {
		return nil, internal.WrapStoreError(err)
	}

	s.logger.Info("user updated", "user_id", id)
	return FromDataModel(row, role.Name), nil
}

// Delete deactivates a user. The guard denies the principal administrator
// unconditionally.
func (s *Service) Delete(ctx context.Context, caller *auth.User, id int64) error {
	ctx, cancel := internal.WithStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.WrapStoreError(err)
	}

	if err := s.guard.AuthorizeUserDeletion(caller, row.Email); err != nil {
		return err
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		s.logger.Error("failed to deactivate user", "error", err, "user_id", id)
		return internal.WrapStoreError(err)
	}

	s.logger.Info("user deactivated", "user_id", id, "caller_id", caller.ID)
	return nil
}

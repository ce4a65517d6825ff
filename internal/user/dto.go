package user

import (
	"strings"

	"github.com/cloudnative-amadeus/extrahours/internal"
	"github.com/cloudnative-amadeus/extrahours/internal/auth"
)

const minPasswordLength = 8

type RegisterUserDTO struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Salary       int64  `json:"salary,omitempty"`
	Role         string `json:"role,omitempty"`
	DepartmentID int64  `json:"department_id,omitempty"`
}

func (dto *RegisterUserDTO) Validate() error {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))

	if dto.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if dto.Email == "" || !strings.Contains(dto.Email, "@") {
		return internal.NewValidationFieldError("email", "a valid email is required", internal.ErrCodeValidationFailed)
	}
	if len(dto.Password) < minPasswordLength {
		return internal.NewValidationFieldError("password", "password must be at least 8 characters", internal.ErrCodeValidationFailed)
	}
	if dto.Role == "" {
		dto.Role = auth.RoleEmployee
	}
	if dto.Role != auth.RoleEmployee && dto.Role != auth.RoleAdministrator {
		return internal.NewValidationFieldError("role", "role must be employee or administrator", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateUserDTO struct {
	Name         string `json:"name,omitempty"`
	Salary       *int64 `json:"salary,omitempty"`
	DepartmentID *int64 `json:"department_id,omitempty"`
}

func (dto *UpdateUserDTO) Validate() error {
	dto.Name = strings.TrimSpace(dto.Name)
	if dto.Name == "" && dto.Salary == nil && dto.DepartmentID == nil {
		return internal.NewValidationFieldError("body", "nothing to update", internal.ErrCodeValidationFailed)
	}
	return nil
}

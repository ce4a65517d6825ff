package user

import (
	"time"

	userDatamodel "github.com/cloudnative-amadeus/extrahours/internal/core/datamodel/user"
)

// User is the roster view of an employee. The password hash never leaves the
// persistence layer.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Salary       int64     `json:"salary,omitempty"`
	Role         string    `json:"role"`
	DepartmentID int64     `json:"department_id,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromDataModel(row *userDatamodel.User, roleName string) *User {
	return &User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		Salary:       row.Salary,
		Role:         roleName,
		DepartmentID: row.DepartmentID,
		IsActive:     row.IsActive,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/cloudnative-amadeus/extrahours/internal"
	departmentDatamodel "github.com/cloudnative-amadeus/extrahours/internal/core/datamodel/department"
	"github.com/cloudnative-amadeus/extrahours/internal/department"
)

// DepartmentRepository implements department.Repository using GORM
type DepartmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *gorm.DB) department.Repository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*departmentDatamodel.Department, error) {
	var row departmentDatamodel.Department
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDeptNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*departmentDatamodel.Department, error) {
	var rows []*departmentDatamodel.Department
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/cloudnative-amadeus/extrahours/internal"
	hourtypeDatamodel "github.com/cloudnative-amadeus/extrahours/internal/core/datamodel/hourtype"
	"github.com/cloudnative-amadeus/extrahours/internal/hourtype"
)

// ExtraHourTypeRepository implements hourtype.Repository using GORM
type ExtraHourTypeRepository struct {
	db *gorm.DB
}

// NewExtraHourTypeRepository creates a new extra hour type repository
func NewExtraHourTypeRepository(db *gorm.DB) hourtype.Repository {
	return &ExtraHourTypeRepository{db: db}
}

func (r *ExtraHourTypeRepository) Create(ctx context.Context, row *hourtypeDatamodel.ExtraHourType) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *ExtraHourTypeRepository) GetByID(ctx context.Context, id int64) (*hourtypeDatamodel.ExtraHourType, error) {
	var row hourtypeDatamodel.ExtraHourType
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTypeNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *ExtraHourTypeRepository) GetByName(ctx context.Context, name string) (*hourtypeDatamodel.ExtraHourType, error) {
	var row hourtypeDatamodel.ExtraHourType
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTypeNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *ExtraHourTypeRepository) GetAll(ctx context.Context) ([]*hourtypeDatamodel.ExtraHourType, error) {
	var rows []*hourtypeDatamodel.ExtraHourType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *ExtraHourTypeRepository) Update(ctx context.Context, row *hourtypeDatamodel.ExtraHourType) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *ExtraHourTypeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&hourtypeDatamodel.ExtraHourType{}).Error
}

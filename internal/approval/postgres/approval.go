package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/cloudnative-amadeus/extrahours/internal"
	"github.com/cloudnative-amadeus/extrahours/internal/approval"
	approvalDatamodel "github.com/cloudnative-amadeus/extrahours/internal/core/datamodel/approval"
)

// ApprovalRepository implements approval.Repository using GORM. Read-only:
// decision rows are inserted by the workflow transaction, never here.
type ApprovalRepository struct {
	db *gorm.DB
}

// NewApprovalRepository creates a new approval repository
func NewApprovalRepository(db *gorm.DB) approval.Repository {
	return &ApprovalRepository{db: db}
}

func (r *ApprovalRepository) GetByID(ctx context.Context, id int64) (*approvalDatamodel.Approval, error) {
	var row approvalDatamodel.Approval
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApprovalNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *ApprovalRepository) GetAll(ctx context.Context) ([]*approvalDatamodel.Approval, error) {
	var rows []*approvalDatamodel.Approval
	err := r.db.WithContext(ctx).Order("approved_at DESC").Find(&rows).Error
	return rows, err
}

func (r *ApprovalRepository) GetByExtraHour(ctx context.Context, extraHourID int64) ([]*approvalDatamodel.Approval, error) {
	var rows []*approvalDatamodel.Approval
	err := r.db.WithContext(ctx).
		Where("extra_hour_id = ?", extraHourID).
		Order("approved_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *ApprovalRepository) GetByUser(ctx context.Context, userID int64) ([]*approvalDatamodel.Approval, error) {
	var rows []*approvalDatamodel.Approval
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("approved_at DESC").
		Find(&rows).Error
	return rows, err
}

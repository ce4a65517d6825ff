package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/cloudnative-amadeus/extrahours/internal"
	approvalDatamodel "github.com/cloudnative-amadeus/extrahours/internal/core/datamodel/approval"
	extrahourDatamodel "github.com/cloudnative-amadeus/extrahours/internal/core/datamodel/extrahour"
	"github.com/cloudnative-amadeus/extrahours/internal/extrahour"
)

// ExtraHourRepository implements extrahour.Repository using GORM
type ExtraHourRepository struct {
	db *gorm.DB
}

// NewExtraHourRepository creates a new extra hour repository
func NewExtraHourRepository(db *gorm.DB) extrahour.Repository {
	return &ExtraHourRepository{db: db}
}

// Create saves a new extra hour request
func (r *ExtraHourRepository) Create(ctx context.Context, row *extrahourDatamodel.ExtraHour) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// GetByID retrieves a request by its ID
func (r *ExtraHourRepository) GetByID(ctx context.Context, id int64) (*extrahourDatamodel.ExtraHour, error) {
	var row extrahourDatamodel.ExtraHour
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExtraHourNotFound
		}
		return nil, err
	}
	return &row, nil
}

// List retrieves requests matching the filter, newest first
func (r *ExtraHourRepository) List(ctx context.Context, filter extrahour.ListFilter) ([]*extrahourDatamodel.ExtraHour, error) {
	var rows []*extrahourDatamodel.ExtraHour

	query := r.db.WithContext(ctx).Model(&extrahourDatamodel.ExtraHour{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(reason) LIKE LOWER(?)", "%"+filter.Search+"%")
	}

	err := query.Order("date DESC, id DESC").Find(&rows).Error
	return rows, err
}

// UpdatePending rewrites the editable fields of a request, re-checking the
// pending status so a concurrent transition cannot be clobbered.
func (r *ExtraHourRepository) UpdatePending(ctx context.Context, row *extrahourDatamodel.ExtraHour) error {
	res := r.db.WithContext(ctx).Model(&extrahourDatamodel.ExtraHour{}).
		Where("id = ? AND status = ?", row.ID, extrahour.StatusPending).
		Updates(map[string]interface{}{
			"date":               row.Date,
			"start_time":         row.StartTime,
			"end_time":           row.EndTime,
			"extra_hour_type_id": row.ExtraHourTypeID,
			"reason":             row.Reason,
			"updated_at":         time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.missingOrNotPending(ctx, row.ID)
	}
	return nil
}

// DeletePending removes a request only while it is still pending
func (r *ExtraHourRepository) DeletePending(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, extrahour.StatusPending).
		Delete(&extrahourDatamodel.ExtraHour{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.missingOrNotPending(ctx, id)
	}
	return nil
}

// Transition flips a pending request to the given status and appends the
// decision record in the same transaction. The guarded UPDATE makes the
// pending check atomic: of two concurrent decisions exactly one wins, the
// other sees RowsAffected == 0 and gets ErrNotPending.
func (r *ExtraHourRepository) Transition(ctx context.Context, id int64, status string, approverID int64, note string) (*extrahourDatamodel.ExtraHour, error) {
	var row extrahourDatamodel.ExtraHour

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&extrahourDatamodel.ExtraHour{}).
			Where("id = ? AND status = ?", id, extrahour.StatusPending).
			Updates(map[string]interface{}{
				"status":      status,
				"approver_id": approverID,
				"updated_at":  time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&extrahourDatamodel.ExtraHour{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return apperrors.ErrExtraHourNotFound
			}
			return apperrors.ErrNotPending
		}

		decision := &approvalDatamodel.Approval{
			ExtraHourID: id,
			UserID:      approverID,
			Status:      status,
			Annotations: note,
			ApprovedAt:  time.Now(),
		}
		if err := tx.Create(decision).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).First(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ExtraHourRepository) missingOrNotPending(ctx context.Context, id int64) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&extrahourDatamodel.ExtraHour{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperrors.ErrExtraHourNotFound
	}
	return apperrors.ErrNotPending
}

package approval

import (
	"time"

	approvalDatamodel "github.com/cloudnative-amadeus/extrahours/internal/core/datamodel/approval"
)

// ApprovalRecord is one decision taken on an extra hour request. Records are
// append-only: they are written inside the workflow transaction and never
// updated or removed afterwards.
type ApprovalRecord struct {
	ID          int64     `json:"id"`
	ExtraHourID int64     `json:"extra_hour_id"`
	UserID      int64     `json:"user_id"`
	Status      string    `json:"status"`
	Annotations string    `json:"annotations,omitempty"`
	ApprovedAt  time.Time `json:"approved_at"`
}

func FromDataModel(row *approvalDatamodel.Approval) *ApprovalRecord {
	return &ApprovalRecord{
		ID:          row.ID,
		ExtraHourID: row.ExtraHourID,
		UserID:      row.UserID,
		Status:      row.Status,
		Annotations: row.Annotations,
		ApprovedAt:  row.ApprovedAt,
	}
}

func FromDataModelSlice(rows []*approvalDatamodel.Approval) []*ApprovalRecord {
	result := make([]*ApprovalRecord, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		result = append(result, FromDataModel(row))
	}
	return result
}

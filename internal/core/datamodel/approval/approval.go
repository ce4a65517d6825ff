package approval

import "time"

// Approval rows are append-only: one per transition out of pending. The
// extra_hours status/approver columns are denormalized copies of the latest
// row here.
type Approval struct {
	ID          int64     `gorm:"primaryKey"`
	ExtraHourID int64     `gorm:"column:extra_hour_id;not null;index"`
	UserID      int64     `gorm:"column:user_id;not null;index"`
	Status      string    `gorm:"column:status;not null"`
	Annotations string    `gorm:"column:annotations"`
	ApprovedAt  time.Time `gorm:"column:approved_at;default:now()"`
}

func (Approval) TableName() string {
	return "approvals"
}

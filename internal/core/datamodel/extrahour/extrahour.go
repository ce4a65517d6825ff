package extrahour

import "time"

type ExtraHour struct {
	ID              int64     `gorm:"primaryKey"`
	UserID          int64     `gorm:"column:user_id;not null;index"`
	Date            time.Time `gorm:"column:date;type:date;not null"`
	StartTime       time.Time `gorm:"column:start_time;not null"`
	EndTime         time.Time `gorm:"column:end_time;not null"`
	ExtraHourTypeID int64     `gorm:"column:extra_hour_type_id;not null"`
	Reason          string    `gorm:"column:reason"`
	Status          string    `gorm:"column:status;default:pending;index"`
	ApproverID      *int64    `gorm:"column:approver_id"`
	CreatedAt       time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt       time.Time `gorm:"column:updated_at;default:now()"`
}

func (ExtraHour) TableName() string {
	return "extra_hours"
}

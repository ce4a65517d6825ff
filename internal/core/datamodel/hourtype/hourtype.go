package hourtype

import "time"

type ExtraHourType struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (ExtraHourType) TableName() string {
	return "extra_hour_types"
}

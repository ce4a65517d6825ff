package department

import "time"

type Department struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Location  string    `gorm:"column:location"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (Department) TableName() string {
	return "departments"
}

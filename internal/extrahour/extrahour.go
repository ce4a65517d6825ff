package extrahour

import (
	"math"
	"time"

	extrahourDatamodel "github.com/cloudnative-amadeus/extrahours/internal/core/datamodel/extrahour"
)

// Status values are the canonical labels for the request lifecycle. The
// machine is pending -> approved | rejected; both terminal states are final.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type ExtraHour struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Date            time.Time `json:"date"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	ExtraHourTypeID int64     `json:"extra_hour_type_id"`
	Reason          string    `json:"reason,omitempty"`
	Status          string    `json:"status"`
	ApproverID      *int64    `json:"approver_id,omitempty"`
	Hours           int       `json:"hours"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (e *ExtraHour) IsPending() bool {
	return e.Status == StatusPending
}

func (e *ExtraHour) IsOwnedBy(userID int64) bool {
	return e.UserID == userID
}

// Duration returns the claimed span. Anything non-positive is malformed.
func (e *ExtraHour) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

// WorkedHours is the rounded figure reported everywhere hours are displayed
// or aggregated.
func (e *ExtraHour) WorkedHours() int {
	return RoundHours(e.Duration().Hours())
}

// RoundHours rounds worked hours to the nearest whole hour, half up: half an
// hour counts as one. Every display and aggregation path goes through here.
func RoundHours(hours float64) int {
	if hours <= 0 {
		return 0
	}
	return int(math.Floor(hours + 0.5))
}

func ToDataModel(e *ExtraHour) *extrahourDatamodel.ExtraHour {
	return &extrahourDatamodel.ExtraHour{
		ID:              e.ID,
		UserID:          e.UserID,
		Date:            e.Date,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		ExtraHourTypeID: e.ExtraHourTypeID,
		Reason:          e.Reason,
		Status:          e.Status,
		ApproverID:      e.ApproverID,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func FromDataModel(e *extrahourDatamodel.ExtraHour) *ExtraHour {
	domain := &ExtraHour{
		ID:              e.ID,
		UserID:          e.UserID,
		Date:            e.Date,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		ExtraHourTypeID: e.ExtraHourTypeID,
		Reason:          e.Reason,
		Status:          e.Status,
		ApproverID:      e.ApproverID,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
	domain.Hours = domain.WorkedHours()
	return domain
}

func FromDataModelSlice(rows []*extrahourDatamodel.ExtraHour) []*ExtraHour {
	result := make([]*ExtraHour, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		result = append(result, FromDataModel(row))
	}
	return result
}

package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeExtraHourFiled    = "extra_hour.filed"
	EventTypeExtraHourApproved = "extra_hour.approved"
	EventTypeExtraHourRejected = "extra_hour.rejected"
)

type ExtraHourFiledEvent struct {
	BaseEvent
	ExtraHourID int64 `json:"extra_hour_id"`
	UserID      int64 `json:"user_id"`
	Hours       int   `json:"hours"`
	TypeID      int64 `json:"extra_hour_type_id"`
}

func NewExtraHourFiledEvent(extraHourID, userID int64, hours int, typeID int64) *ExtraHourFiledEvent {
	return &ExtraHourFiledEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeExtraHourFiled,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"extra_hour_id":      extraHourID,
				"user_id":            userID,
				"hours":              hours,
				"extra_hour_type_id": typeID,
			},
		},
		ExtraHourID: extraHourID,
		UserID:      userID,
		Hours:       hours,
		TypeID:      typeID,
	}
}

type ExtraHourDecidedEvent struct {
	BaseEvent
	ExtraHourID int64  `json:"extra_hour_id"`
	UserID      int64  `json:"user_id"`
	ApproverID  int64  `json:"approver_id"`
	Status      string `json:"status"`
	Hours       int    `json:"hours"`
	Note        string `json:"note,omitempty"`
}

func NewExtraHourDecidedEvent(extraHourID, userID, approverID int64, status string, hours int, note string) *ExtraHourDecidedEvent {
	eventType := EventTypeExtraHourApproved
	if status == "rejected" {
		eventType = EventTypeExtraHourRejected
	}
	return &ExtraHourDecidedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"extra_hour_id": extraHourID,
				"user_id":       userID,
				"approver_id":   approverID,
				"status":        status,
				"hours":         hours,
				"note":          note,
			},
		},
		ExtraHourID: extraHourID,
		UserID:      userID,
		ApproverID:  approverID,
		Status:      status,
		Hours:       hours,
		Note:        note,
	}
}

package extrahour

import (
	"fmt"
	"time"

	"github.com/cloudnative-amadeus/extrahours/internal"
	"github.com/cloudnative-amadeus/extrahours/internal/core/common/validation"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ExtraHourDTO is the request payload for creating or editing a request.
// Times are local clock values on the given date.
type ExtraHourDTO struct {
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	ExtraHourTypeID int64  `json:"extra_hour_type_id"`
	Reason          string `json:"reason,omitempty"`
}

// Parse validates the payload and resolves the clock fields. End must be
// strictly after start; the invalid range is rejected here, before anything
// is persisted.
func (dto ExtraHourDTO) Parse() (date, start, end time.Time, err error) {
	if dto.Date == "" {
		return date, start, end, internal.NewValidationFieldError("date", "date is required", internal.ErrCodeInvalidDate)
	}
	date, parseErr := time.Parse(dateLayout, dto.Date)
	if parseErr != nil {
		return date, start, end, internal.NewValidationFieldError("date", fmt.Sprintf("date must be in %s format", dateLayout), internal.ErrCodeInvalidDate)
	}

	startClock, parseErr := time.Parse(timeLayout, dto.StartTime)
	if parseErr != nil {
		return date, start, end, internal.NewValidationFieldError("start_time", fmt.Sprintf("start_time must be in %s format", timeLayout), internal.ErrCodeValidationFailed)
	}
	endClock, parseErr := time.Parse(timeLayout, dto.EndTime)
	if parseErr != nil {
		return date, start, end, internal.NewValidationFieldError("end_time", fmt.Sprintf("end_time must be in %s format", timeLayout), internal.ErrCodeValidationFailed)
	}

	if dto.ExtraHourTypeID <= 0 {
		return date, start, end, internal.NewValidationFieldError("extra_hour_type_id", "extra_hour_type_id is required", internal.ErrCodeValidationFailed)
	}

	if vErr := validation.ValidateReason(dto.Reason); vErr != nil {
		return date, start, end, vErr
	}

	start = onDate(date, startClock)
	end = onDate(date, endClock)

	if !end.After(start) {
		return date, start, end, internal.ErrInvalidTimeRange
	}

	return date, start, end, nil
}

func onDate(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.UTC)
}

// DecisionDTO carries the optional annotation on approve/reject.
type DecisionDTO struct {
	Note string `json:"note,omitempty"`
}

func (dto DecisionDTO) Validate() error {
	if vErr := validation.ValidateAnnotation(dto.Note); vErr != nil {
		return vErr
	}
	return nil
}

// ListFilter narrows List results; zero values mean "no constraint".
type ListFilter struct {
	UserID int64
	Status string
	Search string
}

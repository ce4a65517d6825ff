package hourtype

import (
	"strings"

	"github.com/cloudnative-amadeus/extrahours/internal"
)

type ExtraHourTypeDTO struct {
	Name string `json:"name"`
}

func (dto *ExtraHourTypeDTO) Validate() error {
	dto.Name = strings.TrimSpace(dto.Name)
	if dto.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if len(dto.Name) > 100 {
		return internal.NewValidationFieldError("name", "name must be at most 100 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}

package hourtype

import (
	"time"

	hourtypeDatamodel "github.com/cloudnative-amadeus/extrahours/internal/core/datamodel/hourtype"
)

// ExtraHourType is a category a request is filed under (nocturnal, holiday,
// and so on). Reference data: seeded at install, editable by administrators.
type ExtraHourType struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func FromDataModel(row *hourtypeDatamodel.ExtraHourType) *ExtraHourType {
	return &ExtraHourType{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}
}

func FromDataModelSlice(rows []*hourtypeDatamodel.ExtraHourType) []*ExtraHourType {
	result := make([]*ExtraHourType, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		result = append(result, FromDataModel(row))
	}
	return result
}

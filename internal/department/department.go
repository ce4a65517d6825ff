package department

import (
	"time"

	departmentDatamodel "github.com/cloudnative-amadeus/extrahours/internal/core/datamodel/department"
)

// Department is seeded reference data; the API only reads it.
type Department struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func FromDataModel(row *departmentDatamodel.Department) *Department {
	return &Department{
		ID:        row.ID,
		Name:      row.Name,
		Location:  row.Location,
		CreatedAt: row.CreatedAt,
	}
}

func FromDataModelSlice(rows []*departmentDatamodel.Department) []*Department {
	result := make([]*Department, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		result = append(result, FromDataModel(row))
	}
	return result
}

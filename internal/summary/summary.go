package summary

import (
	"github.com/cloudnative-amadeus/extrahours/internal/extrahour"
)

// Summary is the aggregate view over a set of extra hour requests. Hours are
// whole numbers, rounded by the same rule the requests themselves use.
type Summary struct {
	TotalHours    int `json:"total_hours"`
	ApprovedHours int `json:"approved_hours"`
	PendingHours  int `json:"pending_hours"`
	EmployeeCount int `json:"employee_count"`
}

// Aggregate folds a request set into a Summary. Nil entries and entries with
// a non-positive duration are skipped rather than failing the whole report.
func Aggregate(requests []*extrahour.ExtraHour) Summary {
	var s Summary
	employees := make(map[int64]struct{})

	for _, req := range requests {
		if req == nil || req.Duration() <= 0 {
			continue
		}

		hours := req.WorkedHours()
		s.TotalHours += hours

		switch req.Status {
		case extrahour.StatusApproved:
			s.ApprovedHours += hours
		case extrahour.StatusPending:
			s.PendingHours += hours
		}

		employees[req.UserID] = struct{}{}
	}

	s.EmployeeCount = len(employees)
	return s
}
